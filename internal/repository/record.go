package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/transportdesk/lr-extractor/internal/extract"
)

// ShipmentRecord is a persisted extraction result together with the raw
// message it came from.
type ShipmentRecord struct {
	ID          uuid.UUID `json:"id"`
	Message     string    `json:"message"`
	TruckNumber string    `json:"truckNumber"`
	FromPlace   string    `json:"from"`
	ToPlace     string    `json:"to"`
	Weight      string    `json:"weight"`
	Description string    `json:"description"`
	SenderName  string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewShipmentRecord builds a record from extracted fields.
func NewShipmentRecord(message string, f extract.ShipmentFields) ShipmentRecord {
	return ShipmentRecord{
		ID:          uuid.New(),
		Message:     message,
		TruckNumber: f.TruckNumber,
		FromPlace:   f.From,
		ToPlace:     f.To,
		Weight:      f.Weight,
		Description: f.Description,
		SenderName:  f.Name,
		CreatedAt:   time.Now().UTC(),
	}
}

// Fields returns the record's extraction fields.
func (r ShipmentRecord) Fields() extract.ShipmentFields {
	return extract.ShipmentFields{
		TruckNumber: r.TruckNumber,
		From:        r.FromPlace,
		To:          r.ToPlace,
		Weight:      r.Weight,
		Description: r.Description,
		Name:        r.SenderName,
	}
}

// ShipmentRepository persists extraction results. The pipeline itself never
// touches the store; only the surrounding service does.
type ShipmentRepository interface {
	SaveShipment(ctx context.Context, rec ShipmentRecord) error
	GetShipment(ctx context.Context, id uuid.UUID) (*ShipmentRecord, error)
	ListShipments(ctx context.Context, from, to *time.Time) ([]ShipmentRecord, error)
	Close() error
}
