package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/transportdesk/lr-extractor/internal/repository"
)

// Service is a small façade over the shipment store that produces XLSX bytes
// for exports.
type Service struct {
	store  repository.ShipmentRepository
	logger *slog.Logger
}

func NewService(store repository.ShipmentRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportShipmentsXLSX returns an XLSX workbook (as bytes) for the given date
// window. If only from is provided, the window runs from..today (inclusive);
// if neither is provided, every shipment is exported.
func (s *Service) ExportShipmentsXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}

	recs, err := s.store.ListShipments(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query shipments: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Shipments"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Date",
		"Truck Number",
		"From",
		"To",
		"Weight (Kg)",
		"Description",
		"Sender Name",
		"Message",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.CreatedAt.Format("2006-01-02"))
		write(2, r.TruckNumber)
		write(3, r.FromPlace)
		write(4, r.ToPlace)
		write(5, r.Weight)
		write(6, r.Description)
		write(7, r.SenderName)
		write(8, r.Message)
		row++
	}

	// delete the default sheet excelize creates
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.shipments_xlsx",
		"rows", len(recs),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
