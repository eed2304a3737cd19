package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/transportdesk/lr-extractor/internal/common"
	"github.com/transportdesk/lr-extractor/internal/repository"
)

type extractRequest struct {
	Message string `json:"message" binding:"required"`
}

type extractResponse struct {
	TruckNumber string `json:"truckNumber"`
	From        string `json:"from"`
	To          string `json:"to"`
	Weight      string `json:"weight"`
	Description string `json:"description"`
	Name        string `json:"name"`
	Complete    bool   `json:"complete"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleExtract runs the pipeline without persisting anything.
func (s *Server) handleExtract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	fields := s.extractor.Extract(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, extractResponse{
		TruckNumber: fields.TruckNumber,
		From:        fields.From,
		To:          fields.To,
		Weight:      fields.Weight,
		Description: fields.Description,
		Name:        fields.Name,
		Complete:    fields.IsComplete(),
	})
}

// handleCreateShipment extracts and persists. Incomplete extractions are not
// stored; the caller gets the partial fields back with 422 so the sender can
// be asked for more detail.
func (s *Server) handleCreateShipment(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	fields := s.extractor.Extract(c.Request.Context(), req.Message)
	if !fields.IsComplete() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "extraction incomplete",
			"fields": fields,
		})
		return
	}

	rec := repository.NewShipmentRecord(req.Message, fields)
	if err := s.store.SaveShipment(c.Request.Context(), rec); err != nil {
		s.logger.Error("save shipment", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save shipment"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleGetShipment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, common.WrapError(common.ErrInvalidInput, "shipment id must be a UUID"))
		return
	}
	rec, err := s.store.GetShipment(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleListShipments(c *gin.Context) {
	from, to, err := parseDateWindow(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	recs, err := s.store.ListShipments(c.Request.Context(), from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if recs == nil {
		recs = []repository.ShipmentRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"shipments": recs, "count": len(recs)})
}

func (s *Server) handleExportShipments(c *gin.Context) {
	from, to, err := parseDateWindow(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	data, err := s.exporter.ExportShipmentsXLSX(c.Request.Context(), from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}

	filename := "shipments-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// respondError maps domain errors onto HTTP statuses. Anything that is not a
// recognized sentinel is a 500 with a generic body.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "shipment not found"})
	default:
		s.logger.Error("request failed",
			"req_id", common.RequestIDFromContext(c.Request.Context()),
			"path", c.Request.URL.Path, "error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseDateWindow reads the optional from/to YYYY-MM-DD query parameters.
func parseDateWindow(c *gin.Context) (from, to *time.Time, err error) {
	if from, err = parseDateParam(c, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = parseDateParam(c, "to"); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func parseDateParam(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, common.WrapError(common.ErrInvalidInput, name+" must be YYYY-MM-DD")
	}
	return &t, nil
}
