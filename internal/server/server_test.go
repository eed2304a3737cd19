package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transportdesk/lr-extractor/internal/export"
	"github.com/transportdesk/lr-extractor/internal/extract"
	"github.com/transportdesk/lr-extractor/internal/repository"
)

// fixedModel answers every prompt with the same text.
type fixedModel struct {
	response string
}

func (m fixedModel) Complete(context.Context, string) string { return m.response }

func newTestServer(t *testing.T, response string) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := repository.OpenSQLite(context.Background(), ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	extractor := extract.NewExtractor(extract.Config{Retries: 1}, fixedModel{response: response}, nil, logger)
	exporter := export.NewService(store, logger)
	return NewServer(":0", extractor, store, exporter, logger)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

const completeResponse = `{"truckNumber":"MH 09 HH 4512","from":"indore","to":"nagpur","weight":"24","description":"","name":"ramesh"}`

func TestHealthz(t *testing.T) {
	s := newTestServer(t, completeResponse)
	w := doJSON(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleExtract(t *testing.T) {
	s := newTestServer(t, completeResponse)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/extract",
		`{"message":"MH 09 HH 4512 Indore to Nagpur 24 ton Plastic Dana"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp extractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MH09HH4512", resp.TruckNumber)
	assert.Equal(t, "Indore", resp.From)
	assert.Equal(t, "Nagpur", resp.To)
	assert.Equal(t, "24000", resp.Weight)
	assert.True(t, resp.Complete)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHandleExtract_MissingMessage(t *testing.T) {
	s := newTestServer(t, completeResponse)
	w := doJSON(t, s.Handler(), http.MethodPost, "/api/extract", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateShipment_RoundTrip(t *testing.T) {
	s := newTestServer(t, completeResponse)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/shipments",
		`{"message":"MH 09 HH 4512 Indore to Nagpur 24 ton Plastic Dana"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created repository.ShipmentRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "MH09HH4512", created.TruckNumber)

	got := doJSON(t, s.Handler(), http.MethodGet, "/api/shipments/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, got.Code)

	list := doJSON(t, s.Handler(), http.MethodGet, "/api/shipments", "")
	require.Equal(t, http.StatusOK, list.Code)
	var listResp struct {
		Count     int                         `json:"count"`
		Shipments []repository.ShipmentRecord `json:"shipments"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &listResp))
	assert.Equal(t, 1, listResp.Count)
}

func TestCreateShipment_IncompleteRejected(t *testing.T) {
	// model returns nothing useful and the message has no fallbacks
	s := newTestServer(t, `{"truckNumber":"","from":"","to":"","weight":"","description":"","name":""}`)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/shipments", `{"message":"kal baat karte hain"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	list := doJSON(t, s.Handler(), http.MethodGet, "/api/shipments", "")
	var listResp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &listResp))
	assert.Zero(t, listResp.Count)
}

func TestGetShipment_BadAndMissingID(t *testing.T) {
	s := newTestServer(t, completeResponse)

	bad := doJSON(t, s.Handler(), http.MethodGet, "/api/shipments/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	assert.Contains(t, bad.Body.String(), "invalid input")

	missing := doJSON(t, s.Handler(), http.MethodGet, "/api/shipments/0b7aa02a-28f0-4d73-bd39-a0afc8a26784", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestListShipments_BadDateParam(t *testing.T) {
	s := newTestServer(t, completeResponse)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/shipments?from=01-02-2026", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "from must be YYYY-MM-DD")

	export := doJSON(t, s.Handler(), http.MethodGet, "/api/shipments/export?to=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, export.Code)
}

func TestExportShipments(t *testing.T) {
	s := newTestServer(t, completeResponse)

	created := doJSON(t, s.Handler(), http.MethodPost, "/api/shipments",
		`{"message":"MH 09 HH 4512 Indore to Nagpur 24 ton Plastic Dana"}`)
	require.Equal(t, http.StatusCreated, created.Code)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/shipments/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	// xlsx files are zip archives
	assert.Equal(t, "PK", string(w.Body.Bytes()[:2]))
}
