package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/signdata/internal/store"
)

// SamplesHandler handles HTTP requests for session sample resources.
type SamplesHandler struct {
	store *store.Store
}

// NewSamplesHandler creates a new SamplesHandler with the given store.
func NewSamplesHandler(s *store.Store) *SamplesHandler {
	return &SamplesHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/sessions/{id}/samples
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "samples" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	sessionID := parts[0]

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, sessionID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Response types

type sampleResponse struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	SampleIndex int       `json:"sample_index"`
	Label       string    `json:"label"`
	Values      []float64 `json:"values"`
	CapturedAt  string    `json:"captured_at"`
}

type listSamplesResponse struct {
	Samples []sampleResponse `json:"samples"`
}

// list handles GET /api/sessions/{id}/samples
func (h *SamplesHandler) list(w http.ResponseWriter, r *http.Request, sessionID string) {
	if _, err := h.store.Sessions().GetByID(sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to verify session")
		return
	}

	samples, err := h.store.Samples().GetBySessionID(sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}

	response := listSamplesResponse{
		Samples: make([]sampleResponse, 0, len(samples)),
	}

	for _, s := range samples {
		response.Samples = append(response.Samples, sampleResponse{
			ID:          s.ID,
			SessionID:   s.SessionID,
			SampleIndex: s.SampleIndex,
			Label:       s.Label,
			Values:      s.Values,
			CapturedAt:  s.CapturedAt.Format(time.RFC3339Nano),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
