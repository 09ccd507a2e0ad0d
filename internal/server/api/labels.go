package api

import (
	"net/http"

	"github.com/ayusman/signdata/internal/store"
)

// LabelsHandler reports how much has been captured per label.
type LabelsHandler struct {
	store *store.Store
}

// NewLabelsHandler creates a new LabelsHandler with the given store.
func NewLabelsHandler(s *store.Store) *LabelsHandler {
	return &LabelsHandler{store: s}
}

type labelResponse struct {
	Label    string `json:"label"`
	Sessions int    `json:"sessions"`
	Samples  int    `json:"samples"`
}

type listLabelsResponse struct {
	Labels []labelResponse `json:"labels"`
}

// ServeHTTP handles GET /api/labels.
func (h *LabelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	totals, err := h.store.Sessions().Totals()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to total labels")
		return
	}

	response := listLabelsResponse{
		Labels: make([]labelResponse, 0, len(totals)),
	}
	for _, t := range totals {
		response.Labels = append(response.Labels, labelResponse{
			Label:    t.Label,
			Sessions: t.Sessions,
			Samples:  t.Samples,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
