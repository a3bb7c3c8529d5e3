package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/parshpawar/ezoCodingTask/internal/models"
)

// RosterService defines the interface for roster operations required by
// the HTTP handlers.
type RosterService interface {
	// Records returns all roster records ordered by name.
	Records(ctx context.Context) ([]models.Record, error)
}

// RecordsHandler serves the roster records shown on the list screen.
type RecordsHandler struct {
	// RosterService performs the underlying roster reads.
	RosterService RosterService
}

// List responds with every roster record. An empty roster yields an
// empty records array, not an error.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.RosterService.Records(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.RecordsResponse{Records: records})
}
