package handler

import (
	"net/http"

	"github.com/gestimo/rent-service/internal/middleware"
	"github.com/gestimo/rent-service/internal/models"
)

// Stats computes the owner's collection statistics for a reporting period
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	period := models.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = models.PeriodAll
	}
	if !period.Valid() {
		h.respondError(w, http.StatusBadRequest, "invalid field: period")
		return
	}

	stats, err := h.svc.OwnerStats(r.Context(), middleware.OwnerID(r.Context()), period)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, stats)
}

// ReferenceIndex returns the latest quarterly IRL observation
func (h *Handler) ReferenceIndex(w http.ResponseWriter, r *http.Request) {
	index, err := h.index.LatestIndex()
	if err != nil {
		h.log.Errorf("Failed to fetch reference index: %v", err)
		h.respondError(w, http.StatusBadGateway, "reference index unavailable")
		return
	}
	h.respondJSON(w, http.StatusOK, index)
}
