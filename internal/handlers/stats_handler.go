package handlers

import (
	"net/http"

	"github.com/Tahsin0604/harmony-academy-server/internal/stats"
)

type StatsHandler struct {
	agg *stats.Aggregator
}

func NewStatsHandler(agg *stats.Aggregator) *StatsHandler {
	return &StatsHandler{agg: agg}
}

func (h *StatsHandler) GetStudentStats(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if !requireSelf(w, r, email) {
		return
	}

	s, err := h.agg.Student(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *StatsHandler) GetInstructorStats(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if !requireSelf(w, r, email) {
		return
	}

	s, err := h.agg.Instructor(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *StatsHandler) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.agg.Admin(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, s)
}
