package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tahsin0604/harmony-academy-server/internal/catalog"
	"github.com/Tahsin0604/harmony-academy-server/internal/repository"
)

type InstructorHandler struct {
	engine *catalog.Engine
}

func NewInstructorHandler(engine *catalog.Engine) *InstructorHandler {
	return &InstructorHandler{engine: engine}
}

// GetInstructors returns one page of instructor summaries, most
// students first.
func (h *InstructorHandler) GetInstructors(w http.ResponseWriter, r *http.Request) {
	page := queryInt64(r, "page", 0)
	limit := queryInt64(r, "limit", catalog.DefaultPageSize)

	instructors, err := h.engine.Instructors(r.Context(), page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch instructors")
		return
	}
	writeJSON(w, http.StatusOK, instructors)
}

// GetInstructorByID returns one instructor summary, or an empty object
// when the ID does not resolve to an instructor.
func (h *InstructorHandler) GetInstructorByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid instructor ID")
		return
	}

	summary, err := h.engine.InstructorByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]interface{}{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch instructor")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *InstructorHandler) GetInstructorsCount(w http.ResponseWriter, r *http.Request) {
	total, err := h.engine.CountInstructors(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count instructors")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total": total})
}
