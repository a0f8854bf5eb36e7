package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tahsin0604/harmony-academy-server/internal/auth"
	"github.com/Tahsin0604/harmony-academy-server/internal/enroll"
	"github.com/Tahsin0604/harmony-academy-server/internal/models"
	"github.com/Tahsin0604/harmony-academy-server/internal/repository"
)

type SelectionHandler struct {
	workflow *enroll.Workflow
	log      zerolog.Logger
}

func NewSelectionHandler(workflow *enroll.Workflow, log zerolog.Logger) *SelectionHandler {
	return &SelectionHandler{workflow: workflow, log: log}
}

// SelectClass records interest in a class for the authenticated
// student. Duplicate selections and already-enrolled classes are
// conflicts, not new writes.
func (h *SelectionHandler) SelectClass(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if !requireSelf(w, r, email) {
		return
	}

	classID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class ID")
		return
	}

	selection, err := h.workflow.Select(r.Context(), classID, email)
	switch {
	case errors.Is(err, enroll.ErrAlreadySelected):
		writeError(w, http.StatusConflict, "class already selected")
	case errors.Is(err, enroll.ErrAlreadyEnrolled):
		writeError(w, http.StatusConflict, "class already enrolled")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "class not found")
	case err != nil:
		h.log.Error().Err(err).Str("class", classID.Hex()).Msg("selection failed")
		writeError(w, http.StatusInternalServerError, "failed to select class")
	default:
		writeJSON(w, http.StatusCreated, selection)
	}
}

// GetSelections lists the authenticated student's pending selections.
func (h *SelectionHandler) GetSelections(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if !requireSelf(w, r, email) {
		return
	}

	selections, err := h.workflow.Selections(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch selected classes")
		return
	}
	writeJSON(w, http.StatusOK, selections)
}

// CheckAvailability reports whether the class behind a selection still
// has seats; a sold-out class marks the selection "Filled Up".
func (h *SelectionHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	selectionID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid selection ID")
		return
	}
	if !h.ownsSelection(w, r, selectionID) {
		return
	}

	available, err := h.workflow.CheckSeats(r.Context(), selectionID)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "selection not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("selection", selectionID.Hex()).Msg("seat check failed")
		writeError(w, http.StatusInternalServerError, "failed to check seats")
		return
	}

	status := ""
	if !available {
		status = models.SelectionFilledUp
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"available": available,
		"status":    status,
	})
}

// Unselect deletes a selection the caller owns. Seats were never
// reserved, so the class is untouched.
func (h *SelectionHandler) Unselect(w http.ResponseWriter, r *http.Request) {
	selectionID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid selection ID")
		return
	}
	if !h.ownsSelection(w, r, selectionID) {
		return
	}

	if err := h.workflow.Unselect(r.Context(), selectionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "selection not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove selection")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "selection removed"})
}

// ownsSelection verifies the selection exists and belongs to the
// authenticated caller.
func (h *SelectionHandler) ownsSelection(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) bool {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized access")
		return false
	}

	selection, err := h.workflow.Selection(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "selection not found")
		return false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch selection")
		return false
	}
	if !strings.EqualFold(selection.StudentEmail, claims.Email) {
		writeError(w, http.StatusForbidden, "forbidden access")
		return false
	}
	return true
}
