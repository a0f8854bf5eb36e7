package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tahsin0604/harmony-academy-server/internal/enroll"
	"github.com/Tahsin0604/harmony-academy-server/internal/models"
	"github.com/Tahsin0604/harmony-academy-server/internal/repository"
)

type EnrollmentHandler struct {
	workflow *enroll.Workflow
	log      zerolog.Logger
}

func NewEnrollmentHandler(workflow *enroll.Workflow, log zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{workflow: workflow, log: log}
}

// GetEnrolledClasses lists the authenticated student's paid history.
// sortType=asc orders oldest first; default is newest first.
func (h *EnrollmentHandler) GetEnrolledClasses(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if !requireSelf(w, r, email) {
		return
	}

	enrollments, err := h.workflow.Enrollments(r.Context(), email, r.URL.Query().Get("sortType"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch enrolled classes")
		return
	}
	writeJSON(w, http.StatusOK, enrollments)
}

type paymentRequest struct {
	SelectedClassID string  `json:"selectedClassId"`
	ClassID         string  `json:"classId"`
	TransactionID   string  `json:"transactionId"`
	Price           float64 `json:"price"`
}

// CompletePayment finalizes a paid selection: it writes the enrollment
// record, removes the selection and adjusts the seat counters in one
// transaction.
func (h *EnrollmentHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if !requireSelf(w, r, email) {
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.TransactionID == "" {
		writeError(w, http.StatusBadRequest, "transaction ID is required")
		return
	}

	selectionID, err := primitive.ObjectIDFromHex(req.SelectedClassID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid selection ID")
		return
	}
	classID, err := primitive.ObjectIDFromHex(req.ClassID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class ID")
		return
	}

	selection, err := h.workflow.Selection(r.Context(), selectionID)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "selection not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch selection")
		return
	}
	if !strings.EqualFold(selection.StudentEmail, email) || selection.ClassID != classID {
		writeError(w, http.StatusForbidden, "forbidden access")
		return
	}

	outcome, err := h.workflow.Complete(r.Context(), selectionID, models.EnrolledClass{
		ClassID:        classID,
		StudentEmail:   email,
		ClassName:      selection.ClassName,
		Image:          selection.Image,
		InstructorName: selection.InstructorName,
		Price:          req.Price,
		TransactionID:  req.TransactionID,
	})
	switch {
	case errors.Is(err, enroll.ErrAlreadyEnrolled):
		writeError(w, http.StatusConflict, "class already enrolled")
	case errors.Is(err, repository.ErrSeatsExhausted):
		writeError(w, http.StatusConflict, "no available seats")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "class or selection not found")
	case err != nil:
		h.log.Error().Err(err).Str("transaction", req.TransactionID).Msg("enrollment failed")
		writeError(w, http.StatusInternalServerError, "failed to complete enrollment")
	default:
		writeJSON(w, http.StatusOK, outcome)
	}
}
