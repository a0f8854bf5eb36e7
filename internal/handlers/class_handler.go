package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tahsin0604/harmony-academy-server/internal/catalog"
	"github.com/Tahsin0604/harmony-academy-server/internal/models"
	"github.com/Tahsin0604/harmony-academy-server/internal/repository"
)

type ClassHandler struct {
	engine  *catalog.Engine
	classes *repository.ClassRepo
	log     zerolog.Logger
}

func NewClassHandler(engine *catalog.Engine, classes *repository.ClassRepo, log zerolog.Logger) *ClassHandler {
	return &ClassHandler{engine: engine, classes: classes, log: log}
}

// GetClasses returns one public page of approved classes.
func (h *ClassHandler) GetClasses(w http.ResponseWriter, r *http.Request) {
	page := queryInt64(r, "page", 0)
	limit := queryInt64(r, "limit", catalog.DefaultPageSize)

	classes, err := h.engine.ApprovedClasses(r.Context(), page, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("class listing failed")
		writeError(w, http.StatusInternalServerError, "failed to fetch classes")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

func (h *ClassHandler) GetClassesCount(w http.ResponseWriter, r *http.Request) {
	total, err := h.engine.CountApprovedClasses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count classes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total": total})
}

// CreateClass publishes a new offering for admin review. Instructors
// can only create classes under their own email.
func (h *ClassHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var newClass models.ClassOffering
	if err := json.NewDecoder(r.Body).Decode(&newClass); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if newClass.ClassName == "" || newClass.InstructorEmail == "" {
		writeError(w, http.StatusBadRequest, "class name and instructor email are required")
		return
	}
	if newClass.Price < 0 || newClass.AvailableSeats < 0 {
		writeError(w, http.StatusBadRequest, "price and seats must not be negative")
		return
	}
	if !requireSelf(w, r, newClass.InstructorEmail) {
		return
	}

	created, err := h.classes.Insert(r.Context(), newClass)
	if err != nil {
		h.log.Error().Err(err).Str("instructor", newClass.InstructorEmail).Msg("class insert failed")
		writeError(w, http.StatusInternalServerError, "failed to create class")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetMyClasses lists an instructor's own offerings in every status.
func (h *ClassHandler) GetMyClasses(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if !requireSelf(w, r, email) {
		return
	}

	classes, err := h.classes.ListByInstructor(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch classes")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// GetAllClasses lists every offering regardless of status. Admin only.
func (h *ClassHandler) GetAllClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch classes")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// UpdateClassStatus approves or denies a pending offering. Admin only.
func (h *ClassHandler) UpdateClassStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class ID")
		return
	}

	var body struct {
		Status models.ClassStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if body.Status != models.ClassApproved && body.Status != models.ClassDenied {
		writeError(w, http.StatusBadRequest, "status must be approved or denied")
		return
	}

	if err := h.classes.SetStatus(r.Context(), id, body.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "class not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update class")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}

// UpdateClassFeedback attaches admin feedback to an offering.
func (h *ClassHandler) UpdateClassFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class ID")
		return
	}

	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Feedback == "" {
		writeError(w, http.StatusBadRequest, "feedback is required")
		return
	}

	if err := h.classes.SetFeedback(r.Context(), id, body.Feedback); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "class not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update class")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "feedback saved"})
}
