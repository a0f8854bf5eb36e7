package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tahsin0604/harmony-academy-server/internal/models"
	"github.com/Tahsin0604/harmony-academy-server/internal/repository"
)

type UserHandler struct {
	users *repository.UserRepo
	log   zerolog.Logger
}

func NewUserHandler(users *repository.UserRepo, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// CreateUser upserts a profile on sign-in. Repeat sign-ins are a
// no-op, so the client can call this unconditionally.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var newUser models.User
	if err := json.NewDecoder(r.Body).Decode(&newUser); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if newUser.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	created, err := h.users.Upsert(r.Context(), newUser)
	if err != nil {
		h.log.Error().Err(err).Str("email", newUser.Email).Msg("user upsert failed")
		writeError(w, http.StatusInternalServerError, "failed to save user")
		return
	}

	if !created {
		writeJSON(w, http.StatusOK, map[string]string{"message": "user already exists"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "user created"})
}

// GetUsers lists every user. Admin only.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// GetUserRole returns the stored role for the authenticated caller's
// own email.
func (h *UserHandler) GetUserRole(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if !requireSelf(w, r, email) {
		return
	}

	user, err := h.users.FindByEmail(r.Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]models.UserRole{"role": user.Role})
}

// SetUserRole updates a user's role. Admin only.
func (h *UserHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	role, ok := models.ParseRole(body.Role)
	if !ok {
		writeError(w, http.StatusBadRequest, "role must be student, instructor or admin")
		return
	}

	if err := h.users.SetRole(r.Context(), id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.log.Error().Err(err).Str("user", id.Hex()).Msg("role update failed")
		writeError(w, http.StatusInternalServerError, "failed to update role")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}
