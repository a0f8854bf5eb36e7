package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Tahsin0604/harmony-academy-server/internal/auth"
)

type TokenHandler struct {
	tokens *auth.TokenService
}

func NewTokenHandler(tokens *auth.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// IssueToken exchanges an identity claim for a one-hour session token.
func (h *TokenHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := h.tokens.IssueToken(body.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
