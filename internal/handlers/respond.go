package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Tahsin0604/harmony-academy-server/internal/auth"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError emits the error envelope every client of this API checks:
// {"error": true, "message": "..."}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
	})
}

// requireSelf enforces the ownership convention: the email in the
// verified token must equal the email named in the request. A valid
// token for one user never unlocks another user's data.
func requireSelf(w http.ResponseWriter, r *http.Request, email string) bool {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized access")
		return false
	}
	if email == "" || !strings.EqualFold(claims.Email, email) {
		writeError(w, http.StatusForbidden, "forbidden access")
		return false
	}
	return true
}

func queryInt64(r *http.Request, name string, fallback int64) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
