package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Tahsin0604/harmony-academy-server/internal/auth"
	"github.com/Tahsin0604/harmony-academy-server/internal/models"
)

// RoleLookup resolves the caller's current role. The lookup happens on
// every request so a role change by an admin takes effect immediately,
// even for tokens issued before the change.
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

type Auth struct {
	tokens *auth.TokenService
	users  RoleLookup
	log    zerolog.Logger
}

func NewAuth(tokens *auth.TokenService, users RoleLookup, log zerolog.Logger) *Auth {
	return &Auth{tokens: tokens, users: users, log: log}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
	})
}

// RequireAuth verifies the bearer token and stores the claims on the
// request context.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		claims, err := a.tokens.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			a.log.Debug().Err(err).Msg("token rejected")
			writeError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
	})
}

// RequireRole gates a route to callers whose stored role matches.
// Must be applied after RequireAuth.
func (a *Auth) RequireRole(role models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			user, err := a.users.FindByEmail(r.Context(), claims.Email)
			if err != nil || user.Role != role {
				writeError(w, http.StatusForbidden, "forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
