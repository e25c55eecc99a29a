package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mbecker/reloquiz/internal/auth/jwt"
	httperrors "github.com/mbecker/reloquiz/pkg/http/errors"
)

// RequireAuth validates the Bearer token and injects claims into the
// request context via jwt.WithClaims. Requests without a valid token
// are rejected. Handlers read the claims back with
// jwt.ClaimsFromContext; the helpers live in the jwt package so handler
// packages never have to import this one.
func RequireAuth(svc *Service, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid authorization header")
				return
			}

			claims, err := svc.ValidateToken(parts[1])
			if err != nil {
				logger.Warn().Err(err).Msg("token validation failed")
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.WithClaims(r.Context(), claims)))
		})
	}
}
