package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtutil "github.com/Dias221467/HealthMetrics_Tracker/pkg/jwt"
	"github.com/sirupsen/logrus"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware validates the Bearer token and injects the claims into the
// request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				logrus.Warn("Missing or malformed Authorization header")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtutil.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				logrus.WithError(err).Warn("Token validation failed")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated claims, or nil when the
// request was not authenticated.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, ok := ctx.Value(userContextKey).(*jwtutil.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequireRole rejects requests whose authenticated user lacks the role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r.Context())
			if claims == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if claims.Role != role {
				logrus.WithFields(logrus.Fields{
					"userID":   claims.UserID,
					"required": role,
					"actual":   claims.Role,
				}).Warn("Role check failed")
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
