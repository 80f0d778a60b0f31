package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/interfaces"
)

type contextKey string

const staffEmailKey contextKey = "staff_email"

// staffEmail returns the authenticated staff email set by AuthMiddleware.
func staffEmail(ctx context.Context) string {
	email, _ := ctx.Value(staffEmailKey).(string)
	return email
}

func LoggingMiddleware(lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			lgr.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			next.ServeHTTP(w, r)

			lgr.Debug("http_response", "Request completed", map[string]interface{}{
				"path":        r.URL.Path,
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

func RecoveryMiddleware(lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					lgr.Error("panic_recovered", "Panic recovered", map[string]interface{}{
						"path": r.URL.Path,
					}, fmt.Errorf("%v", err))
					respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "Internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AuthMiddleware requires a valid bearer token and stashes the staff email
// on the request context.
func AuthMiddleware(auth interfaces.StaffAuthService, lgr logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "Missing bearer token"})
				return
			}

			email, ok := auth.Authenticate(r.Context(), token)
			if !ok {
				lgr.Debug("auth_rejected", "Unknown or revoked token", map[string]interface{}{"path": r.URL.Path})
				respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "Session expired. Please log in again."})
				return
			}

			ctx := context.WithValue(r.Context(), staffEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
