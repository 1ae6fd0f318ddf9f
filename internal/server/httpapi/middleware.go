package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/logging"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const adminKey ctxKey = "admin"

// AdminFromContext returns the account attached by Authenticate.
func AdminFromContext(ctx context.Context) (*models.Account, bool) {
	a, ok := ctx.Value(adminKey).(*models.Account)
	return a, ok && a != nil
}

// TokenAuthenticator resolves a bearer token to an account.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Account, error)
}

// Authenticate gates a route on a valid "Authorization: Bearer <token>"
// header naming an existing account.
func Authenticate(a TokenAuthenticator, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, _ := strings.Cut(strings.TrimSpace(r.Header.Get(common.AuthorizationHeaderName)), " ")
			token = strings.TrimSpace(token)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !strings.EqualFold(scheme, common.BearerScheme) {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			account, err := a.Authenticate(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, common.ErrInvalidToken):
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			case errors.Is(err, common.ErrAccountNotFound):
				writeError(w, http.StatusUnauthorized, "Admin not found")
				return
			default:
				logger.Error(r.Context(), "authentication failed", "error", err)
				writeError(w, http.StatusInternalServerError, "Server error")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestLogger logs one line per request once the response is written.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
