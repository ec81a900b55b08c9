package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/server/auth"
)

type ctxKey string

const (
	claimsKey  ctxKey = "claims"
	authErrKey ctxKey = "auth_error"
)

// claimsFromContext returns the claims stored by bearerAuth, if any.
func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// bearerAuth decodes an optional bearer token. A valid token puts its claims
// into the request context. A missing, malformed or expired token leaves the
// request anonymous; the failure is kept for requireAuth to report.
func (s *HTTPServer) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authErrKey, common.ErrInvalidToken)))
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authErrKey, err)))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// requireAuth rejects requests that bearerAuth did not authenticate.
func (s *HTTPServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := claimsFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		msg := "Authorization required"
		if err, ok := r.Context().Value(authErrKey).(error); ok {
			msg = "Invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "Token expired"
			}
		}
		writeMessage(w, http.StatusUnauthorized, msg)
	})
}
