// Package rest exposes the fileshare services as a JSON API over HTTP.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type userSvc interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	AdminLogin(ctx context.Context, secret string) (string, error)
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error
}

type fileSvc interface {
	AddFile(ctx context.Context, req services.UploadRequest) (*models.File, error)
	GetFiles(ctx context.Context) ([]*models.File, error)
	GetFile(ctx context.Context, name string) (*models.File, error)
}

type activitySvc interface {
	Append(ctx context.Context, kind models.ActivityKind, text string) error
	ReadAll(ctx context.Context) ([]models.Activity, error)
}

type chatSvc interface {
	Send(ctx context.Context, req services.SendRequest) (*models.ChatMessage, error)
	Messages(ctx context.Context) ([]*models.ChatMessage, error)
}

type HTTPServer struct {
	address   string
	users     userSvc
	files     fileSvc
	activity  activitySvc
	chat      chatSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us userSvc, fs fileSvc, as activitySvc, cs chatSvc, secretKey string) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		files:     fs,
		activity:  as,
		chat:      cs,
		jwtSecret: []byte(secretKey),
	}
}

// Routes builds the router with all middleware attached.
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.bearerAuth)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)
		r.Post("/auth/admin", s.adminLogin)
		r.With(s.requireAuth).Post("/auth/password", s.changePassword)

		r.Get("/files", s.listFiles)
		r.Post("/files/upload", s.upload)
		r.Get("/files/download", s.download)

		r.Get("/activity/log", s.activityLog)
		r.Post("/activity/log", s.appendActivity)

		r.Get("/chat/messages", s.chatMessages)
		r.Post("/chat/messages", s.sendChatMessage)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			s.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
