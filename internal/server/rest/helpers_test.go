package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/activity"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/chat"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/files"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/users"
	"github.com/dmitrijs2005/fileshare/internal/server/services"
)

const testSecret = "k"

type testEnv struct {
	server   *HTTPServer
	handler  http.Handler
	activity *services.ActivityService
	users    *services.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = testSecret
	cfg.AdminSecret = "admin-secret"
	cfg.AccessTokenValidityDuration = time.Hour
	cfg.PasswordHashCost = bcrypt.MinCost

	as := services.NewActivityService(activity.NewMemoryRepository(100), nil, logging.Nop{})
	us := services.NewUserService(users.NewMemoryRepository(), as, logging.Nop{}, cfg)
	fs := services.NewFileService(files.NewMemoryRepository(), nil, as, logging.Nop{})
	cs := services.NewChatService(chat.NewMemoryRepository(), logging.Nop{})

	s := NewHTTPServer("127.0.0.1:0", logging.Nop{}, us, fs, as, cs, testSecret)
	return &testEnv{server: s, handler: s.Routes(), activity: as, users: us}
}

func (e *testEnv) do(t *testing.T, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func bearer(token string) []string {
	return []string{"Authorization", "Bearer " + token}
}

// failingFiles fails every call with err.
type failingFiles struct{ err error }

func (f failingFiles) AddFile(context.Context, services.UploadRequest) (*models.File, error) {
	return nil, f.err
}
func (f failingFiles) GetFiles(context.Context) ([]*models.File, error) { return nil, f.err }
func (f failingFiles) GetFile(context.Context, string) (*models.File, error) {
	return nil, f.err
}

// panicFiles panics on listing.
type panicFiles struct{ failingFiles }

func (panicFiles) GetFiles(context.Context) ([]*models.File, error) { panic("boom") }
