package client

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/netx"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/activity"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/chat"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/files"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/users"
	"github.com/dmitrijs2005/fileshare/internal/server/rest"
	"github.com/dmitrijs2005/fileshare/internal/server/services"
)

// newTestServer runs the real API router over in-memory stores.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	cfg.AdminSecret = "admin-secret"
	cfg.AccessTokenValidityDuration = time.Hour
	cfg.PasswordHashCost = bcrypt.MinCost

	as := services.NewActivityService(activity.NewMemoryRepository(100), nil, logging.Nop{})
	us := services.NewUserService(users.NewMemoryRepository(), as, logging.Nop{}, cfg)
	fs := services.NewFileService(files.NewMemoryRepository(), nil, as, logging.Nop{})
	cs := services.NewChatService(chat.NewMemoryRepository(), logging.Nop{})

	s := rest.NewHTTPServer("127.0.0.1:0", logging.Nop{}, us, fs, as, cs, cfg.SecretKey)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestHTTPClient_Health(t *testing.T) {
	ts := newTestServer(t)
	c := NewHTTPClient(ts.URL+"/", time.Second)
	require.NoError(t, c.Health(context.Background()))
}

func TestHTTPClient_RegisterLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	c := NewHTTPClient(ts.URL, time.Second)
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "alice@x", "pw"))
	assert.NotEmpty(t, c.Token())

	err := c.Register(ctx, "alice@x", "pw")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Contains(t, err.Error(), "User already exists")

	c.SetToken("")
	err = c.Login(ctx, "alice@x", "nope")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Token())

	require.NoError(t, c.Login(ctx, "alice@x", "pw"))
	assert.NotEmpty(t, c.Token())

	err = c.Login(ctx, "", "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestHTTPClient_AuthCallsSendNoToken(t *testing.T) {
	var seen []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Path+" "+r.Header.Get(common.AuthorizationHeaderName))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/auth/register" {
			w.WriteHeader(http.StatusCreated)
		}
		_, _ = w.Write([]byte(`{"token":"fresh"}`))
	}))
	t.Cleanup(ts.Close)

	ctx := context.Background()
	c := NewHTTPClient(ts.URL, time.Second)

	c.SetToken("stale")
	require.NoError(t, c.Login(ctx, "a@x.io", "pw"))
	assert.Equal(t, "fresh", c.Token())

	c.SetToken("stale")
	require.NoError(t, c.Register(ctx, "b@x.io", "pw"))
	c.SetToken("stale")
	require.NoError(t, c.AdminLogin(ctx, "admin-secret"))

	assert.Equal(t, []string{"/api/auth/login ", "/api/auth/register ", "/api/auth/admin "}, seen)
}

func TestHTTPClient_LoginWithExpiredSession(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	c := NewHTTPClient(ts.URL, time.Second)
	require.NoError(t, c.Register(ctx, "a@x.io", "pw"))

	c.SetToken("expired.or.garbage")
	require.NoError(t, c.Login(ctx, "a@x.io", "pw"))
	assert.NotEqual(t, "expired.or.garbage", c.Token())

	_, err := c.ListFiles(ctx)
	assert.NoError(t, err)
}

func TestHTTPClient_AdminLogin(t *testing.T) {
	ts := newTestServer(t)
	c := NewHTTPClient(ts.URL, time.Second)
	ctx := context.Background()

	assert.ErrorIs(t, c.AdminLogin(ctx, "wrong"), ErrUnauthorized)
	require.NoError(t, c.AdminLogin(ctx, "admin-secret"))
	assert.NotEmpty(t, c.Token())
}

func TestHTTPClient_ChangePassword(t *testing.T) {
	ts := newTestServer(t)
	c := NewHTTPClient(ts.URL, time.Second)
	ctx := context.Background()

	assert.ErrorIs(t, c.ChangePassword(ctx, "pw", "pw2"), ErrNotLoggedIn)

	require.NoError(t, c.Register(ctx, "bob@x", "pw"))
	assert.ErrorIs(t, c.ChangePassword(ctx, "bad", "pw2"), ErrUnauthorized)
	require.NoError(t, c.ChangePassword(ctx, "pw", "pw2"))

	c.SetToken("")
	require.NoError(t, c.Login(ctx, "bob@x", "pw2"))
}

func TestHTTPClient_Files(t *testing.T) {
	ts := newTestServer(t)
	c := NewHTTPClient(ts.URL, time.Second)
	ctx := context.Background()

	list, err := c.ListFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, c.Register(ctx, "carol@x", "pw"))
	require.NoError(t, c.Upload(ctx, models.Upload{Name: "a b&c.txt", EncryptedData: b64("one")}))
	require.NoError(t, c.Upload(ctx, models.Upload{Name: "second.txt", Description: "2nd", EncryptedData: b64("two")}))

	err = c.Upload(ctx, models.Upload{Name: "second.txt", EncryptedData: b64("dup")})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	err = c.Upload(ctx, models.Upload{Name: "x"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	list, err = c.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a b&c.txt", list[0].Name)
	assert.Equal(t, "carol@x", list[0].UserID)
	assert.Equal(t, "A file named a b&c.txt", list[0].Description)
	assert.Equal(t, "2nd", list[1].Description)

	f, err := c.Download(ctx, "a b&c.txt")
	require.NoError(t, err)
	assert.Equal(t, b64("one"), f.EncryptedData)

	_, err = c.Download(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestHTTPClient_Activity(t *testing.T) {
	ts := newTestServer(t)
	c := NewHTTPClient(ts.URL, time.Second)
	ctx := context.Background()

	require.NoError(t, c.LogActivity(ctx, "SYSTEM_INIT", "hello"))
	assert.ErrorIs(t, c.LogActivity(ctx, "NOPE", "x"), common.ErrorValidation)
	require.NoError(t, c.Register(ctx, "dan@x", "pw"))

	list, err := c.Activity(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "USER_REGISTER", list[0].Type)
	assert.Equal(t, "New user registration: dan@x", list[0].Text)
	assert.Equal(t, "hello", list[1].Text)
}

func TestHTTPClient_Chat(t *testing.T) {
	ts := newTestServer(t)
	c := NewHTTPClient(ts.URL, time.Second)
	ctx := context.Background()

	first, err := c.SendChat(ctx, models.ChatDraft{User: "Ann", Text: "hi", Sent: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	reply, err := c.SendChat(ctx, models.ChatDraft{User: "Bo", Text: "yo", ReplyTo: first.ID})
	require.NoError(t, err)
	require.NotNil(t, reply.ReplyTo)
	assert.Equal(t, "hi", reply.ReplyTo.Text)

	_, err = c.SendChat(ctx, models.ChatDraft{User: "Bo"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	list, err := c.ChatMessages(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := NewHTTPClient(url, 200*time.Millisecond)
	err := c.Health(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "bad request", in: &netx.StatusError{Code: 400, Message: "m"}, want: common.ErrorValidation},
		{name: "unauthorized", in: &netx.StatusError{Code: 401}, want: ErrUnauthorized},
		{name: "forbidden", in: &netx.StatusError{Code: 403}, want: ErrUnauthorized},
		{name: "not found", in: &netx.StatusError{Code: 404}, want: common.ErrorNotFound},
		{name: "conflict", in: &netx.StatusError{Code: 409}, want: common.ErrorAlreadyExists},
		{name: "unavailable", in: &netx.StatusError{Code: 503}, want: ErrUnavailable},
		{name: "deadline", in: context.DeadlineExceeded, want: ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.in), tt.want)
		})
	}

	assert.NoError(t, mapError(nil))

	se := &netx.StatusError{Code: 500, Message: "boom"}
	err := mapError(se)
	var got *netx.StatusError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, "server error: 500: boom", err.Error())

	plain := errors.New("x")
	assert.Same(t, plain, mapError(plain))
}
