package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/netx"
)

type HTTPClient struct {
	baseURL string
	hc      *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	err := netx.DoJSON(ctx, c.hc, method, c.baseURL+path, c.Token(), in, out)
	return mapError(err)
}

// doAnon sends the request without the stored token, so a stale session
// never interferes with obtaining a new one.
func (c *HTTPClient) doAnon(ctx context.Context, method, path string, in, out any) error {
	err := netx.DoJSON(ctx, c.hc, method, c.baseURL+path, "", in, out)
	return mapError(err)
}

type tokenResponse struct {
	Token string `json:"token"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	var resp tokenResponse
	if err := c.doAnon(ctx, http.MethodPost, "/api/auth/register", credentials{email, password}, &resp); err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	var resp tokenResponse
	if err := c.doAnon(ctx, http.MethodPost, "/api/auth/login", credentials{email, password}, &resp); err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}

func (c *HTTPClient) AdminLogin(ctx context.Context, secret string) error {
	var resp tokenResponse
	req := struct {
		Secret string `json:"secret"`
	}{secret}
	if err := c.doAnon(ctx, http.MethodPost, "/api/auth/admin", req, &resp); err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if c.Token() == "" {
		return ErrNotLoggedIn
	}
	req := struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}{oldPassword, newPassword}
	return c.do(ctx, http.MethodPost, "/api/auth/password", req, nil)
}

func (c *HTTPClient) ListFiles(ctx context.Context) ([]models.File, error) {
	var list []models.File
	if err := c.do(ctx, http.MethodGet, "/api/files", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) Upload(ctx context.Context, u models.Upload) error {
	return c.do(ctx, http.MethodPost, "/api/files/upload", u, nil)
}

func (c *HTTPClient) Download(ctx context.Context, name string) (*models.File, error) {
	q := url.Values{"name": []string{name}}
	var f models.File
	if err := c.do(ctx, http.MethodGet, "/api/files/download?"+q.Encode(), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *HTTPClient) Activity(ctx context.Context) ([]models.Activity, error) {
	var list []models.Activity
	if err := c.do(ctx, http.MethodGet, "/api/activity/log", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) LogActivity(ctx context.Context, kind, text string) error {
	req := struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{kind, text}
	return c.do(ctx, http.MethodPost, "/api/activity/log", req, nil)
}

func (c *HTTPClient) ChatMessages(ctx context.Context) ([]models.ChatMessage, error) {
	var list []models.ChatMessage
	if err := c.do(ctx, http.MethodGet, "/api/chat/messages", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) SendChat(ctx context.Context, d models.ChatDraft) (*models.ChatMessage, error) {
	var m models.ChatMessage
	if err := c.do(ctx, http.MethodPost, "/api/chat/messages", d, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// mapError turns transport and status failures into sentinel errors the CLI
// can match with errors.Is. The server message is kept for display.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var se *netx.StatusError
	if errors.As(err, &se) {
		var kind error
		switch se.Code {
		case http.StatusBadRequest:
			kind = common.ErrorValidation
		case http.StatusUnauthorized, http.StatusForbidden:
			kind = ErrUnauthorized
		case http.StatusNotFound:
			kind = common.ErrorNotFound
		case http.StatusConflict:
			kind = common.ErrorAlreadyExists
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			kind = ErrUnavailable
		default:
			return fmt.Errorf("server error: %w", err)
		}
		if se.Message == "" {
			return kind
		}
		return fmt.Errorf("%w: %s", kind, se.Message)
	}

	var ne net.Error
	if errors.As(err, &ne) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
