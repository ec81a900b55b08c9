package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/fileshare/internal/client/config"
	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

var errBoom = errors.New("boom")

type fakeAPI struct {
	token string

	files    map[string]models.File
	order    []string
	uploaded []models.Upload
	activity []models.Activity
	logged   [][2]string
	chat     []models.ChatMessage
	drafts   []models.ChatDraft

	lastEmail, lastPassword, lastSecret string
	lastOld, lastNew                    string

	err error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{files: map[string]models.File{}}
}

func (f *fakeAPI) Token() string         { return f.token }
func (f *fakeAPI) SetToken(token string) { f.token = token }

func (f *fakeAPI) Health(ctx context.Context) error { return f.err }

func (f *fakeAPI) Register(ctx context.Context, email, password string) error {
	f.lastEmail, f.lastPassword = email, password
	if f.err != nil {
		return f.err
	}
	f.token = "tok-" + email
	return nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) error {
	return f.Register(ctx, email, password)
}

func (f *fakeAPI) AdminLogin(ctx context.Context, secret string) error {
	f.lastSecret = secret
	if f.err != nil {
		return f.err
	}
	f.token = "tok-admin"
	return nil
}

func (f *fakeAPI) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	f.lastOld, f.lastNew = oldPassword, newPassword
	return f.err
}

func (f *fakeAPI) ListFiles(ctx context.Context) ([]models.File, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.File, 0, len(f.order))
	for _, n := range f.order {
		out = append(out, f.files[n])
	}
	return out, nil
}

func (f *fakeAPI) Upload(ctx context.Context, u models.Upload) error {
	if f.err != nil {
		return f.err
	}
	f.uploaded = append(f.uploaded, u)
	f.files[u.Name] = models.File{Name: u.Name, Description: u.Description, EncryptedData: u.EncryptedData, UserID: u.UserID}
	f.order = append(f.order, u.Name)
	return nil
}

func (f *fakeAPI) Download(ctx context.Context, name string) (*models.File, error) {
	if f.err != nil {
		return nil, f.err
	}
	file, ok := f.files[name]
	if !ok {
		return nil, errors.New("not found")
	}
	return &file, nil
}

func (f *fakeAPI) Activity(ctx context.Context) ([]models.Activity, error) {
	return f.activity, f.err
}

func (f *fakeAPI) LogActivity(ctx context.Context, kind, text string) error {
	f.logged = append(f.logged, [2]string{kind, text})
	return f.err
}

func (f *fakeAPI) ChatMessages(ctx context.Context) ([]models.ChatMessage, error) {
	return f.chat, f.err
}

func (f *fakeAPI) SendChat(ctx context.Context, d models.ChatDraft) (*models.ChatMessage, error) {
	f.drafts = append(f.drafts, d)
	if f.err != nil {
		return nil, f.err
	}
	m := models.ChatMessage{ID: int64(len(f.chat) + 1), User: d.User, Avatar: d.Avatar, Text: d.Text, Sent: d.Sent, File: d.File}
	f.chat = append(f.chat, m)
	return &m, nil
}

type fakeSession struct {
	data     map[string][]byte
	setErr   error
	clearErr error
}

func newFakeSession() *fakeSession { return &fakeSession{data: map[string][]byte{}} }

func (s *fakeSession) Get(ctx context.Context, key string) ([]byte, error) {
	return s.data[key], nil
}
func (s *fakeSession) Set(ctx context.Context, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}
func (s *fakeSession) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}
func (s *fakeSession) Clear(ctx context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.data = map[string][]byte{}
	return nil
}

// newTestApp builds an App over fakes. Lines feed getSimpleText and secrets
// feed getSecret, each in order.
func newTestApp(t *testing.T, api *fakeAPI, lines []string, secrets []string) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DownloadDir = t.TempDir()

	out := &bytes.Buffer{}
	a := &App{
		config:  cfg,
		api:     api,
		session: newFakeSession(),
		reader:  bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n")),
		out:     out,
	}

	origText, origSecret := getSimpleText, getSecret
	t.Cleanup(func() { getSimpleText, getSecret = origText, origSecret })

	getSimpleText = func(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
		return GetSimpleText(r, prompt, io.Discard)
	}
	getSecret = func(w io.Writer, prompt string) ([]byte, error) {
		if len(secrets) == 0 {
			return nil, io.EOF
		}
		s := secrets[0]
		secrets = secrets[1:]
		return []byte(s), nil
	}

	return a, out
}
