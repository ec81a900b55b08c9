package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/fileshare/internal/client/client"
	"github.com/dmitrijs2005/fileshare/internal/client/config"
	"github.com/dmitrijs2005/fileshare/internal/client/session"
)

type App struct {
	config  *config.Config
	api     client.Client
	session session.Repository
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer
	email   string
}

// openSession is a seam for tests.
var openSession = func(ctx context.Context, dsn string) (session.Repository, *sql.DB, error) {
	return session.Open(ctx, dsn)
}

// NewApp builds the CLI and restores a saved session, if any. A broken
// session store is reported and the CLI continues without persistence.
func NewApp(ctx context.Context, c *config.Config) *App {
	a := &App{
		config: c,
		api:    client.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	repo, db, err := openSession(ctx, c.SessionDB)
	if err != nil {
		fmt.Fprintf(a.out, "Session storage disabled: %v\n", err)
		return a
	}
	a.session, a.db = repo, db
	a.restoreSession(ctx)
	return a
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

func (a *App) getStatus() string {
	if a.email == "" {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", a.email)
}

// Run prints a greeting and blocks in the REPL until the user exits or input
// ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintf(a.out, "fileshare CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	if err := a.api.Health(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %v\n", err)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) restoreSession(ctx context.Context) {
	token, err := a.session.Get(ctx, session.KeyToken)
	if err != nil || len(token) == 0 {
		return
	}
	email, _ := a.session.Get(ctx, session.KeyEmail)
	a.api.SetToken(string(token))
	a.email = string(email)
}

func (a *App) saveSession(ctx context.Context) {
	if a.session == nil {
		return
	}
	if err := a.session.Set(ctx, session.KeyToken, []byte(a.api.Token())); err != nil {
		fmt.Fprintf(a.out, "Warning: session not saved: %v\n", err)
		return
	}
	_ = a.session.Set(ctx, session.KeyEmail, []byte(a.email))
}

func (a *App) clearSession(ctx context.Context) error {
	if a.session == nil {
		return nil
	}
	return a.session.Clear(ctx)
}
