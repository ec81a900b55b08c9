package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

func (a *App) chatUser() (string, string) {
	name := a.email
	if name == "" {
		name = "guest"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return name, string(unicode.ToUpper(r))
}

func (a *App) Chat(ctx context.Context) error {
	list, err := a.api.ChatMessages(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No messages")
		return nil
	}
	for _, m := range list {
		a.printMessage(m)
	}
	return nil
}

func (a *App) printMessage(m models.ChatMessage) {
	fmt.Fprintf(a.out, "#%d %s %s: %s\n", m.ID, m.Time.Local().Format("15:04"), m.User, m.Text)
	if m.ReplyTo != nil {
		fmt.Fprintf(a.out, "    > #%d %s: %s\n", m.ReplyTo.ID, m.ReplyTo.User, m.ReplyTo.Text)
	}
	if m.File != nil {
		fmt.Fprintf(a.out, "    [%s, %s]\n", m.File.Name, m.File.Size)
	}
}

func (a *App) send(ctx context.Context, d models.ChatDraft) error {
	d.User, d.Avatar = a.chatUser()
	d.Sent = true
	m, err := a.api.SendChat(ctx, d)
	if err != nil {
		return err
	}
	a.printMessage(*m)
	return nil
}

// Say posts a message: say <text...>.
func (a *App) Say(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: say <text>")
	}
	return a.send(ctx, models.ChatDraft{Text: strings.Join(args, " ")})
}

// Reply answers an earlier message: reply <id> <text...>.
func (a *App) Reply(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: reply <id> <text>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("bad message id %q", args[0])
	}
	return a.send(ctx, models.ChatDraft{Text: strings.Join(args[1:], " "), ReplyTo: id})
}

// Attach shares a file reference in chat: attach <path> [text...]. Only the
// name and size are sent.
func (a *App) Attach(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: attach <path> [text]")
	}
	fi, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", args[0])
	}
	return a.send(ctx, models.ChatDraft{
		Text: strings.Join(args[1:], " "),
		File: &models.ChatFile{Name: filepath.Base(args[0]), Size: humanize.Bytes(uint64(fi.Size()))},
	})
}
