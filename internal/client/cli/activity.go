package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

func (a *App) Activity(ctx context.Context) error {
	list, err := a.api.Activity(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No activity")
		return nil
	}
	for _, e := range list {
		fmt.Fprintf(a.out, "%s [%s] %s\n", e.Time.Local().Format(time.DateTime), e.Type, e.Text)
	}
	return nil
}

// LogActivity appends an entry: log <TYPE> <text...>.
func (a *App) LogActivity(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: log <TYPE> <text>")
	}
	if err := a.api.LogActivity(ctx, strings.ToUpper(args[0]), strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Activity logged")
	return nil
}
