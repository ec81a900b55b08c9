package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fileshare/internal/client/client"
	"github.com/dmitrijs2005/fileshare/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

const adminName = "admin"

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getSecret(a.out, "Enter password: ")
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register creates an account and logs straight in with it.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, email, string(password)); err != nil {
		return err
	}
	a.email = email
	a.saveSession(ctx)
	fmt.Fprintf(a.out, "Registered and logged in as %s\n", email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		return err
	}
	a.email = email
	a.saveSession(ctx)
	fmt.Fprintf(a.out, "Logged in as %s\n", email)
	return nil
}

func (a *App) Admin(ctx context.Context) error {
	secret, err := getSecret(a.out, "Enter admin secret: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	if err := a.api.AdminLogin(ctx, string(secret)); err != nil {
		return err
	}
	a.email = adminName
	a.saveSession(ctx)
	fmt.Fprintln(a.out, "Logged in as admin")
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}
	oldPassword, err := getSecret(a.out, "Current password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)
	newPassword, err := getSecret(a.out, "New password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)
	if len(newPassword) == 0 {
		return errors.New("new password must not be empty")
	}

	if err := a.api.ChangePassword(ctx, string(oldPassword), string(newPassword)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

// Logout forgets the token locally and in the session store.
func (a *App) Logout(ctx context.Context) error {
	a.api.SetToken("")
	a.email = ""
	if err := a.clearSession(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
