package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/zoowayss/cursorpool/internal/client/api"
	"github.com/zoowayss/cursorpool/internal/common"
)

// reportError prints a user-facing failure line for a backend call. Backend
// rejections surface their server message; 401s stay silent because the
// unauthorized hook already told the user to sign in again.
func (a *App) reportError(action string, err error) {
	if errors.Is(err, common.ErrUnauthorized) {
		return
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		fmt.Fprintf(a.out, "%s failed: %s\n", action, apiErr.Message)
		return
	}
	fmt.Fprintf(a.out, "%s failed: %v\n", action, err)
}

// Login prompts for credentials, authenticates, persists the returned token
// and refreshes the session from the backend so the stored user reflects
// the server's canonical view.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Password")
	if err != nil {
		return err
	}

	tok, user, err := a.api.Login(ctx, username, password)
	if err != nil {
		a.reportError("login", err)
		return err
	}
	if err := a.tokens.Save(ctx, tok); err != nil {
		a.log.Error(ctx, "saving token", "error", err)
	}
	a.session.UpdateUser(user)
	if _, err := a.session.FetchUserInfo(ctx); err != nil {
		a.log.Debug(ctx, "post-login refresh", "error", err)
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", username)
	return a.Home(ctx)
}

// Register creates a new backend user and signs it in immediately using the
// token the registration call returns.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Password")
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	if password != confirm {
		fmt.Fprintln(a.out, "passwords do not match")
		return nil
	}

	tok, user, err := a.api.Register(ctx, username, password, email)
	if err != nil {
		a.reportError("registration", err)
		return err
	}
	if err := a.tokens.Save(ctx, tok); err != nil {
		a.log.Error(ctx, "saving token", "error", err)
	}
	a.session.UpdateUser(user)
	if _, err := a.session.FetchUserInfo(ctx); err != nil {
		a.log.Debug(ctx, "post-register refresh", "error", err)
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", username)
	return a.Home(ctx)
}

// Logout clears the stored token, the cached accounts and the in-memory
// session. Purely local; the backend keeps no session state to revoke.
func (a *App) Logout(ctx context.Context) error {
	if err := a.tokens.Clear(ctx); err != nil {
		a.log.Error(ctx, "clearing token", "error", err)
	}
	if err := a.cache.Clear(ctx); err != nil {
		a.log.Error(ctx, "clearing account cache", "error", err)
	}
	a.session.Clear()
	a.accounts = accountList{}
	a.admin = adminPanel{}
	fmt.Fprintln(a.out, "signed out")
	return nil
}
