package cli

import (
	"context"
	"fmt"

	"github.com/zoowayss/cursorpool/internal/client/session"
)

// Decision is the outcome of checking a protected command against the
// current session state.
type Decision int

const (
	// ShowLoading means identity resolution is in flight and the command
	// should not run yet.
	ShowLoading Decision = iota
	// RedirectLogin means the user is not authenticated.
	RedirectLogin
	// RedirectHome means the user is authenticated but lacks the admin
	// role required by the command.
	RedirectHome
	// Render means the command may proceed.
	Render
)

// Decide maps a session snapshot to a Decision for a protected command.
// Loading wins over everything else so a command issued mid-resolution
// neither runs nor bounces the user to login.
func Decide(st session.State, adminOnly bool) Decision {
	if st.Loading {
		return ShowLoading
	}
	if !st.Authenticated {
		return RedirectLogin
	}
	if adminOnly && !st.User.IsAdmin() {
		return RedirectHome
	}
	return Render
}

// guard applies Decide to the live session and handles the non-Render
// outcomes: it prints guidance for loading/login and falls back to the
// home screen for admin violations. Returns true when the command may run.
func (a *App) guard(ctx context.Context, adminOnly bool) bool {
	switch Decide(a.session.Snapshot(), adminOnly) {
	case ShowLoading:
		fmt.Fprintln(a.out, "verifying identity, try again in a moment")
		return false
	case RedirectLogin:
		fmt.Fprintln(a.out, "please sign in first (login)")
		return false
	case RedirectHome:
		fmt.Fprintln(a.out, "that command requires the admin role")
		if err := a.Home(ctx); err != nil {
			a.log.Error(ctx, "home screen", "error", err)
		}
		return false
	}
	return true
}
