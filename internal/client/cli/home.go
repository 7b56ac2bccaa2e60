package cli

import (
	"context"
	"fmt"
)

// Home prints the landing screen: who is signed in, a pool summary when a
// page has already been fetched, and where to go next.
func (a *App) Home(ctx context.Context) error {
	st := a.session.Snapshot()
	if !st.Authenticated || st.User == nil {
		fmt.Fprintln(a.out, "please sign in first (login)")
		return nil
	}

	fmt.Fprintf(a.out, "Signed in as %s", st.User.Username)
	if st.User.IsAdmin() {
		fmt.Fprint(a.out, " (admin)")
	}
	fmt.Fprintln(a.out)

	if a.accounts.page.Total > 0 {
		fmt.Fprintln(a.out, renderStats(a.accounts.stats))
	}
	fmt.Fprintln(a.out, "Commands: list shows your accounts, new provisions one, help lists everything")
	return nil
}
