package cli

import (
	"context"
	"fmt"

	"github.com/zoowayss/cursorpool/internal/client/api"
	"github.com/zoowayss/cursorpool/internal/client/models"
)

// adminPanel is the state behind the admin screens: pagination for the
// all-accounts and all-users listings plus the show-deleted switch.
type adminPanel struct {
	accountsPage models.Page
	usersPage    models.Page
	showDeleted  bool
}

// Admin dispatches the admin subcommands:
//
//	admin accounts [page] [size]
//	admin users [page] [size]
//	admin deleted on|off
//
// All of them require the admin role; the guard bounces everyone else home.
func (a *App) Admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "usage: admin <accounts|users|deleted on|off>")
		return nil
	}
	switch args[0] {
	case "accounts":
		return a.adminAccounts(ctx, args[1:])
	case "users":
		return a.adminUsers(ctx, args[1:])
	case "deleted":
		return a.adminDeleted(ctx, args[1:])
	default:
		fmt.Fprintf(a.out, "unknown admin subcommand: %s\n", args[0])
		return nil
	}
}

func (a *App) adminAccounts(ctx context.Context, args []string) error {
	if !a.guard(ctx, true) {
		return nil
	}
	current := a.admin.accountsPage.Current
	if current == 0 {
		current = 1
	}
	size := a.admin.accountsPage.PageSize
	if size == 0 {
		size = a.config.PageSize
	}
	page, perPage := parseListArgs(args, current, size)

	resp, err := a.api.AdminAccounts(ctx, page, perPage, a.admin.showDeleted)
	if err != nil {
		a.reportError("listing all accounts", err)
		return err
	}
	a.admin.accountsPage = models.Page{Current: resp.Page, PageSize: resp.PerPage, Total: resp.Total}
	a.renderAdminAccounts(resp)
	return nil
}

func (a *App) renderAdminAccounts(resp *api.AccountPage) {
	if a.admin.showDeleted {
		fmt.Fprintln(a.out, "all accounts (deleted included):")
	} else {
		fmt.Fprintln(a.out, "all accounts:")
	}
	fmt.Fprint(a.out, renderAccounts(resp.Accounts, a.now(), a.width()))
	fmt.Fprintln(a.out, renderPager(a.admin.accountsPage))
}

func (a *App) adminUsers(ctx context.Context, args []string) error {
	if !a.guard(ctx, true) {
		return nil
	}
	current := a.admin.usersPage.Current
	if current == 0 {
		current = 1
	}
	size := a.admin.usersPage.PageSize
	if size == 0 {
		size = a.config.PageSize
	}
	page, perPage := parseListArgs(args, current, size)

	resp, err := a.api.AdminUsers(ctx, page, perPage)
	if err != nil {
		a.reportError("listing users", err)
		return err
	}
	a.admin.usersPage = models.Page{Current: resp.Page, PageSize: resp.PerPage, Total: resp.Total}
	fmt.Fprint(a.out, renderUsers(resp.Users, a.width()))
	fmt.Fprintln(a.out, renderPager(a.admin.usersPage))
	return nil
}

// adminDeleted flips the show-deleted switch and re-fetches the current
// admin accounts page so the listing reflects the new filter immediately.
func (a *App) adminDeleted(ctx context.Context, args []string) error {
	if !a.guard(ctx, true) {
		return nil
	}
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(a.out, "usage: admin deleted on|off")
		return nil
	}
	a.admin.showDeleted = args[0] == "on"
	return a.adminAccounts(ctx, nil)
}
