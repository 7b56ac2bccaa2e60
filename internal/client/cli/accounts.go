package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/zoowayss/cursorpool/internal/client/api"
	"github.com/zoowayss/cursorpool/internal/client/models"
	"github.com/zoowayss/cursorpool/internal/common"
)

type listStats struct {
	Total     int
	Used      int
	Available int
}

// accountList is the client-side state of the paginated account listing:
// the rows of the current page, the server-echoed pagination values and
// the derived usage counters. Mutations after backend acknowledgements
// adjust it in place instead of re-fetching.
type accountList struct {
	items []*models.Account
	page  models.Page
	stats listStats
}

// setPage replaces the list state with a freshly fetched server page. The
// echoed page, per_page and total are taken as-is; used/available are
// counted over the rows of this page, total is the server-wide count.
func (l *accountList) setPage(p *api.AccountPage) {
	l.items = p.Accounts
	l.page = models.Page{Current: p.Page, PageSize: p.PerPage, Total: p.Total}
	used := 0
	for _, acc := range p.Accounts {
		if acc.IsUsed == models.AccountUsed {
			used++
		}
	}
	l.stats = listStats{Total: p.Total, Used: used, Available: len(p.Accounts) - used}
}

func (l *accountList) find(id int64) *models.Account {
	for _, acc := range l.items {
		if acc.ID == id {
			return acc
		}
	}
	return nil
}

// markUsed flips the usage flag of a row after the backend acknowledged the
// change, keeping the used/available counters in step.
func (l *accountList) markUsed(id int64, used int) {
	acc := l.find(id)
	if acc == nil || acc.IsUsed == used {
		return
	}
	acc.IsUsed = used
	if used == models.AccountUsed {
		l.stats.Used++
		l.stats.Available--
	} else {
		l.stats.Used--
		l.stats.Available++
	}
}

// remove drops a row after a soft delete: the total shrinks by one and the
// usage counters adjust according to the removed account's prior flag.
// Returns the removed row, or nil when the id is not on this page.
func (l *accountList) remove(id int64) *models.Account {
	for i, acc := range l.items {
		if acc.ID != id {
			continue
		}
		l.items = append(l.items[:i], l.items[i+1:]...)
		l.stats.Total--
		if l.page.Total > 0 {
			l.page.Total--
		}
		if acc.IsUsed == models.AccountUsed {
			l.stats.Used--
		} else {
			l.stats.Available--
		}
		return acc
	}
	return nil
}

func parseListArgs(args []string, current, size int) (int, int) {
	page, perPage := current, size
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
			page = v
		}
	}
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil && v > 0 {
			perPage = v
		}
	}
	return page, perPage
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("an account id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid account id %q", args[0])
	}
	return id, nil
}

// List fetches and renders one page of the caller's accounts. Optional args
// are the page number and the page size; omitted values keep the current
// page and the configured size. The fetched page is also written to the
// local cache for offline viewing.
func (a *App) List(ctx context.Context, args []string) error {
	if !a.guard(ctx, false) {
		return nil
	}
	current := a.accounts.page.Current
	if current == 0 {
		current = 1
	}
	size := a.accounts.page.PageSize
	if size == 0 {
		size = a.config.PageSize
	}
	page, perPage := parseListArgs(args, current, size)

	resp, err := a.api.Accounts(ctx, page, perPage)
	if err != nil {
		a.reportError("listing accounts", err)
		return err
	}
	a.accounts.setPage(resp)
	a.cachePage(ctx, resp.Accounts)
	a.renderList()
	return nil
}

func (a *App) cachePage(ctx context.Context, accs []*models.Account) {
	tok, err := a.tokens.Load(ctx)
	if err != nil || tok == "" {
		return
	}
	if err := a.cache.StorePage(ctx, tok, accs); err != nil {
		a.log.Warn(ctx, "caching account page", "error", err)
	}
}

func (a *App) renderList() {
	fmt.Fprint(a.out, renderAccounts(a.accounts.items, a.now(), a.width()))
	fmt.Fprintln(a.out, renderStats(a.accounts.stats))
	fmt.Fprintln(a.out, renderPager(a.accounts.page))
}

// NewAccount provisions one fresh account and shows its full credentials.
// This is the only moment the password is guaranteed to be visible, so the
// detail card is printed before anything else. The listing is then
// refreshed from page one.
func (a *App) NewAccount(ctx context.Context) error {
	if !a.guard(ctx, false) {
		return nil
	}
	fmt.Fprintln(a.out, "provisioning a fresh account, this can take a while...")
	acc, err := a.api.NewAccount(ctx)
	if err != nil {
		a.reportError("provisioning", err)
		return err
	}
	fmt.Fprintln(a.out, "account ready:")
	fmt.Fprint(a.out, renderAccountCard(acc, a.now()))
	return a.List(ctx, []string{"1"})
}

// Use toggles the usage flag of an account: "use <id> on|off". Expired
// accounts are refused locally without a backend call.
func (a *App) Use(ctx context.Context, args []string) error {
	if !a.guard(ctx, false) {
		return nil
	}
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}
	if len(args) < 2 || (args[1] != "on" && args[1] != "off") {
		fmt.Fprintln(a.out, "usage: use <id> on|off")
		return nil
	}
	used := models.AccountAvailable
	if args[1] == "on" {
		used = models.AccountUsed
	}

	if acc := a.accounts.find(id); acc != nil && acc.Expired(a.now()) {
		fmt.Fprintf(a.out, "account %d is expired and cannot change status\n", id)
		return nil
	}

	if err := a.api.SetAccountStatus(ctx, id, used); err != nil {
		a.reportError("updating status", err)
		return err
	}
	a.accounts.markUsed(id, used)
	fmt.Fprintf(a.out, "account %d marked %s\n", id, args[1])
	return nil
}

// Delete soft-deletes an account after confirmation. On acknowledgement the
// row disappears from the local page and cache without a re-fetch.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.guard(ctx, false) {
		return nil
	}
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}
	ok, err := GetConfirm(a.reader, fmt.Sprintf("Delete account %d?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "cancelled")
		return nil
	}

	if err := a.api.DeleteAccount(ctx, id); err != nil {
		a.reportError("deleting account", err)
		return err
	}
	a.accounts.remove(id)
	if err := a.cache.Remove(ctx, id); err != nil {
		a.log.Warn(ctx, "removing cached account", "error", err)
	}
	fmt.Fprintf(a.out, "account %d deleted\n", id)
	return nil
}

// Copy prints the credentials of one listed account as a paste-ready block.
func (a *App) Copy(ctx context.Context, args []string) error {
	if !a.guard(ctx, false) {
		return nil
	}
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return nil
	}
	acc := a.accounts.find(id)
	if acc == nil {
		fmt.Fprintf(a.out, "account %d is not on the current page, run list first\n", id)
		return nil
	}
	fmt.Fprintf(a.out, "%s\n%s\n", acc.Email, acc.Password)
	return nil
}

// Cached renders the most recently fetched page from the local encrypted
// cache. Useful when the backend is unreachable; the data may be stale.
func (a *App) Cached(ctx context.Context) error {
	if !a.guard(ctx, false) {
		return nil
	}
	tok, err := a.tokens.Load(ctx)
	if err != nil {
		return err
	}
	if tok == "" {
		fmt.Fprintln(a.out, "no token available to open the cache")
		return common.ErrNoToken
	}
	accs, err := a.cache.Load(ctx, tok)
	switch {
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "nothing cached yet, run list while online")
		return nil
	case errors.Is(err, common.ErrCacheKeyMismatch):
		fmt.Fprintln(a.out, "cache was written under a different sign-in and cannot be read")
		return nil
	case err != nil:
		a.reportError("reading cache", err)
		return err
	}
	fmt.Fprintln(a.out, "cached copy (may be stale):")
	fmt.Fprint(a.out, renderAccounts(accs, a.now(), a.width()))
	return nil
}
