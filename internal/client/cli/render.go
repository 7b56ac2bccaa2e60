package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/zoowayss/cursorpool/internal/client/models"
)

// narrowWidth is the terminal width below which tables collapse into
// stacked cards.
const narrowWidth = 80

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	labelStyle     = lipgloss.NewStyle().Faint(true)
	availableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	usedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	expiredStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	deletedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Strikethrough(true)
)

// termWidth returns the current terminal width, falling back to a wide
// layout when stdout is not a terminal.
func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 120
	}
	return w
}

func formatUnix(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04")
}

func statusCell(acc *models.Account, now time.Time) string {
	switch acc.StatusText(now) {
	case models.StatusExpired:
		return expiredStyle.Render(models.StatusExpired)
	case models.StatusUsed:
		return usedStyle.Render(models.StatusUsed)
	default:
		return availableStyle.Render(models.StatusAvailable)
	}
}

// pad right-pads s with spaces to the given display width, truncating
// with an ellipsis when it does not fit. Widths are measured with
// lipgloss so styled cells line up.
func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

func truncate(s string, width int) string {
	if width <= 1 {
		return strings.Repeat(".", width)
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// renderAccounts renders a page of accounts either as a table or, on
// narrow terminals, as stacked cards. Deleted rows (admin listings with
// deleted accounts shown) are struck through.
func renderAccounts(accs []*models.Account, now time.Time, width int) string {
	if len(accs) == 0 {
		return "no accounts on this page\n"
	}
	if width < narrowWidth {
		return renderAccountCards(accs, now)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(
		pad("ID", 8) + pad("EMAIL", 34) + pad("NAME", 20) + pad("EXPIRES", 18) + "STATUS"))
	b.WriteByte('\n')
	for _, acc := range accs {
		email := acc.Email
		if acc.IsDeleted == 1 {
			email = deletedStyle.Render(email)
		}
		b.WriteString(pad(fmt.Sprintf("%d", acc.ID), 8))
		b.WriteString(pad(email, 34))
		b.WriteString(pad(acc.FullName(), 20))
		b.WriteString(pad(formatUnix(acc.ExpireTime), 18))
		if acc.IsDeleted == 1 {
			b.WriteString(deletedStyle.Render("deleted"))
		} else {
			b.WriteString(statusCell(acc, now))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderAccountCards(accs []*models.Account, now time.Time) string {
	var b strings.Builder
	for i, acc := range accs {
		if i > 0 {
			b.WriteString(strings.Repeat("-", 24) + "\n")
		}
		b.WriteString(renderAccountCard(acc, now))
	}
	return b.String()
}

// renderAccountCard prints one account as a label/value card. Used both
// for narrow listings and for showing a freshly provisioned account.
func renderAccountCard(acc *models.Account, now time.Time) string {
	var b strings.Builder
	write := func(label, value string) {
		b.WriteString(labelStyle.Render(pad(label, 10)))
		b.WriteString(value)
		b.WriteByte('\n')
	}
	write("id", fmt.Sprintf("%d", acc.ID))
	write("email", acc.Email)
	if acc.Password != "" {
		write("password", acc.Password)
	}
	if name := acc.FullName(); name != "" {
		write("name", name)
	}
	write("created", formatUnix(acc.CreateTime))
	write("expires", formatUnix(acc.ExpireTime))
	if acc.IsDeleted == 1 {
		write("status", deletedStyle.Render("deleted"))
	} else {
		write("status", statusCell(acc, now))
	}
	return b.String()
}

func renderUsers(users []*models.User, width int) string {
	if len(users) == 0 {
		return "no users on this page\n"
	}
	var b strings.Builder
	if width < narrowWidth {
		for _, u := range users {
			role := u.Role
			if role == "" && u.IsAdmin() {
				role = models.RoleAdmin
			}
			fmt.Fprintf(&b, "#%d %s %s %s\n", u.ID, u.Username, u.Email, role)
		}
		return b.String()
	}
	b.WriteString(headerStyle.Render(pad("ID", 8) + pad("USERNAME", 22) + pad("EMAIL", 34) + "ROLE"))
	b.WriteByte('\n')
	for _, u := range users {
		b.WriteString(pad(fmt.Sprintf("%d", u.ID), 8))
		b.WriteString(pad(u.Username, 22))
		b.WriteString(pad(u.Email, 34))
		if u.IsAdmin() {
			b.WriteString(usedStyle.Render(models.RoleAdmin))
		} else {
			b.WriteString(u.Role)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderStats(st listStats) string {
	return fmt.Sprintf("total %d | %s %d | %s %d",
		st.Total,
		usedStyle.Render("used"), st.Used,
		availableStyle.Render("available"), st.Available)
}

func renderPager(p models.Page) string {
	pages := p.Pages()
	if pages == 0 {
		pages = 1
	}
	return fmt.Sprintf("page %d/%d (%d total)", p.Current, pages, p.Total)
}
