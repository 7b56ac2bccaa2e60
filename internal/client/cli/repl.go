package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL needs to operate. The real
// App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	List(ctx context.Context, args []string) error
	NewAccount(ctx context.Context) error
	Use(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Copy(ctx context.Context, args []string) error
	Cached(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Admin(ctx context.Context, args []string) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprintf(w, "cursorpool %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: home, (l)ist [page] [size], new, use <id> on|off, delete <id>, copy <id>, cached, profile, edit, admin <accounts|users|deleted on|off>, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, exit")
			}
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "home":
			a.Home(ctx)
		case "list", "l":
			a.List(ctx, args)
		case "new":
			a.NewAccount(ctx)
		case "use":
			a.Use(ctx, args)
		case "delete":
			a.Delete(ctx, args)
		case "copy":
			a.Copy(ctx, args)
		case "cached":
			a.Cached(ctx)
		case "profile":
			a.Profile(ctx)
		case "edit":
			a.EditProfile(ctx)
		case "admin":
			a.Admin(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintf(w, "Unknown command: %s\n", cmd)
		}
	}
}
