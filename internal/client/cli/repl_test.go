package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.record("register", nil)
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login", nil)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout", nil)
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Home(ctx context.Context) error { f.record("home", nil); return nil }
func (f *fakeExec) List(ctx context.Context, args []string) error {
	f.record("list", args)
	return nil
}
func (f *fakeExec) NewAccount(ctx context.Context) error { f.record("new", nil); return nil }
func (f *fakeExec) Use(ctx context.Context, args []string) error {
	f.record("use", args)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	f.record("delete", args)
	return nil
}
func (f *fakeExec) Copy(ctx context.Context, args []string) error {
	f.record("copy", args)
	return nil
}
func (f *fakeExec) Cached(ctx context.Context) error  { f.record("cached", nil); return nil }
func (f *fakeExec) Profile(ctx context.Context) error { f.record("profile", nil); return nil }
func (f *fakeExec) EditProfile(ctx context.Context) error {
	f.record("edit", nil)
	return nil
}
func (f *fakeExec) Admin(ctx context.Context, args []string) error {
	f.record("admin", args)
	return nil
}

func TestRunREPL_DispatchAndExit(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"login",
		"list 2 10",
		"l",
		"use 7 on",
		"delete 7",
		"copy 3",
		"admin accounts 2",
		"profile",
		"nonsense",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)), &out)

	want := []string{"login", "list", "list", "use", "delete", "copy", "admin", "profile", "logout"}
	require.Equal(t, want, exec.calls)
	require.Contains(t, out.String(), "Unknown command: nonsense")
	require.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_ArgsPassedThrough(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	var out bytes.Buffer
	input := "use 42 off\nadmin deleted on\n"
	runREPL(context.Background(), exec, func() string { return "(me)" }, bufio.NewScanner(strings.NewReader(input)), &out)

	require.Equal(t, []string{"use", "admin"}, exec.calls)
	require.Equal(t, []string{"42", "off"}, exec.args[0])
	require.Equal(t, []string{"deleted", "on"}, exec.args[1])
}

func TestRunREPL_EOFStopsLoop(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("home\n")), &out)
	require.Equal(t, []string{"home"}, exec.calls)
}

func TestRunREPL_HelpVariesWithLogin(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\nlogin\nhelp\nexit\n")), &out)

	s := out.String()
	require.Contains(t, s, "register, login, exit")
	require.Contains(t, s, "admin <accounts|users|deleted on|off>")
}
