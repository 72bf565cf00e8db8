package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/artstore/internal/client/client"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool                { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error  { return f.record("register", nil) }
func (f *fakeExec) Gallery(context.Context) error   { return f.record("gallery", nil) }
func (f *fakeExec) Purchased(context.Context) error { return f.record("purchased", nil) }
func (f *fakeExec) Profile(context.Context) error   { return f.record("profile", nil) }
func (f *fakeExec) Edit(context.Context) error      { return f.record("edit", nil) }
func (f *fakeExec) Buy(_ context.Context, a []string) error {
	return f.record("buy", a)
}
func (f *fakeExec) Topup(_ context.Context, a []string) error {
	return f.record("topup", a)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}

// capturePrint collects everything runREPL prints.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := capturePrint(t)

	reader := bufio.NewReader(strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"g",
		"gallery",
		"buy 12",
		"purchased",
		"profile",
		"topup 250",
		"topup",
		"edit",
		"logout",
		"register",
		"exit",
		"gallery",
	}, "\n")))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, reader)

	assert.Equal(t, []string{
		"login", "gallery", "gallery", "buy", "purchased", "profile",
		"topup", "topup", "edit", "logout", "register",
	}, exec.calls)
	assert.Equal(t, []string{"12"}, exec.args[3])
	assert.Equal(t, []string{"250"}, exec.args[6])
	assert.Empty(t, exec.args[7])

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "register, login")
	assert.Contains(t, joined, "buy <id>")
	assert.Contains(t, joined, "art> status > ")
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	out := capturePrint(t)

	reader := bufio.NewReader(strings.NewReader("foobar 1 2\nexit\n"))
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, reader)

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Unknown command: foobar")
}

func TestRunREPL_ErrorIsPrintedAndLoopContinues(t *testing.T) {
	out := capturePrint(t)

	reader := bufio.NewReader(strings.NewReader("profile\npurchased\nexit\n"))
	exec := &fakeExec{err: client.ErrNotLoggedIn}
	runREPL(context.Background(), exec, func() string { return "" }, reader)

	assert.Equal(t, []string{"profile", "purchased"}, exec.calls)
	n := 0
	for _, l := range *out {
		if l == "Please log in first." {
			n++
		}
	}
	assert.Equal(t, 2, n)
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	capturePrint(t)

	t.Run("last line without newline still runs", func(t *testing.T) {
		exec := &fakeExec{}
		runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("gallery")))
		assert.Equal(t, []string{"gallery"}, exec.calls)
	})

	t.Run("empty input", func(t *testing.T) {
		exec := &fakeExec{}
		runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("")))
		assert.Empty(t, exec.calls)
	})
}

func TestApp_GetStatus(t *testing.T) {
	ta := newTestApp(t)
	assert.Equal(t, "", ta.getStatus())

	ta.login(t, 1500)
	assert.Equal(t, "(ana $1500.00)", ta.getStatus())
}
