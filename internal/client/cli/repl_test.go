package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
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

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Admin(ctx context.Context) error  { return f.record("admin", nil) }
func (f *fakeExec) Passwd(ctx context.Context) error { return f.record("passwd", nil) }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) List(ctx context.Context) error { return f.record("list", nil) }
func (f *fakeExec) Upload(ctx context.Context, args []string) error {
	return f.record("upload", args)
}
func (f *fakeExec) Download(ctx context.Context, args []string) error {
	return f.record("download", args)
}
func (f *fakeExec) Activity(ctx context.Context) error { return f.record("activity", nil) }
func (f *fakeExec) LogActivity(ctx context.Context, args []string) error {
	return f.record("log", args)
}
func (f *fakeExec) Chat(ctx context.Context) error { return f.record("chat", nil) }
func (f *fakeExec) Say(ctx context.Context, args []string) error {
	return f.record("say", args)
}
func (f *fakeExec) Reply(ctx context.Context, args []string) error {
	return f.record("reply", args)
}
func (f *fakeExec) Attach(ctx context.Context, args []string) error {
	return f.record("attach", args)
}

func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrint(t)

	input := bufio.NewReader(strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"ls",
		"upload ./a.txt",
		"get report final.pdf",
		"activity",
		"log SYSTEM_INIT hello",
		"chat",
		"say hi there",
		"reply 1 ok",
		"attach x.bin",
		"passwd",
		"admin",
		"register",
		"logout",
		"foobar",
		"exit",
		"ls",
	}, "\n")))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, input)

	want := []string{"login", "list", "upload", "download", "activity", "log", "chat", "say", "reply", "attach", "passwd", "admin", "register", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if got := strings.Join(exec.args[3], " "); got != "report final.pdf" {
		t.Fatalf("download args = %q", got)
	}
	if got := strings.Join(exec.args[8], " "); got != "1 ok" {
		t.Fatalf("reply args = %q", got)
	}
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	lines := capturePrint(t)

	input := bufio.NewReader(strings.NewReader("ls\nchat\nquit\n"))
	exec := &fakeExec{err: errors.New("boom")}

	runREPL(context.Background(), exec, func() string { return "s" }, input)

	if len(exec.calls) != 2 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	errs := 0
	for _, l := range *lines {
		if strings.HasPrefix(l, "Error: boom") {
			errs++
		}
	}
	if errs != 2 {
		t.Fatalf("expected 2 error lines, got %v", *lines)
	}
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	capturePrint(t)

	input := bufio.NewReader(strings.NewReader("ls"))
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "s" }, input)

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
