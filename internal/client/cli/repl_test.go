package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	isClosed bool
	fail     error
	done     chan struct{}

	calls []string
}

func (f *fakeExec) record(call string, args ...any) error {
	if len(args) > 0 {
		call += " " + strings.TrimSpace(fmt.Sprintln(args...))
	}
	f.calls = append(f.calls, call)
	return f.fail
}

func (f *fakeExec) sessionDone() <-chan struct{}             { return f.done }
func (f *fakeExec) closed() bool                             { return f.isClosed }
func (f *fakeExec) Show(ctx context.Context) error           { return f.record("show") }
func (f *fakeExec) Open(ctx context.Context, k string) error { return f.record("open", k) }
func (f *fakeExec) Type(ctx context.Context, t string) error { return f.record("type", t) }
func (f *fakeExec) Accept(ctx context.Context) error         { return f.record("accept") }
func (f *fakeExec) Cancel(ctx context.Context) error         { return f.record("cancel") }
func (f *fakeExec) Toggle(ctx context.Context, k string) error {
	return f.record("toggle", k)
}
func (f *fakeExec) Tags(ctx context.Context, k string) error { return f.record("tags", k) }
func (f *fakeExec) Select(ctx context.Context, k string, tags []string) error {
	return f.record("select", k, strings.Join(tags, "|"))
}
func (f *fakeExec) Deselect(ctx context.Context, k string, tags []string) error {
	return f.record("deselect", k, strings.Join(tags, "|"))
}
func (f *fakeExec) Done(ctx context.Context) error          { return f.record("done") }
func (f *fakeExec) Cite(ctx context.Context) error          { return f.record("cite") }
func (f *fakeExec) Uncite(ctx context.Context, n int) error { return f.record("uncite", n) }
func (f *fakeExec) Logo(ctx context.Context, p string) error {
	return f.record("logo", p)
}
func (f *fakeExec) Message(ctx context.Context, t string) error { return f.record("message", t) }
func (f *fakeExec) Payload(ctx context.Context) error           { return f.record("payload") }
func (f *fakeExec) Save(ctx context.Context) error {
	f.isClosed = true
	return f.record("save")
}
func (f *fakeExec) Search(ctx context.Context, q string) error { return f.record("search", q) }

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runScript(exec execIface, lines ...string) {
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, r, false)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runScript(exec,
		"show",
		"open description",
		"type   An  embedded engine ",
		"accept",
		"cancel",
		"toggle license",
		"tags oses",
		"select oses Linux, Mac OS X",
		"deselect oses Linux",
		"done",
		"cite",
		"uncite 2",
		"logo ./logo.png",
		"message fixed typo",
		"payload",
		"search sql",
		"save",
		"show",
	)

	assert.Equal(t, []string{
		"show",
		"open description",
		"type An  embedded engine",
		"accept",
		"cancel",
		"toggle license",
		"tags oses",
		"select oses Linux|Mac OS X",
		"deselect oses Linux",
		"done",
		"cite",
		"uncite 2",
		"logo ./logo.png",
		"message fixed typo",
		"payload",
		"search sql",
		"save",
	}, exec.calls, "the loop ends once the page is saved")
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runScript(exec, "", "open", "toggle", "select oses", "uncite two", "logo", "frobnicate", "help", "quit", "show")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: open <field>")
	assert.Contains(t, *out, "Usage: select <set> <tag>[, <tag>]")
	assert.Contains(t, *out, "Usage: uncite <n>")
	assert.Contains(t, *out, "Unknown command: frobnicate")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{fail: errors.New("unknown field")}
	runScript(exec, "open nope", "show")

	require.Len(t, exec.calls, 2)
	assert.Equal(t, []string{"Error: unknown field", "Error: unknown field"}, *out)
}

func TestRunREPL_PromptOnlyWhenInteractive(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	r := bufio.NewReader(strings.NewReader("show\n"))
	runREPL(context.Background(), exec, func() string { return "(*)" }, r, true)

	assert.Equal(t, []string{"edit (*)>", "edit (*)>"}, *out)
}

func TestRunREPL_ExitsWhenSessionClosesWhileWaiting(t *testing.T) {
	capturePrintln(t)

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	exec := &fakeExec{done: make(chan struct{})}
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(pr), false)
	}()

	// the loop is blocked on input when a background save completes
	close(exec.done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("REPL kept waiting for input after the session closed")
	}
	assert.Empty(t, exec.calls)
}

func TestRunREPL_ExitsOnContextCancel(t *testing.T) {
	capturePrintln(t)

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		runREPL(ctx, &fakeExec{}, func() string { return "" }, bufio.NewReader(pr), false)
	}()
	cancel()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("REPL ignored context cancellation")
	}
}
