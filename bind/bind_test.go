package bind

import (
	"bytes"
	"strings"
	"testing"

	"github.com/scbrown/funcli"
	"github.com/scbrown/funcli/introspect"
)

// Say hello.
//
// Arguments:
//
//	user: name of the user
//	times: how many greetings
func hello(user string, times *int) {
	n := 1
	if times != nil {
		n = *times
	}
	lastHello = struct {
		user  string
		times int
	}{user, n}
	helloInvoked++
}

// Say goodbye.
//
// Arguments:
//
//	user: name of the user
func bye(user string, verbose bool) {
	lastBye = struct {
		user    string
		verbose bool
	}{user, verbose}
	byeInvoked++
}

var (
	helloInvoked int
	byeInvoked   int
	lastHello    struct {
		user  string
		times int
	}
	lastBye struct {
		user    string
		verbose bool
	}
)

func reset() {
	helloInvoked = 0
	byeInvoked = 0
}

func execute(t *testing.T, fns []any, cfg funcli.Config, args ...string) (string, error) {
	t.Helper()
	d, err := funcli.NewDispatch(fns, cfg)
	if err != nil {
		t.Fatalf("NewDispatch: %v", err)
	}
	root := Dispatch(d, "greet", cfg)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

func TestDispatchInvokesSelectedCommand(t *testing.T) {
	reset()
	_, err := execute(t, []any{hello, bye}, funcli.Config{}, "hello", "--user", "gwenzek", "--times", "2")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if helloInvoked != 1 {
		t.Fatalf("hello invoked %d times, want 1", helloInvoked)
	}
	if byeInvoked != 0 {
		t.Error("bye must not be invoked")
	}
	if lastHello.user != "gwenzek" || lastHello.times != 2 {
		t.Errorf("hello called with %+v", lastHello)
	}
}

func TestShortFlags(t *testing.T) {
	reset()
	_, err := execute(t, []any{hello, bye}, funcli.Config{}, "hello", "-u", "gwenzek", "-t", "3")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if lastHello.user != "gwenzek" || lastHello.times != 3 {
		t.Errorf("hello called with %+v", lastHello)
	}
}

func TestMissingRequiredFlag(t *testing.T) {
	reset()
	_, err := execute(t, []any{hello, bye}, funcli.Config{}, "bye")
	if err == nil {
		t.Fatal("expected usage error for missing --user")
	}
	if !strings.Contains(err.Error(), "user") {
		t.Errorf("error should name the missing flag, got %v", err)
	}
	if byeInvoked != 0 {
		t.Error("bye must not be invoked on usage error")
	}
}

func TestBooleanFlagPair(t *testing.T) {
	reset()
	if _, err := execute(t, []any{hello, bye}, funcli.Config{}, "bye", "--user", "x", "--verbose"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !lastBye.verbose {
		t.Error("--verbose should set verbose true")
	}

	if _, err := execute(t, []any{hello, bye}, funcli.Config{}, "bye", "--user", "x", "--no-verbose"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if lastBye.verbose {
		t.Error("--no-verbose should set verbose false")
	}

	if _, err := execute(t, []any{hello, bye}, funcli.Config{}, "bye", "--user", "x"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if lastBye.verbose {
		t.Error("omitting both flags should leave the default false")
	}
}

func TestBooleanNegationWinsEitherOrder(t *testing.T) {
	// When both flags are supplied the negation wins, regardless of where
	// it appears on the command line.
	reset()
	for _, args := range [][]string{
		{"bye", "--user", "x", "--verbose", "--no-verbose"},
		{"bye", "--user", "x", "--no-verbose", "--verbose"},
	} {
		if _, err := execute(t, []any{hello, bye}, funcli.Config{}, args...); err != nil {
			t.Fatalf("Execute(%v): %v", args, err)
		}
		if lastBye.verbose {
			t.Errorf("args %v: verbose = true, want negation to win", args)
		}
	}
}

func TestUnknownCommandSuggestsNearMiss(t *testing.T) {
	reset()
	_, err := execute(t, []any{hello, bye}, funcli.Config{}, "helo")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), "did you mean") || !strings.Contains(err.Error(), "hello") {
		t.Errorf("unknown command should suggest hello, got %v", err)
	}
	if helloInvoked != 0 || byeInvoked != 0 {
		t.Error("no command may be invoked for an unknown name")
	}
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := execute(t, []any{hello, bye}, funcli.Config{}, "--help")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "bye") {
		t.Errorf("help should list sub-commands, got:\n%s", out)
	}
	if !strings.Contains(out, "Say hello.") {
		t.Errorf("help should show one-line summaries, got:\n%s", out)
	}
}

func TestSubcommandHelpShowsFlags(t *testing.T) {
	out, err := execute(t, []any{hello, bye}, funcli.Config{}, "hello", "--help")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{"--user", "-u", "name of the user", "--times"} {
		if !strings.Contains(out, want) {
			t.Errorf("sub-command help missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "--no-verbose") {
		t.Errorf("negation flags stay hidden in help:\n%s", out)
	}
}

func TestBareInvocationShowsUsage(t *testing.T) {
	out, err := execute(t, []any{hello, bye}, funcli.Config{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "Usage") && !strings.Contains(out, "Available Commands") {
		t.Errorf("bare invocation should print usage, got:\n%s", out)
	}
}

func TestBareInvocationErrorPolicy(t *testing.T) {
	_, err := execute(t, []any{hello, bye}, funcli.Config{ErrorOnNoCommand: true})
	if err == nil {
		t.Fatal("expected ErrNoCommandSelected with ErrorOnNoCommand")
	}
}

func TestRunSingle(t *testing.T) {
	reset()
	err := RunSingle(hello, []string{"--user", "solo"}, funcli.Config{})
	if err != nil {
		t.Fatalf("RunSingle: %v", err)
	}
	if helloInvoked != 1 || lastHello.user != "solo" || lastHello.times != 1 {
		t.Errorf("hello called with %+v (invoked %d)", lastHello, helloInvoked)
	}
}

type paintColor string

func (paintColor) Choices() []string { return []string{"red", "blue"} }

type paintArgs struct {
	Color paintColor `flag:"color" default:"red" help:"paint color"`
	Coats int        `flag:"coats" default:"2" help:"number of coats"`
}

var lastPaint paintArgs

// paint paints the fence.
func paint(a paintArgs) error {
	lastPaint = a
	return nil
}

func TestStructArgsEndToEnd(t *testing.T) {
	cfg := funcli.Config{Introspector: introspect.Struct{}}
	_, err := execute(t, []any{paint}, cfg, "paint", "--color", "BLUE")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if lastPaint.Color != "blue" {
		t.Errorf("Color = %q, want canonical blue", lastPaint.Color)
	}
	if lastPaint.Coats != 2 {
		t.Errorf("Coats = %d, want default 2", lastPaint.Coats)
	}
}

func TestSubcommandHelpShowsDefaults(t *testing.T) {
	// pflag renders registered defaults in help, so declared defaults are
	// visible without any extra text in the parameter descriptions.
	cfg := funcli.Config{Introspector: introspect.Struct{}}
	out, err := execute(t, []any{paint}, cfg, "paint", "--help")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{"(default 2)", "(default red)"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
}

func TestEnumRejectsUnknownChoice(t *testing.T) {
	cfg := funcli.Config{Introspector: introspect.Struct{}}
	_, err := execute(t, []any{paint}, cfg, "paint", "--color", "green")
	if err == nil || !strings.Contains(err.Error(), "choose from") {
		t.Errorf("err = %v, want invalid choice error", err)
	}
}

func TestTypeCoercionError(t *testing.T) {
	reset()
	_, err := execute(t, []any{hello, bye}, funcli.Config{}, "hello", "--user", "x", "--times", "many")
	if err == nil {
		t.Fatal("expected coercion error for non-integer --times")
	}
	if helloInvoked != 0 {
		t.Error("hello must not be invoked on coercion error")
	}
}
