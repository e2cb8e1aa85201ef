package funcli

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scbrown/funcli/introspect"
)

var typeCmp = cmp.Comparer(func(a, b reflect.Type) bool { return a == b })

func newCommandFromParams(t *testing.T, name, pname string, typ reflect.Type) (*CommandSpec, error) {
	t.Helper()
	f := introspect.Function{Name: name, Params: []introspect.Param{{Name: pname, Type: typ}}}
	return newCommand(f, Config{})
}

func overrideFixture(t *testing.T) *CommandSpec {
	t.Helper()
	cmd, err := NewCommand(hello, Config{})
	if err != nil {
		t.Fatalf("NewCommand: %v", err)
	}
	return cmd
}

func TestOverrideAppliesPresentationFields(t *testing.T) {
	cmd := overrideFixture(t)
	out, err := cmd.WithOverrides(map[string]Override{
		"times": {Help: "repeat count", Short: "n", Metavar: "N"},
	})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}

	p := out.Param("times")
	if p.Help != "repeat count" || p.Short != "n" || p.Metavar != "N" {
		t.Errorf("times = %+v", p)
	}

	// The original schema is untouched.
	if orig := cmd.Param("times"); orig.Help == "repeat count" || orig.Short == "n" {
		t.Errorf("original mutated: %+v", orig)
	}
}

func TestOverrideUnknownTarget(t *testing.T) {
	cmd := overrideFixture(t)
	_, err := cmd.WithOverrides(map[string]Override{"nope": {Help: "x"}})
	if !errors.Is(err, ErrUnknownOverrideTarget) {
		t.Errorf("err = %v, want ErrUnknownOverrideTarget", err)
	}
}

func TestOverrideIllegalFields(t *testing.T) {
	cmd := overrideFixture(t)
	required := false
	illegal := []Override{
		{Kind: Float},
		{Required: &required},
		{Default: 7},
	}
	for _, ov := range illegal {
		_, err := cmd.WithOverrides(map[string]Override{"times": ov})
		if !errors.Is(err, ErrIllegalOverrideField) {
			t.Errorf("override %+v: err = %v, want ErrIllegalOverrideField", ov, err)
		}
	}

	// A rejected override leaves the schema usable and unchanged.
	if p := cmd.Param("times"); p.Kind != Int || p.Required {
		t.Errorf("times corrupted after rejected override: %+v", p)
	}
}

func TestOverrideIdempotent(t *testing.T) {
	cmd := overrideFixture(t)
	ovs := map[string]Override{
		"user":  {Help: "who to greet", Short: "w"},
		"times": {Flag: "repeat"},
	}

	once, err := cmd.WithOverrides(ovs)
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}
	twice, err := once.WithOverrides(ovs)
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}

	if diff := cmp.Diff(once.Params, twice.Params, typeCmp); diff != "" {
		t.Errorf("override merge not idempotent (-once +twice):\n%s", diff)
	}
}

func TestOverrideShortCollision(t *testing.T) {
	cmd := overrideFixture(t)
	// user already holds -u; stealing it for times must fail loudly.
	_, err := cmd.WithOverrides(map[string]Override{"times": {Short: "u"}})
	if err == nil {
		t.Error("expected error for duplicate short flag")
	}
}

func TestOverrideBoolFlagRespelling(t *testing.T) {
	cmd, err := newCommandFromParams(t, "toggle", "verbose", reflect.TypeOf(false))
	if err != nil {
		t.Fatalf("newCommand: %v", err)
	}
	out, err := cmd.WithOverrides(map[string]Override{"verbose": {Flag: "loud"}})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}
	p := out.Param("verbose")
	if p.Flag != "loud" || p.NoFlag != "no-loud" {
		t.Errorf("flags = %q / %q, want loud / no-loud", p.Flag, p.NoFlag)
	}
}
