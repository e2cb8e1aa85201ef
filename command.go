package funcli

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/scbrown/funcli/docstring"
	"github.com/scbrown/funcli/introspect"
)

// NewCommand synthesizes the CLI schema of a single function: it introspects
// the callable, parses its doc comment, classifies every parameter and runs
// the command-wide short-flag scan. The resulting CommandSpec is complete and
// immutable; use WithOverrides to derive adjusted copies.
func NewCommand(fn any, cfg Config) (*CommandSpec, error) {
	f, err := cfg.introspector().Describe(fn)
	if err != nil {
		return nil, err
	}
	return newCommand(f, cfg)
}

func newCommand(f introspect.Function, cfg Config) (*CommandSpec, error) {
	if cfg.RequireParams && len(f.Params) == 0 {
		return nil, fmt.Errorf("%s: %w", f.Name, ErrEmptySignature)
	}

	name := f.Name
	if remapped, ok := cfg.Names[f.Name]; ok {
		name = remapped
	}

	paramNames := make([]string, 0, len(f.Params))
	seen := make(map[string]bool)
	for _, p := range f.Params {
		if p.Name == cfg.dispatchKey() {
			return nil, fmt.Errorf("%s: parameter %q: %w", f.Name, p.Name, ErrReservedParameterName)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%s: parameter %q declared twice", f.Name, p.Name)
		}
		seen[p.Name] = true
		paramNames = append(paramNames, p.Name)
	}

	summary, help := docstring.Parse(f.Doc, paramNames)

	cmd := &CommandSpec{Name: name, Summary: summary, fn: f}
	explicitShorts := make(map[string]string)
	for _, p := range f.Params {
		spec, err := classify(f.Name, p)
		if err != nil {
			return nil, err
		}
		switch {
		case p.Help != "":
			spec.Help = p.Help
		default:
			spec.Help = help[p.Name]
		}
		if spec.Kind == Bool && spec.Default == true {
			note := fmt.Sprintf("--%s to disable", spec.NoFlag)
			if spec.Help != "" {
				note = spec.Help + " (" + note + ")"
			}
			spec.Help = note
		}
		if p.Short != "" {
			explicitShorts[p.Name] = p.Short
		}
		cmd.Params = append(cmd.Params, spec)
	}
	assignShortFlags(cmd.Params, explicitShorts)

	if err := checkFlagSpellings(f.Name, cmd.Params); err != nil {
		return nil, err
	}
	// The scan never hands out duplicates, but explicit shorts can clash.
	if err := checkShortFlags(f.Name, cmd.Params); err != nil {
		return nil, err
	}
	return cmd, nil
}

// checkFlagSpellings rejects schemas whose long flags collide, including a
// parameter spelled like another boolean's negation. Conflicting flag pairs
// are a configuration mistake and surface here, at synthesis time, never as
// a parse-time surprise.
func checkFlagSpellings(fnName string, params []ParameterSpec) error {
	used := make(map[string]string)
	for _, p := range params {
		flags := []string{p.Flag}
		if p.NoFlag != "" {
			flags = append(flags, p.NoFlag)
		}
		for _, fl := range flags {
			if other, dup := used[fl]; dup {
				return fmt.Errorf("%s: flag --%s claimed by both %q and %q", fnName, fl, other, p.Name)
			}
			used[fl] = p.Name
		}
	}
	return nil
}

// Call invokes the underlying function with parsed values, bound by
// parameter name. Missing optional values fall back to the declared default;
// a missing required value is an error (the parsing engine normally enforces
// this first).
func (c *CommandSpec) Call(values map[string]any) error {
	args := make([]reflect.Value, len(c.Params))
	for i, p := range c.Params {
		raw, ok := values[p.Name]
		if !ok {
			if p.Required {
				return fmt.Errorf("%s: required flag --%s not set", c.Name, p.Flag)
			}
			raw = p.Default
		}
		v, err := coerce(raw, p)
		if err != nil {
			return fmt.Errorf("%s: flag --%s: %w", c.Name, p.Flag, err)
		}
		args[i] = v
	}
	if c.fn.Invoke == nil {
		return fmt.Errorf("%s: schema has no callable attached", c.Name)
	}
	return c.fn.Invoke(args)
}

// coerce converts a parsed value into the parameter's declared Go type,
// wrapping optionals into their pointer form.
func coerce(raw any, p ParameterSpec) (reflect.Value, error) {
	target := p.Type
	elem := target
	if target.Kind() == reflect.Pointer {
		if raw == nil {
			return reflect.Zero(target), nil
		}
		elem = target.Elem()
	}

	rv := reflect.ValueOf(raw)
	if !rv.IsValid() {
		return reflect.Zero(target), nil
	}
	if p.Kind == Enum {
		if rv.Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("expected string for enum, got %T", raw)
		}
		canon, err := MatchChoice(rv.String(), p.Choices)
		if err != nil {
			return reflect.Value{}, err
		}
		rv = reflect.ValueOf(canon)
	}
	if !rv.Type().ConvertibleTo(elem) {
		return reflect.Value{}, fmt.Errorf("cannot use %T as %s", raw, elem)
	}
	v := rv.Convert(elem)

	if target.Kind() == reflect.Pointer {
		ptr := reflect.New(elem)
		ptr.Elem().Set(v)
		return ptr, nil
	}
	return v, nil
}

// MatchChoice resolves an enum token against the legal values, trying the
// exact spelling first and a case-insensitive match second. It returns the
// canonical spelling.
func MatchChoice(s string, choices []string) (string, error) {
	for _, c := range choices {
		if s == c {
			return c, nil
		}
	}
	for _, c := range choices {
		if strings.EqualFold(s, c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid choice %q (choose from %s)", s, strings.Join(choices, ", "))
}
