package funcli

import (
	"fmt"
	"sort"
)

// Override is a caller-supplied patch to one parameter's presentation:
// help text, flag spelling, short alias, metavar, visibility. The Kind,
// Required and Default fields exist so that an attempt to change them can be
// rejected explicitly; the derived values are ground truth from the code and
// overriding them would let the CLI contract drift away from the function.
type Override struct {
	Help    string
	Flag    string
	Short   string
	Metavar string
	Hidden  bool

	// Rejected when set. See ErrIllegalOverrideField.
	Kind     Kind
	Required *bool
	Default  any
}

// WithOverrides returns a copy of the schema with the given per-parameter
// overrides applied. The receiver is never mutated, and applying the same
// override map twice produces an identical result.
func (c *CommandSpec) WithOverrides(overrides map[string]Override) (*CommandSpec, error) {
	out := &CommandSpec{Name: c.Name, Summary: c.Summary, fn: c.fn}
	out.Params = make([]ParameterSpec, len(c.Params))
	copy(out.Params, c.Params)

	// Map order is random; a stable order keeps error reporting predictable.
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ov := overrides[name]
		p := out.Param(name)
		if p == nil {
			return nil, fmt.Errorf("%s: parameter %q: %w", c.Name, name, ErrUnknownOverrideTarget)
		}
		if ov.Kind != Unsupported || ov.Required != nil || ov.Default != nil {
			return nil, fmt.Errorf("%s: parameter %q: %w", c.Name, name, ErrIllegalOverrideField)
		}
		if ov.Help != "" {
			p.Help = ov.Help
		}
		if ov.Flag != "" {
			p.Flag = ov.Flag
			if p.Kind == Bool {
				p.NoFlag = "no-" + ov.Flag
			}
		}
		if ov.Short != "" {
			if len(ov.Short) != 1 {
				return nil, fmt.Errorf("%s: parameter %q: short flag %q is not a single character", c.Name, name, ov.Short)
			}
			p.Short = ov.Short
		}
		if ov.Metavar != "" {
			p.Metavar = ov.Metavar
		}
		if ov.Hidden {
			p.Hidden = true
		}
	}

	if err := checkFlagSpellings(c.Name, out.Params); err != nil {
		return nil, err
	}
	if err := checkShortFlags(c.Name, out.Params); err != nil {
		return nil, err
	}
	return out, nil
}

// checkShortFlags enforces the command-wide injectivity of short aliases
// after overrides have shuffled them.
func checkShortFlags(fnName string, params []ParameterSpec) error {
	used := make(map[string]string)
	for _, p := range params {
		if p.Short == "" {
			continue
		}
		if other, dup := used[p.Short]; dup {
			return fmt.Errorf("%s: short flag -%s claimed by both %q and %q", fnName, p.Short, other, p.Name)
		}
		used[p.Short] = p.Name
	}
	return nil
}
