package funcli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DispatchSpec is the top-level schema for a multi-command CLI: one
// sub-command per function, plus the reserved key that carries the selected
// command name through the parsing result.
type DispatchSpec struct {
	// DispatchKey never collides with any parameter name of any command.
	DispatchKey string

	order  []string
	byName map[string]*CommandSpec
}

// Commands returns the command schemas in registration order.
func (d *DispatchSpec) Commands() []*CommandSpec {
	out := make([]*CommandSpec, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.byName[name])
	}
	return out
}

// Command returns the schema registered under name, or nil.
func (d *DispatchSpec) Command(name string) *CommandSpec {
	return d.byName[name]
}

// NewDispatch synthesizes a dispatch schema for a set of functions. Every
// function becomes a sub-command named after itself (or its Config.Names
// remapping). Synthesis either fully succeeds or reports every failing
// function; with Config.Lenient, uninspectable callables are skipped with a
// warning instead.
func NewDispatch(fns []any, cfg Config) (*DispatchSpec, error) {
	d := &DispatchSpec{byName: make(map[string]*CommandSpec)}

	var errs []error
	for _, fn := range fns {
		cmd, err := NewCommand(fn, cfg)
		if err != nil {
			if cfg.Lenient && errors.Is(err, ErrNotInspectable) {
				cfg.logger().Warn("skipping uninspectable callable", "error", err)
				continue
			}
			errs = append(errs, err)
			continue
		}
		if _, dup := d.byName[cmd.Name]; dup {
			errs = append(errs, fmt.Errorf("command %q: %w", cmd.Name, ErrDuplicateCommandName))
			continue
		}
		d.byName[cmd.Name] = cmd
		d.order = append(d.order, cmd.Name)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	key, err := chooseDispatchKey(cfg.dispatchKey(), d.Commands())
	if err != nil {
		return nil, err
	}
	d.DispatchKey = key
	return d, nil
}

// chooseDispatchKey finds an identifier that no parameter of any command
// uses: the configured base first, then numbered variants, then a random
// suffix. Running out of candidates is practically unreachable but still an
// error, not a panic.
func chooseDispatchKey(base string, cmds []*CommandSpec) (string, error) {
	taken := make(map[string]bool)
	for _, c := range cmds {
		for _, p := range c.Params {
			taken[p.Name] = true
		}
	}

	candidates := []string{base}
	for i := 1; i <= 8; i++ {
		candidates = append(candidates, fmt.Sprintf("%s_%d", base, i))
	}
	candidates = append(candidates, base+"_"+strings.ReplaceAll(uuid.NewString(), "-", "")[:12])

	for _, k := range candidates {
		if !taken[k] {
			return k, nil
		}
	}
	return "", fmt.Errorf("tried %d candidates derived from %q: %w", len(candidates), base, ErrDispatchKeyCollision)
}

// Invoke routes a parsed value mapping to the selected command: it reads the
// dispatch key, strips it, and calls the target function with the remaining
// values bound by parameter name. An absent or unknown command name is
// ErrNoCommandSelected, decorated with near-miss suggestions when the name
// merely looks misspelled.
func (d *DispatchSpec) Invoke(values map[string]any) error {
	sel, _ := values[d.DispatchKey].(string)
	if sel == "" {
		return ErrNoCommandSelected
	}
	cmd := d.byName[sel]
	if cmd == nil {
		if s := suggestCommands(sel, d.order); len(s) > 0 {
			return fmt.Errorf("unknown command %q (did you mean %s?): %w",
				sel, strings.Join(s, ", "), ErrNoCommandSelected)
		}
		return fmt.Errorf("unknown command %q: %w", sel, ErrNoCommandSelected)
	}

	rest := make(map[string]any, len(values)-1)
	for k, v := range values {
		if k != d.DispatchKey {
			rest[k] = v
		}
	}
	return cmd.Call(rest)
}
