// Package bind configures the external parsing engine (cobra/pflag) from
// synthesized funcli schemas. It is the only package that touches cobra; the
// schemas themselves know nothing about how tokens are parsed.
package bind

import (
	"reflect"
	"strings"

	"github.com/scbrown/funcli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Command builds a standalone cobra command for a single-function schema.
// This is the flat, no-sub-command mode: flags attach directly to the
// returned command and running it invokes the function.
func Command(spec *funcli.CommandSpec) *cobra.Command {
	return command(spec, spec.Call)
}

// Dispatch builds the root command of a multi-command schema: one sub-command
// per function, each routing its parsed values through the dispatch key back
// to DispatchSpec.Invoke. Running the root bare follows the configured
// policy: usage output by default, ErrNoCommandSelected with
// Config.ErrorOnNoCommand.
func Dispatch(d *funcli.DispatchSpec, use string, cfg funcli.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           use,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				// Unknown sub-command: route the name through the dispatch
				// key so the error carries near-miss suggestions.
				return d.Invoke(map[string]any{d.DispatchKey: args[0]})
			}
			if cfg.ErrorOnNoCommand {
				return funcli.ErrNoCommandSelected
			}
			return cmd.Help()
		},
	}
	for _, spec := range d.Commands() {
		spec := spec
		root.AddCommand(command(spec, func(values map[string]any) error {
			values[d.DispatchKey] = spec.Name
			return d.Invoke(values)
		}))
	}
	return root
}

// Run parses args against a freshly synthesized multi-command schema and
// invokes the selected function.
func Run(fns []any, use string, args []string, cfg funcli.Config) error {
	d, err := funcli.NewDispatch(fns, cfg)
	if err != nil {
		return err
	}
	root := Dispatch(d, use, cfg)
	root.SetArgs(args)
	return root.Execute()
}

// RunSingle parses args against a single function's schema and invokes it.
func RunSingle(fn any, args []string, cfg funcli.Config) error {
	spec, err := funcli.NewCommand(fn, cfg)
	if err != nil {
		return err
	}
	cmd := Command(spec)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func command(spec *funcli.CommandSpec, run func(map[string]any) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           spec.Name,
		Short:         spec.Summary,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
	}
	collect := addFlags(cmd, spec)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(collect(cmd.Flags()))
	}
	return cmd
}

// addFlags registers one pflag entry per parameter (two for booleans) and
// returns a collector that assembles the parsed values into the name-keyed
// mapping the schema binds by.
func addFlags(cmd *cobra.Command, spec *funcli.CommandSpec) func(*pflag.FlagSet) map[string]any {
	fs := cmd.Flags()
	for _, p := range spec.Params {
		usage := p.Help
		if p.Metavar != "" {
			usage = strings.TrimSpace(usage + " `" + p.Metavar + "`")
		}
		switch p.Kind {
		case funcli.String:
			fs.StringP(p.Flag, p.Short, defaultAs[string](p), usage)
		case funcli.Int:
			fs.Int64P(p.Flag, p.Short, defaultAs[int64](p), usage)
		case funcli.Float:
			fs.Float64P(p.Flag, p.Short, defaultAs[float64](p), usage)
		case funcli.StringList:
			fs.StringSliceP(p.Flag, p.Short, defaultAs[[]string](p), usage)
		case funcli.Enum:
			fs.VarP(&enumValue{value: defaultAs[string](p), choices: p.Choices}, p.Flag, p.Short, usage)
		case funcli.Bool:
			fs.BoolP(p.Flag, p.Short, defaultAs[bool](p), usage)
			// The negating flag exists for parsing but stays out of help.
			fs.Bool(p.NoFlag, false, "")
			fs.MarkHidden(p.NoFlag)
		}
		if p.Required {
			cmd.MarkFlagRequired(p.Flag)
		}
		if p.Hidden {
			fs.MarkHidden(p.Flag)
		}
	}

	params := spec.Params
	return func(fs *pflag.FlagSet) map[string]any {
		values := make(map[string]any, len(params))
		for _, p := range params {
			switch {
			case p.Kind == funcli.Bool:
				set, _ := fs.GetBool(p.Flag)
				if neg, _ := fs.GetBool(p.NoFlag); neg {
					set = false
				}
				values[p.Name] = set
			case fs.Changed(p.Flag):
				values[p.Name] = flagValue(fs, p)
			case p.HasDefault && p.Default != nil:
				values[p.Name] = p.Default
			}
		}
		return values
	}
}

// flagValue reads the typed value of a changed flag.
func flagValue(fs *pflag.FlagSet, p funcli.ParameterSpec) any {
	switch p.Kind {
	case funcli.Int:
		v, _ := fs.GetInt64(p.Flag)
		return v
	case funcli.Float:
		v, _ := fs.GetFloat64(p.Flag)
		return v
	case funcli.StringList:
		v, _ := fs.GetStringSlice(p.Flag)
		return v
	default: // String, Enum
		return fs.Lookup(p.Flag).Value.String()
	}
}

// defaultAs converts a schema default into the concrete type the flag is
// registered with.
func defaultAs[T any](p funcli.ParameterSpec) T {
	var zero T
	if p.Default == nil {
		return zero
	}
	rv := reflect.ValueOf(p.Default)
	target := reflect.TypeOf(zero)
	if !rv.Type().ConvertibleTo(target) {
		return zero
	}
	return rv.Convert(target).Interface().(T)
}

// enumValue is a pflag.Value that admits only the declared choices.
type enumValue struct {
	value   string
	choices []string
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	canon, err := funcli.MatchChoice(s, e.choices)
	if err != nil {
		return err
	}
	e.value = canon
	return nil
}

func (e *enumValue) Type() string { return strings.Join(e.choices, "|") }
