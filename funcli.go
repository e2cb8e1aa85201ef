// Package funcli synthesizes command-line parser schemas from Go functions.
// Parameter names, types, defaults and doc comments are the single source of
// truth: flags, help text, required/optional status and short aliases are all
// derived from the declaration, so the CLI cannot drift away from the code.
//
// The package produces CommandSpec and DispatchSpec values; package bind
// turns them into a cobra command tree. funcli itself never parses argv.
package funcli

import (
	"log/slog"
	"reflect"
	"strings"
	"unicode"

	"github.com/scbrown/funcli/introspect"
)

// Kind is the semantic type of a parameter, the thing that decides how a
// string token is coerced.
type Kind int

const (
	Unsupported Kind = iota
	String
	Int
	Float
	Bool
	Enum
	StringList
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Enum:
		return "enum"
	case StringList:
		return "string list"
	}
	return "unsupported"
}

// Chooser marks enumeration types: named string types that enumerate their
// legal values.
//
//	type format string
//	func (format) Choices() []string { return []string{"table", "json"} }
type Chooser interface {
	Choices() []string
}

// ParameterSpec is the derived CLI contract of one function parameter.
type ParameterSpec struct {
	Name  string // declared parameter name, used for binding
	Flag  string // long flag spelling (kebab-case of Name unless overridden)
	Short string // single-letter alias, "" when the letter was already claimed

	// NoFlag is the negating long flag of a boolean ("no-" + Flag); empty for
	// every other kind.
	NoFlag string

	Kind     Kind
	Required bool

	// Default is the declared fallback; HasDefault distinguishes an explicit
	// nil default (optional pointer parameter) from no default (required).
	Default    any
	HasDefault bool

	Help    string
	Metavar string
	Hidden  bool

	// Choices lists the legal values of an Enum parameter.
	Choices []string

	// Type is the Go type tokens are ultimately coerced into.
	Type reflect.Type
}

// CommandSpec is the full CLI schema synthesized from one function.
type CommandSpec struct {
	Name    string
	Summary string
	Params  []ParameterSpec

	fn introspect.Function
}

// Param returns the spec of the named parameter, or nil.
func (c *CommandSpec) Param(name string) *ParameterSpec {
	for i := range c.Params {
		if c.Params[i].Name == name {
			return &c.Params[i]
		}
	}
	return nil
}

// Config tunes synthesis. The zero value is a working default.
type Config struct {
	// Introspector describes callables; defaults to introspect.Source.
	Introspector introspect.Introspector

	// Names remaps function names to command names.
	Names map[string]string

	// RequireParams makes zero-parameter functions an ErrEmptySignature.
	RequireParams bool

	// Lenient makes NewDispatch skip uninspectable callables with a warning
	// instead of failing the batch.
	Lenient bool

	// DispatchKey overrides the reserved key carried through parsed values.
	// Defaults to "__command".
	DispatchKey string

	// ErrorOnNoCommand makes a bare invocation an error instead of usage
	// output. Read by package bind; Invoke always errors.
	ErrorOnNoCommand bool

	// Logger receives lenient-mode skip warnings; defaults to slog.Default.
	Logger *slog.Logger
}

func (c Config) introspector() introspect.Introspector {
	if c.Introspector != nil {
		return c.Introspector
	}
	return introspect.Source{}
}

func (c Config) dispatchKey() string {
	if c.DispatchKey != "" {
		return c.DispatchKey
	}
	return defaultDispatchKey
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

const defaultDispatchKey = "__command"

// kebabCase converts a Go identifier to its flag spelling: camelCase humps
// and underscores become hyphens, everything lowercased.
func kebabCase(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case r == '_':
			b.WriteByte('-')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = true
		}
	}
	return b.String()
}
