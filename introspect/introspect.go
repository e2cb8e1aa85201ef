// Package introspect turns Go callables into a language-neutral description:
// an ordered parameter list (name, type, default) plus the raw doc comment.
// The rest of the library depends only on the Introspector interface, never
// on how the metadata was obtained.
package introspect

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotInspectable marks callables whose signature or source cannot be read:
// non-functions, closures, methods, and functions compiled without source
// available.
var ErrNotInspectable = errors.New("callable cannot be introspected")

// Param is one declared parameter of a callable.
type Param struct {
	Name string
	Type reflect.Type

	// Default holds the declared fallback value; HasDefault distinguishes
	// "defaults to nil" from "no default at all".
	Default    any
	HasDefault bool

	// Flag, Short and Help are explicit spellings carried by declarations
	// that can express them (struct tags). Empty means "derive".
	Flag  string
	Short string
	Help  string
}

// Function is the introspected shape of one callable.
type Function struct {
	Name   string
	Doc    string
	Params []Param

	// Invoke calls the underlying function with one value per Param, in
	// declaration order. Nil for hand-built Functions that are never called.
	Invoke func(args []reflect.Value) error
}

// Introspector describes callables. Implementations decide what counts as a
// valid callable and how names, types and defaults are discovered.
type Introspector interface {
	Describe(fn any) (Function, error)
}

// callError extracts the error result of a reflected call, if any.
func callError(results []reflect.Value) error {
	for _, r := range results {
		if r.Type() == errType {
			if r.IsNil() {
				return nil
			}
			return r.Interface().(error)
		}
	}
	return nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func notInspectable(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotInspectable)...)
}
