package funcli

import (
	"errors"

	"github.com/scbrown/funcli/introspect"
)

// Sentinel errors for every way synthesis can fail. All errors returned by
// this package wrap one of these (test with errors.Is) and name the offending
// function and, where it applies, the parameter.
var (
	// ErrMissingTypeAnnotation: a parameter has no type. Only reachable
	// through hand-built introspect.Function values; Go declarations always
	// carry types.
	ErrMissingTypeAnnotation = errors.New("missing type annotation")

	// ErrUnsupportedParameterType: the parameter's type has no coercion rule.
	ErrUnsupportedParameterType = errors.New("unsupported parameter type")

	// ErrNotInspectable: the callable's signature or source cannot be read.
	ErrNotInspectable = introspect.ErrNotInspectable

	// ErrReservedParameterName: a parameter collides with the dispatch key.
	ErrReservedParameterName = errors.New("parameter name is reserved for dispatch")

	// ErrEmptySignature: the function takes no parameters and the Config
	// requires at least one.
	ErrEmptySignature = errors.New("function takes no parameters")

	// ErrDuplicateCommandName: two functions resolve to the same command.
	ErrDuplicateCommandName = errors.New("duplicate command name")

	// ErrDispatchKeyCollision: every candidate dispatch key collides with a
	// parameter name.
	ErrDispatchKeyCollision = errors.New("no collision-free dispatch key")

	// ErrUnknownOverrideTarget: an override names a parameter that does not
	// exist.
	ErrUnknownOverrideTarget = errors.New("override targets unknown parameter")

	// ErrIllegalOverrideField: an override tries to change type, required
	// status or default value. Those stay derived from the code.
	ErrIllegalOverrideField = errors.New("override may not change type, required or default")

	// ErrNoCommandSelected: parsed values carry no recognized command name.
	ErrNoCommandSelected = errors.New("no command selected")
)
