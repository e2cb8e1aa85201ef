package funcli

import (
	"fmt"
	"reflect"

	"github.com/scbrown/funcli/introspect"
)

var chooserType = reflect.TypeOf((*Chooser)(nil)).Elem()

// classify derives the CLI facts of a single parameter from its declaration.
// Help text and the short flag are filled in later: the first needs the doc
// comment, the second the command-wide letter scan.
func classify(fnName string, p introspect.Param) (ParameterSpec, error) {
	if p.Type == nil {
		return ParameterSpec{}, fmt.Errorf("%s: parameter %q: %w", fnName, p.Name, ErrMissingTypeAnnotation)
	}

	spec := ParameterSpec{
		Name:       p.Name,
		Flag:       p.Flag,
		Default:    p.Default,
		HasDefault: p.HasDefault,
		Type:       p.Type,
	}
	if spec.Flag == "" {
		spec.Flag = kebabCase(p.Name)
	}

	t := p.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		// A pointer parameter is optional even without a declared default:
		// absence of the flag leaves it nil.
		spec.HasDefault = true
	}

	spec.Kind = kindOf(t)
	switch spec.Kind {
	case Unsupported:
		return ParameterSpec{}, fmt.Errorf("%s: parameter %q has type %s: %w",
			fnName, p.Name, p.Type, ErrUnsupportedParameterType)
	case Bool:
		// A boolean is never required; omitting both flags means false.
		spec.NoFlag = "no-" + spec.Flag
		if !spec.HasDefault || spec.Default == nil {
			spec.Default = false
		}
		spec.HasDefault = true
	case Enum:
		spec.Choices = reflect.Zero(t).Interface().(Chooser).Choices()
	}

	spec.Required = spec.Kind != Bool && !spec.HasDefault
	return spec, nil
}

// kindOf maps a (non-pointer) Go type to its semantic kind.
func kindOf(t reflect.Type) Kind {
	if t.Implements(chooserType) && t.Kind() == reflect.String {
		return Enum
	}
	switch t.Kind() {
	case reflect.String:
		return String
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.Bool:
		return Bool
	case reflect.Slice:
		if t.Elem() == reflect.TypeOf("") {
			return StringList
		}
	}
	return Unsupported
}

// assignShortFlags runs the command-wide letter scan: in declaration order,
// the first parameter starting with a letter claims the single-character
// alias for it; later parameters starting with the same letter get none.
// Single-letter parameter names claim their letter before the scan, and
// explicit shorts (struct tags, overrides) are honored first as well.
func assignShortFlags(params []ParameterSpec, explicit map[string]string) {
	claimed := make(map[byte]string) // letter -> claiming parameter
	for i := range params {
		if s := explicit[params[i].Name]; s != "" {
			params[i].Short = s
			claimed[lowerByte(s[0])] = params[i].Name
		}
	}
	for i := range params {
		name := params[i].Name
		if len(name) == 1 {
			if _, taken := claimed[lowerByte(name[0])]; !taken {
				claimed[lowerByte(name[0])] = name
			}
		}
	}
	for i := range params {
		if params[i].Short != "" {
			continue
		}
		name := params[i].Name
		c := lowerByte(name[0])
		if c < 'a' || c > 'z' {
			continue
		}
		if owner, taken := claimed[c]; taken {
			if owner == name {
				params[i].Short = string(c)
			}
			continue
		}
		claimed[c] = name
		params[i].Short = string(c)
	}
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
