package introspect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Struct introspects functions that take a single struct argument whose
// fields declare flags through tags:
//
//	type addArgs struct {
//	    Text string `flag:"text" short:"t" help:"note text"`
//	    Tag  string `flag:"tag" default:"general" help:"category tag"`
//	}
//	func add(a addArgs) error { ... }
//
// Unlike plain parameters, tagged fields can carry real default values; the
// tag is part of the declaration, so defaults remain ground truth from the
// code. Fields without a flag tag are skipped. The function's name and doc
// comment are read from source, like Source.
type Struct struct{}

// Describe implements Introspector.
func (Struct) Describe(fn any) (Function, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return Function{}, notInspectable("%T is not a function", fn)
	}
	t := v.Type()
	if t.NumIn() != 1 || t.In(0).Kind() != reflect.Struct {
		return Function{}, notInspectable("%T does not take a single struct argument", fn)
	}
	argType := t.In(0)

	decl, name, err := declOf(v)
	if err != nil {
		return Function{}, err
	}

	f := Function{Name: name, Doc: decl.Doc.Text()}
	var idx []int
	for i := 0; i < argType.NumField(); i++ {
		field := argType.Field(i)
		if !field.IsExported() {
			continue
		}
		flag, ok := field.Tag.Lookup("flag")
		if !ok {
			continue
		}
		p := Param{
			Name:  field.Name,
			Type:  field.Type,
			Flag:  flag,
			Short: field.Tag.Get("short"),
			Help:  field.Tag.Get("help"),
		}
		if field.Type.Kind() == reflect.Pointer {
			p.HasDefault = true
		}
		if d, ok := field.Tag.Lookup("default"); ok {
			val, err := parseDefault(d, field.Type)
			if err != nil {
				return Function{}, fmt.Errorf("%s: field %s: %w", name, field.Name, err)
			}
			p.Default = val
			p.HasDefault = true
		}
		f.Params = append(f.Params, p)
		idx = append(idx, i)
	}

	f.Invoke = func(args []reflect.Value) error {
		arg := reflect.New(argType).Elem()
		for j, a := range args {
			arg.Field(idx[j]).Set(a)
		}
		return callError(v.Call([]reflect.Value{arg}))
	}
	return f, nil
}

// parseDefault converts a default tag into a value of the field's type.
func parseDefault(s string, t reflect.Type) (any, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(s).Convert(t).Interface(), nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("bad bool default %q", s)
		}
		return b, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad integer default %q", s)
		}
		return reflect.ValueOf(n).Convert(t).Interface(), nil
	case reflect.Float32, reflect.Float64:
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("bad float default %q", s)
		}
		return reflect.ValueOf(x).Convert(t).Interface(), nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String && t.Elem() == reflect.TypeOf("") {
			if s == "" {
				return []string{}, nil
			}
			return strings.Split(s, ","), nil
		}
	}
	return nil, fmt.Errorf("default tag unsupported for type %s", t)
}
