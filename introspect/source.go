package introspect

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"runtime"
	"strings"
)

// Source introspects plain top-level functions by locating their declaration
// in the source file reported by the runtime and reading parameter names and
// the doc comment from the AST. Types come from reflection. A pointer-typed
// parameter is optional and defaults to nil; every other parameter is
// required.
type Source struct{}

// Describe implements Introspector.
func (Source) Describe(fn any) (Function, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return Function{}, notInspectable("%T is not a function", fn)
	}
	t := v.Type()
	if t.IsVariadic() {
		return Function{}, notInspectable("variadic functions are not supported")
	}

	decl, name, err := declOf(v)
	if err != nil {
		return Function{}, err
	}

	names := paramNames(decl)
	if len(names) != t.NumIn() {
		return Function{}, notInspectable("%s: source declares %d parameters, runtime reports %d",
			name, len(names), t.NumIn())
	}

	f := Function{Name: name, Doc: decl.Doc.Text()}
	for i, n := range names {
		if n == "_" {
			return Function{}, notInspectable("%s: unnamed parameter cannot be bound", name)
		}
		p := Param{Name: n, Type: t.In(i)}
		if p.Type.Kind() == reflect.Pointer {
			p.HasDefault = true // absent flag leaves the parameter nil
		}
		f.Params = append(f.Params, p)
	}
	f.Invoke = func(args []reflect.Value) error {
		return callError(v.Call(args))
	}
	return f, nil
}

// declOf finds the AST declaration of a reflected function value.
func declOf(v reflect.Value) (*ast.FuncDecl, string, error) {
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return nil, "", notInspectable("no runtime information for callable")
	}
	name := baseName(rf.Name())
	if !isPlainName(name) {
		return nil, "", notInspectable("%s is not a named top-level function", rf.Name())
	}

	file, _ := rf.FileLine(v.Pointer())
	if file == "" {
		return nil, "", notInspectable("%s: no source file recorded", name)
	}
	parsed, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ParseComments)
	if err != nil {
		return nil, "", notInspectable("%s: parse %s: %v", name, file, err)
	}

	for _, d := range parsed.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Recv != nil || fd.Name.Name != name {
			continue
		}
		return fd, name, nil
	}
	return nil, "", notInspectable("%s: declaration not found in %s", name, file)
}

// baseName strips the package path and qualifiers from a runtime symbol name.
func baseName(symbol string) string {
	if i := strings.LastIndexByte(symbol, '/'); i >= 0 {
		symbol = symbol[i+1:]
	}
	if i := strings.LastIndexByte(symbol, '.'); i >= 0 {
		symbol = symbol[i+1:]
	}
	return symbol
}

// isPlainName rejects the mangled names the runtime gives closures ("func1"),
// method values ("M-fm") and generic instantiations ("F[...]").
func isPlainName(name string) bool {
	if name == "" || strings.ContainsAny(name, "-[]") {
		return false
	}
	if strings.HasPrefix(name, "func") {
		rest := name[len("func"):]
		digits := rest != ""
		for _, r := range rest {
			if r < '0' || r > '9' {
				digits = false
				break
			}
		}
		if digits {
			return false
		}
	}
	return true
}

// paramNames flattens the declaration's parameter list, honoring grouped
// declarations like (a, b string).
func paramNames(decl *ast.FuncDecl) []string {
	var names []string
	if decl.Type.Params == nil {
		return names
	}
	for _, field := range decl.Type.Params.List {
		if len(field.Names) == 0 {
			// Unnamed parameter; cannot be bound by name.
			names = append(names, "_")
			continue
		}
		for _, n := range field.Names {
			names = append(names, n.Name)
		}
	}
	return names
}
