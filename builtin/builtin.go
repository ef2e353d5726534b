/*
File    : monkey/builtin/builtin.go
Package : builtin
*/

// Package builtin implements the three baseline native functions the core
// language exposes: print, measure, first. Registration beyond these is
// explicitly out of scope; see DESIGN.md for why the teacher's much larger
// standard library (file I/O, json, http, crypto, …) was not carried here.
package builtin

import (
	"fmt"
	"io"
	"strings"

	"github.com/gomix-lang/monkey/object"
)

// New builds the name->Builtin registry the evaluator looks up identifiers
// against. Output from print is written to w, so the REPL and a
// file-execution runner can point it at different writers without the
// evaluator caring.
func New(w io.Writer) map[string]*object.Builtin {
	return map[string]*object.Builtin{
		"print":   {Name: "print", Fn: printFn(w)},
		"measure": {Name: "measure", Fn: measureFn},
		"first":   {Name: "first", Fn: firstFn},
	}
}

// printFn converts each argument to its §6 display form, writes them
// joined by ", " followed by a newline, and always returns Null.
func printFn(w io.Writer) object.BuiltinFunction {
	return func(args ...object.Object) object.Object {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.ToString()
		}
		fmt.Fprintln(w, strings.Join(parts, ", "))
		return object.NULL
	}
}

// measureFn returns the length of each String or Array argument. Zero
// arguments, or any argument that is neither String nor Array, yields Null.
// A single argument returns a bare Int; more than one returns an Array of
// the per-argument lengths.
func measureFn(args ...object.Object) object.Object {
	if len(args) == 0 {
		return object.NULL
	}

	lengths := make([]object.Object, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case *object.String:
			lengths[i] = &object.Integer{Value: int64(len(v.Value))}
		case *object.Array:
			lengths[i] = &object.Integer{Value: int64(len(v.Elements))}
		default:
			return object.NULL
		}
	}

	if len(lengths) == 1 {
		return lengths[0]
	}
	return &object.Array{Elements: lengths}
}

// firstFn returns the first element of each Array argument. Zero arguments
// yields Null. One Array argument returns its first element, or Null if
// empty or not an Array. Multiple arguments each must be an Array — if any
// one of them is not, the whole call yields Null rather than a partial
// result; otherwise the result is an Array whose i-th entry is the first
// element of the i-th input (Null for an empty one).
func firstFn(args ...object.Object) object.Object {
	if len(args) == 0 {
		return object.NULL
	}

	if len(args) == 1 {
		arr, ok := args[0].(*object.Array)
		if !ok || len(arr.Elements) == 0 {
			return object.NULL
		}
		return arr.Elements[0]
	}

	for _, a := range args {
		if _, ok := a.(*object.Array); !ok {
			return object.NULL
		}
	}

	firsts := make([]object.Object, len(args))
	for i, a := range args {
		arr := a.(*object.Array)
		if len(arr.Elements) == 0 {
			firsts[i] = object.NULL
			continue
		}
		firsts[i] = arr.Elements[0]
	}
	return &object.Array{Elements: firsts}
}
