/*
File    : monkey/function/function.go
Package : function
*/

// Package function holds the Function object: a user-defined closure. It
// lives outside object so object never needs to import ast or environment —
// the same package-separation trick the evaluator's call path relies on to
// avoid an import cycle, since Function itself must import both.
package function

import (
	"strings"

	"github.com/gomix-lang/monkey/ast"
	"github.com/gomix-lang/monkey/environment"
	"github.com/gomix-lang/monkey/object"
)

// Function is a closure: its Parameters and Body come straight from the
// FunctionLiteral that produced it, and Env is a fresh child of the
// environment active at the point of definition; the child refers to that
// environment by pointer, so later bindings in it remain visible to the
// closure.
type Function struct {
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *environment.Environment
}

func (f *Function) GetType() object.Type { return object.FUNCTION }

func (f *Function) ToString() string {
	var out strings.Builder
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.String()
	}
	out.WriteString("fn(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") {\n  ")
	out.WriteString(f.Body.String())
	out.WriteString("\n}")
	return out.String()
}

func (f *Function) ToObject() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.String()
	}
	return "<function(" + strings.Join(params, ", ") + ")>"
}
