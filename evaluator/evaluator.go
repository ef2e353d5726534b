/*
File    : monkey/evaluator/evaluator.go
Package : evaluator
*/

// Package evaluator is the tree-walking interpreter: a recursive Eval over
// the ast package's node types, reading and writing an environment.Environment
// and producing object.Object values. It is single-threaded and synchronous —
// no node suspends or yields, matching the evaluator's own call-stack
// recursion to the AST's own recursive shape.
package evaluator

import (
	"fmt"

	"github.com/gomix-lang/monkey/ast"
	"github.com/gomix-lang/monkey/environment"
	"github.com/gomix-lang/monkey/function"
	"github.com/gomix-lang/monkey/object"
)

// Evaluator carries the registered builtins so a global environment can be
// seeded with them and so a let-binding that would shadow one can be
// rejected, per the OverrideError in the error table.
type Evaluator struct {
	Builtins map[string]*object.Builtin
}

// New creates an Evaluator backed by builtins (normally builtin.New(w)).
func New(builtins map[string]*object.Builtin) *Evaluator {
	return &Evaluator{Builtins: builtins}
}

// NewGlobalEnvironment returns an environment with every builtin already
// bound under its name, as §4.5's new_global() requires.
func (e *Evaluator) NewGlobalEnvironment() *environment.Environment {
	env := environment.New()
	for name, b := range e.Builtins {
		env.Set(name, b)
	}
	return env
}

func newError(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}

func isError(obj object.Object) bool {
	if obj == nil {
		return false
	}
	return obj.GetType() == object.ERROR
}

// Eval dispatches on the concrete ast.Node type. It is the single recursive
// entry point every sub-evaluator below calls back into.
func (e *Evaluator) Eval(node ast.Node, env *environment.Environment) object.Object {
	switch node := node.(type) {

	case *ast.Program:
		return e.evalProgram(node, env)
	case *ast.ExpressionStatement:
		return e.Eval(node.Expression, env)
	case *ast.BlockStatement:
		return e.evalBlockStatement(node, env)
	case *ast.LetStatement:
		return e.evalLetStatement(node, env)
	case *ast.ReturnStatement:
		val := e.Eval(node.Value, env)
		if isError(val) {
			return val
		}
		return &object.ReturnValue{Value: val}

	case *ast.IntegerLiteral:
		return &object.Integer{Value: node.Value}
	case *ast.StringLiteral:
		return &object.String{Value: node.Value}
	case *ast.Boolean:
		return nativeBoolToBooleanObject(node.Value)
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.ArrayLiteral:
		elements := e.evalExpressions(node.Elements, env)
		if len(elements) == 1 && isError(elements[0]) {
			return elements[0]
		}
		return &object.Array{Elements: elements}
	case *ast.HashLiteral:
		return e.evalHashLiteral(node, env)

	case *ast.PrefixExpression:
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return e.evalPrefixExpression(node.Operator, right)
	case *ast.InfixExpression:
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return e.evalInfixExpression(node.Operator, left, right)
	case *ast.IfExpression:
		return e.evalIfExpression(node, env)
	case *ast.FunctionLiteral:
		// Capture a child of the defining environment, not env itself, so
		// the closure's own frame never aliases a sibling's: §4.4 Function.
		captured := environment.NewEnclosed(env)
		return &function.Function{Parameters: node.Parameters, Body: node.Body, Env: captured}
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case *ast.IndexExpression:
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		index := e.Eval(node.Index, env)
		if isError(index) {
			return index
		}
		return e.evalIndexExpression(left, index)
	}

	return newError("unknown node type: %T", node)
}

// evalProgram runs top-level statements in order; a Return unwraps
// immediately instead of propagating further, since there is no enclosing
// call to do it for the program itself. An empty program evaluates to Null.
func (e *Evaluator) evalProgram(program *ast.Program, env *environment.Environment) object.Object {
	var result object.Object = object.NULL

	for _, stmt := range program.Statements {
		result = e.Eval(stmt, env)

		switch result := result.(type) {
		case *object.ReturnValue:
			return result.Value
		case *object.Error:
			return result
		}
	}
	return result
}

// evalBlockStatement runs a block's statements in order, returning a Return
// or Error as soon as one appears WITHOUT unwrapping it, so the enclosing
// function call is the one that unwraps exactly once.
func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement, env *environment.Environment) object.Object {
	var result object.Object = object.NULL

	for _, stmt := range block.Statements {
		result = e.Eval(stmt, env)

		if result != nil {
			rt := result.GetType()
			if rt == object.RETURN_VALUE || rt == object.ERROR {
				return result
			}
		}
	}
	return result
}

// evalLetStatement evaluates the binding's value and stores it under Name,
// rejecting an attempt to shadow a builtin's name anywhere in scope.
func (e *Evaluator) evalLetStatement(stmt *ast.LetStatement, env *environment.Environment) object.Object {
	if _, ok := e.Builtins[stmt.Name.Value]; ok {
		return newError("cannot redeclare builtin: %s", stmt.Name.Value)
	}

	val := e.Eval(stmt.Value, env)
	if isError(val) {
		return val
	}
	env.Set(stmt.Name.Value, val)
	return val
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *environment.Environment) object.Object {
	// "null" is an identifier rather than a keyword; it always means Null.
	if node.Value == "null" {
		return object.NULL
	}
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	// Soft NameError: the source treats a missing binding as Null rather
	// than raising.
	return object.NULL
}

func nativeBoolToBooleanObject(b bool) *object.Boolean {
	if b {
		return object.TRUE
	}
	return object.FALSE
}
