package evaluator

import (
	"github.com/gomix-lang/monkey/ast"
	"github.com/gomix-lang/monkey/environment"
	"github.com/gomix-lang/monkey/function"
	"github.com/gomix-lang/monkey/object"
)

// evalCallExpression implements §4.4's Call rule. A builtin short-circuits:
// its arguments are evaluated in the caller's environment and its result
// returned directly, never wrapped in Return. A user function instead gets
// a fresh call environment (child of its captured environment) in which its
// arguments are evaluated, so argument expressions can see the closure's
// own bindings — the call's arity must match exactly.
func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *environment.Environment) object.Object {
	callee := e.Eval(node.Function, env)
	if isError(callee) {
		return callee
	}

	if builtin, ok := callee.(*object.Builtin); ok {
		args := e.evalExpressions(node.Arguments, env)
		if len(args) == 1 && isError(args[0]) {
			return args[0]
		}
		return builtin.Fn(args...)
	}

	fn, ok := callee.(*function.Function)
	if !ok {
		return newError("not a function: %s", callee.GetType())
	}

	callEnv := environment.NewEnclosed(fn.Env)

	args := e.evalExpressions(node.Arguments, callEnv)
	if len(args) == 1 && isError(args[0]) {
		return args[0]
	}
	if len(args) != len(fn.Parameters) {
		return newError("wrong number of arguments: expected %d, got %d", len(fn.Parameters), len(args))
	}

	for i, param := range fn.Parameters {
		callEnv.Set(param.Value, args[i])
	}

	result := e.Eval(fn.Body, callEnv)
	if rv, ok := result.(*object.ReturnValue); ok {
		return rv.Value
	}
	return result
}
