package evaluator

import (
	"strconv"
	"strings"

	"github.com/gomix-lang/monkey/ast"
	"github.com/gomix-lang/monkey/environment"
	"github.com/gomix-lang/monkey/object"
)

// evalExpressions evaluates each expression left-to-right, stopping (and
// returning a one-element slice holding just the error) at the first one
// that fails, so callers can check isError(result[0]) without scanning the
// whole slice.
func (e *Evaluator) evalExpressions(exps []ast.Expression, env *environment.Environment) []object.Object {
	result := make([]object.Object, 0, len(exps))

	for _, exp := range exps {
		evaluated := e.Eval(exp, env)
		if isError(evaluated) {
			return []object.Object{evaluated}
		}
		result = append(result, evaluated)
	}
	return result
}

// evalHashLiteral evaluates keys and values in source order; a non-string
// key is a type error. Pairs keeps insertion order, and a later duplicate
// key's value overwrites the earlier one, per spec.
func (e *Evaluator) evalHashLiteral(node *ast.HashLiteral, env *environment.Environment) object.Object {
	m := object.NewMap()

	for _, pair := range node.Pairs {
		key := e.Eval(pair.Key, env)
		if isError(key) {
			return key
		}
		strKey, ok := key.(*object.String)
		if !ok {
			return newError("map key must be a string, got %s", key.GetType())
		}

		val := e.Eval(pair.Value, env)
		if isError(val) {
			return val
		}
		m.Set(strKey.Value, val)
	}
	return m
}

func (e *Evaluator) evalIfExpression(ie *ast.IfExpression, env *environment.Environment) object.Object {
	condition := e.Eval(ie.Condition, env)
	if isError(condition) {
		return condition
	}

	truthy, err := isTruthy(condition)
	if err != nil {
		return err
	}

	if truthy {
		return e.Eval(ie.Consequence, env)
	} else if ie.Alternative != nil {
		return e.Eval(ie.Alternative, env)
	}
	return object.NULL
}

// isTruthy implements §4.4's condition rule: Bool(true) or Int(n != 0) are
// truthy, Bool(false) or Int(0) are falsy, and any other value type is a
// TypeError rather than a silently coerced truth value.
func isTruthy(val object.Object) (bool, *object.Error) {
	switch v := val.(type) {
	case *object.Boolean:
		return v.Value, nil
	case *object.Integer:
		return v.Value != 0, nil
	default:
		return false, newError("condition must be a bool or int, got %s", val.GetType())
	}
}

func (e *Evaluator) evalPrefixExpression(operator string, right object.Object) object.Object {
	switch operator {
	case "!":
		return evalNotOperator(right)
	case "-":
		return evalNegOperator(right)
	default:
		return newError("unknown prefix operator: %s%s", operator, right.GetType())
	}
}

// evalNotOperator implements the truth table spelled out for `!`: Null and
// Int(0) are truthy-negated to true, any other Int is false, Bool negates,
// and every other kind (string, array, map, function) is simply false. A
// Return is unwrapped first since ! on a just-returned value is still legal.
func evalNotOperator(right object.Object) object.Object {
	if rv, ok := right.(*object.ReturnValue); ok {
		right = rv.Value
	}
	switch v := right.(type) {
	case *object.Null:
		return object.TRUE
	case *object.Integer:
		return nativeBoolToBooleanObject(v.Value == 0)
	case *object.Boolean:
		return nativeBoolToBooleanObject(!v.Value)
	default:
		return object.FALSE
	}
}

func evalNegOperator(right object.Object) object.Object {
	i, ok := right.(*object.Integer)
	if !ok {
		return newError("unknown operator: -%s", right.GetType())
	}
	return &object.Integer{Value: -i.Value}
}

func (e *Evaluator) evalInfixExpression(operator string, left, right object.Object) object.Object {
	switch {
	case left.GetType() == object.INTEGER && right.GetType() == object.INTEGER:
		return evalIntegerInfixExpression(operator, left.(*object.Integer), right.(*object.Integer))

	case left.GetType() == object.NULL && right.GetType() == object.NULL:
		return evalNullInfixExpression(operator)

	case left.GetType() == object.BOOLEAN && right.GetType() == object.BOOLEAN:
		return evalBooleanInfixExpression(operator, left.(*object.Boolean), right.(*object.Boolean))

	case left.GetType() == object.STRING && right.GetType() == object.STRING:
		return evalStringInfixExpression(operator, left.(*object.String), right.(*object.String))

	case left.GetType() == object.STRING && right.GetType() == object.INTEGER:
		return evalStringIntInfixExpression(operator, left.(*object.String), right.(*object.Integer), true)
	case left.GetType() == object.INTEGER && right.GetType() == object.STRING:
		return evalStringIntInfixExpression(operator, right.(*object.String), left.(*object.Integer), false)

	case left.GetType() == object.INTEGER && right.GetType() == object.BOOLEAN:
		return evalIntBoolInfixExpression(operator, left.(*object.Integer), right.(*object.Boolean))
	case left.GetType() == object.BOOLEAN && right.GetType() == object.INTEGER:
		return evalIntBoolInfixExpression(operator, right.(*object.Integer), left.(*object.Boolean))

	default:
		return newError("type mismatch: %s %s %s", left.GetType(), operator, right.GetType())
	}
}

func evalIntegerInfixExpression(operator string, left, right *object.Integer) object.Object {
	l, r := left.Value, right.Value
	switch operator {
	case "+":
		return &object.Integer{Value: l + r}
	case "-":
		return &object.Integer{Value: l - r}
	case "*":
		return &object.Integer{Value: l * r}
	case "/":
		if r == 0 {
			return newError("division by zero")
		}
		return &object.Integer{Value: l / r}
	case "%":
		if r == 0 {
			return newError("division by zero")
		}
		return &object.Integer{Value: l % r}
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">=":
		return nativeBoolToBooleanObject(l >= r)
	case "==":
		return nativeBoolToBooleanObject(l == r)
	case "!=":
		return nativeBoolToBooleanObject(l != r)
	default:
		return newError("unknown operator: %s %s %s", left.GetType(), operator, right.GetType())
	}
}

func evalNullInfixExpression(operator string) object.Object {
	switch operator {
	case "==":
		return object.TRUE
	case "!=":
		return object.FALSE
	default:
		return newError("unknown operator: NULL %s NULL", operator)
	}
}

func evalBooleanInfixExpression(operator string, left, right *object.Boolean) object.Object {
	switch operator {
	case "==":
		return nativeBoolToBooleanObject(left.Value == right.Value)
	case "!=":
		return nativeBoolToBooleanObject(left.Value != right.Value)
	default:
		return newError("unknown operator: %s %s %s", left.GetType(), operator, right.GetType())
	}
}

func evalStringInfixExpression(operator string, left, right *object.String) object.Object {
	l, r := left.Value, right.Value
	switch operator {
	case "+":
		return &object.String{Value: l + r}
	case "==":
		return nativeBoolToBooleanObject(l == r)
	case "!=":
		return nativeBoolToBooleanObject(l != r)
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">=":
		return nativeBoolToBooleanObject(l >= r)
	default:
		return newError("unknown operator: %s %s %s", left.GetType(), operator, right.GetType())
	}
}

// evalStringIntInfixExpression handles a String paired with an Integer.
// stringIsLeft records source order, since "+"'s concatenation result
// depends on which operand came first. If the string parses cleanly as an
// int64, the pair is promoted and retried as (Int, Int).
func evalStringIntInfixExpression(operator string, str *object.String, num *object.Integer, stringIsLeft bool) object.Object {
	if n, err := strconv.ParseInt(str.Value, 10, 64); err == nil {
		promoted := &object.Integer{Value: n}
		if stringIsLeft {
			return evalIntegerInfixExpression(operator, promoted, num)
		}
		return evalIntegerInfixExpression(operator, num, promoted)
	}

	switch operator {
	case "+":
		if stringIsLeft {
			return &object.String{Value: str.Value + strconv.FormatInt(num.Value, 10)}
		}
		return &object.String{Value: strconv.FormatInt(num.Value, 10) + str.Value}
	case "*":
		switch {
		case num.Value == 0:
			return &object.String{Value: ""}
		case num.Value > 0:
			return &object.String{Value: strings.Repeat(str.Value, int(num.Value))}
		default:
			return newError("string repeat count must not be negative: %d", num.Value)
		}
	default:
		return newError("unknown operator: STRING %s INTEGER", operator)
	}
}

func evalIntBoolInfixExpression(operator string, num *object.Integer, b *object.Boolean) object.Object {
	numAsBool := num.Value != 0
	switch operator {
	case "==":
		return nativeBoolToBooleanObject(numAsBool == b.Value)
	case "!=":
		return nativeBoolToBooleanObject(numAsBool != b.Value)
	default:
		return newError("unknown operator: INTEGER %s BOOLEAN", operator)
	}
}

func (e *Evaluator) evalIndexExpression(left, index object.Object) object.Object {
	switch {
	case left.GetType() == object.ARRAY && index.GetType() == object.INTEGER:
		return evalArrayIndexExpression(left.(*object.Array), index.(*object.Integer))
	case left.GetType() == object.MAP && index.GetType() == object.STRING:
		return evalMapIndexExpression(left.(*object.Map), index.(*object.String))
	default:
		return newError("index operator not supported: %s[%s]", left.GetType(), index.GetType())
	}
}

// evalArrayIndexExpression applies the one-shot negative-index wraparound:
// a negative index is shifted into range by adding the length exactly once,
// then treated as an ordinary index. Still out of range returns Null.
func evalArrayIndexExpression(arr *object.Array, index *object.Integer) object.Object {
	i := index.Value
	n := int64(len(arr.Elements))

	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return object.NULL
	}
	return arr.Elements[i]
}

func evalMapIndexExpression(m *object.Map, key *object.String) object.Object {
	val, ok := m.Pairs[key.Value]
	if !ok {
		return object.NULL
	}
	return val
}
