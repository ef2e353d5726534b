package evaluator

import (
	"bytes"
	"testing"

	"github.com/gomix-lang/monkey/builtin"
	"github.com/gomix-lang/monkey/lexer"
	"github.com/gomix-lang/monkey/object"
	"github.com/gomix-lang/monkey/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEval(t *testing.T, input string) (object.Object, *bytes.Buffer) {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	require.Empty(t, p.Errors())

	var buf bytes.Buffer
	ev := New(builtin.New(&buf))
	env := ev.NewGlobalEnvironment()
	return ev.Eval(program, env), &buf
}

func TestEvalIntegerExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"5", 5},
		{"10", 10},
		{"-5", -5},
		{"5 + 5 + 5 + 5 - 10", 10},
		{"2 * 2 * 2 * 2 * 2", 32},
		{"-50 + 100 + -50", 0},
		{"5 * 2 + 10", 20},
		{"5 + 2 * 10", 25},
		{"20 + 2 * -10", 0},
		{"50 / 2 * 2 + 10", 60},
		{"2 * (5 + 10)", 30},
		{"3 * 3 * 3 + 10", 37},
		{"3 * (3 * 3) + 10", 37},
		{"(5 + 10 * 2 + 15 / 3) * 2 + -10", 50},
		{"7 % 3", 1},
	}
	for _, tt := range tests {
		result, _ := testEval(t, tt.input)
		assert.Equal(t, tt.expected, result.(*object.Integer).Value, "input=%s", tt.input)
	}
}

func TestEvalBooleanExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"true", true},
		{"false", false},
		{"1 < 2", true},
		{"1 > 2", false},
		{"1 < 1", false},
		{"1 == 1", true},
		{"1 != 1", false},
		{"1 == 2", false},
		{"true == true", true},
		{"true != false", true},
		{"(1 < 2) == true", true},
		{"1 <= 1", true},
		{"2 >= 1", true},
	}
	for _, tt := range tests {
		result, _ := testEval(t, tt.input)
		assert.Equal(t, tt.expected, result.(*object.Boolean).Value, "input=%s", tt.input)
	}
}

func TestBangOperator(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"!true", false},
		{"!false", true},
		{"!5", false},
		{"!0", true},
		{"!!true", true},
		{"!!5", true},
		{"!null", true},
	}
	for _, tt := range tests {
		result, _ := testEval(t, tt.input)
		assert.Equal(t, tt.expected, result.(*object.Boolean).Value, "input=%s", tt.input)
	}
}

func TestIfElseExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"if (true) { 10 }", int64(10)},
		{"if (false) { 10 }", nil},
		{"if (1) { 10 }", int64(10)},
		{"if (0) { 10 }", nil},
		{"if (1 < 2) { 10 }", int64(10)},
		{"if (1 > 2) { 10 } else { 20 }", int64(20)},
		{"if (1 < 2) { 10 } else { 20 }", int64(10)},
	}
	for _, tt := range tests {
		result, _ := testEval(t, tt.input)
		if tt.expected == nil {
			assert.Equal(t, object.NULL, result, "input=%s", tt.input)
		} else {
			assert.Equal(t, tt.expected.(int64), result.(*object.Integer).Value, "input=%s", tt.input)
		}
	}
}

func TestReturnStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"return 10;", 10},
		{"return 10; 9;", 10},
		{"return 2 * 5; 9;", 10},
		{"9; return 2 * 5; 9;", 10},
		{`
if (10 > 1) {
  if (10 > 1) {
    return 10;
  }
  return 1;
}
`, 10},
	}
	for _, tt := range tests {
		result, _ := testEval(t, tt.input)
		assert.Equal(t, tt.expected, result.(*object.Integer).Value, "input=%s", tt.input)
	}
}

func TestErrorHandling(t *testing.T) {
	tests := []string{
		"5 + true;",
		"5 + true; 5;",
		"true + false;",
		"5; true + false; 5",
		"if (1 < 2) { true + false; }",
		`
if (10 > 1) {
  if (10 > 1) {
    return true + false;
  }
  return 1;
}
`,
		`{"name": "x"} - {"name": "x"}`,
	}
	for _, input := range tests {
		result, _ := testEval(t, input)
		assert.Equal(t, object.ERROR, result.GetType(), "input=%s", input)
	}
}

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"let a = 5; a;", 5},
		{"let a = 5 * 5; a;", 25},
		{"let a = 5; let b = a; b;", 5},
		{"let a = 5; let b = a; let c = a + b + 5; c;", 15},
	}
	for _, tt := range tests {
		result, _ := testEval(t, tt.input)
		assert.Equal(t, tt.expected, result.(*object.Integer).Value, "input=%s", tt.input)
	}
}

func TestLetRebindingBuiltinIsError(t *testing.T) {
	result, _ := testEval(t, "let print = 1;")
	assert.Equal(t, object.ERROR, result.GetType())
}

func TestMissingIdentifierEvaluatesToNull(t *testing.T) {
	result, _ := testEval(t, "doesNotExist;")
	assert.Equal(t, object.NULL, result)
}

func TestNullIdentifierEvaluatesToNull(t *testing.T) {
	result, _ := testEval(t, "null;")
	assert.Equal(t, object.NULL, result)
}

func TestFunctionApplication(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"let identity = fn(x) { x; }; identity(5);", 5},
		{"let identity = fn(x) { return x; }; identity(5);", 5},
		{"let double = fn(x) { x * 2; }; double(5);", 10},
		{"let add = fn(x, y) { x + y; }; add(5, 5);", 10},
		{"let add = fn(x, y) { x + y; }; add(5 + 5, add(5, 5));", 20},
		{"fn(x) { x; }(5)", 5},
	}
	for _, tt := range tests {
		result, _ := testEval(t, tt.input)
		assert.Equal(t, tt.expected, result.(*object.Integer).Value, "input=%s", tt.input)
	}
}

func TestArityMismatchIsError(t *testing.T) {
	result, _ := testEval(t, "let add = fn(x, y) { x + y; }; add(1);")
	assert.Equal(t, object.ERROR, result.GetType())
}

// TestClosures is the headline invariant: a function returned from another
// captures its defining environment by reference, retaining access to it
// after the outer call has returned.
func TestClosures(t *testing.T) {
	input := `
let newAdder = fn(x) {
  fn(y) { x + y; };
};
let addTwo = newAdder(2);
addTwo(3);
`
	result, _ := testEval(t, input)
	assert.Equal(t, int64(5), result.(*object.Integer).Value)
}

// TestClosureObservesLaterBindingInCapturedScope exercises the DAG-sharing
// rule from §4.5: a let added to a scope after a closure captured it is
// still visible to that closure, because the capture is by reference.
func TestClosureObservesLaterBindingInCapturedScope(t *testing.T) {
	input := `
let makeGetter = fn() {
  fn() { counter; };
};
let getter = makeGetter();
let counter = 99;
getter();
`
	result, _ := testEval(t, input)
	assert.Equal(t, int64(99), result.(*object.Integer).Value)
}

func TestStringConcatenation(t *testing.T) {
	result, _ := testEval(t, `"Hello" + " " + "World!"`)
	assert.Equal(t, "Hello World!", result.(*object.String).Value)
}

func TestStringComparison(t *testing.T) {
	result, _ := testEval(t, `"abc" < "abd"`)
	assert.True(t, result.(*object.Boolean).Value)
}

func TestStringIntPromotion(t *testing.T) {
	result, _ := testEval(t, `"5" + 1`)
	assert.Equal(t, int64(6), result.(*object.Integer).Value)
}

func TestStringIntConcatenation(t *testing.T) {
	result, _ := testEval(t, `"abc" + 1`)
	assert.Equal(t, "abc1", result.(*object.String).Value)

	result, _ = testEval(t, `1 + "abc"`)
	assert.Equal(t, "1abc", result.(*object.String).Value)
}

func TestStringRepeat(t *testing.T) {
	result, _ := testEval(t, `"ab" * 3`)
	assert.Equal(t, "ababab", result.(*object.String).Value)

	result, _ = testEval(t, `"ab" * 0`)
	assert.Equal(t, "", result.(*object.String).Value)
}

func TestStringRepeatNegativeIsError(t *testing.T) {
	result, _ := testEval(t, `"ab" * -1`)
	assert.Equal(t, object.ERROR, result.GetType())
}

func TestIntBoolEquality(t *testing.T) {
	result, _ := testEval(t, `1 == true`)
	assert.True(t, result.(*object.Boolean).Value)

	result, _ = testEval(t, `0 == false`)
	assert.True(t, result.(*object.Boolean).Value)
}

func TestArrayLiterals(t *testing.T) {
	result, _ := testEval(t, "[1, 2 * 2, 3 + 3]")
	arr := result.(*object.Array)
	assert.Len(t, arr.Elements, 3)
	assert.Equal(t, int64(1), arr.Elements[0].(*object.Integer).Value)
	assert.Equal(t, int64(4), arr.Elements[1].(*object.Integer).Value)
	assert.Equal(t, int64(6), arr.Elements[2].(*object.Integer).Value)
}

func TestArrayIndexExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"[1, 2, 3][0]", int64(1)},
		{"[1, 2, 3][1]", int64(2)},
		{"[1, 2, 3][2]", int64(3)},
		{"let i = 0; [1][i];", int64(1)},
		{"[1, 2, 3][1 + 1];", int64(3)},
		{"let myArray = [1, 2, 3]; myArray[2];", int64(3)},
		{"[1, 2, 3][-1]", int64(3)},
		{"[1, 2, 3][-3]", int64(1)},
		{"[1, 2, 3][3]", nil},
		{"[1, 2, 3][-4]", nil},
	}
	for _, tt := range tests {
		result, _ := testEval(t, tt.input)
		if tt.expected == nil {
			assert.Equal(t, object.NULL, result, "input=%s", tt.input)
		} else {
			assert.Equal(t, tt.expected.(int64), result.(*object.Integer).Value, "input=%s", tt.input)
		}
	}
}

func TestHashLiterals(t *testing.T) {
	input := `{"one": 1, "two": 2, "three": 3}`
	result, _ := testEval(t, input)
	m := result.(*object.Map)
	assert.Equal(t, int64(1), m.Pairs["one"].(*object.Integer).Value)
	assert.Equal(t, int64(2), m.Pairs["two"].(*object.Integer).Value)
	assert.Equal(t, int64(3), m.Pairs["three"].(*object.Integer).Value)
}

func TestHashIndexExpressions(t *testing.T) {
	result, _ := testEval(t, `{"foo": 5}["foo"]`)
	assert.Equal(t, int64(5), result.(*object.Integer).Value)

	result, _ = testEval(t, `{"foo": 5}["bar"]`)
	assert.Equal(t, object.NULL, result)
}

func TestHashNonStringKeyIsError(t *testing.T) {
	result, _ := testEval(t, `{1: 2}`)
	assert.Equal(t, object.ERROR, result.GetType())
}

func TestPrintBuiltin(t *testing.T) {
	result, out := testEval(t, `print("hello", 5)`)
	assert.Equal(t, object.NULL, result)
	assert.Equal(t, "hello, 5\n", out.String())
}

func TestMeasureBuiltin(t *testing.T) {
	result, _ := testEval(t, `measure("abc")`)
	assert.Equal(t, int64(3), result.(*object.Integer).Value)
}

func TestFirstBuiltin(t *testing.T) {
	result, _ := testEval(t, `first([1, 2, 3])`)
	assert.Equal(t, int64(1), result.(*object.Integer).Value)
}

// TestArgumentEvaluationOrder pins down the left-to-right ordering
// guarantee: both arguments print before the call itself returns, in
// source order, regardless of which one the function body actually uses.
func TestArgumentEvaluationOrder(t *testing.T) {
	input := `
let trace = fn(x) { print(x); x };
let f = fn(a, b) { a };
f(trace(1), trace(2));
`
	_, out := testEval(t, input)
	assert.Equal(t, "1\n2\n", out.String())
}
