package interpreter

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func TestEvaluateArithmeticAndConcatenation(t *testing.T) {
	interp := New()
	cases := []struct {
		expr ast.Expression
		want runtime.Value
	}{
		{ast.Bin("+", ast.Num(1), ast.Bin("*", ast.Num(2), ast.Num(3))), runtime.NumberValue{Val: 7}},
		{ast.Bin("-", ast.Num(8), ast.Num(3)), runtime.NumberValue{Val: 5}},
		{ast.Bin("/", ast.Num(7), ast.Num(2)), runtime.NumberValue{Val: 3.5}},
		{ast.Un("-", ast.Group(ast.Num(4))), runtime.NumberValue{Val: -4}},
		{ast.Bin("+", ast.Str("ab"), ast.Str("cd")), runtime.StringValue{Val: "abcd"}},
		{ast.Bin("<", ast.Num(1), ast.Num(2)), runtime.BoolValue{Val: true}},
		{ast.Bin(">=", ast.Num(1), ast.Num(2)), runtime.BoolValue{Val: false}},
		{ast.Un("!", ast.Nil()), runtime.BoolValue{Val: true}},
		{ast.Un("!", ast.Num(0)), runtime.BoolValue{Val: false}},
		{ast.Un("!", ast.Str("")), runtime.BoolValue{Val: false}},
	}
	for _, tc := range cases {
		got, err := interp.Evaluate(tc.expr)
		if err != nil {
			t.Fatalf("%s: evaluation failed: %v", ast.Print(tc.expr), err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", ast.Print(tc.expr), tc.want, got)
		}
	}
}

func TestEvaluateEqualityIsTotal(t *testing.T) {
	interp := New()
	cases := []struct {
		expr ast.Expression
		want bool
	}{
		{ast.Bin("==", ast.Nil(), ast.Nil()), true},
		{ast.Bin("==", ast.Nil(), ast.Bool(false)), false},
		{ast.Bin("==", ast.Num(1), ast.Str("1")), false},
		{ast.Bin("==", ast.Str("a"), ast.Str("a")), true},
		{ast.Bin("!=", ast.Bool(true), ast.Bool(false)), true},
		{ast.Bin("==", ast.Num(0), ast.Un("-", ast.Num(0))), true},
	}
	for _, tc := range cases {
		got, err := interp.Evaluate(tc.expr)
		if err != nil {
			t.Fatalf("%s: evaluation failed: %v", ast.Print(tc.expr), err)
		}
		if got != (runtime.BoolValue{Val: tc.want}) {
			t.Fatalf("%s: expected %v, got %#v", ast.Print(tc.expr), tc.want, got)
		}
	}

	nan := ast.Bin("/", ast.Num(0), ast.Num(0))
	got, err := interp.Evaluate(ast.Bin("==", nan, nan))
	if err != nil || got != (runtime.BoolValue{Val: false}) {
		t.Fatalf("NaN must not equal itself, got %#v (%v)", got, err)
	}
}

func TestLogicalReturnsDecidingOperand(t *testing.T) {
	lines, err := runSource(t, `
print "hi" or 2;
print nil or "yes";
print nil and undefined;
print 1 and "second";
print false or false;
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"hi", "yes", "nil", "second", "false"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	lines, err := runSource(t, `
var a = "untouched";
true or (a = "touched");
false and (a = "touched");
print a;
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"untouched"}, lines); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestBlockScopingAndShadowing(t *testing.T) {
	lines, err := runSource(t, `
var a = "global a";
var b = "global b";
{
  var a = "outer a";
  {
    var a = "inner a";
    print a;
    print b;
    b = "changed b";
  }
  print a;
}
print a;
print b;
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"inner a", "global b", "outer a", "global a", "changed b"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestBlockBindingsDoNotLeak(t *testing.T) {
	interp, _ := newCapturing()
	if err := interp.Interpret(compileSource(t, "{ var inner = 1; }")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := interp.GlobalEnvironment().Lookup("inner"); ok {
		t.Fatalf("block binding leaked into globals")
	}
}

func TestVarDefaultsToNil(t *testing.T) {
	lines, err := runSource(t, "var a; print a; var a = 2; print a;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"nil", "2"}, lines); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignmentYieldsValue(t *testing.T) {
	lines, err := runSource(t, "var a; var b; print a = b = 3; print a + b;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"3", "6"}, lines); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestControlFlow(t *testing.T) {
	lines, err := runSource(t, `
var i = 0;
while (i < 3) {
  if (i == 1) print "one"; else print i;
  i = i + 1;
}
if (nil) print "never";
var fib = 0; var next = 1; var n = 0;
while (n < 10) { var tmp = fib; fib = next; next = tmp + next; n = n + 1; }
print fib;
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"0", "one", "2", "55"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpretWithTreeBuiltFromDSL(t *testing.T) {
	program := ast.Program(
		ast.Var("x", ast.Num(1)),
		ast.WhileS(ast.Bin("<", ast.ID("x"), ast.Num(100)),
			ast.Expr(ast.Set("x", ast.Bin("*", ast.ID("x"), ast.Num(2)))),
		),
		ast.PrintS(ast.ID("x")),
	)
	interp, out := newCapturing()
	if err := interp.Interpret(program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "128" {
		t.Fatalf("expected 128, got %q", out.String())
	}
}

func TestGlobalsPersistAcrossInterpretCalls(t *testing.T) {
	interp, out := newCapturing()
	if err := interp.Interpret(compileSource(t, "var count = 1;")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := interp.Interpret(compileSource(t, "count = count + 1; print count;")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"2"}, outputLines(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsupportedNodeIsAnError(t *testing.T) {
	interp := New()
	_, err := interp.Evaluate(nil)
	if err == nil {
		t.Fatalf("expected error for nil expression")
	}
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		t.Fatalf("internal failures are not runtime errors, got %v", err)
	}
}

func TestReevaluationIsRepeatable(t *testing.T) {
	interp, out := newCapturing()
	if err := interp.Interpret(compileSource(t, `var n = 4; var s = "x";`)); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	expr := ast.Logic("or",
		ast.Bin("==", ast.Bin("*", ast.ID("n"), ast.Group(ast.Bin("-", ast.Num(3), ast.Num(1)))), ast.Num(8)),
		ast.Bin("+", ast.ID("s"), ast.Str("y")),
	)
	first, err := interp.Evaluate(expr)
	if err != nil {
		t.Fatalf("first evaluation failed: %v", err)
	}
	second, err := interp.Evaluate(expr)
	if err != nil {
		t.Fatalf("second evaluation failed: %v", err)
	}
	if first != second || first != (runtime.BoolValue{Val: true}) {
		t.Fatalf("expected two identical true results, got %#v and %#v", first, second)
	}

	program := compileSource(t, `print n * 2 + 1; print s + "!"; print !nil == true;`)
	if err := interp.Interpret(program); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	firstOutput := outputLines(out)
	out.Reset()
	if err := interp.Interpret(program); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if diff := cmp.Diff(firstOutput, outputLines(out)); diff != "" {
		t.Fatalf("second run printed differently (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"9", "x!", "true"}, firstOutput); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"n", "s"}, interp.GlobalEnvironment().Keys()); diff != "" {
		t.Fatalf("re-running must not add bindings (-want +got):\n%s", diff)
	}
}
