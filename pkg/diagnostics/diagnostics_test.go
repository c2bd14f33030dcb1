package diagnostics

import "testing"

func TestDiagnosticString(t *testing.T) {
	cases := []struct {
		diag Diagnostic
		want string
	}{
		{Diagnostic{Line: 3, Message: "Unexpected character."}, "[line 3] Error: Unexpected character."},
		{Diagnostic{Line: 1, Where: " at end", Message: "Expect expression."}, "[line 1] Error at end: Expect expression."},
		{Diagnostic{Line: 7, Where: " at ';'", Message: "Expect expression."}, "[line 7] Error at ';': Expect expression."},
	}
	for _, tc := range cases {
		if got := tc.diag.String(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestFormatRuntime(t *testing.T) {
	got := FormatRuntime("Operand must be a number.", 4)
	if got != "Operand must be a number.\n[line 4]" {
		t.Fatalf("unexpected runtime rendering %q", got)
	}
}

func TestCollectorKeepsOrder(t *testing.T) {
	var c Collector
	if c.HasErrors() {
		t.Fatalf("zero collector should be empty")
	}
	c.Report(Diagnostic{Line: 1, Message: "first"})
	c.Report(Diagnostic{Line: 2, Message: "second"})
	msgs := c.Messages()
	if len(msgs) != 2 || msgs[0] != "[line 1] Error: first" || msgs[1] != "[line 2] Error: second" {
		t.Fatalf("unexpected messages %v", msgs)
	}
	c.Reset()
	if c.HasErrors() {
		t.Fatalf("expected reset collector to be empty")
	}
}
