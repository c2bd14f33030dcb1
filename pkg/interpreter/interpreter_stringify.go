package interpreter

import (
	"math"
	"strconv"

	"lox/interpreter-go/pkg/runtime"
)

// Values outside [1e-6, 1e21) switch to exponent form.
const (
	minPlainMagnitude = 1e-6
	maxPlainMagnitude = 1e21
)

// Display renders a value the way print shows it.
func Display(val runtime.Value) string {
	return valueToString(val)
}

func valueToString(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.NilValue:
		return "nil"
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.NumberValue:
		return formatNumber(v.Val)
	case runtime.StringValue:
		return v.Val
	case nil:
		return "nil"
	default:
		return "<" + val.Kind().String() + ">"
	}
}

// formatNumber prints integral values without a fractional part and other
// values in their shortest round-tripping decimal form.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if f == 0 || (abs >= minPlainMagnitude && abs < maxPlainMagnitude) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
