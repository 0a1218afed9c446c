// printer.go — rendering runtime values for print and the REPL echo.
package lox

import (
	"math"
	"strconv"
)

// FormatValue renders a Value the way `print` shows it: nil prints as "nil",
// booleans as "true"/"false", numbers without a trailing ".0" when the value
// is mathematically integral, strings verbatim with no added quoting, and
// functions by their display name.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return formatNumber(v.Data.(float64))
	case VTStr:
		return v.Data.(string)
	case VTFun:
		return v.Data.(Callable).String()
	default:
		return "<unknown>"
	}
}

func formatNumber(f float64) string {
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	// 'f' with -1 precision keeps the shortest decimal form and never
	// switches to exponent notation, so 7 renders as "7" and 2.5 as "2.5".
	return strconv.FormatFloat(f, 'f', -1, 64)
}
