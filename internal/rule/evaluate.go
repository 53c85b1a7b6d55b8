// Package rule evaluates field-dependency expressions against current form
// values. Evaluation is pure and never panics: malformed rules degrade to a
// failing rule instead of propagating an error.
package rule

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/guptabinit/listform/internal/form"
)

// Evaluate applies a single dependency rule to the controller field's current
// value.
//
// Comparison semantics:
//   - ==empty / !=empty check list emptiness or scalar blankness.
//   - == / != compare numerically when the rule operand parses as a finite
//     number, otherwise as case-insensitive strings.
//   - ==pattern compiles the operand as a case-insensitive regular expression;
//     a source that does not compile fails the rule.
//   - ==contains is a case-insensitive substring test.
//
// Absent values coerce to "", so evaluation never dereferences a missing value.
func Evaluate(r form.Rule, controller form.Value) bool {
	switch r.Operator {
	case form.OpEmpty:
		return controller.IsEmpty()
	case form.OpNotEmpty:
		return !controller.IsEmpty()
	case form.OpEqual:
		return equals(r.Value, controller)
	case form.OpNotEqual:
		return !equals(r.Value, controller)
	case form.OpPattern:
		re, err := regexp.Compile("(?i)" + r.Value)
		if err != nil {
			return false
		}
		return re.MatchString(controller.Text())
	case form.OpContains:
		return strings.Contains(strings.ToLower(controller.Text()), strings.ToLower(r.Value))
	default:
		return false
	}
}

// equals compares the rule operand with the controller value, numerically when
// the operand itself is numeric.
func equals(operand string, controller form.Value) bool {
	if want, err := strconv.ParseFloat(operand, 64); err == nil && !math.IsInf(want, 0) {
		got, err := strconv.ParseFloat(strings.TrimSpace(controller.Text()), 64)
		if err != nil {
			return false
		}
		return got == want
	}
	return strings.EqualFold(controller.Text(), operand)
}
