package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// formatResult formats a result with the fmt verb, or in its shortest form
// when the verb is empty. The shortest form always shows a decimal point or
// an exponent, as in "7.0" or "1e+16", and names the special values "inf",
// "-inf", and "nan".
func formatResult(x float64, verb string) string {
	if verb != "" {
		return fmt.Sprintf(verb, x)
	}
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	if a := math.Abs(x); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
