package xfs

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders a float32 the way invariant-culture .NET tooling does:
// '.' as decimal separator and the shortest digits that round-trip. Exponent
// notation ("1E+07", "5E-05") is used when the decimal exponent is below -4
// or at least max(significant digits, 7).
func FormatFloat(v float32) string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	sci := strconv.FormatFloat(f, 'E', -1, 32)
	if exp, digits := splitExponent(sci); exp < -4 || exp >= max(digits, 7) {
		return sci
	}
	return strconv.FormatFloat(f, 'f', -1, 32)
}

// splitExponent returns the decimal exponent and significant digit count of
// a number formatted with 'E'.
func splitExponent(sci string) (exp, digits int) {
	mant, e, _ := strings.Cut(sci, "E")
	exp, _ = strconv.Atoi(e)
	for _, c := range mant {
		if c >= '0' && c <= '9' {
			digits++
		}
	}
	return exp, digits
}

// FormatBool renders booleans the way the XFS tooling always has.
func FormatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
