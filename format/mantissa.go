package format

import (
	"math"
	"strconv"
	"strings"
)

// Mantissa splits n into m and e with n = m·10^e and 1 <= |m| < 10.
// Zero, NaN and infinities are returned unchanged with e = 0.
//
// The digits come from strconv's shortest 'e' form, so m carries no noise
// from repeated division (Mantissa(-1234) is exactly -1.234, 3).
func Mantissa(n float64) (float64, int) {
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return n, 0
	}
	s := strconv.FormatFloat(n, 'e', -1, 64)
	digits, exp, _ := strings.Cut(s, "e")
	m, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return n, 0
	}
	e, err := strconv.Atoi(exp)
	if err != nil {
		return n, 0
	}
	return m, e
}
