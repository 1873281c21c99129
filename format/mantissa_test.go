package format_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/unitlib/format"
	"github.com/stretchr/testify/assert"
)

func TestMantissa(t *testing.T) {
	cases := []struct {
		in float64
		m  float64
		e  int
	}{
		{1, 1, 0},
		{-1, -1, 0},
		{11, 1.1, 1},
		{9.81, 9.81, 0},
		{-1234, -1.234, 3},
		{10, 1, 1},
		{0.01, 1, -2},
		{0.99, 9.9, -1},
		{10.01, 1.001, 1},
		{6.02214076e23, 6.02214076, 23},
	}
	for _, tc := range cases {
		m, e := format.Mantissa(tc.in)
		assert.InDelta(t, tc.m, m, 1e-12, "mantissa of %v", tc.in)
		assert.Equal(t, tc.e, e, "exponent of %v", tc.in)
		assert.True(t, math.Abs(m) >= 1 && math.Abs(m) < 10, "normalized %v", m)
	}
}

func TestMantissa_Degenerate(t *testing.T) {
	m, e := format.Mantissa(0)
	assert.Equal(t, 0.0, m)
	assert.Zero(t, e)

	m, e = format.Mantissa(math.Inf(1))
	assert.True(t, math.IsInf(m, 1))
	assert.Zero(t, e)
}
