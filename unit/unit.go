package unit

import (
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/unitlib/diag"
)

// New returns the dimensionless identity unit: all exponents zero, factor 1.
func New() Unit {
	return Unit{Factor: 1}
}

// Base returns the unit basis vector for d with factor 1.
// An invalid d yields the identity unit.
func Base(d Dimension) Unit {
	u := New()
	if d.Valid() {
		u.Exps[d] = 1
	}
	return u
}

// Clone returns a deep copy of u.
func (u Unit) Clone() Unit {
	return u
}

// With returns a copy of u whose exponent for d is set to exp.
func (u Unit) With(d Dimension, exp int) Unit {
	if d.Valid() {
		u.Exps[d] = exp
	}
	return u
}

// Scaled returns a copy of u whose factor is set to factor.
func (u Unit) Scaled(factor float64) Unit {
	u.Factor = factor
	return u
}

// Dimensionless reports whether every exponent is zero.
func (u Unit) Dimensionless() bool {
	return u.Exps == Exponents{}
}

// Combine adds other's exponents into u. The factor of u is left untouched.
func (u *Unit) Combine(other *Unit) error {
	if u == nil || other == nil {
		return diag.Errorf(diag.InvalidArgument, "unit.combine", "nil unit")
	}
	exps := u.Exps
	for i := range exps {
		e, ok := addExp(exps[i], other.Exps[i])
		if !ok {
			return overflow("unit.combine", Dimension(i))
		}
		exps[i] = e
	}
	u.Exps = exps
	return nil
}

// AddUnit folds other into u `times` times:
// u.Exps[i] += times*other.Exps[i] and u.Factor *= other.Factor^times.
//
// It is the single accumulation primitive of the expression parser:
// times = ±1 merges a sub-expression, times = n raises a symbol to the n-th power.
// An exponent leaving the int range fails with ErrInvalidOperation and leaves
// u unmodified.
func (u *Unit) AddUnit(other *Unit, times int) error {
	if u == nil || other == nil {
		return diag.Errorf(diag.InvalidArgument, "unit.add", "nil unit")
	}
	exps := u.Exps
	for i := range exps {
		d, ok := mulExp(times, other.Exps[i])
		if ok {
			d, ok = addExp(exps[i], d)
		}
		if !ok {
			return overflow("unit.add", Dimension(i))
		}
		exps[i] = d
	}
	u.Exps = exps
	u.Factor *= math.Pow(other.Factor, float64(times))
	return nil
}

// Inverse negates every exponent and replaces the factor by its reciprocal.
// A zero factor has no reciprocal; u is left unmodified in that case.
func (u *Unit) Inverse() error {
	if u == nil {
		return diag.Errorf(diag.InvalidArgument, "unit.inverse", "nil unit")
	}
	if u.Factor == 0 {
		return diag.Errorf(diag.InvalidOperation, "unit.inverse", "division by zero: factor is 0")
	}
	for i, e := range u.Exps {
		if e == math.MinInt {
			return overflow("unit.inverse", Dimension(i))
		}
	}
	for i := range u.Exps {
		u.Exps[i] = -u.Exps[i]
	}
	u.Factor = 1 / u.Factor
	return nil
}

// Sqrt halves every exponent and takes the square root of the factor.
// Every exponent must be even; otherwise u is left unmodified.
func (u *Unit) Sqrt() error {
	if u == nil {
		return diag.Errorf(diag.InvalidArgument, "unit.sqrt", "nil unit")
	}
	for i, e := range u.Exps {
		if e%2 != 0 {
			return diag.Errorf(diag.InvalidOperation, "unit.sqrt",
				"cannot take root of an odd exponent (%s^%d)", Dimension(i).Symbol(), e)
		}
	}
	if u.Factor < 0 {
		return diag.Errorf(diag.InvalidOperation, "unit.sqrt", "cannot take root of negative factor %g", u.Factor)
	}
	for i := range u.Exps {
		u.Exps[i] /= 2
	}
	u.Factor = math.Sqrt(u.Factor)
	return nil
}

// addExp returns a+b and false if the sum overflows.
func addExp(a, b int) (int, bool) {
	s := a + b
	return s, (s > a) == (b > 0)
}

// mulExp returns a*b and false if the product overflows.
func mulExp(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	p := a * b
	return p, p/b == a
}

func overflow(op string, d Dimension) error {
	return diag.Errorf(diag.InvalidOperation, op, "exponent overflow in dimension %s", d.Symbol())
}

// Mult multiplies the factor of u by scalar.
func (u *Unit) Mult(scalar float64) {
	if u == nil {
		return
	}
	u.Factor *= scalar
}

// Compare reports how a and b relate as a Comparison bitmask.
// It returns CompareInvalid when either operand is nil.
func Compare(a, b *Unit) Comparison {
	if a == nil || b == nil {
		return CompareInvalid
	}
	res := Different
	if a.Exps == b.Exps {
		res |= SameDimension
	}
	if math.Abs(a.Factor-b.Factor) < Epsilon {
		res |= SameFactor
	}
	return res
}

// IsEqual reports whether a and b match in both dimension and factor.
func IsEqual(a, b *Unit) bool {
	return Compare(a, b) == Equal
}

// String renders u compactly for traces, e.g. "14 {s:-1 Cd:1}".
func (u Unit) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(u.Factor, 'g', -1, 64))
	b.WriteString(" {")
	first := true
	for i, e := range u.Exps {
		if e == 0 {
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(symbols[i])
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(e))
	}
	b.WriteByte('}')
	return b.String()
}
