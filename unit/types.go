package unit

import "fmt"

// Dimension indexes a base dimension in an exponent vector.
type Dimension int

const (
	// Meter is length.
	Meter Dimension = iota
	// Kilogram is mass.
	Kilogram
	// Second is time.
	Second
	// Ampere is electric current.
	Ampere
	// Kelvin is thermodynamic temperature.
	Kelvin
	// Mole is amount of substance.
	Mole
	// Candela is luminous intensity.
	Candela
	// Lemming is the extra base unit.
	Lemming

	// NumDimensions is the length of every exponent vector.
	NumDimensions
)

var symbols = [NumDimensions]string{"m", "kg", "s", "A", "K", "mol", "Cd", "L"}

var names = [NumDimensions]string{
	"meter", "kilogram", "second", "ampere", "kelvin", "mole", "candela", "lemming",
}

// Valid reports whether d is one of the base dimensions.
func (d Dimension) Valid() bool {
	return d >= 0 && d < NumDimensions
}

// Symbol returns the canonical base-unit symbol ("m", "kg", ...).
func (d Dimension) Symbol() string {
	if !d.Valid() {
		return ""
	}
	return symbols[d]
}

// String returns the lower-case name of d.
func (d Dimension) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
	return names[d]
}

// Dimensions returns all base dimensions in index order.
func Dimensions() []Dimension {
	out := make([]Dimension, NumDimensions)
	for i := range out {
		out[i] = Dimension(i)
	}
	return out
}

// DimensionBySymbol maps a canonical symbol back to its dimension.
func DimensionBySymbol(sym string) (Dimension, bool) {
	for i, s := range symbols {
		if s == sym {
			return Dimension(i), true
		}
	}
	return 0, false
}

// Exponents holds one integer exponent per base dimension.
type Exponents [NumDimensions]int

// Unit is an exponent vector with a scale factor. The zero value has factor
// 0; use New for the identity unit.
type Unit struct {
	Exps   Exponents
	Factor float64
}

// Comparison is the bitmask returned by Compare.
type Comparison int

const (
	// Different means neither dimensions nor factors match.
	Different Comparison = 0
	// SameDimension is set when the exponent vectors are identical.
	SameDimension Comparison = 1 << 0
	// SameFactor is set when the factors agree within Epsilon.
	SameFactor Comparison = 1 << 1
	// Equal is SameDimension|SameFactor.
	Equal Comparison = SameDimension | SameFactor

	// CompareInvalid is returned when an operand is nil. It lies outside
	// the 0..3 bitmask space.
	CompareInvalid Comparison = -1
)

// Has reports whether every bit of flag is set in c.
func (c Comparison) Has(flag Comparison) bool {
	return c >= 0 && c&flag == flag
}

// Epsilon is the float64 machine epsilon used for factor equality.
const Epsilon = 2.220446049250313e-16
