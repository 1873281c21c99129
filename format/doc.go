// Package format renders unit values as text.
//
// Kinds:
//
//	Plain        1 m kg s^-2
//	LaTeXInline  $1 \text{ m} \text{ kg} \text{ s}^{-2}$
//	LaTeXFrac    \frac{1 \text{ m} \text{ kg}}{\text{s}^{2}}
//
// Plain prints the factor in shortest round-trip form. Both LaTeX kinds split
// the factor into mantissa and power of ten (see Mantissa) and print
// "m \cdot 10^{e}" whenever e is not zero. LaTeXFrac puts the factor and
// positive exponents in the numerator and negative exponents (negated) in the
// denominator. A factor of magnitude < 1 is split instead: its mantissa goes
// in the numerator and the power of ten in the denominator, so 0.3 m prints
// as \frac{3 \text{ m}}{10^{1}}. An empty denominator prints "1".
//
// Options:
//
//   - Reduce: if the configured Reducer knows a rule with exactly the unit's
//     exponent vector, print the factor and that one symbol. Without a match
//     (or without a Reducer) the unit is expanded as usual.
//   - Order: dimensions to print first, in the given order; the rest follow
//     in their natural order.
//
// Every kind can be written to an io.Writer (Fprint), into a fixed buffer
// (Snprint, which fails with diag.ErrResourceExhausted instead of
// overflowing) or only measured (Length). All three share one renderer, so
// Length always equals the number of bytes the other two produce.
package format
