// Package unit defines the Unit Value: a vector of integer exponents over
// eight base dimensions plus a float64 scale factor, and the algebra on it.
//
// Base dimensions and their canonical symbols:
//
//	Meter m   Kilogram kg   Second s   Ampere A
//	Kelvin K  Mole mol      Candela Cd Lemming L
//
// Lemming is a deliberate extra base dimension; everything converts to lemmings.
//
// Operations:
//
//   - New, Base, Clone                 - construction and copy.
//   - Combine, AddUnit                 - exponent-wise merge (AddUnit also folds factors).
//   - Inverse, Sqrt, Mult              - algebra on a single unit.
//   - Compare, IsEqual                 - dimension and factor equality.
//
// Equality is split in two: Compare reports SameDimension when the exponent
// vectors are identical and SameFactor when |a.Factor-b.Factor| < Epsilon.
// Callers can tell "same quantity type, different scale" from full equality.
//
// Errors:
//
//   - diag.ErrInvalidArgument : nil operand.
//   - diag.ErrInvalidOperation: inverse of a zero factor, root of an odd exponent,
//     an exponent overflowing int.
package unit
