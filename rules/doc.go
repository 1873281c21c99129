// Package rules implements the unit rule table: the registry that maps
// symbols to unit values and drives symbol resolution for the parser.
//
// A Table holds three tiers, consulted in this order:
//
//  1. Base rules: one forced rule per base dimension (m, kg, s, A, K, mol,
//     Cd, L), created by NewTable, permanent.
//  2. The built-in gram rule: "g = 1e-3 kg", forced, also created by
//     NewTable. It papers over the SI oddity that the base unit of mass
//     already carries a prefix.
//  3. Dynamic rules: user definitions appended in definition order; forced
//     ("!R = ...") or removable.
//
// A separate, immutable list of single-character SI prefixes
// (Y Z E P T G M k h d c m u n p f a z y; "da" is not supported) is used only
// when an exact symbol lookup fails.
//
// Resolution (Resolve):
//
//	exact symbol match  →  else first byte as prefix + remainder as symbol
//
// so a defined symbol always wins over a prefixed reading of the same text.
//
// Reduction (Reduce) returns the first rule, in tier order and then in
// definition order, whose exponent vector equals the query. When several rules
// share a dimension vector the answer depends on definition order and may
// change after rules are removed and re-added.
//
// Errors:
//
//   - diag.ErrRuleConflict    : duplicate symbol, redefinition or removal of a forced rule.
//   - diag.ErrUnknownSymbol   : Resolve could not match the symbol.
//   - diag.ErrInvalidArgument : empty symbol, unknown rule on Remove, use after Close.
//
// A Table is not safe for concurrent use; callers serialize access.
package rules
