// SPDX-License-Identifier: MIT

// Package parser turns unit text into unit values and rule definitions.
//
// Expressions are sequences of items separated by whitespace. The characters
// '(' ')' '*' '/' are items of their own and also end the item before them,
// so "sqrt(kg^2)" and "kg/s" need no spaces. Each item is tried in order:
//
//  1. special: '*', '/', '(', ')', "sqrt";
//  2. numeric factor: any float literal, including exponent notation;
//  3. unit symbol: an optionally prefixed rule symbol, optionally followed by
//     "^N" with a signed integer N in the int32 range.
//
// Semantics:
//
//   - Factors multiply into the running factor ("2 Cd 7 s^-1" has factor 14).
//   - '/' flips the sign applied to every later factor and exponent of the
//     current bracket level; a second '/' flips it back. '*' is a no-op.
//     Two operators in a row are rejected.
//   - '(' opens a new level; ')' closes it and merges the level into its
//     parent, raised to the parent's sign at the time the level opened.
//   - "sqrt" must be followed by '('; the square root is taken when the
//     matching ')' closes the level.
//   - A numeric factor must be separated from '*' and '/' by whitespace, a
//     bracket or the ends of the input ("5*kg" is rejected, "5 * kg" is not).
//   - Empty input yields the identity unit.
//   - An exponent that would overflow while accumulating is rejected with
//     diag.ErrInvalidOperation.
//
// Rule definitions have the form
//
//	[!]symbol = expression
//
// where symbol is one or more ASCII letters. A leading '!' marks the rule as
// forced. The right-hand side is an expression and may be empty. A forced
// definition may replace an existing non-forced rule; the old binding is not
// visible while the right-hand side is evaluated, so "!R = R" fails.
//
// LoadRules reads definitions one per line, skipping blank lines and lines
// whose first non-blank character is '#'. Loading stops at the first failing
// line; the returned error carries its 1-based line number.
//
// Limits (see Limits, DefaultLimits) bound the bracket depth, symbol length
// and item length; exceeding one is reported as diag.ErrResourceExhausted.
//
// A Parser shares its rules.Table with the caller and is not safe for
// concurrent use.
package parser
