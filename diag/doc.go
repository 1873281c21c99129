// Package diag is the error and diagnostics channel shared by every unitlib
// package.
//
// What:
//
//   - A fixed error taxonomy (Kind) with one sentinel per kind, so callers
//     match failures with errors.Is(err, diag.ErrUnknownSymbol).
//   - *Error, the structured failure value: kind, operation, message and an
//     optional location (byte offset in an expression, line in a rule file).
//   - Recorder, a single "last error" slot. Only the most recent failure is
//     kept; there is no error stack.
//   - Tracer, an on/off debug trace built on log/slog whose destination can be
//     swapped at runtime (stderr by default).
//
// Errors:
//
//   - ErrMalformedExpression: unknown token shape, bad exponent, consecutive
//     operators, bracket mismatch, sqrt without '('.
//   - ErrUnknownSymbol: a unit or prefixed unit does not resolve.
//   - ErrMalformedRule: missing '=', bad or empty rule symbol.
//   - ErrRuleConflict: redefining or removing a forced rule, redefining
//     without the '!' marker.
//   - ErrInvalidOperation: inverse of a zero factor, root of an odd exponent.
//   - ErrInvalidArgument: nil or out-of-range input.
//   - ErrResourceExhausted: output buffer full, nesting or length limits hit.
//
// Neither Recorder nor Tracer is safe for concurrent use.
package diag
