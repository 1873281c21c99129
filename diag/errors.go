package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure. The zero value is not a valid kind.
type Kind int

const (
	// MalformedExpression marks a syntactically invalid unit expression.
	MalformedExpression Kind = iota + 1
	// UnknownSymbol marks a symbol missing from the rule table.
	UnknownSymbol
	// MalformedRule marks an invalid "symbol = expression" definition.
	MalformedRule
	// RuleConflict marks a forbidden redefinition or removal.
	RuleConflict
	// InvalidOperation marks an algebraic operation outside its domain.
	InvalidOperation
	// InvalidArgument marks a nil or otherwise unusable input.
	InvalidArgument
	// ResourceExhausted marks an exceeded fixed limit.
	ResourceExhausted
)

// Sentinel errors, one per Kind. *Error unwraps to the sentinel of its kind.
var (
	// ErrMalformedExpression is the sentinel for MalformedExpression.
	ErrMalformedExpression = errors.New("unitlib: malformed expression")

	// ErrUnknownSymbol is the sentinel for UnknownSymbol.
	ErrUnknownSymbol = errors.New("unitlib: unknown symbol")

	// ErrMalformedRule is the sentinel for MalformedRule.
	ErrMalformedRule = errors.New("unitlib: malformed rule definition")

	// ErrRuleConflict is the sentinel for RuleConflict.
	ErrRuleConflict = errors.New("unitlib: rule conflict")

	// ErrInvalidOperation is the sentinel for InvalidOperation.
	ErrInvalidOperation = errors.New("unitlib: invalid operation")

	// ErrInvalidArgument is the sentinel for InvalidArgument.
	ErrInvalidArgument = errors.New("unitlib: invalid argument")

	// ErrResourceExhausted is the sentinel for ResourceExhausted.
	ErrResourceExhausted = errors.New("unitlib: resource exhausted")
)

var kindNames = map[Kind]string{
	MalformedExpression: "MalformedExpression",
	UnknownSymbol:       "UnknownSymbol",
	MalformedRule:       "MalformedRuleDefinition",
	RuleConflict:        "RuleConflict",
	InvalidOperation:    "InvalidOperation",
	InvalidArgument:     "InvalidArgument",
	ResourceExhausted:   "ResourceExhaustion",
}

var kindSentinels = map[Kind]error{
	MalformedExpression: ErrMalformedExpression,
	UnknownSymbol:       ErrUnknownSymbol,
	MalformedRule:       ErrMalformedRule,
	RuleConflict:        ErrRuleConflict,
	InvalidOperation:    ErrInvalidOperation,
	InvalidArgument:     ErrInvalidArgument,
	ResourceExhausted:   ErrResourceExhausted,
}

// String returns the taxonomy name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinel returns the package-level sentinel error for k, or nil for an
// unknown kind.
func (k Kind) Sentinel() error {
	return kindSentinels[k]
}

// NoPos marks an Error without a byte offset.
const NoPos = -1

// Error is the structured failure returned by every unitlib operation.
//
// Op names the failing operation ("parse", "rules.remove", ...). Pos is a
// byte offset into the parsed text or NoPos. Line is a 1-based line number
// set by the bulk rule loader, zero otherwise. Err is an optional cause
// (for example a failing io.Writer).
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Pos  int
	Line int
	Err  error
}

// Errorf builds an *Error without location.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Pos: NoPos}
}

// ErrorAt builds an *Error that points at byte offset pos.
func ErrorAt(kind Kind, op string, pos int, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// Wrap builds an *Error around a cause.
func Wrap(kind Kind, op string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Pos: NoPos, Err: cause}
}

// Error renders "[op] line N: msg (at offset P): cause".
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString("[")
		b.WriteString(e.Op)
		b.WriteString("] ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Msg)
	if e.Pos >= 0 {
		fmt.Fprintf(&b, " (at offset %d)", e.Pos)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the kind sentinel and, when present, the cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.Sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf reports the Kind carried by err, or zero when err is nil or not
// produced by unitlib.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for k, s := range kindSentinels {
		if errors.Is(err, s) {
			return k
		}
	}
	return 0
}

// AtLine returns a copy of err annotated with a 1-based line number. Errors
// that are not *Error are wrapped as MalformedRule failures of op.
func AtLine(err error, op string, line int) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		cp := *e
		cp.Line = line
		return &cp
	}
	return &Error{Kind: MalformedRule, Op: op, Msg: "rule rejected", Pos: NoPos, Line: line, Err: err}
}
