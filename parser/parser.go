// SPDX-License-Identifier: MIT

package parser

import (
	"errors"

	"github.com/katalvlaran/unitlib/diag"
	"github.com/katalvlaran/unitlib/rules"
)

// Parser evaluates expressions and rule definitions against a rule table.
type Parser struct {
	table  *rules.Table
	limits Limits
	trace  *diag.Tracer
}

// New returns a Parser bound to table.
func New(table *rules.Table, opts ...Option) *Parser {
	p := &Parser{table: table, limits: DefaultLimits()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Table returns the rule table the parser resolves symbols against.
func (p *Parser) Table() *rules.Table { return p.table }

// Limits returns the active limits.
func (p *Parser) Limits() Limits { return p.limits }

func (p *Parser) usable(op string) error {
	if p == nil || p.table == nil {
		return diag.Errorf(diag.InvalidArgument, op, "parser has no rule table")
	}
	return nil
}

// locate returns a copy of err reported under op at byte offset pos, unless
// it already carries a position.
func locate(err error, op string, pos int) error {
	var e *diag.Error
	if !errors.As(err, &e) {
		return diag.Wrap(diag.MalformedExpression, op, err, "item rejected")
	}
	cp := *e
	cp.Op = op
	if cp.Pos == diag.NoPos {
		cp.Pos = pos
	}
	return &cp
}
