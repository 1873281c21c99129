// SPDX-License-Identifier: MIT

package parser

import (
	"fmt"

	"github.com/katalvlaran/unitlib/diag"
)

// Default limits.
const (
	// DefaultMaxDepth is the bracket stack capacity, root level included.
	DefaultMaxDepth = 16

	// DefaultMaxSymbolLen bounds the symbol part of a unit item and the
	// symbol of a rule definition.
	DefaultMaxSymbolLen = 128

	// DefaultMaxItemLen bounds a single whitespace-delimited item.
	DefaultMaxItemLen = 1024
)

// Limits bounds the resources a single parse may consume.
type Limits struct {
	MaxDepth     int
	MaxSymbolLen int
	MaxItemLen   int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:     DefaultMaxDepth,
		MaxSymbolLen: DefaultMaxSymbolLen,
		MaxItemLen:   DefaultMaxItemLen,
	}
}

// Validate reports limits that cannot be used.
func (l Limits) Validate() error {
	const op = "parser.limits"
	if l.MaxDepth < 1 {
		return diag.Errorf(diag.InvalidArgument, op, "max depth must be at least 1, got %d", l.MaxDepth)
	}
	if l.MaxSymbolLen < 1 {
		return diag.Errorf(diag.InvalidArgument, op, "max symbol length must be at least 1, got %d", l.MaxSymbolLen)
	}
	if l.MaxItemLen < l.MaxSymbolLen {
		return diag.Errorf(diag.InvalidArgument, op,
			"max item length %d is shorter than max symbol length %d", l.MaxItemLen, l.MaxSymbolLen)
	}
	return nil
}

// Option configures a Parser.
type Option func(*Parser)

// WithTracer routes parser debug records to tr.
func WithTracer(tr *diag.Tracer) Option {
	return func(p *Parser) { p.trace = tr }
}

// WithLimits overrides DefaultLimits. Panics if l is invalid.
func WithLimits(l Limits) Option {
	if err := l.Validate(); err != nil {
		panic(fmt.Sprintf("parser: WithLimits: %v", err))
	}
	return func(p *Parser) { p.limits = l }
}
