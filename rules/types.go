package rules

import (
	"github.com/katalvlaran/unitlib/diag"
	"github.com/katalvlaran/unitlib/unit"
)

// Tier tells where a rule lives in the table.
type Tier int

const (
	// TierBase holds one rule per base dimension.
	TierBase Tier = iota
	// TierBuiltin holds the hard-coded gram rule.
	TierBuiltin
	// TierDynamic holds user-defined rules.
	TierDynamic
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierBase:
		return "base"
	case TierBuiltin:
		return "builtin"
	case TierDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Rule binds a symbol to a unit value.
type Rule struct {
	// Symbol is unique among the rules currently in the table.
	Symbol string

	// Unit is the value the symbol expands to.
	Unit unit.Unit

	// Force marks a rule that can never be redefined or removed.
	Force bool

	// Tier records which tier the rule belongs to.
	Tier Tier
}

// Prefix is a single-character SI multiplier.
type Prefix struct {
	Symbol byte
	Value  float64
}

// SIPrefixes lists the supported metric prefixes from yotta to yocto.
// Deca ("da") is absent because prefixes are single characters.
var SIPrefixes = []Prefix{
	{'Y', 1e24},  // yotta
	{'Z', 1e21},  // zetta
	{'E', 1e18},  // exa
	{'P', 1e15},  // peta
	{'T', 1e12},  // tera
	{'G', 1e9},   // giga
	{'M', 1e6},   // mega
	{'k', 1e3},   // kilo
	{'h', 1e2},   // hecto
	{'d', 1e-1},  // deci
	{'c', 1e-2},  // centi
	{'m', 1e-3},  // milli
	{'u', 1e-6},  // micro
	{'n', 1e-9},  // nano
	{'p', 1e-12}, // pico
	{'f', 1e-15}, // femto
	{'a', 1e-18}, // atto
	{'z', 1e-21}, // zepto
	{'y', 1e-24}, // yocto
}

// GramSymbol is the symbol of the built-in gram rule.
const GramSymbol = "g"

// gram returns the built-in "g = 1e-3 kg" value.
func gram() unit.Unit {
	return unit.Base(unit.Kilogram).Scaled(1e-3)
}

// Option configures a Table at construction time.
type Option func(*Table)

// WithTracer routes table debug records to tr.
func WithTracer(tr *diag.Tracer) Option {
	return func(t *Table) { t.trace = tr }
}
