package format

import (
	"strings"

	"github.com/katalvlaran/unitlib/diag"
	"github.com/katalvlaran/unitlib/rules"
	"github.com/katalvlaran/unitlib/unit"
)

// Kind selects the output notation.
type Kind int

const (
	// Plain is "factor sym^exp ...".
	Plain Kind = iota
	// LaTeXInline is a $-delimited LaTeX product.
	LaTeXInline
	// LaTeXFrac is a \frac{numerator}{denominator}.
	LaTeXFrac

	numKinds
)

var kindNames = [numKinds]string{
	Plain:       "plain",
	LaTeXInline: "latex-inline",
	LaTeXFrac:   "latex-frac",
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k >= 0 && k < numKinds }

// String returns the kind name used by ParseKind.
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a name ("plain", "latex-inline" or "inline", "latex-frac"
// or "frac", any case) to its Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "":
		return Plain, nil
	case "latex-inline", "inline":
		return LaTeXInline, nil
	case "latex-frac", "frac":
		return LaTeXFrac, nil
	}
	return 0, diag.Errorf(diag.InvalidArgument, "format.kind", "unknown format '%s'", name)
}

// Options tunes a single rendering call. The zero value expands every
// dimension in natural order.
type Options struct {
	Reduce bool
	Order  []unit.Dimension
}

// Validate rejects unknown or repeated dimensions in Order.
func (o Options) Validate() error {
	var seen [unit.NumDimensions]bool
	for _, d := range o.Order {
		if !d.Valid() {
			return diag.Errorf(diag.InvalidArgument, "format.options", "invalid dimension %d in order", int(d))
		}
		if seen[d] {
			return diag.Errorf(diag.InvalidArgument, "format.options", "dimension %s listed twice in order", d)
		}
		seen[d] = true
	}
	return nil
}

// sequence returns every dimension, Order first.
func (o Options) sequence() []unit.Dimension {
	out := make([]unit.Dimension, 0, unit.NumDimensions)
	var used [unit.NumDimensions]bool
	for _, d := range o.Order {
		out = append(out, d)
		used[d] = true
	}
	for _, d := range unit.Dimensions() {
		if !used[d] {
			out = append(out, d)
		}
	}
	return out
}

// Reducer finds a named rule for an exponent vector. *rules.Table
// implements it.
type Reducer interface {
	Reduce(u unit.Unit) (rules.Rule, bool)
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithReducer enables Options.Reduce lookups against r.
func WithReducer(r Reducer) Option {
	return func(f *Formatter) { f.reducer = r }
}

// WithTracer routes formatter debug records to tr.
func WithTracer(tr *diag.Tracer) Option {
	return func(f *Formatter) { f.trace = tr }
}
