package format

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/unitlib/diag"
	"github.com/katalvlaran/unitlib/unit"
)

// Formatter renders units. The zero value is usable and never reduces.
type Formatter struct {
	reducer Reducer
	trace   *diag.Tracer
}

// New returns a Formatter configured by opts.
func New(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fprint writes u to w and returns the number of bytes written.
func (f *Formatter) Fprint(w io.Writer, u *unit.Unit, kind Kind, opts Options) (int, error) {
	if w == nil {
		return 0, diag.Errorf(diag.InvalidArgument, "format.fprint", "nil writer")
	}
	s := &writerSink{w: w}
	err := f.render(s, u, kind, opts)
	return s.written(), err
}

// Sprint returns u rendered as a string.
func (f *Formatter) Sprint(u *unit.Unit, kind Kind, opts Options) (string, error) {
	var b strings.Builder
	if _, err := f.Fprint(&b, u, kind, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Snprint renders u into buf and returns the number of bytes used. If buf
// is too small it fails with ErrResourceExhausted; the content of buf is
// then unspecified.
func (f *Formatter) Snprint(buf []byte, u *unit.Unit, kind Kind, opts Options) (int, error) {
	s := &bufferSink{buf: buf}
	err := f.render(s, u, kind, opts)
	return s.written(), err
}

// Length returns the number of bytes Fprint would write for u.
func (f *Formatter) Length(u *unit.Unit, kind Kind, opts Options) (int, error) {
	s := &countSink{}
	if err := f.render(s, u, kind, opts); err != nil {
		return 0, err
	}
	return s.written(), nil
}

// term is one "symbol^exp" element of the output.
type term struct {
	sym string
	exp int
}

// render validates the request, picks the terms and dispatches on kind.
func (f *Formatter) render(s sink, u *unit.Unit, kind Kind, opts Options) error {
	const op = "format"
	if u == nil {
		return diag.Errorf(diag.InvalidArgument, op, "nil unit")
	}
	if !kind.Valid() {
		return diag.Errorf(diag.InvalidArgument, op, "invalid format: %d", int(kind))
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	p := &printer{sink: s, first: true, latex: kind != Plain}
	terms := f.terms(u, opts)
	switch kind {
	case Plain:
		p.product(u.Factor, terms)
	case LaTeXInline:
		p.raw("$")
		p.product(u.Factor, terms)
		p.raw("$")
	case LaTeXFrac:
		p.fraction(u.Factor, terms)
	}
	return p.err
}

// terms lists the nonzero dimensions of u, or the single reduced symbol.
func (f *Formatter) terms(u *unit.Unit, opts Options) []term {
	if opts.Reduce && f != nil && f.reducer != nil {
		if r, ok := f.reducer.Reduce(*u); ok {
			if f.trace.Enabled() {
				f.trace.Debug("format", "reduced", "unit", u.String(), "symbol", r.Symbol)
			}
			return []term{{sym: r.Symbol, exp: 1}}
		}
		if f.trace.Enabled() {
			f.trace.Debug("format", "no reduction, expanding", "unit", u.String())
		}
	}
	out := make([]term, 0, unit.NumDimensions)
	for _, d := range opts.sequence() {
		if e := u.Exps[d]; e != 0 {
			out = append(out, term{sym: d.Symbol(), exp: e})
		}
	}
	return out
}

// printer is the per-call rendering state. The first error is kept and
// every later write is skipped.
type printer struct {
	sink  sink
	first bool
	latex bool
	err   error
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	p.err = p.sink.writeString(s)
}

func (p *printer) space() {
	if !p.first {
		p.raw(" ")
	}
}

func (p *printer) factor(n float64) {
	p.space()
	if !p.latex {
		p.raw(strconv.FormatFloat(n, 'g', -1, 64))
		p.first = false
		return
	}
	m, e := Mantissa(n)
	p.raw(strconv.FormatFloat(m, 'g', -1, 64))
	if e != 0 {
		p.raw(` \cdot 10^{`)
		p.raw(strconv.Itoa(e))
		p.raw("}")
	}
	p.first = false
}

func (p *printer) symbol(t term) {
	if !p.latex {
		p.space()
		p.raw(t.sym)
		if t.exp != 1 {
			p.raw("^")
			p.raw(strconv.Itoa(t.exp))
		}
		p.first = false
		return
	}
	if p.first {
		p.raw(`\text{`)
	} else {
		p.raw(` \text{ `)
	}
	p.raw(t.sym)
	p.raw("}")
	if t.exp != 1 {
		p.raw("^{")
		p.raw(strconv.Itoa(t.exp))
		p.raw("}")
	}
	p.first = false
}

func (p *printer) product(factor float64, terms []term) {
	p.factor(factor)
	for _, t := range terms {
		p.symbol(t)
	}
}

func (p *printer) fraction(factor float64, terms []term) {
	// A factor of magnitude < 1 is split into mantissa (numerator) and
	// power of ten (denominator), keeping the value exact.
	small := factor != 0 && math.Abs(factor) < 1
	num, shift := factor, 0
	if small {
		num, shift = Mantissa(factor)
	}

	p.raw(`\frac{`)
	p.first = true
	p.factor(num)
	for _, t := range terms {
		if t.exp > 0 {
			p.symbol(t)
		}
	}

	p.raw("}{")
	p.first = true
	if small {
		p.raw("10^{")
		p.raw(strconv.Itoa(-shift))
		p.raw("}")
		p.first = false
	}
	for _, t := range terms {
		if t.exp < 0 {
			p.symbol(term{sym: t.sym, exp: -t.exp})
		}
	}
	if p.first {
		p.factor(1)
	}
	p.raw("}")
}
