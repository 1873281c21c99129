package unitlib

import (
	"errors"
	"io"
	"os"

	"github.com/katalvlaran/unitlib/diag"
	"github.com/katalvlaran/unitlib/format"
	"github.com/katalvlaran/unitlib/parser"
	"github.com/katalvlaran/unitlib/rules"
	"github.com/katalvlaran/unitlib/unit"
)

const (
	// Name is the library name.
	Name = "unitlib"
	// Version is the library version.
	Version = "0.2b2"
	// FullName is Name-Version.
	FullName = Name + "-" + Version
)

// Context is one independent unitlib instance.
type Context struct {
	table     *rules.Table
	parser    *parser.Parser
	formatter *format.Formatter
	errs      diag.Recorder
	trace     *diag.Tracer
	debugFile *os.File
	closed    bool
}

// New builds a Context with a freshly seeded rule table.
//
// Errors:
//   - ErrInvalidArgument for invalid limits or an unopenable debug file.
func New(opts ...Option) (*Context, error) {
	s := settings{limits: parser.DefaultLimits()}
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.limits.Validate(); err != nil {
		return nil, err
	}

	c := &Context{trace: diag.NewTracer()}
	c.trace.SetEnabled(s.debug)
	if s.debugOut != nil {
		c.trace.SetOutput(s.debugOut)
	}
	if s.debugFile != "" {
		if err := c.SetDebugFile(s.debugFile); err != nil {
			return nil, err
		}
	}

	c.trace.Debug("unitlib", "initializing", "version", Version)
	c.table = rules.NewTable(rules.WithTracer(c.trace))
	c.parser = parser.New(c.table, parser.WithTracer(c.trace), parser.WithLimits(s.limits))
	c.formatter = format.New(format.WithReducer(c.table), format.WithTracer(c.trace))
	return c, nil
}

func (c *Context) usable(op string) error {
	if c == nil {
		return diag.Errorf(diag.InvalidArgument, op, "nil context")
	}
	if c.closed {
		return c.errs.Record(diag.Errorf(diag.InvalidArgument, op, "context is closed"))
	}
	return nil
}

//----------------------------------------------------------------------------//
// Parsing
//----------------------------------------------------------------------------//

// Parse evaluates a unit expression.
func (c *Context) Parse(text string) (unit.Unit, error) {
	if err := c.usable("parse"); err != nil {
		return unit.Unit{}, err
	}
	u, err := c.parser.Parse(text)
	return u, c.errs.Record(err)
}

// ParseRule evaluates and commits one "[!]symbol = expression" definition.
func (c *Context) ParseRule(text string) (rules.Rule, error) {
	if err := c.usable("parse_rule"); err != nil {
		return rules.Rule{}, err
	}
	r, err := c.parser.ParseRule(text)
	return r, c.errs.Record(err)
}

// LoadRules reads one definition per line from r.
func (c *Context) LoadRules(r io.Reader) (int, error) {
	if err := c.usable("load_rules"); err != nil {
		return 0, err
	}
	n, err := c.parser.LoadRules(r)
	return n, c.errs.Record(err)
}

// LoadRulesFile reads one definition per line from the file at path.
func (c *Context) LoadRulesFile(path string) (int, error) {
	if err := c.usable("load_rules"); err != nil {
		return 0, err
	}
	n, err := c.parser.LoadRulesFile(path)
	return n, c.errs.Record(err)
}

//----------------------------------------------------------------------------//
// Formatting
//----------------------------------------------------------------------------//

// Fprint writes u to w. Options.Reduce looks symbols up in this context's
// rule table.
func (c *Context) Fprint(w io.Writer, u *unit.Unit, kind format.Kind, opts format.Options) (int, error) {
	if err := c.usable("format.fprint"); err != nil {
		return 0, err
	}
	n, err := c.formatter.Fprint(w, u, kind, opts)
	return n, c.errs.Record(err)
}

// Sprint returns u rendered as a string.
func (c *Context) Sprint(u *unit.Unit, kind format.Kind, opts format.Options) (string, error) {
	if err := c.usable("format.sprint"); err != nil {
		return "", err
	}
	s, err := c.formatter.Sprint(u, kind, opts)
	return s, c.errs.Record(err)
}

// Snprint renders u into buf without growing it.
func (c *Context) Snprint(buf []byte, u *unit.Unit, kind format.Kind, opts format.Options) (int, error) {
	if err := c.usable("format.snprint"); err != nil {
		return 0, err
	}
	n, err := c.formatter.Snprint(buf, u, kind, opts)
	return n, c.errs.Record(err)
}

// Length returns the rendered size of u in bytes.
func (c *Context) Length(u *unit.Unit, kind format.Kind, opts format.Options) (int, error) {
	if err := c.usable("format.length"); err != nil {
		return 0, err
	}
	n, err := c.formatter.Length(u, kind, opts)
	return n, c.errs.Record(err)
}

//----------------------------------------------------------------------------//
// Algebra
//----------------------------------------------------------------------------//

// Combine adds b's exponents into a.
func (c *Context) Combine(a, b *unit.Unit) error {
	if err := c.usable("unit.combine"); err != nil {
		return err
	}
	return c.errs.Record(a.Combine(b))
}

// Inverse inverts u in place.
func (c *Context) Inverse(u *unit.Unit) error {
	if err := c.usable("unit.inverse"); err != nil {
		return err
	}
	return c.errs.Record(u.Inverse())
}

// Sqrt takes the square root of u in place.
func (c *Context) Sqrt(u *unit.Unit) error {
	if err := c.usable("unit.sqrt"); err != nil {
		return err
	}
	return c.errs.Record(u.Sqrt())
}

// Mult scales the factor of u.
func (c *Context) Mult(u *unit.Unit, scalar float64) error {
	if err := c.usable("unit.mult"); err != nil {
		return err
	}
	if u == nil {
		return c.errs.Record(diag.Errorf(diag.InvalidArgument, "unit.mult", "nil unit"))
	}
	u.Mult(scalar)
	return nil
}

// Compare is unit.Compare that records a nil operand as an error.
func (c *Context) Compare(a, b *unit.Unit) unit.Comparison {
	res := unit.Compare(a, b)
	if res == unit.CompareInvalid && c != nil {
		c.errs.Record(diag.Errorf(diag.InvalidArgument, "unit.compare", "invalid parameters"))
	}
	return res
}

// Equal reports full equality of a and b.
func (c *Context) Equal(a, b *unit.Unit) bool {
	return c.Compare(a, b) == unit.Equal
}

//----------------------------------------------------------------------------//
// Rules
//----------------------------------------------------------------------------//

// Table exposes the context's rule table.
func (c *Context) Table() *rules.Table {
	if c == nil {
		return nil
	}
	return c.table
}

// Rules returns a snapshot of every rule in resolution order.
func (c *Context) Rules() []rules.Rule {
	if c.usable("rules.list") != nil {
		return nil
	}
	return c.table.Rules()
}

// ResetRules drops every user rule.
func (c *Context) ResetRules() error {
	if err := c.usable("rules.reset"); err != nil {
		return err
	}
	return c.errs.Record(c.table.Reset())
}

//----------------------------------------------------------------------------//
// Diagnostics
//----------------------------------------------------------------------------//

// LastError returns the most recent failure of any Context method, or nil.
func (c *Context) LastError() error {
	if c == nil {
		return nil
	}
	return c.errs.Last()
}

// ErrorMessage returns the text of LastError, or "".
func (c *Context) ErrorMessage() string {
	if c == nil {
		return ""
	}
	return c.errs.Message()
}

// SetDebug switches debug tracing on or off.
func (c *Context) SetDebug(on bool) {
	if c == nil {
		return
	}
	c.trace.SetEnabled(on)
}

// SetDebugOutput redirects debug records to w; nil restores os.Stderr.
// A debug file opened earlier is closed.
func (c *Context) SetDebugOutput(w io.Writer) {
	if c == nil {
		return
	}
	_ = c.closeDebugFile()
	c.trace.SetOutput(w)
}

// SetDebugFile appends debug records to the file at path.
func (c *Context) SetDebugFile(path string) error {
	const op = "debug_out"
	if err := c.usable(op); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return c.errs.Record(diag.Wrap(diag.InvalidArgument, op, err, "failed to open file '%s'", path))
	}
	_ = c.closeDebugFile()
	c.debugFile = f
	c.trace.SetOutput(f)
	return nil
}

func (c *Context) closeDebugFile() error {
	if c.debugFile == nil {
		return nil
	}
	err := c.debugFile.Close()
	c.debugFile = nil
	return err
}

// Close tears the context down: user rules and prefixes are released and a
// debug file, if any, is closed. Later calls fail with ErrInvalidArgument.
// Closing twice is a no-op.
func (c *Context) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.trace.Debug("unitlib", "closing")
	c.closed = true
	err := c.table.Close()
	if ferr := c.closeDebugFile(); ferr != nil {
		err = errors.Join(err, diag.Wrap(diag.InvalidArgument, "close", ferr, "closing debug file"))
	}
	c.trace.SetOutput(nil)
	return err
}
