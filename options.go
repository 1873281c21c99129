package unitlib

import (
	"io"

	"github.com/katalvlaran/unitlib/parser"
)

// settings collects Option values before New builds the Context.
type settings struct {
	debug     bool
	debugOut  io.Writer
	debugFile string
	limits    parser.Limits
}

// Option configures a Context.
type Option func(*settings)

// WithDebug switches debug tracing on or off. Tracing is off by default.
func WithDebug(on bool) Option {
	return func(s *settings) { s.debug = on }
}

// WithDebugOutput sends debug records to w instead of os.Stderr.
func WithDebugOutput(w io.Writer) Option {
	return func(s *settings) { s.debugOut = w }
}

// WithDebugFile appends debug records to the file at path. New fails if the
// file cannot be opened; Close closes it.
func WithDebugFile(path string) Option {
	return func(s *settings) { s.debugFile = path }
}

// WithLimits overrides parser.DefaultLimits. New validates them.
func WithLimits(l parser.Limits) Option {
	return func(s *settings) { s.limits = l }
}
