package diag

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Tracer emits advisory debug records through log/slog. It is disabled by
// default and writes to os.Stderr once enabled. A nil *Tracer is valid and
// never emits anything.
type Tracer struct {
	enabled bool
	out     io.Writer
	logger  *slog.Logger
}

// NewTracer returns a disabled tracer bound to os.Stderr.
func NewTracer() *Tracer {
	t := &Tracer{}
	t.SetOutput(os.Stderr)
	return t
}

// SetEnabled switches tracing on or off.
func (t *Tracer) SetEnabled(on bool) {
	if t == nil {
		return
	}
	t.enabled = on
}

// Enabled reports whether records are emitted.
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// SetOutput redirects trace records to w. A nil w restores os.Stderr.
func (t *Tracer) SetOutput(w io.Writer) {
	if t == nil {
		return
	}
	if w == nil {
		w = os.Stderr
	}
	t.out = w
	t.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Output returns the current destination.
func (t *Tracer) Output() io.Writer {
	if t == nil {
		return nil
	}
	return t.out
}

// Debug emits one record tagged with the calling component when tracing is
// enabled.
func (t *Tracer) Debug(component, msg string, args ...any) {
	if !t.Enabled() {
		return
	}
	t.logger.Log(context.Background(), slog.LevelDebug, msg, append([]any{slog.String("component", component)}, args...)...)
}
