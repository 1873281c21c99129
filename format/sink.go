package format

import (
	"io"

	"github.com/katalvlaran/unitlib/diag"
)

// sink receives rendered text.
type sink interface {
	writeString(s string) error
	written() int
}

// writerSink forwards to an io.Writer.
type writerSink struct {
	w io.Writer
	n int
}

func (s *writerSink) writeString(str string) error {
	n, err := io.WriteString(s.w, str)
	s.n += n
	if err != nil {
		return diag.Wrap(diag.ResourceExhausted, "format.fprint", err, "write failed after %d bytes", s.n)
	}
	return nil
}

func (s *writerSink) written() int { return s.n }

// bufferSink fills a caller-owned slice and refuses to grow it.
type bufferSink struct {
	buf []byte
	n   int
}

func (s *bufferSink) writeString(str string) error {
	if len(str) > len(s.buf)-s.n {
		s.n += copy(s.buf[s.n:], str)
		return diag.Errorf(diag.ResourceExhausted, "format.snprint", "buffer of %d bytes is too small", len(s.buf))
	}
	s.n += copy(s.buf[s.n:], str)
	return nil
}

func (s *bufferSink) written() int { return s.n }

// countSink only measures.
type countSink struct {
	n int
}

func (s *countSink) writeString(str string) error {
	s.n += len(str)
	return nil
}

func (s *countSink) written() int { return s.n }
