package format_test

import (
	"io"
	"testing"

	"github.com/katalvlaran/unitlib/format"
	"github.com/katalvlaran/unitlib/unit"
)

func BenchmarkFprint(b *testing.B) {
	f := format.New()
	u := newton().Scaled(-0.003)
	for _, kind := range []format.Kind{format.Plain, format.LaTeXInline, format.LaTeXFrac} {
		b.Run(kind.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := f.Fprint(io.Discard, &u, kind, format.Options{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLength(b *testing.B) {
	f := format.New()
	u := unit.New().With(unit.Lemming, -7).With(unit.Candela, 12).Scaled(6.02214076e23)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := f.Length(&u, format.LaTeXFrac, format.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
