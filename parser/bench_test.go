package parser_test

import (
	"strings"
	"testing"
)

func BenchmarkParse_Simple(b *testing.B) {
	p := newParser(b)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse("2 Cd 7 s^-1"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_Derived(b *testing.B) {
	p := newParser(b)
	if _, err := p.LoadRules(strings.NewReader(siRules)); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse("0.2 kW^2 * 0.75 m^-1 / sqrt(Hz^2)"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseRule(b *testing.B) {
	p := newParser(b)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := p.ParseRule("!Q = 1 kg m s^-2"); err != nil {
			b.Fatal(err)
		}
		if err := p.Table().Reset(); err != nil {
			b.Fatal(err)
		}
	}
}
