// Package unitlib is a dimensional-analysis library: physical units as
// integer exponent vectors over eight base dimensions plus a scale factor,
// a small language to define derived units and parse compound expressions,
// algebra on the results, and rendering as plain text or LaTeX.
//
// What is inside?
//
//	unit/    - Unit values: exponents, factor, Combine/Inverse/Sqrt/Mult, Compare
//	rules/   - the rule table: base rules, the gram rule, user rules, SI prefixes
//	parser/  - expression evaluator, "[!]sym = expr" rules, rule file loader
//	format/  - Plain, LaTeX inline and LaTeX fraction output
//	diag/    - error kinds and sentinels, last-error slot, debug tracing
//	config/  - YAML configuration for the unitcalc command
//
// Context bundles one rule table with its parser, formatter, last-error slot
// and tracer. Contexts are independent of each other; a single Context must
// be used by one goroutine at a time.
//
// Quick start:
//
//	ctx, err := unitlib.New()
//	if err != nil { … }
//	defer ctx.Close()
//
//	_, _ = ctx.ParseRule("N = 1 kg m s^-2")
//	u, err := ctx.Parse("0.5 N^2 * 4 m^-1")
//	s, _ := ctx.Sprint(&u, format.Plain, format.Options{})
//	fmt.Println(s) // 2 m kg^2 s^-4
//
// Every failing Context method also stores its error, so LastError and
// ErrorMessage report the most recent failure until the next one replaces it.
package unitlib
