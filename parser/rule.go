package parser

import (
	"strings"

	"github.com/katalvlaran/unitlib/diag"
	"github.com/katalvlaran/unitlib/rules"
	"github.com/katalvlaran/unitlib/unit"
)

const opRule = "parse_rule"

// ParseRule evaluates a "[!]symbol = expression" definition and commits it
// to the table. The table is left unchanged on failure.
//
// Errors:
//   - ErrMalformedRule for a missing '=', an empty symbol, a symbol with
//     embedded whitespace or a non-letter character.
//   - ErrRuleConflict when the symbol may not be redefined.
//   - Any Parse error raised by the right-hand side.
func (p *Parser) ParseRule(text string) (rules.Rule, error) {
	if err := p.usable(opRule); err != nil {
		return rules.Rule{}, err
	}
	p.trace.Debug("parser", "parse rule", "text", text)

	split := strings.IndexByte(text, '=')
	if split < 0 {
		return rules.Rule{}, diag.Errorf(diag.MalformedRule, opRule, "missing '=' in rule definition '%s'", text)
	}

	symbol, force, err := p.ruleSymbol(text, split)
	if err != nil {
		return rules.Rule{}, err
	}

	rhs := text[split+1:]
	r, err := p.table.Define(symbol, force, func() (unit.Unit, error) {
		u, err := p.Parse(rhs)
		if err != nil {
			return unit.Unit{}, shift(err, opRule, split+1)
		}
		return u, nil
	})
	if err != nil {
		return rules.Rule{}, retag(err, opRule)
	}
	return r, nil
}

// ruleSymbol extracts the symbol left of the '=' at split.
func (p *Parser) ruleSymbol(text string, split int) (string, bool, error) {
	start := 0
	for start < split && isSpace(text[start]) {
		start++
	}
	end := start
	for end < split && !isSpace(text[end]) {
		end++
	}
	for rest := end; rest < split; rest++ {
		if !isSpace(text[rest]) {
			return "", false, diag.ErrorAt(diag.MalformedRule, opRule, rest,
				"invalid symbol, whitespace is not allowed")
		}
	}

	force := false
	if start < end && text[start] == '!' {
		force = true
		start++
	}
	symbol := text[start:end]
	switch {
	case symbol == "":
		return "", false, diag.ErrorAt(diag.MalformedRule, opRule, start, "empty symbols are not allowed")
	case len(symbol) >= p.limits.MaxSymbolLen:
		return "", false, diag.ErrorAt(diag.ResourceExhausted, opRule, start,
			"symbol longer than %d bytes", p.limits.MaxSymbolLen-1)
	case !validSymbol(symbol):
		return "", false, diag.ErrorAt(diag.MalformedRule, opRule, start, "symbol '%s' is invalid", symbol)
	}
	p.trace.Debug("parser", "rule symbol", "symbol", symbol, "force", force)
	return symbol, force, nil
}

func validSymbol(sym string) bool {
	for i := 0; i < len(sym); i++ {
		c := sym[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

// shift moves the offset of a right-hand side error so it points into the
// whole definition.
func shift(err error, op string, by int) error {
	e, ok := err.(*diag.Error)
	if !ok {
		return err
	}
	cp := *e
	cp.Op = op
	if cp.Pos != diag.NoPos {
		cp.Pos += by
	}
	return &cp
}

// retag reports table errors under the rule operation.
func retag(err error, op string) error {
	e, ok := err.(*diag.Error)
	if !ok || e.Op == op {
		return err
	}
	cp := *e
	cp.Op = op
	return &cp
}
