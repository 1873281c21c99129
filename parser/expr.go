package parser

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/unitlib/diag"
	"github.com/katalvlaran/unitlib/unit"
)

const opParse = "parse"

// frame is one bracket level of an expression.
type frame struct {
	acc unit.Unit
	// sign applies to factors and exponents read at this level.
	sign int
	// times is the parent's sign when the level was opened.
	times int
	// sqrt marks a level opened right after "sqrt".
	sqrt bool
}

// state is the transient evaluation state of one Parse call.
type state struct {
	src         string
	stack       []frame
	wasOperator byte
	needBracket bool
}

func (s *state) top() *frame { return &s.stack[len(s.stack)-1] }

// Parse evaluates text as a unit expression.
//
// Implementation:
//   - Stage 1: split text into items (see package doc).
//   - Stage 2: hand each item to the special, factor and unit handlers in
//     that order; the first one that accepts it wins.
//   - Stage 3: require every bracket to be closed and no "sqrt" pending.
//
// Errors:
//   - ErrMalformedExpression for syntax errors.
//   - ErrUnknownSymbol when a symbol does not resolve.
//   - ErrInvalidOperation for a root of an odd exponent, a non-finite factor
//     or an exponent out of range.
//   - ErrResourceExhausted when a limit is exceeded.
//
// Complexity: O(len(text) + items*P) with P the prefix count.
func (p *Parser) Parse(text string) (unit.Unit, error) {
	if err := p.usable(opParse); err != nil {
		return unit.Unit{}, err
	}
	p.trace.Debug("parser", "parse unit", "text", text)

	s := &state{src: text, stack: make([]frame, 1, p.limits.MaxDepth)}
	s.stack[0] = frame{acc: unit.New(), sign: 1, times: 1}

	lx := &lexer{src: text}
	for {
		it, ok := lx.next()
		if !ok {
			break
		}
		if len(it.text) > p.limits.MaxItemLen {
			return unit.Unit{}, diag.ErrorAt(diag.ResourceExhausted, opParse, it.pos,
				"item longer than %d bytes", p.limits.MaxItemLen)
		}
		if err := p.handleItem(s, it); err != nil {
			p.trace.Debug("parser", "parse failed", "item", it.text, "pos", it.pos, "err", err)
			return unit.Unit{}, err
		}
	}

	if s.needBracket {
		return unit.Unit{}, diag.ErrorAt(diag.MalformedExpression, opParse, len(text),
			"opening bracket expected after sqrt")
	}
	if len(s.stack) != 1 {
		return unit.Unit{}, diag.ErrorAt(diag.MalformedExpression, opParse, len(text),
			"bracket mismatch: %d unclosed", len(s.stack)-1)
	}

	res := s.stack[0].acc
	if p.trace.Enabled() {
		p.trace.Debug("parser", "parsed", "unit", res.String())
	}
	return res, nil
}

func (p *Parser) handleItem(s *state, it item) error {
	handled, err := p.handleSpecial(s, it)
	if handled || err != nil {
		return err
	}
	handled, err = p.handleFactor(s, it)
	if handled || err != nil {
		return err
	}
	handled, err = p.handleUnit(s, it)
	if handled || err != nil {
		return err
	}
	return diag.ErrorAt(diag.MalformedExpression, opParse, it.pos, "unknown item type for item '%s'", it.text)
}

// handleSpecial must run first: it owns the pending-sqrt check.
func (p *Parser) handleSpecial(s *state, it item) (bool, error) {
	if s.needBracket && it.text != "(" {
		return false, diag.ErrorAt(diag.MalformedExpression, opParse, it.pos,
			"opening bracket expected after sqrt")
	}

	switch it.text {
	case "/", "*":
		if s.wasOperator != 0 {
			return false, diag.ErrorAt(diag.MalformedExpression, opParse, it.pos,
				"cannot have %s right after %c", it.text, s.wasOperator)
		}
		if it.text == "/" {
			s.top().sign = -s.top().sign
		}
		s.wasOperator = it.text[0]
		return true, nil

	case "(":
		s.wasOperator = 0
		pending := s.needBracket
		s.needBracket = false
		return true, p.push(s, it, pending)

	case ")":
		s.wasOperator = 0
		return true, p.pop(s, it)
	}
	s.wasOperator = 0

	if it.text == "sqrt" {
		p.trace.Debug("parser", "found sqrt", "pos", it.pos)
		s.needBracket = true
		return true, nil
	}
	return false, nil
}

func (p *Parser) push(s *state, it item, sqrt bool) error {
	if len(s.stack) >= p.limits.MaxDepth {
		return diag.ErrorAt(diag.ResourceExhausted, opParse, it.pos,
			"maximal nesting level of %d exceeded", p.limits.MaxDepth)
	}
	s.stack = append(s.stack, frame{acc: unit.New(), sign: 1, times: s.top().sign, sqrt: sqrt})
	if p.trace.Enabled() {
		p.trace.Debug("parser", "push", "depth", len(s.stack)-1, "sqrt", sqrt)
	}
	return nil
}

func (p *Parser) pop(s *state, it item) error {
	if len(s.stack) == 1 {
		return diag.ErrorAt(diag.MalformedExpression, opParse, it.pos, "bracket mismatch: unexpected ')'")
	}
	f := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]

	if f.sqrt {
		if err := f.acc.Sqrt(); err != nil {
			return locate(err, opParse, it.pos)
		}
	}
	if p.trace.Enabled() {
		p.trace.Debug("parser", "pop", "depth", len(s.stack), "unit", f.acc.String())
	}
	parent := s.top()
	if err := parent.acc.AddUnit(&f.acc, f.times); err != nil {
		return locate(err, opParse, it.pos)
	}
	return checkFinite(parent.acc.Factor, it.pos)
}

func (p *Parser) handleFactor(s *state, it item) (bool, error) {
	f, err := strconv.ParseFloat(it.text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return false, diag.ErrorAt(diag.MalformedExpression, opParse, it.pos,
				"factor '%s' out of range", it.text)
		}
		return false, nil
	}
	// "inf" and "nan" are left to symbol resolution.
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return false, nil
	}
	if touchesOperator(s.src, it) {
		return false, diag.ErrorAt(diag.MalformedExpression, opParse, it.pos,
			"factor '%s' must be separated from operators by whitespace", it.text)
	}

	top := s.top()
	if top.sign < 0 {
		if f == 0 {
			return false, diag.ErrorAt(diag.InvalidOperation, opParse, it.pos, "division by zero factor")
		}
		top.acc.Factor /= f
	} else {
		top.acc.Factor *= f
	}
	p.trace.Debug("parser", "factor", "value", f, "sign", top.sign)
	return true, checkFinite(top.acc.Factor, it.pos)
}

func (p *Parser) handleUnit(s *state, it item) (bool, error) {
	symbol, expText, hasExp := strings.Cut(it.text, "^")
	if len(symbol) >= p.limits.MaxSymbolLen {
		return false, diag.ErrorAt(diag.ResourceExhausted, opParse, it.pos,
			"symbol longer than %d bytes", p.limits.MaxSymbolLen-1)
	}
	if symbol == "" {
		return false, nil
	}

	exp := 1
	if hasExp {
		if expText == "" {
			return false, diag.ErrorAt(diag.MalformedExpression, opParse, it.pos,
				"missing exponent after '^' while parsing '%s'", it.text)
		}
		n, err := strconv.ParseInt(expText, 10, 32)
		if errors.Is(err, strconv.ErrRange) {
			return false, diag.ErrorAt(diag.InvalidOperation, opParse, it.pos+len(symbol)+1,
				"exponent '%s' out of range while parsing '%s'", expText, it.text)
		}
		if err != nil {
			return false, diag.ErrorAt(diag.MalformedExpression, opParse, it.pos+len(symbol)+1,
				"invalid exponent '%s' while parsing '%s'", expText, it.text)
		}
		exp = int(n)
	}

	top := s.top()
	exp *= top.sign

	u, prefix, err := p.table.Resolve(symbol)
	if err != nil {
		return false, locate(err, opParse, it.pos)
	}
	if err := top.acc.AddUnit(&u, exp); err != nil {
		return false, locate(err, opParse, it.pos)
	}
	top.acc.Factor *= math.Pow(prefix, float64(exp))
	p.trace.Debug("parser", "unit", "symbol", symbol, "exp", exp, "prefix", prefix)
	return true, checkFinite(top.acc.Factor, it.pos)
}

func checkFinite(f float64, pos int) error {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return diag.ErrorAt(diag.InvalidOperation, opParse, pos, "factor is not finite")
	}
	return nil
}
