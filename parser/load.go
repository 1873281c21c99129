package parser

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/katalvlaran/unitlib/diag"
)

const opLoad = "load_rules"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadRules reads rule definitions from r, one per line, and returns how
// many were committed. Blank lines and '#' comments are skipped. Loading
// stops at the first failing line; rules committed before it stay in the
// table.
func (p *Parser) LoadRules(r io.Reader) (int, error) {
	if err := p.usable(opLoad); err != nil {
		return 0, err
	}
	if r == nil {
		return 0, diag.Errorf(diag.InvalidArgument, opLoad, "nil reader")
	}

	sc := bufio.NewScanner(r)
	loaded, line := 0, 0
	for sc.Scan() {
		line++
		text := sc.Bytes()
		if line == 1 {
			text = bytes.TrimPrefix(text, utf8BOM)
		}
		trimmed := bytes.TrimLeft(text, " \t\v\f\r")
		if len(trimmed) == 0 || trimmed[0] == '#' {
			continue
		}
		if _, err := p.ParseRule(string(text)); err != nil {
			p.trace.Debug("parser", "rule file rejected", "line", line, "err", err)
			return loaded, diag.AtLine(err, opLoad, line)
		}
		loaded++
	}
	if err := sc.Err(); err != nil {
		kind := diag.InvalidArgument
		if errors.Is(err, bufio.ErrTooLong) {
			kind = diag.ResourceExhausted
		}
		return loaded, diag.AtLine(diag.Wrap(kind, opLoad, err, "reading rules failed"), opLoad, line+1)
	}
	p.trace.Debug("parser", "rules loaded", "count", loaded)
	return loaded, nil
}

// LoadRulesFile opens path and feeds it to LoadRules.
func (p *Parser) LoadRulesFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, diag.Wrap(diag.InvalidArgument, opLoad, err, "failed to open file '%s'", path)
	}
	defer f.Close()
	return p.LoadRules(f)
}
