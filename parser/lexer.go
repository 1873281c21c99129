package parser

// item is one chunk of an expression together with its byte offset.
type item struct {
	text string
	pos  int
}

// isSpace matches the C locale whitespace set.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// isSplit reports characters that end an item and form one on their own.
func isSplit(c byte) bool {
	switch c {
	case '*', '/', '(', ')':
		return true
	}
	return false
}

func isOperator(c byte) bool {
	return c == '*' || c == '/'
}

// lexer yields the items of src left to right.
type lexer struct {
	src string
	pos int
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

// next returns the following item, or false at end of input.
func (l *lexer) next() (item, bool) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return item{}, false
	}
	start := l.pos
	for l.pos < len(l.src) && !isSpace(l.src[l.pos]) && !isSplit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		l.pos++
	}
	return item{text: l.src[start:l.pos], pos: start}, true
}

// touchesOperator reports whether it is directly preceded or followed by
// '*' or '/' in src.
func touchesOperator(src string, it item) bool {
	if it.pos > 0 && isOperator(src[it.pos-1]) {
		return true
	}
	end := it.pos + len(it.text)
	return end < len(src) && isOperator(src[end])
}
