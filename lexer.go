package spreadsheet

import "fmt"

// tokenKind enumerates the lexical token kinds of the arithmetic+cell-ref
// grammar: no strings, booleans, functions, ranges, or worksheet refs.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokCellRef
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset in the source expression
}

// lexState tracks what kind of token may legally follow, validated against
// a two-state transition table: stateStart (expression start, or just
// after an operator/open-paren) and stateAfterValue (just after a number,
// cell reference, or close-paren).
type lexState int

const (
	stateStart      lexState = iota // start of expression, or just after an operator/(
	stateAfterValue                 // just after a number, cell ref, or )
)

// lexer tokenizes a formula expression (already stripped of the leading
// '='). Whitespace is insignificant between tokens.
type lexer struct {
	src   string
	runes []rune
	pos   int
	state lexState
}

func newLexer(src string) *lexer {
	return &lexer{src: src, runes: []rune(src)}
}

// tokenize scans the entire expression, returning a parse error on the
// first invalid character or token-transition.
func (l *lexer) tokenize() ([]token, error) {
	var toks []token
	for {
		l.skipWhitespace()
		if l.pos >= len(l.runes) {
			if !l.validTransition(tokEOF) {
				return nil, &ParseError{Expression: l.src, Reason: fmt.Sprintf("unexpected end of expression at offset %d", l.pos)}
			}
			toks = append(toks, token{kind: tokEOF, pos: l.pos})
			return toks, nil
		}

		start := l.pos
		ch := l.current()

		var t token
		switch {
		case ch == '(':
			l.pos++
			t = token{kind: tokLParen, text: "(", pos: start}
		case ch == ')':
			l.pos++
			t = token{kind: tokRParen, text: ")", pos: start}
		case ch == '+':
			l.pos++
			t = token{kind: tokPlus, text: "+", pos: start}
		case ch == '-':
			l.pos++
			t = token{kind: tokMinus, text: "-", pos: start}
		case ch == '*':
			l.pos++
			t = token{kind: tokStar, text: "*", pos: start}
		case ch == '/':
			l.pos++
			t = token{kind: tokSlash, text: "/", pos: start}
		case isDigit(ch) || (ch == '.' && l.peek(1) != 0 && isDigit(l.peek(1))):
			t = l.scanNumber()
		case isAlpha(ch):
			var err error
			t, err = l.scanCellRef()
			if err != nil {
				return nil, err
			}
		default:
			return nil, &ParseError{Expression: l.src, Reason: fmt.Sprintf("unexpected character %q at offset %d", ch, start)}
		}

		if !l.validTransition(t.kind) {
			return nil, &ParseError{Expression: l.src, Reason: fmt.Sprintf("unexpected token %q at offset %d", t.text, t.pos)}
		}
		l.updateState(t.kind)
		toks = append(toks, t)
	}
}

func (l *lexer) validTransition(k tokenKind) bool {
	switch l.state {
	case stateStart:
		switch k {
		case tokNumber, tokCellRef, tokPlus, tokMinus, tokLParen:
			return true
		}
		return false
	case stateAfterValue:
		switch k {
		case tokPlus, tokMinus, tokStar, tokSlash, tokRParen, tokEOF:
			return true
		}
		return false
	}
	return false
}

func (l *lexer) updateState(k tokenKind) {
	switch k {
	case tokNumber, tokCellRef, tokRParen:
		l.state = stateAfterValue
	case tokPlus, tokMinus, tokStar, tokSlash, tokLParen:
		l.state = stateStart
	}
}

func (l *lexer) current() rune {
	if l.pos >= len(l.runes) {
		return 0
	}
	return l.runes[l.pos]
}

func (l *lexer) peek(offset int) rune {
	p := l.pos + offset
	if p < 0 || p >= len(l.runes) {
		return 0
	}
	return l.runes[p]
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.runes) {
		switch l.runes[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }
func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
func isAlphaNumeric(ch rune) bool { return isAlpha(ch) || isDigit(ch) }

// scanNumber scans a decimal literal with an optional fractional part and
// optional exponent.
func (l *lexer) scanNumber() token {
	start := l.pos

	for l.pos < len(l.runes) && isDigit(l.current()) {
		l.pos++
	}

	if l.current() == '.' && isDigit(l.peek(1)) {
		l.pos++
		for l.pos < len(l.runes) && isDigit(l.current()) {
			l.pos++
		}
	}

	if l.current() == 'e' || l.current() == 'E' {
		saved := l.pos
		l.pos++
		if l.current() == '+' || l.current() == '-' {
			l.pos++
		}
		if !isDigit(l.current()) {
			l.pos = saved // not an exponent, back out
		} else {
			for l.pos < len(l.runes) && isDigit(l.current()) {
				l.pos++
			}
		}
	}

	text := string(l.runes[start:l.pos])
	return token{kind: tokNumber, text: text, pos: start}
}

// scanCellRef scans a CellRef production: column-letters row-digits.
func (l *lexer) scanCellRef() (token, error) {
	start := l.pos
	for l.pos < len(l.runes) && isAlpha(l.current()) {
		l.pos++
	}
	digitsStart := l.pos
	for l.pos < len(l.runes) && isDigit(l.current()) {
		l.pos++
	}
	if digitsStart == l.pos {
		text := string(l.runes[start:l.pos])
		return token{}, &ParseError{Expression: l.src, Reason: fmt.Sprintf("invalid cell reference %q at offset %d", text, start)}
	}
	// a cell ref must not be followed directly by more identifier chars
	if l.pos < len(l.runes) && isAlphaNumeric(l.current()) {
		for l.pos < len(l.runes) && isAlphaNumeric(l.current()) {
			l.pos++
		}
		text := string(l.runes[start:l.pos])
		return token{}, &ParseError{Expression: l.src, Reason: fmt.Sprintf("invalid cell reference %q at offset %d", text, start)}
	}
	text := string(l.runes[start:l.pos])
	return token{kind: tokCellRef, text: text, pos: start}, nil
}
