package parser

import (
	"sort"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Lexer splits Java source into tokens. Whitespace and comments are
// returned as tokens so that the token stream covers every byte of the
// input.
type Lexer struct {
	input  []byte
	pos    int
	line   int
	column int
	errors []ParseError
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// Errors returns the lexical errors found so far.
func (l *Lexer) Errors() []ParseError {
	return l.errors
}

func (l *Lexer) report(tok Token, msg string) {
	l.errors = append(l.errors, ParseError{Start: tok.Start(), End: tok.End(), Message: msg})
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	if l.input[l.pos] < utf8.RuneSelf {
		return rune(l.input[l.pos]), 1
	}
	return utf8.DecodeRune(l.input[l.pos:])
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// advanceRune consumes one UTF-8 sequence, counting it as a single column.
func (l *Lexer) advanceRune() {
	_, size := l.peekRune()
	if size <= 1 {
		l.advance()
		return
	}
	l.pos += size
	l.column++
}

// Tokenize lexes the whole input. The final token is always TokenEOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) NextToken() Token {
	start := l.Position()

	if l.atEOF() {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	}

	ch := l.peek()
	switch {
	case ch == '/' && l.peekN(1) == '/':
		return l.scanLineComment(start)
	case ch == '/' && l.peekN(1) == '*':
		return l.scanBlockComment(start)
	case isSpace(ch):
		return l.scanWhitespace(start)
	case isDigit(ch), ch == '.' && isDigit(l.peekN(1)):
		return l.scanNumber(start)
	case ch == '\'':
		return l.scanQuoted(start, '\'', TokenCharLiteral)
	case ch == '"':
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(start)
		}
		return l.scanQuoted(start, '"', TokenStringLiteral)
	}

	if r, _ := l.peekRune(); isJavaLetter(r) {
		return l.scanIdentOrKeyword(start)
	}
	return l.scanOperator(start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for isSpace(l.peek()) {
		l.advance()
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for !l.atEOF() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

// scanBlockComment consumes up to and including "*/". An unterminated
// comment runs to the end of input.
func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for !l.atEOF() {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			return l.token(TokenComment, start)
		}
		l.advance()
	}
	tok := l.token(TokenComment, start)
	l.report(tok, "unterminated comment")
	return tok
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for {
		r, _ := l.peekRune()
		if r == 0 || !isJavaLetterOrDigit(r) {
			break
		}
		l.advanceRune()
	}
	literal := string(l.input[start.Offset:l.pos])

	if literal == "non" && hasPrefixAt(l.input, l.pos, "-sealed") {
		after := l.pos + len("-sealed")
		if after >= len(l.input) || !isJavaLetterOrDigit(rune(l.input[after])) {
			l.advanceN(len("-sealed"))
			return l.token(TokenNonSealed, start)
		}
	}

	return l.token(LookupKeyword(literal), start)
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		isFloat := false
		if l.peek() == '.' {
			isFloat = true
			l.advance()
			for isHexDigit(l.peek()) || l.peek() == '_' {
				l.advance()
			}
		}
		if l.peek() == 'p' || l.peek() == 'P' {
			isFloat = true
			l.scanExponent()
		}
		return l.numberSuffix(start, isFloat)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
			l.advance()
		}
		return l.numberSuffix(start, false)
	}

	isFloat := false
	l.skipDigits()
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isFloat = true
		l.advance()
		l.skipDigits()
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.scanExponent()
	}
	return l.numberSuffix(start, isFloat)
}

func (l *Lexer) skipDigits() {
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
}

func (l *Lexer) scanExponent() {
	l.advance()
	if l.peek() == '+' || l.peek() == '-' {
		l.advance()
	}
	l.skipDigits()
}

func (l *Lexer) numberSuffix(start Position, isFloat bool) Token {
	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		isFloat = true
		l.advance()
	case 'l', 'L':
		if !isFloat {
			l.advance()
		}
	}
	if isFloat {
		return l.token(TokenFloatLiteral, start)
	}
	return l.token(TokenIntLiteral, start)
}

// scanQuoted scans a char or string literal. Literals cannot span lines;
// an unterminated literal stops before the newline.
func (l *Lexer) scanQuoted(start Position, quote byte, kind TokenKind) Token {
	l.advance()
	for !l.atEOF() && l.peek() != quote && l.peek() != '\n' {
		if l.peek() == '\\' && l.peekN(1) != '\n' {
			l.advance()
		}
		l.advanceRune()
	}
	if l.peek() == quote {
		l.advance()
		return l.token(kind, start)
	}
	tok := l.token(kind, start)
	if kind == TokenCharLiteral {
		l.report(tok, "unterminated character literal")
	} else {
		l.report(tok, "unterminated string literal")
	}
	return tok
}

func (l *Lexer) scanTextBlock(start Position) Token {
	l.advanceN(3)
	for !l.atEOF() {
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			return l.token(TokenTextBlock, start)
		}
		if l.peek() == '\\' {
			l.advance()
		}
		l.advanceRune()
	}
	tok := l.token(TokenTextBlock, start)
	l.report(tok, "unterminated text block")
	return tok
}

type operator struct {
	text string
	kind TokenKind
}

// operators is ordered longest first so the first match is the longest.
var operators []operator

func init() {
	for kind, text := range spellings {
		if !kind.IsKeyword() {
			operators = append(operators, operator{text: text, kind: kind})
		}
	}
	sort.Slice(operators, func(i, j int) bool {
		if len(operators[i].text) != len(operators[j].text) {
			return len(operators[i].text) > len(operators[j].text)
		}
		return operators[i].text < operators[j].text
	})
}

func (l *Lexer) scanOperator(start Position) Token {
	for _, op := range operators {
		if hasPrefixAt(l.input, l.pos, op.text) {
			l.advanceN(len(op.text))
			return l.token(op.kind, start)
		}
	}
	l.advanceRune()
	tok := l.token(TokenError, start)
	l.report(tok, "unexpected character "+strconv.Quote(tok.Literal))
	return tok
}

func hasPrefixAt(input []byte, pos int, prefix string) bool {
	if pos+len(prefix) > len(input) {
		return false
	}
	return string(input[pos:pos+len(prefix)]) == prefix
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isJavaLetter(r rune) bool {
	if r < utf8.RuneSelf {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
	}
	return unicode.IsLetter(r)
}

func isJavaLetterOrDigit(r rune) bool {
	if r < utf8.RuneSelf {
		return isJavaLetter(r) || (r >= '0' && r <= '9')
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
