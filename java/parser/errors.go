package parser

import "fmt"

// ParseError is a syntax error reported by the lexer or parser. Start is
// -1 when the error cannot be attributed to a location in the input.
type ParseError struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Message string `json:"message"`
}

func (e ParseError) Error() string {
	if e.Start < 0 {
		return e.Message
	}
	return fmt.Sprintf("offset %d: %s", e.Start, e.Message)
}

// Attributable reports whether the error refers to a location in the input.
func (e ParseError) Attributable() bool {
	return e.Start >= 0
}

func errorAt(tok Token, format string, args ...any) ParseError {
	return ParseError{
		Start:   tok.Start(),
		End:     tok.End(),
		Message: fmt.Sprintf(format, args...),
	}
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Literal)
	}
	return fmt.Sprintf("%q", tok.Literal)
}
