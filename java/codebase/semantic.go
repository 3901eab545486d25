package codebase

import (
	"github.com/dhamidi/javahl/highlight"
	"github.com/dhamidi/javahl/java/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Legend lists token types and modifiers in the order SemanticTokens
// indexes them. Both are the highlight styles.
func Legend() protocol.SemanticTokensLegend {
	names := make([]string, len(highlight.Styles))
	for i, s := range highlight.Styles {
		names[i] = string(s)
	}
	return protocol.SemanticTokensLegend{
		TokenTypes:     names,
		TokenModifiers: names,
	}
}

// SemanticToken is one single-line token in UTF-16 coordinates.
type SemanticToken struct {
	Line      int
	StartChar int
	Length    int
	TokenType int
	Modifiers int
}

// Tokens positions the styled ranges of result in text. A range that
// spans lines is split at each line break. The token type is the first
// style other than error and every style of the range is set as a
// modifier.
func Tokens(text []byte, result highlight.Result) []SemanticToken {
	lines := highlight.NewLineIndex(text)
	var tokens []SemanticToken
	for _, r := range highlight.Ranges(result.Spans) {
		if r.End > len(text) {
			r.End = len(text)
		}
		typ, mods := tokenType(r.Styles)
		if typ < 0 {
			continue
		}
		for start := r.Start; start < r.End; {
			end := r.End
			if l := lines.Line(start); l < lines.Lines() {
				if newline := lines.LineStart(l+1) - 1; newline < end {
					end = newline
				}
			}
			if end > start {
				line, char := lines.UTF16(start)
				_, endChar := lines.UTF16(end)
				tokens = append(tokens, SemanticToken{
					Line:      line,
					StartChar: char,
					Length:    endChar - char,
					TokenType: typ,
					Modifiers: mods,
				})
			}
			if end < r.End {
				end++
			}
			start = end
		}
	}
	return tokens
}

func tokenType(styles []highlight.Style) (typ, mods int) {
	typ = -1
	for _, s := range styles {
		i := s.Index()
		if i < 0 {
			continue
		}
		mods |= 1 << i
		if typ < 0 && s != highlight.StyleError {
			typ = i
		}
	}
	if typ < 0 && highlight.Has(styles, highlight.StyleError) {
		typ = highlight.StyleError.Index()
	}
	return typ, mods
}

// EncodeSemanticTokens produces the relative encoding of the protocol.
// Tokens must be ordered by position.
func EncodeSemanticTokens(tokens []SemanticToken) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, len(tokens)*5)
	prevLine, prevChar := 0, 0
	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		deltaChar := t.StartChar
		if deltaLine == 0 {
			deltaChar = t.StartChar - prevChar
		}
		data = append(data,
			protocol.UInteger(deltaLine),
			protocol.UInteger(deltaChar),
			protocol.UInteger(t.Length),
			protocol.UInteger(t.TokenType),
			protocol.UInteger(t.Modifiers),
		)
		prevLine, prevChar = t.Line, t.StartChar
	}
	return data
}

// Diagnostics converts the attributable syntax errors of result.
func Diagnostics(text []byte, result highlight.Result) []protocol.Diagnostic {
	lines := highlight.NewLineIndex(text)
	severity := protocol.DiagnosticSeverityError
	source := lsName
	diagnostics := []protocol.Diagnostic{}
	for _, e := range result.Errors {
		if !e.Attributable() {
			continue
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    errorRange(lines, e),
			Severity: &severity,
			Source:   &source,
			Message:  e.Message,
		})
	}
	return diagnostics
}

func errorRange(lines *highlight.LineIndex, e parser.ParseError) protocol.Range {
	end := e.End
	if end < e.Start {
		end = e.Start
	}
	startLine, startChar := lines.UTF16(e.Start)
	endLine, endChar := lines.UTF16(end)
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(startLine), Character: protocol.UInteger(startChar)},
		End:   protocol.Position{Line: protocol.UInteger(endLine), Character: protocol.UInteger(endChar)},
	}
}
