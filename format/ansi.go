package format

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/dhamidi/javahl/highlight"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "monokai"

// tokenTypes maps each highlight style onto the chroma token type whose
// theme colour renders it.
var tokenTypes = map[highlight.Style]chroma.TokenType{
	highlight.StyleAccessModifier:    chroma.KeywordDeclaration,
	highlight.StyleKeyword:           chroma.Keyword,
	highlight.StyleDatatype:          chroma.KeywordType,
	highlight.StyleStrings:           chroma.LiteralString,
	highlight.StyleLiteral:           chroma.LiteralNumber,
	highlight.StyleOperator:          chroma.Operator,
	highlight.StyleBracket:           chroma.Punctuation,
	highlight.StyleComment:           chroma.Comment,
	highlight.StyleIdentifier:        chroma.Name,
	highlight.StyleDefault:           chroma.Text,
	highlight.StyleClassName:         chroma.NameClass,
	highlight.StyleInterfaceName:     chroma.NameEntity,
	highlight.StyleEnumName:          chroma.NameConstant,
	highlight.StyleMethodName:        chroma.NameFunction,
	highlight.StyleMethodCall:        chroma.NameFunctionMagic,
	highlight.StyleVariable:          chroma.NameVariable,
	highlight.StyleNoAccess:          chroma.GenericDeleted,
	highlight.StyleUnknownIdentifier: chroma.NameOther,
	highlight.StyleError:             chroma.Error,
}

// TokenType returns the chroma token type a style set renders as. Error
// wins over every other style.
func TokenType(set []highlight.Style) chroma.TokenType {
	if highlight.Has(set, highlight.StyleError) {
		return chroma.Error
	}
	for _, s := range set {
		if tt, ok := tokenTypes[s]; ok {
			return tt
		}
	}
	return chroma.TextWhitespace
}

// ANSIEncoder renders a document for a true-colour terminal.
type ANSIEncoder struct {
	w     io.Writer
	theme string
	doc   Document
}

func NewANSIEncoder(w io.Writer, theme string) *ANSIEncoder {
	if theme == "" {
		theme = DefaultTheme
	}
	return &ANSIEncoder{w: w, theme: theme}
}

func (e *ANSIEncoder) Encode(doc Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ANSIEncoder) MarshalText() ([]byte, error) {
	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	var sb strings.Builder
	if err := formatter.Format(&sb, styles.Get(e.theme), chroma.Literator(Tokens(e.doc)...)); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// Tokens converts the document's spans, merged where their style sets
// match, into chroma tokens.
func Tokens(doc Document) []chroma.Token {
	var tokens []chroma.Token
	offset := 0
	for _, span := range highlight.Compact(doc.Result.Spans) {
		end := offset + span.Length
		tokens = append(tokens, chroma.Token{
			Type:  TokenType(span.Styles),
			Value: textOf(doc.Text, offset, end),
		})
		offset = end
	}
	return tokens
}
