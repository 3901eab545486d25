package highlight

import (
	"github.com/dhamidi/javahl/java/parser"
	"github.com/dhamidi/javahl/java/symbols"
)

// Classifier assigns styles to the tokens of one parse result. It is
// built once per highlighting pass; display styles of symbols and types
// are computed on first use and reused for the rest of the pass.
type Classifier struct {
	result  *parser.Result
	table   *symbols.Table
	ctx     symbols.Context
	current *symbols.TypeContext

	declared   map[int]Style
	errorLines map[int]bool
	symbols    map[*symbols.Symbol]Style
	types      map[*symbols.TypeContext]Style
}

// NewClassifier prepares a classifier for result, resolving names against
// table as seen from ctx. text must be the input result was parsed from.
func NewClassifier(text []byte, result *parser.Result, table *symbols.Table, ctx symbols.Context) *Classifier {
	c := &Classifier{
		result:   result,
		table:    table,
		ctx:      ctx,
		declared: make(map[int]Style),
		symbols:  make(map[*symbols.Symbol]Style),
		types:    make(map[*symbols.TypeContext]Style),
	}
	if ctx.EnclosingType != "" {
		c.current = table.Resolve(ctx.Package, ctx.EnclosingType)
	}
	c.errorLines = ErrorLines(text, result.Errors)
	result.Tree.Walk(func(n *parser.Node) bool {
		if n.Kind == parser.KindMethodDecl {
			if name := n.FirstChildOfKind(parser.KindIdentifier); name != nil && name.Token != nil {
				c.declared[name.Token.Start()] = StyleMethodName
			}
		}
		return true
	})
	return c
}

// Classify returns the style set of every token in result.Tokens.
func (c *Classifier) Classify() [][]Style {
	styles := make([][]Style, len(c.result.Tokens))
	for i := range c.result.Tokens {
		styles[i] = c.StyleOf(i)
	}
	return styles
}

// StyleOf returns the styles of token i: its base style, if any, plus
// StyleError when the token starts on a line covered by a parse error.
func (c *Classifier) StyleOf(i int) []Style {
	tok := c.result.Tokens[i]
	var styles []Style
	if base := c.BaseStyle(i); base != "" {
		styles = append(styles, base)
	}
	if c.errorLines[tok.Line()] {
		styles = append(styles, StyleError)
	}
	return styles
}

// BaseStyle returns the style of token i without the error overlay.
// Whitespace has no style.
func (c *Classifier) BaseStyle(i int) Style {
	tok := c.result.Tokens[i]
	switch tok.Kind {
	case parser.TokenWhitespace:
		return ""
	case parser.TokenIdent:
		return c.identifierStyle(i, tok)
	}
	return LexicalStyle(tok)
}

func (c *Classifier) identifierStyle(i int, tok parser.Token) Style {
	if style, ok := c.declared[tok.Start()]; ok {
		return style
	}
	if next, ok := c.next(i); ok && next.Kind == parser.TokenLParen {
		return StyleMethodCall
	}
	if prev, ok := c.prev(i); ok && prev.Kind == parser.TokenDot {
		if c.onDeclarationLine(i) {
			return LexicalStyle(tok)
		}
		return StyleUnknownIdentifier
	}

	if c.current != nil && tok.Literal == c.current.Name {
		return c.TypeStyle(c.current)
	}
	sym := c.current.Lookup(tok.Literal)
	if sym == nil {
		sym = c.table.Symbol(tok.Literal)
	}
	if sym != nil {
		return c.SymbolStyle(sym)
	}
	if tc := c.table.Resolve(c.ctx.Package, tok.Literal); tc != nil {
		if !symbols.IsAccessible(tc.Reference(), c.ctx, c.table) {
			return StyleNoAccess
		}
		return c.TypeStyle(tc)
	}
	return LexicalStyle(tok)
}

// SymbolStyle is the display style of sym from the classifier's context.
func (c *Classifier) SymbolStyle(sym *symbols.Symbol) Style {
	if style, ok := c.symbols[sym]; ok {
		return style
	}
	style := SymbolStyle(sym.Kind, symbols.IsAccessible(sym, c.ctx, c.table))
	c.symbols[sym] = style
	return style
}

func (c *Classifier) TypeStyle(tc *symbols.TypeContext) Style {
	if style, ok := c.types[tc]; ok {
		return style
	}
	style := TypeStyle(tc.Class)
	c.types[tc] = style
	return style
}

// SymbolStyle maps a symbol kind and its accessibility to a style.
func SymbolStyle(kind symbols.Kind, accessible bool) Style {
	switch kind {
	case symbols.KindField:
		return StyleVariable
	case symbols.KindMethodDeclaration:
		return StyleMethodName
	case symbols.KindMethodCall:
		if accessible {
			return StyleMethodCall
		}
		return StyleNoAccess
	case symbols.KindTypeReference:
		if accessible {
			return StyleClassName
		}
		return StyleNoAccess
	}
	return StyleDefault
}

// TypeStyle maps a type classification to a style.
func TypeStyle(class symbols.Class) Style {
	switch class {
	case symbols.ClassEnum:
		return StyleEnumName
	case symbols.ClassInterface:
		return StyleInterfaceName
	}
	return StyleClassName
}

func (c *Classifier) next(i int) (parser.Token, bool) {
	for j := i + 1; j < len(c.result.Tokens); j++ {
		if !c.result.Tokens[j].Kind.IsTrivia() {
			return c.result.Tokens[j], true
		}
	}
	return parser.Token{}, false
}

func (c *Classifier) prev(i int) (parser.Token, bool) {
	for j := i - 1; j >= 0; j-- {
		if !c.result.Tokens[j].Kind.IsTrivia() {
			return c.result.Tokens[j], true
		}
	}
	return parser.Token{}, false
}

// onDeclarationLine reports whether a package or import keyword precedes
// token i on the same line.
func (c *Classifier) onDeclarationLine(i int) bool {
	line := c.result.Tokens[i].Line()
	for j := i - 1; j >= 0; j-- {
		tok := c.result.Tokens[j]
		if tok.Line() != line {
			return false
		}
		if tok.Kind == parser.TokenPackage || tok.Kind == parser.TokenImport {
			return true
		}
	}
	return false
}

// ErrorLines returns the set of 1-based lines covered by attributable
// errors. An error covers every line from its start to its end offset.
func ErrorLines(text []byte, errs []parser.ParseError) map[int]bool {
	lines := make(map[int]bool)
	if len(errs) == 0 {
		return lines
	}
	index := NewLineIndex(text)
	for _, e := range errs {
		if !e.Attributable() {
			continue
		}
		end := e.End - 1
		if end < e.Start {
			end = e.Start
		}
		for line := index.Line(e.Start); line <= index.Line(end); line++ {
			lines[line] = true
		}
	}
	return lines
}
