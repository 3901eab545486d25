package parser

import (
	"fmt"
	"sort"
	"strings"
)

type Option func(*Parser)

// WithMaxErrors caps the number of recorded errors. Parsing continues past
// the cap; further errors are dropped. Zero means no cap.
func WithMaxErrors(n int) Option {
	return func(p *Parser) {
		p.maxErrors = n
	}
}

// Result is the output of one parse pass.
type Result struct {
	// Tokens holds every token of the input, including whitespace,
	// comments and lexical errors, in source order. EOF is not included.
	Tokens []Token
	// Code holds the significant tokens the tree indexes into. The last
	// element is always TokenEOF.
	Code   []Token
	Tree   *Node
	Errors []ParseError
}

// Text returns the source text of the significant tokens covered by n,
// without trivia.
func (r *Result) Text(n *Node) string {
	if n == nil || n.Last < n.First {
		return ""
	}
	var b strings.Builder
	for i := n.First; i <= n.Last && i < len(r.Code); i++ {
		b.WriteString(r.Code[i].Literal)
	}
	return b.String()
}

// HasErrors reports whether the parse recorded any error.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

type Parser struct {
	code      []Token
	pos       int
	errors    []ParseError
	maxErrors int
}

// Parse tokenizes and parses one compilation unit. It never fails: syntax
// errors are reported in Result.Errors and the parser always resumes after
// consuming at least one token, so parsing terminates in time linear in
// the number of tokens.
func Parse(input []byte, opts ...Option) *Result {
	lexer := NewLexer(input)
	all := lexer.Tokenize()

	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	for _, tok := range all {
		if tok.Kind.IsTrivia() || tok.Kind == TokenError {
			continue
		}
		p.code = append(p.code, tok)
	}
	for _, e := range lexer.Errors() {
		p.record(e)
	}

	tree := p.parseCompilationUnit()
	sort.SliceStable(p.errors, func(i, j int) bool {
		return p.errors[i].Start < p.errors[j].Start
	})

	return &Result{
		Tokens: all[:len(all)-1],
		Code:   p.code,
		Tree:   tree,
		Errors: p.errors,
	}
}

func ParseString(input string, opts ...Option) *Result {
	return Parse([]byte(input), opts...)
}

func (p *Parser) record(e ParseError) {
	if p.maxErrors > 0 && len(p.errors) >= p.maxErrors {
		return
	}
	p.errors = append(p.errors, e)
}

// errorf reports an error at tok. Errors at end of input are attributed to
// the last significant token when there is one.
func (p *Parser) errorf(tok Token, format string, args ...any) {
	if tok.Kind == TokenEOF {
		if len(p.code) < 2 {
			e := errorAt(tok, format, args...)
			e.Start, e.End = -1, -1
			p.record(e)
			return
		}
		tok = p.code[len(p.code)-2]
	}
	p.record(errorAt(tok, format, args...))
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.code) {
		return p.code[len(p.code)-1]
	}
	return p.code[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.code)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind. A missing token is reported
// but nothing is consumed; the caller's loop is responsible for progress.
func (p *Parser) expect(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	p.errorf(p.peek(), "expected %q, got %s", kind.String(), describe(p.peek()))
	return false
}

func isIdentifierLike(kind TokenKind) bool {
	switch kind {
	case TokenIdent, TokenVar, TokenYield, TokenRecord, TokenSealed, TokenNonSealed, TokenPermits:
		return true
	}
	return false
}

func (p *Parser) isIdentifierLike() bool {
	return isIdentifierLike(p.peek().Kind)
}

// speculate runs fn and rewinds the parser, returning fn's answer.
func (p *Parser) speculate(fn func() bool) bool {
	savedPos, savedErrors := p.pos, len(p.errors)
	ok := fn()
	p.pos = savedPos
	p.errors = p.errors[:savedErrors]
	return ok
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind:  kind,
		Span:  Span{Start: p.peek().Span.Start},
		First: p.pos,
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	n.Last = p.pos - 1
	if n.Last >= n.First {
		n.Span.End = p.code[n.Last].Span.End
	} else {
		n.Span.End = n.Span.Start
	}
	return n
}

// errorNode reports an error at the current token and consumes exactly
// that token.
func (p *Parser) errorNode(format string, args ...any) *Node {
	tok := p.peek()
	p.errorf(tok, format, args...)
	node := p.startNode(KindError)
	node.Error = &Error{Message: fmt.Sprintf(format, args...), Got: &tok}
	if !p.check(TokenEOF) {
		p.advance()
	}
	return p.finishNode(node)
}

func (p *Parser) identifier() *Node {
	if !p.isIdentifierLike() {
		return nil
	}
	tok := p.advance()
	return &Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span, First: p.pos - 1, Last: p.pos - 1}
}

func (p *Parser) expectIdentifier(what string) *Node {
	id := p.identifier()
	if id == nil {
		p.errorf(p.peek(), "expected %s, got %s", what, describe(p.peek()))
	}
	return id
}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)

	for !p.check(TokenEOF) {
		switch {
		case p.check(TokenSemicolon):
			p.advance()
		case p.check(TokenPackage):
			node.AddChild(p.parsePackageDecl())
		case p.check(TokenImport):
			node.AddChild(p.parseImportDecl())
		default:
			node.AddChild(p.parseTypeDecl())
		}
	}

	return p.finishNode(node)
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)
	p.advance()
	if name := p.parseQualifiedName(); name != nil {
		node.AddChild(name)
	} else {
		p.errorf(p.peek(), "expected package name, got %s", describe(p.peek()))
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.advance()
	if p.check(TokenStatic) {
		p.advance()
	}
	if name := p.parseQualifiedName(); name != nil {
		node.AddChild(name)
	} else {
		p.errorf(p.peek(), "expected import name, got %s", describe(p.peek()))
	}
	if p.check(TokenDot) && p.peekN(1).Kind == TokenStar {
		p.advance()
		p.advance()
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	if !p.isIdentifierLike() {
		return nil
	}
	node := p.startNode(KindQualifiedName)
	node.AddChild(p.identifier())
	for p.check(TokenDot) && isIdentifierLike(p.peekN(1).Kind) {
		p.advance()
		node.AddChild(p.identifier())
	}
	return p.finishNode(node)
}

func isModifier(kind TokenKind) bool {
	switch kind {
	case TokenPublic, TokenProtected, TokenPrivate, TokenStatic, TokenFinal,
		TokenAbstract, TokenNative, TokenSynchronized, TokenTransient,
		TokenVolatile, TokenStrictfp, TokenDefault, TokenSealed, TokenNonSealed:
		return true
	}
	return false
}

func (p *Parser) parseModifiers() *Node {
	node := p.startNode(KindModifiers)
	for {
		switch {
		case p.check(TokenAt) && p.peekN(1).Kind != TokenInterface:
			node.AddChild(p.parseAnnotation())
		case isModifier(p.peek().Kind) && !p.isSealedIdentifier():
			tok := p.advance()
			node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span, First: p.pos - 1, Last: p.pos - 1})
		default:
			return p.finishNode(node)
		}
	}
}

// isSealedIdentifier reports whether a contextual "sealed" is used as a
// name rather than a modifier, as in "sealed = true".
func (p *Parser) isSealedIdentifier() bool {
	if !p.check(TokenSealed) {
		return false
	}
	next := p.peekN(1).Kind
	return !isModifier(next) && next != TokenClass && next != TokenInterface && next != TokenAt
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.advance()
	if name := p.parseQualifiedName(); name != nil {
		node.AddChild(name)
	} else {
		p.errorf(p.peek(), "expected annotation name, got %s", describe(p.peek()))
	}
	if p.check(TokenLParen) {
		p.skipGroup()
	}
	return p.finishNode(node)
}

// typeDeclKind reports which type declaration starts at the current token.
func (p *Parser) typeDeclKind() (NodeKind, bool) {
	switch p.peek().Kind {
	case TokenClass:
		return KindClassDecl, true
	case TokenInterface:
		return KindInterfaceDecl, true
	case TokenEnum:
		return KindEnumDecl, true
	case TokenAt:
		if p.peekN(1).Kind == TokenInterface {
			return KindAnnotationDecl, true
		}
	case TokenRecord:
		if isIdentifierLike(p.peekN(1).Kind) && p.peekN(2).Kind != TokenAssign && p.peekN(2).Kind != TokenSemicolon {
			return KindRecordDecl, true
		}
	}
	return KindError, false
}

func (p *Parser) parseTypeDecl() *Node {
	start := p.pos
	modifiers := p.parseModifiers()
	kind, ok := p.typeDeclKind()
	if !ok {
		if p.pos == start {
			return p.errorNode("expected class, interface, enum or record declaration, got %s", describe(p.peek()))
		}
		return p.errorNode("expected type declaration after modifiers, got %s", describe(p.peek()))
	}
	return p.parseClassLike(kind, modifiers)
}

func (p *Parser) parseClassLike(kind NodeKind, modifiers *Node) *Node {
	node := &Node{Kind: kind, Span: Span{Start: modifiers.Span.Start}, First: modifiers.First}
	node.AddChild(modifiers)

	if kind == KindAnnotationDecl {
		p.advance()
	}
	p.advance()

	node.AddChild(p.expectIdentifier("type name"))
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if kind == KindRecordDecl && p.check(TokenLParen) {
		node.AddChild(p.parseParameters())
	}

	for {
		var clause NodeKind
		switch p.peek().Kind {
		case TokenExtends:
			clause = KindExtendsClause
		case TokenImplements:
			clause = KindImplementsClause
		case TokenPermits:
			clause = KindPermitsClause
		default:
			clause = KindError
		}
		if clause == KindError {
			break
		}
		node.AddChild(p.parseTypeList(clause))
	}

	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody(kind == KindEnumDecl))
	} else {
		p.errorf(p.peek(), "expected '{' to open %s body, got %s", kind, describe(p.peek()))
	}
	return p.finishNode(node)
}

func (p *Parser) parseTypeList(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.advance()
	for {
		typ := p.parseType()
		if typ == nil {
			p.errorf(p.peek(), "expected type, got %s", describe(p.peek()))
			break
		}
		node.AddChild(typ)
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	p.skipAngles()
	return p.finishNode(node)
}

func isPrimitive(kind TokenKind) bool {
	switch kind {
	case TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt,
		TokenLong, TokenFloat, TokenDouble:
		return true
	}
	return false
}

// parseType parses a type reference. It returns nil without consuming
// anything when no type starts at the current token.
func (p *Parser) parseType() *Node {
	node := p.startNode(KindType)
	switch {
	case isPrimitive(p.peek().Kind), p.check(TokenVar):
		p.advance()
	case p.isIdentifierLike():
		node.AddChild(p.identifier())
		if p.check(TokenLT) {
			p.skipAngles()
		}
		for p.check(TokenDot) && isIdentifierLike(p.peekN(1).Kind) {
			p.advance()
			node.AddChild(p.identifier())
			if p.check(TokenLT) {
				p.skipAngles()
			}
		}
	default:
		return nil
	}
	p.skipDims()
	return p.finishNode(node)
}

func (p *Parser) skipDims() {
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
	}
}

// skipAngles consumes a type argument or type parameter list. Nested
// closers lexed as shift operators count for more than one level.
func (p *Parser) skipAngles() {
	open := p.advance()
	depth := 1
	for depth > 0 {
		switch p.peek().Kind {
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenShr:
			depth -= 2
		case TokenUShr:
			depth -= 3
		case TokenSemicolon, TokenLBrace, TokenRBrace, TokenLParen, TokenRParen, TokenAssign, TokenEOF:
			p.errorf(open, "unclosed '<'")
			return
		}
		p.advance()
	}
}

func closes(open, close TokenKind) bool {
	switch open {
	case TokenLParen:
		return close == TokenRParen
	case TokenLBracket:
		return close == TokenRBracket
	case TokenLBrace:
		return close == TokenRBrace
	}
	return false
}

// skipGroup consumes a bracketed group starting at the current opening
// token, including nested groups. A closing brace that cannot belong to
// the group is left for the enclosing block.
func (p *Parser) skipGroup() {
	var stack []Token
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenEOF:
			p.errorf(stack[len(stack)-1], "unclosed %q", stack[len(stack)-1].Literal)
			return
		case TokenLParen, TokenLBracket, TokenLBrace:
			stack = append(stack, p.advance())
		case TokenRParen, TokenRBracket, TokenRBrace:
			top := stack[len(stack)-1]
			if closes(top.Kind, tok.Kind) {
				p.advance()
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return
				}
				continue
			}
			if tok.Kind == TokenRBrace {
				p.errorf(tok, "expected %q to close %q, got '}'", closerOf(top.Kind), top.Literal)
				if !containsKind(stack, TokenLBrace) {
					return
				}
				for stack[len(stack)-1].Kind != TokenLBrace {
					stack = stack[:len(stack)-1]
				}
				continue
			}
			p.errorf(tok, "unexpected %q", tok.Literal)
			p.advance()
		default:
			p.advance()
		}
	}
}

func closerOf(open TokenKind) string {
	switch open {
	case TokenLParen:
		return ")"
	case TokenLBracket:
		return "]"
	}
	return "}"
}

func containsKind(tokens []Token, kind TokenKind) bool {
	for _, tok := range tokens {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}

// unclosed reports an opening brace that reached end of input. The error
// is attributed to the brace itself so its line is flagged.
func (p *Parser) unclosed(open Token) {
	p.record(errorAt(open, "unclosed %q, reached end of input", open.Literal))
}

func (p *Parser) parseClassBody(isEnum bool) *Node {
	node := p.startNode(KindClassBody)
	open := p.advance()

	if isEnum {
		p.parseEnumConstants(node)
	}

	for !p.check(TokenRBrace) {
		if p.check(TokenEOF) {
			p.unclosed(open)
			return p.finishNode(node)
		}
		node.AddChild(p.parseMember())
	}
	p.advance()
	return p.finishNode(node)
}

func (p *Parser) parseEnumConstants(body *Node) {
	for {
		save := p.pos
		for p.check(TokenAt) {
			p.parseAnnotation()
		}
		if !p.isIdentifierLike() {
			p.pos = save
			break
		}
		node := &Node{Kind: KindEnumConstant, Span: Span{Start: p.code[save].Span.Start}, First: save}
		node.AddChild(p.identifier())
		if p.check(TokenLParen) {
			p.skipGroup()
		}
		if p.check(TokenLBrace) {
			node.AddChild(p.parseClassBody(false))
		}
		body.AddChild(p.finishNode(node))
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	if p.check(TokenSemicolon) {
		p.advance()
	}
}

func (p *Parser) parseMember() *Node {
	switch {
	case p.check(TokenSemicolon):
		p.advance()
		return nil
	case p.check(TokenLBrace), p.check(TokenStatic) && p.peekN(1).Kind == TokenLBrace:
		node := p.startNode(KindInitializer)
		if p.check(TokenStatic) {
			p.advance()
		}
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}

	start := p.startNode(KindError)
	modifiers := p.parseModifiers()

	if kind, ok := p.typeDeclKind(); ok {
		return p.parseClassLike(kind, modifiers)
	}

	var typeParams *Node
	if p.check(TokenLT) {
		typeParams = p.parseTypeParameters()
	}

	if p.isIdentifierLike() && (p.peekN(1).Kind == TokenLParen || p.peekN(1).Kind == TokenLBrace) {
		start.Kind = KindConstructorDecl
		start.AddChild(modifiers)
		start.AddChild(typeParams)
		return p.parseConstructor(start)
	}

	var returnType *Node
	if p.check(TokenVoid) {
		returnType = p.startNode(KindType)
		p.advance()
		p.finishNode(returnType)
	} else {
		returnType = p.parseType()
	}
	if returnType == nil {
		return p.errorNode("expected member declaration, got %s", describe(p.peek()))
	}

	if !p.isIdentifierLike() {
		p.errorf(p.peek(), "expected member name, got %s", describe(p.peek()))
		start.AddChild(modifiers)
		start.AddChild(returnType)
		if !p.check(TokenRBrace) && !p.check(TokenEOF) {
			p.advance()
		}
		start.Error = &Error{Message: "expected member name"}
		return p.finishNode(start)
	}

	start.AddChild(modifiers)
	if p.peekN(1).Kind == TokenLParen {
		start.Kind = KindMethodDecl
		start.AddChild(typeParams)
		start.AddChild(returnType)
		return p.parseMethod(start)
	}
	start.Kind = KindFieldDecl
	start.AddChild(returnType)
	p.parseDeclarators(start)
	p.expect(TokenSemicolon)
	return p.finishNode(start)
}

func (p *Parser) parseConstructor(node *Node) *Node {
	node.AddChild(p.identifier())
	if p.check(TokenLParen) {
		node.AddChild(p.parseParameters())
	}
	if p.check(TokenThrows) {
		node.AddChild(p.parseTypeList(KindThrowsList))
	}
	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
	} else {
		p.errorf(p.peek(), "expected constructor body, got %s", describe(p.peek()))
	}
	return p.finishNode(node)
}

func (p *Parser) parseMethod(node *Node) *Node {
	node.AddChild(p.identifier())
	node.AddChild(p.parseParameters())
	p.skipDims()
	if p.check(TokenThrows) {
		node.AddChild(p.parseTypeList(KindThrowsList))
	}
	switch {
	case p.check(TokenLBrace):
		node.AddChild(p.parseBlock())
	case p.check(TokenSemicolon):
		p.advance()
	case p.check(TokenDefault):
		p.advance()
		node.AddChild(p.skipExpression(TokenSemicolon))
		p.expect(TokenSemicolon)
	default:
		p.errorf(p.peek(), "expected method body or ';', got %s", describe(p.peek()))
	}
	return p.finishNode(node)
}

func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	open := p.advance()
	for !p.check(TokenRParen) {
		switch {
		case p.check(TokenEOF):
			p.unclosed(open)
			return p.finishNode(node)
		case p.check(TokenLBrace), p.check(TokenRBrace), p.check(TokenSemicolon):
			p.errorf(p.peek(), "expected ')' to close parameter list, got %s", describe(p.peek()))
			return p.finishNode(node)
		}
		param := p.parseParameter()
		if param == nil {
			node.AddChild(p.errorNode("expected parameter, got %s", describe(p.peek())))
			continue
		}
		node.AddChild(param)
		if p.check(TokenComma) {
			p.advance()
		} else if !p.check(TokenRParen) {
			p.errorf(p.peek(), "expected ',' or ')', got %s", describe(p.peek()))
		}
	}
	p.advance()
	return p.finishNode(node)
}

func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)
	modifiers := p.parseModifiers()
	typ := p.parseType()
	if typ == nil {
		p.pos = node.First
		return nil
	}
	if p.check(TokenEllipsis) {
		p.advance()
		p.finishNode(typ)
	}
	node.AddChild(modifiers)
	node.AddChild(typ)
	if p.check(TokenThis) {
		p.advance()
	} else {
		node.AddChild(p.expectIdentifier("parameter name"))
	}
	p.skipDims()
	return p.finishNode(node)
}

// parseDeclarators parses "name [dims] [= init] {, name ...}" into
// VarDeclarator children of node.
func (p *Parser) parseDeclarators(node *Node) {
	for {
		decl := p.startNode(KindVarDeclarator)
		id := p.expectIdentifier("variable name")
		if id == nil {
			return
		}
		decl.AddChild(id)
		p.skipDims()
		if p.check(TokenAssign) {
			p.advance()
			decl.AddChild(p.skipExpression(TokenComma, TokenSemicolon))
		}
		node.AddChild(p.finishNode(decl))
		if !p.check(TokenComma) {
			return
		}
		p.advance()
	}
}

// skipExpression consumes an expression up to one of the stop tokens at
// nesting depth zero. Bracketed groups, including lambda and anonymous
// class bodies, are consumed whole.
func (p *Parser) skipExpression(stops ...TokenKind) *Node {
	node := p.startNode(KindExpr)
	for {
		tok := p.peek()
		if p.match(stops...) {
			break
		}
		switch tok.Kind {
		case TokenEOF, TokenRParen, TokenRBracket, TokenRBrace:
			return p.finishNode(node)
		case TokenLParen, TokenLBracket, TokenLBrace:
			p.skipGroup()
		case TokenLT:
			if !p.skipTypeArguments() {
				p.advance()
			}
		default:
			p.advance()
		}
	}
	return p.finishNode(node)
}

// skipTypeArguments consumes "<...>" when everything up to the matching
// '>' can appear in a type argument list, as in "new HashMap<K, V>()".
// Otherwise it consumes nothing and reports false.
func (p *Parser) skipTypeArguments() bool {
	save := p.pos
	depth := 0
	for {
		switch kind := p.peek().Kind; kind {
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenShr:
			depth -= 2
		case TokenUShr:
			depth -= 3
		case TokenComma, TokenDot, TokenQuestion, TokenExtends, TokenSuper,
			TokenBitAnd, TokenLBracket, TokenRBracket:
		default:
			if !isIdentifierLike(kind) && !isPrimitive(kind) {
				p.pos = save
				return false
			}
		}
		p.advance()
		if depth == 0 {
			return true
		}
		if depth < 0 {
			p.pos = save
			return false
		}
	}
}

func (p *Parser) parseBlock() *Node {
	node := p.startNode(KindBlock)
	open := p.advance()
	for !p.check(TokenRBrace) {
		if p.check(TokenEOF) {
			p.unclosed(open)
			return p.finishNode(node)
		}
		node.AddChild(p.parseStatement())
	}
	p.advance()
	return p.finishNode(node)
}

func (p *Parser) parseStatement() *Node {
	switch {
	case p.check(TokenLBrace):
		return p.parseBlock()
	case p.check(TokenSemicolon):
		p.advance()
		return nil
	case p.check(TokenRParen), p.check(TokenRBracket):
		return p.errorNode("unexpected %q", p.peek().Literal)
	case p.isLocalTypeDecl():
		node := p.startNode(KindLocalClassDecl)
		node.AddChild(p.parseTypeDecl())
		return p.finishNode(node)
	case p.isLocalVarDecl():
		node := p.parseLocalVarDecl()
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	case p.check(TokenFor) && p.peekN(1).Kind == TokenLParen:
		return p.parseForStatement()
	}
	return p.parseGenericStatement()
}

func (p *Parser) isLocalTypeDecl() bool {
	return p.speculate(func() bool {
		p.parseModifiers()
		kind, ok := p.typeDeclKind()
		return ok && kind != KindAnnotationDecl
	})
}

// isLocalVarDecl looks ahead for "[modifiers] Type name" followed by a
// token that can only continue a declaration.
func (p *Parser) isLocalVarDecl() bool {
	if p.check(TokenYield) {
		return false
	}
	return p.speculate(func() bool {
		p.parseModifiers()
		if p.parseType() == nil || !p.isIdentifierLike() {
			return false
		}
		switch p.peekN(1).Kind {
		case TokenAssign, TokenSemicolon, TokenComma, TokenColon, TokenLBracket:
			return true
		}
		return false
	})
}

func (p *Parser) parseLocalVarDecl() *Node {
	node := p.startNode(KindLocalVarDecl)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())
	p.parseDeclarators(node)
	return node
}

// parseForStatement records the loop variable declared in a for header
// and consumes the rest of the statement.
func (p *Parser) parseForStatement() *Node {
	node := p.startNode(KindStatement)
	p.advance()
	open := p.advance()
	if p.isLocalVarDecl() {
		node.AddChild(p.finishNode(p.parseLocalVarDecl()))
	}
	depth := 1
	for depth > 0 {
		switch p.peek().Kind {
		case TokenEOF:
			p.unclosed(open)
			return p.finishNode(node)
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
		case TokenLBrace:
			p.skipGroup()
			continue
		case TokenRBrace:
			p.errorf(p.peek(), "expected ')' to close for header, got '}'")
			return p.finishNode(node)
		}
		p.advance()
	}
	if body := p.parseStatement(); body != nil {
		node.AddChild(body)
	}
	return p.finishNode(node)
}

// parseGenericStatement consumes a statement without modelling its
// structure: up to a ';' at depth zero, or through a trailing block.
func (p *Parser) parseGenericStatement() *Node {
	node := p.startNode(KindStatement)
	label := p.check(TokenCase) || p.check(TokenDefault)
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenSemicolon:
			p.advance()
			return p.finishNode(node)
		case TokenColon, TokenArrow:
			p.advance()
			if label {
				return p.finishNode(node)
			}
		case TokenLBrace:
			node.AddChild(p.parseBlock())
			return p.finishNode(node)
		case TokenLParen, TokenLBracket:
			p.skipGroup()
		case TokenRBrace, TokenEOF:
			p.errorf(tok, "expected ';', got %s", describe(tok))
			return p.finishNode(node)
		case TokenRParen, TokenRBracket:
			p.errorf(tok, "unexpected %q", tok.Literal)
			p.advance()
		default:
			p.advance()
		}
	}
}
