package symbols

import (
	"strings"

	"github.com/dhamidi/javahl/java/parser"
)

// Unit is one parsed compilation unit.
type Unit struct {
	Path   string
	Result *parser.Result
}

// ParseUnit runs the front end on content.
func ParseUnit(path string, content []byte) Unit {
	return Unit{Path: path, Result: parser.Parse(content)}
}

// Build folds the units, in order, into a new table. A type whose simple
// name is already known becomes a type-reference symbol instead of a new
// entry, so the first declaration of a name wins.
func Build(units ...Unit) *Table {
	b := &builder{table: newTable()}
	for _, u := range units {
		b.fold(u)
	}
	return b.table
}

type builder struct {
	table *Table
	unit  Unit
	pkg   string
	stack []*TypeContext
}

func (b *builder) fold(u Unit) {
	if u.Result == nil || u.Result.Tree == nil {
		return
	}
	b.unit = u
	b.pkg = ""
	b.stack = b.stack[:0]
	b.visit(u.Result.Tree)
}

func (b *builder) current() *TypeContext {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) text(n *parser.Node) string {
	return b.unit.Result.Text(n)
}

func (b *builder) visit(n *parser.Node) {
	switch {
	case n.Kind == parser.KindPackageDecl:
		if name := n.FirstChildOfKind(parser.KindQualifiedName); name != nil {
			b.pkg = b.text(name)
		}
		return
	case n.Kind == parser.KindImportDecl:
		return
	case n.Kind.IsTypeDecl():
		b.typeDecl(n)
		return
	case n.Kind == parser.KindMethodDecl, n.Kind == parser.KindConstructorDecl:
		b.method(n)
	case n.Kind == parser.KindFieldDecl, n.Kind == parser.KindLocalVarDecl:
		b.variables(n)
		return
	case n.Kind == parser.KindEnumConstant:
		if id := n.FirstChildOfKind(parser.KindIdentifier); id != nil {
			b.addSymbol(&Symbol{Name: id.TokenLiteral(), Kind: KindField, Modifier: ModifierPublic, Offset: id.Span.Start.Offset})
		}
		return
	}
	for _, child := range n.Children {
		b.visit(child)
	}
}

func (b *builder) addSymbol(sym *Symbol) {
	owner := b.current()
	if owner == nil {
		return
	}
	sym.Package = b.pkg
	if owner.add(sym) {
		b.table.index(sym)
	}
}

func (b *builder) typeDecl(n *parser.Node) {
	body := n.FirstChildOfKind(parser.KindClassBody)
	id := n.FirstChildOfKind(parser.KindIdentifier)
	if id == nil {
		if body != nil {
			b.visit(body)
		}
		return
	}

	decl := &TypeContext{
		Name:       id.TokenLiteral(),
		Package:    b.pkg,
		Modifier:   b.modifierOf(n),
		SuperClass: b.superClassOf(n),
		Class:      b.classify(n),
		Outer:      b.current(),
		File:       b.unit.Path,
		Offset:     id.Span.Start.Offset,
	}

	tc := decl
	if existing := b.table.types[decl.Name]; existing != nil {
		ref := decl.Reference()
		ref.DeclaringType = nil
		owner := b.current()
		if owner == nil {
			owner = existing
		}
		if owner.add(ref) {
			b.table.index(ref)
		}
		if existing.Package == decl.Package {
			tc = existing
		} else if _, ok := b.table.qualified[decl.QualifiedName()]; !ok {
			b.table.qualified[decl.QualifiedName()] = decl
		}
	} else {
		b.table.register(decl)
	}

	b.stack = append(b.stack, tc)
	defer func() { b.stack = b.stack[:len(b.stack)-1] }()

	if n.Kind == parser.KindRecordDecl {
		if params := n.FirstChildOfKind(parser.KindParameters); params != nil {
			for _, p := range params.ChildrenOfKind(parser.KindParameter) {
				if pid := p.FirstChildOfKind(parser.KindIdentifier); pid != nil {
					b.addSymbol(&Symbol{Name: pid.TokenLiteral(), Kind: KindField, Modifier: ModifierPrivate, Offset: pid.Span.Start.Offset})
				}
			}
		}
	}
	if body != nil {
		b.visit(body)
	}
}

func (b *builder) classify(n *parser.Node) Class {
	switch n.Kind {
	case parser.KindInterfaceDecl, parser.KindAnnotationDecl:
		return ClassInterface
	case parser.KindEnumDecl:
		return ClassEnum
	}
	if b.hasMainMethod(n) {
		return ClassRunnable
	}
	return ClassBasic
}

// hasMainMethod looks for "public static void main(T[] args)" among the
// direct members of a class.
func (b *builder) hasMainMethod(n *parser.Node) bool {
	body := n.FirstChildOfKind(parser.KindClassBody)
	if body == nil {
		return false
	}
	for _, m := range body.ChildrenOfKind(parser.KindMethodDecl) {
		if id := m.FirstChildOfKind(parser.KindIdentifier); id == nil || id.TokenLiteral() != "main" {
			continue
		}
		if b.text(m.FirstChildOfKind(parser.KindType)) != "void" {
			continue
		}
		params := m.FirstChildOfKind(parser.KindParameters)
		if params == nil {
			continue
		}
		formals := params.ChildrenOfKind(parser.KindParameter)
		if len(formals) != 1 {
			continue
		}
		typ := b.text(formals[0].FirstChildOfKind(parser.KindType))
		if !strings.Contains(typ, "[") && !strings.HasSuffix(typ, "...") {
			continue
		}
		mods := m.FirstChildOfKind(parser.KindModifiers)
		if hasKeyword(mods, "public") && hasKeyword(mods, "static") {
			return true
		}
	}
	return false
}

func hasKeyword(modifiers *parser.Node, keyword string) bool {
	if modifiers == nil {
		return false
	}
	for _, child := range modifiers.ChildrenOfKind(parser.KindIdentifier) {
		if child.TokenLiteral() == keyword {
			return true
		}
	}
	return false
}

// superClassOf returns the simple name of the first type in the extends
// clause, without qualification or type arguments.
func (b *builder) superClassOf(n *parser.Node) string {
	ext := n.FirstChildOfKind(parser.KindExtendsClause)
	if ext == nil {
		return ""
	}
	typ := ext.FirstChildOfKind(parser.KindType)
	if typ == nil {
		return ""
	}
	ids := typ.ChildrenOfKind(parser.KindIdentifier)
	if len(ids) == 0 {
		return b.text(typ)
	}
	return ids[len(ids)-1].TokenLiteral()
}

func (b *builder) method(n *parser.Node) {
	id := n.FirstChildOfKind(parser.KindIdentifier)
	if id == nil {
		return
	}
	sym := &Symbol{
		Name:     id.TokenLiteral(),
		Kind:     KindMethodDeclaration,
		Modifier: b.modifierOf(n),
		Offset:   id.Span.Start.Offset,
	}
	if n.Kind == parser.KindConstructorDecl {
		sym.Kind = KindMethodCall
	} else if params := n.FirstChildOfKind(parser.KindParameters); params != nil {
		for _, p := range params.ChildrenOfKind(parser.KindParameter) {
			param := Param{Type: b.text(p.FirstChildOfKind(parser.KindType))}
			if pid := p.FirstChildOfKind(parser.KindIdentifier); pid != nil {
				param.Name = pid.TokenLiteral()
			}
			sym.Params = append(sym.Params, param)
		}
	}
	b.addSymbol(sym)
}

func (b *builder) variables(n *parser.Node) {
	for _, decl := range n.ChildrenOfKind(parser.KindVarDeclarator) {
		id := decl.FirstChildOfKind(parser.KindIdentifier)
		if id == nil {
			continue
		}
		b.addSymbol(&Symbol{
			Name:     id.TokenLiteral(),
			Kind:     KindField,
			Modifier: b.modifierOf(decl),
			Offset:   id.Span.Start.Offset,
		})
	}
}

// modifierOf scans the header of n, then of each enclosing declaration,
// for the first access modifier.
func (b *builder) modifierOf(n *parser.Node) Modifier {
	for cur := n; cur != nil; cur = cur.Parent {
		if !isDeclaration(cur.Kind) {
			continue
		}
		if m, ok := b.scanHeader(cur); ok {
			return m
		}
	}
	return ModifierPackage
}

func isDeclaration(kind parser.NodeKind) bool {
	switch kind {
	case parser.KindMethodDecl, parser.KindConstructorDecl, parser.KindFieldDecl,
		parser.KindLocalVarDecl, parser.KindVarDeclarator, parser.KindEnumConstant:
		return true
	}
	return kind.IsTypeDecl()
}

// scanHeader scans the tokens of n that precede its body, initializer or
// declarators.
func (b *builder) scanHeader(n *parser.Node) (Modifier, bool) {
	end := n.Last
	for _, child := range n.Children {
		switch child.Kind {
		case parser.KindClassBody, parser.KindBlock, parser.KindExpr, parser.KindVarDeclarator:
			end = child.First - 1
		default:
			continue
		}
		break
	}
	code := b.unit.Result.Code
	for i := n.First; i <= end && i < len(code); i++ {
		switch code[i].Kind {
		case parser.TokenPublic:
			return ModifierPublic, true
		case parser.TokenProtected:
			return ModifierProtected, true
		case parser.TokenPrivate:
			return ModifierPrivate, true
		}
	}
	return ModifierPackage, false
}
