package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	KindCompilationUnit
	KindPackageDecl
	KindImportDecl

	// Type declarations
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindAnnotationDecl
	KindLocalClassDecl

	// Declaration parts
	KindModifiers
	KindAnnotation
	KindTypeParameters
	KindExtendsClause
	KindImplementsClause
	KindPermitsClause
	KindClassBody
	KindEnumConstant

	// Members
	KindFieldDecl
	KindVarDeclarator
	KindMethodDecl
	KindConstructorDecl
	KindInitializer
	KindParameters
	KindParameter
	KindThrowsList
	KindType

	// Bodies
	KindBlock
	KindLocalVarDecl
	KindStatement
	KindExpr

	KindIdentifier
	KindQualifiedName
)

var nodeKindNames = map[NodeKind]string{
	KindError:            "Error",
	KindCompilationUnit:  "CompilationUnit",
	KindPackageDecl:      "PackageDecl",
	KindImportDecl:       "ImportDecl",
	KindClassDecl:        "ClassDecl",
	KindInterfaceDecl:    "InterfaceDecl",
	KindEnumDecl:         "EnumDecl",
	KindRecordDecl:       "RecordDecl",
	KindAnnotationDecl:   "AnnotationDecl",
	KindLocalClassDecl:   "LocalClassDecl",
	KindModifiers:        "Modifiers",
	KindAnnotation:       "Annotation",
	KindTypeParameters:   "TypeParameters",
	KindExtendsClause:    "ExtendsClause",
	KindImplementsClause: "ImplementsClause",
	KindPermitsClause:    "PermitsClause",
	KindClassBody:        "ClassBody",
	KindEnumConstant:     "EnumConstant",
	KindFieldDecl:        "FieldDecl",
	KindVarDeclarator:    "VarDeclarator",
	KindMethodDecl:       "MethodDecl",
	KindConstructorDecl:  "ConstructorDecl",
	KindInitializer:      "Initializer",
	KindParameters:       "Parameters",
	KindParameter:        "Parameter",
	KindThrowsList:       "ThrowsList",
	KindType:             "Type",
	KindBlock:            "Block",
	KindLocalVarDecl:     "LocalVarDecl",
	KindStatement:        "Statement",
	KindExpr:             "Expr",
	KindIdentifier:       "Identifier",
	KindQualifiedName:    "QualifiedName",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTypeDecl reports whether the kind declares a class-like type.
func (k NodeKind) IsTypeDecl() bool {
	switch k {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl, KindAnnotationDecl:
		return true
	}
	return false
}

type Error struct {
	Message string
	Got     *Token
}

// Node is a node of the concrete syntax tree. First and Last index the
// significant (non-trivia) tokens covered by the node, inclusive; Last is
// less than First for nodes that cover no tokens.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Parent   *Node
	Token    *Token
	Error    *Error
	First    int
	Last     int
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		child.Parent = n
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

func (n *Node) String() string {
	var b strings.Builder
	n.writeIndent(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.writeIndent(&b, 0, true)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		b.WriteString(" " + n.Token.Literal)
	}
	if n.Error != nil {
		b.WriteString(" ERROR: " + n.Error.Message)
	}
	b.WriteString("\n")
	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}
