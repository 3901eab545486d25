package symbols

import "strings"

// Modifier is the declared visibility of a type or member.
type Modifier int

const (
	// ModifierPackage is the visibility of a declaration without an
	// access modifier.
	ModifierPackage Modifier = iota
	ModifierPublic
	ModifierProtected
	ModifierPrivate
)

var modifierNames = map[Modifier]string{
	ModifierPackage:   "default",
	ModifierPublic:    "public",
	ModifierProtected: "protected",
	ModifierPrivate:   "private",
}

func (m Modifier) String() string {
	if name, ok := modifierNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseModifier maps a modifier keyword to its Modifier. "default" and the
// empty string mean package visibility. Anything else yields a value that
// IsAccessible treats as inaccessible.
func ParseModifier(s string) Modifier {
	switch s {
	case "public":
		return ModifierPublic
	case "protected":
		return ModifierProtected
	case "private":
		return ModifierPrivate
	case "default", "":
		return ModifierPackage
	}
	return Modifier(-1)
}

// Kind tags what a Symbol stands for.
type Kind int

const (
	KindTypeReference Kind = iota
	KindMethodDeclaration
	KindMethodCall
	KindField
)

var kindNames = map[Kind]string{
	KindTypeReference:     "type-reference",
	KindMethodDeclaration: "method-declaration",
	KindMethodCall:        "method-call",
	KindField:             "field",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Class classifies a TypeContext.
type Class int

const (
	ClassBasic Class = iota
	ClassRunnable
	ClassInterface
	ClassEnum
)

var classNames = map[Class]string{
	ClassBasic:     "basic",
	ClassRunnable:  "runnable",
	ClassInterface: "interface",
	ClassEnum:      "enum",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

type Param struct {
	Name string
	Type string
}

// Symbol is one declared or referenced member. DeclaringType points back
// at the owning TypeContext and is never nil for symbols held by a Table.
type Symbol struct {
	Name          string
	Kind          Kind
	Modifier      Modifier
	Package       string
	DeclaringType *TypeContext
	// SuperClass is set for type references to the extends clause of the
	// declaration that produced the reference.
	SuperClass string
	Params     []Param
	// Offset is the byte offset of the declaring name in its file.
	Offset int
}

func (s *Symbol) String() string {
	var b strings.Builder
	b.WriteString(s.Modifier.String())
	b.WriteString(" ")
	b.WriteString(s.Kind.String())
	b.WriteString(" ")
	if s.DeclaringType != nil {
		b.WriteString(s.DeclaringType.QualifiedName())
		b.WriteString(".")
	}
	b.WriteString(s.Name)
	if s.Kind == KindMethodDeclaration {
		b.WriteString("(")
		for i, p := range s.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Type + " " + p.Name)
		}
		b.WriteString(")")
	}
	return b.String()
}

// TypeContext is one declared class, interface, enum or record together
// with the members declared in it, in declaration order.
type TypeContext struct {
	Name       string
	Package    string
	Modifier   Modifier
	SuperClass string
	Class      Class
	// Outer is the type this one is nested in, nil for top-level types.
	Outer   *TypeContext
	File    string
	Offset  int
	Symbols []*Symbol
}

func (t *TypeContext) QualifiedName() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// Lookup returns the first owned symbol with the given name.
func (t *TypeContext) Lookup(name string) *Symbol {
	if t == nil {
		return nil
	}
	for _, sym := range t.Symbols {
		if sym.Name == name {
			return sym
		}
	}
	return nil
}

// add appends sym unless a symbol with the same name and kind is already
// owned. It reports whether sym was added.
func (t *TypeContext) add(sym *Symbol) bool {
	for _, existing := range t.Symbols {
		if existing.Name == sym.Name && existing.Kind == sym.Kind {
			return false
		}
	}
	sym.DeclaringType = t
	t.Symbols = append(t.Symbols, sym)
	return true
}

// Reference returns the type viewed as a type-reference symbol, for
// accessibility checks on uses of the type name.
func (t *TypeContext) Reference() *Symbol {
	declaring := t.Outer
	if declaring == nil {
		declaring = t
	}
	return &Symbol{
		Name:          t.Name,
		Kind:          KindTypeReference,
		Modifier:      t.Modifier,
		Package:       t.Package,
		DeclaringType: declaring,
		SuperClass:    t.SuperClass,
		Offset:        t.Offset,
	}
}
