package symbols

// Table is an immutable snapshot of the declared types of a set of
// compilation units. Types are keyed by bare name and the first
// declaration of a name wins; TypeIn resolves by package as well.
//
// A nil *Table is empty.
type Table struct {
	types     map[string]*TypeContext
	qualified map[string]*TypeContext
	order     []*TypeContext
	symbols   map[string]*Symbol
	methods   map[string]*Symbol
}

func newTable() *Table {
	return &Table{
		types:     make(map[string]*TypeContext),
		qualified: make(map[string]*TypeContext),
		symbols:   make(map[string]*Symbol),
		methods:   make(map[string]*Symbol),
	}
}

// Empty returns a table with no types.
func Empty() *Table {
	return newTable()
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Type returns the first registered type with the given simple name.
func (t *Table) Type(name string) *TypeContext {
	if t == nil {
		return nil
	}
	return t.types[name]
}

// TypeIn returns the type declared as name in package pkg.
func (t *Table) TypeIn(pkg, name string) *TypeContext {
	if t == nil {
		return nil
	}
	if pkg == "" {
		return t.qualified[name]
	}
	return t.qualified[pkg+"."+name]
}

// Resolve prefers the type declared in pkg and falls back to the bare
// name lookup.
func (t *Table) Resolve(pkg, name string) *TypeContext {
	if tc := t.TypeIn(pkg, name); tc != nil {
		return tc
	}
	return t.Type(name)
}

// Symbol returns the first symbol with the given name owned by any type.
func (t *Table) Symbol(name string) *Symbol {
	if t == nil {
		return nil
	}
	return t.symbols[name]
}

// Method returns the first method declaration with the given name.
func (t *Table) Method(name string) *Symbol {
	if t == nil {
		return nil
	}
	return t.methods[name]
}

// SuperClass returns the simple superclass name recorded for the named
// type, or "" if the type is unknown or has no extends clause.
func (t *Table) SuperClass(name string) string {
	if tc := t.Type(name); tc != nil {
		return tc.SuperClass
	}
	return ""
}

// SubClasses returns the types whose direct superclass is name, in
// registration order.
func (t *Table) SubClasses(name string) []*TypeContext {
	if t == nil {
		return nil
	}
	var result []*TypeContext
	for _, tc := range t.order {
		if tc.SuperClass == name {
			result = append(result, tc)
		}
	}
	return result
}

// Types returns every registered type in registration order.
func (t *Table) Types() []*TypeContext {
	if t == nil {
		return nil
	}
	return t.order
}

func (t *Table) register(tc *TypeContext) {
	t.types[tc.Name] = tc
	t.order = append(t.order, tc)
	if _, ok := t.qualified[tc.QualifiedName()]; !ok {
		t.qualified[tc.QualifiedName()] = tc
	}
}

func (t *Table) index(sym *Symbol) {
	if _, ok := t.symbols[sym.Name]; !ok {
		t.symbols[sym.Name] = sym
	}
	if sym.Kind == KindMethodDeclaration {
		if _, ok := t.methods[sym.Name]; !ok {
			t.methods[sym.Name] = sym
		}
	}
}
