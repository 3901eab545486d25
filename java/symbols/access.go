package symbols

// Context is the editing position accessibility is judged from.
type Context struct {
	Package       string
	EnclosingType string
}

// IsAccessible reports whether sym may be referenced from ctx.
//
//   - public: always.
//   - package default: same package.
//   - protected: same package, or ctx's enclosing type is the declaring
//     type or a transitive subclass of it.
//   - private: ctx's enclosing type is the declaring type, by identity.
//
// Any other modifier value is inaccessible.
func IsAccessible(sym *Symbol, ctx Context, table *Table) bool {
	if sym == nil {
		return false
	}
	switch sym.Modifier {
	case ModifierPublic:
		return true
	case ModifierPackage:
		return ctx.Package == sym.Package
	case ModifierProtected:
		if ctx.Package == sym.Package {
			return true
		}
		if sym.DeclaringType == nil || ctx.EnclosingType == "" {
			return false
		}
		return ctx.EnclosingType == sym.DeclaringType.Name ||
			IsSubclass(table, ctx.EnclosingType, sym.DeclaringType.Name)
	case ModifierPrivate:
		if sym.DeclaringType == nil || ctx.EnclosingType == "" {
			return false
		}
		return table.Resolve(ctx.Package, ctx.EnclosingType) == sym.DeclaringType
	}
	return false
}

// IsSubclass reports whether sub extends super, directly or through a
// chain of recorded superclasses. Superclass cycles are tolerated: each
// type is visited at most once.
func IsSubclass(table *Table, sub, super string) bool {
	visited := map[string]bool{sub: true}
	for name := table.SuperClass(sub); name != ""; name = table.SuperClass(name) {
		if name == super {
			return true
		}
		if visited[name] {
			return false
		}
		visited[name] = true
	}
	return false
}
