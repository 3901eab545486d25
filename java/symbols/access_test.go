package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAccessible(t *testing.T) {
	table := Build(
		ParseUnit("A.java", []byte(`package base;
public class A {
	private int secret;
	protected void hook() {}
	public void open() {}
}
class B extends A {}
class P { int internal; }
`)),
		ParseUnit("C.java", []byte(`package other;
public class C extends B {}
class D {}
`)),
	)
	tests := []struct {
		name   string
		symbol string
		ctx    Context
		want   bool
	}{
		{"private from declaring type", "secret", Context{"base", "A"}, true},
		{"private from other type in same package", "secret", Context{"base", "B"}, false},
		{"private without enclosing type", "secret", Context{"base", ""}, false},
		{"protected from same package", "hook", Context{"base", "B"}, true},
		{"protected from transitive subclass", "hook", Context{"other", "C"}, true},
		{"protected from unrelated type", "hook", Context{"other", "D"}, false},
		{"protected from declaring type", "hook", Context{"other", "A"}, true},
		{"package from same package", "internal", Context{"base", "B"}, true},
		{"package from other package", "internal", Context{"other", "C"}, false},
		{"public from anywhere", "open", Context{"elsewhere", "Nowhere"}, true},
		{"public without context", "open", Context{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym := table.Symbol(tt.symbol)
			require.NotNil(t, sym)
			assert.Equal(t, tt.want, IsAccessible(sym, tt.ctx, table))
		})
	}
}

func TestIsAccessibleUnknownModifier(t *testing.T) {
	sym := &Symbol{Name: "x", Kind: KindField, Modifier: ParseModifier("friend")}
	assert.False(t, IsAccessible(sym, Context{}, Empty()))
	assert.False(t, IsAccessible(nil, Context{}, Empty()))
	assert.Equal(t, "unknown", sym.Modifier.String())
}

func TestIsAccessiblePublicTypeReference(t *testing.T) {
	table := Build(ParseUnit("A.java", []byte("package p; public class A {}")))
	ref := table.Type("A").Reference()
	assert.Equal(t, KindTypeReference, ref.Kind)
	assert.True(t, IsAccessible(ref, Context{"q", "Z"}, table))
}

func TestIsSubclass(t *testing.T) {
	table := Build(ParseUnit("H.java", []byte(`class A {}
class B extends A {}
class C extends B {}
class X extends Y {}
class Y extends X {}
class S extends S {}
`)))

	tests := []struct {
		sub, super string
		want       bool
	}{
		{"B", "A", true},
		{"C", "A", true},
		{"A", "C", false},
		{"A", "A", false},
		{"X", "Y", true},
		{"X", "Missing", false},
		{"S", "Missing", false},
		{"Unknown", "A", false},
	}
	for _, tt := range tests {
		t.Run(tt.sub+"<"+tt.super, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSubclass(table, tt.sub, tt.super))
		})
	}
}

func TestParseModifier(t *testing.T) {
	assert.Equal(t, ModifierPublic, ParseModifier("public"))
	assert.Equal(t, ModifierProtected, ParseModifier("protected"))
	assert.Equal(t, ModifierPrivate, ParseModifier("private"))
	assert.Equal(t, ModifierPackage, ParseModifier("default"))
	assert.Equal(t, ModifierPackage, ParseModifier(""))
	assert.Equal(t, "default", ModifierPackage.String())
}
