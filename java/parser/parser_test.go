package parser

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
)

func TestParseCompilationUnit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"empty class", "class Foo {}"},
		{"class with package", "package com.example;\nclass Foo {}"},
		{"imports", "import java.util.List;\nimport static java.lang.Math.*;\nimport java.io.*;\nclass Foo {}"},
		{"class with field", "class Foo { int x; }"},
		{"multiple declarators", "class Foo { int x, y = 2, z[]; }"},
		{"class with method", "class Foo { void bar() {} }"},
		{"class with constructor", "class Foo { Foo() { this(1); } Foo(int x) { super(); } }"},
		{"extends and implements", "public class Foo extends Bar<String> implements Baz, Qux<Integer> {}"},
		{"bounded generics", "class Foo<T extends Comparable<T>> {}"},
		{"nested generic field", "class Foo { Map<String, List<Integer>> m = new HashMap<>(); }"},
		{"explicit type arguments", "class Foo { Map<String, Integer> m = new HashMap<String, Integer>(), n; }"},
		{"interface", "interface Foo { void f(); default void g() {} static int h() { return 1; } }"},
		{"enum", "enum Color { RED, GREEN, BLUE }"},
		{"enum with body", "enum Op { PLUS(1) { int apply() { return 1; } }, MINUS(2); private final int c; Op(int c) { this.c = c; } int apply() { return 0; } }"},
		{"record", "record Point(int x, int y) {}"},
		{"compact constructor", "record Range(int lo, int hi) { Range { if (lo > hi) throw new IllegalArgumentException(); } }"},
		{"annotation type", "@interface Info { int value() default 1; String[] tags() default {}; }"},
		{"annotated declarations", "@Deprecated @SuppressWarnings({\"a\", \"b\"}) public class Foo { @Override public String toString() { return \"\"; } }"},
		{"sealed hierarchy", "sealed interface S permits A, B {}\nfinal class A implements S {}\nnon-sealed class B implements S {}"},
		{"generic method", "class Foo { public <T> T id(T t) { return t; } <T> Foo(T t) {} }"},
		{"varargs and throws", "class Foo { void f(String... args) throws java.io.IOException, Exception {} }"},
		{"arrays", "class Foo { int[] a = {1, 2}; String[][] grid = new String[3][]; int b[] = new int[] {1}; }"},
		{"initializers", "class Foo { static int x; static { x = 1; } { x = 2; } }"},
		{"nested types", "class Outer { static class Inner {} private interface I {} enum E { A } record R() {} }"},
		{"main", "public class Test { public static void main(String[] args) { System.out.println(\"Hi\"); } }"},
		{"statements", `class Foo {
	int f(int n) {
		int sum = 0;
		for (int i = 0; i < n; i++) { sum += i; }
		for (String s : names) System.out.println(s);
		if (sum > 10) { return 1; } else if (sum < 0) { return -1; } else { sum--; }
		while (n > 0) n--;
		do { n++; } while (n < 10);
		outer: for (;;) { break outer; }
		switch (n) { case 1: f(2); break; default: break; }
		switch (n) { case 1 -> System.out.println(1); default -> {} }
		int k = switch (n) { case 1 -> 2; default -> { yield 3; } };
		try (var in = open()) { read(in); } catch (IOException | RuntimeException e) { log(e); } finally { close(); }
		synchronized (this) { this.x = 1; }
		assert n > 0 : "positive";
		boolean b = sum < n && n > 2;
		return sum;
	}
}`},
		{"lambdas and anonymous classes", `class Foo {
	void f() {
		Runnable r = () -> { System.out.println("x"); };
		list.forEach(x -> { use(x); });
		Object o = new Object() { public String toString() { return "o"; } };
		Function<String, Integer> p = Integer::parseInt;
		var xs = new ArrayList<String>();
		final List<String> ys = List.of("a", "b");
		@SuppressWarnings("unchecked") List<Object> zs = (List<Object>) raw;
	}
}`},
		{"local types", "class Foo { void f() { class L { int y; } record P(int x) {} interface Q {} enum R { A } } }"},
		{"text block", "class Foo { String s = \"\"\"\n  hello\n  \"\"\"; }"},
		{"stray semicolons", ";class Foo {;;};"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseString(tt.input)
			if res.Tree == nil || res.Tree.Kind != KindCompilationUnit {
				t.Fatalf("Tree = %v, want CompilationUnit", res.Tree)
			}
			for _, err := range res.Errors {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseTreeShape(t *testing.T) {
	input := "package p.q;\n" +
		"import java.util.List;\n" +
		"public class A extends B<C> implements I, J {\n" +
		"  private int x, y = 2;\n" +
		"  public static void main(String[] args) {}\n" +
		"}\n"
	res := ParseString(input)
	if len(res.Errors) > 0 {
		t.Fatalf("errors: %v", res.Errors)
	}

	pkg := res.Tree.FirstChildOfKind(KindPackageDecl)
	if pkg == nil {
		t.Fatal("missing PackageDecl")
	}
	if got := res.Text(pkg.FirstChildOfKind(KindQualifiedName)); got != "p.q" {
		t.Errorf("package = %q, want %q", got, "p.q")
	}

	class := res.Tree.FirstChildOfKind(KindClassDecl)
	if class == nil {
		t.Fatal("missing ClassDecl")
	}
	if got := class.FirstChildOfKind(KindIdentifier).TokenLiteral(); got != "A" {
		t.Errorf("class name = %q, want %q", got, "A")
	}
	if got := res.Text(class.FirstChildOfKind(KindModifiers)); got != "public" {
		t.Errorf("modifiers = %q, want %q", got, "public")
	}
	ext := class.FirstChildOfKind(KindExtendsClause)
	if ext == nil {
		t.Fatal("missing ExtendsClause")
	}
	if got := res.Text(ext.FirstChildOfKind(KindType)); got != "B<C>" {
		t.Errorf("superclass = %q, want %q", got, "B<C>")
	}
	if impl := class.FirstChildOfKind(KindImplementsClause); impl == nil || len(impl.ChildrenOfKind(KindType)) != 2 {
		t.Errorf("ImplementsClause = %v, want two types", impl)
	}

	body := class.FirstChildOfKind(KindClassBody)
	field := body.FirstChildOfKind(KindFieldDecl)
	if field == nil {
		t.Fatal("missing FieldDecl")
	}
	if got := len(field.ChildrenOfKind(KindVarDeclarator)); got != 2 {
		t.Errorf("declarators = %d, want 2", got)
	}

	method := body.FirstChildOfKind(KindMethodDecl)
	if method == nil {
		t.Fatal("missing MethodDecl")
	}
	if got := method.FirstChildOfKind(KindIdentifier).TokenLiteral(); got != "main" {
		t.Errorf("method name = %q, want %q", got, "main")
	}
	params := method.FirstChildOfKind(KindParameters).ChildrenOfKind(KindParameter)
	if len(params) != 1 {
		t.Fatalf("params = %d, want 1", len(params))
	}
	if got := res.Text(params[0].FirstChildOfKind(KindType)); got != "String[]" {
		t.Errorf("param type = %q, want %q", got, "String[]")
	}
	if got := class.Span.Start.Line; got != 3 {
		t.Errorf("class line = %d, want 3", got)
	}
}

func TestParseVarargsType(t *testing.T) {
	res := ParseString("class A { static void main(String... args) {} }")
	var param *Node
	res.Tree.Walk(func(n *Node) bool {
		if n.Kind == KindParameter {
			param = n
		}
		return true
	})
	if param == nil {
		t.Fatal("missing Parameter")
	}
	if got := res.Text(param.FirstChildOfKind(KindType)); got != "String..." {
		t.Errorf("param type = %q, want %q", got, "String...")
	}
}

func TestParseLocalVariables(t *testing.T) {
	res := ParseString("class A { void f() { int a = 1, b; for (int i = 0; i < 3; i++) {} foo(a); a = b; } }")
	if len(res.Errors) > 0 {
		t.Fatalf("errors: %v", res.Errors)
	}

	var names []string
	res.Tree.Walk(func(n *Node) bool {
		if n.Kind == KindVarDeclarator {
			names = append(names, n.FirstChildOfKind(KindIdentifier).TokenLiteral())
		}
		return true
	})
	if got := strings.Join(names, ","); got != "a,b,i" {
		t.Errorf("declarators = %q, want %q", got, "a,b,i")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		at      string
	}{
		{"missing semicolon", "class A { int x }", `expected ";", got "}"`, "}"},
		{"stray paren in body", "class A { ) }", `expected member declaration, got ")"`, ")"},
		{"stray paren in block", "class A { void f() { ) } }", `unexpected ")"`, ")"},
		{"top level junk", "int x;", `expected class, interface, enum or record declaration, got "int"`, "int"},
		{"missing class name", "class { }", `expected type name, got "{"`, "{"},
		{"missing body", "class A extends B", `expected '{' to open ClassDecl body, got end of input`, "B"},
		{"unclosed parameter list", "class A { void f(int x { } }", `expected ',' or ')', got "{"`, "{"},
		{"stray character", "class A { int # x; }", `unexpected character "#"`, "#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseString(tt.input)
			if len(res.Errors) == 0 {
				t.Fatal("expected at least one error")
			}
			var found *ParseError
			for i := range res.Errors {
				if res.Errors[i].Message == tt.message {
					found = &res.Errors[i]
				}
			}
			if found == nil {
				t.Fatalf("no error %q in %v", tt.message, res.Errors)
			}
			if want := strings.LastIndex(tt.input, tt.at); found.Start != want {
				t.Errorf("Start = %d, want %d", found.Start, want)
			}
		})
	}
}

func TestParseUnclosedBraces(t *testing.T) {
	t.Run("class body", func(t *testing.T) {
		input := "public class A {\n  int x;\n"
		res := ParseString(input)
		if len(res.Errors) != 1 {
			t.Fatalf("errors = %v, want one", res.Errors)
		}
		if want := strings.Index(input, "{"); res.Errors[0].Start != want {
			t.Errorf("Start = %d, want %d", res.Errors[0].Start, want)
		}
	})

	t.Run("nested blocks", func(t *testing.T) {
		input := "class A {\n  void f() {\n    int x = 1;\n"
		res := ParseString(input)
		if len(res.Errors) != 2 {
			t.Fatalf("errors = %v, want two", res.Errors)
		}
		if want := strings.Index(input, "{"); res.Errors[0].Start != want {
			t.Errorf("Errors[0].Start = %d, want %d", res.Errors[0].Start, want)
		}
		if want := strings.LastIndex(input, "{"); res.Errors[1].Start != want {
			t.Errorf("Errors[1].Start = %d, want %d", res.Errors[1].Start, want)
		}
	})

	t.Run("inner brace closed by outer", func(t *testing.T) {
		input := "class A {\n  void f() {\n    if (x) {\n  }\n}\n"
		res := ParseString(input)
		if len(res.Errors) == 0 {
			t.Fatal("expected an error")
		}
		if want := strings.Index(input, "{"); res.Errors[0].Start != want {
			t.Errorf("Start = %d, want %d", res.Errors[0].Start, want)
		}
	})
}

func TestParseErrorsAreAttributable(t *testing.T) {
	inputs := []string{"class", "class A", "public", "package", "import a.b", "class A { void f("}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			res := ParseString(input)
			if len(res.Errors) == 0 {
				t.Fatal("expected at least one error")
			}
			for _, err := range res.Errors {
				if !err.Attributable() {
					t.Errorf("error %v has no location", err)
				}
				if err.Start > len(input) || err.End > len(input) {
					t.Errorf("error %v outside input", err)
				}
			}
		})
	}
}

func TestParseMaxErrors(t *testing.T) {
	res := ParseString(") ) ) ) ) )", WithMaxErrors(2))
	if len(res.Errors) != 2 {
		t.Errorf("errors = %d, want 2", len(res.Errors))
	}
}

func TestParseTokensCoverInput(t *testing.T) {
	input := "/* header */\npackage a;\n\nclass B { // trailing\n\tString s = \"x\"; }\n"
	res := ParseString(input)

	var b strings.Builder
	for _, tok := range res.Tokens {
		if tok.Kind == TokenEOF {
			t.Fatal("Tokens must not include EOF")
		}
		b.WriteString(tok.Literal)
	}
	if b.String() != input {
		t.Errorf("tokens reassemble to %q", b.String())
	}
	if last := res.Code[len(res.Code)-1]; last.Kind != TokenEOF {
		t.Errorf("last code token = %v, want EOF", last.Kind)
	}
	for _, tok := range res.Code {
		if tok.Kind.IsTrivia() {
			t.Errorf("code contains trivia %v", tok.Kind)
		}
	}
}

// TestParseTerminates feeds malformed token soup to the parser. A hang
// here shows up as a test timeout.
func TestParseTerminates(t *testing.T) {
	pieces := []string{
		"class", "interface", "enum", "record", "@", "interface", "A", "x", "int", "void",
		"(", ")", "{", "}", "[", "]", "<", ">", ">>", ",", ";", ".", "...", "=", "->", ":",
		"public", "static", "default", "case", "for", "if", "new", "\"s\"", "1", "extends",
		"permits", "sealed", "var", "yield", "?", "&", "#",
	}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		n := rng.Intn(60)
		parts := make([]string, n)
		for j := range parts {
			parts[j] = pieces[rng.Intn(len(pieces))]
		}
		input := strings.Join(parts, " ")
		res := ParseString(input)
		if res.Tree == nil {
			t.Fatalf("nil tree for %q", input)
		}
		if res.Tree.Span.End.Offset > len(input) {
			t.Fatalf("tree span %v exceeds input %q", res.Tree.Span, input)
		}
	}
}

func TestResultMarshalJSON(t *testing.T) {
	res := ParseString("class A { int x }")
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded struct {
		Tree struct {
			Kind string `json:"kind"`
		} `json:"tree"`
		Errors []struct {
			Start   int    `json:"start"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Tree.Kind != "CompilationUnit" {
		t.Errorf("tree kind = %q", decoded.Tree.Kind)
	}
	if len(decoded.Errors) != 1 || decoded.Errors[0].Start != 16 {
		t.Errorf("errors = %+v, want one at offset 16", decoded.Errors)
	}
}
