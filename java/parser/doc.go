// Package parser provides an error-tolerant lexer and declaration-level
// parser for Java source code.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (CST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │ All tokens  │     │ ParseErrors │
//	                    │ incl. trivia│     │ + ErrorNode │
//	                    └─────────────┘     └─────────────┘
//
// The lexer keeps whitespace and comments as tokens, so the token stream
// covers every byte of the input. The parser only sees the significant
// tokens (Result.Code); every Node records the inclusive index range of
// the significant tokens it covers in First and Last.
//
// # Tree Shape
//
// The tree models declarations precisely and statements loosely:
//
//	CompilationUnit
//	├── PackageDecl
//	├── ImportDecl
//	└── ClassDecl
//	    ├── Modifiers
//	    ├── Identifier
//	    ├── ExtendsClause
//	    └── ClassBody
//	        ├── FieldDecl
//	        │   ├── Modifiers
//	        │   ├── Type
//	        │   └── VarDeclarator
//	        └── MethodDecl
//	            ├── Modifiers
//	            ├── Type
//	            ├── Identifier
//	            ├── Parameters
//	            └── Block
//	                ├── LocalVarDecl
//	                └── Statement
//
// Expressions are consumed as balanced token runs (KindExpr) without
// further structure. Local and anonymous classes inside blocks are parsed
// as declarations.
//
// # Error Recovery
//
// Parse never panics and never fails. Errors are collected in
// Result.Errors with byte offsets:
//
//   - A missing token is reported without consuming input.
//   - A token no rule accepts is reported and consumed, alone, as an
//     Error node.
//   - A block, class body or parameter list that reaches end of input is
//     reported at its opening token.
//
// Every loop consumes at least one token per iteration, so parsing is
// linear in the number of tokens.
//
// # Example Usage
//
//	res := parser.Parse([]byte("class A { int x; }"))
//	for _, err := range res.Errors {
//	    fmt.Println(err)
//	}
//	fmt.Print(res.Tree)
package parser
