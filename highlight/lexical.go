package highlight

import "github.com/dhamidi/javahl/java/parser"

// javaLang holds the java.lang types styled as class names without being
// declared anywhere in the project.
var javaLang = map[string]bool{
	"String":        true,
	"Object":        true,
	"System":        true,
	"StringBuilder": true,
	"Thread":        true,
	"Exception":     true,
	"Runtime":       true,
	"Integer":       true,
	"Double":        true,
	"Float":         true,
	"Character":     true,
	"Boolean":       true,
	"Math":          true,
	"Void":          true,
	"Short":         true,
	"Long":          true,
	"Byte":          true,
}

var lexicalStyles = map[parser.TokenKind]Style{}

func init() {
	families := []struct {
		style Style
		kinds []parser.TokenKind
	}{
		{StyleAccessModifier, []parser.TokenKind{
			parser.TokenPublic, parser.TokenPrivate, parser.TokenProtected, parser.TokenStatic,
			parser.TokenClass, parser.TokenExtends, parser.TokenFinal, parser.TokenSuper, parser.TokenThis,
			parser.TokenVolatile, parser.TokenPackage, parser.TokenTrue, parser.TokenFalse, parser.TokenNull,
			parser.TokenVoid, parser.TokenEnum, parser.TokenInterface, parser.TokenImport,
		}},
		{StyleKeyword, []parser.TokenKind{
			parser.TokenAbstract, parser.TokenAssert, parser.TokenBreak, parser.TokenCase, parser.TokenCatch,
			parser.TokenConst, parser.TokenContinue, parser.TokenDefault, parser.TokenDo, parser.TokenElse,
			parser.TokenFinally, parser.TokenFor, parser.TokenIf, parser.TokenGoto, parser.TokenImplements,
			parser.TokenInstanceof, parser.TokenNative, parser.TokenNew, parser.TokenReturn, parser.TokenStrictfp,
			parser.TokenSwitch, parser.TokenSynchronized, parser.TokenThrow, parser.TokenThrows,
			parser.TokenTransient, parser.TokenTry, parser.TokenWhile, parser.TokenYield, parser.TokenRecord,
			parser.TokenSealed, parser.TokenNonSealed, parser.TokenPermits,
		}},
		{StyleDatatype, []parser.TokenKind{
			parser.TokenBoolean, parser.TokenByte, parser.TokenChar, parser.TokenDouble, parser.TokenFloat,
			parser.TokenInt, parser.TokenLong, parser.TokenShort, parser.TokenVar,
		}},
		{StyleStrings, []parser.TokenKind{
			parser.TokenCharLiteral, parser.TokenStringLiteral, parser.TokenTextBlock,
		}},
		{StyleLiteral, []parser.TokenKind{
			parser.TokenIntLiteral, parser.TokenFloatLiteral,
		}},
		{StyleOperator, []parser.TokenKind{
			parser.TokenAssign, parser.TokenGT, parser.TokenLT, parser.TokenNot, parser.TokenBitNot,
			parser.TokenQuestion, parser.TokenColon, parser.TokenEQ, parser.TokenLE, parser.TokenGE,
			parser.TokenNE, parser.TokenAnd, parser.TokenOr, parser.TokenIncrement, parser.TokenDecrement,
			parser.TokenPlus, parser.TokenMinus, parser.TokenStar, parser.TokenSlash, parser.TokenBitAnd,
			parser.TokenBitOr, parser.TokenBitXor, parser.TokenPercent, parser.TokenShl, parser.TokenShr,
			parser.TokenUShr, parser.TokenPlusAssign, parser.TokenMinusAssign, parser.TokenStarAssign,
			parser.TokenSlashAssign, parser.TokenAndAssign, parser.TokenOrAssign, parser.TokenXorAssign,
			parser.TokenPercentAssign, parser.TokenShlAssign, parser.TokenShrAssign, parser.TokenUShrAssign,
			parser.TokenArrow, parser.TokenColonColon, parser.TokenAt, parser.TokenEllipsis,
		}},
		{StyleBracket, []parser.TokenKind{
			parser.TokenLParen, parser.TokenRParen, parser.TokenLBrace, parser.TokenRBrace,
			parser.TokenLBracket, parser.TokenRBracket,
		}},
		{StyleComment, []parser.TokenKind{
			parser.TokenComment, parser.TokenLineComment,
		}},
		{StyleIdentifier, []parser.TokenKind{
			parser.TokenIdent,
		}},
	}
	for _, family := range families {
		for _, kind := range family.kinds {
			lexicalStyles[kind] = family.style
		}
	}
}

// LexicalStyle is the style of tok judged by its token kind alone.
// Separators, whitespace and lexical errors are StyleDefault.
func LexicalStyle(tok parser.Token) Style {
	if tok.Kind == parser.TokenIdent && javaLang[tok.Literal] {
		return StyleClassName
	}
	if style, ok := lexicalStyles[tok.Kind]; ok {
		return style
	}
	return StyleDefault
}
