package highlight

import (
	"sort"
	"strings"
)

// Style is a display class attached to a range of the buffer. The values
// double as the CSS class names editors theme on.
type Style string

const (
	StyleAccessModifier    Style = "access-modifier"
	StyleKeyword           Style = "keyword"
	StyleDatatype          Style = "datatype"
	StyleStrings           Style = "strings"
	StyleLiteral           Style = "literal"
	StyleOperator          Style = "operator"
	StyleBracket           Style = "bracket"
	StyleComment           Style = "comment"
	StyleIdentifier        Style = "identifier"
	StyleDefault           Style = "default"
	StyleClassName         Style = "class-name"
	StyleInterfaceName     Style = "interface-name"
	StyleEnumName          Style = "enum-name"
	StyleMethodName        Style = "method-name"
	StyleMethodCall        Style = "method-call"
	StyleVariable          Style = "variable"
	StyleNoAccess          Style = "no-access"
	StyleUnknownIdentifier Style = "unknown-identifier"
	StyleError             Style = "error"
)

// Styles lists every style in a fixed order. Index positions are stable
// and used as the semantic token legend by the language server.
var Styles = []Style{
	StyleAccessModifier,
	StyleKeyword,
	StyleDatatype,
	StyleStrings,
	StyleLiteral,
	StyleOperator,
	StyleBracket,
	StyleComment,
	StyleIdentifier,
	StyleDefault,
	StyleClassName,
	StyleInterfaceName,
	StyleEnumName,
	StyleMethodName,
	StyleMethodCall,
	StyleVariable,
	StyleNoAccess,
	StyleUnknownIdentifier,
	StyleError,
}

// Index returns the position of s in Styles, or -1.
func (s Style) Index() int {
	for i, style := range Styles {
		if style == s {
			return i
		}
	}
	return -1
}

// Has reports whether styles contains s.
func Has(styles []Style, s Style) bool {
	for _, style := range styles {
		if style == s {
			return true
		}
	}
	return false
}

// sameStyles compares two style sets ignoring order.
func sameStyles(a, b []Style) bool {
	if len(a) != len(b) {
		return false
	}
	return key(a) == key(b)
}

func key(styles []Style) string {
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = string(s)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}
