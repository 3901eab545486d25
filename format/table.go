package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javahl/java/symbols"
)

// TableLineEncoder writes the types of a symbol table, each followed by
// the symbols it owns, one per line.
type TableLineEncoder struct {
	w io.Writer
}

func NewTableLineEncoder(w io.Writer) *TableLineEncoder {
	return &TableLineEncoder{w: w}
}

func (e *TableLineEncoder) Encode(table *symbols.Table) error {
	text, err := e.MarshalText(table)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TableLineEncoder) MarshalText(table *symbols.Table) ([]byte, error) {
	var sb strings.Builder
	for _, tc := range table.Types() {
		fmt.Fprintf(&sb, "%s\t%s\t%s", tc.Class, tc.QualifiedName(), tc.Modifier)
		if tc.SuperClass != "" {
			fmt.Fprintf(&sb, "\textends %s", tc.SuperClass)
		}
		if tc.File != "" {
			fmt.Fprintf(&sb, "\t%s", tc.File)
		}
		sb.WriteString("\n")
		for _, sym := range tc.Symbols {
			fmt.Fprintf(&sb, "\t%s\t%s\t%s", sym.Kind, sym.Name, sym.Modifier)
			if sym.Kind == symbols.KindMethodDeclaration {
				fmt.Fprintf(&sb, "\t(%s)", paramsStr(sym.Params))
			}
			sb.WriteString("\n")
		}
	}
	return []byte(sb.String()), nil
}

func paramsStr(params []symbols.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = strings.TrimSpace(p.Type + " " + p.Name)
	}
	return strings.Join(parts, ", ")
}

type TableJSONEncoder struct {
	w io.Writer
}

func NewTableJSONEncoder(w io.Writer) *TableJSONEncoder {
	return &TableJSONEncoder{w: w}
}

func (e *TableJSONEncoder) Encode(table *symbols.Table) error {
	text, err := e.MarshalText(table)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

type jsonType struct {
	Name       string       `json:"name"`
	Package    string       `json:"package,omitempty"`
	Class      string       `json:"class"`
	Modifier   string       `json:"modifier"`
	SuperClass string       `json:"superClass,omitempty"`
	Outer      string       `json:"outer,omitempty"`
	File       string       `json:"file,omitempty"`
	Symbols    []jsonSymbol `json:"symbols"`
}

type jsonSymbol struct {
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Modifier string          `json:"modifier"`
	Params   []symbols.Param `json:"params,omitempty"`
}

func (e *TableJSONEncoder) MarshalText(table *symbols.Table) ([]byte, error) {
	types := []jsonType{}
	for _, tc := range table.Types() {
		jt := jsonType{
			Name:       tc.Name,
			Package:    tc.Package,
			Class:      tc.Class.String(),
			Modifier:   tc.Modifier.String(),
			SuperClass: tc.SuperClass,
			File:       tc.File,
			Symbols:    []jsonSymbol{},
		}
		if tc.Outer != nil {
			jt.Outer = tc.Outer.QualifiedName()
		}
		for _, sym := range tc.Symbols {
			jt.Symbols = append(jt.Symbols, jsonSymbol{
				Name:     sym.Name,
				Kind:     sym.Kind.String(),
				Modifier: sym.Modifier.String(),
				Params:   sym.Params,
			})
		}
		types = append(types, jt)
	}
	return json.MarshalIndent(types, "", "  ")
}
