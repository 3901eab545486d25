package format

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/dhamidi/javahl/highlight"
	"github.com/dhamidi/javahl/java/parser"
	"github.com/dhamidi/javahl/java/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = "public class Test {\n  int n = 42; // answer\n}\n"

func document(t *testing.T, path, text string) Document {
	t.Helper()
	s := highlight.NewSession(nil)
	s.UpdateContextFromCaret([]byte(text), len(text))
	return Document{Path: path, Text: []byte(text), Result: s.Recompute([]byte(text))}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(document(t, "Test.java", source)))

	var got struct {
		Path   string `json:"path"`
		Length int    `json:"length"`
		Type   string `json:"enclosingType"`
		Spans  []struct {
			Styles []string `json:"styles"`
			Length int      `json:"length"`
		} `json:"spans"`
		Ranges []struct {
			Start struct {
				Offset, Line, Column int
			} `json:"start"`
			Styles []string `json:"styles"`
			Text   string   `json:"text"`
		} `json:"ranges"`
		Errors []json.RawMessage `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "Test.java", got.Path)
	assert.Equal(t, len(source), got.Length)
	assert.Equal(t, "Test", got.Type)
	assert.Empty(t, got.Errors)

	total := 0
	for _, span := range got.Spans {
		assert.NotNil(t, span.Styles)
		total += span.Length
	}
	assert.Equal(t, len(source), total)

	require.NotEmpty(t, got.Ranges)
	assert.Equal(t, "public", got.Ranges[0].Text)
	assert.Equal(t, []string{"access-modifier"}, got.Ranges[0].Styles)
	assert.Equal(t, 1, got.Ranges[0].Start.Line)

	var answer bool
	for _, r := range got.Ranges {
		if r.Text == "42" {
			answer = true
			assert.Equal(t, 2, r.Start.Line)
			assert.Equal(t, 11, r.Start.Column)
			assert.Equal(t, []string{"literal"}, r.Styles)
		}
	}
	assert.True(t, answer, "literal 42 not found")
}

func TestJSONEncoderErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(document(t, "", "class A {\n")))
	assert.Contains(t, buf.String(), `"message": "unclosed \"{\", reached end of input"`)
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(document(t, "Test.java", source)))
	out := buf.String()

	assert.Contains(t, out, "1:1\t6\taccess-modifier\t\"public\"\n")
	assert.Contains(t, out, "1:14\t4\tclass-name\t\"Test\"\n")
	assert.Contains(t, out, "2:15\t9\tcomment\t\"// answer\"\n")
	assert.NotContains(t, out, "error")
}

func TestLineEncoderErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(document(t, "", "class A {\n  int x;\n")))
	out := buf.String()

	assert.Contains(t, out, "1:1\t5\taccess-modifier,error\t\"class\"\n")
	assert.Contains(t, out, "<stdin>:1:9: error: unclosed \"{\", reached end of input\n")
}

var escapes = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestANSIEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewANSIEncoder(&buf, "").Encode(document(t, "Test.java", source)))

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Equal(t, source, escapes.ReplaceAllString(buf.String(), ""))
}

func TestTokens(t *testing.T) {
	doc := document(t, "", "class A {\n")
	tokens := Tokens(doc)

	var text strings.Builder
	for _, tok := range tokens {
		text.WriteString(tok.Value)
	}
	assert.Equal(t, "class A {\n", text.String())
	assert.Equal(t, chroma.Error, tokens[0].Type)
}

func TestTokenType(t *testing.T) {
	assert.Equal(t, chroma.TextWhitespace, TokenType(nil))
	assert.Equal(t, chroma.Keyword, TokenType([]highlight.Style{highlight.StyleKeyword}))
	assert.Equal(t, chroma.Error, TokenType([]highlight.Style{highlight.StyleKeyword, highlight.StyleError}))
	for _, s := range highlight.Styles {
		_, ok := tokenTypes[s]
		assert.True(t, ok, "no token type for %s", s)
	}
}

func TestGet(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range Names {
		assert.NotNil(t, Get(name, &buf, ""), name)
	}
	assert.Nil(t, Get("xml", &buf, ""))
}

func TestASTJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode(parser.ParseString("class A { int x }")))

	var got struct {
		Tree   map[string]any   `json:"tree"`
		Errors []map[string]any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "CompilationUnit", got.Tree["kind"])
	require.Len(t, got.Errors, 1)
	assert.Equal(t, float64(16), got.Errors[0]["start"])
}

func TestTableEncoders(t *testing.T) {
	src := "package p;\npublic class Account extends Base {\n  private int balance;\n  public void deposit(int amount) {}\n}\n"
	table := symbols.Build(symbols.ParseUnit("Account.java", []byte(src)))

	var lines bytes.Buffer
	require.NoError(t, NewTableLineEncoder(&lines).Encode(table))
	assert.Equal(t, "basic\tp.Account\tpublic\textends Base\tAccount.java\n"+
		"\tfield\tbalance\tprivate\n"+
		"\tmethod-declaration\tdeposit\tpublic\t(int amount)\n", lines.String())

	var js bytes.Buffer
	require.NoError(t, NewTableJSONEncoder(&js).Encode(table))
	var got []struct {
		Name    string `json:"name"`
		Package string `json:"package"`
		Symbols []struct {
			Name   string `json:"name"`
			Kind   string `json:"kind"`
			Params []struct{ Name, Type string }
		} `json:"symbols"`
	}
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Account", got[0].Name)
	require.Len(t, got[0].Symbols, 2)
	assert.Equal(t, "deposit", got[0].Symbols[1].Name)
	assert.Equal(t, "amount", got[0].Symbols[1].Params[0].Name)
}
