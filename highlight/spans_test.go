package highlight

import (
	"testing"

	"github.com/dhamidi/javahl/java/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(start, end int) parser.Token {
	return parser.Token{
		Kind: parser.TokenIdent,
		Span: parser.Span{
			Start: parser.Position{Offset: start},
			End:   parser.Position{Offset: end},
		},
	}
}

func TestAssemble(t *testing.T) {
	kw := []Style{StyleKeyword}
	id := []Style{StyleIdentifier}

	tests := []struct {
		name   string
		tokens []parser.Token
		styles [][]Style
		length int
		want   []StyleSpan
	}{
		{
			name:   "empty buffer",
			length: 0,
			want:   nil,
		},
		{
			name:   "no tokens",
			length: 4,
			want:   []StyleSpan{{Length: 4}},
		},
		{
			name:   "contiguous",
			tokens: []parser.Token{tok(0, 2), tok(2, 5)},
			styles: [][]Style{kw, id},
			length: 5,
			want:   []StyleSpan{{Styles: kw, Length: 2}, {Styles: id, Length: 3}},
		},
		{
			name:   "gaps",
			tokens: []parser.Token{tok(1, 2), tok(4, 5)},
			styles: [][]Style{kw, id},
			length: 7,
			want: []StyleSpan{
				{Length: 1}, {Styles: kw, Length: 1},
				{Length: 2}, {Styles: id, Length: 1},
				{Length: 2},
			},
		},
		{
			name:   "zero length token dropped",
			tokens: []parser.Token{tok(0, 2), tok(2, 2), tok(2, 3)},
			styles: [][]Style{kw, id, id},
			length: 3,
			want:   []StyleSpan{{Styles: kw, Length: 2}, {Styles: id, Length: 1}},
		},
		{
			name:   "overlap clipped",
			tokens: []parser.Token{tok(0, 4), tok(2, 6)},
			styles: [][]Style{kw, id},
			length: 6,
			want:   []StyleSpan{{Styles: kw, Length: 4}, {Styles: id, Length: 2}},
		},
		{
			name:   "contained token dropped",
			tokens: []parser.Token{tok(0, 6), tok(2, 4)},
			styles: [][]Style{kw, id},
			length: 6,
			want:   []StyleSpan{{Styles: kw, Length: 6}},
		},
		{
			name:   "past end clipped",
			tokens: []parser.Token{tok(0, 2), tok(2, 10)},
			styles: [][]Style{kw, id},
			length: 4,
			want:   []StyleSpan{{Styles: kw, Length: 2}, {Styles: id, Length: 2}},
		},
		{
			name:   "out of order",
			tokens: []parser.Token{tok(3, 4), tok(0, 1)},
			styles: [][]Style{id, kw},
			length: 4,
			want:   []StyleSpan{{Styles: kw, Length: 1}, {Length: 2}, {Styles: id, Length: 1}},
		},
		{
			name:   "missing styles",
			tokens: []parser.Token{tok(0, 1), tok(1, 2)},
			styles: [][]Style{kw},
			length: 2,
			want:   []StyleSpan{{Styles: kw, Length: 1}, {Length: 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assemble(tt.tokens, tt.styles, tt.length)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, Validate(got, tt.length))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil, 0))
	assert.NoError(t, Validate([]StyleSpan{{Length: 2}, {Length: 3}}, 5))
	assert.EqualError(t, Validate([]StyleSpan{{Length: 2}}, 5), "spans cover 2 bytes, buffer has 5")
	assert.EqualError(t, Validate([]StyleSpan{{Length: 2}, {Length: 0}}, 2), "span 1 has length 0")
	assert.Error(t, Validate([]StyleSpan{{Length: 4}, {Length: -1}}, 3))
}

func TestCompact(t *testing.T) {
	spans := []StyleSpan{
		{Length: 1},
		{Length: 2},
		{Styles: []Style{StyleKeyword, StyleError}, Length: 3},
		{Styles: []Style{StyleError, StyleKeyword}, Length: 1},
		{Styles: []Style{StyleKeyword}, Length: 1},
	}
	got := Compact(spans)
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].Length)
	assert.Equal(t, 4, got[1].Length)
	assert.Equal(t, 1, got[2].Length)
	assert.NoError(t, Validate(got, 8))
}

func TestRanges(t *testing.T) {
	spans := []StyleSpan{
		{Length: 2},
		{Styles: []Style{StyleKeyword}, Length: 3},
		{Length: 1},
		{Styles: []Style{StyleStrings}, Length: 4},
	}
	assert.Equal(t, []Range{
		{Start: 2, End: 5, Styles: []Style{StyleKeyword}},
		{Start: 6, End: 10, Styles: []Style{StyleStrings}},
	}, Ranges(spans))
}
