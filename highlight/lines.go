package highlight

import (
	"sort"
	"unicode/utf8"
)

// LineIndex maps byte offsets in a text to lines and columns.
type LineIndex struct {
	text   []byte
	starts []int
}

func NewLineIndex(text []byte) *LineIndex {
	starts := []int{0}
	for i, b := range text {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

// Line returns the 1-based line containing offset.
func (x *LineIndex) Line(offset int) int {
	return sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset })
}

// LineStart returns the offset of the first byte of a 1-based line.
func (x *LineIndex) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(x.starts) {
		return len(x.text)
	}
	return x.starts[line-1]
}

// Column returns the 1-based byte column of offset.
func (x *LineIndex) Column(offset int) int {
	return offset - x.LineStart(x.Line(offset)) + 1
}

// UTF16 returns the 0-based line and UTF-16 code unit column of offset,
// the position encoding the language server protocol uses by default.
func (x *LineIndex) UTF16(offset int) (line, character int) {
	if offset > len(x.text) {
		offset = len(x.text)
	}
	l := x.Line(offset)
	for i := x.LineStart(l); i < offset; {
		r, size := utf8.DecodeRune(x.text[i:])
		if r >= 0x10000 {
			character += 2
		} else {
			character++
		}
		i += size
	}
	return l - 1, character
}

// Lines returns the number of lines in the text.
func (x *LineIndex) Lines() int {
	return len(x.starts)
}
