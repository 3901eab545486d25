package highlight

import (
	"fmt"
	"sort"

	"github.com/dhamidi/javahl/java/parser"
)

// StyleSpan is a run of Length bytes sharing a style set. An empty set
// marks unstyled text.
type StyleSpan struct {
	Styles []Style `json:"styles"`
	Length int     `json:"length"`
}

// Assemble turns classified tokens into spans partitioning a buffer of
// length bytes. styles[i] belongs to tokens[i]. Ranges no token claims
// become unstyled spans, tokens overlapping an earlier token are clipped
// and empty ranges are dropped, so the span lengths always sum to length.
func Assemble(tokens []parser.Token, styles [][]Style, length int) []StyleSpan {
	order := make([]int, len(tokens))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return tokens[order[a]].Start() < tokens[order[b]].Start()
	})

	var spans []StyleSpan
	last := 0
	for _, i := range order {
		start, end := tokens[i].Start(), tokens[i].End()
		if start < last {
			start = last
		}
		if end > length {
			end = length
		}
		if end <= start {
			continue
		}
		if start > last {
			spans = append(spans, StyleSpan{Length: start - last})
		}
		var set []Style
		if i < len(styles) {
			set = styles[i]
		}
		spans = append(spans, StyleSpan{Styles: set, Length: end - start})
		last = end
	}
	if length > last {
		spans = append(spans, StyleSpan{Length: length - last})
	}
	return spans
}

// Validate checks that spans partition a buffer of length bytes.
func Validate(spans []StyleSpan, length int) error {
	total := 0
	for i, span := range spans {
		if span.Length <= 0 {
			return fmt.Errorf("span %d has length %d", i, span.Length)
		}
		total += span.Length
	}
	if total != length {
		return fmt.Errorf("spans cover %d bytes, buffer has %d", total, length)
	}
	return nil
}

// Compact merges neighbouring spans with the same style set.
func Compact(spans []StyleSpan) []StyleSpan {
	var result []StyleSpan
	for _, span := range spans {
		if n := len(result); n > 0 && sameStyles(result[n-1].Styles, span.Styles) {
			result[n-1].Length += span.Length
			continue
		}
		result = append(result, span)
	}
	return result
}

// Range is a styled span positioned in the buffer.
type Range struct {
	Start  int
	End    int
	Styles []Style
}

// Ranges positions spans, skipping unstyled ones.
func Ranges(spans []StyleSpan) []Range {
	var ranges []Range
	offset := 0
	for _, span := range spans {
		if len(span.Styles) > 0 {
			ranges = append(ranges, Range{Start: offset, End: offset + span.Length, Styles: span.Styles})
		}
		offset += span.Length
	}
	return ranges
}
