package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/javahl/highlight"
)

// LineEncoder writes one tab-separated line per styled range:
//
//	line:column	length	styles	text
//
// followed by one line per parse error.
type LineEncoder struct {
	w   io.Writer
	doc Document
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(doc Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	doc := e.doc
	index := highlight.NewLineIndex(doc.Text)

	for _, r := range highlight.Ranges(doc.Result.Spans) {
		fmt.Fprintf(&sb, "%d:%d\t%d\t%s\t%s\n",
			index.Line(r.Start),
			index.Column(r.Start),
			r.End-r.Start,
			stylesStr(r.Styles),
			strconv.Quote(textOf(doc.Text, r.Start, r.End)),
		)
	}

	for _, err := range doc.Result.Errors {
		if !err.Attributable() {
			fmt.Fprintf(&sb, "%s: error: %s\n", e.path(), err.Message)
			continue
		}
		fmt.Fprintf(&sb, "%s:%d:%d: error: %s\n", e.path(), index.Line(err.Start), index.Column(err.Start), err.Message)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) path() string {
	if e.doc.Path == "" {
		return "<stdin>"
	}
	return e.doc.Path
}

func stylesStr(styles []highlight.Style) string {
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = string(s)
	}
	return strings.Join(names, ",")
}
