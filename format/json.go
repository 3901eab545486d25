package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javahl/highlight"
)

type JSONEncoder struct {
	w   io.Writer
	doc Document
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildDocument(), "", "  ")
}

type jsonDocument struct {
	Path    string      `json:"path,omitempty"`
	Length  int         `json:"length"`
	Package string      `json:"package,omitempty"`
	Type    string      `json:"enclosingType,omitempty"`
	Spans   []jsonSpan  `json:"spans"`
	Ranges  []jsonRange `json:"ranges"`
	Errors  []jsonError `json:"errors"`
}

type jsonSpan struct {
	Styles []highlight.Style `json:"styles"`
	Length int               `json:"length"`
}

type jsonRange struct {
	Start  jsonPosition      `json:"start"`
	End    jsonPosition      `json:"end"`
	Styles []highlight.Style `json:"styles"`
	Text   string            `json:"text"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonError struct {
	Start   *jsonPosition `json:"start,omitempty"`
	Message string        `json:"message"`
}

func (e *JSONEncoder) buildDocument() jsonDocument {
	doc := e.doc
	index := highlight.NewLineIndex(doc.Text)
	position := func(offset int) jsonPosition {
		return jsonPosition{Offset: offset, Line: index.Line(offset), Column: index.Column(offset)}
	}

	data := jsonDocument{
		Path:    doc.Path,
		Length:  doc.Result.Length,
		Package: doc.Result.Context.Package,
		Type:    doc.Result.Context.EnclosingType,
		Spans:   []jsonSpan{},
		Ranges:  []jsonRange{},
		Errors:  []jsonError{},
	}
	for _, span := range doc.Result.Spans {
		styles := span.Styles
		if styles == nil {
			styles = []highlight.Style{}
		}
		data.Spans = append(data.Spans, jsonSpan{Styles: styles, Length: span.Length})
	}
	for _, r := range highlight.Ranges(doc.Result.Spans) {
		data.Ranges = append(data.Ranges, jsonRange{
			Start:  position(r.Start),
			End:    position(r.End),
			Styles: r.Styles,
			Text:   textOf(doc.Text, r.Start, r.End),
		})
	}
	for _, err := range doc.Result.Errors {
		je := jsonError{Message: err.Message}
		if err.Attributable() {
			start := position(err.Start)
			je.Start = &start
		}
		data.Errors = append(data.Errors, je)
	}
	return data
}

func textOf(text []byte, start, end int) string {
	if start < 0 || end > len(text) || start > end {
		return ""
	}
	return string(text[start:end])
}
