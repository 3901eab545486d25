package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/javahl/highlight"
)

// Document is a highlighted buffer.
type Document struct {
	Path   string
	Text   []byte
	Result highlight.Result
}

type Encoder interface {
	encoding.TextMarshaler
	Encode(doc Document) error
}

// Get returns the encoder registered under name, or nil.
func Get(name string, w io.Writer, theme string) Encoder {
	switch name {
	case "json":
		return NewJSONEncoder(w)
	case "lines":
		return NewLineEncoder(w)
	case "ansi":
		return NewANSIEncoder(w, theme)
	}
	return nil
}

// Names lists the encoder names Get accepts.
var Names = []string{"ansi", "json", "lines"}
