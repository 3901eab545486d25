package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javahl/java/parser"
)

// ASTJSONEncoder writes a parse result, tree and errors, as JSON.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(result *parser.Result) error {
	text, err := e.MarshalText(result)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(result *parser.Result) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
