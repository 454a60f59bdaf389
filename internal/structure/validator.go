// Package structure checks that a sentence's XML word-structure annotates its
// content without altering it.
//
// A structure is consistent with a sentence when the text carried by the
// markup, read in document order with every tag removed, is exactly the
// sentence content:
//
//	<s><subject>This</subject> <verb>is</verb> a test.</s>  ->  "This is a test."
//
// Tags never contribute whitespace of their own, so "<a>This</a><b>is</b>"
// flattens to "Thisis".
package structure

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed is returned by Flatten when the markup cannot be tokenized.
var ErrMalformed = errors.New("malformed structure markup")

// Flatten returns the concatenated character data of markup in document order.
// Entities are decoded and CDATA sections are kept as literal text; comments,
// processing instructions and directives are dropped.
func Flatten(markup string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(markup))
	decoder.Strict = true

	var text strings.Builder
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return text.String(), nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		if data, ok := token.(xml.CharData); ok {
			text.Write(data)
		}
	}
}

// Validate reports whether markup flattens to exactly content.
// Unparsable markup is never valid.
func Validate(markup, content string) bool {
	flattened, err := Flatten(markup)
	if err != nil {
		return false
	}
	return flattened == content
}
