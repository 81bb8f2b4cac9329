package mock

import "github.com/philschmid/gemdocs"

var _ gemdocs.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of gemdocs.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(body []byte, contentType string) (string, error)
}

func (e *TextExtractor) ExtractText(body []byte, contentType string) (string, error) {
	return e.ExtractTextFn(body, contentType)
}
