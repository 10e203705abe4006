// internal/app/system/pdfextract/pdfextract.go

// Package pdfextract wraps PDF text extraction behind a small interface.
// Callers store whatever the extractor returns verbatim; nothing in this
// application interprets the extracted text.
package pdfextract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Result carries the extracted text and page metadata for one document.
type Result struct {
	NumPages int
	Text     string
}

// Extractor turns a PDF payload into text and page metadata.
type Extractor interface {
	Extract(data []byte) (Result, error)
}

// New returns the default extractor.
func New() Extractor { return pdfExtractor{} }

type pdfExtractor struct{}

func (pdfExtractor) Extract(data []byte) (Result, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("read pdf: %w", err)
	}
	res := Result{NumPages: r.NumPage()}

	plain, err := r.GetPlainText()
	if err != nil {
		// Some documents carry no extractable text layer; page count
		// alone is still useful to the caller.
		return res, nil
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return res, fmt.Errorf("read pdf text: %w", err)
	}
	res.Text = string(text)
	return res, nil
}
