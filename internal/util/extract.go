package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

var ErrEmptyDocument = errors.New("no text extracted from PDF")

// ExtractPDFText reads the embedded text layer of every page. Scanned PDFs
// without a text layer yield ErrEmptyDocument.
func ExtractPDFText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		fullText.WriteString(pageText)
		fullText.WriteString("\n\n")
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" {
		return "", ErrEmptyDocument
	}
	return result, nil
}
