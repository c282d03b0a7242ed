package docparse

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for uploads that are neither PDF nor
// plain text
var ErrUnsupportedFormat = errors.New("unsupported resume format")

const pdfMagic = "%PDF-"

// ExtractText pulls the text content out of an uploaded resume. PDF
// documents are parsed; anything else is accepted as-is when it decodes
// as text.
func ExtractText(fileName, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty resume file")
	}

	if isPDF(fileName, contentType, data) {
		return extractPDFText(data)
	}

	if !isPlainText(data) {
		return "", ErrUnsupportedFormat
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("resume file contains no text")
	}
	return text, nil
}

func isPDF(fileName, contentType string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		return true
	}
	if strings.HasPrefix(contentType, "application/pdf") {
		return true
	}
	return bytes.HasPrefix(data, []byte(pdfMagic))
}

// isPlainText treats valid UTF-8 without NUL bytes as text
func isPlainText(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	return !bytes.ContainsRune(data, 0)
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	return text, nil
}
