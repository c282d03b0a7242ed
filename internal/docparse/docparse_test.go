package docparse

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractTextPlainText(t *testing.T) {
	text, err := ExtractText("resume.txt", "text/plain", []byte("  Jane Doe\nBackend engineer  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Jane Doe\nBackend engineer" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractTextRejectsBinary(t *testing.T) {
	_, err := ExtractText("resume.bin", "application/octet-stream", []byte{0x00, 0x01, 0x02, 0xff})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractTextRejectsEmpty(t *testing.T) {
	if _, err := ExtractText("resume.txt", "text/plain", nil); err == nil {
		t.Fatal("expected an error for an empty file")
	}
	if _, err := ExtractText("resume.txt", "text/plain", []byte("   \n  ")); err == nil {
		t.Fatal("expected an error for a whitespace-only file")
	}
}

func TestExtractTextCorruptPDF(t *testing.T) {
	// The PDF magic routes to the parser, which must reject the truncated body
	if _, err := ExtractText("resume.pdf", "application/pdf", []byte("%PDF-1.7 not a real document")); err == nil {
		t.Fatal("expected an error for a corrupt pdf")
	}
}

func TestIsPDFDetection(t *testing.T) {
	cases := []struct {
		name        string
		fileName    string
		contentType string
		data        []byte
		want        bool
	}{
		{"extension", "Resume.PDF", "application/octet-stream", []byte("x"), true},
		{"content type", "resume", "application/pdf", []byte("x"), true},
		{"magic bytes", "resume", "application/octet-stream", []byte("%PDF-1.4"), true},
		{"plain text", "resume.txt", "text/plain", []byte("hello"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isPDF(tc.fileName, tc.contentType, tc.data); got != tc.want {
				t.Fatalf("isPDF = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExtractTextLargePlainText(t *testing.T) {
	body := strings.Repeat("experience line\n", 500)
	text, err := ExtractText("resume.txt", "text/plain", []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(text, "experience line") {
		t.Fatalf("unexpected text prefix %q", text[:20])
	}
}
