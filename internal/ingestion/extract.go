package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

// Format is a supported document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

var formatsByExt = map[string]Format{
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".doc":      FormatDOCX, // only succeeds for .doc files that are really OOXML
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatText,
	".markdown": FormatText,
}

// DetectFormat maps a file name to its Format by extension.
func DetectFormat(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if f, ok := formatsByExt[ext]; ok {
		return f, nil
	}
	if ext == "" {
		ext = "(none)"
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

// ExtractText reads a document from disk and returns its raw text.
func ExtractText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ExtractError{Name: path, Cause: err}
	}
	defer func() { _ = f.Close() }()
	return ExtractReader(path, f)
}

// ExtractReader returns the raw text of the document in r. name is used only
// to pick the format.
func ExtractReader(name string, r io.Reader) (string, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return "", &ExtractError{Name: name, Cause: err}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", &ExtractError{Name: name, Format: format, Cause: err}
	}

	text, err := extractBytes(format, data)
	if err != nil {
		return "", &ExtractError{Name: name, Format: format, Cause: err}
	}
	return text, nil
}

func extractBytes(format Format, data []byte) (string, error) {
	switch format {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	case FormatHTML:
		return fetch.ExtractMainText(string(data), fetch.DefaultTextSelectors())
	case FormatText:
		return string(bytes.ToValidUTF8(data, []byte("\uFFFD"))), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
