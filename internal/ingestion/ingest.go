// Package ingestion turns uploaded documents and job posting URLs into
// cleaned text ready for skill extraction.
package ingestion

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-matcher/internal/logger"
)

// IngestFromFile extracts and cleans the text of a document on disk.
func IngestFromFile(path string) (string, *Metadata, error) {
	raw, err := ExtractText(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, &ExtractError{Name: path, Cause: errors.New("file not found")}
		}
		return "", nil, err
	}

	format, _ := DetectFormat(path)
	text := CleanText(raw)
	meta := NewMetadata(text, filepath.Base(path))
	meta.Format = format
	return text, meta, nil
}

// IngestUpload extracts the text of an uploaded résumé. The format comes from
// the file extension, or from the content when the extension is unknown. It
// never fails: when
// nothing usable can be extracted the text is a placeholder naming the file
// and Metadata.Placeholder is set.
func IngestUpload(filename string, data []byte) (string, *Metadata) {
	format, err := DetectFormat(filename)
	if err != nil {
		if sniffed, ok := SniffFormat(data); ok {
			format, err = sniffed, nil
		} else {
			err = &ExtractError{Name: filename, Cause: err}
		}
	}

	var raw string
	if err == nil {
		raw, err = extractBytes(format, data)
		if err != nil {
			err = &ExtractError{Name: filename, Format: format, Cause: err}
		}
	}
	if err != nil || raw == "" {
		log := logger.Named("ingestion")
		if err != nil {
			log.Warn().Err(err).Str("filename", filename).Msg("text extraction failed, storing placeholder")
		} else {
			log.Warn().Str("filename", filename).Msg("no text extracted, storing placeholder")
		}
		text := PlaceholderText(filename)
		meta := NewMetadata(text, filename)
		meta.Format = format
		meta.Placeholder = true
		return text, meta
	}

	text := CleanText(raw)
	meta := NewMetadata(text, filename)
	meta.Format = format
	return text, meta
}
