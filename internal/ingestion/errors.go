package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for file extensions with no extractor
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrInvalidURL is returned when URL is malformed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// ExtractError reports a document whose text could not be extracted.
type ExtractError struct {
	Name   string
	Format Format
	Cause  error
}

func (e *ExtractError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("failed to extract text from %s: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s (%s): %v", e.Name, e.Format, e.Cause)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
