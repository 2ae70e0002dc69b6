package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes an ingested document or job posting
type Metadata struct {
	Source      string `json:"source"` // file name or URL
	Format      Format `json:"format,omitempty"`
	Timestamp   string `json:"timestamp"` // RFC3339 format
	Hash        string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Chars       int    `json:"chars"`
	Title       string `json:"title,omitempty"`
	Platform    string `json:"platform,omitempty"` // Detected job board platform
	Rendered    bool   `json:"rendered,omitempty"` // page text came from headless Chrome
	Placeholder bool   `json:"placeholder,omitempty"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     len([]rune(content)),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

