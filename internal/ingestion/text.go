package ingestion

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NoTextExtracted replaces an extraction that produced no text.
const NoTextExtracted = "No text extracted from file"

var (
	artifactReplacer = strings.NewReplacer("\x00", "", "\ufeff", "")
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
)

// stripArtifacts removes NUL bytes and byte order marks left behind by PDF and
// Word exports, then applies NFKC so ligatures and full-width forms compare
// equal to their plain spellings.
func stripArtifacts(content string) string {
	return norm.NFKC.String(artifactReplacer.Replace(content))
}

// CleanText flattens extracted document text to single-spaced prose.
// Empty input, or input that cleans to nothing, yields NoTextExtracted.
func CleanText(content string) string {
	cleaned := strings.Join(strings.Fields(stripArtifacts(content)), " ")
	if cleaned == "" {
		return NoTextExtracted
	}
	return cleaned
}

// NormalizeText cleans text while keeping its line structure: line endings are
// unified, runs of spaces inside a line collapse, markdown headings and bullets
// keep their markers, and at most one blank line separates blocks.
func NormalizeText(content string) string {
	content = stripArtifacts(content)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = normalizeLine(line)
	}

	result := excessBlankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func normalizeLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := line[:len(line)-len(trimmed)]
	if isBulletLine(trimmed) {
		return indent + trimmed
	}
	return indent + strings.Join(strings.Fields(trimmed), " ")
}

func isBulletLine(line string) bool {
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// PlaceholderText is stored for an upload whose text could not be extracted.
func PlaceholderText(filename string) string {
	return "Resume content from " + filename + ". Text extraction failed, using filename as placeholder."
}
