package ingestion

import (
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// sniffedFormats maps detected MIME types to the formats we can extract.
// Parents are matched too, so text/html also covers its charset variants.
var sniffedFormats = []struct {
	mime   string
	format Format
}{
	{"application/pdf", FormatPDF},
	{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", FormatDOCX},
	{"text/html", FormatHTML},
	{"text/plain", FormatText},
}

// SniffFormat guesses a document's format from its leading bytes. It is used
// for uploads whose file name has no recognised extension. Text and HTML are
// only accepted when the data is valid UTF-8, since short binary input is
// often detected as text/plain.
func SniffFormat(data []byte) (Format, bool) {
	if len(data) == 0 {
		return "", false
	}
	detected := mimetype.Detect(data)
	for _, s := range sniffedFormats {
		for m := detected; m != nil; m = m.Parent() {
			if m.Is(s.mime) {
				if (s.format == FormatText || s.format == FormatHTML) && !utf8.Valid(data) {
					return "", false
				}
				return s.format, true
			}
		}
	}
	return "", false
}
