package vocabulary

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

//go:embed vocabulary.schema.json
var fileSchema []byte

// File is the on-disk shape of a vocabulary (JSON or TOML).
type File struct {
	Skills []Entry `json:"skills" toml:"skills"`
}

// Load reads a vocabulary file, checks it against the vocabulary schema and
// builds a validated Vocabulary. The format is chosen by extension:
// .json or .toml.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	return Parse(filepath.Ext(path), data, path)
}

// Parse decodes vocabulary content in the given format (".json" or ".toml").
// name is only used in error messages.
func Parse(ext string, data []byte, name string) (*Vocabulary, error) {
	var (
		doc  any
		file File
	)

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &LoadError{Path: name, Message: "invalid JSON", Cause: err}
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			// Shape problems are reported by the schema below with better paths.
			file = File{}
		}
	case ".toml":
		var raw map[string]any
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, &LoadError{Path: name, Message: "invalid TOML", Cause: err}
		}
		doc = raw
		if _, err := toml.Decode(string(data), &file); err != nil {
			file = File{}
		}
	default:
		return nil, &LoadError{Path: name, Message: fmt.Sprintf("unsupported vocabulary format %q", ext)}
	}

	if err := schemas.ValidateDocument("vocabulary", fileSchema, doc); err != nil {
		return nil, &LoadError{Path: name, Message: "schema check failed", Cause: err}
	}

	return New(file.Skills)
}

// Encode writes v as indented JSON in the File shape.
func Encode(v *Vocabulary) ([]byte, error) {
	data, err := json.MarshalIndent(File{Skills: v.Entries()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vocabulary: %w", err)
	}
	return data, nil
}
