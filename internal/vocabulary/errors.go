package vocabulary

import "fmt"

// MalformedError reports a vocabulary that cannot be used for extraction.
// It is raised when a vocabulary is built or loaded, never during matching.
type MalformedError struct {
	Skill   string
	Alias   string
	Message string
}

func (e *MalformedError) Error() string {
	switch {
	case e.Alias != "":
		return fmt.Sprintf("malformed vocabulary: skill %q alias %q: %s", e.Skill, e.Alias, e.Message)
	case e.Skill != "":
		return fmt.Sprintf("malformed vocabulary: skill %q: %s", e.Skill, e.Message)
	default:
		return fmt.Sprintf("malformed vocabulary: %s", e.Message)
	}
}

// LoadError represents a failure to read or decode a vocabulary file
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load vocabulary %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load vocabulary %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
