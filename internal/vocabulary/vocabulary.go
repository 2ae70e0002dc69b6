// Package vocabulary holds the controlled catalog of skill terms used for matching.
//
// A Vocabulary is an ordered list of canonical skills, each with an optional
// ordered list of aliases. It is validated once when built and is read-only
// afterwards, so a single instance can be shared by every request.
package vocabulary

import (
	"strings"
)

// Skill is a canonical, lowercase skill identifier such as "machine learning".
type Skill string

// String returns the skill as a plain string
func (s Skill) String() string {
	return string(s)
}

// Entry is one canonical skill and the alternate surface forms that resolve to it.
type Entry struct {
	Skill   Skill    `json:"skill" toml:"skill"`
	Aliases []string `json:"aliases,omitempty" toml:"aliases,omitempty"`
}

// Vocabulary is an immutable skill catalog.
type Vocabulary struct {
	entries []Entry
	index   map[Skill]int
	terms   map[string]Skill // canonical forms and aliases -> canonical skill
}

// New validates entries and builds a Vocabulary. Declaration order is kept.
// Aliases may be declared before or after their skill's position in the list
// but must belong to a skill present in entries.
func New(entries []Entry) (*Vocabulary, error) {
	v := &Vocabulary{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[Skill]int, len(entries)),
		terms:   make(map[string]Skill, len(entries)),
	}

	for _, e := range entries {
		if err := checkTerm(string(e.Skill)); err != nil {
			return nil, &MalformedError{Skill: string(e.Skill), Message: err.Error()}
		}
		if _, dup := v.index[e.Skill]; dup {
			return nil, &MalformedError{Skill: string(e.Skill), Message: "duplicate canonical skill"}
		}
		v.index[e.Skill] = len(v.entries)
		v.terms[string(e.Skill)] = e.Skill
		v.entries = append(v.entries, Entry{Skill: e.Skill})
	}

	// Aliases are resolved in a second pass so an alias can never shadow a
	// canonical skill declared later in the list.
	for _, e := range entries {
		idx := v.index[e.Skill]
		seen := make(map[string]bool, len(e.Aliases))
		for _, alias := range e.Aliases {
			if alias == "" {
				return nil, &MalformedError{Skill: string(e.Skill), Message: "empty alias"}
			}
			if err := checkTerm(alias); err != nil {
				return nil, &MalformedError{Skill: string(e.Skill), Alias: alias, Message: err.Error()}
			}
			if seen[alias] {
				return nil, &MalformedError{Skill: string(e.Skill), Alias: alias, Message: "duplicate alias"}
			}
			seen[alias] = true
			if owner, taken := v.terms[alias]; taken && owner != e.Skill {
				return nil, &MalformedError{
					Skill:   string(e.Skill),
					Alias:   alias,
					Message: "alias already resolves to " + string(owner),
				}
			}
			if alias == string(e.Skill) {
				return nil, &MalformedError{Skill: string(e.Skill), Alias: alias, Message: "alias repeats the canonical form"}
			}
			v.terms[alias] = e.Skill
			v.entries[idx].Aliases = append(v.entries[idx].Aliases, alias)
		}
	}

	return v, nil
}

// MustNew is like New but panics on a malformed vocabulary.
// It is intended for package-level catalogs built at process start.
func MustNew(entries []Entry) *Vocabulary {
	v, err := New(entries)
	if err != nil {
		panic(err)
	}
	return v
}

// checkTerm enforces the lowercase, trimmed form required for every term.
func checkTerm(term string) error {
	if strings.TrimSpace(term) == "" {
		return errEmptyTerm
	}
	if term != strings.TrimSpace(term) {
		return errUntrimmedTerm
	}
	if term != strings.ToLower(term) {
		return errNotLowercase
	}
	return nil
}

type termError string

func (e termError) Error() string { return string(e) }

const (
	errEmptyTerm     termError = "empty term"
	errUntrimmedTerm termError = "term has leading or trailing whitespace"
	errNotLowercase  termError = "term is not lowercase"
)

// Len returns the number of canonical skills.
func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// Skills returns the canonical skills in declaration order.
func (v *Vocabulary) Skills() []Skill {
	out := make([]Skill, len(v.entries))
	for i, e := range v.entries {
		out[i] = e.Skill
	}
	return out
}

// Aliases returns the aliases registered for skill, in declaration order.
func (v *Vocabulary) Aliases(skill Skill) []string {
	idx, ok := v.index[skill]
	if !ok || len(v.entries[idx].Aliases) == 0 {
		return nil
	}
	return append([]string(nil), v.entries[idx].Aliases...)
}

// Entries returns a copy of the catalog.
func (v *Vocabulary) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	for i, e := range v.entries {
		out[i] = Entry{Skill: e.Skill, Aliases: append([]string(nil), e.Aliases...)}
	}
	return out
}

// Contains reports whether skill is a canonical skill of the vocabulary.
func (v *Vocabulary) Contains(skill Skill) bool {
	_, ok := v.index[skill]
	return ok
}

// Position returns the declaration index of skill, or -1.
func (v *Vocabulary) Position(skill Skill) int {
	if idx, ok := v.index[skill]; ok {
		return idx
	}
	return -1
}

// Canonical resolves a term (canonical form or alias, any case) to its skill.
func (v *Vocabulary) Canonical(term string) (Skill, bool) {
	s, ok := v.terms[strings.ToLower(strings.TrimSpace(term))]
	return s, ok
}
