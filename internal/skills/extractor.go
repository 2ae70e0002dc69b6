// Package skills extracts vocabulary skills from free text and scores
// résumé skills against job skills.
package skills

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/vocabulary"
)

// Term boundaries. A term matches only when the characters around it are not
// part of a token: letters, digits, '_' and the '+'/'#' suffixes used by
// names like "c++" and "c#". Anything else (space, punctuation, '.', '/')
// separates terms. A term ending in '+' or '#' may be followed by a version
// number, so "c++17" and "c#9" still match.
const (
	boundaryBefore      = `(?:^|[^\p{L}\p{N}_+#])`
	boundaryAfter       = `(?:[^\p{L}\p{N}_+#]|$)`
	boundaryAfterSymbol = `(?:[^\p{L}_+#]|$)`
)

// matcher tests one canonical skill and its aliases.
type matcher struct {
	skill vocabulary.Skill
	terms []*regexp.Regexp // canonical form first, then aliases in order
}

// Extractor finds vocabulary skills in text. Matchers are compiled once, so an
// Extractor is cheap to reuse and safe for concurrent use.
type Extractor struct {
	vocab    *vocabulary.Vocabulary
	matchers []matcher
}

// NewExtractor compiles matchers for every term of vocab.
func NewExtractor(vocab *vocabulary.Vocabulary) *Extractor {
	e := &Extractor{
		vocab:    vocab,
		matchers: make([]matcher, 0, vocab.Len()),
	}
	for _, skill := range vocab.Skills() {
		m := matcher{skill: skill}
		m.terms = append(m.terms, compileTerm(string(skill)))
		for _, alias := range vocab.Aliases(skill) {
			m.terms = append(m.terms, compileTerm(alias))
		}
		e.matchers = append(e.matchers, m)
	}
	return e
}

// compileTerm builds the whole-term pattern. Spaces inside multi-word terms
// match any run of whitespace.
func compileTerm(term string) *regexp.Regexp {
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	after := boundaryAfter
	if strings.HasSuffix(term, "+") || strings.HasSuffix(term, "#") {
		after = boundaryAfterSymbol
	}
	return regexp.MustCompile(boundaryBefore + strings.Join(words, `\s+`) + after)
}

// Vocabulary returns the vocabulary the extractor was built from.
func (e *Extractor) Vocabulary() *vocabulary.Vocabulary {
	return e.vocab
}

// Extract returns the skills present in text, in vocabulary order and without
// duplicates. Matching is case-insensitive and exact: a skill is found when its
// canonical form or one of its aliases appears as a whole term.
func (e *Extractor) Extract(text string) []vocabulary.Skill {
	found := make([]vocabulary.Skill, 0)
	if strings.TrimSpace(text) == "" {
		return found
	}

	lower := strings.ToLower(text)
	for _, m := range e.matchers {
		for _, re := range m.terms {
			if re.MatchString(lower) {
				found = append(found, m.skill)
				break
			}
		}
	}
	return found
}

var defaultExtractor = NewExtractor(vocabulary.Default())

// Extract runs the extractor for the built-in vocabulary.
func Extract(text string) []vocabulary.Skill {
	return defaultExtractor.Extract(text)
}

// Default returns the shared extractor for the built-in vocabulary.
func Default() *Extractor {
	return defaultExtractor
}
