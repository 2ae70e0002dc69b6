package skills

import (
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/resume-matcher/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		got := Extract(text)
		require.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestExtract_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Extract("python"), Extract("PYTHON"))
	assert.Equal(t, []vocabulary.Skill{"python"}, Extract("PyThOn"))
}

func TestExtract_Aliases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want vocabulary.Skill
	}{
		{"nodejs", "I use nodejs daily", "node.js"},
		{"node js", "built with Node JS", "node.js"},
		{"cpp", "cpp and templates", "c++"},
		{"c plus plus", "fluent in C plus plus", "c++"},
		{"csharp", "csharp backend", "c#"},
		{"ml", "ML pipelines", "machine learning"},
		{"restful", "RESTful services", "rest api"},
		{"continuous integration", "continuous integration pipelines", "ci/cd"},
		{"unit tests", "writes unit tests", "unit testing"},
		{"project manager", "worked as project manager", "project management"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Extract(tt.text), tt.want)
		})
	}
}

func TestExtract_AliasDoesNotDuplicateCanonical(t *testing.T) {
	got := Extract("node.js, nodejs and node")
	assert.Equal(t, []vocabulary.Skill{"node.js"}, got)
}

func TestExtract_WordBoundaries(t *testing.T) {
	got := Extract("javascript developer")
	assert.Contains(t, got, vocabulary.Skill("javascript"))
	assert.NotContains(t, got, vocabulary.Skill("java"))

	assert.NotContains(t, Extract("golang"), vocabulary.Skill("go"))
	assert.NotContains(t, Extract("typescripting"), vocabulary.Skill("typescript"))
	assert.NotContains(t, Extract("reactive streams"), vocabulary.Skill("react"))
}

func TestExtract_PunctuationAdjacent(t *testing.T) {
	got := Extract("Skills: (Python), Docker; AWS. Git/Linux")
	for _, want := range []vocabulary.Skill{"python", "docker", "aws", "git", "linux"} {
		assert.Contains(t, got, want)
	}
}

func TestExtract_SymbolSkills(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []vocabulary.Skill
		notWant []vocabulary.Skill
	}{
		{
			name: "c++ before space",
			text: "c++ developer",
			want: []vocabulary.Skill{"c++"},
		},
		{
			name: "c++ end of sentence",
			text: "We use C++.",
			want: []vocabulary.Skill{"c++"},
		},
		{
			name: "c# in list",
			text: "Java, C#, and Go",
			want: []vocabulary.Skill{"java", "c#", "go"},
		},
		{
			name:    "c# is not c++",
			text:    "c# only",
			notWant: []vocabulary.Skill{"c++"},
		},
		{
			name:    "longer symbol run",
			text:    "c+++ is not a language",
			notWant: []vocabulary.Skill{"c++"},
		},
		{
			name: "versioned",
			text: "Modern C++17 and C#9 codebases",
			want: []vocabulary.Skill{"c++", "c#"},
		},
		{
			name:    "version suffix needs the symbol",
			text:    "c11 and c++x",
			notWant: []vocabulary.Skill{"c++"},
		},
		{
			name: "ci/cd",
			text: "Knowledge of Docker and CI/CD is a plus.",
			want: []vocabulary.Skill{"docker", "ci/cd"},
		},
		{
			name: "hyphenated",
			text: "scikit-learn models",
			want: []vocabulary.Skill{"scikit-learn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, got, nw)
			}
		})
	}
}

func TestExtract_MultiWordWhitespace(t *testing.T) {
	assert.Contains(t, Extract("deep\n  learning research"), vocabulary.Skill("deep learning"))
	assert.Contains(t, Extract("React   Native apps"), vocabulary.Skill("react native"))
}

func TestExtract_VocabularyOrderWithoutDuplicates(t *testing.T) {
	text := "Linux, Docker, Python, linux again, docker again, Go, python"
	got := Extract(text)

	assert.Equal(t, []vocabulary.Skill{"python", "go", "docker", "linux"}, got)
	assertVocabularyOrder(t, vocabulary.Default(), got)
}

func TestExtract_AllCanonicalSkillsRoundTrip(t *testing.T) {
	v := vocabulary.Default()
	var parts []string
	for _, s := range v.Skills() {
		parts = append(parts, string(s))
	}

	got := Extract(strings.Join(parts, " ; "))
	assert.Equal(t, v.Skills(), got)
}

func TestExtractor_CustomVocabulary(t *testing.T) {
	v, err := vocabulary.New([]vocabulary.Entry{
		{Skill: "kubernetes", Aliases: []string{"k8s"}},
		{Skill: "go", Aliases: []string{"golang"}},
	})
	require.NoError(t, err)

	e := NewExtractor(v)
	assert.Same(t, v, e.Vocabulary())
	assert.Equal(t, []vocabulary.Skill{"kubernetes", "go"}, e.Extract("Golang services on K8s"))
	assert.Empty(t, e.Extract("python only"))
}

func TestExtractor_ConcurrentUse(t *testing.T) {
	e := Default()
	want := e.Extract("python docker aws")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, want, e.Extract("python docker aws"))
			}
		}()
	}
	wg.Wait()
}

// assertVocabularyOrder checks that skills appear in declaration order.
func assertVocabularyOrder(t *testing.T, v *vocabulary.Vocabulary, skills []vocabulary.Skill) {
	t.Helper()
	last := -1
	for _, s := range skills {
		pos := v.Position(s)
		require.GreaterOrEqual(t, pos, 0, "unknown skill %q", s)
		assert.Greater(t, pos, last, "skill %q out of order", s)
		last = pos
	}
}
