package skills

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/vocabulary"
)

// Result is the outcome of scoring one résumé skill set against one job skill set.
type Result struct {
	// Score is the percentage of job skills covered by the résumé, in [0, 100].
	Score   float64            `json:"score"`
	Matched []vocabulary.Skill `json:"matched_skills"`
	Missing []vocabulary.Skill `json:"missing_skills"`
}

// Score compares résumé skills with job skills. Both inputs are treated as
// sets; Matched and Missing keep the order of first appearance in jobSkills.
// An empty job skill set scores 0.
func Score(resumeSkills, jobSkills []vocabulary.Skill) Result {
	have := make(map[vocabulary.Skill]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		have[s] = struct{}{}
	}

	res := Result{
		Matched: make([]vocabulary.Skill, 0),
		Missing: make([]vocabulary.Skill, 0),
	}
	seen := make(map[vocabulary.Skill]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := have[s]; ok {
			res.Matched = append(res.Matched, s)
		} else {
			res.Missing = append(res.Missing, s)
		}
	}

	if len(seen) > 0 {
		res.Score = 100 * float64(len(res.Matched)) / float64(len(seen))
	}
	return res
}

// Strings converts skills to plain strings, for storage and transport.
func Strings(skills []vocabulary.Skill) []string {
	out := make([]string, len(skills))
	for i, s := range skills {
		out[i] = string(s)
	}
	return out
}

// RoundScore rounds a score to the two decimals it is stored with.
func RoundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
