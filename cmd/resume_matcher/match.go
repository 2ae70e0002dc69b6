package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/vocabulary"
)

var matchJSON bool

var matchCmd = &cobra.Command{
	Use:   "match <resume-file> <job-file>",
	Short: "Score a résumé document against a job description",
	Args:  cobra.ExactArgs(2),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "print JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	extractor, err := loadExtractor()
	if err != nil {
		return err
	}

	resumeText, _, err := ingestion.IngestFromFile(args[0])
	if err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	jobText, _, err := ingestion.IngestFromFile(args[1])
	if err != nil {
		return fmt.Errorf("job: %w", err)
	}

	res := matching.NewService(extractor, nil).MatchText(resumeText, jobText)
	if matchJSON {
		return writeJSON(cmd, res)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "score:   %.2f\n", res.Score)
	fmt.Fprintf(w, "matched: %s\n", joinSkills(res.Matched))
	fmt.Fprintf(w, "missing: %s\n", joinSkills(res.Missing))
	return nil
}

func joinSkills(list []vocabulary.Skill) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(skills.Strings(list), ", ")
}
