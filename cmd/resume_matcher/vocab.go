package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/vocabulary"
)

var vocabListJSON bool

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect skill vocabularies",
}

var vocabValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a vocabulary file (.json or .toml)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := vocabulary.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d skills\n", args[0], v.Len())
		return nil
	},
}

var vocabListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the active vocabulary",
	Long:  `Print the vocabulary in use: VOCABULARY_FILE when set, otherwise the built-in one.`,
	Args:  cobra.NoArgs,
	RunE:  runVocabList,
}

var vocabLookupCmd = &cobra.Command{
	Use:   "lookup <term>",
	Short: "Resolve a skill name or alias against the active vocabulary",
	Args:  cobra.ExactArgs(1),
	RunE:  runVocabLookup,
}

func init() {
	vocabListCmd.Flags().BoolVar(&vocabListJSON, "json", false, "print the vocabulary file format")
	vocabCmd.AddCommand(vocabValidateCmd, vocabListCmd, vocabLookupCmd)
	rootCmd.AddCommand(vocabCmd)
}

func runVocabList(cmd *cobra.Command, _ []string) error {
	extractor, err := loadExtractor()
	if err != nil {
		return err
	}
	vocab := extractor.Vocabulary()

	if vocabListJSON {
		data, err := vocabulary.Encode(vocab)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := cmd.OutOrStdout()
	for _, e := range vocab.Entries() {
		if len(e.Aliases) == 0 {
			fmt.Fprintln(w, e.Skill)
			continue
		}
		fmt.Fprintf(w, "%s (%s)\n", e.Skill, strings.Join(e.Aliases, ", "))
	}
	return nil
}

func runVocabLookup(cmd *cobra.Command, args []string) error {
	extractor, err := loadExtractor()
	if err != nil {
		return err
	}
	vocab := extractor.Vocabulary()

	term := strings.ToLower(strings.TrimSpace(args[0]))
	skill, ok := vocab.Canonical(term)
	if !ok {
		return fmt.Errorf("%q is not in the vocabulary", args[0])
	}

	w := cmd.OutOrStdout()
	if vocab.Contains(vocabulary.Skill(term)) {
		fmt.Fprintf(w, "%s: skill #%d\n", skill, vocab.Position(skill)+1)
		return nil
	}
	fmt.Fprintf(w, "%s: alias of %s (skill #%d)\n", term, skill, vocab.Position(skill)+1)
	return nil
}
