package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/vocabulary"
)

var extractJSON bool

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the skills found in a document",
	Long:  `Extract the text of a PDF, DOCX, HTML or plain text document and list the vocabulary skills it mentions.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print JSON")
	rootCmd.AddCommand(extractCmd)
}

type extractOutput struct {
	File   string             `json:"file"`
	Format ingestion.Format   `json:"format"`
	Chars  int                `json:"chars"`
	Skills []vocabulary.Skill `json:"skills"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	extractor, err := loadExtractor()
	if err != nil {
		return err
	}

	text, meta, err := ingestion.IngestFromFile(args[0])
	if err != nil {
		return err
	}

	out := extractOutput{
		File:   args[0],
		Format: meta.Format,
		Chars:  meta.Chars,
		Skills: extractor.Extract(text),
	}
	if extractJSON {
		return writeJSON(cmd, out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (%s, %d chars)\n", out.File, out.Format, out.Chars)
	if len(out.Skills) == 0 {
		fmt.Fprintln(w, "no skills found")
		return nil
	}
	fmt.Fprintf(w, "skills (%d): %s\n", len(out.Skills), strings.Join(skills.Strings(out.Skills), ", "))
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
