// Package main provides the resume_matcher command: the HTTP API server plus
// offline tools for extracting and matching skills.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/vocabulary"
)

var (
	cfgFile  string
	logLevel string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "resume_matcher",
	Short:             "Resume Matcher API server and skill matching tools",
	Long:              "Resume Matcher extracts skills from résumés and job postings using a fixed vocabulary and scores how well they match.",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides LOG_LEVEL")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	if err := v.BindPFlag("log.level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return fmt.Errorf("failed to bind --log-level: %w", err)
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "resume-matcher",
		Writer:  cmd.ErrOrStderr(),
	})
	return nil
}

// loadExtractor builds the extractor for the configured vocabulary.
func loadExtractor() (*skills.Extractor, error) {
	if cfg == nil || cfg.VocabularyFile == "" {
		return skills.Default(), nil
	}
	vocab, err := vocabulary.Load(cfg.VocabularyFile)
	if err != nil {
		return nil, err
	}
	logger.Named("cli").Info().
		Str("file", cfg.VocabularyFile).
		Int("skills", vocab.Len()).
		Msg("loaded vocabulary")
	return skills.NewExtractor(vocab), nil
}
