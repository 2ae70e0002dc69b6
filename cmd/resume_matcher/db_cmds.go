package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/logger"
)

var seedPassword string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo user, résumé and job postings",
	Long: `Insert the demo user, one résumé and five job postings. Nothing is written
when the demo user already exists. With --password the demo user can log in.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "password for the demo user (empty disables login)")
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

func openDB(cmd *cobra.Command) (*db.DB, context.Context, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return database, ctx, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	database, ctx, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	var hash string
	if seedPassword != "" {
		pc, err := config.NewPasswordConfig(cfg.Auth)
		if err != nil {
			return err
		}
		if hash, err = pc.HashPassword(seedPassword); err != nil {
			return err
		}
	}

	database, ctx, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}
	res, err := database.SeedDemo(ctx, hash)
	if err != nil {
		return err
	}

	if !res.Created {
		logger.Named("cli").Info().Str("user_id", res.UserID.String()).Msg("demo data already present")
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode seed result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
