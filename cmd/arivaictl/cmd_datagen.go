package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/arivai/internal/generator"
)

func newDatagenCmd(a *app) *cobra.Command {
	cfg := generator.DefaultConfig()
	var (
		outputDir   string
		writeStdout bool
		until       string
	)

	cmd := &cobra.Command{
		Use:   "datagen",
		Short: "Generate synthetic users with cycle and symptom history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if until != "" {
				t, err := time.Parse("2006-01-02", until)
				if err != nil {
					return fmt.Errorf("invalid --until: %w", err)
				}
				cfg.Until = t
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			dataset, err := generator.New(cfg).Generate(ctx)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			if writeStdout {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(dataset.Users)
			}
			if err := generator.WriteDataset(dataset, outputDir); err != nil {
				return fmt.Errorf("write dataset: %w", err)
			}
			a.logger.Info("dataset generated", "users", len(dataset.Users), "dir", outputDir)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.NumUsers, "users", cfg.NumUsers, "number of users to generate")
	flags.IntVar(&cfg.CyclesPerUser, "cycles", cfg.CyclesPerUser, "cycles per user, the newest left open")
	flags.IntVar(&cfg.SymptomsPerCycle, "symptoms", cfg.SymptomsPerCycle, "symptom logs per cycle")
	flags.IntVar(&cfg.CycleVariability, "variability", cfg.CycleVariability, "maximum drift in days from a user's average cycle length")
	flags.StringVar(&cfg.Password, "password", cfg.Password, "password given to every generated account")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for deterministic generation")
	flags.StringVar(&until, "until", "", "date (YYYY-MM-DD) the newest cycle runs up to (default today)")
	flags.StringVar(&outputDir, "output-dir", "data", "directory to write users.json")
	flags.BoolVar(&writeStdout, "stdout", false, "write the dataset to stdout instead of a file")
	return cmd
}
