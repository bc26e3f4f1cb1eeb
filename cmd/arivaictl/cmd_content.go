package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanshika/arivai/internal/catalog"
)

func newSeedContentCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed-content",
		Short: "Load recipes, meditation videos and articles into the database",
		Long: `Upsert the wellness content catalog into the content tables. Without
--file the built-in catalog is used. Items are keyed by id, so running the
command again updates existing rows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cat, err := catalog.Default()
			if file != "" {
				cat, err = catalog.Load(file)
			}
			if err != nil {
				return err
			}

			db, repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			for _, r := range cat.Recipes {
				if err := repo.UpsertRecipe(ctx, r); err != nil {
					return fmt.Errorf("seed recipe %s: %w", r.ID, err)
				}
			}
			for _, v := range cat.Videos {
				if err := repo.UpsertVideo(ctx, v); err != nil {
					return fmt.Errorf("seed video %s: %w", v.ID, err)
				}
			}
			for _, ar := range cat.Articles {
				if err := repo.UpsertArticle(ctx, ar); err != nil {
					return fmt.Errorf("seed article %s: %w", ar.ID, err)
				}
			}

			a.logger.Info("content seeded",
				"recipes", len(cat.Recipes),
				"videos", len(cat.Videos),
				"articles", len(cat.Articles))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML catalog to load instead of the built-in one")
	return cmd
}
