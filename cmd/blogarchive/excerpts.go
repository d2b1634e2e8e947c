package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/graker/blogarchive/blog/application"
	"github.com/graker/blogarchive/blog/persistence"
	"github.com/graker/blogarchive/shared/db/sqlite"
)

func newUpdateExcerptsCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "update-excerpts",
		Short: "Re-render stored post excerpts through the Markdown filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdateExcerpts(cmd.Context(), yes)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Re-save without asking; otherwise only report how many posts would change")

	return cmd
}

func runUpdateExcerpts(ctx context.Context, yes bool) error {
	database := sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig())
	if err := database.Connect(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	repo := persistence.NewPostRepository(database.DB())

	if !yes {
		posts, err := repo.ListWithExcerpts(ctx)
		if err != nil {
			return err
		}
		log.Info().Int("posts", len(posts)).Msg("Posts with excerpts; re-run with --yes to re-save them")
		return nil
	}

	service := application.NewExcerptService(repo, application.NewExcerptRenderer())
	updated, err := service.UpdateAll(ctx)
	if err != nil {
		return err
	}

	log.Info().Int("updated", updated).Msg("Excerpts re-rendered")
	return nil
}
