package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "blogarchive",
		Short: "Blog archive server and import tooling",
		Long: `blogarchive serves calendar archives of blog posts (with prev/next
navigation and sitemap year entries) and ships the batch tooling for
importing a Drupal 6 blog export.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newPreprocessCommand())
	root.AddCommand(newUpdateExcerptsCommand())

	return root
}
