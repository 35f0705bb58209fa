package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpaulson/cartful/internal/cli"
)

func aiCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Fetch suggestions from the remote AI service",
		Long: `Fetch suggestions from the configured remote AI suggestion service.
These are shown on their own and never mixed into the local suggestions,
so a slow or unavailable service can't affect them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			bridge, err := initBridge()
			if err != nil {
				return err
			}
			if bridge == nil {
				fmt.Println(cli.FormatWarning("No remote service configured. Set remote.url in your config."))
				return nil
			}

			suggestions, err := bridge.Fetch(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to fetch remote suggestions: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render(cli.RobotIcon + " AI suggestions"))
			if len(suggestions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("The remote service had nothing to suggest."))
				return nil
			}
			for _, suggestion := range suggestions {
				fmt.Println(cli.FormatSuggestion(suggestion))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of suggestions to request")

	return cmd
}
