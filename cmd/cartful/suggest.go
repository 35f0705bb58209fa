package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpaulson/cartful/internal/cli"
	"github.com/jpaulson/cartful/internal/engine"
)

func suggestCmd() *cobra.Command {
	var (
		maxSuggestions int
		targetDateStr  string
	)

	cmd := &cobra.Command{
		Use:   "suggest [list items...]",
		Short: "Suggest items to add to your list",
		Long: `Generate ranked suggestions from your purchase history. Pass the items
already on your list as arguments; they are never suggested back and
they drive the "usually bought together" and recipe signals.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var targetDate time.Time
			if targetDateStr != "" {
				parsed, err := time.Parse("2006-01-02", targetDateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", targetDateStr, err)
				}
				targetDate = parsed
			}

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			suggestions := engine.New(store).Generate(ctx, args, maxSuggestions, targetDate)

			fmt.Println(cli.FormatTitle("Suggested items"))
			if len(suggestions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("Nothing to suggest right now."))
				return nil
			}
			for _, suggestion := range suggestions {
				fmt.Println(cli.FormatSuggestion(suggestion))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&maxSuggestions, "max", "n", 10, "maximum number of suggestions")
	cmd.Flags().StringVar(&targetDateStr, "date", "", "shopping date (YYYY-MM-DD, default today)")

	return cmd
}
