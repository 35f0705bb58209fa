package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpaulson/cartful/internal/cli"
	"github.com/jpaulson/cartful/internal/engine"
)

func relatedCmd() *cobra.Command {
	var maxResults int

	cmd := &cobra.Command{
		Use:   "related <item>",
		Short: "Show what you usually buy with an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			related, err := engine.New(store).RelatedItems(ctx, args[0], maxResults)
			if err != nil {
				return fmt.Errorf("failed to find related items: %w", err)
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Usually bought with %s", args[0])))
			if len(related) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No strong co-purchase pattern yet."))
				return nil
			}
			for _, suggestion := range related {
				fmt.Println(cli.FormatSuggestion(suggestion))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&maxResults, "max", "n", 10, "maximum number of related items")

	return cmd
}
