package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpaulson/cartful/internal/cli"
	"github.com/jpaulson/cartful/internal/engine"
)

func predictCmd() *cobra.Command {
	var minConfidence float64

	cmd := &cobra.Command{
		Use:   "predict [list items...]",
		Short: "Predict items you are probably running low on",
		Long: `Estimate which items are due for repurchase based on how often you
usually buy them. Items passed as arguments are treated as already on
your list and excluded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			predictions, err := engine.New(store).PredictRestock(ctx, args, minConfidence)
			if err != nil {
				return fmt.Errorf("failed to predict restock items: %w", err)
			}

			fmt.Println(cli.FormatTitle("Probably running low"))
			if len(predictions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("Nothing looks due for repurchase yet."))
				return nil
			}
			for _, prediction := range predictions {
				fmt.Println(cli.FormatSuggestion(prediction))
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "minimum confidence to show (default 0.5)")

	return cmd
}
