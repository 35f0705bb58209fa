package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jpaulson/cartful/internal/cli"
	"github.com/jpaulson/cartful/internal/common"
	"github.com/jpaulson/cartful/internal/model"
	"github.com/jpaulson/cartful/internal/remote"
	"github.com/jpaulson/cartful/internal/service"
	"github.com/jpaulson/cartful/internal/storage"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage your purchase history",
		Long:  `Record, inspect, and import the purchase history that drives suggestions.`,
	}

	cmd.AddCommand(historyRecordCmd())
	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyStatsCmd())
	cmd.AddCommand(historyImportCmd())

	return cmd
}

func historyRecordCmd() *cobra.Command {
	var (
		category string
		price    float64
		dateStr  string
	)

	cmd := &cobra.Command{
		Use:   "record <item>",
		Short: "Record a completed purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			date := time.Now()
			if dateStr != "" {
				parsed, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", dateStr, err)
				}
				date = parsed
			}

			var pricePtr *float64
			if cmd.Flags().Changed("price") {
				pricePtr = &price
			}

			record := model.NewPurchaseRecord(args[0], category, pricePtr, date)

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Append(ctx, record); err != nil {
				return fmt.Errorf("failed to record purchase: %w", err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s", record.ItemName)))

			// The local write has committed; the remote push is best
			// effort and must never fail the command.
			syncPurchase(ctx, store, record)

			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "item category")
	cmd.Flags().Float64VarP(&price, "price", "p", 0, "price paid")
	cmd.Flags().StringVar(&dateStr, "date", "", "purchase date (YYYY-MM-DD, default today)")

	return cmd
}

// syncPurchase pushes one purchase to the remote suggestion service when
// one is configured. Failures are logged and swallowed.
func syncPurchase(ctx context.Context, store *storage.SQLiteStore, record model.PurchaseRecord) {
	bridge, err := initBridge()
	if err != nil || bridge == nil {
		if err != nil {
			common.LogWarn("Remote sync skipped", common.Fields{"error": err.Error()})
		}
		return
	}

	err = common.WithRetry(ctx, func() error {
		return bridge.NotifyPurchase(ctx, record)
	}, service.RetryOptions{MaxAttempts: 2, MaxDelay: remote.DefaultTimeout})
	if err != nil {
		common.LogError(err, "Remote sync failed", common.Fields{"item": record.ItemName})
		return
	}

	if err := store.MarkSynced(ctx, record.ItemName, time.Now()); err != nil {
		common.LogWarn("Failed to mark purchase synced", common.Fields{"error": err.Error()})
	}
}

func historyListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent purchases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.ReadAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}

			if len(records) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No purchases recorded yet."))
				return nil
			}

			if limit > 0 && len(records) > limit {
				records = records[len(records)-limit:]
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "Date\tItem\tCategory\tPrice\n")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10), strings.Repeat("-", 20),
				strings.Repeat("-", 12), strings.Repeat("-", 8))

			// Newest last in storage order; print newest first
			for i := len(records) - 1; i >= 0; i-- {
				record := records[i]
				priceStr := "-"
				if record.Price != nil {
					priceStr = fmt.Sprintf("$%.2f", *record.Price)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					record.Date.Format("2006-01-02"), record.ItemName, record.Category, priceStr)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "show at most this many purchases (0 for all)")

	return cmd
}

func historyStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-item purchase statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := store.ItemStats(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute stats: %w", err)
			}

			if len(stats) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No purchases recorded yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "Item\tBought\tLast\tTypical price\tEvery ~\n")
			for _, item := range stats {
				priceStr := "-"
				if item.TypicalPrice != nil {
					priceStr = fmt.Sprintf("$%.2f", *item.TypicalPrice)
				}
				intervalStr := "-"
				if item.AvgDaysBetweenBuy != nil {
					intervalStr = fmt.Sprintf("%.0f days", *item.AvgDaysBetweenBuy)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
					item.ItemName, item.PurchaseCount,
					item.LastPurchased.Format("2006-01-02"), priceStr, intervalStr)
			}

			return nil
		},
	}
}

// importedPurchase is the JSON shape of one entry in an import file.
type importedPurchase struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    *float64 `json:"price"`
	Date     string   `json:"date"`
}

func historyImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a purchase history export",
		Long: `Bulk import purchases from a JSON array of {name, category, price, date}
entries. Invalid entries are skipped and counted; the history cap still
applies after the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}

			var entries []importedPurchase
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("failed to parse import file: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println(cli.SubtleStyle.Render("Nothing to import."))
				return nil
			}

			bar := progressbar.Default(int64(len(entries)), "importing")
			records := make([]model.PurchaseRecord, 0, len(entries))
			skipped := 0

			for _, entry := range entries {
				_ = bar.Add(1)

				date, err := time.Parse("2006-01-02", entry.Date)
				if err != nil {
					skipped++
					continue
				}
				record := model.NewPurchaseRecord(entry.Name, entry.Category, entry.Price, date)
				if err := record.Validate(); err != nil {
					skipped++
					continue
				}
				records = append(records, record)
			}

			if len(records) == 0 {
				return fmt.Errorf("no valid entries in %s (%d skipped)", args[0], skipped)
			}

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.AppendBatch(ctx, records); err != nil {
				return fmt.Errorf("failed to import purchases: %w", err)
			}

			msg := fmt.Sprintf("Imported %d purchases", len(records))
			if skipped > 0 {
				msg += fmt.Sprintf(" (%d skipped)", skipped)
			}
			fmt.Println(cli.FormatSuccess(msg))

			return nil
		},
	}
}
