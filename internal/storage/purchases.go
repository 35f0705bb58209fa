package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/jpaulson/cartful/internal/common"
	"github.com/jpaulson/cartful/internal/model"
	"github.com/jpaulson/cartful/internal/service"
)

// Append records a completed purchase and prunes the history to
// MaxHistoryRecords in the same transaction.
func (s *SQLiteStore) Append(ctx context.Context, record model.PurchaseRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(&record); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.appendTx(ctx, tx, record); err != nil {
		return err
	}
	if err := s.pruneTx(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}

// AppendBatch records multiple purchases atomically. The prune runs once
// at the end, so the cap invariant holds after the batch commits.
func (s *SQLiteStore) AppendBatch(ctx context.Context, records []model.PurchaseRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, record := range records {
		if err := s.appendTx(ctx, tx, record); err != nil {
			return fmt.Errorf("record at index %d: %w", i, err)
		}
	}
	if err := s.pruneTx(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) appendTx(ctx context.Context, tx *sql.Tx, record model.PurchaseRecord) error {
	var price any
	if record.Price != nil {
		price = *record.Price
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO purchases (item_name, category, price, purchase_date)
		VALUES (?, ?, ?, ?)
	`, record.ItemName, record.Category, price, record.Date.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}
	return nil
}

// pruneTx discards the oldest records beyond the retention cap. Insertion
// order is the append order, so id order is FIFO order.
func (s *SQLiteStore) pruneTx(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM purchases
		WHERE id NOT IN (SELECT id FROM purchases ORDER BY id DESC LIMIT ?)
	`, MaxHistoryRecords)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// ReadAll returns the full history ordered oldest to newest.
func (s *SQLiteStore) ReadAll(ctx context.Context) ([]model.PurchaseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT item_name, category, price, purchase_date
		FROM purchases
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.PurchaseRecord
	for rows.Next() {
		var record model.PurchaseRecord
		var price sql.NullFloat64

		if err := rows.Scan(&record.ItemName, &record.Category, &price, &record.Date); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		if price.Valid {
			p := price.Float64
			record.Price = &p
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchases: %w", err)
	}

	return records, nil
}

// Count returns the number of retained records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM purchases`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return count, nil
}

// MarkSynced stamps the most recent record for an item as pushed to the
// remote suggestion service.
func (s *SQLiteStore) MarkSynced(ctx context.Context, itemName string, syncedAt time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(itemName, "itemName"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE purchases SET synced_at = ?
		WHERE id = (
			SELECT id FROM purchases WHERE item_name = ? ORDER BY id DESC LIMIT 1
		)
	`, syncedAt.UTC(), model.NormalizeItemName(itemName))
	if err != nil {
		return fmt.Errorf("failed to mark purchase synced: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check synced rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: no purchase of %q", common.ErrNotFound, model.NormalizeItemName(itemName))
	}
	return nil
}

// avgWindow is how many trailing purchases feed the repurchase-interval
// average, matching the rolling window the suggestion engine expects.
const avgWindow = 10

// ItemStats returns per-item rollups derived from the history. The rollups
// are folded in purchase order so the typical price behaves as a proper
// moving average.
func (s *SQLiteStore) ItemStats(ctx context.Context) ([]service.ItemStats, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	type accum struct {
		stats service.ItemStats
		dates []time.Time
	}

	byItem := make(map[string]*accum)
	order := make([]string, 0)

	for _, record := range records {
		acc, ok := byItem[record.ItemName]
		if !ok {
			acc = &accum{stats: service.ItemStats{ItemName: record.ItemName}}
			byItem[record.ItemName] = acc
			order = append(order, record.ItemName)
		}

		acc.stats.PurchaseCount++
		if record.Date.After(acc.stats.LastPurchased) {
			acc.stats.LastPurchased = record.Date
			if record.Category != "" {
				acc.stats.Category = record.Category
			}
		}

		if record.Price != nil {
			if acc.stats.TypicalPrice == nil {
				p := *record.Price
				acc.stats.TypicalPrice = &p
			} else {
				blended := *acc.stats.TypicalPrice*0.7 + *record.Price*0.3
				acc.stats.TypicalPrice = &blended
			}
		}

		acc.dates = append(acc.dates, record.Date)
	}

	stats := make([]service.ItemStats, 0, len(order))
	for _, name := range order {
		acc := byItem[name]
		acc.stats.AvgDaysBetweenBuy = averageInterval(acc.dates)
		stats = append(stats, acc.stats)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].PurchaseCount > stats[j].PurchaseCount
	})

	return stats, nil
}

// averageInterval computes the mean positive day gap between the item's
// most recent purchase dates, or nil when fewer than two purchases exist.
// The window is picked after sorting, so backdated appends cannot evict a
// newer date.
func averageInterval(dates []time.Time) *float64 {
	if len(dates) < 2 {
		return nil
	}

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	if len(sorted) > avgWindow {
		sorted = sorted[len(sorted)-avgWindow:]
	}

	var total float64
	var intervals int
	for i := 1; i < len(sorted); i++ {
		days := sorted[i].Sub(sorted[i-1]).Hours() / 24
		if days > 0 {
			total += days
			intervals++
		}
	}

	if intervals == 0 {
		return nil
	}

	avg := total / float64(intervals)
	return &avg
}
