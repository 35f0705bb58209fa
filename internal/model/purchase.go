package model

import (
	"fmt"
	"strings"
	"time"
)

// PurchaseRecord represents a single completed purchase from any list.
// Records are immutable once written; the store prunes oldest-first.
type PurchaseRecord struct {
	Date     time.Time
	ItemName string // normalized: lower-cased, trimmed
	Category string
	Price    *float64 // nil when the price was never captured
}

// NormalizeItemName lower-cases and trims an item name so that "Milk",
// " milk " and "MILK" all count as the same item.
func NormalizeItemName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewPurchaseRecord builds a record with a normalized item name.
func NewPurchaseRecord(name, category string, price *float64, date time.Time) PurchaseRecord {
	return PurchaseRecord{
		ItemName: NormalizeItemName(name),
		Category: category,
		Price:    price,
		Date:     date,
	}
}

// Validate ensures the PurchaseRecord has valid data.
func (r *PurchaseRecord) Validate() error {
	if strings.TrimSpace(r.ItemName) == "" {
		return fmt.Errorf("item name is required")
	}

	if r.ItemName != NormalizeItemName(r.ItemName) {
		return fmt.Errorf("item name %q is not normalized", r.ItemName)
	}

	if r.Date.IsZero() {
		return fmt.Errorf("purchase date is required")
	}

	if r.Price != nil && *r.Price < 0 {
		return fmt.Errorf("price must not be negative, got %.2f", *r.Price)
	}

	return nil
}

// TripKey returns the calendar-date bucket this purchase belongs to.
// Two purchases on the same date are treated as one shopping trip; no
// stronger trip boundary exists in the data.
func (r *PurchaseRecord) TripKey() string {
	return r.Date.Format("2006-01-02")
}
