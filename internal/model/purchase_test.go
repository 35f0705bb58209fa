package model

import (
	"testing"
	"time"
)

func TestNormalizeItemName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase passthrough",
			input: "milk",
			want:  "milk",
		},
		{
			name:  "mixed case",
			input: "Whole Milk",
			want:  "whole milk",
		},
		{
			name:  "surrounding whitespace",
			input: "  MILK \t",
			want:  "milk",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeItemName(tt.input); got != tt.want {
				t.Errorf("NormalizeItemName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewPurchaseRecordNormalizes(t *testing.T) {
	price := 3.49
	record := NewPurchaseRecord("  Bananas ", "Produce", &price, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))

	if record.ItemName != "bananas" {
		t.Errorf("ItemName = %q, want %q", record.ItemName, "bananas")
	}
	if record.Category != "Produce" {
		t.Errorf("Category = %q, want %q", record.Category, "Produce")
	}
	if record.Price == nil || *record.Price != 3.49 {
		t.Errorf("Price = %v, want 3.49", record.Price)
	}
}

func TestPurchaseRecordValidate(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	negative := -1.0
	valid := 2.99

	tests := []struct {
		name    string
		record  PurchaseRecord
		wantErr bool
	}{
		{
			name:    "valid record",
			record:  PurchaseRecord{ItemName: "milk", Category: "Dairy", Price: &valid, Date: date},
			wantErr: false,
		},
		{
			name:    "valid without price",
			record:  PurchaseRecord{ItemName: "milk", Date: date},
			wantErr: false,
		},
		{
			name:    "missing item name",
			record:  PurchaseRecord{Date: date},
			wantErr: true,
		},
		{
			name:    "unnormalized item name",
			record:  PurchaseRecord{ItemName: "Milk", Date: date},
			wantErr: true,
		},
		{
			name:    "missing date",
			record:  PurchaseRecord{ItemName: "milk"},
			wantErr: true,
		},
		{
			name:    "negative price",
			record:  PurchaseRecord{ItemName: "milk", Price: &negative, Date: date},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTripKeyBucketsByCalendarDate(t *testing.T) {
	morning := PurchaseRecord{ItemName: "milk", Date: time.Date(2026, 3, 14, 8, 15, 0, 0, time.UTC)}
	evening := PurchaseRecord{ItemName: "bread", Date: time.Date(2026, 3, 14, 19, 45, 0, 0, time.UTC)}
	nextDay := PurchaseRecord{ItemName: "eggs", Date: time.Date(2026, 3, 15, 8, 15, 0, 0, time.UTC)}

	if morning.TripKey() != evening.TripKey() {
		t.Errorf("same-day purchases got different trip keys: %q vs %q", morning.TripKey(), evening.TripKey())
	}
	if morning.TripKey() == nextDay.TripKey() {
		t.Errorf("different-day purchases share trip key %q", morning.TripKey())
	}
	if morning.TripKey() != "2026-03-14" {
		t.Errorf("TripKey() = %q, want %q", morning.TripKey(), "2026-03-14")
	}
}
