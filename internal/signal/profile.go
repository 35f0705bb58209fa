package signal

import (
	"time"

	"github.com/jpaulson/cartful/internal/model"
)

// itemProfile aggregates everything the signals need to know about one
// item's purchase record set.
type itemProfile struct {
	lastPurchased time.Time
	category      string
	name          string // normalized
	priceSum      float64
	priceCount    int
	count         int
}

// estimatedPrice is the arithmetic mean of all recorded prices, or nil
// when no purchase ever captured a price.
func (p *itemProfile) estimatedPrice() *float64 {
	if p.priceCount == 0 {
		return nil
	}
	mean := p.priceSum / float64(p.priceCount)
	return &mean
}

// buildProfiles folds the history into per-item profiles. The category is
// taken from the most recent record for the item.
func buildProfiles(history []model.PurchaseRecord) map[string]*itemProfile {
	profiles := make(map[string]*itemProfile)

	for _, record := range history {
		name := model.NormalizeItemName(record.ItemName)
		if name == "" {
			continue
		}

		profile, ok := profiles[name]
		if !ok {
			profile = &itemProfile{name: name}
			profiles[name] = profile
		}

		profile.count++
		if record.Price != nil {
			profile.priceSum += *record.Price
			profile.priceCount++
		}
		if !record.Date.Before(profile.lastPurchased) {
			profile.lastPurchased = record.Date
			profile.category = record.Category
		}
	}

	return profiles
}
