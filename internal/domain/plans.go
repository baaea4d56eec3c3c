package domain

// DefaultEmail is used when the checkout request does not carry one.
const DefaultEmail = "user@tagihin.local"

// Item represents a purchasable subscription item.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`      // IDR
	PeriodDays int    `json:"periodDays"` // subscription length
}

// AvailableItems returns all purchasable items.
func AvailableItems() []Item {
	return []Item{
		{
			ID:         "premium-1month",
			Name:       "Premium Subscription Tagihin (30 hari)",
			Price:      49000,
			PeriodDays: 30,
		},
	}
}

// GetItem returns the item for a given ID, falling back to the default
// 30-day premium item. The catalog name is used for the Snap line item even
// when the client supplied its own itemId and amount.
func GetItem(id string) Item {
	for _, it := range AvailableItems() {
		if it.ID == id {
			return it
		}
	}
	return AvailableItems()[0]
}
