package domain

import (
	"sort"
	"time"
)

// PriceRange is an inclusive price band a user prefers to shop in.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Preferences holds a user's declared shopping preferences.
type Preferences struct {
	Categories []string   `json:"categories"`
	Brands     []string   `json:"brands"`
	Features   []string   `json:"features"`
	PriceRange PriceRange `json:"priceRange"`
}

// Purchase references a past order line by product id.
type Purchase struct {
	ProductID string    `json:"productId"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ViewEvent records a single product view.
type ViewEvent struct {
	ProductID string    `json:"productId"`
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category,omitempty"`
}

// Behavior holds observed user activity used for personalization.
type Behavior struct {
	CategoryViews  map[string]int `json:"categoryViews"`
	Purchases      []Purchase     `json:"purchases"`
	RecentlyViewed []ViewEvent    `json:"recentlyViewed"`
	SearchHistory  []string       `json:"searchHistory,omitempty"`
}

// UserProfile is everything known about a user for personalization.
// The recently-viewed list is the only part ever mutated, and that
// mutation happens in the profile store, never in the engine.
type UserProfile struct {
	UserID      string      `json:"userId"`
	Preferences Preferences `json:"preferences"`
	Behavior    Behavior    `json:"behavior"`
}

// TopCategories returns the user's n most-viewed categories, most viewed
// first. Ties preserve no particular order beyond deterministic sorting
// by view count then category name.
func (u *UserProfile) TopCategories(n int) []string {
	type categoryCount struct {
		category string
		count    int
	}

	counts := make([]categoryCount, 0, len(u.Behavior.CategoryViews))
	for category, count := range u.Behavior.CategoryViews {
		counts = append(counts, categoryCount{category, count})
	}

	// Count descending, name ascending so ties are deterministic
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].category < counts[j].category
	})

	if n > len(counts) {
		n = len(counts)
	}

	top := make([]string, 0, n)
	for _, c := range counts[:n] {
		top = append(top, c.category)
	}
	return top
}

// HasPurchased reports whether the user already bought the given product.
func (u *UserProfile) HasPurchased(productID string) bool {
	for _, p := range u.Behavior.Purchases {
		if p.ProductID == productID {
			return true
		}
	}
	return false
}
