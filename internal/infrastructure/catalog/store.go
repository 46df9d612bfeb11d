package catalog

import (
	"github.com/shopsense/backend/internal/domain"
)

// Store is the in-memory product catalog. It is built once at startup and
// never written afterwards, so concurrent readers need no locking.
type Store struct {
	products []domain.Product
	byID     map[string]int
}

// NewStore builds a catalog store over the given products. The slice is
// owned by the store after this call; callers must not mutate it.
func NewStore(products []domain.Product) *Store {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &Store{products: products, byID: byID}
}

// All returns every product in catalog order.
func (s *Store) All() []domain.Product {
	return s.products
}

// ByID looks up a product by its catalog id.
func (s *Store) ByID(id string) (*domain.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.products[i], true
}

// PeersInCategory returns products in the same category as p, excluding p.
func (s *Store) PeersInCategory(p *domain.Product) []domain.Product {
	var peers []domain.Product
	for _, other := range s.products {
		if other.Category == p.Category && other.ID != p.ID {
			peers = append(peers, other)
		}
	}
	return peers
}

// Categories returns distinct category names in first-seen catalog order.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// Brands returns distinct brand names in first-seen catalog order.
func (s *Store) Brands() []string {
	seen := make(map[string]bool)
	var brands []string
	for _, p := range s.products {
		if !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	return brands
}

// Stats computes the admin-facing inventory aggregate.
func (s *Store) Stats() domain.InventoryStats {
	stats := domain.InventoryStats{
		Total:          len(s.products),
		CategoryCounts: make(map[string]int),
		BrandCounts:    make(map[string]int),
	}

	var priceSum float64
	for _, p := range s.products {
		if p.Stock > 0 {
			stats.InStock++
			if p.Stock <= 5 {
				stats.LowStock++
			}
		} else {
			stats.OutOfStock++
		}

		stats.TotalValue += p.Price * float64(p.Stock)
		priceSum += p.Price
		stats.CategoryCounts[p.Category]++
		stats.BrandCounts[p.Brand]++
	}

	if stats.Total > 0 {
		stats.StockRate = float64(stats.InStock) / float64(stats.Total) * 100
		stats.AveragePrice = priceSum / float64(stats.Total)
	}

	stats.TopCategory = topKey(stats.CategoryCounts, s.Categories())
	stats.TopBrand = topKey(stats.BrandCounts, s.Brands())

	return stats
}

// topKey returns the key with the highest count, breaking ties by the
// given catalog order so the result is deterministic.
func topKey(counts map[string]int, order []string) string {
	best := ""
	bestCount := -1
	for _, key := range order {
		if counts[key] > bestCount {
			best = key
			bestCount = counts[key]
		}
	}
	return best
}
