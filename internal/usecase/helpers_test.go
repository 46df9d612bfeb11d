package usecase

import (
	"github.com/shopsense/backend/internal/domain"
)

// stubCatalog is an in-memory CatalogRepository for tests.
type stubCatalog struct {
	products []domain.Product
}

func (s *stubCatalog) All() []domain.Product {
	return s.products
}

func (s *stubCatalog) ByID(id string) (*domain.Product, bool) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], true
		}
	}
	return nil, false
}

func (s *stubCatalog) PeersInCategory(p *domain.Product) []domain.Product {
	var peers []domain.Product
	for _, other := range s.products {
		if other.Category == p.Category && other.ID != p.ID {
			peers = append(peers, other)
		}
	}
	return peers
}

func (s *stubCatalog) Categories() []string {
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

func (s *stubCatalog) Brands() []string {
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

func (s *stubCatalog) Stats() domain.InventoryStats {
	stats := domain.InventoryStats{
		Total:          len(s.products),
		CategoryCounts: make(map[string]int),
		BrandCounts:    make(map[string]int),
	}
	for _, p := range s.products {
		if p.Stock > 0 {
			stats.InStock++
		} else {
			stats.OutOfStock++
		}
		stats.CategoryCounts[p.Category]++
		stats.BrandCounts[p.Brand]++
	}
	return stats
}

// testProducts is a small catalog spanning the categories and stock tiers
// the engine's handlers branch on.
func testProducts() []domain.Product {
	return []domain.Product{
		{
			ID: "P001", Name: "XPS 15 Laptop", Brand: "Dell", Category: "laptop",
			Subcategory: "ultrabook", Price: 1599, OriginalPrice: 1799, Discount: 11,
			Stock: 6, Rating: 4.5, Reviews: 912,
			Description: "Premium ultrabook with OLED display",
			Features:    []string{"OLED display", "backlit keyboard"},
			UseCases:    []string{"productivity", "travel"},
			Tags:        []string{"premium", "windows"},
		},
		{
			ID: "P002", Name: "MacBook Air M3", Brand: "Apple", Category: "laptop",
			Subcategory: "ultrabook", Price: 1099, Stock: 15, Rating: 4.8, Reviews: 2034,
			Description: "Fanless laptop with all-day battery",
			Features:    []string{"Retina display", "backlit keyboard"},
			UseCases:    []string{"productivity", "everyday"},
			Tags:        []string{"premium", "macos"},
			IsNew:       true,
		},
		{
			ID: "P003", Name: "Spectre x360", Brand: "HP", Category: "laptop",
			Subcategory: "convertible", Price: 1349, Stock: 0, Rating: 4.3, Reviews: 428,
			Description: "Convertible laptop with touch display",
			Features:    []string{"OLED display", "touchscreen"},
			UseCases:    []string{"productivity"},
			Tags:        []string{"premium", "windows"},
		},
		{
			ID: "P004", Name: "iPhone 15 Pro", Brand: "Apple", Category: "smartphone",
			Price: 999, Stock: 12, Rating: 4.7, Reviews: 1843,
			Description: "Titanium flagship smartphone",
			Features:    []string{"5G", "OLED display"},
			UseCases:    []string{"photography", "everyday"},
			Tags:        []string{"premium", "ios"},
		},
		{
			ID: "P005", Name: "Galaxy S24", Brand: "Samsung", Category: "smartphone",
			Price: 799, Stock: 3, Rating: 4.6, Reviews: 1522,
			Description: "Android flagship with great camera",
			Features:    []string{"5G", "AMOLED display"},
			UseCases:    []string{"photography"},
			Tags:        []string{"premium", "android"},
		},
		{
			ID: "P006", Name: "MX Master Mouse", Brand: "Microsoft", Category: "accessories",
			Subcategory: "mouse", Price: 99, Stock: 40, Rating: 4.8, Reviews: 2250,
			Description: "Ergonomic wireless mouse",
			Features:    []string{"wireless", "ergonomic"},
			UseCases:    []string{"productivity", "travel"},
			Tags:        []string{"accessory", "wireless"},
		},
	}
}

func newTestEngine() *Engine {
	catalog := &stubCatalog{products: testProducts()}
	matcher := NewMatcher(catalog, MatcherConfig{})
	profiles := &stubProfiles{profiles: map[string]*domain.UserProfile{
		"user_001": testProfile(),
	}}
	return NewEngine(catalog, matcher, profiles, nil, EngineConfig{})
}

// stubProfiles is an in-memory ProfileRepository for tests.
type stubProfiles struct {
	profiles map[string]*domain.UserProfile
	views    []string
}

func (s *stubProfiles) GetProfile(userID string) (*domain.UserProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *stubProfiles) RecordView(userID, productID string) error {
	if _, ok := s.profiles[userID]; !ok {
		return domain.ErrProfileNotFound
	}
	s.views = append(s.views, userID+":"+productID)
	return nil
}

func testProfile() *domain.UserProfile {
	return &domain.UserProfile{
		UserID: "user_001",
		Preferences: domain.Preferences{
			Categories: []string{"laptop"},
			Brands:     []string{"Dell"},
			Features:   []string{"OLED display"},
			PriceRange: domain.PriceRange{Min: 50, Max: 2000},
		},
		Behavior: domain.Behavior{
			CategoryViews: map[string]int{"laptop": 12, "accessories": 4, "smartphone": 1},
			Purchases:     []domain.Purchase{{ProductID: "P006"}},
		},
	}
}
