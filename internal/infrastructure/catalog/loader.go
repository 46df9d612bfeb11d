package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopsense/backend/internal/domain"
)

// Load reads and validates the product catalog from a JSON document.
// The catalog is loaded once at startup; a validation failure here is
// fatal to the process (handled by the caller).
func Load(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrCatalogLoad, path, err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrCatalogLoad, path, err)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("%w: %s contains no products", domain.ErrCatalogLoad, path)
	}

	if issues := Validate(products); len(issues) > 0 {
		return nil, fmt.Errorf("%w: %d validation issues, first: %s",
			domain.ErrCatalogLoad, len(issues), issues[0])
	}

	return products, nil
}

// Validate checks catalog records for contract violations and returns a
// human-readable issue per bad record. An empty slice means the catalog
// is well-formed.
func Validate(products []domain.Product) []string {
	var issues []string

	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if p.ID == "" || p.Name == "" || p.Brand == "" {
			issues = append(issues, fmt.Sprintf("product missing required fields: %s", orUnknown(p.ID)))
			continue
		}
		if seen[p.ID] {
			issues = append(issues, fmt.Sprintf("duplicate product id: %s", p.ID))
		}
		seen[p.ID] = true

		if p.Price <= 0 {
			issues = append(issues, fmt.Sprintf("invalid price for product: %s", p.Name))
		}
		if p.Stock < 0 {
			issues = append(issues, fmt.Sprintf("invalid stock quantity for product: %s", p.Name))
		}
		if p.Rating < 0 || p.Rating > 5 {
			issues = append(issues, fmt.Sprintf("invalid rating for product: %s", p.Name))
		}
	}

	return issues
}

func orUnknown(id string) string {
	if id == "" {
		return "unknown"
	}
	return id
}
