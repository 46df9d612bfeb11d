package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsense/backend/internal/domain"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads a valid catalog", func(t *testing.T) {
		path := writeCatalogFile(t, `[
			{"id": "P001", "name": "XPS 15", "brand": "Dell", "category": "laptop", "price": 1599, "stock": 6, "rating": 4.5}
		]`)

		products, err := Load(path)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "P001", products[0].ID)
		assert.Equal(t, 1599.0, products[0].Price)
	})

	t.Run("missing file wraps ErrCatalogLoad", func(t *testing.T) {
		_, err := Load("no/such/file.json")
		assert.True(t, errors.Is(err, domain.ErrCatalogLoad))
	})

	t.Run("malformed json wraps ErrCatalogLoad", func(t *testing.T) {
		path := writeCatalogFile(t, `{not json`)
		_, err := Load(path)
		assert.True(t, errors.Is(err, domain.ErrCatalogLoad))
	})

	t.Run("empty catalog is rejected", func(t *testing.T) {
		path := writeCatalogFile(t, `[]`)
		_, err := Load(path)
		assert.True(t, errors.Is(err, domain.ErrCatalogLoad))
	})

	t.Run("validation failure is fatal", func(t *testing.T) {
		path := writeCatalogFile(t, `[
			{"id": "P001", "name": "Free Thing", "brand": "Acme", "category": "misc", "price": 0, "stock": 1, "rating": 4}
		]`)
		_, err := Load(path)
		assert.True(t, errors.Is(err, domain.ErrCatalogLoad))
	})
}

func TestValidate(t *testing.T) {
	valid := domain.Product{ID: "P001", Name: "Thing", Brand: "Acme", Price: 10, Stock: 1, Rating: 4}

	t.Run("well-formed catalog has no issues", func(t *testing.T) {
		assert.Empty(t, Validate([]domain.Product{valid}))
	})

	t.Run("missing required fields", func(t *testing.T) {
		issues := Validate([]domain.Product{{Price: 10}})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "missing required fields")
	})

	t.Run("duplicate ids", func(t *testing.T) {
		issues := Validate([]domain.Product{valid, valid})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "duplicate product id")
	})

	t.Run("zero price is invalid", func(t *testing.T) {
		p := valid
		p.Price = 0
		issues := Validate([]domain.Product{p})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "invalid price")
	})

	t.Run("negative stock is invalid", func(t *testing.T) {
		p := valid
		p.Stock = -1
		issues := Validate([]domain.Product{p})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "invalid stock")
	})

	t.Run("rating out of range is invalid", func(t *testing.T) {
		p := valid
		p.Rating = 5.1
		issues := Validate([]domain.Product{p})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "invalid rating")
	})
}
