package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsense/backend/internal/domain"
	"github.com/shopsense/backend/internal/infrastructure/catalog"
)

func testCatalog() *catalog.Store {
	return catalog.NewStore([]domain.Product{
		{ID: "P001", Name: "XPS 15", Brand: "Dell", Category: "laptop", Price: 1599, Stock: 6},
		{ID: "P002", Name: "iPhone 15", Brand: "Apple", Category: "smartphone", Price: 999, Stock: 12},
	})
}

func profileFixture() []domain.UserProfile {
	return []domain.UserProfile{
		{
			UserID: "user_001",
			Preferences: domain.Preferences{
				Categories: []string{"laptop"},
				PriceRange: domain.PriceRange{Min: 100, Max: 2000},
			},
			Behavior: domain.Behavior{
				CategoryViews: map[string]int{"laptop": 5},
			},
		},
	}
}

func TestNewStore(t *testing.T) {
	t.Run("loads profiles from json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		content := `[{"userId": "user_001", "preferences": {"categories": ["laptop"]}, "behavior": {"categoryViews": {"laptop": 3}}}]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		store, err := NewStore(path, testCatalog())
		require.NoError(t, err)

		profile, err := store.GetProfile("user_001")
		require.NoError(t, err)
		assert.Equal(t, 3, profile.Behavior.CategoryViews["laptop"])
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := NewStore("no/such/users.json", testCatalog())
		assert.Error(t, err)
	})
}

func TestGetProfile(t *testing.T) {
	store := NewStoreFromProfiles(profileFixture(), testCatalog())

	t.Run("unknown user", func(t *testing.T) {
		_, err := store.GetProfile("nobody")
		assert.True(t, errors.Is(err, domain.ErrProfileNotFound))
	})

	t.Run("returned profile is a copy", func(t *testing.T) {
		first, err := store.GetProfile("user_001")
		require.NoError(t, err)

		first.Behavior.RecentlyViewed = append(first.Behavior.RecentlyViewed, domain.ViewEvent{ProductID: "P001"})

		second, err := store.GetProfile("user_001")
		require.NoError(t, err)
		assert.Empty(t, second.Behavior.RecentlyViewed, "mutating a returned profile must not leak into the store")
	})
}

func TestRecordView(t *testing.T) {
	t.Run("prepends newest first with category resolved", func(t *testing.T) {
		store := NewStoreFromProfiles(profileFixture(), testCatalog())

		require.NoError(t, store.RecordView("user_001", "P001"))
		require.NoError(t, store.RecordView("user_001", "P002"))

		profile, err := store.GetProfile("user_001")
		require.NoError(t, err)
		require.Len(t, profile.Behavior.RecentlyViewed, 2)
		assert.Equal(t, "P002", profile.Behavior.RecentlyViewed[0].ProductID)
		assert.Equal(t, "smartphone", profile.Behavior.RecentlyViewed[0].Category)
		assert.Equal(t, "P001", profile.Behavior.RecentlyViewed[1].ProductID)
	})

	t.Run("caps the recently viewed list", func(t *testing.T) {
		store := NewStoreFromProfiles(profileFixture(), testCatalog())

		for i := 0; i < maxRecentlyViewed+5; i++ {
			require.NoError(t, store.RecordView("user_001", "P001"))
		}

		profile, err := store.GetProfile("user_001")
		require.NoError(t, err)
		assert.Len(t, profile.Behavior.RecentlyViewed, maxRecentlyViewed)
	})

	t.Run("unknown user", func(t *testing.T) {
		store := NewStoreFromProfiles(profileFixture(), testCatalog())
		err := store.RecordView("nobody", "P001")
		assert.True(t, errors.Is(err, domain.ErrProfileNotFound))
	})

	t.Run("unknown product still records the view", func(t *testing.T) {
		store := NewStoreFromProfiles(profileFixture(), testCatalog())
		require.NoError(t, store.RecordView("user_001", "GHOST"))

		profile, err := store.GetProfile("user_001")
		require.NoError(t, err)
		require.Len(t, profile.Behavior.RecentlyViewed, 1)
		assert.Empty(t, profile.Behavior.RecentlyViewed[0].Category)
	})
}
