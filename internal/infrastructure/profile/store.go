package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shopsense/backend/internal/domain"
)

// maxRecentlyViewed caps the recently-viewed list per profile.
const maxRecentlyViewed = 10

// Store holds user profiles loaded from a JSON document. Profiles are
// read-mostly; the only write path is RecordView, guarded by the mutex.
type Store struct {
	mutex    sync.RWMutex
	profiles map[string]*domain.UserProfile
	catalog  domain.CatalogRepository
}

// NewStore loads user profiles from a JSON array document. The catalog is
// used to resolve a viewed product's category when recording views.
func NewStore(path string, catalog domain.CatalogRepository) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles %s: %w", path, err)
	}

	var profiles []domain.UserProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parsing profiles %s: %w", path, err)
	}

	byID := make(map[string]*domain.UserProfile, len(profiles))
	for i := range profiles {
		byID[profiles[i].UserID] = &profiles[i]
	}

	return &Store{profiles: byID, catalog: catalog}, nil
}

// NewStoreFromProfiles builds a store from in-memory profiles, used in tests.
func NewStoreFromProfiles(profiles []domain.UserProfile, catalog domain.CatalogRepository) *Store {
	byID := make(map[string]*domain.UserProfile, len(profiles))
	for i := range profiles {
		byID[profiles[i].UserID] = &profiles[i]
	}
	return &Store{profiles: byID, catalog: catalog}
}

// GetProfile returns a copy of the profile for the given user id, or
// ErrProfileNotFound. The copy keeps callers from observing later
// RecordView writes mid-request.
func (s *Store) GetProfile(userID string) (*domain.UserProfile, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}

	copied := *p
	copied.Behavior.RecentlyViewed = append([]domain.ViewEvent(nil), p.Behavior.RecentlyViewed...)
	return &copied, nil
}

// RecordView prepends a view event to the user's recently-viewed list,
// newest first, capped at maxRecentlyViewed entries.
func (s *Store) RecordView(userID, productID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}

	event := domain.ViewEvent{
		ProductID: productID,
		Timestamp: time.Now().UTC(),
	}
	if s.catalog != nil {
		if product, found := s.catalog.ByID(productID); found {
			event.Category = product.Category
		}
	}

	viewed := append([]domain.ViewEvent{event}, p.Behavior.RecentlyViewed...)
	if len(viewed) > maxRecentlyViewed {
		viewed = viewed[:maxRecentlyViewed]
	}
	p.Behavior.RecentlyViewed = viewed

	return nil
}
