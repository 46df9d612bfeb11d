package domain

import (
	"context"
	"time"
)

// CatalogRepository provides read-only access to the loaded product
// catalog. Implementations are immutable after construction and safe for
// concurrent readers without locking.
type CatalogRepository interface {
	All() []Product
	ByID(id string) (*Product, bool)
	// PeersInCategory returns products sharing the given product's
	// category, excluding the product itself.
	PeersInCategory(p *Product) []Product
	// Categories and Brands return distinct values in catalog order.
	Categories() []string
	Brands() []string
	Stats() InventoryStats
}

// ProductIndex is the approximate-text search capability over the catalog.
// Results come back most-relevant first with scores normalized to [0,1].
type ProductIndex interface {
	Search(query string, limit int) []MatchResult
}

// ProfileRepository resolves user profiles and records view events.
// Recording a view is the only mutation in the system.
type ProfileRepository interface {
	GetProfile(userID string) (*UserProfile, error)
	RecordView(userID, productID string) error
}

// ReplyCache caches composed replies keyed by normalized query and user.
type ReplyCache interface {
	Get(ctx context.Context, key string) (*Reply, error)
	Set(ctx context.Context, key string, reply *Reply, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
