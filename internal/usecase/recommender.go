package usecase

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/shopsense/backend/internal/domain"
)

// Recommendation score weights. Each term is additive; the exact values
// are part of the scorer's contract.
const (
	scorePreferredCategory = 30.0
	scorePreferredBrand    = 25.0
	scorePriceInRange      = 20.0
	scorePerFeatureMatch   = 15.0
	scorePerCategoryView   = 0.5
	scoreNewArrival        = 10.0
	scoreAlreadyPurchased  = -50.0
	scorePerRatingPoint    = 5.0
)

// topCategoryCount is how many most-viewed categories feed the candidate
// filter.
const topCategoryCount = 3

// highRatingThreshold marks products worth calling out as highly rated.
const highRatingThreshold = 4.5

// Recommender ranks catalog products for a user. All scoring is a pure
// function of (product, profile); the catalog is never mutated.
type Recommender struct {
	catalog            domain.CatalogRepository
	enableDebugLogging bool
}

// NewRecommender creates a recommender over the catalog.
func NewRecommender(catalog domain.CatalogRepository, enableDebugLogging bool) *Recommender {
	return &Recommender{catalog: catalog, enableDebugLogging: enableDebugLogging}
}

// Recommend returns up to limit products ranked by descending
// personalization score. Candidates are in-stock products in one of the
// user's top viewed categories or preferred brands, priced within the
// preferred range. Without a profile, or when no candidate qualifies, it
// falls back to the popular-products ranking.
func (r *Recommender) Recommend(profile *domain.UserProfile, limit int) []domain.Recommendation {
	if limit <= 0 {
		limit = 4
	}
	if profile == nil {
		return r.Popular(limit)
	}

	topCategories := profile.TopCategories(topCategoryCount)

	var candidates []domain.Recommendation
	for _, p := range r.catalog.All() {
		if !qualifies(&p, profile, topCategories) {
			continue
		}

		score, reasons := r.Score(&p, profile)
		candidates = append(candidates, domain.Recommendation{
			Product:     p,
			Score:       score,
			Reasons:     reasons,
			StockStatus: StockStatusFor(&p),
		})
	}

	if len(candidates) == 0 {
		if r.enableDebugLogging {
			log.Printf("[RECOMMEND] no personalized candidates for user %s, falling back to popular", profile.UserID)
		}
		return r.Popular(limit)
	}

	// Stable: equal scores keep catalog order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// qualifies applies the candidate filter: in stock, (top category OR
// preferred brand), and price inside the preferred range, bounds inclusive.
func qualifies(p *domain.Product, profile *domain.UserProfile, topCategories []string) bool {
	if !p.InStock() {
		return false
	}

	categoryLower := strings.ToLower(p.Category)
	matchesCategory := false
	for _, cat := range topCategories {
		if strings.Contains(categoryLower, strings.ToLower(cat)) {
			matchesCategory = true
			break
		}
	}

	matchesBrand := prefersBrand(profile, p.Brand)
	if !matchesCategory && !matchesBrand {
		return false
	}

	priceRange := profile.Preferences.PriceRange
	return p.Price >= priceRange.Min && p.Price <= priceRange.Max
}

// Score computes the additive personalization score and the human-readable
// reasons for the terms that fired. The purchase penalty demotes items the
// user already owns without excluding them.
func (r *Recommender) Score(p *domain.Product, profile *domain.UserProfile) (float64, []string) {
	var score float64
	var reasons []string

	if profile != nil {
		if containsFold(profile.Preferences.Categories, p.Category) {
			score += scorePreferredCategory
		}
		if prefersBrand(profile, p.Brand) {
			score += scorePreferredBrand
			reasons = append(reasons, fmt.Sprintf("You prefer %s products", p.Brand))
		}
		priceRange := profile.Preferences.PriceRange
		if p.Price >= priceRange.Min && p.Price <= priceRange.Max {
			score += scorePriceInRange
		}

		for _, feature := range p.Features {
			if containsFold(profile.Preferences.Features, feature) {
				score += scorePerFeatureMatch
			}
		}

		views := profile.Behavior.CategoryViews[p.Category]
		score += float64(views) * scorePerCategoryView
		if views > 0 {
			reasons = append(reasons, fmt.Sprintf("Based on your interest in %s", p.Category))
		}

		if profile.HasPurchased(p.ID) {
			score += scoreAlreadyPurchased
		}
	}

	if p.IsNew {
		score += scoreNewArrival
	}
	if p.Rating >= highRatingThreshold {
		reasons = append(reasons, "Highly rated by customers")
	}
	if p.Discount > 0 {
		score += p.Discount
		reasons = append(reasons, fmt.Sprintf("%.0f%% discount available", p.Discount))
	}
	score += p.Rating * scorePerRatingPoint

	if len(reasons) == 0 {
		reasons = []string{"Popular choice"}
	}
	return score, reasons
}

// Popular is the non-personalized fallback: in-stock products ranked by
// descending review count.
func (r *Recommender) Popular(limit int) []domain.Recommendation {
	if limit <= 0 {
		limit = 4
	}

	var popular []domain.Recommendation
	for _, p := range r.catalog.All() {
		if !p.InStock() {
			continue
		}
		score, reasons := r.Score(&p, nil)
		popular = append(popular, domain.Recommendation{
			Product:     p,
			Score:       score,
			Reasons:     reasons,
			StockStatus: StockStatusFor(&p),
		})
	}

	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].Product.Reviews > popular[j].Product.Reviews
	})

	if len(popular) > limit {
		popular = popular[:limit]
	}
	return popular
}

// prefersBrand checks the profile's preferred brands case-insensitively.
func prefersBrand(profile *domain.UserProfile, brand string) bool {
	return containsFold(profile.Preferences.Brands, brand)
}

// containsFold reports whether list contains s, ignoring case.
func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
