package usecase

import (
	"fmt"
	"sort"

	"github.com/shopsense/backend/internal/domain"
)

// Price position thresholds relative to the category peer average.
const (
	budgetPriceFactor  = 0.8
	premiumPriceFactor = 1.2
)

// StockStatusFor classifies a product's stock level. Tiers are evaluated
// in order and the first match wins; more stock can never yield a worse
// tier.
func StockStatusFor(p *domain.Product) domain.StockStatus {
	switch {
	case p.Stock <= 0:
		return domain.StockStatus{
			Status:  domain.TierOutOfStock,
			Message: "Currently out of stock",
			Urgency: "Contact us for restock information",
		}
	case p.Stock <= 5:
		return domain.StockStatus{
			Status:  domain.TierLowStock,
			Message: fmt.Sprintf("Only %d units remaining", p.Stock),
			Urgency: "Limited availability",
		}
	case p.Stock <= 10:
		return domain.StockStatus{
			Status:  domain.TierModerateStock,
			Message: fmt.Sprintf("%d units available", p.Stock),
		}
	default:
		return domain.StockStatus{
			Status:  domain.TierInStock,
			Message: "In stock and ready to ship",
		}
	}
}

// AnalyzePrice positions a product's price against its category peers.
// Returns nil when the category has no peers: price comparison is then
// unavailable rather than an error.
func AnalyzePrice(p *domain.Product, peers []domain.Product) *domain.PriceAnalysis {
	if len(peers) == 0 {
		return nil
	}

	prices := make([]float64, 0, len(peers))
	for _, peer := range peers {
		prices = append(prices, peer.Price)
	}
	sort.Float64s(prices)

	var sum float64
	for _, price := range prices {
		sum += price
	}
	avg := sum / float64(len(prices))
	median := prices[len(prices)/2]

	position := "average"
	if p.Price < avg*budgetPriceFactor {
		position = "budget-friendly"
	} else if p.Price > avg*premiumPriceFactor {
		position = "premium"
	}

	return &domain.PriceAnalysis{
		Position:    position,
		VsAverage:   (p.Price - avg) / avg * 100,
		VsMedian:    (p.Price - median) / median * 100,
		CategoryMin: prices[0],
		CategoryMax: prices[len(prices)-1],
		CategoryAvg: avg,
	}
}

// ReviewSummaryFor maps a rating and review count to the qualitative tier
// shown alongside the numeric rating.
func ReviewSummaryFor(p *domain.Product) domain.ReviewSummary {
	summary := domain.ReviewSummary{
		Rating:       p.Rating,
		TotalReviews: p.Reviews,
	}

	switch {
	case p.Rating == 0 || p.Reviews == 0:
		summary.Summary = "No reviews yet"
	case p.Rating >= 4.5:
		summary.Summary = fmt.Sprintf("Excellent (%d reviews)", p.Reviews)
	case p.Rating >= 4.0:
		summary.Summary = fmt.Sprintf("Very Good (%d reviews)", p.Reviews)
	case p.Rating >= 3.5:
		summary.Summary = fmt.Sprintf("Good (%d reviews)", p.Reviews)
	case p.Rating >= 3.0:
		summary.Summary = fmt.Sprintf("Fair (%d reviews)", p.Reviews)
	default:
		summary.Summary = fmt.Sprintf("Below Average (%d reviews)", p.Reviews)
	}

	return summary
}
