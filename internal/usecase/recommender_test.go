package usecase

import (
	"testing"

	"github.com/shopsense/backend/internal/domain"
)

func newTestRecommender() *Recommender {
	return NewRecommender(&stubCatalog{products: testProducts()}, false)
}

func TestRecommend(t *testing.T) {
	r := newTestRecommender()

	t.Run("nil profile falls back to popular", func(t *testing.T) {
		recs := r.Recommend(nil, 4)
		if len(recs) == 0 {
			t.Fatal("expected popular fallback recommendations")
		}
		for i := 1; i < len(recs); i++ {
			if recs[i-1].Product.Reviews < recs[i].Product.Reviews {
				t.Error("popular fallback must be sorted by descending review count")
			}
		}
	})

	t.Run("candidates come from top categories or preferred brands", func(t *testing.T) {
		recs := r.Recommend(testProfile(), 10)
		if len(recs) == 0 {
			t.Fatal("expected personalized recommendations")
		}
		for _, rec := range recs {
			inCategory := rec.Product.Category == "laptop" ||
				rec.Product.Category == "accessories" ||
				rec.Product.Category == "smartphone"
			if !inCategory && rec.Product.Brand != "Dell" {
				t.Errorf("unexpected candidate %s outside profile interests", rec.Product.ID)
			}
			if rec.Product.Stock <= 0 {
				t.Errorf("out-of-stock product %s recommended", rec.Product.ID)
			}
		}
	})

	t.Run("results sorted by descending score", func(t *testing.T) {
		recs := r.Recommend(testProfile(), 10)
		for i := 1; i < len(recs); i++ {
			if recs[i-1].Score < recs[i].Score {
				t.Error("recommendations must be sorted by descending score")
			}
		}
	})

	t.Run("limit is respected", func(t *testing.T) {
		recs := r.Recommend(testProfile(), 2)
		if len(recs) > 2 {
			t.Errorf("got %d recommendations, want at most 2", len(recs))
		}
	})

	t.Run("every recommendation carries reasons", func(t *testing.T) {
		for _, rec := range r.Recommend(testProfile(), 10) {
			if len(rec.Reasons) == 0 {
				t.Errorf("recommendation %s has no reasons", rec.Product.ID)
			}
		}
	})
}

func TestScore(t *testing.T) {
	r := newTestRecommender()
	profile := testProfile()

	t.Run("higher rating scores higher, all else equal", func(t *testing.T) {
		low := domain.Product{ID: "X1", Category: "laptop", Brand: "Dell", Price: 500, Rating: 3.0}
		high := low
		high.ID = "X2"
		high.Rating = 4.8

		lowScore, _ := r.Score(&low, profile)
		highScore, _ := r.Score(&high, profile)
		if highScore <= lowScore {
			t.Errorf("rating 4.8 scored %f, rating 3.0 scored %f", highScore, lowScore)
		}
	})

	t.Run("purchase penalty demotes owned products", func(t *testing.T) {
		owned := domain.Product{ID: "P006", Category: "accessories", Price: 99, Rating: 4.8}
		fresh := owned
		fresh.ID = "P999"

		ownedScore, _ := r.Score(&owned, profile)
		freshScore, _ := r.Score(&fresh, profile)
		if freshScore-ownedScore != 50 {
			t.Errorf("purchase penalty delta = %f, want 50", freshScore-ownedScore)
		}
	})

	t.Run("preferred brand adds score and reason", func(t *testing.T) {
		p := domain.Product{ID: "X3", Brand: "Dell", Category: "laptop", Price: 500, Rating: 4.0}
		_, reasons := r.Score(&p, profile)

		found := false
		for _, reason := range reasons {
			if reason == "You prefer Dell products" {
				found = true
			}
		}
		if !found {
			t.Errorf("reasons = %v, want brand preference reason", reasons)
		}
	})

	t.Run("anonymous scoring still yields a reason", func(t *testing.T) {
		p := domain.Product{ID: "X4", Brand: "Acme", Category: "camera", Price: 500, Rating: 3.0}
		score, reasons := r.Score(&p, nil)
		if score != 15 {
			t.Errorf("score = %f, want 15 (rating only)", score)
		}
		if len(reasons) != 1 || reasons[0] != "Popular choice" {
			t.Errorf("reasons = %v, want [Popular choice]", reasons)
		}
	})
}

func TestPopular(t *testing.T) {
	r := newTestRecommender()

	t.Run("excludes out-of-stock products", func(t *testing.T) {
		for _, rec := range r.Popular(10) {
			if rec.Product.Stock <= 0 {
				t.Errorf("out-of-stock product %s in popular list", rec.Product.ID)
			}
		}
	})

	t.Run("ranked by review count", func(t *testing.T) {
		popular := r.Popular(10)
		if len(popular) < 2 {
			t.Fatal("expected at least two popular products")
		}
		if popular[0].Product.ID != "P006" {
			t.Errorf("most reviewed = %s, want P006", popular[0].Product.ID)
		}
	})
}
