package usecase

import (
	"testing"
)

func TestExtractCategory(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		want  string
	}{
		{"direct category", "show me laptops", "laptop"},
		{"synonym phone", "i need a new phone", "smartphone"},
		{"synonym notebook", "lightweight notebook for travel", "laptop"},
		{"synonym earbuds", "wireless earbuds under 200", "headphone"},
		{"synonym console", "gaming console deals", "gaming"},
		{"accessory keyword", "mechanical keyboard", "accessories"},
		{"no category", "what do you recommend", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractCategory(tc.query); got != tc.want {
				t.Errorf("ExtractCategory(%q) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestExtractBrand(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		want  string
	}{
		{"known brand", "tell me about the dell laptop", "dell"},
		{"first brand wins", "apple or samsung phones", "apple"},
		{"no brand", "cheap laptops", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractBrand(tc.query); got != tc.want {
				t.Errorf("ExtractBrand(%q) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestExtractProductID(t *testing.T) {
	t.Run("finds id token", func(t *testing.T) {
		if got := ExtractProductID("i want p004 please"); got != "p004" {
			t.Errorf("got %q, want p004", got)
		}
	})

	t.Run("ignores non-id digits", func(t *testing.T) {
		if got := ExtractProductID("laptops under 1500"); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}

func TestExtractNameTokens(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		want  string
	}{
		{"strips phrasing words", "tell me more about the dell laptop", "dell laptop"},
		{"keeps product words", "dell xps 15", "dell xps 15"},
		{"all stop words", "tell me more details", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractNameTokens(tc.query); got != tc.want {
				t.Errorf("ExtractNameTokens(%q) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestExtractEntities(t *testing.T) {
	entities := ExtractEntities("tell me about the dell laptop")

	if entities.Category != "laptop" {
		t.Errorf("Category = %q, want laptop", entities.Category)
	}
	if entities.Brand != "dell" {
		t.Errorf("Brand = %q, want dell", entities.Brand)
	}
	if entities.ProductID != "" {
		t.Errorf("ProductID = %q, want empty", entities.ProductID)
	}
	if entities.NameTokens != "dell laptop" {
		t.Errorf("NameTokens = %q, want %q", entities.NameTokens, "dell laptop")
	}
}
