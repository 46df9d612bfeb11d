package usecase

import (
	"regexp"
	"strings"

	"github.com/shopsense/backend/internal/domain"
)

// categoryRule maps a canonical category to its query synonyms. The slice
// order matters: category names are not mutually exclusive in free text,
// and the first rule with a keyword hit wins.
type categoryRule struct {
	category string
	keywords []string
}

var categoryRules = []categoryRule{
	{"smartphone", []string{"smartphone", "phone", "mobile"}},
	{"laptop", []string{"laptop", "notebook", "computer"}},
	{"tablet", []string{"tablet", "ipad"}},
	{"gaming", []string{"gaming", "console", "game"}},
	{"headphone", []string{"headphone", "headset", "earbuds"}},
	{"watch", []string{"watch", "smartwatch"}},
	{"camera", []string{"camera", "photography"}},
	{"accessories", []string{"accessory", "accessories", "keyboard", "mouse"}},
}

// knownBrands is the enumerated brand list checked as query substrings,
// in fixed order.
var knownBrands = []string{
	"apple", "dell", "hp", "samsung", "sony", "asus", "lenovo", "microsoft",
	"nintendo", "google", "meta", "valve", "canon", "bose", "corsair",
	"framework", "garmin", "beats",
}

// productIDPattern matches catalog id shapes: letter P followed by exactly
// three digits.
var productIDPattern = regexp.MustCompile(`p\d{3}`)

// nameStopWords are query-phrasing words removed when extracting residual
// product-name tokens.
var nameStopWords = map[string]bool{
	"tell": true, "me": true, "about": true, "the": true, "more": true,
	"details": true, "information": true, "specs": true, "show": true,
	"select": true, "choose": true, "want": true,
}

// ExtractEntities pulls category, brand, product id and residual name
// tokens out of a normalized query. It never fails; absent entities are
// zero values.
func ExtractEntities(query string) domain.Entities {
	return domain.Entities{
		Category:   ExtractCategory(query),
		Brand:      ExtractBrand(query),
		ProductID:  ExtractProductID(query),
		NameTokens: ExtractNameTokens(query),
	}
}

// ExtractCategory returns the first canonical category with a synonym
// substring match in the query, or "".
func ExtractCategory(query string) string {
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(query, keyword) {
				return rule.category
			}
		}
	}
	return ""
}

// ExtractBrand returns the first known brand appearing as a substring of
// the query, or "".
func ExtractBrand(query string) string {
	for _, brand := range knownBrands {
		if strings.Contains(query, brand) {
			return brand
		}
	}
	return ""
}

// ExtractProductID returns the first catalog-id-shaped token in the query,
// or "".
func ExtractProductID(query string) string {
	return productIDPattern.FindString(query)
}

// ExtractNameTokens strips stop words from the query and rejoins the rest
// with single spaces. The result may be empty.
func ExtractNameTokens(query string) string {
	words := strings.Fields(query)
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if !nameStopWords[strings.ToLower(word)] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}
