package usecase

import (
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/shopsense/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^a-z0-9\s]`)

// searchField assigns a relative weight to each searchable product field.
// Name is weighted highest: a name hit is the strongest relevance signal.
// These weights, the score threshold and the result shape are the matcher's
// contract; the token-similarity internals are not.
type searchField struct {
	name   string
	weight float64
}

var searchFields = []searchField{
	{"name", 0.6},
	{"brand", 0.3},
	{"category", 0.2},
	{"features", 0.4},
	{"description", 0.3},
	{"tags", 0.2},
}

// maxFieldWeight is the largest weight above (name), used to normalize
// per-field boosts.
const maxFieldWeight = 0.6

// Token similarity tiers
const (
	simExact       = 1.0
	simPrefix      = 0.9 // one token is a prefix of the other (plurals, partial terms)
	fuzzyMinLen    = 4   // tokens shorter than this never fuzzy-match
	fuzzyMaxDist   = 2   // maximum tolerated edit distance
)

// MatcherConfig holds configuration for the fuzzy product matcher.
type MatcherConfig struct {
	// ScoreThreshold is the maximum distance (1 - relevance) a result may
	// have. Defaults to 0.3, i.e. results below 0.7 relevance are dropped.
	ScoreThreshold     float64
	MaxResults         int
	EnableDebugLogging bool
}

// Matcher performs approximate-text search over the catalog. The index is
// built once at construction and never written afterwards, so Search is
// safe for concurrent callers.
type Matcher struct {
	docs               []indexedDoc
	scoreThreshold     float64
	maxResults         int
	enableDebugLogging bool
}

// indexedDoc holds a product's pre-tokenized searchable fields, parallel
// to searchFields.
type indexedDoc struct {
	product *domain.Product
	fields  [][]string
}

// NewMatcher builds a matcher over the catalog with the given configuration.
func NewMatcher(catalog domain.CatalogRepository, config MatcherConfig) *Matcher {
	threshold := config.ScoreThreshold
	if threshold <= 0 || threshold >= 1 {
		threshold = 0.3
	}

	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 8
	}

	products := catalog.All()
	docs := make([]indexedDoc, len(products))
	for i := range products {
		p := &products[i]
		docs[i] = indexedDoc{
			product: p,
			fields: [][]string{
				tokenizeText(p.Name),
				tokenizeText(p.Brand),
				tokenizeText(p.Category + " " + p.Subcategory),
				tokenizeList(p.Features),
				tokenizeText(p.Description),
				tokenizeList(p.Tags),
			},
		}
	}

	return &Matcher{
		docs:               docs,
		scoreThreshold:     threshold,
		maxResults:         maxResults,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search returns the most relevant products for a free-text query, best
// first, capped at limit (or the configured maximum when limit <= 0).
// Relevance is in [0,1] and results under the threshold are discarded;
// ties preserve catalog order.
func (m *Matcher) Search(query string, limit int) []domain.MatchResult {
	if limit <= 0 || limit > m.maxResults {
		limit = m.maxResults
	}

	queryTokens := tokenizeText(query)
	if len(queryTokens) == 0 {
		return nil
	}

	minRelevance := 1.0 - m.scoreThreshold

	var results []domain.MatchResult
	for _, doc := range m.docs {
		relevance, matchedFields := m.scoreDoc(queryTokens, doc)
		if relevance < minRelevance {
			continue
		}

		if m.enableDebugLogging {
			log.Printf("[MATCH] %s (%s) relevance=%.2f fields=%v",
				doc.product.Name, doc.product.ID, relevance, matchedFields)
		}

		results = append(results, domain.MatchResult{
			Product:        *doc.product,
			RelevanceScore: relevance,
			MatchedFields:  matchedFields,
			StockStatus:    StockStatusFor(doc.product),
		})
	}

	// Stable: equal relevance keeps catalog order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// scoreDoc computes a query's relevance against one indexed product.
// Each query token takes the best similarity it achieves across all
// fields, boosted by the field's weight; relevance is the mean over query
// tokens, so unmatched tokens pull the score down.
func (m *Matcher) scoreDoc(queryTokens []string, doc indexedDoc) (float64, []string) {
	fieldHit := make([]bool, len(searchFields))

	var total float64
	for _, token := range queryTokens {
		best := 0.0
		bestField := -1
		for fi, fieldTokens := range doc.fields {
			sim := bestTokenSimilarity(token, fieldTokens)
			if sim == 0 {
				continue
			}
			boosted := sim * fieldBoost(searchFields[fi].weight)
			if boosted > best {
				best = boosted
				bestField = fi
			}
		}
		if bestField >= 0 {
			fieldHit[bestField] = true
		}
		total += best
	}

	relevance := total / float64(len(queryTokens))
	if relevance > 1 {
		relevance = 1
	}

	var matched []string
	for fi, hit := range fieldHit {
		if hit {
			matched = append(matched, searchFields[fi].name)
		}
	}
	return relevance, matched
}

// fieldBoost scales a field's contribution so that the highest-weighted
// field (name) carries full similarity and lighter fields need stronger
// evidence to pass the threshold.
func fieldBoost(weight float64) float64 {
	return 0.6 + 0.4*weight/maxFieldWeight
}

// bestTokenSimilarity returns the best similarity of a query token against
// any token of a field.
func bestTokenSimilarity(queryToken string, fieldTokens []string) float64 {
	best := 0.0
	for _, ft := range fieldTokens {
		sim := tokenSimilarity(queryToken, ft)
		if sim > best {
			best = sim
			if best == simExact {
				break
			}
		}
	}
	return best
}

// tokenSimilarity scores two tokens: exact match, prefix match (plurals
// and partial terms), then bounded edit distance for typo tolerance.
func tokenSimilarity(qt, ft string) float64 {
	if qt == ft {
		return simExact
	}

	if len(qt) >= 3 && len(ft) >= 3 &&
		(strings.HasPrefix(ft, qt) || strings.HasPrefix(qt, ft)) {
		return simPrefix
	}

	if len(qt) < fuzzyMinLen || len(ft) < fuzzyMinLen {
		return 0
	}

	lenDiff := len(qt) - len(ft)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > fuzzyMaxDist {
		return 0
	}

	dist := levenshteinDistance(qt, ft)
	if dist > fuzzyMaxDist || dist*3 > len(qt) {
		return 0
	}
	return 1 - float64(dist)/float64(len(qt))
}

// levenshteinDistance calculates the edit distance between two strings
// using a two-row DP.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	n := len(r2)

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// tokenizeText splits a string into normalized lowercase tokens.
// Underscores and hyphens are treated as separators (feature tags come as
// "noise_cancellation"); single-character tokens are dropped but model
// numbers are kept.
func tokenizeText(s string) []string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = punctuationRegex.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) <= 1 {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// tokenizeList tokenizes a list of tags/features into one token set.
func tokenizeList(items []string) []string {
	var tokens []string
	for _, item := range items {
		tokens = append(tokens, tokenizeText(item)...)
	}
	return tokens
}
