package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopsense/backend/internal/domain"
)

// Package-level compiled regex patterns for query analysis
var (
	numberPattern       = regexp.MustCompile(`\d+`)
	priceTermsPattern   = regexp.MustCompile(`price|cost|cheap|expensive|discount`)
	brandMentionPattern = regexp.MustCompile(`apple|samsung|dell|asus|sony|hp|google|nintendo|microsoft`)
	comparisonSplitter  = regexp.MustCompile(`vs|versus|compare`)
)

// priceQueryTolerance keeps products within ±30% of a mentioned target price.
const priceQueryTolerance = 0.3

// EngineConfig holds configuration for the query engine.
type EngineConfig struct {
	SearchLimit        int           // fuzzy search result cap (default 8)
	RecommendLimit     int           // dashboard recommendation count (default 4)
	ChatRecommendLimit int           // chat-path recommendation count (default 6)
	PriceQueryLimit    int           // price query result cap (default 6)
	CacheTTL           time.Duration // composed reply cache TTL, 0 disables caching
	EnableDebugLogging bool
}

// Engine is the conversational query engine: it classifies a free-text
// shopping query, extracts entities, dispatches to an intent handler over
// the catalog, and composes a structured reply. All operations are pure
// computations over the immutable catalog and are safe for concurrent
// callers.
type Engine struct {
	catalog     domain.CatalogRepository
	index       domain.ProductIndex
	profiles    domain.ProfileRepository
	recommender *Recommender
	composer    *Composer
	cache       domain.ReplyCache

	searchLimit        int
	recommendLimit     int
	chatRecommendLimit int
	priceQueryLimit    int
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewEngine wires the engine from its collaborators. profiles and cache
// may be nil: without profiles every request is anonymous, without a cache
// replies are recomposed per request.
func NewEngine(
	catalog domain.CatalogRepository,
	index domain.ProductIndex,
	profiles domain.ProfileRepository,
	cache domain.ReplyCache,
	config EngineConfig,
) *Engine {
	searchLimit := config.SearchLimit
	if searchLimit <= 0 {
		searchLimit = 8
	}
	recommendLimit := config.RecommendLimit
	if recommendLimit <= 0 {
		recommendLimit = 4
	}
	chatRecommendLimit := config.ChatRecommendLimit
	if chatRecommendLimit <= 0 {
		chatRecommendLimit = 6
	}
	priceQueryLimit := config.PriceQueryLimit
	if priceQueryLimit <= 0 {
		priceQueryLimit = 6
	}

	recommender := NewRecommender(catalog, config.EnableDebugLogging)

	return &Engine{
		catalog:            catalog,
		index:              index,
		profiles:           profiles,
		recommender:        recommender,
		composer:           NewComposer(recommender),
		cache:              cache,
		searchLimit:        searchLimit,
		recommendLimit:     recommendLimit,
		chatRecommendLimit: chatRecommendLimit,
		priceQueryLimit:    priceQueryLimit,
		cacheTTL:           config.CacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Analyze classifies a query without executing it: intent, entities,
// sentiment and lexical flags. It never fails for well-formed text.
func (e *Engine) Analyze(query string) domain.QueryAnalysis {
	normalized := normalizeQuery(query)

	return domain.QueryAnalysis{
		Query:            normalized,
		Intent:           DetectIntent(normalized),
		Entities:         ExtractEntities(normalized),
		Sentiment:        AnalyzeSentiment(normalized),
		WordCount:        len(strings.Fields(normalized)),
		HasNumbers:       numberPattern.MatchString(normalized),
		HasPriceTerms:    priceTermsPattern.MatchString(normalized),
		HasBrandMentions: brandMentionPattern.MatchString(normalized),
	}
}

// Process runs the full pipeline: classify, extract, dispatch to the
// intent handler, compose the conversational reply.
func (e *Engine) Process(ctx context.Context, query, userID string) *domain.Reply {
	normalized := normalizeQuery(query)

	cacheKey := fmt.Sprintf("reply:%s:%s", normalized, userID)
	if e.cache != nil && e.cacheTTL > 0 {
		if reply, err := e.cache.Get(ctx, cacheKey); err == nil {
			return reply
		}
	}

	intent := DetectIntent(normalized)
	profile := e.profileFor(userID)
	userCtx := contextSummary(profile)

	if e.enableDebugLogging {
		log.Printf("[ENGINE] query=%q intent=%s user=%q", normalized, intent, userID)
	}

	var results interface{}
	switch intent {
	case domain.IntentGreeting:
		results = e.handleGreeting()
	case domain.IntentInventoryCheck:
		results = e.handleInventoryCheck(normalized)
	case domain.IntentProductDetails:
		results = e.handleProductDetails(normalized)
	case domain.IntentProductSelection:
		results = e.handleProductSelection(normalized)
	case domain.IntentBrandInquiry:
		results = e.handleBrandInquiry(normalized)
	case domain.IntentAvailabilityCheck:
		results = e.handleAvailabilityCheck(normalized)
	case domain.IntentProductSearch:
		results = e.Search(normalized)
	case domain.IntentPriceQuery:
		results = e.handlePriceQuery(normalized)
	case domain.IntentComparison:
		results = e.handleComparison(normalized)
	case domain.IntentRecommendation:
		results = e.recommender.Recommend(profile, e.chatRecommendLimit)
	default:
		results = e.handleGeneral(normalized)
	}

	reply := e.composer.Compose(intent, results, userCtx)

	if e.cache != nil && e.cacheTTL > 0 {
		if err := e.cache.Set(ctx, cacheKey, reply, e.cacheTTL); err != nil && e.enableDebugLogging {
			log.Printf("[ENGINE] reply cache set failed: %v", err)
		}
	}

	return reply
}

// Search is the first-class raw fuzzy search, bypassing intent dispatch.
func (e *Engine) Search(query string) []domain.MatchResult {
	return e.index.Search(normalizeQuery(query), e.searchLimit)
}

// SearchFilters narrows raw search results after matching.
type SearchFilters struct {
	Category  string
	Brand     string
	PriceMin  float64
	PriceMax  float64 // 0 means unbounded
	MinRating float64
}

// SearchFiltered runs a fuzzy search and applies post-filters.
func (e *Engine) SearchFiltered(query string, filters SearchFilters) []domain.MatchResult {
	results := e.Search(query)

	filtered := make([]domain.MatchResult, 0, len(results))
	for _, r := range results {
		p := r.Product
		if filters.Category != "" && !strings.Contains(strings.ToLower(p.Category), strings.ToLower(filters.Category)) {
			continue
		}
		if filters.Brand != "" && !strings.EqualFold(p.Brand, filters.Brand) {
			continue
		}
		if p.Price < filters.PriceMin {
			continue
		}
		if filters.PriceMax > 0 && p.Price > filters.PriceMax {
			continue
		}
		if p.Rating < filters.MinRating {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// Recommend returns ranked recommendations for a user; an empty or unknown
// user id falls back to the popular-products ranking.
func (e *Engine) Recommend(userID string, limit int) []domain.Recommendation {
	if limit <= 0 {
		limit = e.recommendLimit
	}
	return e.recommender.Recommend(e.profileFor(userID), limit)
}

// Compare resolves product ids and builds a comparison aggregate.
// Fewer than two ids is an invalid request; ids resolving to fewer than
// two products yields ErrNoComparableProducts.
func (e *Engine) Compare(productIDs []string) (*domain.Comparison, error) {
	if len(productIDs) < 2 {
		return nil, domain.ErrInvalidRequest
	}

	var products []domain.Product
	for _, id := range productIDs {
		if p, ok := e.catalog.ByID(id); ok {
			products = append(products, *p)
		}
	}
	if len(products) < 2 {
		return nil, domain.ErrNoComparableProducts
	}

	comparison := &domain.Comparison{
		PriceMin: products[0].Price,
		PriceMax: products[0].Price,
	}

	bestRated := &products[0]
	mostAffordable := &products[0]
	for i := range products {
		p := &products[i]
		comparison.Products = append(comparison.Products, e.pricedProduct(p))
		if p.Price < comparison.PriceMin {
			comparison.PriceMin = p.Price
		}
		if p.Price > comparison.PriceMax {
			comparison.PriceMax = p.Price
		}
		if p.Rating > bestRated.Rating {
			bestRated = p
		}
		if p.Price < mostAffordable.Price {
			mostAffordable = p
		}
	}
	comparison.BestRated = bestRated
	comparison.MostAffordable = mostAffordable
	comparison.CommonFeatures = commonFeatures(products)

	return comparison, nil
}

// Details assembles the full detail view for a product id.
func (e *Engine) Details(productID string) (*domain.ProductDetails, error) {
	p, ok := e.catalog.ByID(productID)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return e.detailedInfo(p), nil
}

// Stats exposes the catalog's admin aggregate.
func (e *Engine) Stats() domain.InventoryStats {
	return e.catalog.Stats()
}

// RecordView records a product view on the user's profile. Unknown users
// and absent profile stores are not errors for the caller to act on.
func (e *Engine) RecordView(userID, productID string) error {
	if e.profiles == nil {
		return nil
	}
	return e.profiles.RecordView(userID, productID)
}

// --- intent handlers ---

func (e *Engine) handleGreeting() *domain.GreetingSummary {
	summary := &domain.GreetingSummary{
		Categories: e.catalog.Categories(),
	}

	for _, p := range e.catalog.All() {
		summary.TotalProducts++
		if p.InStock() {
			summary.InStockProducts++
		}
		if p.Discount > 0 && len(summary.FeaturedDeals) < 3 {
			summary.FeaturedDeals = append(summary.FeaturedDeals, p)
		}
	}

	brands := e.catalog.Brands()
	if len(brands) > 8 {
		brands = brands[:8]
	}
	summary.TopBrands = brands

	return summary
}

func (e *Engine) handleInventoryCheck(query string) *domain.InventoryReport {
	categoryFilter := ExtractCategory(query)
	brandFilter := ExtractBrand(query)

	report := &domain.InventoryReport{
		CategoryBreakdown: make(map[string]int),
		BrandBreakdown:    make(map[string]int),
		FilterApplied:     "all products",
	}
	if categoryFilter != "" {
		report.FilterApplied = categoryFilter
	} else if brandFilter != "" {
		report.FilterApplied = brandFilter
	}

	for _, p := range e.catalog.All() {
		if categoryFilter != "" && !matchesCategoryFilter(&p, categoryFilter) {
			continue
		}
		if brandFilter != "" && !strings.EqualFold(p.Brand, brandFilter) {
			continue
		}

		if !p.InStock() {
			report.TotalOutOfStock++
			report.OutOfStockProducts = append(report.OutOfStockProducts, p)
			continue
		}

		report.TotalAvailable++
		report.AvailableProducts = append(report.AvailableProducts, p)
		report.CategoryBreakdown[p.Category]++
		report.BrandBreakdown[p.Brand]++

		switch {
		case p.Price < 500:
			report.PriceRanges.Under500++
		case p.Price < 1000:
			report.PriceRanges.From500To1K++
		case p.Price < 2000:
			report.PriceRanges.From1KTo2K++
		default:
			report.PriceRanges.Over2K++
		}
	}

	return report
}

func (e *Engine) handleProductDetails(query string) *domain.ProductDetails {
	brand := ExtractBrand(query)
	nameTokens := ExtractNameTokens(query)

	if nameTokens == "" {
		return nil
	}

	matches := e.index.Search(nameTokens, e.searchLimit)
	if len(matches) == 0 {
		return nil
	}

	// Prefer the best match carrying the extracted brand
	target := &matches[0].Product
	if brand != "" {
		for i := range matches {
			if strings.EqualFold(matches[i].Product.Brand, brand) {
				target = &matches[i].Product
				break
			}
		}
	}

	return e.detailedInfo(target)
}

func (e *Engine) handleProductSelection(query string) *domain.ProductDetails {
	if id := ExtractProductID(query); id != "" {
		if p, ok := e.catalog.ByID(strings.ToUpper(id)); ok {
			return e.detailedInfo(p)
		}
		if p, ok := e.catalog.ByID(id); ok {
			return e.detailedInfo(p)
		}
	}

	nameTokens := ExtractNameTokens(query)
	if nameTokens == "" {
		return nil
	}
	matches := e.index.Search(nameTokens, 1)
	if len(matches) == 0 {
		return nil
	}
	return e.detailedInfo(&matches[0].Product)
}

func (e *Engine) handleBrandInquiry(query string) *domain.BrandOverview {
	brand := ExtractBrand(query)
	if brand == "" {
		return nil
	}

	var products []domain.Product
	for _, p := range e.catalog.All() {
		if strings.EqualFold(p.Brand, brand) {
			products = append(products, p)
		}
	}
	if len(products) == 0 {
		return nil
	}

	stats := domain.BrandStats{
		TotalProducts: len(products),
		PriceMin:      products[0].Price,
		PriceMax:      products[0].Price,
	}

	var ratingSum float64
	seenCategories := make(map[string]bool)
	for _, p := range products {
		if !seenCategories[p.Category] {
			seenCategories[p.Category] = true
			stats.Categories = append(stats.Categories, p.Category)
		}
		if p.Price < stats.PriceMin {
			stats.PriceMin = p.Price
		}
		if p.Price > stats.PriceMax {
			stats.PriceMax = p.Price
		}
		ratingSum += p.Rating
		if p.InStock() {
			stats.InStockCount++
		}
	}
	stats.AvgRating = math.Round(ratingSum/float64(len(products))*10) / 10

	return &domain.BrandOverview{
		Brand:    products[0].Brand,
		Products: products,
		Stats:    stats,
	}
}

func (e *Engine) handleAvailabilityCheck(query string) []domain.AvailabilityResult {
	brand := ExtractBrand(query)
	nameTokens := ExtractNameTokens(query)

	var found []domain.Product
	if brand != "" && nameTokens != "" {
		nameLower := strings.ToLower(nameTokens)
		for _, p := range e.catalog.All() {
			if strings.Contains(strings.ToLower(p.Brand), brand) &&
				strings.Contains(strings.ToLower(p.Name), nameLower) {
				found = append(found, p)
			}
		}
	}
	if len(found) == 0 && nameTokens != "" {
		for _, match := range e.index.Search(nameTokens, e.searchLimit) {
			found = append(found, match.Product)
		}
	}

	results := make([]domain.AvailabilityResult, 0, len(found))
	for i := range found {
		p := &found[i]
		results = append(results, domain.AvailabilityResult{
			Product:     *p,
			StockStatus: StockStatusFor(p),
			Availability: domain.Availability{
				InStock:  p.InStock(),
				Quantity: p.Stock,
				CanOrder: p.InStock() || p.PreOrder,
			},
		})
	}
	return results
}

func (e *Engine) handlePriceQuery(query string) []domain.PricedProduct {
	products := append([]domain.Product(nil), e.catalog.All()...)

	if numberText := numberPattern.FindString(query); numberText != "" {
		target, err := strconv.ParseFloat(numberText, 64)
		if err == nil && target > 0 {
			var inRange []domain.Product
			for _, p := range products {
				if math.Abs(p.Price-target) <= target*priceQueryTolerance {
					inRange = append(inRange, p)
				}
			}
			products = inRange
		}
	}

	if strings.Contains(query, "cheap") || strings.Contains(query, "affordable") || strings.Contains(query, "budget") {
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	} else if strings.Contains(query, "expensive") || strings.Contains(query, "premium") {
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	}

	if len(products) > e.priceQueryLimit {
		products = products[:e.priceQueryLimit]
	}

	results := make([]domain.PricedProduct, 0, len(products))
	for i := range products {
		results = append(results, e.pricedProduct(&products[i]))
	}
	return results
}

func (e *Engine) handleComparison(query string) []domain.PricedProduct {
	var compared []domain.Product

	parts := comparisonSplitter.Split(query, -1)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if matches := e.index.Search(part, 1); len(matches) > 0 {
			compared = append(compared, matches[0].Product)
		}
	}

	if len(compared) < 2 {
		if brand := ExtractBrand(query); brand != "" {
			compared = compared[:0]
			for _, p := range e.catalog.All() {
				if strings.EqualFold(p.Brand, brand) {
					compared = append(compared, p)
					if len(compared) == 3 {
						break
					}
				}
			}
		}
	}

	results := make([]domain.PricedProduct, 0, len(compared))
	for i := range compared {
		results = append(results, e.pricedProduct(&compared[i]))
	}
	return results
}

func (e *Engine) handleGeneral(query string) interface{} {
	matches := e.Search(query)
	if len(matches) == 0 {
		return e.recommender.Popular(e.chatRecommendLimit)
	}
	return matches
}

// --- helpers ---

// detailedInfo assembles the full detail view for a product: stock,
// pricing, peer price analysis, related products and accessories.
func (e *Engine) detailedInfo(p *domain.Product) *domain.ProductDetails {
	original := p.OriginalPrice
	if original == 0 {
		original = p.Price
	}

	return &domain.ProductDetails{
		Product:       *p,
		StockStatus:   StockStatusFor(p),
		PriceAnalysis: AnalyzePrice(p, e.catalog.PeersInCategory(p)),
		Availability: domain.Availability{
			InStock:  p.InStock(),
			Quantity: p.Stock,
			CanOrder: p.InStock() || p.PreOrder,
			Status:   StockStatusFor(p).Message,
		},
		Pricing: domain.Pricing{
			Current:  p.Price,
			Original: original,
			Discount: p.Discount,
			Savings:  original - p.Price,
		},
		RelatedProducts:       e.relatedProducts(p),
		CompatibleAccessories: e.compatibleAccessories(p),
		UserReviews:           ReviewSummaryFor(p),
	}
}

// relatedProducts shares a category, brand or feature with p, best rated
// first, top 4.
func (e *Engine) relatedProducts(p *domain.Product) []domain.Product {
	var related []domain.Product
	for _, other := range e.catalog.All() {
		if other.ID == p.ID {
			continue
		}
		if other.Category == p.Category || other.Brand == p.Brand || sharesAny(other.Features, p.Features) {
			related = append(related, other)
		}
	}

	sort.SliceStable(related, func(i, j int) bool { return related[i].Rating > related[j].Rating })
	if len(related) > 4 {
		related = related[:4]
	}
	return related
}

// compatibleAccessories picks accessory-category items overlapping p's use
// cases or tags, top 3.
func (e *Engine) compatibleAccessories(p *domain.Product) []domain.Product {
	var accessories []domain.Product
	for _, other := range e.catalog.All() {
		if other.Category != "accessories" || other.ID == p.ID {
			continue
		}
		if sharesAny(other.UseCases, p.UseCases) || sharesAny(other.Tags, p.Tags) {
			accessories = append(accessories, other)
			if len(accessories) == 3 {
				break
			}
		}
	}
	return accessories
}

func (e *Engine) pricedProduct(p *domain.Product) domain.PricedProduct {
	return domain.PricedProduct{
		Product:       *p,
		StockStatus:   StockStatusFor(p),
		PriceAnalysis: AnalyzePrice(p, e.catalog.PeersInCategory(p)),
	}
}

// profileFor resolves a user profile, treating unknown users the same as
// anonymous ones.
func (e *Engine) profileFor(userID string) *domain.UserProfile {
	if userID == "" || e.profiles == nil {
		return nil
	}
	profile, err := e.profiles.GetProfile(userID)
	if err != nil {
		return nil
	}
	return profile
}

func contextSummary(profile *domain.UserProfile) *domain.UserContextSummary {
	if profile == nil {
		return nil
	}
	return &domain.UserContextSummary{
		HasPreferences: true,
		TopCategories:  profile.TopCategories(3),
	}
}

func matchesCategoryFilter(p *domain.Product, category string) bool {
	return strings.Contains(strings.ToLower(p.Category), category) ||
		strings.Contains(strings.ToLower(p.Subcategory), category)
}

// sharesAny reports whether the two lists have any element in common.
func sharesAny(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, item := range a {
		set[item] = true
	}
	for _, item := range b {
		if set[item] {
			return true
		}
	}
	return false
}

// commonFeatures returns features present in every product, in the first
// product's order.
func commonFeatures(products []domain.Product) []string {
	if len(products) == 0 {
		return nil
	}

	var common []string
	for _, feature := range products[0].Features {
		shared := true
		for _, p := range products[1:] {
			if !containsString(p.Features, feature) {
				shared = false
				break
			}
		}
		if shared {
			common = append(common, feature)
		}
	}
	return common
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// normalizeQuery lower-cases and trims a raw query.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
