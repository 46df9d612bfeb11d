package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopsense/backend/internal/domain"
)

// quickReplies maps each intent to its suggestion chips. Unmapped intents
// fall back to genericQuickReplies.
var quickReplies = map[domain.Intent][]string{
	domain.IntentGreeting: {
		"Show inventory status",
		"What do you recommend?",
		"Browse smartphones",
		"Check gaming laptops",
	},
	domain.IntentInventoryCheck: {
		"Show available laptops",
		"Check smartphone stock",
		"Browse by brand",
		"Show deals",
	},
	domain.IntentProductDetails: {
		"Compare similar products",
		"Check accessories",
		"View specifications",
		"Add to wishlist",
	},
	domain.IntentProductSearch: {
		"Filter by price",
		"Sort by rating",
		"Compare top 3",
		"Show alternatives",
	},
	domain.IntentAvailabilityCheck: {
		"Check restock date",
		"Show alternatives",
		"Set stock alert",
		"View similar items",
	},
	domain.IntentPriceQuery: {
		"Show budget options",
		"Check for deals",
		"Compare prices",
		"View financing",
	},
	domain.IntentRecommendation: {
		"Tell me more about #1",
		"Compare top picks",
		"Show more options",
		"Filter by budget",
	},
}

var genericQuickReplies = []string{
	"Search products",
	"Check inventory",
	"Get recommendations",
	"Browse categories",
}

// Composer renders an intent handler's raw result into a conversational
// reply. Composition is template-based per intent; identical inputs always
// produce identical text.
type Composer struct {
	recommender *Recommender
}

// NewComposer creates a composer. The recommender supplies the popular
// alternatives shown on empty-result branches.
func NewComposer(recommender *Recommender) *Composer {
	return &Composer{recommender: recommender}
}

// Compose builds the final reply for an intent and its handler result.
func (c *Composer) Compose(intent domain.Intent, results interface{}, userCtx *domain.UserContextSummary) *domain.Reply {
	var message, followUp string

	switch intent {
	case domain.IntentGreeting:
		message, followUp = c.composeGreeting(results)
	case domain.IntentInventoryCheck:
		message, followUp = c.composeInventory(results)
	case domain.IntentProductDetails, domain.IntentProductSelection:
		message, followUp = c.composeProductDetails(results)
	case domain.IntentBrandInquiry:
		message, followUp = c.composeBrandInquiry(results)
	case domain.IntentAvailabilityCheck:
		message, followUp = c.composeAvailability(results)
	case domain.IntentProductSearch:
		message, followUp = c.composeSearch(results)
	case domain.IntentPriceQuery:
		message, followUp = c.composePriceQuery(results)
	case domain.IntentComparison:
		message, followUp = c.composeComparison(results)
	case domain.IntentRecommendation:
		message, followUp = c.composeRecommendation(results, userCtx)
	default:
		message, followUp = c.composeGeneral(results)
	}

	return &domain.Reply{
		Success:        true,
		Intent:         intent,
		Message:        message,
		FollowUp:       followUp,
		Results:        results,
		Count:          resultCount(results),
		Conversational: true,
		UserContext:    userCtx,
		QuickReplies:   quickRepliesFor(intent),
	}
}

func quickRepliesFor(intent domain.Intent) []string {
	if replies, ok := quickReplies[intent]; ok {
		return replies
	}
	return genericQuickReplies
}

// resultCount counts a handler result: slice length, 1 for a present
// single result, 0 otherwise.
func resultCount(results interface{}) int {
	switch r := results.(type) {
	case nil:
		return 0
	case []domain.Product:
		return len(r)
	case []domain.MatchResult:
		return len(r)
	case []domain.Recommendation:
		return len(r)
	case []domain.PricedProduct:
		return len(r)
	case []domain.AvailabilityResult:
		return len(r)
	case *domain.ProductDetails:
		if r == nil {
			return 0
		}
		return 1
	case *domain.BrandOverview:
		if r == nil {
			return 0
		}
		return len(r.Products)
	default:
		return 1
	}
}

func (c *Composer) composeGreeting(results interface{}) (string, string) {
	g, ok := results.(*domain.GreetingSummary)
	if !ok || g == nil {
		return "Hello! Welcome to our tech store!", greetingFollowUp
	}

	var b strings.Builder
	b.WriteString("Hello! Welcome to our tech store!\n\n")
	b.WriteString("Current inventory:\n")
	fmt.Fprintf(&b, "- %d/%d products in stock\n", g.InStockProducts, g.TotalProducts)
	fmt.Fprintf(&b, "- %d categories available\n", len(g.Categories))
	fmt.Fprintf(&b, "- %d brands to choose from\n", len(g.TopBrands))

	if len(g.FeaturedDeals) > 0 {
		b.WriteString("\nFeatured deals:\n")
		for _, deal := range g.FeaturedDeals {
			fmt.Fprintf(&b, "- %s - %.0f%% off (%s)\n", deal.Name, deal.Discount, formatPrice(deal.Price))
		}
	}

	return b.String(), greetingFollowUp
}

const greetingFollowUp = "What can I help you find today? You can ask about inventory, specific products, or get personalized recommendations!"

func (c *Composer) composeInventory(results interface{}) (string, string) {
	rep, ok := results.(*domain.InventoryReport)
	followUp := "Which category or brand interests you? I can show you specific products and their availability."
	if !ok || rep == nil {
		return "I couldn't produce an inventory report right now.", followUp
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Inventory Report - %s\n\n", rep.FilterApplied)
	fmt.Fprintf(&b, "Available: %d products\n", rep.TotalAvailable)
	fmt.Fprintf(&b, "Out of stock: %d products\n", rep.TotalOutOfStock)

	if len(rep.CategoryBreakdown) > 0 {
		b.WriteString("\nBy category:\n")
		for _, category := range sortedKeys(rep.CategoryBreakdown) {
			fmt.Fprintf(&b, "- %s: %d available\n", category, rep.CategoryBreakdown[category])
		}
	}

	if len(rep.BrandBreakdown) > 0 {
		b.WriteString("\nBy brand:\n")
		brands := sortedKeysByCount(rep.BrandBreakdown)
		if len(brands) > 5 {
			brands = brands[:5]
		}
		for _, brand := range brands {
			fmt.Fprintf(&b, "- %s: %d available\n", brand, rep.BrandBreakdown[brand])
		}
	}

	return b.String(), followUp
}

func (c *Composer) composeProductDetails(results interface{}) (string, string) {
	details, ok := results.(*domain.ProductDetails)
	if !ok || details == nil {
		var b strings.Builder
		b.WriteString("I couldn't find detailed information about that specific product. Let me show you some alternatives.")
		writePopularList(&b, c.recommender.Popular(3), "\n\nHere are some popular options:\n", true)
		return b.String(), "Which product would you like to know more about?"
	}

	p := details.Product
	var b strings.Builder
	fmt.Fprintf(&b, "%s by %s\n\n", p.Name, p.Brand)
	fmt.Fprintf(&b, "Price: %s", formatPrice(details.Pricing.Current))
	if details.Pricing.Discount > 0 {
		fmt.Fprintf(&b, " (%.0f%% off - Save %s)", details.Pricing.Discount, formatPrice(details.Pricing.Savings))
	}
	fmt.Fprintf(&b, "\nRating: %s/5 (%s)\n", formatRating(p.Rating), details.UserReviews.Summary)
	fmt.Fprintf(&b, "%s\n", details.StockStatus.Message)

	if len(p.Features) > 0 {
		b.WriteString("\nKey features:\n")
		features := p.Features
		if len(features) > 5 {
			features = features[:5]
		}
		for _, feature := range features {
			fmt.Fprintf(&b, "- %s\n", strings.ReplaceAll(feature, "_", " "))
		}
	}

	if len(p.Specifications) > 0 {
		b.WriteString("\nSpecifications:\n")
		keys := sortedSpecKeys(p.Specifications)
		if len(keys) > 4 {
			keys = keys[:4]
		}
		for _, key := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", key, formatSpecValue(p.Specifications[key]))
		}
	}

	if details.PriceAnalysis != nil {
		fmt.Fprintf(&b, "\nPrice analysis: %s pricing (%s%% vs category average)\n",
			details.PriceAnalysis.Position, formatSignedPercent(details.PriceAnalysis.VsAverage))
	}

	followUp := fmt.Sprintf("Would you like to see compatible accessories, compare with similar products, or do you have any specific questions about this %s?", p.Category)
	return b.String(), followUp
}

func (c *Composer) composeBrandInquiry(results interface{}) (string, string) {
	overview, ok := results.(*domain.BrandOverview)
	if !ok || overview == nil || len(overview.Products) == 0 {
		return "We don't currently have products from that brand in stock. Would you like me to suggest similar alternatives from other brands?",
			"I can recommend products with similar features from our available brands."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Products Collection\n\n", strings.ToUpper(overview.Brand))
	b.WriteString("Brand overview:\n")
	fmt.Fprintf(&b, "- %d total products\n", overview.Stats.TotalProducts)
	fmt.Fprintf(&b, "- %d currently in stock\n", overview.Stats.InStockCount)
	fmt.Fprintf(&b, "- Categories: %s\n", strings.Join(overview.Stats.Categories, ", "))
	fmt.Fprintf(&b, "- Price range: %s - %s\n", formatPrice(overview.Stats.PriceMin), formatPrice(overview.Stats.PriceMax))
	fmt.Fprintf(&b, "- Average rating: %.1f/5\n", overview.Stats.AvgRating)

	b.WriteString("\nAvailable products:\n")
	products := overview.Products
	if len(products) > 5 {
		products = products[:5]
	}
	for i, p := range products {
		marker := "[out of stock]"
		if p.InStock() {
			marker = "[in stock]"
		}
		fmt.Fprintf(&b, "%d. %s - %s %s\n", i+1, p.Name, formatPrice(p.Price), marker)
	}

	followUp := fmt.Sprintf("Which %s product interests you most? I can provide detailed specifications and availability.", overview.Brand)
	return b.String(), followUp
}

func (c *Composer) composeAvailability(results interface{}) (string, string) {
	items, _ := results.([]domain.AvailabilityResult)
	if len(items) == 0 {
		var b strings.Builder
		b.WriteString("Sorry, those items are currently out of stock. Let me suggest some similar alternatives that are available.")
		writePopularList(&b, c.recommender.Popular(3), "\n\nAvailable alternatives:\n", false)
		return b.String(), "Would you like more details about any of these alternatives?"
	}

	var b strings.Builder
	b.WriteString("Availability Check Results\n\n")
	if len(items) > 4 {
		items = items[:4]
	}
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Product.Name)
		fmt.Fprintf(&b, "   %s | %s\n\n", formatPrice(item.Product.Price), item.StockStatus.Message)
	}

	return b.String(), "Which product would you like detailed information about? I can also suggest alternatives if something is out of stock."
}

func (c *Composer) composeSearch(results interface{}) (string, string) {
	matches, _ := results.([]domain.MatchResult)
	if len(matches) == 0 {
		var b strings.Builder
		b.WriteString("No exact matches found. Let me suggest some popular products that might interest you.")
		writePopularList(&b, c.recommender.Popular(3), "\n\nPopular suggestions:\n", false)
		return b.String(), "Try refining your search or ask me about specific categories, brands, or features."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Search Results (%d products found)\n\n", len(matches))
	shown := matches
	if len(shown) > 4 {
		shown = shown[:4]
	}
	for i, match := range shown {
		p := match.Product
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, p.Name, p.Brand)
		fmt.Fprintf(&b, "   %s | %s/5 | %s\n", formatPrice(p.Price), formatRating(p.Rating), match.StockStatus.Message)
		fmt.Fprintf(&b, "   Relevance: %.0f%%\n\n", match.RelevanceScore*100)
	}

	return b.String(), "Which product catches your interest? I can provide detailed specifications, compare options, or check similar products."
}

func (c *Composer) composePriceQuery(results interface{}) (string, string) {
	items, _ := results.([]domain.PricedProduct)
	if len(items) == 0 {
		var b strings.Builder
		b.WriteString("No products found in that specific price range. Let me show you our best value options across different budgets.")
		writePopularList(&b, c.recommender.Popular(4), "\n\nValue options:\n", false)
		return b.String(), "What's your budget range? I can find the best options within your price limit."
	}

	var b strings.Builder
	b.WriteString("Price-based Product Results\n\n")
	if len(items) > 4 {
		items = items[:4]
	}
	for i, item := range items {
		p := item.Product
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, p.Name, priceLabel(item.PriceAnalysis))
		fmt.Fprintf(&b, "   %s", formatPrice(p.Price))
		if p.Discount > 0 {
			fmt.Fprintf(&b, " (%.0f%% off)", p.Discount)
		}
		fmt.Fprintf(&b, " | %s/5\n", formatRating(p.Rating))
		fmt.Fprintf(&b, "   %s\n\n", item.StockStatus.Message)
	}

	return b.String(), "Which price range works best for you? I can filter results further or suggest financing options for premium products."
}

func (c *Composer) composeComparison(results interface{}) (string, string) {
	items, _ := results.([]domain.PricedProduct)
	if len(items) < 2 {
		return "I need at least two products to compare. Please specify which products you'd like me to compare.",
			`Try asking: "Compare iPhone 15 Pro vs Samsung Galaxy S24" or mention specific product names.`
	}

	var b strings.Builder
	b.WriteString("Product Comparison\n\n")
	bestRated := items[0]
	mostAffordable := items[0]
	for i, item := range items {
		p := item.Product
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, p.Name, p.Brand)
		fmt.Fprintf(&b, "   Price: %s", formatPrice(p.Price))
		if p.Discount > 0 {
			fmt.Fprintf(&b, " (%.0f%% off)", p.Discount)
		}
		fmt.Fprintf(&b, "\n   Rating: %s/5 (%d reviews)\n", formatRating(p.Rating), p.Reviews)
		fmt.Fprintf(&b, "   %s\n", item.StockStatus.Message)
		if item.PriceAnalysis != nil {
			fmt.Fprintf(&b, "   %s pricing\n", item.PriceAnalysis.Position)
		}
		b.WriteString("\n")

		if p.Rating > bestRated.Product.Rating {
			bestRated = item
		}
		if p.Price < mostAffordable.Product.Price {
			mostAffordable = item
		}
	}

	b.WriteString("Quick comparison:\n")
	fmt.Fprintf(&b, "- Best rated: %s (%s/5)\n", bestRated.Product.Name, formatRating(bestRated.Product.Rating))
	fmt.Fprintf(&b, "- Most affordable: %s (%s)\n", mostAffordable.Product.Name, formatPrice(mostAffordable.Product.Price))

	return b.String(), "Which aspect is most important to you: price, features, or brand reputation? I can provide more detailed comparisons."
}

func (c *Composer) composeRecommendation(results interface{}, userCtx *domain.UserContextSummary) (string, string) {
	recs, _ := results.([]domain.Recommendation)
	if len(recs) == 0 {
		return "To give you better recommendations, could you tell me what type of product you're looking for and your budget range?",
			`For example: "I need a laptop under $1500 for work" or "Looking for gaming headphones around $200".`
	}

	var b strings.Builder
	if userCtx != nil {
		b.WriteString("Personalized Recommendations\n\n")
	} else {
		b.WriteString("Popular Product Recommendations\n\n")
	}

	shown := recs
	if len(shown) > 4 {
		shown = shown[:4]
	}
	for i, rec := range shown {
		p := rec.Product
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, p.Name, p.Brand)
		fmt.Fprintf(&b, "   %s | %s/5\n", formatPrice(p.Price), formatRating(p.Rating))
		fmt.Fprintf(&b, "   %s\n", rec.StockStatus.Message)
		if len(rec.Reasons) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(rec.Reasons, ", "))
		}
		b.WriteString("\n")
	}

	return b.String(), "Any of these recommendations interest you? I can provide detailed information or suggest alternatives based on your specific needs."
}

func (c *Composer) composeGeneral(results interface{}) (string, string) {
	type generalItem struct {
		product domain.Product
		status  domain.StockStatus
	}

	var items []generalItem
	switch r := results.(type) {
	case []domain.MatchResult:
		for _, match := range r {
			items = append(items, generalItem{match.Product, match.StockStatus})
		}
	case []domain.Recommendation:
		for _, rec := range r {
			items = append(items, generalItem{rec.Product, rec.StockStatus})
		}
	}

	if len(items) == 0 {
		var b strings.Builder
		b.WriteString("I'm here to help you find the perfect tech product! I can assist with:\n\n")
		b.WriteString("- Check inventory and stock levels\n")
		b.WriteString("- Product details and specifications\n")
		b.WriteString("- Price comparisons and deals\n")
		b.WriteString("- Personalized recommendations\n")
		b.WriteString("- Product comparisons\n")
		b.WriteString("- Search by brand, category, or features\n")
		return b.String(), "What are you shopping for today? Try asking about specific products, brands, or your tech needs!"
	}

	var b strings.Builder
	b.WriteString("Here's what I found:\n\n")
	if len(items) > 3 {
		items = items[:3]
	}
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, item.product.Name, item.product.Brand)
		fmt.Fprintf(&b, "   %s | %s/5\n", formatPrice(item.product.Price), formatRating(item.product.Rating))
		fmt.Fprintf(&b, "   %s\n\n", item.status.Message)
	}

	return b.String(), "Would you like more details about any of these products, or are you looking for something more specific?"
}

// writePopularList appends a numbered popular-products list used by
// empty-result branches. withStock adds the stock message per line.
func writePopularList(b *strings.Builder, popular []domain.Recommendation, header string, withStock bool) {
	if len(popular) == 0 {
		return
	}
	b.WriteString(header)
	for i, rec := range popular {
		if withStock {
			fmt.Fprintf(b, "%d. %s - %s (%s)\n", i+1, rec.Product.Name, formatPrice(rec.Product.Price), rec.StockStatus.Message)
		} else {
			fmt.Fprintf(b, "%d. %s - %s\n", i+1, rec.Product.Name, formatPrice(rec.Product.Price))
		}
	}
}

// priceLabel maps a price position to its display tag.
func priceLabel(analysis *domain.PriceAnalysis) string {
	if analysis == nil {
		return "[Mid-range]"
	}
	switch analysis.Position {
	case "budget-friendly":
		return "[Budget]"
	case "premium":
		return "[Premium]"
	default:
		return "[Mid-range]"
	}
}

// formatPrice renders a currency amount with thousands separators,
// dropping cents when the amount is whole: $1,299 or $49.99.
func formatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)
	whole, frac := parts[0], parts[1]

	negative := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String()
	if frac != "00" {
		out += "." + frac
	}
	if negative {
		return "-$" + out
	}
	return "$" + out
}

// formatRating renders a rating without trailing zeros: 4.5 or 4.
func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// formatSignedPercent renders a one-decimal percentage with an explicit
// plus sign for positive values.
func formatSignedPercent(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.1f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// formatSpecValue renders a specification value, joining arrays.
func formatSpecValue(v interface{}) string {
	switch value := v.(type) {
	case []interface{}:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(value, ", ")
	default:
		return fmt.Sprintf("%v", value)
	}
}

// sortedKeys returns map keys sorted alphabetically for stable output.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// sortedKeysByCount returns map keys sorted by descending count, then
// alphabetically.
func sortedKeysByCount(m map[string]int) []string {
	keys := sortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool {
		return m[keys[i]] > m[keys[j]]
	})
	return keys
}

// sortedSpecKeys sorts specification keys for stable display.
func sortedSpecKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
