package domain

// Intent is the fixed-enumeration classification of what a query asks for.
type Intent string

const (
	IntentGreeting          Intent = "greeting"
	IntentInventoryCheck    Intent = "inventory_check"
	IntentProductDetails    Intent = "product_details"
	IntentProductSelection  Intent = "product_selection"
	IntentBrandInquiry      Intent = "brand_inquiry"
	IntentAvailabilityCheck Intent = "availability_check"
	IntentProductSearch     Intent = "product_search"
	IntentPriceQuery        Intent = "price_query"
	IntentComparison        Intent = "comparison"
	IntentRecommendation    Intent = "recommendation"
	IntentGeneral           Intent = "general"
)

// Entities are the structured fields pulled out of a free-text query.
// Absent entities are zero values, never errors.
type Entities struct {
	Category   string `json:"category,omitempty"`
	Brand      string `json:"brand,omitempty"`
	ProductID  string `json:"productId,omitempty"`
	NameTokens string `json:"nameTokens,omitempty"`
}

// Sentiment is a lexical positive/negative/neutral read of a query.
type Sentiment struct {
	Sentiment  string  `json:"sentiment"`
	IsUrgent   bool    `json:"isUrgent"`
	Confidence float64 `json:"confidence"`
}

// QueryAnalysis is the result of classifying a query without executing it.
type QueryAnalysis struct {
	Query            string    `json:"query"`
	Intent           Intent    `json:"intent"`
	Entities         Entities  `json:"entities"`
	Sentiment        Sentiment `json:"sentiment"`
	WordCount        int       `json:"wordCount"`
	HasNumbers       bool      `json:"hasNumbers"`
	HasPriceTerms    bool      `json:"hasPriceTerms"`
	HasBrandMentions bool      `json:"hasBrandMentions"`
}
