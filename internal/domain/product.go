package domain

// Product represents a single catalog item. Products are loaded once at
// startup and treated as immutable for the process lifetime.
type Product struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Brand         string                 `json:"brand"`
	Category      string                 `json:"category"`
	Subcategory   string                 `json:"subcategory,omitempty"`
	Price         float64                `json:"price"`
	OriginalPrice float64                `json:"originalPrice,omitempty"`
	Discount      float64                `json:"discount,omitempty"` // percentage
	Stock         int                    `json:"stock"`
	Rating        float64                `json:"rating"`  // 0-5
	Reviews       int                    `json:"reviews"` // review count
	Description   string                 `json:"description,omitempty"`
	Features      []string               `json:"features,omitempty"`
	UseCases      []string               `json:"use_cases,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
	IsNew         bool                   `json:"isNew,omitempty"`
	PreOrder      bool                   `json:"preOrder,omitempty"`
}

// InStock reports whether the product has any units available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// MatchResult is a product paired with its fuzzy-search relevance.
type MatchResult struct {
	Product        Product     `json:"product"`
	RelevanceScore float64     `json:"relevanceScore"` // 0-1, 1.0 is a perfect match
	MatchedFields  []string    `json:"matchedFields,omitempty"`
	StockStatus    StockStatus `json:"stockStatus"`
}

// Recommendation is a product paired with its personalization score and
// the human-readable reasons behind it.
type Recommendation struct {
	Product     Product     `json:"product"`
	Score       float64     `json:"recommendationScore"`
	Reasons     []string    `json:"reasons"`
	StockStatus StockStatus `json:"stockStatus"`
}

// StockTier is one of the four discrete stock-level classifications.
type StockTier string

const (
	TierOutOfStock    StockTier = "out_of_stock"
	TierLowStock      StockTier = "low_stock"
	TierModerateStock StockTier = "moderate_stock"
	TierInStock       StockTier = "in_stock"
)

// StockStatus carries a stock tier with its display message.
type StockStatus struct {
	Status  StockTier `json:"status"`
	Message string    `json:"message"`
	Urgency string    `json:"urgency,omitempty"`
}

// PriceAnalysis positions a product's price against its category peers.
type PriceAnalysis struct {
	Position      string  `json:"position"` // budget-friendly, average, premium
	VsAverage     float64 `json:"vsAverage"` // percent deviation from peer average
	VsMedian      float64 `json:"vsMedian"`  // percent deviation from peer median
	CategoryMin   float64 `json:"categoryMin"`
	CategoryMax   float64 `json:"categoryMax"`
	CategoryAvg   float64 `json:"categoryAvg"`
}

// Pricing breaks down current vs original price for display.
type Pricing struct {
	Current  float64 `json:"current"`
	Original float64 `json:"original"`
	Discount float64 `json:"discount"`
	Savings  float64 `json:"savings"`
}

// Availability summarizes whether and how a product can be ordered.
type Availability struct {
	InStock  bool   `json:"inStock"`
	Quantity int    `json:"quantity"`
	CanOrder bool   `json:"canOrder"`
	Status   string `json:"status"`
}

// ReviewSummary is the qualitative rating tier shown with review counts.
type ReviewSummary struct {
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"totalReviews"`
	Summary      string  `json:"summary"`
}

// ProductDetails is the full detail view assembled for a single product:
// the product itself plus derived stock, pricing, peers and accessories.
type ProductDetails struct {
	Product               Product        `json:"product"`
	StockStatus           StockStatus    `json:"stockStatus"`
	PriceAnalysis         *PriceAnalysis `json:"priceAnalysis,omitempty"`
	Availability          Availability   `json:"availability"`
	Pricing               Pricing        `json:"pricing"`
	RelatedProducts       []Product      `json:"relatedProducts,omitempty"`
	CompatibleAccessories []Product      `json:"compatibleAccessories,omitempty"`
	UserReviews           ReviewSummary  `json:"userReviews"`
}
