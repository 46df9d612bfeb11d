package domain

// Reply is the structured conversational response returned by the engine.
// Results carries the intent handler's raw result set: a ProductDetails,
// a slice of products/matches, or one of the aggregate types below.
type Reply struct {
	Success      bool                `json:"success"`
	Intent       Intent              `json:"intent"`
	Message      string              `json:"message"`
	FollowUp     string              `json:"followUp"`
	Results      interface{}         `json:"results"`
	Count        int                 `json:"count"`
	Conversational bool              `json:"conversational"`
	UserContext  *UserContextSummary `json:"userContext,omitempty"`
	QuickReplies []string            `json:"quickReplies"`
}

// UserContextSummary is the slim user context echoed back with a reply.
type UserContextSummary struct {
	HasPreferences bool     `json:"hasPreferences"`
	TopCategories  []string `json:"topCategories"`
}

// InventoryReport is the breakdown produced for inventory_check queries.
type InventoryReport struct {
	TotalAvailable    int               `json:"totalAvailable"`
	TotalOutOfStock   int               `json:"totalOutOfStock"`
	AvailableProducts []Product         `json:"availableProducts"`
	OutOfStockProducts []Product        `json:"outOfStockProducts"`
	CategoryBreakdown map[string]int    `json:"categoryBreakdown"`
	BrandBreakdown    map[string]int    `json:"brandBreakdown"`
	PriceRanges       PriceRangeCounts  `json:"priceRanges"`
	FilterApplied     string            `json:"filterApplied"`
}

// PriceRangeCounts buckets available products into fixed price bands.
type PriceRangeCounts struct {
	Under500    int `json:"under500"`
	From500To1K int `json:"500to1000"`
	From1KTo2K  int `json:"1000to2000"`
	Over2K      int `json:"over2000"`
}

// BrandStats aggregates a brand's catalog footprint.
type BrandStats struct {
	TotalProducts int      `json:"totalProducts"`
	Categories    []string `json:"categories"`
	PriceMin      float64  `json:"priceMin"`
	PriceMax      float64  `json:"priceMax"`
	AvgRating     float64  `json:"avgRating"`
	InStockCount  int      `json:"inStockCount"`
}

// BrandOverview is the result of a brand_inquiry query.
type BrandOverview struct {
	Brand    string     `json:"brand"`
	Products []Product  `json:"products"`
	Stats    BrandStats `json:"stats"`
}

// AvailabilityResult decorates a product with order-ability for
// availability_check queries.
type AvailabilityResult struct {
	Product      Product      `json:"product"`
	StockStatus  StockStatus  `json:"stockStatus"`
	Availability Availability `json:"availabilityInfo"`
}

// PricedProduct decorates a product with stock and price positioning for
// price_query and comparison results.
type PricedProduct struct {
	Product       Product        `json:"product"`
	StockStatus   StockStatus    `json:"stockStatus"`
	PriceAnalysis *PriceAnalysis `json:"priceAnalysis,omitempty"`
}

// GreetingSummary is the storefront snapshot shown on greeting queries.
type GreetingSummary struct {
	TotalProducts   int       `json:"totalProducts"`
	InStockProducts int       `json:"inStockProducts"`
	Categories      []string  `json:"categories"`
	TopBrands       []string  `json:"topBrands"`
	FeaturedDeals   []Product `json:"featuredDeals"`
}

// Comparison is the result of comparing two or more products by id.
type Comparison struct {
	Products       []PricedProduct `json:"products"`
	PriceMin       float64         `json:"priceMin"`
	PriceMax       float64         `json:"priceMax"`
	BestRated      *Product        `json:"bestRated,omitempty"`
	MostAffordable *Product        `json:"mostAffordable,omitempty"`
	CommonFeatures []string        `json:"commonFeatures,omitempty"`
}

// InventoryStats is the admin-facing catalog aggregate.
type InventoryStats struct {
	Total           int                `json:"total"`
	InStock         int                `json:"inStock"`
	OutOfStock      int                `json:"outOfStock"`
	LowStock        int                `json:"lowStock"`
	StockRate       float64            `json:"stockRate"` // percent
	TotalValue      float64            `json:"totalValue"`
	AveragePrice    float64            `json:"averagePrice"`
	CategoryCounts  map[string]int     `json:"categories"`
	BrandCounts     map[string]int     `json:"brands"`
	TopCategory     string             `json:"topCategory"`
	TopBrand        string             `json:"topBrand"`
}
