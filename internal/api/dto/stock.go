package dto

// StockAnalysisRequest is the request body for stock analysis endpoints.
type StockAnalysisRequest struct {
	Symbol   string `json:"symbol" validate:"required"`
	Question string `json:"question"`
}

// StockEvaluationRequest is the request body for the evaluation endpoint.
type StockEvaluationRequest struct {
	Symbol string `json:"symbol" validate:"required"`
}

// StockQuote is the quote block of an analysis response.
type StockQuote struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Price         *float64 `json:"price"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"changePercent"`
	Volume        int64    `json:"volume"`
	MarketCap     *float64 `json:"marketCap"`
	High52Week    *float64 `json:"high52Week"`
	Low52Week     *float64 `json:"low52Week"`
	Sector        string   `json:"sector"`
	Industry      string   `json:"industry"`
	Currency      string   `json:"currency"`
}

// FinancialMetrics is the camelCase metrics block served to the front end.
type FinancialMetrics struct {
	PERatio         *float64 `json:"peRatio"`
	ForwardPE       *float64 `json:"forwardPE"`
	PEGRatio        *float64 `json:"pegRatio"`
	PriceToBook     *float64 `json:"priceToBook"`
	PriceToSales    *float64 `json:"priceToSales"`
	ProfitMargin    *float64 `json:"profitMargin"`
	OperatingMargin *float64 `json:"operatingMargin"`
	GrossMargin     *float64 `json:"grossMargin"`
	ReturnOnEquity  *float64 `json:"returnOnEquity"`
	ReturnOnAssets  *float64 `json:"returnOnAssets"`
	RevenueGrowth   *float64 `json:"revenueGrowth"`
	EarningsGrowth  *float64 `json:"earningsGrowth"`
	DebtToEquity    *float64 `json:"debtToEquity"`
	CurrentRatio    *float64 `json:"currentRatio"`
	QuickRatio      *float64 `json:"quickRatio"`
	CashPerShare    *float64 `json:"cashPerShare"`
	DividendYield   *float64 `json:"dividendYield"`
	PayoutRatio     *float64 `json:"payoutRatio"`
}

// TechnicalIndicators is the technical block of an analysis response.
type TechnicalIndicators struct {
	RSI              *float64 `json:"rsi"`
	MovingAverage50  *float64 `json:"movingAverage50"`
	MovingAverage200 *float64 `json:"movingAverage200"`
	Volatility       *float64 `json:"volatility"`
	SupportLevel     *float64 `json:"supportLevel"`
	ResistanceLevel  *float64 `json:"resistanceLevel"`
}

// PricePoint is one daily OHLCV entry in the price history.
type PricePoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// StockAnalysisResponse is the full analysis document for one symbol.
type StockAnalysisResponse struct {
	Quote        StockQuote          `json:"quote"`
	Metrics      FinancialMetrics    `json:"metrics"`
	Technical    TechnicalIndicators `json:"technical"`
	PriceHistory []PricePoint        `json:"priceHistory"`
	Prompt       string              `json:"prompt"`
}

// SearchResult is one match from symbol search.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

// SearchResponse wraps symbol search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// NewsItem is one headline for a symbol.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

// NewsResponse wraps the headline list for a symbol.
type NewsResponse struct {
	Symbol string     `json:"symbol"`
	Items  []NewsItem `json:"items"`
}
