package dto

// MetricSet is the flat bag of fundamentals and technicals for one symbol
// at evaluation time. Every field is optional: nil means the vendor did
// not supply the value or it could not be derived from the price series.
// The evaluator additionally treats an explicit zero the same as nil.
type MetricSet struct {
	// Valuation
	PERatio      *float64 `json:"pe_ratio"`
	ForwardPE    *float64 `json:"forward_pe"`
	PEGRatio     *float64 `json:"peg_ratio"`
	PriceToBook  *float64 `json:"price_to_book"`
	PriceToSales *float64 `json:"price_to_sales"`
	DebtToEquity *float64 `json:"debt_to_equity"`

	// Profitability
	ProfitMargin    *float64 `json:"profit_margin"`
	OperatingMargin *float64 `json:"operating_margin"`
	GrossMargin     *float64 `json:"gross_margin"`
	ReturnOnEquity  *float64 `json:"return_on_equity"`
	ReturnOnAssets  *float64 `json:"return_on_assets"`

	// Growth
	RevenueGrowth  *float64 `json:"revenue_growth"`
	EarningsGrowth *float64 `json:"earnings_growth"`
	PriceChange1Y  *float64 `json:"price_change_1y"`

	// Financial health and liquidity
	CurrentRatio  *float64 `json:"current_ratio"`
	QuickRatio    *float64 `json:"quick_ratio"`
	CashPerShare  *float64 `json:"cash_per_share"`
	FreeCashFlow  *float64 `json:"free_cash_flow"`
	DividendYield *float64 `json:"dividend_yield"`
	PayoutRatio   *float64 `json:"payout_ratio"`

	// Technical
	CurrentPrice *float64 `json:"current_price"`
	MA50         *float64 `json:"ma_50"`
	MA200        *float64 `json:"ma_200"`
	RSI          *float64 `json:"rsi"`
	Volatility   *float64 `json:"volatility"`
	Beta         *float64 `json:"beta"`
	High52W      *float64 `json:"high_52w"`
	Low52W       *float64 `json:"low_52w"`
}

// EvaluationResult is the outcome of scoring one MetricSet. The factor
// slices are never nil so they serialize as JSON arrays, not null.
type EvaluationResult struct {
	Score           float64  `json:"score"`
	Recommendation  string   `json:"recommendation"`
	PositiveFactors []string `json:"positiveFactors"`
	RedFlags        []string `json:"redFlags"`
}
