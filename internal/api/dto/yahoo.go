package dto

// YahooQuoteResponse is the envelope of the v7 quote API.
type YahooQuoteResponse struct {
	QuoteResponse struct {
		Result []YahooQuote `json:"result"`
		Error  interface{}  `json:"error"`
	} `json:"quoteResponse"`
}

// YahooQuote is one quote record from the v7 quote API. Every numeric
// field is optional; Yahoo omits whatever it does not have for a symbol.
type YahooQuote struct {
	Symbol                     string   `json:"symbol"`
	LongName                   string   `json:"longName"`
	ShortName                  string   `json:"shortName"`
	Currency                   string   `json:"currency"`
	Sector                     string   `json:"sector"`
	Industry                   string   `json:"industry"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChange        *float64 `json:"regularMarketChange"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	RegularMarketVolume        *int64   `json:"regularMarketVolume"`
	AverageDailyVolume3Month   *int64   `json:"averageDailyVolume3Month"`
	MarketCap                  *float64 `json:"marketCap"`
	FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            *float64 `json:"fiftyTwoWeekLow"`
	TrailingPE                 *float64 `json:"trailingPE"`
	ForwardPE                  *float64 `json:"forwardPE"`
	PEGRatio                   *float64 `json:"pegRatio"`
	PriceToBook                *float64 `json:"priceToBook"`
	PriceToSales               *float64 `json:"priceToSalesTrailing12Months"`
	DebtToEquity               *float64 `json:"debtToEquity"`
	ProfitMargins              *float64 `json:"profitMargins"`
	OperatingMargins           *float64 `json:"operatingMargins"`
	GrossMargins               *float64 `json:"grossMargins"`
	ReturnOnEquity             *float64 `json:"returnOnEquity"`
	ReturnOnAssets             *float64 `json:"returnOnAssets"`
	RevenueGrowth              *float64 `json:"revenueGrowth"`
	EarningsGrowth             *float64 `json:"earningsGrowth"`
	CurrentRatio               *float64 `json:"currentRatio"`
	QuickRatio                 *float64 `json:"quickRatio"`
	TotalCashPerShare          *float64 `json:"totalCashPerShare"`
	FreeCashflow               *float64 `json:"freeCashflow"`
	DividendYield              *float64 `json:"dividendYield"`
	PayoutRatio                *float64 `json:"payoutRatio"`
	Beta                       *float64 `json:"beta"`
}

// YahooChartResponse is the envelope of the v8 chart API.
type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// Candle is one daily OHLCV bar after null entries are dropped.
type Candle struct {
	Timestamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// YahooSearchResponse is the envelope of the v1 search API.
type YahooSearchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}
