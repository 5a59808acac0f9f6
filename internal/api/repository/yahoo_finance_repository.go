package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"market-lens/internal/api/config"
	"market-lens/internal/api/dto"
	"market-lens/pkg/logger"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const quoteFields = "symbol,longName,shortName,currency,sector,industry," +
	"regularMarketPrice,regularMarketChange,regularMarketChangePercent," +
	"regularMarketVolume,averageDailyVolume3Month,marketCap," +
	"fiftyTwoWeekHigh,fiftyTwoWeekLow,trailingPE,forwardPE,pegRatio," +
	"priceToBook,priceToSalesTrailing12Months,debtToEquity,profitMargins," +
	"operatingMargins,grossMargins,returnOnEquity,returnOnAssets," +
	"revenueGrowth,earningsGrowth,currentRatio,quickRatio,totalCashPerShare," +
	"freeCashflow,dividendYield,payoutRatio,beta"

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	inmemoryCache  *cache.Cache
}

// NewYahooFinanceRepository creates a Yahoo Finance client with a
// per-minute request limiter and a short in-process response cache.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) StockDataRepository {
	// Zero or unset means no throttling.
	limit := rate.Inf
	if cfg.YahooFinance.MaxRequestPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute))
	}
	requestLimiter := rate.NewLimiter(limit, 1)

	ttl := time.Duration(cfg.YahooFinance.CacheTTLSeconds) * time.Second
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		requestLimiter: requestLimiter,
		inmemoryCache:  cache.New(ttl, 2*ttl),
	}
}

func (r *yahooFinanceRepository) GetQuote(ctx context.Context, symbol string) (*dto.YahooQuote, error) {
	cacheKey := "quote:" + symbol
	if cached, found := r.inmemoryCache.Get(cacheKey); found {
		return cached.(*dto.YahooQuote), nil
	}

	params := url.Values{}
	params.Add("symbols", symbol)
	params.Add("fields", quoteFields)
	reqURL := fmt.Sprintf("%s/v7/finance/quote?%s", r.cfg.YahooFinance.BaseURL, params.Encode())

	body, err := r.sendRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response dto.YahooQuoteResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if response.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo quote API error: %v", response.QuoteResponse.Error)
	}
	if len(response.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	quote := response.QuoteResponse.Result[0]
	r.inmemoryCache.Set(cacheKey, &quote, cache.DefaultExpiration)
	return &quote, nil
}

func (r *yahooFinanceRepository) GetDailyHistory(ctx context.Context, symbol string, dataRange string) ([]dto.Candle, error) {
	cacheKey := "chart:" + symbol + ":" + dataRange
	if cached, found := r.inmemoryCache.Get(cacheKey); found {
		return cached.([]dto.Candle), nil
	}

	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("range", dataRange)
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		r.cfg.YahooFinance.BaseURL, url.PathEscape(symbol), params.Encode())

	body, err := r.sendRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response dto.YahooChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if response.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart API error: %v", response.Chart.Error)
	}
	if len(response.Chart.Result) == 0 || len(response.Chart.Result[0].Indicators.Quote) == 0 {
		r.log.WarnContext(ctx, "No chart data returned", logger.StringField("symbol", symbol))
		return []dto.Candle{}, nil
	}

	chartData := response.Chart.Result[0]
	quote := chartData.Indicators.Quote[0]

	// Yahoo interleaves null entries for non-trading timestamps.
	candles := make([]dto.Candle, 0, len(chartData.Timestamp))
	for i := range chartData.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			continue
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		var volume int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		candles = append(candles, dto.Candle{
			Timestamp: chartData.Timestamp[i],
			Open:      *quote.Open[i],
			High:      *quote.High[i],
			Low:       *quote.Low[i],
			Close:     *quote.Close[i],
			Volume:    volume,
		})
	}

	r.log.DebugContext(ctx, "Fetched daily history",
		logger.StringField("symbol", symbol),
		logger.StringField("range", dataRange),
		logger.IntField("candles", len(candles)),
	)

	r.inmemoryCache.Set(cacheKey, candles, cache.DefaultExpiration)
	return candles, nil
}

func (r *yahooFinanceRepository) Search(ctx context.Context, query string) ([]dto.SearchResult, error) {
	params := url.Values{}
	params.Add("q", query)
	reqURL := fmt.Sprintf("%s/v1/finance/search?%s", r.cfg.YahooFinance.SearchBaseURL, params.Encode())

	body, err := r.sendRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response dto.YahooSearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]dto.SearchResult, 0, len(response.Quotes))
	for _, q := range response.Quotes {
		if q.Symbol == "" {
			continue
		}
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		results = append(results, dto.SearchResult{
			Symbol:   q.Symbol,
			Name:     name,
			Exchange: q.Exchange,
			Type:     q.QuoteType,
		})
	}
	return results, nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, reqURL string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("url", reqURL),
		zap.Int("max_request_per_minute", r.cfg.YahooFinance.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance API", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from Yahoo Finance API", fields...)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from Yahoo Finance API", fields...)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	return body, nil
}
