package service

import (
	"context"
	"errors"
	"testing"

	"market-lens/internal/api/dto"
	"market-lens/internal/api/repository"
	"market-lens/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStockDataRepo struct {
	quote      *dto.YahooQuote
	quoteErr   error
	history    []dto.Candle
	historyErr error
	results    []dto.SearchResult

	lastQuoteSymbol   string
	lastHistorySymbol string
	lastHistoryRange  string
}

func (f *fakeStockDataRepo) GetQuote(ctx context.Context, symbol string) (*dto.YahooQuote, error) {
	f.lastQuoteSymbol = symbol
	return f.quote, f.quoteErr
}

func (f *fakeStockDataRepo) GetDailyHistory(ctx context.Context, symbol, dataRange string) ([]dto.Candle, error) {
	f.lastHistorySymbol = symbol
	f.lastHistoryRange = dataRange
	return f.history, f.historyErr
}

func (f *fakeStockDataRepo) Search(ctx context.Context, query string) ([]dto.SearchResult, error) {
	return f.results, nil
}

func newTestStockService(repo repository.StockDataRepository) StockAnalysisService {
	log, _ := logger.New("error", "console")
	return NewStockAnalysisService(repo, NewMetricExtractor(), NewStockEvaluator(), log)
}

func TestAnalyze_BuildsFullResponse(t *testing.T) {
	repo := &fakeStockDataRepo{
		quote: &dto.YahooQuote{
			Symbol:             "AAPL",
			LongName:           "Apple Inc.",
			Currency:           "USD",
			RegularMarketPrice: fp(185),
			FiftyTwoWeekHigh:   fp(200),
			FiftyTwoWeekLow:    fp(150),
			TrailingPE:         fp(28),
		},
		history: candlesFromCloses([]float64{180, 182, 184, 183, 185}),
	}
	svc := newTestStockService(repo)

	resp, err := svc.Analyze(context.Background(), "  aapl ", "apakah layak dibeli?")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", repo.lastQuoteSymbol)
	assert.Equal(t, "1y", repo.lastHistoryRange)

	assert.Equal(t, "AAPL", resp.Quote.Symbol)
	assert.Equal(t, "Apple Inc.", resp.Quote.Name)
	require.NotNil(t, resp.Quote.Price)
	assert.Equal(t, 185.0, *resp.Quote.Price)

	require.NotNil(t, resp.Metrics.PERatio)
	assert.Equal(t, 28.0, *resp.Metrics.PERatio)

	require.NotNil(t, resp.Technical.SupportLevel)
	assert.InDelta(t, 135.0, *resp.Technical.SupportLevel, 1e-9)
	require.NotNil(t, resp.Technical.ResistanceLevel)
	assert.InDelta(t, 220.0, *resp.Technical.ResistanceLevel, 1e-9)

	require.Len(t, resp.PriceHistory, 5)
	assert.Equal(t, 185.0, resp.PriceHistory[4].Close)

	assert.Contains(t, resp.Prompt, "AAPL")
	assert.Contains(t, resp.Prompt, "Apple Inc.")
	assert.Contains(t, resp.Prompt, "apakah layak dibeli?")
}

func TestAnalyze_QuoteErrorPropagates(t *testing.T) {
	repo := &fakeStockDataRepo{quoteErr: repository.ErrNoData}
	svc := newTestStockService(repo)

	_, err := svc.Analyze(context.Background(), "NOPE", "")
	assert.ErrorIs(t, err, repository.ErrNoData)
}

func TestAnalyze_HistoryFailureDegradesToQuoteOnly(t *testing.T) {
	repo := &fakeStockDataRepo{
		quote: &dto.YahooQuote{
			Symbol:             "MSFT",
			ShortName:          "Microsoft",
			RegularMarketPrice: fp(410),
		},
		historyErr: errors.New("upstream timeout"),
	}
	svc := newTestStockService(repo)

	resp, err := svc.Analyze(context.Background(), "MSFT", "")
	require.NoError(t, err)

	assert.Equal(t, "Microsoft", resp.Quote.Name)
	assert.Empty(t, resp.PriceHistory)
	assert.Nil(t, resp.Technical.MovingAverage50)
}

func TestEvaluate_UsesExtractedMetrics(t *testing.T) {
	repo := &fakeStockDataRepo{
		quote: &dto.YahooQuote{
			Symbol:        "BBCA.JK",
			TrailingPE:    fp(12),  // +8
			ProfitMargins: fp(0.3), // +10
		},
	}
	svc := newTestStockService(repo)

	result, err := svc.Evaluate(context.Background(), "bbca.jk")
	require.NoError(t, err)

	assert.InDelta(t, 18.0, result.Score, 1e-9)
	assert.Equal(t, RecommendationStrongSell, result.Recommendation)
	assert.Len(t, result.PositiveFactors, 2)
}

func TestEvaluate_StrongFundamentalsWithUptrend(t *testing.T) {
	// 250 trading days trending from 100 up to ~150 keeps the price above
	// both moving averages and the yearly change above +20%.
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.2
	}

	repo := &fakeStockDataRepo{
		quote: &dto.YahooQuote{
			Symbol:             "WINR",
			RegularMarketPrice: fp(closes[len(closes)-1]),
			TrailingPE:         fp(12),
			PEGRatio:           fp(0.8),
			PriceToBook:        fp(2),
			DebtToEquity:       fp(0.2),
			ProfitMargins:      fp(0.25),
			OperatingMargins:   fp(0.25),
			ReturnOnEquity:     fp(0.2),
			RevenueGrowth:      fp(0.25),
			EarningsGrowth:     fp(0.25),
			CurrentRatio:       fp(2.5),
			TotalCashPerShare:  fp(10),
		},
		history: candlesFromCloses(closes),
	}
	svc := newTestStockService(repo)

	result, err := svc.Evaluate(context.Background(), "WINR")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Score, 75.0)
	assert.Equal(t, RecommendationStrongBuy, result.Recommendation)
	assert.Empty(t, result.RedFlags)
}

func TestGetQuote_DefaultsForMissingFields(t *testing.T) {
	repo := &fakeStockDataRepo{
		quote: &dto.YahooQuote{Symbol: "XYZ"},
	}
	svc := newTestStockService(repo)

	quote, err := svc.GetQuote(context.Background(), "xyz")
	require.NoError(t, err)

	assert.Equal(t, "XYZ", quote.Symbol)
	assert.Equal(t, "XYZ", quote.Name)
	assert.Equal(t, "N/A", quote.Sector)
	assert.Equal(t, "N/A", quote.Industry)
	assert.Equal(t, "USD", quote.Currency)
	assert.Nil(t, quote.Price)
}

func TestSearch_WrapsRepositoryResults(t *testing.T) {
	repo := &fakeStockDataRepo{
		results: []dto.SearchResult{{Symbol: "GOTO.JK", Name: "GoTo Gojek Tokopedia"}},
	}
	svc := newTestStockService(repo)

	resp, err := svc.Search(context.Background(), "goto")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "GOTO.JK", resp.Results[0].Symbol)
}

func TestBuildPriceHistory_FormatsDates(t *testing.T) {
	history := []dto.Candle{
		{Timestamp: 1704067200, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 42},
	}

	points := buildPriceHistory(history)

	require.Len(t, points, 1)
	assert.Equal(t, "2024-01-01", points[0].Date)
	assert.Equal(t, 1.5, points[0].Close)
	assert.Equal(t, int64(42), points[0].Volume)
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "AAPL", normalizeSymbol(" aapl "))
	assert.Equal(t, "BBCA.JK", normalizeSymbol("bbca.jk"))
}
