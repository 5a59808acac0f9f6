package service

import (
	"context"
	"strings"
	"time"

	"market-lens/internal/api/dto"
	"market-lens/internal/api/repository"
	"market-lens/pkg/logger"
	"market-lens/pkg/utils"
)

const historyRange = "1y"

// StockAnalysisService orchestrates market-data fetch, metric
// extraction, scoring, and response formatting for one symbol.
type StockAnalysisService interface {
	Analyze(ctx context.Context, symbol, question string) (*dto.StockAnalysisResponse, error)
	Evaluate(ctx context.Context, symbol string) (*dto.EvaluationResult, error)
	GetQuote(ctx context.Context, symbol string) (*dto.StockQuote, error)
	Search(ctx context.Context, query string) (*dto.SearchResponse, error)
	ExtractMetrics(ctx context.Context, symbol string) (*dto.MetricSet, *dto.YahooQuote, error)
}

type stockAnalysisService struct {
	stockDataRepo repository.StockDataRepository
	extractor     MetricExtractor
	evaluator     StockEvaluator
	logger        *logger.Logger
}

// NewStockAnalysisService creates a new StockAnalysisService.
func NewStockAnalysisService(
	stockDataRepo repository.StockDataRepository,
	extractor MetricExtractor,
	evaluator StockEvaluator,
	log *logger.Logger,
) StockAnalysisService {
	return &stockAnalysisService{
		stockDataRepo: stockDataRepo,
		extractor:     extractor,
		evaluator:     evaluator,
		logger:        log,
	}
}

// ExtractMetrics fetches the quote and trailing-year history and flattens
// them into a MetricSet. A failed history fetch degrades to quote-only
// metrics rather than failing the whole extraction.
func (s *stockAnalysisService) ExtractMetrics(ctx context.Context, symbol string) (*dto.MetricSet, *dto.YahooQuote, error) {
	symbol = normalizeSymbol(symbol)

	quote, err := s.stockDataRepo.GetQuote(ctx, symbol)
	if err != nil {
		return nil, nil, err
	}

	history, err := s.stockDataRepo.GetDailyHistory(ctx, symbol, historyRange)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to fetch price history, continuing with quote data only",
			logger.ErrorField(err), logger.StringField("symbol", symbol))
		history = nil
	}

	return s.extractor.Extract(quote, history), quote, nil
}

func (s *stockAnalysisService) Analyze(ctx context.Context, symbol, question string) (*dto.StockAnalysisResponse, error) {
	symbol = normalizeSymbol(symbol)

	quote, err := s.stockDataRepo.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	history, err := s.stockDataRepo.GetDailyHistory(ctx, symbol, historyRange)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to fetch price history, continuing with quote data only",
			logger.ErrorField(err), logger.StringField("symbol", symbol))
		history = nil
	}

	metrics := s.extractor.Extract(quote, history)

	response := &dto.StockAnalysisResponse{
		Quote:        buildQuote(symbol, quote, metrics),
		Metrics:      buildMetrics(metrics),
		Technical:    buildTechnical(metrics),
		PriceHistory: buildPriceHistory(history),
		Prompt:       repository.BuildStockAnalysisPrompt(symbol, companyName(symbol, quote), metrics, question, ""),
	}
	return response, nil
}

func (s *stockAnalysisService) Evaluate(ctx context.Context, symbol string) (*dto.EvaluationResult, error) {
	metrics, _, err := s.ExtractMetrics(ctx, symbol)
	if err != nil {
		return nil, err
	}

	result := s.evaluator.Evaluate(metrics)

	s.logger.InfoContext(ctx, "Evaluated stock",
		logger.StringField("symbol", normalizeSymbol(symbol)),
		logger.Float64Field("score", result.Score),
		logger.StringField("recommendation", result.Recommendation),
	)
	return &result, nil
}

func (s *stockAnalysisService) GetQuote(ctx context.Context, symbol string) (*dto.StockQuote, error) {
	symbol = normalizeSymbol(symbol)

	quote, err := s.stockDataRepo.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	metrics := s.extractor.Extract(quote, nil)
	result := buildQuote(symbol, quote, metrics)
	return &result, nil
}

func (s *stockAnalysisService) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	results, err := s.stockDataRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return &dto.SearchResponse{Results: results}, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func companyName(symbol string, quote *dto.YahooQuote) string {
	if quote.LongName != "" {
		return quote.LongName
	}
	if quote.ShortName != "" {
		return quote.ShortName
	}
	return symbol
}

func buildQuote(symbol string, quote *dto.YahooQuote, m *dto.MetricSet) dto.StockQuote {
	var volume int64
	if quote.RegularMarketVolume != nil {
		volume = *quote.RegularMarketVolume
	} else if quote.AverageDailyVolume3Month != nil {
		volume = *quote.AverageDailyVolume3Month
	}

	currency := quote.Currency
	if currency == "" {
		currency = "USD"
	}

	return dto.StockQuote{
		Symbol:        symbol,
		Name:          companyName(symbol, quote),
		Price:         m.CurrentPrice,
		Change:        utils.CleanFloatPtr(quote.RegularMarketChange),
		ChangePercent: utils.CleanFloatPtr(quote.RegularMarketChangePercent),
		Volume:        volume,
		MarketCap:     utils.CleanFloatPtr(quote.MarketCap),
		High52Week:    m.High52W,
		Low52Week:     m.Low52W,
		Sector:        orNA(quote.Sector),
		Industry:      orNA(quote.Industry),
		Currency:      currency,
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func buildMetrics(m *dto.MetricSet) dto.FinancialMetrics {
	return dto.FinancialMetrics{
		PERatio:         m.PERatio,
		ForwardPE:       m.ForwardPE,
		PEGRatio:        m.PEGRatio,
		PriceToBook:     m.PriceToBook,
		PriceToSales:    m.PriceToSales,
		ProfitMargin:    m.ProfitMargin,
		OperatingMargin: m.OperatingMargin,
		GrossMargin:     m.GrossMargin,
		ReturnOnEquity:  m.ReturnOnEquity,
		ReturnOnAssets:  m.ReturnOnAssets,
		RevenueGrowth:   m.RevenueGrowth,
		EarningsGrowth:  m.EarningsGrowth,
		DebtToEquity:    m.DebtToEquity,
		CurrentRatio:    m.CurrentRatio,
		QuickRatio:      m.QuickRatio,
		CashPerShare:    m.CashPerShare,
		DividendYield:   m.DividendYield,
		PayoutRatio:     m.PayoutRatio,
	}
}

func buildTechnical(m *dto.MetricSet) dto.TechnicalIndicators {
	var support, resistance *float64
	if m.Low52W != nil {
		support = utils.CleanFloat(*m.Low52W * 0.9)
	}
	if m.High52W != nil {
		resistance = utils.CleanFloat(*m.High52W * 1.1)
	}

	return dto.TechnicalIndicators{
		RSI:              m.RSI,
		MovingAverage50:  m.MA50,
		MovingAverage200: m.MA200,
		Volatility:       m.Volatility,
		SupportLevel:     support,
		ResistanceLevel:  resistance,
	}
}

func buildPriceHistory(history []dto.Candle) []dto.PricePoint {
	points := make([]dto.PricePoint, 0, len(history))
	for _, candle := range history {
		points = append(points, dto.PricePoint{
			Date:   time.Unix(candle.Timestamp, 0).UTC().Format("2006-01-02"),
			Open:   candle.Open,
			High:   candle.High,
			Low:    candle.Low,
			Close:  candle.Close,
			Volume: candle.Volume,
		})
	}
	return points
}
