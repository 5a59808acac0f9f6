package service

import (
	"market-lens/internal/api/dto"
	"market-lens/pkg/formulas"
	"market-lens/pkg/utils"
)

// MetricExtractor flattens a vendor quote record plus a trailing daily
// price series into the MetricSet vocabulary the evaluator consumes.
type MetricExtractor interface {
	Extract(quote *dto.YahooQuote, history []dto.Candle) *dto.MetricSet
}

type metricExtractor struct{}

// NewMetricExtractor creates the extractor. Pure; safe for concurrent use.
func NewMetricExtractor() MetricExtractor {
	return &metricExtractor{}
}

// Extract never fails: every field degrades to absent independently when
// the vendor omits it or the series is too short to derive it. NaN and
// Inf are converted to absent here so they can never leak into JSON.
func (e *metricExtractor) Extract(quote *dto.YahooQuote, history []dto.Candle) *dto.MetricSet {
	m := &dto.MetricSet{}

	if quote != nil {
		m.PERatio = utils.CleanFloatPtr(quote.TrailingPE)
		m.ForwardPE = utils.CleanFloatPtr(quote.ForwardPE)
		m.PEGRatio = utils.CleanFloatPtr(quote.PEGRatio)
		m.PriceToBook = utils.CleanFloatPtr(quote.PriceToBook)
		m.PriceToSales = utils.CleanFloatPtr(quote.PriceToSales)
		m.DebtToEquity = utils.CleanFloatPtr(quote.DebtToEquity)

		m.ProfitMargin = utils.CleanFloatPtr(quote.ProfitMargins)
		m.OperatingMargin = utils.CleanFloatPtr(quote.OperatingMargins)
		m.GrossMargin = utils.CleanFloatPtr(quote.GrossMargins)
		m.ReturnOnEquity = utils.CleanFloatPtr(quote.ReturnOnEquity)
		m.ReturnOnAssets = utils.CleanFloatPtr(quote.ReturnOnAssets)

		m.RevenueGrowth = utils.CleanFloatPtr(quote.RevenueGrowth)
		m.EarningsGrowth = utils.CleanFloatPtr(quote.EarningsGrowth)

		m.CurrentRatio = utils.CleanFloatPtr(quote.CurrentRatio)
		m.QuickRatio = utils.CleanFloatPtr(quote.QuickRatio)
		m.CashPerShare = utils.CleanFloatPtr(quote.TotalCashPerShare)
		m.FreeCashFlow = utils.CleanFloatPtr(quote.FreeCashflow)
		m.DividendYield = utils.CleanFloatPtr(quote.DividendYield)
		m.PayoutRatio = utils.CleanFloatPtr(quote.PayoutRatio)

		m.CurrentPrice = utils.CleanFloatPtr(quote.RegularMarketPrice)
		m.Beta = utils.CleanFloatPtr(quote.Beta)
		m.High52W = utils.CleanFloatPtr(quote.FiftyTwoWeekHigh)
		m.Low52W = utils.CleanFloatPtr(quote.FiftyTwoWeekLow)
	}

	if len(history) == 0 {
		return m
	}

	closes := make([]float64, len(history))
	for i, candle := range history {
		closes[i] = candle.Close
	}

	if m.CurrentPrice == nil {
		m.CurrentPrice = utils.CleanFloat(closes[len(closes)-1])
	}
	if m.High52W == nil {
		high := history[0].High
		for _, candle := range history[1:] {
			if candle.High > high {
				high = candle.High
			}
		}
		m.High52W = utils.CleanFloat(high)
	}
	if m.Low52W == nil {
		low := history[0].Low
		for _, candle := range history[1:] {
			if candle.Low < low {
				low = candle.Low
			}
		}
		m.Low52W = utils.CleanFloat(low)
	}

	m.MA50 = formulas.SMA(closes, 50)
	m.MA200 = formulas.SMA(closes, 200)
	m.RSI = formulas.RSI(closes, 14)
	m.PriceChange1Y = formulas.PercentChange(closes)

	if vol := formulas.AnnualizedVolatility(formulas.Returns(closes)); vol != nil {
		// Reported in percent, like the rest of the technical block.
		m.Volatility = utils.CleanFloat(*vol * 100)
	}

	return m
}
