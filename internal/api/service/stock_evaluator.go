package service

import (
	"fmt"

	"market-lens/internal/api/dto"
)

// Recommendation tiers, from best to worst.
const (
	RecommendationStrongBuy  = "strong buy"
	RecommendationBuy        = "buy"
	RecommendationHold       = "hold"
	RecommendationWeakSell   = "weak sell"
	RecommendationStrongSell = "strong sell"
)

const maxScore = 100.0

// StockEvaluator scores a MetricSet against a fixed rule table.
type StockEvaluator interface {
	Evaluate(metrics *dto.MetricSet) dto.EvaluationResult
}

type stockEvaluator struct{}

// NewStockEvaluator creates the scoring engine. It holds no state and is
// safe for concurrent use.
func NewStockEvaluator() StockEvaluator {
	return &stockEvaluator{}
}

// present reports whether a metric carries a usable value. Zero is
// treated the same as absent: a zero from the vendor means "no data",
// so the metric's whole rule block is skipped, red flags included.
func present(v *float64) bool {
	return v != nil && *v != 0
}

// Evaluate walks the rule table in fixed group order (valuation,
// profitability, growth, health) and accumulates points, positive
// factors, and red flags. It never fails: a missing metric contributes
// nothing.
func (e *stockEvaluator) Evaluate(m *dto.MetricSet) dto.EvaluationResult {
	points := 0.0
	positives := []string{}
	redFlags := []string{}

	// Valuation
	if present(m.PERatio) {
		pe := *m.PERatio
		switch {
		case pe < 15:
			points += 8
			positives = append(positives, fmt.Sprintf("Attractive P/E ratio (%.2f)", pe))
		case pe < 25:
			points += 5
			positives = append(positives, fmt.Sprintf("Moderate P/E ratio (%.2f)", pe))
		default:
			redFlags = append(redFlags, fmt.Sprintf("High P/E ratio (%.2f)", pe))
		}
	}

	if present(m.PEGRatio) {
		peg := *m.PEGRatio
		switch {
		case peg < 1:
			points += 8
			positives = append(positives, fmt.Sprintf("PEG ratio below 1 (%.2f)", peg))
		case peg < 2:
			points += 5
			positives = append(positives, fmt.Sprintf("Fair PEG ratio (%.2f)", peg))
		default:
			redFlags = append(redFlags, fmt.Sprintf("High PEG ratio (%.2f)", peg))
		}
	}

	if present(m.PriceToBook) {
		ptb := *m.PriceToBook
		if ptb < 3 {
			points += 5
			positives = append(positives, fmt.Sprintf("Reasonable price-to-book (%.2f)", ptb))
		} else if ptb > 5 {
			redFlags = append(redFlags, fmt.Sprintf("High price-to-book (%.2f)", ptb))
		}
	}

	if present(m.DebtToEquity) {
		dte := *m.DebtToEquity
		if dte < 0.3 {
			points += 4
			positives = append(positives, fmt.Sprintf("Low debt-to-equity (%.2f)", dte))
		} else if dte > 1 {
			redFlags = append(redFlags, fmt.Sprintf("High debt-to-equity (%.2f)", dte))
		}
	}

	// Profitability
	if present(m.ProfitMargin) {
		pm := *m.ProfitMargin
		switch {
		case pm > 0.2:
			points += 10
			positives = append(positives, fmt.Sprintf("Excellent profit margin (%.1f%%)", pm*100))
		case pm > 0.1:
			points += 7
			positives = append(positives, fmt.Sprintf("Good profit margin (%.1f%%)", pm*100))
		case pm > 0.05:
			points += 4
			positives = append(positives, fmt.Sprintf("Modest profit margin (%.1f%%)", pm*100))
		default:
			redFlags = append(redFlags, fmt.Sprintf("Low profit margin (%.1f%%)", pm*100))
		}
	}

	if present(m.ReturnOnEquity) {
		roe := *m.ReturnOnEquity
		switch {
		case roe > 0.15:
			points += 8
			positives = append(positives, fmt.Sprintf("Strong return on equity (%.1f%%)", roe*100))
		case roe > 0.1:
			points += 5
			positives = append(positives, fmt.Sprintf("Decent return on equity (%.1f%%)", roe*100))
		case roe < 0:
			redFlags = append(redFlags, fmt.Sprintf("Negative return on equity (%.1f%%)", roe*100))
		}
	}

	if present(m.OperatingMargin) {
		om := *m.OperatingMargin
		if om > 0.2 {
			points += 7
			positives = append(positives, fmt.Sprintf("Strong operating margin (%.1f%%)", om*100))
		} else if om < 0 {
			redFlags = append(redFlags, fmt.Sprintf("Negative operating margin (%.1f%%)", om*100))
		}
	}

	// Growth
	if present(m.RevenueGrowth) {
		rg := *m.RevenueGrowth
		switch {
		case rg > 0.2:
			points += 10
			positives = append(positives, fmt.Sprintf("Strong revenue growth (%.1f%%)", rg*100))
		case rg > 0.1:
			points += 7
			positives = append(positives, fmt.Sprintf("Solid revenue growth (%.1f%%)", rg*100))
		case rg > 0.05:
			points += 4
			positives = append(positives, fmt.Sprintf("Moderate revenue growth (%.1f%%)", rg*100))
		case rg < 0:
			redFlags = append(redFlags, fmt.Sprintf("Declining revenue (%.1f%%)", rg*100))
		}
	}

	if present(m.EarningsGrowth) {
		eg := *m.EarningsGrowth
		switch {
		case eg > 0.2:
			points += 10
			positives = append(positives, fmt.Sprintf("Strong earnings growth (%.1f%%)", eg*100))
		case eg > 0.1:
			points += 7
			positives = append(positives, fmt.Sprintf("Solid earnings growth (%.1f%%)", eg*100))
		case eg < 0:
			redFlags = append(redFlags, fmt.Sprintf("Declining earnings (%.1f%%)", eg*100))
		}
	}

	if present(m.PriceChange1Y) {
		pc := *m.PriceChange1Y
		if pc > 20 {
			points += 5
			positives = append(positives, fmt.Sprintf("Strong price momentum over one year (%.1f%%)", pc))
		} else if pc < -20 {
			redFlags = append(redFlags, fmt.Sprintf("Steep price decline over one year (%.1f%%)", pc))
		}
	}

	// Financial health and technicals
	if present(m.CurrentRatio) {
		cr := *m.CurrentRatio
		switch {
		case cr > 2:
			points += 8
			positives = append(positives, fmt.Sprintf("Very healthy current ratio (%.2f)", cr))
		case cr > 1:
			points += 5
			positives = append(positives, fmt.Sprintf("Adequate current ratio (%.2f)", cr))
		default:
			redFlags = append(redFlags, fmt.Sprintf("Low current ratio (%.2f)", cr))
		}
	}

	if present(m.CashPerShare) {
		if *m.CashPerShare > 5 {
			points += 5
			positives = append(positives, fmt.Sprintf("Strong cash per share (%.2f)", *m.CashPerShare))
		}
	}

	if present(m.RSI) {
		rsi := *m.RSI
		switch {
		case rsi >= 30 && rsi <= 70:
			points += 5
			positives = append(positives, fmt.Sprintf("RSI in healthy range (%.1f)", rsi))
		case rsi < 30:
			positives = append(positives, fmt.Sprintf("RSI indicates oversold conditions (%.1f)", rsi))
		default:
			positives = append(positives, fmt.Sprintf("RSI indicates overbought conditions (%.1f)", rsi))
		}
	}

	if present(m.CurrentPrice) && present(m.MA50) && present(m.MA200) {
		price, ma50, ma200 := *m.CurrentPrice, *m.MA50, *m.MA200
		if price > ma50 && ma50 > ma200 {
			points += 7
			positives = append(positives, "Golden cross: price above both moving averages")
		} else if price < ma50 && ma50 < ma200 {
			redFlags = append(redFlags, "Death cross: price below both moving averages")
		}
	}

	score := points / maxScore * 100

	return dto.EvaluationResult{
		Score:           score,
		Recommendation:  recommendationForScore(score),
		PositiveFactors: positives,
		RedFlags:        redFlags,
	}
}

func recommendationForScore(score float64) string {
	switch {
	case score >= 75:
		return RecommendationStrongBuy
	case score >= 60:
		return RecommendationBuy
	case score >= 40:
		return RecommendationHold
	case score >= 25:
		return RecommendationWeakSell
	default:
		return RecommendationStrongSell
	}
}
