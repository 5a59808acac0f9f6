package service

import (
	"testing"

	"market-lens/internal/api/dto"
	"market-lens/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 {
	return utils.ToPointer(v)
}

func TestEvaluate_EmptyMetrics(t *testing.T) {
	evaluator := NewStockEvaluator()

	result := evaluator.Evaluate(&dto.MetricSet{})

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, RecommendationStrongSell, result.Recommendation)
	require.NotNil(t, result.PositiveFactors)
	require.NotNil(t, result.RedFlags)
	assert.Empty(t, result.PositiveFactors)
	assert.Empty(t, result.RedFlags)
}

func TestEvaluate_ZeroValueSkipsRule(t *testing.T) {
	evaluator := NewStockEvaluator()

	// A zero debt-to-equity means the vendor had no data, so the rule
	// contributes neither points nor a flag.
	zero := evaluator.Evaluate(&dto.MetricSet{DebtToEquity: fp(0)})
	assert.Equal(t, 0.0, zero.Score)
	assert.Empty(t, zero.PositiveFactors)
	assert.Empty(t, zero.RedFlags)

	// A barely positive value is a real reading and scores.
	tiny := evaluator.Evaluate(&dto.MetricSet{DebtToEquity: fp(0.0001)})
	assert.InDelta(t, 4.0, tiny.Score, 1e-9)
	assert.Len(t, tiny.PositiveFactors, 1)
}

func TestEvaluate_PERatioBands(t *testing.T) {
	evaluator := NewStockEvaluator()

	tests := []struct {
		name          string
		pe            float64
		wantScore     float64
		wantPositives int
		wantRedFlags  int
	}{
		{"below cheap threshold", 14.999, 8, 1, 0},
		{"exactly at cheap threshold", 15, 5, 1, 0},
		{"moderate", 24.999, 5, 1, 0},
		{"exactly at expensive threshold", 25, 0, 0, 1},
		{"expensive", 40, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluator.Evaluate(&dto.MetricSet{PERatio: fp(tt.pe)})
			assert.InDelta(t, tt.wantScore, result.Score, 1e-9)
			assert.Len(t, result.PositiveFactors, tt.wantPositives)
			assert.Len(t, result.RedFlags, tt.wantRedFlags)
		})
	}
}

func TestEvaluate_ProfitMarginBands(t *testing.T) {
	evaluator := NewStockEvaluator()

	tests := []struct {
		name      string
		margin    float64
		wantScore float64
		redFlag   bool
	}{
		{"thin margin flagged", 0.04, 0, true},
		{"modest margin", 0.06, 4, false},
		{"good margin", 0.11, 7, false},
		{"excellent margin", 0.21, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluator.Evaluate(&dto.MetricSet{ProfitMargin: fp(tt.margin)})
			assert.InDelta(t, tt.wantScore, result.Score, 1e-9)
			if tt.redFlag {
				assert.Len(t, result.RedFlags, 1)
			} else {
				assert.Empty(t, result.RedFlags)
			}
		})
	}
}

func TestEvaluate_CurrentRatioBands(t *testing.T) {
	evaluator := NewStockEvaluator()

	tests := []struct {
		name      string
		ratio     float64
		wantScore float64
	}{
		{"above two", 2.001, 8},
		{"exactly two", 2.0, 5},
		{"above one", 1.5, 5},
		{"at or below one", 0.8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluator.Evaluate(&dto.MetricSet{CurrentRatio: fp(tt.ratio)})
			assert.InDelta(t, tt.wantScore, result.Score, 1e-9)
		})
	}
}

func TestEvaluate_RSINotesAreNotRedFlags(t *testing.T) {
	evaluator := NewStockEvaluator()

	oversold := evaluator.Evaluate(&dto.MetricSet{RSI: fp(25)})
	assert.Equal(t, 0.0, oversold.Score)
	require.Len(t, oversold.PositiveFactors, 1)
	assert.Contains(t, oversold.PositiveFactors[0], "oversold")
	assert.Empty(t, oversold.RedFlags)

	overbought := evaluator.Evaluate(&dto.MetricSet{RSI: fp(75)})
	assert.Equal(t, 0.0, overbought.Score)
	require.Len(t, overbought.PositiveFactors, 1)
	assert.Contains(t, overbought.PositiveFactors[0], "overbought")
	assert.Empty(t, overbought.RedFlags)

	healthy := evaluator.Evaluate(&dto.MetricSet{RSI: fp(50)})
	assert.InDelta(t, 5.0, healthy.Score, 1e-9)
	assert.Empty(t, healthy.RedFlags)
}

func TestEvaluate_MovingAverageCross(t *testing.T) {
	evaluator := NewStockEvaluator()

	golden := evaluator.Evaluate(&dto.MetricSet{
		CurrentPrice: fp(120),
		MA50:         fp(110),
		MA200:        fp(100),
	})
	assert.InDelta(t, 7.0, golden.Score, 1e-9)
	require.Len(t, golden.PositiveFactors, 1)
	assert.Contains(t, golden.PositiveFactors[0], "Golden cross")

	death := evaluator.Evaluate(&dto.MetricSet{
		CurrentPrice: fp(80),
		MA50:         fp(90),
		MA200:        fp(100),
	})
	assert.Equal(t, 0.0, death.Score)
	require.Len(t, death.RedFlags, 1)
	assert.Contains(t, death.RedFlags[0], "Death cross")

	// Flat averages produce neither signal.
	flat := evaluator.Evaluate(&dto.MetricSet{
		CurrentPrice: fp(100),
		MA50:         fp(100),
		MA200:        fp(100),
	})
	assert.Equal(t, 0.0, flat.Score)
	assert.Empty(t, flat.PositiveFactors)
	assert.Empty(t, flat.RedFlags)

	// The cross rules need all three inputs.
	partial := evaluator.Evaluate(&dto.MetricSet{
		CurrentPrice: fp(120),
		MA50:         fp(110),
	})
	assert.Equal(t, 0.0, partial.Score)
}

func TestEvaluate_StrongFundamentals(t *testing.T) {
	evaluator := NewStockEvaluator()

	metrics := &dto.MetricSet{
		PERatio:         fp(12),   // +8
		PEGRatio:        fp(0.8),  // +8
		PriceToBook:     fp(2),    // +5
		DebtToEquity:    fp(0.2),  // +4
		ProfitMargin:    fp(0.25), // +10
		ReturnOnEquity:  fp(0.2),  // +8
		OperatingMargin: fp(0.25), // +7
		RevenueGrowth:   fp(0.25), // +10
		EarningsGrowth:  fp(0.25), // +10
		PriceChange1Y:   fp(30),   // +5
		CurrentRatio:    fp(2.5),  // +8
		CashPerShare:    fp(10),   // +5
		RSI:             fp(55),   // +5
		CurrentPrice:    fp(120),  // golden cross +7
		MA50:            fp(110),
		MA200:           fp(100),
	}

	result := evaluator.Evaluate(metrics)

	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, RecommendationStrongBuy, result.Recommendation)
	assert.Len(t, result.PositiveFactors, 14)
	assert.Empty(t, result.RedFlags)
}

func TestEvaluate_WeakFundamentals(t *testing.T) {
	evaluator := NewStockEvaluator()

	metrics := &dto.MetricSet{
		PERatio:         fp(40),
		PEGRatio:        fp(3),
		PriceToBook:     fp(6),
		DebtToEquity:    fp(2),
		ProfitMargin:    fp(0.01),
		ReturnOnEquity:  fp(-0.05),
		OperatingMargin: fp(-0.1),
		RevenueGrowth:   fp(-0.1),
		EarningsGrowth:  fp(-0.2),
		PriceChange1Y:   fp(-40),
		CurrentRatio:    fp(0.5),
		CurrentPrice:    fp(80),
		MA50:            fp(90),
		MA200:           fp(100),
	}

	result := evaluator.Evaluate(metrics)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, RecommendationStrongSell, result.Recommendation)
	assert.Empty(t, result.PositiveFactors)
	assert.Len(t, result.RedFlags, 12)
}

func TestEvaluate_FactorsKeepGroupOrder(t *testing.T) {
	evaluator := NewStockEvaluator()

	// Valuation rules run before profitability, which run before health,
	// so the flag and factor lists follow that order regardless of value.
	metrics := &dto.MetricSet{
		PERatio:      fp(30),   // valuation red flag
		ProfitMargin: fp(0.25), // profitability positive
		CurrentRatio: fp(0.5),  // health red flag
	}

	result := evaluator.Evaluate(metrics)

	require.Len(t, result.RedFlags, 2)
	assert.Contains(t, result.RedFlags[0], "P/E ratio")
	assert.Contains(t, result.RedFlags[1], "current ratio")

	require.Len(t, result.PositiveFactors, 1)
	assert.Contains(t, result.PositiveFactors[0], "profit margin")

	// A positive in every group keeps the same walk order.
	full := evaluator.Evaluate(&dto.MetricSet{
		PERatio:       fp(12),
		ProfitMargin:  fp(0.25),
		RevenueGrowth: fp(0.25),
		CurrentRatio:  fp(2.5),
	})
	require.Len(t, full.PositiveFactors, 4)
	assert.Contains(t, full.PositiveFactors[0], "P/E ratio")
	assert.Contains(t, full.PositiveFactors[1], "profit margin")
	assert.Contains(t, full.PositiveFactors[2], "revenue growth")
	assert.Contains(t, full.PositiveFactors[3], "current ratio")
}

func TestEvaluate_IsPure(t *testing.T) {
	evaluator := NewStockEvaluator()

	metrics := &dto.MetricSet{PERatio: fp(12), ProfitMargin: fp(0.15)}

	first := evaluator.Evaluate(metrics)
	second := evaluator.Evaluate(metrics)

	assert.Equal(t, first, second)
	assert.Equal(t, 12.0, *metrics.PERatio)
	assert.Equal(t, 0.15, *metrics.ProfitMargin)
}

func TestRecommendationForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, RecommendationStrongBuy},
		{75, RecommendationStrongBuy},
		{74.999, RecommendationBuy},
		{60, RecommendationBuy},
		{59.999, RecommendationHold},
		{40, RecommendationHold},
		{39.999, RecommendationWeakSell},
		{25, RecommendationWeakSell},
		{24.999, RecommendationStrongSell},
		{0, RecommendationStrongSell},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, recommendationForScore(tt.score), "score %v", tt.score)
	}
}
