package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const tradingDaysPerYear = 252

// Returns converts a close series into day-over-day fractional returns.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}

// AnnualizedVolatility returns the sample standard deviation of the given
// daily returns scaled to a yearly horizon. Nil when fewer than two
// returns are available or the series degenerates to NaN/Inf.
func AnnualizedVolatility(returns []float64) *float64 {
	if len(returns) < 2 {
		return nil
	}
	vol := stat.StdDev(returns, nil) * math.Sqrt(tradingDaysPerYear)
	if math.IsNaN(vol) || math.IsInf(vol, 0) {
		return nil
	}
	return &vol
}

// PercentChange returns the relative change between the first and last
// value of a series, in percent. Nil for an empty series or a zero base.
func PercentChange(values []float64) *float64 {
	if len(values) == 0 || values[0] == 0 {
		return nil
	}
	change := (values[len(values)-1] - values[0]) / values[0] * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return nil
	}
	return &change
}
