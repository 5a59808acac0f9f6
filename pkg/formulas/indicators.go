package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
)

// SMA returns the simple moving average of the trailing period closes.
// Returns nil when fewer than period closes are available.
func SMA(closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period {
		return nil
	}
	out := talib.Sma(closes, period)
	v := out[len(out)-1]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// RSI returns the period-RSI over the trailing closes using the average
// gain / average loss of the last period deltas:
//
//	RSI = 100 - 100/(1 + avg_gain/avg_loss)
//
// Returns nil when fewer than period+1 closes are available or when the
// average loss is zero (the ratio is undefined for a loss-free window).
func RSI(closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period+1 {
		return nil
	}

	window := closes[len(closes)-period-1:]
	gains := make([]float64, period)
	losses := make([]float64, period)
	for i := 1; i < len(window); i++ {
		delta := window[i] - window[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	avgGain := stat.Mean(gains, nil)
	avgLoss := stat.Mean(losses, nil)
	if avgLoss == 0 {
		return nil
	}

	rsi := 100 - 100/(1+avgGain/avgLoss)
	if math.IsNaN(rsi) || math.IsInf(rsi, 0) {
		return nil
	}
	return &rsi
}
