package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6}

	got := SMA(closes, 3)
	require.NotNil(t, got)
	assert.InDelta(t, 5.0, *got, 1e-9)

	assert.Nil(t, SMA(closes, 7), "period longer than series")
	assert.Nil(t, SMA(closes, 0), "non-positive period")
	assert.Nil(t, SMA(nil, 3), "empty series")
}

func TestRSI(t *testing.T) {
	t.Run("too few closes", func(t *testing.T) {
		assert.Nil(t, RSI([]float64{1, 2, 3}, 14))
	})

	t.Run("loss free window", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		assert.Nil(t, RSI(closes, 14))
	})

	t.Run("balanced gains and losses", func(t *testing.T) {
		// Equal up and down moves of the same size give an RSI of 50.
		closes := make([]float64, 21)
		for i := range closes {
			if i%2 == 0 {
				closes[i] = 100
			} else {
				closes[i] = 102
			}
		}
		got := RSI(closes, 14)
		require.NotNil(t, got)
		assert.InDelta(t, 50.0, *got, 1e-9)
	})

	t.Run("downtrend reads oversold", func(t *testing.T) {
		closes := []float64{100, 98, 99, 95, 96, 92, 93, 90, 88, 89, 85, 86, 83, 81, 80, 78}
		got := RSI(closes, 14)
		require.NotNil(t, got)
		assert.Less(t, *got, 50.0)
	})
}
