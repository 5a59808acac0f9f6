package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturns(t *testing.T) {
	assert.Nil(t, Returns(nil))
	assert.Nil(t, Returns([]float64{100}))

	got := Returns([]float64{100, 110, 99})
	require.Len(t, got, 2)
	assert.InDelta(t, 0.10, got[0], 1e-9)
	assert.InDelta(t, -0.10, got[1], 1e-9)
}

func TestAnnualizedVolatility(t *testing.T) {
	assert.Nil(t, AnnualizedVolatility(nil))
	assert.Nil(t, AnnualizedVolatility([]float64{0.01}))

	flat := AnnualizedVolatility([]float64{0.01, 0.01, 0.01})
	require.NotNil(t, flat)
	assert.Equal(t, 0.0, *flat)

	returns := []float64{0.01, -0.01, 0.02, -0.02}
	got := AnnualizedVolatility(returns)
	require.NotNil(t, got)

	// Sample stddev of the returns scaled by sqrt(252).
	mean := 0.0
	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	want := math.Sqrt(variance/3) * math.Sqrt(252)
	assert.InDelta(t, want, *got, 1e-9)
}

func TestPercentChange(t *testing.T) {
	assert.Nil(t, PercentChange(nil))
	assert.Nil(t, PercentChange([]float64{0, 10}), "zero base is undefined")

	up := PercentChange([]float64{100, 120, 150})
	require.NotNil(t, up)
	assert.InDelta(t, 50.0, *up, 1e-9)

	down := PercentChange([]float64{200, 150})
	require.NotNil(t, down)
	assert.InDelta(t, -25.0, *down, 1e-9)

	single := PercentChange([]float64{42})
	require.NotNil(t, single)
	assert.Equal(t, 0.0, *single)
}
