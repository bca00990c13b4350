package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatSeries(price float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

func TestProject_FlatSeriesStaysFlat(t *testing.T) {
	// Zero historical volatility and zero drift: every simulated path
	// must sit exactly on the last close in both modes.
	for _, mode := range []Mode{ModeSimple, ModeLog} {
		bundle, err := Project(flatSeries(100, 30), Config{
			DaysForecast: 20,
			Simulations:  25,
			Mode:         mode,
			Seed:         1,
		})
		require.NoError(t, err, "mode %s", mode)
		require.Len(t, bundle.Paths, 25)

		assert.Equal(t, 0.0, bundle.Volatility)
		assert.Equal(t, 0.0, bundle.Drift)
		for _, path := range bundle.Paths {
			require.Len(t, path, 21)
			for d, p := range path {
				assert.InDelta(t, 100.0, p, 1e-9, "mode %s day %d", mode, d)
			}
		}

		summary := Summarize(bundle)
		assert.InDelta(t, 100.0, summary.MeanTerminal, 1e-9)
		assert.Equal(t, 0.0, summary.ProbRise, "flat terminals are not above the last close")
	}
}

func TestProject_PathsStartAtLastClose(t *testing.T) {
	closes := []float64{90, 95, 92, 101, 99, 104}
	bundle, err := Project(closes, Config{DaysForecast: 10, Simulations: 40, Seed: 7})
	require.NoError(t, err)
	for _, path := range bundle.Paths {
		assert.Equal(t, 104.0, path[0])
	}
}

func TestProject_SeededRunsAreReproducible(t *testing.T) {
	closes := []float64{100, 101, 99, 102, 100, 103, 101, 105}
	cfg := Config{DaysForecast: 15, Simulations: 10, Seed: 42}

	a, err := Project(closes, cfg)
	require.NoError(t, err)
	b, err := Project(closes, cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Paths, b.Paths)

	cfg.Seed = 43
	c, err := Project(closes, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Paths, c.Paths)
}

func TestProject_ConstantGrowthIsDeterministicInLogMode(t *testing.T) {
	// A constant 1% daily growth series has zero return volatility, so
	// log mode compounds exactly exp(ln 1.01) = 1.01 per step.
	closes := make([]float64, 40)
	price := 100.0
	for i := range closes {
		closes[i] = price
		price *= 1.01
	}
	last := closes[len(closes)-1]

	bundle, err := Project(closes, Config{DaysForecast: 10, Simulations: 5, Mode: ModeLog, Seed: 3})
	require.NoError(t, err)

	want := last * math.Pow(1.01, 10)
	for _, path := range bundle.Paths {
		assert.InDelta(t, want, path[len(path)-1], want*1e-9)
	}
	summary := Summarize(bundle)
	assert.Equal(t, 1.0, summary.ProbRise)
}

func TestProject_MeanTerminalTracksExpectation(t *testing.T) {
	// Statistical property: with many paths the mean terminal price in
	// log mode approaches last * exp(mu * days), where mu is the sample
	// mean log return. Tolerance band, not exact equality.
	closes := make([]float64, 120)
	price := 100.0
	for i := range closes {
		closes[i] = price
		growth := 1.002
		if i%3 == 0 {
			growth = 0.999
		}
		price *= growth
	}
	days := 20
	bundle, err := Project(closes, Config{DaysForecast: days, Simulations: 2000, Mode: ModeLog, Seed: 11})
	require.NoError(t, err)

	mu := bundle.Drift + 0.5*bundle.Volatility*bundle.Volatility
	expected := bundle.LastClose * math.Exp(mu*float64(days))
	summary := Summarize(bundle)
	assert.InDelta(t, expected, summary.MeanTerminal, expected*0.02)

	assert.LessOrEqual(t, summary.MinTerminal, summary.MeanTerminal)
	assert.GreaterOrEqual(t, summary.MaxTerminal, summary.MeanTerminal)
	assert.GreaterOrEqual(t, summary.ProbRise, 0.0)
	assert.LessOrEqual(t, summary.ProbRise, 1.0)
}

func TestProject_Validation(t *testing.T) {
	_, err := Project([]float64{100, 101}, Config{DaysForecast: 5, Simulations: 5})
	assert.Error(t, err, "one return is not enough to estimate volatility")

	_, err = Project(flatSeries(100, 30), Config{DaysForecast: 0, Simulations: 5})
	assert.Error(t, err)

	_, err = Project(flatSeries(100, 30), Config{DaysForecast: 5, Simulations: 0})
	assert.Error(t, err)

	_, parseErr := ParseMode("brownian")
	assert.Error(t, parseErr)
	m, parseErr := ParseMode("")
	require.NoError(t, parseErr)
	assert.Equal(t, ModeSimple, m)
}
