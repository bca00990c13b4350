package montecarlo

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/montanaflynn/stats"

	"StockAdvisor/internal/model"
)

// Mode selects how daily returns are modelled.
type Mode string

const (
	// ModeSimple compounds plain percentage returns with no drift
	// correction. This is the default.
	ModeSimple Mode = "simple"
	// ModeLog compounds log returns with the mu - 0.5*sigma^2 drift
	// correction of a geometric random walk.
	ModeLog Mode = "log"
)

// ParseMode validates a mode name, mapping "" to the default.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case "":
		return ModeSimple, nil
	case ModeSimple, ModeLog:
		return Mode(name), nil
	default:
		return "", fmt.Errorf("unknown simulation mode %q", name)
	}
}

// Config controls one projection run.
type Config struct {
	DaysForecast int
	Simulations  int
	Mode         Mode
	Seed         int64 // 0 seeds from the clock
}

// Project simulates future price paths from the historical daily
// returns of the given closes. Every path starts at the last observed
// close and has DaysForecast further steps.
func Project(closes []float64, cfg Config) (*model.SimulationBundle, error) {
	if cfg.DaysForecast <= 0 || cfg.Simulations <= 0 {
		return nil, errors.New("days forecast and simulation count must be positive")
	}
	mode := cfg.Mode
	if mode == "" {
		mode = ModeSimple
	}

	returns := make([]float64, 0, len(closes))
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		r := closes[i]/closes[i-1] - 1
		if mode == ModeLog {
			r = math.Log(1 + r)
		}
		returns = append(returns, r)
	}
	if len(returns) < 2 {
		return nil, errors.New("need at least three closes to estimate return volatility")
	}

	mean, err := stats.Mean(returns)
	if err != nil {
		return nil, fmt.Errorf("return mean: %w", err)
	}
	sigma, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, fmt.Errorf("return stdev: %w", err)
	}
	drift := mean
	if mode == ModeLog {
		drift = mean - 0.5*sigma*sigma
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	last := closes[len(closes)-1]
	paths := make([][]float64, cfg.Simulations)
	for p := range paths {
		path := make([]float64, cfg.DaysForecast+1)
		path[0] = last
		price := last
		for d := 1; d <= cfg.DaysForecast; d++ {
			z := rng.NormFloat64()
			if mode == ModeLog {
				price *= math.Exp(drift + sigma*z)
			} else {
				price *= 1 + drift + sigma*z
			}
			path[d] = price
		}
		paths[p] = path
	}

	return &model.SimulationBundle{
		Mode:       string(mode),
		LastClose:  last,
		Drift:      drift,
		Volatility: sigma,
		Paths:      paths,
	}, nil
}

// Summarize reports terminal-price statistics across the bundle's paths:
// the mean, min and max terminal price and the fraction of paths ending
// above the last observed close.
func Summarize(b *model.SimulationBundle) model.SimulationSummary {
	sum := model.SimulationSummary{
		MinTerminal: math.Inf(1),
		MaxTerminal: math.Inf(-1),
	}
	if len(b.Paths) == 0 {
		return model.SimulationSummary{}
	}
	var total float64
	var above int
	for _, path := range b.Paths {
		terminal := path[len(path)-1]
		total += terminal
		if terminal > b.LastClose {
			above++
		}
		if terminal < sum.MinTerminal {
			sum.MinTerminal = terminal
		}
		if terminal > sum.MaxTerminal {
			sum.MaxTerminal = terminal
		}
	}
	sum.MeanTerminal = total / float64(len(b.Paths))
	sum.ProbRise = float64(above) / float64(len(b.Paths))
	return sum
}
