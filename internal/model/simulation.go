package model

// SimulationBundle is a set of simulated price paths sharing one
// drift/volatility estimate. Every path starts at LastClose and has
// days_forecast+1 entries.
type SimulationBundle struct {
	Symbol     string      `json:"symbol"`
	Mode       string      `json:"mode"`
	LastClose  float64     `json:"last_close"`
	Drift      float64     `json:"drift"`
	Volatility float64     `json:"volatility"`
	Paths      [][]float64 `json:"paths,omitempty"`
}

// SimulationSummary holds terminal-price statistics across a bundle.
type SimulationSummary struct {
	MeanTerminal float64 `json:"mean_terminal"`
	MinTerminal  float64 `json:"min_terminal"`
	MaxTerminal  float64 `json:"max_terminal"`
	ProbRise     float64 `json:"prob_rise"`
}
