package model

// Opinion is the discrete trading recommendation derived from a score.
type Opinion string

const (
	OpinionStrongBuy  Opinion = "STRONG_BUY"
	OpinionBuy        Opinion = "BUY"
	OpinionHold       Opinion = "HOLD"
	OpinionSell       Opinion = "SELL"
	OpinionStrongSell Opinion = "STRONG_SELL"
)

// Contribution is a single indicator's vote in the weighted score.
type Contribution struct {
	Indicator string  `json:"indicator"`
	Points    float64 `json:"points"`
	Reason    string  `json:"reason"`
}

// Signal is the scorer output for one symbol: the summed score, the
// opinion bucket it falls into, and one reason per non-zero vote, in
// evaluation order.
type Signal struct {
	Score         float64        `json:"score"`
	Opinion       Opinion        `json:"opinion"`
	Contributions []Contribution `json:"contributions,omitempty"`
}

// Reasons returns the human-readable tags of all non-zero contributions.
func (s *Signal) Reasons() []string {
	reasons := make([]string, 0, len(s.Contributions))
	for _, c := range s.Contributions {
		if c.Reason != "" {
			reasons = append(reasons, c.Reason)
		}
	}
	return reasons
}

// ReasonSummary joins the reasons for display, with a placeholder when
// no indicator voted.
func (s *Signal) ReasonSummary() string {
	reasons := s.Reasons()
	if len(reasons) == 0 {
		return "-"
	}
	out := reasons[0]
	for _, r := range reasons[1:] {
		out += ", " + r
	}
	return out
}
