package schema

// ScoreBands holds the lower bounds of each severity label for one tool.
// Scores below Moderate are labelled Low.
type ScoreBands struct {
	Critical float64 `json:"critical"`
	High     float64 `json:"high"`
	Moderate float64 `json:"moderate"`
}

// DefaultBands is used when a plugin declares no bands of its own.
var DefaultBands = ScoreBands{Critical: 80, High: 60, Moderate: 40}

// Label returns the plain severity label of a score.
func (b ScoreBands) Label(score float64) string {
	switch {
	case score >= b.Critical:
		return CriticalLabel
	case score >= b.High:
		return HighLabel
	case score >= b.Moderate:
		return ModerateLabel
	default:
		return LowLabel
	}
}
