package flux

// Thresholds for the qualitative space-weather note, in the feed's units.
const (
	ElevatedAbove = 1e3
	LowBelow      = 1e1
)

type Condition string

const (
	ConditionElevated Condition = "elevated"
	ConditionLow      Condition = "low"
	ConditionTypical  Condition = "typical"
)

// Context is the note shown next to a live reading.
type Context struct {
	Condition Condition `json:"condition"`
	Level     string    `json:"level"`
	Text      string    `json:"text"`
}

func Describe(value float64) Context {
	switch {
	case value > ElevatedAbove:
		return Context{
			Condition: ConditionElevated,
			Level:     "warning",
			Text:      "The current ambient proton flux is elevated. Prolonged exposure in such an environment, particularly in space or at high altitude, would contribute significantly to accumulated radiation dose.",
		}
	case value < LowBelow:
		return Context{
			Condition: ConditionLow,
			Level:     "info",
			Text:      "The current ambient proton flux is low, indicating relatively calm space weather conditions.",
		}
	default:
		return Context{
			Condition: ConditionTypical,
			Level:     "info",
			Text:      "The current ambient proton flux is within typical background levels for the space environment.",
		}
	}
}
