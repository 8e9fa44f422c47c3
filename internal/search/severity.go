package search

// Severity classifies how far a loss is from a perfect match.
type Severity int

const (
	Perfect Severity = iota
	CloseEnough
	SomewhatOff
	ExtremelyOff
)

// Classify maps a loss to its Severity.
func Classify(loss float64) Severity {
	switch {
	case loss < 1:
		return Perfect
	case loss < 5:
		return CloseEnough
	case loss < 15:
		return SomewhatOff
	default:
		return ExtremelyOff
	}
}

func (s Severity) String() string {
	switch s {
	case Perfect:
		return "perfect"
	case CloseEnough:
		return "close enough"
	case SomewhatOff:
		return "somewhat off"
	default:
		return "extremely off"
	}
}

// Message is the sentence shown to the user for s.
func (s Severity) Message() string {
	switch s {
	case Perfect:
		return "This is a perfect result."
	case CloseEnough:
		return "The color is close enough."
	case SomewhatOff:
		return "The color is somewhat off. Consider running it again."
	default:
		return "The color is extremely off. Run it again!"
	}
}
