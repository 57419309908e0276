package engine

// GamePhase is the session outcome state
type GamePhase uint8

const (
	PhasePlaying GamePhase = iota
	PhaseWon
	PhaseLost
)

func (p GamePhase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether movement and sensors are frozen
func (p GamePhase) IsTerminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Events is the set of feedback signals raised during one Update
type Events uint16

const (
	EventLocatorHit Events = 1 << iota
	EventExitPinged
	EventDetectorFired
	EventDangerRevealed
	EventWon
	EventLost
)

var eventNames = [...]string{"locator-hit", "exit-pinged", "detector-fired", "danger-revealed", "won", "lost"}

func (e Events) Has(flag Events) bool {
	return e&flag != 0
}

func (e Events) String() string {
	if e == 0 {
		return "none"
	}
	s := ""
	for i, name := range eventNames {
		if e&(1<<i) == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += name
	}
	return s
}
