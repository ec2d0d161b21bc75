package lookup

// Mode bounds how much of a derivation index set a single resolution pass
// scans.
type Mode string

const (
	// ModeAll scans the whole index set.
	ModeAll Mode = "all"
	// ModeFirst20 scans at most the first 20 indexes of the set.
	ModeFirst20 Mode = "first20"
	// ModeFirst50 scans at most the first 50 indexes of the set.
	ModeFirst50 Mode = "first50"
)

// ParseMode parses the text form of a lookup mode.
func ParseMode(text string) (Mode, error) {
	switch Mode(text) {
	case ModeAll, ModeFirst20, ModeFirst50:
		return Mode(text), nil
	case "":
		return "", ErrLookupTypeRequired
	default:
		return "", LookupTypeUnrecognizedError{Type: text}
	}
}

// Limit returns the maximum number of indexes a pass may scan, 0 meaning
// unbounded.
func (m Mode) Limit() int {
	switch m {
	case ModeFirst20:
		return 20
	case ModeFirst50:
		return 50
	default:
		return 0
	}
}

func (m Mode) String() string {
	return string(m)
}
