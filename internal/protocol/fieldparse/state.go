package fieldparse

// ParseState selects how the next character is interpreted.
type ParseState int

const (
	StateReadingTag ParseState = iota
	StateReadingValue
	StateFinished
)

func (s ParseState) String() string {
	switch s {
	case StateReadingTag:
		return "reading_tag"
	case StateReadingValue:
		return "reading_value"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}
