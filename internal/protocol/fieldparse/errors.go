package fieldparse

import "fmt"

// ErrorKind classifies a field-level violation.
type ErrorKind int

const (
	TagInvalidChar ErrorKind = iota + 1
	TagTooLong
	ValueTooLong
)

func (k ErrorKind) String() string {
	switch k {
	case TagInvalidChar:
		return "invalid char in tag"
	case TagTooLong:
		return "tag too long"
	case ValueTooLong:
		return "value too long"
	default:
		return fmt.Sprintf("error kind %d", int(k))
	}
}

// MarshalText renders the kind by name so reports stay readable.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ErrorKind) UnmarshalText(text []byte) error {
	for _, kind := range []ErrorKind{TagInvalidChar, TagTooLong, ValueTooLong} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("fieldparse: unknown error kind %q", text)
}

// FieldError records the first violation seen inside one field.
// Pos is the 1-indexed character position where it was detected.
type FieldError struct {
	Pos  uint32    `json:"pos"`
	Kind ErrorKind `json:"kind"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("fieldparse: pos=%d: %s", e.Pos, e.Kind)
}
