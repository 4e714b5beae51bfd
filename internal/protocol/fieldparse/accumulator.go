package fieldparse

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// TagMaxValue is the largest accepted tag number.
	TagMaxValue uint32 = 1_000_000
	// ValueMaxLength is the longest accepted value, in characters.
	ValueMaxLength = 50

	// FieldTerminator closes a field on the wire (SOH).
	FieldTerminator rune = 0x01
	// TerminatorPlaceholder stands in for FieldTerminator in OriginalText.
	TerminatorPlaceholder rune = '^'
)

// Accumulator is a character-driven tag=value parser for one message.
// It is not safe for concurrent use; parse concurrent messages with
// one Accumulator each.
type Accumulator struct {
	fields   map[uint32]string
	errors   []FieldError
	original strings.Builder
	length   uint32

	state        ParseState
	tag          uint32
	tagDigits    bool
	value        strings.Builder
	valueLen     int
	pendingError *FieldError
}

// New returns an empty accumulator positioned at the first tag.
func New() *Accumulator {
	return &Accumulator{fields: make(map[uint32]string)}
}

// Feed consumes one character. Results are read back through the
// accessors once feeding stops.
func (a *Accumulator) Feed(ch rune) {
	a.length++
	a.original.WriteRune(renderChar(ch))
	switch a.state {
	case StateReadingTag:
		a.feedTag(ch)
	case StateReadingValue:
		a.feedValue(ch)
	case StateFinished:
	}
}

// FeedString feeds every rune of s.
func (a *Accumulator) FeedString(s string) {
	for _, ch := range s {
		a.Feed(ch)
	}
}

// FeedBytes decodes b as UTF-8 and feeds each rune. Invalid bytes are
// fed as utf8.RuneError, one per byte.
func (a *Accumulator) FeedBytes(b []byte) {
	for len(b) > 0 {
		ch, size := utf8.DecodeRune(b)
		a.Feed(ch)
		b = b[size:]
	}
}

// Finish moves the parser into its terminal state. A field still in
// progress is neither committed nor reported.
func (a *Accumulator) Finish() {
	a.state = StateFinished
}

func (a *Accumulator) feedTag(ch rune) {
	if a.pendingError == nil {
		switch {
		case ch >= '0' && ch <= '9':
			a.tag = a.tag*10 + uint32(ch-'0')
			a.tagDigits = true
			if a.tag > TagMaxValue {
				a.fail(TagTooLong)
			}
		case ch == '=' && a.tagDigits:
			a.state = StateReadingValue
			return
		default:
			a.fail(TagInvalidChar)
		}
	}
	if ch == FieldTerminator {
		a.commit()
	}
}

func (a *Accumulator) feedValue(ch rune) {
	if ch == FieldTerminator {
		a.commit()
		return
	}
	if a.pendingError != nil {
		return
	}
	a.value.WriteRune(ch)
	a.valueLen++
	if a.valueLen > ValueMaxLength {
		a.fail(ValueTooLong)
	}
}

func (a *Accumulator) fail(kind ErrorKind) {
	if a.pendingError != nil {
		return
	}
	a.pendingError = &FieldError{Pos: a.length, Kind: kind}
}

func (a *Accumulator) commit() {
	if a.pendingError != nil {
		a.errors = append(a.errors, *a.pendingError)
	} else {
		a.fields[a.tag] = a.value.String()
	}
	a.tag = 0
	a.tagDigits = false
	a.value.Reset()
	a.valueLen = 0
	a.pendingError = nil
	a.state = StateReadingTag
}

func renderChar(ch rune) rune {
	if ch == FieldTerminator {
		return TerminatorPlaceholder
	}
	return ch
}

// Fields returns a copy of the committed fields.
func (a *Accumulator) Fields() map[uint32]string {
	out := make(map[uint32]string, len(a.fields))
	for tag, value := range a.fields {
		out[tag] = value
	}
	return out
}

// Tags returns the committed tags in ascending order.
func (a *Accumulator) Tags() []uint32 {
	tags := make([]uint32, 0, len(a.fields))
	for tag := range a.fields {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Value returns the committed value for tag.
func (a *Accumulator) Value(tag uint32) (string, bool) {
	v, ok := a.fields[tag]
	return v, ok
}

// Errors returns committed field errors in commit order.
func (a *Accumulator) Errors() []FieldError {
	out := make([]FieldError, len(a.errors))
	copy(out, a.errors)
	return out
}

// OriginalText is the input so far with terminators rendered as '^'.
func (a *Accumulator) OriginalText() string {
	return a.original.String()
}

// TotalLength counts characters fed so far, including absorbed ones.
func (a *Accumulator) TotalLength() uint32 {
	return a.length
}

// State reports the current automaton state.
func (a *Accumulator) State() ParseState {
	return a.state
}

// PendingTag is the tag accumulated for the field in progress.
func (a *Accumulator) PendingTag() uint32 {
	return a.tag
}

// PendingValue is the value accumulated for the field in progress.
func (a *Accumulator) PendingValue() string {
	return a.value.String()
}

// PendingError reports the error held for the field in progress, if any.
func (a *Accumulator) PendingError() (FieldError, bool) {
	if a.pendingError == nil {
		return FieldError{}, false
	}
	return *a.pendingError, true
}
