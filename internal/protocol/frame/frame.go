package frame

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/danmuck/fixlex/internal/protocol/tags"
)

// SOH is the on-wire field terminator.
const SOH byte = 0x01

var (
	ErrTruncated       = errors.New("frame: input ended inside a message")
	ErrMessageTooLarge = errors.New("frame: message too large")
	ErrEmptyMessage    = errors.New("frame: empty message")
)

var trailerPrefix = tags.Prefix(tags.CheckSum)

// Limits constrains frame read memory use.
type Limits struct {
	MaxMessageBytes int
}

func DefaultLimits() Limits {
	return Limits{
		MaxMessageBytes: 64 * 1024,
	}
}

// Reader splits a byte stream into messages. A message ends with the
// terminator that closes its CheckSum field.
type Reader struct {
	br        *bufio.Reader
	limits    Limits
	separator byte
}

// NewReader returns a Reader over r. When separator is non-zero and not
// SOH, every occurrence of it is read as SOH, so fixtures written with
// '|' or '^' can be fed unchanged.
func NewReader(r io.Reader, limits Limits, separator byte) *Reader {
	if limits.MaxMessageBytes <= 0 {
		limits = DefaultLimits()
	}
	if separator == 0 {
		separator = SOH
	}
	return &Reader{br: bufio.NewReader(r), limits: limits, separator: separator}
}

// ReadMessage returns the raw bytes of the next message with SOH
// terminators. It returns io.EOF at a clean end of input, and the
// partial bytes together with ErrTruncated when input stops mid-message.
// The Reader must not be reused after ErrMessageTooLarge.
func (r *Reader) ReadMessage() ([]byte, error) {
	if err := r.skipBlanks(); err != nil {
		return nil, err
	}

	msg := make([]byte, 0, 256)
	fieldStart := 0
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return msg, ErrTruncated
			}
			return msg, err
		}
		if b == r.separator {
			b = SOH
		}
		if len(msg) >= r.limits.MaxMessageBytes {
			return nil, ErrMessageTooLarge
		}
		msg = append(msg, b)
		if b != SOH {
			continue
		}
		if bytes.HasPrefix(msg[fieldStart:], trailerPrefix) {
			return msg, nil
		}
		fieldStart = len(msg)
	}
}

// ReadAll reads messages until io.EOF. A truncated tail is returned as
// the last message alongside ErrTruncated.
func (r *Reader) ReadAll() ([][]byte, error) {
	var out [][]byte
	for {
		msg, err := r.ReadMessage()
		switch {
		case err == nil:
			out = append(out, msg)
		case errors.Is(err, io.EOF):
			return out, nil
		case errors.Is(err, ErrTruncated):
			if len(msg) > 0 {
				out = append(out, msg)
			}
			return out, err
		default:
			return out, err
		}
	}
}

// skipBlanks drops whitespace between messages. The separator itself is
// never skipped.
func (r *Reader) skipBlanks() error {
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			return err
		}
		if b == r.separator || !isBlank(b) {
			return r.br.UnreadByte()
		}
	}
}

func isBlank(b byte) bool {
	return b == '\n' || b == '\r' || b == ' ' || b == '\t'
}

// Split frames an in-memory buffer; see Reader.ReadAll.
func Split(data []byte, limits Limits, separator byte) ([][]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyMessage
	}
	return NewReader(bytes.NewReader(data), limits, separator).ReadAll()
}
