package frame

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

const logon = "8=FIX.4.2|9=65|35=A|49=SERVER|56=CLIENT|34=177|52=20090107-18:15:16|98=0|108=30|10=062|"

func TestReadMessageSplitsOnCheckSumTrailer(t *testing.T) {
	in := logon + "\n" + strings.Replace(logon, "34=177", "34=178", 1) + "\r\n"
	r := NewReader(strings.NewReader(in), DefaultLimits(), '|')

	first, err := r.ReadMessage()
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	want := strings.ReplaceAll(logon, "|", "\x01")
	if string(first) != want {
		t.Fatalf("first message mismatch:\n got=%q\nwant=%q", first, want)
	}

	second, err := r.ReadMessage()
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	if !bytes.Contains(second, []byte("34=178\x01")) {
		t.Fatalf("unexpected second message: %q", second)
	}

	if _, err := r.ReadMessage(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestReadMessageIgnoresTagEndingInTen(t *testing.T) {
	in := "8=FIX.4.4\x01110=5\x0110=000\x01"
	r := NewReader(strings.NewReader(in), DefaultLimits(), 0)
	msg, err := r.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != in {
		t.Fatalf("expected whole input as one message, got %q", msg)
	}
}

func TestReadMessageTruncatedTail(t *testing.T) {
	r := NewReader(strings.NewReader("8=FIX.4.2|35=0|"), DefaultLimits(), '|')
	msg, err := r.ReadMessage()
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if string(msg) != "8=FIX.4.2\x0135=0\x01" {
		t.Fatalf("expected partial bytes, got %q", msg)
	}
}

func TestReadMessageTooLarge(t *testing.T) {
	r := NewReader(strings.NewReader(logon), Limits{MaxMessageBytes: 16}, '|')
	if _, err := r.ReadMessage(); !errors.Is(err, ErrMessageTooLarge) {
		t.Fatalf("expected ErrMessageTooLarge, got %v", err)
	}
}

func TestSplitCollectsTruncatedTail(t *testing.T) {
	msgs, err := Split([]byte(logon+logon+"8=FIX"), DefaultLimits(), '|')
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if string(msgs[2]) != "8=FIX" {
		t.Fatalf("unexpected tail %q", msgs[2])
	}
}

func TestSplitEmpty(t *testing.T) {
	if _, err := Split([]byte(" \n"), DefaultLimits(), 0); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestReadMessageSkipsBlanksBetweenMessages(t *testing.T) {
	msgs, err := Split([]byte("8=a|10=0| \t8=b|10=1|  \n"), DefaultLimits(), '|')
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %q", len(msgs), msgs)
	}
	if string(msgs[1]) != "8=b\x0110=1\x01" {
		t.Fatalf("unexpected second message %q", msgs[1])
	}
}
