package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/danmuck/fixlex/internal/protocol/fieldparse"
	"github.com/danmuck/fixlex/internal/testutil/testlog"
	"github.com/stretchr/testify/require"
)

func soh(s string) []byte {
	return []byte(strings.ReplaceAll(s, "|", "\x01"))
}

func TestParseOrdersFieldsByTag(t *testing.T) {
	testlog.Start(t)
	res := Parse(soh("8=FIX.4.2|35=D|11=ord-1|10=000|"))

	require.True(t, res.Clean())
	require.Equal(t, []Field{
		{Tag: 8, Value: "FIX.4.2"},
		{Tag: 10, Value: "000"},
		{Tag: 11, Value: "ord-1"},
		{Tag: 35, Value: "D"},
	}, res.Fields)
	require.Equal(t, "8=FIX.4.2^35=D^11=ord-1^10=000^", res.OriginalText)
	require.Equal(t, uint32(len(res.OriginalText)), res.TotalLength)
}

func TestParseKeepsPartialResults(t *testing.T) {
	res := Parse(soh("8=FIX.4.2|3a=x|10=000|"))

	require.False(t, res.Clean())
	require.Len(t, res.Fields, 2)
	require.Equal(t, []fieldparse.FieldError{{Pos: 12, Kind: fieldparse.TagInvalidChar}}, res.Errors)
}

func TestParseAllKeepsInputOrder(t *testing.T) {
	testlog.Start(t)
	msgs := make([][]byte, 0, 64)
	for i := range 64 {
		msgs = append(msgs, soh(fmt.Sprintf("8=FIX.4.4|34=%d|10=000|", i+1)))
	}

	results, err := ParseAll(context.Background(), msgs, Options{Workers: 4, Source: "test"})
	require.NoError(t, err)
	require.Len(t, results, len(msgs))
	for i, res := range results {
		require.Equal(t, i, res.Index)
		require.Equal(t, Field{Tag: 34, Value: fmt.Sprint(i + 1)}, res.Fields[2])
	}
}

func TestParseAllHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseAll(ctx, [][]byte{soh("8=a|")}, Options{})
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestParseAllEmptyInput(t *testing.T) {
	results, err := ParseAll(context.Background(), nil, Options{})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestParseKeepsUTF8Values(t *testing.T) {
	res := Parse(soh("8=FIX.4.4|58=café ñ|10=000|"))

	require.True(t, res.Clean())
	require.Equal(t, Field{Tag: 58, Value: "café ñ"}, res.Fields[2])
	require.Equal(t, "8=FIX.4.4^58=café ñ^10=000^", res.OriginalText)
	require.Equal(t, uint32(len([]rune(res.OriginalText))), res.TotalLength)
}
