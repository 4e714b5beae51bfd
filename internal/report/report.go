package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/danmuck/fixlex/internal/batch"
	"github.com/danmuck/fixlex/internal/protocol/tags"
)

// WriteText renders one result for terminals: the original text, a
// caret line per error and the committed fields.
func WriteText(w io.Writer, res batch.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "message %d: %d chars, %d fields, %d errors\n",
		res.Index, res.TotalLength, len(res.Fields), len(res.Errors))
	fmt.Fprintf(&b, "  %s\n", res.OriginalText)
	for _, fe := range res.Errors {
		fmt.Fprintf(&b, "  %s^ pos %d: %s\n", caretPad(fe.Pos), fe.Pos, fe.Kind)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range res.Fields {
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", f.Tag, tags.Name(f.Tag), f.Value)
	}
	return tw.Flush()
}

// WriteTexts renders results separated by blank lines.
func WriteTexts(w io.Writer, results []batch.Result) error {
	for i, res := range results {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := WriteText(w, res); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders results as an indented JSON array.
func WriteJSON(w io.Writer, results []batch.Result) error {
	if results == nil {
		results = []batch.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func caretPad(pos uint32) string {
	if pos <= 1 {
		return ""
	}
	return strings.Repeat(" ", int(pos-1))
}
