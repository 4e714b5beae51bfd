package batch

import (
	"context"
	"runtime"

	"github.com/danmuck/fixlex/internal/observability"
	"github.com/danmuck/fixlex/internal/protocol/fieldparse"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Field is one committed TAG=VALUE pair.
type Field struct {
	Tag   uint32 `json:"tag"`
	Value string `json:"value"`
}

// Result is the read-out of one accumulator after its message was fed.
type Result struct {
	Index        int                     `json:"index"`
	Fields       []Field                 `json:"fields"`
	Errors       []fieldparse.FieldError `json:"errors,omitempty"`
	OriginalText string                  `json:"original_text"`
	TotalLength  uint32                  `json:"total_length"`
}

func (r Result) Clean() bool {
	return len(r.Errors) == 0
}

// Options controls ParseAll.
type Options struct {
	// Workers bounds concurrent accumulators; <= 0 means GOMAXPROCS.
	Workers int
	// Source labels metrics, e.g. "cli" or "http".
	Source string
}

// Parse decodes raw as UTF-8 and feeds it through a fresh accumulator.
func Parse(raw []byte) Result {
	acc := fieldparse.New()
	acc.FeedBytes(raw)
	return collect(acc)
}

func collect(acc *fieldparse.Accumulator) Result {
	tags := acc.Tags()
	fields := make([]Field, 0, len(tags))
	for _, tag := range tags {
		v, _ := acc.Value(tag)
		fields = append(fields, Field{Tag: tag, Value: v})
	}
	return Result{
		Fields:       fields,
		Errors:       acc.Errors(),
		OriginalText: acc.OriginalText(),
		TotalLength:  acc.TotalLength(),
	}
}

// ParseAll parses every message on its own accumulator. Results keep
// input order. It stops early only when ctx is cancelled.
func ParseAll(ctx context.Context, msgs [][]byte, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	source := opts.Source
	if source == "" {
		source = "batch"
	}

	results := make([]Result, len(msgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, msg := range msgs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := Parse(msg)
			res.Index = i
			results[i] = res
			record(source, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func record(source string, res Result) {
	kinds := make([]string, 0, len(res.Errors))
	for _, fe := range res.Errors {
		kinds = append(kinds, fe.Kind.String())
	}
	observability.RecordMessage(source, res.TotalLength, len(res.Fields), kinds)
	if !res.Clean() {
		log.Debug().
			Str("source", source).
			Int("index", res.Index).
			Int("errors", len(res.Errors)).
			Msg("message parsed with field errors")
	}
}
