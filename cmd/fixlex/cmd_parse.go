package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/fixlex/internal/batch"
	"github.com/danmuck/fixlex/internal/config"
	"github.com/danmuck/fixlex/internal/protocol/frame"
	"github.com/danmuck/fixlex/internal/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errFieldErrors = errors.New("field errors reported")

func newParseCmd(root *rootOptions) *cobra.Command {
	var outputFormat string
	var separator string
	var workers int
	var strict bool

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse messages from files or stdin and report fields and errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = outputFormat
			}
			if cmd.Flags().Changed("separator") {
				sep, err := config.ParseSeparator(separator)
				if err != nil {
					return err
				}
				cfg.Separator = sep
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			return runParse(cmd, cfg, args, strict)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", config.FormatText, "output format: text|json")
	cmd.Flags().StringVarP(&separator, "separator", "s", "soh", "field separator on input")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent parsers (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any field error is reported")
	return cmd
}

func runParse(cmd *cobra.Command, cfg config.Config, paths []string, strict bool) error {
	msgs, err := readMessages(cmd.InOrStdin(), paths, cfg)
	if err != nil {
		return err
	}

	results, err := batch.ParseAll(cmd.Context(), msgs, batch.Options{
		Workers: cfg.Workers,
		Source:  "cli",
	})
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	out := cmd.OutOrStdout()
	switch cfg.Format {
	case config.FormatJSON:
		err = report.WriteJSON(out, results)
	default:
		err = report.WriteTexts(out, results)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if strict {
		for _, res := range results {
			if !res.Clean() {
				return errFieldErrors
			}
		}
	}
	return nil
}

func readMessages(stdin io.Reader, paths []string, cfg config.Config) ([][]byte, error) {
	limits := frame.Limits{MaxMessageBytes: cfg.MaxMessageBytes}
	if len(paths) == 0 {
		return readAll(frame.NewReader(stdin, limits, cfg.Separator), "stdin")
	}

	var msgs [][]byte
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		got, err := readAll(frame.NewReader(f, limits, cfg.Separator), path)
		f.Close()
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, got...)
	}
	return msgs, nil
}

func readAll(r *frame.Reader, name string) ([][]byte, error) {
	msgs, err := r.ReadAll()
	if errors.Is(err, frame.ErrTruncated) {
		log.Warn().Str("input", name).Int("messages", len(msgs)).Msg("input ended inside a message; parsing partial tail")
		return msgs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return msgs, nil
}
