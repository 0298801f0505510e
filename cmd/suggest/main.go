// Package main implements the suggest CLI: it evaluates one suggestion
// request from a JSON file (the body accepted by POST /v1/suggestions) and
// writes the result as JSON, without running the HTTP server.
//
// Usage:
//
//	suggest --in request.json
//	suggest --in request.json.zst --out result.json --pretty
//	cat request.json | suggest --timing forecast
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"activitycast/internal/agri"
	"activitycast/internal/api/handlers"
	"activitycast/internal/config"
	"activitycast/internal/core"
	"activitycast/internal/suggest"
)

type options struct {
	in       string
	out      string
	pretty   bool
	timing   string
	logLevel string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the CLI with injectable streams for tests.
func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "suggest",
		Short:         "Evaluate weather-driven activity suggestions for one location",
		Version:       config.NewBuildInfo().String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := run(cmd.Context(), opts, stdin, stdout, stderr)
			if err != nil {
				fmt.Fprintf(stderr, "error: %v\n", err)
			}
			return err
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.in, "in", "i", "-", `request file; "-" reads stdin. .zst and .gz files are decompressed`)
	flags.StringVarP(&opts.out, "out", "o", "-", `result file; "-" writes stdout`)
	flags.BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")
	flags.StringVar(&opts.timing, "timing", string(agri.TimingRelative), "timing-based watering windows: relative or forecast")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr: debug, info, warn, error")

	return cmd
}

func run(ctx context.Context, opts *options, stdin io.Reader, stdout, stderr io.Writer) error {
	timing, err := agri.ParseWindowTiming(opts.timing)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, opts.logLevel)

	payload, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}

	var req handlers.SuggestionsRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}

	engine := suggest.NewEngine(agri.NewGenerator(timing), logger)
	h := handlers.NewSuggestionHandler(engine, agri.NewProcessor(), core.NewValidator(logger), logger, handlers.Limits{})

	result, err := h.Evaluate(ctx, req)
	if err != nil {
		return err
	}

	var out []byte
	if opts.pretty {
		out, err = json.MarshalIndent(result, "", "  ")
	} else {
		out, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	out = append(out, '\n')

	if opts.out == "-" || opts.out == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.out, out, 0o644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	logger.Info("result written", "path", opts.out, "suggestions", len(result.Suggestions))
	return nil
}

// readInput reads the request, decompressing by file extension.
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(stdin)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
		return out, nil
	case ".gz":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}
	return raw, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
