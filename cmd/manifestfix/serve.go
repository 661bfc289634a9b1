package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"go.kubefix.dev/manifestfix"
	"go.kubefix.dev/manifestfix/log"
	"go.kubefix.dev/manifestfix/metrics"
)

// fixRequest mirrors the non-normative HTTP surface documented for callers
// of the repair pipeline: a JSON body carrying the manifest text and
// pipeline options.
type fixRequest struct {
	Content string  `json:"content"`
	Options options `json:"options"`
}

// options is fixRequest's wire shape for [manifestfix.Options]; fields left
// unset fall back to [manifestfix.DefaultOptions].
type options struct {
	ConfidenceThreshold *float64 `json:"confidenceThreshold"`
	Aggressive          *bool    `json:"aggressive"`
	MaxIterations       *int     `json:"maxIterations"`
	IndentSize          *int     `json:"indentSize"`
	AutoFix             *bool    `json:"autoFix"`
}

func (o options) resolve() manifestfix.Options {
	opts := manifestfix.DefaultOptions()

	if o.ConfidenceThreshold != nil {
		opts.ConfidenceThreshold = *o.ConfidenceThreshold
	}

	if o.Aggressive != nil {
		opts.Aggressive = *o.Aggressive
	}

	if o.MaxIterations != nil {
		opts.MaxIterations = *o.MaxIterations
	}

	if o.IndentSize != nil {
		opts.IndentSize = *o.IndentSize
	}

	if o.AutoFix != nil {
		opts.AutoFix = *o.AutoFix
	}

	return opts
}

// fixResponse is the documented JSON response shape: {success, fixed,
// errors, changes, fixedCount, confidence, summary}.
type fixResponse struct {
	Success    bool                 `json:"success"`
	Fixed      string               `json:"fixed"`
	Errors     []string             `json:"errors"`
	Changes    []manifestfix.Change `json:"changes"`
	FixedCount int                  `json:"fixedCount"`
	Confidence float64              `json:"confidence"`
	Summary    string               `json:"summary"`
}

func newServeCommand(logCfg *log.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an HTTP server exposing the repair pipeline over /fix",
		Long: `serve starts an HTTP server with a POST /fix endpoint accepting
{content, options} and returning {success, fixed, errors, changes,
fixedCount, confidence, summary}, plus a /metrics endpoint for Prometheus
scraping. This surface is a thin, non-normative wrapper around the repair
pipeline -- it performs no schema validation, admission simulation, or
cluster dry-run of its own.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			logger := slog.New(handler)

			registry, shutdown, err := metrics.Init()
			if err != nil {
				return fmt.Errorf("initialize metrics: %w", err)
			}

			defer func() {
				if shutErr := shutdown(context.Background()); shutErr != nil {
					logger.Error("shut down metrics provider", slog.Any("error", shutErr))
				}
			}()

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
			mux.Handle("/fix", fixHandler(logger))
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			logger.Info("listening", slog.String("addr", addr))

			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")

	return cmd
}

func fixHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Method != http.MethodPost {
			respondJSON(w, http.StatusMethodNotAllowed, fixResponse{
				Success: false,
				Errors:  []string{"method not allowed"},
			})

			return
		}

		metrics.InFlightInc(ctx)
		defer metrics.InFlightDec(ctx)

		body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20))
		if err != nil {
			respondJSON(w, http.StatusBadRequest, fixResponse{
				Success: false,
				Errors:  []string{"reading request body: " + err.Error()},
			})

			return
		}

		var req fixRequest

		if err := json.Unmarshal(body, &req); err != nil {
			respondJSON(w, http.StatusBadRequest, fixResponse{
				Success: false,
				Errors:  []string{"decoding request body: " + err.Error()},
			})

			return
		}

		start := time.Now()
		result := manifestfix.Run(req.Content, req.Options.resolve())
		duration := time.Since(start)

		metrics.RecordRun(ctx, len(result.Changes), result.Confidence, result.IsValid, duration)

		logger.Info("handled fix request",
			slog.Int("contentLength", len(req.Content)),
			slog.Bool("valid", result.IsValid),
			slog.Int("changes", len(result.Changes)),
			slog.Duration("duration", duration))

		respondJSON(w, http.StatusOK, fixResponse{
			Success:    result.IsValid,
			Fixed:      result.Content,
			Errors:     result.Errors,
			Changes:    result.Changes,
			FixedCount: len(result.Changes),
			Confidence: result.Confidence,
			Summary:    summarize(result),
		})
	}
}

func summarize(result manifestfix.Result) string {
	if len(result.Changes) == 0 {
		if result.IsValid {
			return "no changes needed; manifest already parses"
		}

		return "no changes applied; manifest still does not parse"
	}

	status := "now parses"
	if !result.IsValid {
		status = "still does not parse"
	}

	return fmt.Sprintf("applied %d change(s) across %d pass(es); manifest %s (confidence %.2f)",
		len(result.Changes), len(result.PassBreakdown), status, result.Confidence)
}
