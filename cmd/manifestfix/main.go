// Package main provides the CLI entry point for manifestfix, a tool that
// repairs malformed Kubernetes YAML manifests on a best-effort basis.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"go.kubefix.dev/manifestfix/log"
	"go.kubefix.dev/manifestfix/profile"
	"go.kubefix.dev/manifestfix/version"
)

var (
	// ErrReadInput indicates the CLI could not read its input source.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates the CLI could not write its output sink.
	ErrWriteOutput = errors.New("write output")
)

func main() {
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()

	var profiler *profile.Profiler

	rootCmd := &cobra.Command{
		Use:     "manifestfix",
		Short:   "Repair malformed Kubernetes YAML manifests",
		Version: version.Version,
		Long: `manifestfix repairs malformed Kubernetes YAML manifests on a best-effort
basis: missing colons, misspelled keys, stray top-level fields, word-form
numbers, wrong-case enums, deprecated API groups, conflicting probe types,
duplicate keys, unbalanced quotes, and tab indents. It reports a structured
change log and a confidence score alongside the repaired text.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			profiler = profileCfg.NewProfiler()

			return profiler.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return profiler.Stop()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profileCfg.RegisterFlags(rootCmd.PersistentFlags())

	for _, regErr := range []error{
		logCfg.RegisterCompletions(rootCmd),
		profileCfg.RegisterCompletions(rootCmd),
	} {
		if regErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", regErr)
		}
	}

	rootCmd.AddCommand(newFixCommand(logCfg))
	rootCmd.AddCommand(newServeCommand(logCfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func readAll(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}

	return data, nil
}

func writeAll(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		if err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}

		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}

	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}
