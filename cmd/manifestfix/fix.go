package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.kubefix.dev/manifestfix"
	"go.kubefix.dev/manifestfix/log"
)

func newFixCommand(logCfg *log.Config) *cobra.Command {
	opts := manifestfix.DefaultOptions()

	var (
		outputPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "fix [flags] [file]",
		Short: "Repair a Kubernetes manifest, reading from a file or stdin",
		Long: `fix runs the full repair pipeline over a single manifest and writes the
repaired text (or, with --json, the full structured result) to stdout or
--output. Pass "-" or omit the file argument to read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			logger := slog.New(handler)

			var path string
			if len(args) > 0 {
				path = args[0]
			}

			data, err := readAll(path)
			if err != nil {
				return err
			}

			if err := opts.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			result := manifestfix.Run(string(data), opts)

			logger.Info("repaired manifest",
				slog.Bool("valid", result.IsValid),
				slog.Int("changes", len(result.Changes)),
				slog.Float64("confidence", result.Confidence))

			var out []byte

			if jsonOutput {
				out, err = json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal result: %w", err)
				}

				out = append(out, '\n')
			} else {
				out = []byte(result.Content)
			}

			if err := writeAll(outputPath, out); err != nil {
				return err
			}

			if !result.IsValid {
				cmd.SilenceUsage = true

				return fmt.Errorf("manifest still invalid after repair: %d remaining error(s)", len(result.Errors))
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.ConfidenceThreshold, "confidence-threshold", opts.ConfidenceThreshold,
		"confidence below which a change is downgraded to warning severity")
	cmd.Flags().BoolVar(&opts.Aggressive, "aggressive", opts.Aggressive,
		"repeat the aggressive parent-colon sweep up to three times")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", opts.MaxIterations,
		"bound on the parse-fix-reparse loop")
	cmd.Flags().IntVar(&opts.IndentSize, "indent-size", opts.IndentSize,
		"indentation unit re-indentation rounds to")
	cmd.Flags().BoolVar(&opts.AutoFix, "auto-fix", opts.AutoFix,
		"apply repairs; when false, only parse and report")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default stdout)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the full structured result as JSON")

	return cmd
}
