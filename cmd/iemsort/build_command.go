package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericz0u/IEMClassification/internal/dataset"
	"github.com/ericz0u/IEMClassification/internal/index"
	"github.com/ericz0u/IEMClassification/internal/preflight"
	"github.com/ericz0u/IEMClassification/internal/render"
	"github.com/ericz0u/IEMClassification/internal/signature"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Classify every measurement in the input directory and build the dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("prepare output directories: %w", err)
			}

			if failed := preflight.Failed(preflight.RunAll(cfg)); len(failed) > 0 {
				lines := make([]string, 0, len(failed))
				for _, res := range failed {
					lines = append(lines, fmt.Sprintf("  %s: %s", res.Name, res.Detail))
				}
				return fmt.Errorf("preflight checks failed:\n%s", strings.Join(lines, "\n"))
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, closeLogs, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLogs()

			store, err := index.Open(cfg.IndexPath())
			if err != nil {
				return fmt.Errorf("open results index: %w", err)
			}
			defer store.Close()

			renderer := render.New(render.Options{
				WidthInches:  cfg.Render.WidthInches,
				HeightInches: cfg.Render.HeightInches,
				DPI:          cfg.Render.DPI,
			})

			builder, err := dataset.New(cfg, store, renderer, logger)
			if err != nil {
				return err
			}
			summary, err := builder.Run(signalCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s finished in %s\n", summary.RunID, summary.Elapsed.Round(time.Millisecond))
			rows := make([][]string, 0, len(signature.Labels())+3)
			for _, label := range signature.Labels() {
				rows = append(rows, []string{label.String(), strconv.Itoa(summary.ByLabel[label])})
			}
			rows = append(rows,
				[]string{"Skipped", strconv.Itoa(summary.Skipped)},
				[]string{"Failed", strconv.Itoa(summary.Failed)},
				[]string{"Total processed", strconv.Itoa(summary.Processed)},
			)
			fmt.Fprintln(out, renderTable(
				[]string{"Label", "Curves"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintf(out, "Dataset written to %s\n", cfg.Paths.OutputDir)
			return nil
		},
	}
}
