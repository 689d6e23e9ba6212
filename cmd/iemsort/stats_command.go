package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ericz0u/IEMClassification/internal/index"
	"github.com/ericz0u/IEMClassification/internal/signature"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the label distribution and recent runs from the results index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			indexPath := cfg.IndexPath()
			if _, err := os.Stat(indexPath); err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("no results index at %s; run `iemsort build` first", indexPath)
				}
				return fmt.Errorf("check results index: %w", err)
			}

			store, err := index.Open(indexPath)
			if err != nil {
				return fmt.Errorf("open results index: %w", err)
			}
			defer store.Close()

			counts, err := store.CountByLabel(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			rows := make([][]string, 0, len(signature.Labels()))
			for _, label := range signature.Labels() {
				rows = append(rows, []string{label.String(), strconv.Itoa(counts[label])})
				total += counts[label]
			}
			rows = append(rows, []string{"Total", strconv.Itoa(total)})
			fmt.Fprintln(out, renderTable(
				[]string{"Label", "Curves"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))

			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				return nil
			}
			runRows := make([][]string, 0, len(runs))
			for _, run := range runs {
				runRows = append(runRows, []string{
					run.RunID,
					strconv.Itoa(run.Curves),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Curves", "Started"},
				runRows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}
