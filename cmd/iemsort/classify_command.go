package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ericz0u/IEMClassification/internal/curvefile"
	"github.com/ericz0u/IEMClassification/internal/signature"
	"github.com/ericz0u/IEMClassification/internal/textutil"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var thresholdFlag float64

	cmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Classify a single measurement without writing any output files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			sigCfg := cfg.Signature()
			if cmd.Flags().Changed("threshold") {
				if thresholdFlag < 0 {
					return fmt.Errorf("threshold must be non-negative, got %g", thresholdFlag)
				}
				sigCfg.Threshold = thresholdFlag
			}

			path := args[0]
			curve, err := curvefile.Load(path)
			if err != nil {
				return err
			}
			result, err := signature.Evaluate(curve, sigCfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fileName := filepath.Base(path)
			fmt.Fprintf(out, "Device:    %s\n", textutil.DisplayName(fileName))
			fmt.Fprintf(out, "Samples:   %d\n", len(curve.Frequencies))
			fmt.Fprintf(out, "Threshold: %.1f dB\n", sigCfg.Threshold)
			fmt.Fprintf(out, "Label:     %s\n\n", highlight(out, result.Label.String()))

			bandRows := make([][]string, 0, len(sigCfg.Bands))
			for i, band := range sigCfg.Bands {
				bandRows = append(bandRows, []string{
					band.Name,
					fmt.Sprintf("%.0f-%.0f", band.Low, band.High),
					formatMean(result.BandMeans[i]),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Band", "Range (Hz)", "Mean (dB)"},
				bandRows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))

			regionRows := [][]string{
				{"Bass", formatMean(result.Regions.Bass), formatOffset(result.Regions.Bass, result.Regions.Mid)},
				{"Mid", formatMean(result.Regions.Mid), "-"},
				{"Treble", formatMean(result.Regions.Treble), formatOffset(result.Regions.Treble, result.Regions.Mid)},
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Region", "Mean (dB)", "Offset vs mid (dB)"},
				regionRows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&thresholdFlag, "threshold", "t", signature.DefaultThreshold, "Emphasis threshold in dB")
	return cmd
}

func formatMean(mean signature.Mean) string {
	if !mean.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f", mean.Value)
}

func formatOffset(region, mid signature.Mean) string {
	if !region.Defined || !mid.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f", region.Value-mid.Value)
}
