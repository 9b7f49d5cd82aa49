// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qchen4/ssd-fairness/chart"
	"github.com/qchen4/ssd-fairness/results"
)

var (
	plotLatencyOut  string
	plotFairnessOut string
)

var plotCmd = &cobra.Command{
	Use:   "plot RESULTS",
	Short: "Render latency and fairness charts from a results file",
	Long: `Read a scheduler results file and render the two standard charts: a box
plot of I/O latency per process and the fairness index over time. The output
format follows the file extension (.png, .svg, or .pdf).`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().StringVar(&plotLatencyOut, "latency-out", chart.DefaultLatencyFile, "output path for the latency distribution chart")
	plotCmd.Flags().StringVar(&plotFairnessOut, "fairness-out", chart.DefaultFairnessFile, "output path for the fairness index chart")
}

func runPlot(cmd *cobra.Command, args []string) error {
	table, err := results.Load(args[0])
	if err != nil {
		return err
	}
	zap.L().Debug("loaded results",
		zap.String("path", args[0]),
		zap.Int("rows", table.Len()),
		zap.Int("processes", len(table.Processes())))

	opts := chart.Options{LatencyPath: plotLatencyOut, FairnessPath: plotFairnessOut}
	if err := chart.Render(table, opts); err != nil {
		return err
	}

	green.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", opts.LatencyPath, opts.FairnessPath)
	return nil
}
