// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qchen4/ssd-fairness/results"
)

var (
	summaryWindow int
	summaryOutput string
)

var summaryCmd = &cobra.Command{
	Use:   "summary RESULTS",
	Short: "Print per-process latency statistics and fairness indices",
	Long: `Read a scheduler results file and print a per-process latency table along
with two fairness views: the scheduler's own final fairness index and one
recomputed from the completion stream, optionally over a trailing window of
requests.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&summaryWindow, "window", 0, "trailing window in requests for the completion fairness index; 0 spans the whole run")
	summaryCmd.Flags().StringVarP(&summaryOutput, "output", "o", "", "also write the per-process summary as CSV")
}

func runSummary(cmd *cobra.Command, args []string) error {
	table, err := results.Load(args[0])
	if err != nil {
		return err
	}
	summaries := table.Summaries()

	out := cmd.OutOrStdout()
	tw := tablewriter.NewWriter(out)
	tw.Header("Process", "Completed", "Mean (µs)", "Median (µs)", "95% CI (µs)", "P95 (µs)")
	for _, s := range summaries {
		tw.Append(
			s.Process,
			strconv.Itoa(s.Count),
			formatMicros(s.Mean),
			formatMicros(s.Median),
			fmt.Sprintf("[%s, %s]", formatMicros(s.Lo), formatMicros(s.Hi)),
			formatMicros(s.P95),
		)
	}
	if err := tw.Render(); err != nil {
		return err
	}

	derived, err := table.CompletionFairness(summaryWindow)
	if err != nil {
		return err
	}
	bold.Fprintf(out, "Fairness Index: %.4f\n", table.FinalFairness())
	scope := "whole run"
	if summaryWindow > 0 {
		scope = fmt.Sprintf("last %d requests", summaryWindow)
	}
	fmt.Fprintf(out, "Completion fairness (%s): %.4f\n", scope, derived[len(derived)-1])

	if summaryOutput != "" {
		if err := results.WriteSummaryFile(summaryOutput, summaries); err != nil {
			return err
		}
		zap.L().Debug("wrote summary file", zap.String("path", summaryOutput))
		green.Fprintf(out, "Wrote %s\n", summaryOutput)
	}
	return nil
}

func formatMicros(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
