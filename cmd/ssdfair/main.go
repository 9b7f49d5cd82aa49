// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command ssdfair is the workbench around an I/O scheduler under test: it
// generates synthetic block-level request traces, merges recorded traces,
// and turns the scheduler's per-request results into latency and fairness
// charts and summaries.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ssdfair",
	Short: "Synthetic trace generation and fairness analysis for SSD scheduler experiments",
	Long: `ssdfair generates synthetic block-level I/O traces for a configurable
number of competing processes, merges recorded traces into replayable
workloads, and analyzes scheduler results for per-process latency and
fairness.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(mergeCmd)
}

func main() {
	defer func() { _ = zap.L().Sync() }()
	if err := rootCmd.Execute(); err != nil {
		red.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
