// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qchen4/ssd-fairness/trace"
)

var mergeOutput string

var mergeCmd = &cobra.Command{
	Use:   "merge TRACE...",
	Short: "Merge traces into one timestamp-ordered trace",
	Long: `Merge one or more trace files into a single trace ordered by timestamp.
Inputs may mix the canonical CSV format with recorded blkparse output; ties
between files resolve in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output trace file (required)")
	_ = mergeCmd.MarkFlagRequired("output")
}

func runMerge(cmd *cobra.Command, args []string) error {
	n, err := trace.MergeFile(mergeOutput, args...)
	if err != nil {
		return err
	}
	zap.L().Debug("merged traces", zap.Int("requests", n), zap.Strings("inputs", args))

	green.Fprintf(cmd.OutOrStdout(), "Merged %d requests from %d trace(s) into %s\n",
		n, len(args), mergeOutput)
	return nil
}
