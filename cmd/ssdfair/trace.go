// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ssdfair "github.com/qchen4/ssd-fairness"
	"github.com/qchen4/ssd-fairness/trace"
)

var (
	traceProcesses int
	traceRequests  int
	traceOutput    string
	traceSeed      int64
	traceProfile   string
	traceQuiet     bool
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Generate a synthetic I/O request trace",
	Long: `Generate a synthetic trace of block-level I/O requests issued by a number
of competing processes. Each request draws its process, direction, and
block-aligned address uniformly at random, and arrivals are separated by
uniform gaps. The seed in use is always reported so any run can be
reproduced exactly.`,
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().IntVarP(&traceProcesses, "processes", "p", 4, "number of competing processes")
	traceCmd.Flags().IntVarP(&traceRequests, "requests", "n", 1000, "number of requests to generate")
	traceCmd.Flags().StringVarP(&traceOutput, "output", "o", "", "output trace file (required unless the profile sets one)")
	traceCmd.Flags().Int64Var(&traceSeed, "seed", 0, "random seed; 0 picks one from the clock")
	traceCmd.Flags().StringVar(&traceProfile, "profile", "", "workload profile file (YAML or JSON) supplying defaults")
	traceCmd.Flags().BoolVarP(&traceQuiet, "quiet", "q", false, "suppress the progress bar")
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg := trace.Config{Processes: traceProcesses, Requests: traceRequests, Seed: traceSeed}
	output := traceOutput

	if traceProfile != "" {
		profile, err := loadProfile(traceProfile)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if !flags.Changed("processes") && profile.Processes != 0 {
			cfg.Processes = profile.Processes
		}
		if !flags.Changed("requests") && profile.Requests != 0 {
			cfg.Requests = profile.Requests
		}
		if !flags.Changed("seed") && profile.Seed != 0 {
			cfg.Seed = profile.Seed
		}
		if !flags.Changed("output") && profile.Output != "" {
			output = profile.Output
		}
	}
	if output == "" {
		return fmt.Errorf("%w: an output path is required (--output or profile)", ssdfair.ErrConfig)
	}

	gen, err := trace.NewGenerator(cfg)
	if err != nil {
		return err
	}
	zap.L().Debug("generating trace",
		zap.Int("processes", cfg.Processes),
		zap.Int("requests", cfg.Requests),
		zap.Int64("seed", gen.Seed()),
		zap.String("output", output))

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}

	var bar *progressbar.ProgressBar
	if !traceQuiet {
		bar = newProgressBar(cfg.Requests, "Generating requests")
	}

	w := trace.NewWriter(f)
	written := 0
	for {
		req, ok := gen.Next()
		if !ok {
			break
		}
		if err := w.Write(req); err != nil {
			f.Close()
			return fmt.Errorf("write trace: %w", err)
		}
		written++
		if bar != nil && written%1000 == 0 {
			_ = bar.Add(1000)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush trace: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close trace file: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	green.Fprintf(cmd.OutOrStdout(), "Wrote %d requests for %d processes to %s (seed %d)\n",
		written, cfg.Processes, output, gen.Seed())
	return nil
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
