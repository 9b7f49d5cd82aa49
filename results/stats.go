// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"golang.org/x/perf/benchmath"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the latency statistics for one process. Latencies are in
// microseconds. Lo and Hi bound the 95% confidence interval around the
// median, computed without distributional assumptions.
type Summary struct {
	Process string
	Count   int
	Mean    float64
	Min     float64
	Max     float64
	Median  float64
	Lo      float64
	Hi      float64
	Q1      float64
	Q3      float64
	P95     float64
}

const confidence = 0.95

// Summaries computes per-process latency statistics, one entry per process
// in Processes order.
func (t *Table) Summaries() []Summary {
	thresholds := benchmath.DefaultThresholds
	out := make([]Summary, 0, len(t.processes))
	for _, process := range t.processes {
		values := slices.Clone(t.byProcess[process])
		slices.Sort(values)

		sample := benchmath.NewSample(values, &thresholds)
		sum := benchmath.AssumeNothing.Summary(sample, confidence)

		out = append(out, Summary{
			Process: process,
			Count:   len(values),
			Mean:    stat.Mean(values, nil),
			Min:     values[0],
			Max:     values[len(values)-1],
			Median:  sum.Center,
			Lo:      sum.Lo,
			Hi:      sum.Hi,
			Q1:      stat.Quantile(0.25, stat.Empirical, values, nil),
			Q3:      stat.Quantile(0.75, stat.Empirical, values, nil),
			P95:     stat.Quantile(0.95, stat.Empirical, values, nil),
		})
	}
	return out
}

var summaryHeader = []string{"process_id", "completed", "mean_latency_us", "median_latency_us", "p95_latency_us"}

// WriteSummaries emits summaries as CSV on w.
func WriteSummaries(w io.Writer, summaries []Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, s := range summaries {
		err := cw.Write([]string{
			s.Process,
			strconv.Itoa(s.Count),
			formatStat(s.Mean),
			formatStat(s.Median),
			formatStat(s.P95),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryFile writes summaries as CSV to path, creating parent
// directories as needed.
func WriteSummaryFile(path string, summaries []Summary) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create summary directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close summary file: %w", cerr)
		}
	}()
	return WriteSummaries(f, summaries)
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
