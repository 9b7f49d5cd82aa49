// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package chart renders the two standard analysis charts from a results
// table: a per-process latency box plot and a fairness-over-time line.
package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	ssdfair "github.com/qchen4/ssd-fairness"
	"github.com/qchen4/ssd-fairness/results"
)

// Default output filenames, relative to the working directory.
const (
	DefaultLatencyFile  = "latency_distribution.png"
	DefaultFairnessFile = "fairness_index.png"
)

// Both charts render at the same fixed canvas size.
const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

// Options selects where the charts are written. Zero-valued paths fall back
// to the default filenames. The output format follows the file extension;
// .png, .svg, and .pdf all work. Existing files at either path are
// overwritten.
type Options struct {
	LatencyPath  string
	FairnessPath string
}

func (o Options) withDefaults() Options {
	if o.LatencyPath == "" {
		o.LatencyPath = DefaultLatencyFile
	}
	if o.FairnessPath == "" {
		o.FairnessPath = DefaultFairnessFile
	}
	return o
}

// Render writes both charts for t. The table is validated up front so that a
// degenerate dataset fails before any file is touched: every process needs
// at least two latency samples for its box to have a span.
func Render(t *results.Table, opts Options) error {
	opts = opts.withDefaults()
	if err := validate(t); err != nil {
		return err
	}
	if err := renderLatency(t, opts.LatencyPath); err != nil {
		return fmt.Errorf("latency chart: %w", err)
	}
	if err := renderFairness(t, opts.FairnessPath); err != nil {
		return fmt.Errorf("fairness chart: %w", err)
	}
	return nil
}

func validate(t *results.Table) error {
	for _, process := range t.Processes() {
		if n := len(t.Latencies(process)); n < 2 {
			return fmt.Errorf("%w: process %q has %d latency sample(s), box plot needs at least 2",
				ssdfair.ErrDataFormat, process, n)
		}
	}
	return nil
}

func renderLatency(t *results.Table, path string) error {
	p := plot.New()
	p.Title.Text = "I/O Latency Distribution by Process"
	p.X.Label.Text = "Process ID"
	p.Y.Label.Text = "Latency (µs)"

	processes := t.Processes()
	for i, process := range processes {
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(t.Latencies(process)))
		if err != nil {
			return fmt.Errorf("box for %s: %w", process, err)
		}
		p.Add(box)
	}
	p.NominalX(processes...)

	return p.Save(chartWidth, chartHeight, path)
}

func renderFairness(t *results.Table, path string) error {
	p := plot.New()
	p.Title.Text = "Fairness Index Over Time"
	p.X.Label.Text = "Request Number"
	p.Y.Label.Text = "Jain's Fairness Index"

	series := t.FairnessSeries()
	pts := make(plotter.XYs, len(series))
	for i, v := range series {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("fairness line: %w", err)
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	return p.Save(chartWidth, chartHeight, path)
}
