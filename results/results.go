// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	ssdfair "github.com/qchen4/ssd-fairness"
)

const (
	colProcess  = "process_id"
	colLatency  = "latency"
	colFairness = "fairness_index"
)

// Row is one completed request.
type Row struct {
	Process  string
	Latency  float64 // microseconds
	Fairness float64 // running fairness index after this completion
}

// Table is a loaded results file. It is immutable once built; slices
// returned by its accessors share the table's backing storage and must not
// be modified.
type Table struct {
	rows      []Row
	byProcess map[string][]float64
	processes []string
}

// Load reads the results file at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results: %w", err)
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses results CSV from r. The header row is required, must name the
// process_id, latency, and fairness_index columns, and fixes the width of
// every following row. A file with no data rows is a data-format error, as
// is any cell that fails to parse.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty results file", ssdfair.ErrDataFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ssdfair.ErrDataFormat, err)
	}

	procIdx, latIdx, fairIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case colProcess:
			if procIdx < 0 {
				procIdx = i
			}
		case colLatency:
			if latIdx < 0 {
				latIdx = i
			}
		case colFairness:
			if fairIdx < 0 {
				fairIdx = i
			}
		}
	}
	for _, missing := range []struct {
		idx  int
		name string
	}{{procIdx, colProcess}, {latIdx, colLatency}, {fairIdx, colFairness}} {
		if missing.idx < 0 {
			return nil, fmt.Errorf("%w: missing required column %q", ssdfair.ErrDataFormat, missing.name)
		}
	}

	t := &Table{byProcess: make(map[string][]float64)}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNo := len(t.rows) + 1
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %s", ssdfair.ErrDataFormat, rowNo, err)
		}

		process := strings.TrimSpace(record[procIdx])
		if process == "" {
			return nil, fmt.Errorf("%w: row %d: empty %s", ssdfair.ErrDataFormat, rowNo, colProcess)
		}
		latency, err := parseCell(record[latIdx])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid %s %q", ssdfair.ErrDataFormat, rowNo, colLatency, record[latIdx])
		}
		fairness, err := parseCell(record[fairIdx])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid %s %q", ssdfair.ErrDataFormat, rowNo, colFairness, record[fairIdx])
		}

		t.rows = append(t.rows, Row{Process: process, Latency: latency, Fairness: fairness})
		t.byProcess[process] = append(t.byProcess[process], latency)
	}
	if len(t.rows) == 0 {
		return nil, fmt.Errorf("%w: results file has no data rows", ssdfair.ErrDataFormat)
	}

	t.processes = slices.Sorted(maps.Keys(t.byProcess))
	return t, nil
}

func parseCell(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns all rows in file order.
func (t *Table) Rows() []Row {
	return t.rows
}

// Processes returns the process labels present, sorted lexically. The same
// order drives the box-plot groups and the summary table.
func (t *Table) Processes() []string {
	return t.processes
}

// Latencies returns the latency samples recorded for process, in file order.
func (t *Table) Latencies(process string) []float64 {
	return t.byProcess[process]
}

// FairnessSeries returns the fairness_index column in file order.
func (t *Table) FairnessSeries() []float64 {
	series := make([]float64, len(t.rows))
	for i, row := range t.rows {
		series[i] = row.Fairness
	}
	return series
}

// FinalFairness returns the fairness index after the last completion. Load
// guarantees at least one row.
func (t *Table) FinalFairness() float64 {
	return t.rows[len(t.rows)-1].Fairness
}
