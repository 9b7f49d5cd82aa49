// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package results

import (
	"fmt"

	"github.com/gammazero/deque"

	ssdfair "github.com/qchen4/ssd-fairness"
)

// CompletionFairness derives a fairness series from the completion stream
// itself, independent of the fairness_index column: after each row it
// computes Jain's index over how many requests each process completed within
// the trailing window rows. A window of 0 spans the whole run so far. With
// fixed-size requests the completion counts are proportional to bytes
// served, so this tracks device-side service accounting. Only processes
// present in the window participate; a negative window is a configuration
// error.
func (t *Table) CompletionFairness(window int) ([]float64, error) {
	if window < 0 {
		return nil, fmt.Errorf("%w: fairness window must be non-negative, got %d", ssdfair.ErrConfig, window)
	}

	counts := make(map[string]int)
	var recent deque.Deque[string]
	out := make([]float64, 0, len(t.rows))
	for _, row := range t.rows {
		if window > 0 {
			recent.PushBack(row.Process)
			for recent.Len() > window {
				old := recent.PopFront()
				counts[old]--
				if counts[old] == 0 {
					delete(counts, old)
				}
			}
		}
		counts[row.Process]++

		shares := make([]float64, 0, len(counts))
		for _, c := range counts {
			shares = append(shares, float64(c))
		}
		out = append(out, ssdfair.JainIndex(shares))
	}
	return out, nil
}
