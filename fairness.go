// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package ssdfair

// JainIndex computes Jain's fairness index over the given shares:
// (Σx)² / (n·Σx²). The result lies in (0, 1] for any non-degenerate input,
// with 1 meaning perfectly equal shares. An empty or all-zero input yields 0.
func JainIndex(shares []float64) float64 {
	var sum, sumSq float64
	for _, x := range shares {
		sum += x
		sumSq += x * x
	}
	if sumSq == 0 {
		return 0
	}
	return sum * sum / (float64(len(shares)) * sumSq)
}

// FairnessMeter accumulates per-process service and reports Jain's index over
// it. Processes that have received no service are excluded from the index so
// that idle queues do not drag the score toward zero.
type FairnessMeter struct {
	served map[string]float64
}

// NewFairnessMeter returns a meter with no service recorded.
func NewFairnessMeter() *FairnessMeter {
	return &FairnessMeter{served: make(map[string]float64)}
}

// Record adds bytes of service delivered to the named process. Non-positive
// amounts are ignored.
func (m *FairnessMeter) Record(process string, bytes int) {
	if bytes <= 0 {
		return
	}
	m.served[process] += float64(bytes)
}

// Participants returns the number of processes with recorded service.
func (m *FairnessMeter) Participants() int {
	return len(m.served)
}

// Index returns Jain's fairness index over the non-idle processes, or 0 when
// nothing has been recorded.
func (m *FairnessMeter) Index() float64 {
	if len(m.served) == 0 {
		return 0
	}
	shares := make([]float64, 0, len(m.served))
	for _, v := range m.served {
		shares = append(shares, v)
	}
	return JainIndex(shares)
}
