// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package ssdfair holds the shared data model for the SSD fairness toolkit:
// the synthetic I/O request record exchanged through trace files, and Jain's
// fairness index used to score how evenly a scheduler divides service among
// competing processes.
//
// The toolkit is a set of offline, one-shot transforms around a storage
// scheduler experiment. The trace side (package trace) synthesizes and merges
// workload files that the scheduler under test consumes. The analysis side
// (packages results and chart) turns the scheduler's per-request output back
// into summary statistics and charts. The scheduler itself is an external
// collaborator; the packages here only agree with it on file formats.
//
// Every transform runs to completion or fails outright. Concurrent
// invocations over the same output path are last-writer-wins; nothing here
// coordinates between runs.
package ssdfair
