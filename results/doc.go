// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package results loads per-request scheduler output and derives the
// statistics behind the analysis charts and summaries.
//
// A results file is CSV whose header must name at least the columns
// process_id, latency, and fairness_index; extra columns are tolerated and
// column order does not matter. Each row records one completed request: the
// process it belonged to, its service latency in microseconds, and the
// scheduler's running fairness index at that point.
package results
