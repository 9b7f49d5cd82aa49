// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package trace generates, reads, writes, and merges I/O request traces.
//
// A trace file is CSV with a fixed header:
//
//	timestamp,process_id,type,address,size
//
// Timestamps are microseconds from the start of the trace and rows are
// ordered by timestamp. [Generate] produces synthetic traces in this format;
// [Read] additionally accepts an extended six-column variant that carries an
// explicit user id, and raw blkparse(1) text output, so traces recorded from
// real devices can be replayed next to synthetic ones.
package trace
