// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package ssdfair

import (
	"fmt"
	"strings"
)

const (
	// BlockSize is the fixed request size in bytes and the alignment
	// granularity for request addresses. It matches the 4 KiB access
	// granularity of typical flash devices.
	BlockSize = 4096

	// MaxAddress is the largest raw address the trace generator draws before
	// block alignment. 1 TiB of logical address space, itself a BlockSize
	// multiple, so the aligned range is [0, MaxAddress].
	MaxAddress = 1 << 40
)

// OpType is the direction of an I/O request.
type OpType uint8

const (
	OpRead OpType = iota
	OpWrite
)

// String returns the canonical trace-file spelling of the operation.
func (op OpType) String() string {
	switch op {
	case OpRead:
		return "READ"
	case OpWrite:
		return "WRITE"
	default:
		return fmt.Sprintf("OpType(%d)", uint8(op))
	}
}

// ParseOpType converts a trace-file operation field into an OpType. Matching
// is case-insensitive; anything other than READ or WRITE is a data-format
// error.
func ParseOpType(s string) (OpType, error) {
	switch strings.ToLower(s) {
	case "read":
		return OpRead, nil
	case "write":
		return OpWrite, nil
	default:
		return 0, fmt.Errorf("%w: unknown op type %q", ErrDataFormat, s)
	}
}

// Request is one synthetic I/O request. A trace is an ordered sequence of
// these with non-decreasing timestamps.
type Request struct {
	// Timestamp is microseconds since the start of the trace. Never negative,
	// and never decreasing between consecutive requests of a trace.
	Timestamp int64

	// Process is the logical issuer label, "process1" through "processN" for
	// generated traces. Traces recorded from live systems may carry other
	// labels (see trace.Read).
	Process string

	Op OpType

	// Address is the starting byte offset of the access. Always a BlockSize
	// multiple.
	Address uint64

	// Size is the length of the access in bytes.
	Size int
}

// ProcessLabel returns the conventional label for the k-th logical process,
// counting from 1.
func ProcessLabel(k int) string {
	return fmt.Sprintf("process%d", k)
}
