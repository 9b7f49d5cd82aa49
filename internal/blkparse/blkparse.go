// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package blkparse interprets the default text output of blkparse(1), the
// blktrace post-processor, one line at a time. Only queue ("Q") events carry
// request information; other actions are recognized and skipped so that a
// whole blkparse dump can be fed through without filtering.
package blkparse

import (
	"errors"
	"strconv"
	"strings"
)

// SectorSize is the unit of the sector counts blkparse prints.
const SectorSize = 512

// Record is one parsed queue event.
type Record struct {
	Device  string  // major,minor as printed, e.g. "8,0"
	Time    float64 // seconds since trace start
	PID     string
	Command string // process name from the trailing [bracketed] field, if any
	RWBS    string // raw direction/attribute field
	Sector  uint64 // starting sector
	Sectors uint64 // length in sectors
}

// Write reports whether the event describes a write. Any W in the RWBS field
// counts, so flush+write combinations classify as writes.
func (r *Record) Write() bool {
	return strings.ContainsRune(strings.ToUpper(r.RWBS), 'W')
}

// Bytes returns the request length in bytes.
func (r *Record) Bytes() uint64 {
	return r.Sectors * SectorSize
}

// Offset returns the starting byte offset of the request.
func (r *Record) Offset() uint64 {
	return r.Sector * SectorSize
}

// Parse attempts to interpret line as blkparse output. The second result is
// false when the line is not blkparse-shaped at all, letting callers fall
// back to other formats. A nil record with ok == true means the line is a
// recognized non-queue event and carries no request. A malformed queue event
// is an error.
func Parse(line string) (rec *Record, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) < 7 {
		return nil, false, nil
	}

	// The leading device field is the signature of the format: "maj,min".
	if !strings.Contains(fields[0], ",") {
		return nil, false, nil
	}

	ts, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, false, nil
	}

	action := fields[5]
	if action != "Q" {
		return nil, true, nil
	}

	if len(fields) < 10 {
		return nil, true, errors.New("incomplete blkparse data for queue event")
	}
	if fields[8] != "+" {
		return nil, true, errors.New("expected '+' before sector count")
	}

	sector, err := strconv.ParseUint(fields[7], 10, 64)
	if err != nil {
		return nil, true, errors.New("invalid start sector: " + err.Error())
	}
	sectors, err := strconv.ParseUint(fields[9], 10, 64)
	if err != nil {
		return nil, true, errors.New("invalid sector count: " + err.Error())
	}

	r := &Record{
		Device:  fields[0],
		Time:    ts,
		PID:     fields[4],
		RWBS:    fields[6],
		Sector:  sector,
		Sectors: sectors,
	}
	if len(fields) > 10 {
		r.Command = strings.Trim(fields[10], "[]")
	}
	return r, true, nil
}
