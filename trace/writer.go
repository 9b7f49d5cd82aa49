// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package trace

import (
	"encoding/csv"
	"io"
	"strconv"

	ssdfair "github.com/qchen4/ssd-fairness"
)

var header = []string{"timestamp", "process_id", "type", "address", "size"}

// Writer emits requests as canonical five-column trace CSV. The header row
// is written ahead of the first request.
type Writer struct {
	csv         *csv.Writer
	wroteHeader bool
}

// NewWriter returns a Writer targeting w. Call Flush once all requests have
// been written.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// Write appends one request row.
func (w *Writer) Write(r ssdfair.Request) error {
	if !w.wroteHeader {
		if err := w.csv.Write(header); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	return w.csv.Write([]string{
		strconv.FormatInt(r.Timestamp, 10),
		r.Process,
		r.Op.String(),
		strconv.FormatUint(r.Address, 10),
		strconv.Itoa(r.Size),
	})
}

// Flush writes buffered rows to the underlying writer and reports any write
// error encountered so far.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}
