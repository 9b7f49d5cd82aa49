// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package trace

import (
	"cmp"
	"fmt"
	"io"
	"os"

	"github.com/addrummond/heap"

	ssdfair "github.com/qchen4/ssd-fairness"
)

// mergeCursor tracks the read position within one input trace. Cursors order
// by the timestamp at the head, falling back to input position so that ties
// resolve in argument order.
type mergeCursor struct {
	rows []ssdfair.Request
	pos  int
	src  int
}

func (a *mergeCursor) Cmp(b *mergeCursor) int {
	if c := cmp.Compare(a.rows[a.pos].Timestamp, b.rows[b.pos].Timestamp); c != 0 {
		return c
	}
	return cmp.Compare(a.src, b.src)
}

// Merge interleaves the traces at paths into a single timestamp-ordered
// trace on w and returns the number of requests written. Each input is
// sorted on load, so the merge holds one cursor per input on a min-heap
// rather than re-sorting the union.
func Merge(w io.Writer, paths ...string) (int, error) {
	if len(paths) == 0 {
		return 0, fmt.Errorf("%w: no input traces", ssdfair.ErrConfig)
	}

	var cursors heap.Heap[mergeCursor, heap.Min]
	for i, path := range paths {
		rows, err := ReadFile(path)
		if err != nil {
			return 0, err
		}
		if len(rows) == 0 {
			continue
		}
		heap.PushOrderable(&cursors, mergeCursor{rows: rows, src: i})
	}

	tw := NewWriter(w)
	n := 0
	for {
		cur, ok := heap.PopOrderable(&cursors)
		if !ok {
			break
		}
		if err := tw.Write(cur.rows[cur.pos]); err != nil {
			return n, fmt.Errorf("write merged trace: %w", err)
		}
		n++
		cur.pos++
		if cur.pos < len(cur.rows) {
			heap.PushOrderable(&cursors, cur)
		}
	}
	if err := tw.Flush(); err != nil {
		return n, fmt.Errorf("flush merged trace: %w", err)
	}
	return n, nil
}

// MergeFile is Merge writing to a freshly created file at path.
func MergeFile(path string, inputs ...string) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create merged trace file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close merged trace file: %w", cerr)
		}
	}()
	return Merge(f, inputs...)
}
