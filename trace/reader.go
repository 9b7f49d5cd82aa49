// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package trace

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	ssdfair "github.com/qchen4/ssd-fairness"
	"github.com/qchen4/ssd-fairness/internal/blkparse"
)

// taggedRequest carries the per-process user id alongside a request so that
// timestamp ties sort in a stable, format-independent order.
type taggedRequest struct {
	req  ssdfair.Request
	user int
}

type reader struct {
	rows    []taggedRequest
	userIDs map[string]int
	nextID  int
}

// ReadFile loads the trace at path. See Read for the accepted formats.
func ReadFile(path string) ([]ssdfair.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()
	reqs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reqs, nil
}

// Read parses trace data from r and returns the requests sorted by
// timestamp. Three line formats are accepted and may be mixed: the canonical
// five-column CSV written by this package, a six-column variant with an
// explicit user id in the third column, and blkparse(1) text output. Blank
// lines and lines starting with # are ignored, as is a leading header row.
// Requests with equal timestamps keep a deterministic order: by declared
// user id where one exists, otherwise by order of first appearance of the
// process. Malformed lines fail with an error wrapping
// [ssdfair.ErrDataFormat] that names the line.
func Read(r io.Reader) ([]ssdfair.Request, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	rd := &reader{userIDs: make(map[string]int)}
	lineNo := 0
	sawData := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !sawData && looksLikeHeader(line) {
			continue
		}
		if err := rd.line(lineNo, line); err != nil {
			return nil, err
		}
		sawData = true
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}

	slices.SortStableFunc(rd.rows, func(a, b taggedRequest) int {
		if c := cmp.Compare(a.req.Timestamp, b.req.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.user, b.user)
	})
	out := make([]ssdfair.Request, len(rd.rows))
	for i, tr := range rd.rows {
		out[i] = tr.req
	}
	return out, nil
}

// looksLikeHeader reports whether a line seen ahead of any data is a column
// header rather than a row: its first comma-separated field does not parse
// as an integer.
func looksLikeHeader(line string) bool {
	first := line
	if i := strings.IndexByte(line, ','); i >= 0 {
		first = line[:i]
	}
	first = strings.TrimSpace(first)
	if first == "" {
		return true
	}
	_, err := strconv.ParseInt(first, 10, 64)
	return err != nil
}

func (rd *reader) line(lineNo int, line string) error {
	tokens := strings.Split(line, ",")
	switch len(tokens) {
	case 5, 6:
		return rd.csvRow(lineNo, tokens)
	default:
		return rd.blkRow(lineNo, line)
	}
}

func (rd *reader) csvRow(lineNo int, tokens []string) error {
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	tsTok := tokens[0]
	var process, opTok, addrTok, sizeTok string
	if len(tokens) == 5 {
		process, opTok, addrTok, sizeTok = tokens[1], tokens[2], tokens[3], tokens[4]
	} else {
		process, opTok, addrTok, sizeTok = tokens[1], tokens[3], tokens[4], tokens[5]
	}

	ts, err := parseTimestamp(tsTok)
	if err != nil {
		return errf(lineNo, "invalid timestamp %q", tsTok)
	}
	if process == "" {
		return errf(lineNo, "empty process_id")
	}
	op, err := ssdfair.ParseOpType(opTok)
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNo, err)
	}
	addr, err := strconv.ParseUint(addrTok, 10, 64)
	if err != nil {
		return errf(lineNo, "invalid address %q", addrTok)
	}
	size, err := strconv.ParseUint(sizeTok, 10, 32)
	if err != nil {
		return errf(lineNo, "invalid size %q", sizeTok)
	}

	var user int
	if len(tokens) == 6 {
		uid, err := strconv.Atoi(tokens[2])
		if err != nil || uid < 0 {
			return errf(lineNo, "invalid user id %q", tokens[2])
		}
		if existing, seen := rd.userIDs[process]; seen && existing != uid {
			return errf(lineNo, "process %q maps to conflicting user ids %d and %d", process, existing, uid)
		}
		rd.userIDs[process] = uid
		user = uid
	} else {
		user = rd.assign(process)
	}

	rd.rows = append(rd.rows, taggedRequest{
		req: ssdfair.Request{
			Timestamp: ts,
			Process:   process,
			Op:        op,
			Address:   addr,
			Size:      int(size),
		},
		user: user,
	})
	return nil
}

func (rd *reader) blkRow(lineNo int, line string) error {
	rec, ok, err := blkparse.Parse(line)
	if !ok {
		return errf(lineNo, "expected CSV or blkparse trace data")
	}
	if err != nil {
		return errf(lineNo, "%s", err)
	}
	if rec == nil {
		// Recognized action that queues no request.
		return nil
	}
	if rec.Time < 0 {
		return errf(lineNo, "negative event time %v", rec.Time)
	}
	if rec.Bytes() > math.MaxUint32 {
		return errf(lineNo, "request length %d bytes out of range", rec.Bytes())
	}

	process := rec.PID
	if rec.Command != "" {
		process = rec.PID + ":" + rec.Command
	}
	op := ssdfair.OpRead
	if rec.Write() {
		op = ssdfair.OpWrite
	}
	rd.rows = append(rd.rows, taggedRequest{
		req: ssdfair.Request{
			Timestamp: int64(math.Round(rec.Time * 1e6)),
			Process:   process,
			Op:        op,
			Address:   rec.Offset(),
			Size:      int(rec.Bytes()),
		},
		user: rd.assign(process),
	})
	return nil
}

// assign hands out dense user ids in order of first appearance.
func (rd *reader) assign(process string) int {
	if id, ok := rd.userIDs[process]; ok {
		return id
	}
	id := rd.nextID
	rd.userIDs[process] = id
	rd.nextID++
	return id
}

func parseTimestamp(tok string) (int64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	if !(v >= 0) || v > math.MaxInt64 {
		return 0, strconv.ErrRange
	}
	return int64(math.Round(v)), nil
}

func errf(lineNo int, format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", lineNo, ssdfair.ErrDataFormat, fmt.Sprintf(format, args...))
}
