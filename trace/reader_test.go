// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package trace_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ssdfair "github.com/qchen4/ssd-fairness"
	"github.com/qchen4/ssd-fairness/trace"
)

func TestReadCanonicalCSV(t *testing.T) {
	chk := require.New(t)

	reqs, err := trace.Read(strings.NewReader(
		"timestamp,process_id,type,address,size\n" +
			"0,process3,WRITE,711507247104,4096\n" +
			"842,process1,READ,364170244096,4096\n" +
			"1403,process3,READ,89569181696,4096\n"))
	chk.NoError(err)
	chk.Len(reqs, 3)

	chk.Equal(ssdfair.Request{Timestamp: 0, Process: "process3", Op: ssdfair.OpWrite, Address: 711507247104, Size: 4096}, reqs[0])
	chk.Equal(ssdfair.Request{Timestamp: 842, Process: "process1", Op: ssdfair.OpRead, Address: 364170244096, Size: 4096}, reqs[1])
	chk.Equal(ssdfair.Request{Timestamp: 1403, Process: "process3", Op: ssdfair.OpRead, Address: 89569181696, Size: 4096}, reqs[2])
}

func TestReadTolerantOfDecoration(t *testing.T) {
	chk := require.New(t)

	reqs, err := trace.Read(strings.NewReader(
		"# synthetic trace\r\n" +
			"timestamp,process_id,type,address,size\r\n" +
			"\r\n" +
			"10, process1 , read ,4096,4096\r\n" +
			"  20,process2,Write,8192,4096\r\n"))
	chk.NoError(err)
	chk.Len(reqs, 2)
	chk.Equal("process1", reqs[0].Process)
	chk.Equal(ssdfair.OpRead, reqs[0].Op)
	chk.Equal(ssdfair.OpWrite, reqs[1].Op)
}

func TestReadSortsByTimestamp(t *testing.T) {
	chk := require.New(t)

	reqs, err := trace.Read(strings.NewReader(
		"300,process2,READ,0,4096\n" +
			"100,process1,WRITE,4096,4096\n" +
			"200,process3,READ,8192,4096\n"))
	chk.NoError(err)
	chk.Len(reqs, 3)
	chk.Equal(int64(100), reqs[0].Timestamp)
	chk.Equal(int64(200), reqs[1].Timestamp)
	chk.Equal(int64(300), reqs[2].Timestamp)
}

func TestReadBreaksTiesByFirstAppearance(t *testing.T) {
	chk := require.New(t)

	reqs, err := trace.Read(strings.NewReader(
		"50,late,READ,0,4096\n" +
			"50,later,READ,0,4096\n" +
			"50,last,READ,0,4096\n"))
	chk.NoError(err)
	chk.Equal([]string{"late", "later", "last"}, []string{reqs[0].Process, reqs[1].Process, reqs[2].Process})
}

func TestReadExtendedColumns(t *testing.T) {
	chk := require.New(t)

	// The declared user ids reverse the appearance order for equal
	// timestamps.
	reqs, err := trace.Read(strings.NewReader(
		"70,alpha,9,READ,0,4096\n" +
			"70,beta,2,WRITE,4096,8192\n"))
	chk.NoError(err)
	chk.Len(reqs, 2)
	chk.Equal("beta", reqs[0].Process)
	chk.Equal(8192, reqs[0].Size)
	chk.Equal("alpha", reqs[1].Process)
}

func TestReadConflictingUserIDs(t *testing.T) {
	chk := require.New(t)

	_, err := trace.Read(strings.NewReader(
		"10,alpha,1,READ,0,4096\n" +
			"20,alpha,2,READ,0,4096\n"))
	chk.ErrorIs(err, ssdfair.ErrDataFormat)
	chk.ErrorContains(err, "line 2")
	chk.ErrorContains(err, "conflicting user ids")
}

func TestReadBlkparse(t *testing.T) {
	chk := require.New(t)

	reqs, err := trace.Read(strings.NewReader(
		"  8,0    3        1     0.000500000  2208  Q  WS 881272 + 8 [postgres]\n" +
			"  8,0    3        2     0.000501746  2208  G  WS 881272 + 8 [postgres]\n" +
			"  8,0    1        3     0.000750000   915  Q   R 1024 + 8 [redis]\n"))
	chk.NoError(err)
	chk.Len(reqs, 2)

	chk.Equal(ssdfair.Request{Timestamp: 500, Process: "2208:postgres", Op: ssdfair.OpWrite, Address: 881272 * 512, Size: 4096}, reqs[0])
	chk.Equal(ssdfair.Request{Timestamp: 750, Process: "915:redis", Op: ssdfair.OpRead, Address: 1024 * 512, Size: 4096}, reqs[1])
}

func TestReadMalformedLine(t *testing.T) {
	chk := require.New(t)

	for _, tc := range []struct {
		name string
		data string
		want string
	}{
		{"garbage", "10,process1,READ,0,4096\nnot a trace line\n", "line 2"},
		{"bad timestamp", "x,process1,READ,0,4096\n", "invalid timestamp"},
		{"negative timestamp", "-5,process1,READ,0,4096\n", "invalid timestamp"},
		{"bad op", "10,process1,ERASE,0,4096\n", "ERASE"},
		{"bad address", "10,process1,READ,abc,4096\n", "invalid address"},
		{"bad size", "10,process1,READ,0,-1\n", "invalid size"},
		{"empty process", "10,,READ,0,4096\n", "empty process_id"},
	} {
		_, err := trace.Read(strings.NewReader(tc.data))
		chk.ErrorIs(err, ssdfair.ErrDataFormat, tc.name)
		chk.ErrorContains(err, tc.want, tc.name)
	}
}

func TestReadEmptyInput(t *testing.T) {
	chk := require.New(t)

	reqs, err := trace.Read(strings.NewReader(""))
	chk.NoError(err)
	chk.Empty(reqs)

	reqs, err = trace.Read(strings.NewReader("timestamp,process_id,type,address,size\n"))
	chk.NoError(err)
	chk.Empty(reqs)
}

func TestReadFileErrors(t *testing.T) {
	chk := require.New(t)

	_, err := trace.ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	chk.ErrorIs(err, fs.ErrNotExist)
	chk.NotErrorIs(err, ssdfair.ErrDataFormat)
}

func TestReadFileReportsPath(t *testing.T) {
	chk := require.New(t)

	path := filepath.Join(t.TempDir(), "bad.csv")
	chk.NoError(os.WriteFile(path, []byte("10,process1,READ,0,4096\nbroken\n"), 0o644))

	_, err := trace.ReadFile(path)
	chk.ErrorIs(err, ssdfair.ErrDataFormat)
	chk.ErrorContains(err, "bad.csv")
	chk.ErrorContains(err, "line 2")
}
