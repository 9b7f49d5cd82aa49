// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package trace_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	ssdfair "github.com/qchen4/ssd-fairness"
	"github.com/qchen4/ssd-fairness/trace"
)

func TestGeneratorProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		cfg := trace.Config{
			Processes: rapid.IntRange(1, 8).Draw(t, "processes"),
			Requests:  rapid.IntRange(1, 300).Draw(t, "requests"),
			Seed:      rapid.Int64Range(1, 1<<40).Draw(t, "seed"),
		}
		gen, err := trace.NewGenerator(cfg)
		chk.NoError(err)

		labels := make(map[string]bool, cfg.Processes)
		for k := 1; k <= cfg.Processes; k++ {
			labels[ssdfair.ProcessLabel(k)] = true
		}

		var prev int64
		count := 0
		for {
			req, ok := gen.Next()
			if !ok {
				break
			}
			if count == 0 {
				chk.Zero(req.Timestamp)
			} else {
				gap := req.Timestamp - prev
				chk.GreaterOrEqual(gap, int64(1))
				chk.LessOrEqual(gap, int64(1000))
			}
			chk.True(labels[req.Process], "unknown process label %q", req.Process)
			chk.Contains([]ssdfair.OpType{ssdfair.OpRead, ssdfair.OpWrite}, req.Op)
			chk.Zero(req.Address % ssdfair.BlockSize)
			chk.LessOrEqual(req.Address, uint64(ssdfair.MaxAddress))
			chk.Equal(ssdfair.BlockSize, req.Size)
			prev = req.Timestamp
			count++
		}
		chk.Equal(cfg.Requests, count)
		chk.Zero(gen.Remaining())
	})
}

func TestGeneratorDeterministic(t *testing.T) {
	chk := require.New(t)

	cfg := trace.Config{Processes: 4, Requests: 500, Seed: 42}
	var first, second bytes.Buffer

	seed1, err := trace.Generate(&first, cfg)
	chk.NoError(err)
	seed2, err := trace.Generate(&second, cfg)
	chk.NoError(err)

	chk.Equal(int64(42), seed1)
	chk.Equal(int64(42), seed2)
	chk.Equal(first.String(), second.String())
}

func TestGeneratorSeedsDiffer(t *testing.T) {
	chk := require.New(t)

	var a, b bytes.Buffer
	_, err := trace.Generate(&a, trace.Config{Processes: 4, Requests: 200, Seed: 1})
	chk.NoError(err)
	_, err = trace.Generate(&b, trace.Config{Processes: 4, Requests: 200, Seed: 2})
	chk.NoError(err)
	chk.NotEqual(a.String(), b.String())
}

func TestGeneratorClockSeed(t *testing.T) {
	chk := require.New(t)

	gen, err := trace.NewGenerator(trace.Config{Processes: 2, Requests: 10})
	chk.NoError(err)
	chk.NotZero(gen.Seed())
}

func TestGeneratorConfigValidation(t *testing.T) {
	chk := require.New(t)

	for _, cfg := range []trace.Config{
		{Processes: 0, Requests: 10},
		{Processes: -3, Requests: 10},
		{Processes: 4, Requests: 0},
		{Processes: 4, Requests: -1},
	} {
		_, err := trace.NewGenerator(cfg)
		chk.ErrorIs(err, ssdfair.ErrConfig, "config %+v", cfg)
	}
}

func TestGenerateHeader(t *testing.T) {
	chk := require.New(t)

	var buf bytes.Buffer
	_, err := trace.Generate(&buf, trace.Config{Processes: 2, Requests: 3, Seed: 7})
	chk.NoError(err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	chk.Len(lines, 4)
	chk.Equal("timestamp,process_id,type,address,size", lines[0])
}

func TestGenerateRoundTrip(t *testing.T) {
	chk := require.New(t)

	cfg := trace.Config{Processes: 3, Requests: 100, Seed: 99}
	gen, err := trace.NewGenerator(cfg)
	chk.NoError(err)

	var want []ssdfair.Request
	var buf bytes.Buffer
	tw := trace.NewWriter(&buf)
	for {
		req, ok := gen.Next()
		if !ok {
			break
		}
		want = append(want, req)
		chk.NoError(tw.Write(req))
	}
	chk.NoError(tw.Flush())

	got, err := trace.Read(&buf)
	chk.NoError(err)
	chk.Equal(want, got)
}

func TestGenerateFileRejectsBadPath(t *testing.T) {
	chk := require.New(t)

	_, err := trace.GenerateFile(t.TempDir()+"/missing/trace.csv", trace.Config{Processes: 1, Requests: 1, Seed: 1})
	chk.Error(err)
	chk.NotErrorIs(err, ssdfair.ErrConfig)
}
