// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package trace

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	ssdfair "github.com/qchen4/ssd-fairness"
)

// Inter-arrival gap bounds for the synthetic clock, in microseconds.
const (
	minGap = 1
	maxGap = 1000
)

// Config parameterizes synthetic trace generation.
type Config struct {
	// Processes is the number of distinct logical processes issuing
	// requests. Labels are assigned as process1..processN.
	Processes int

	// Requests is the total number of requests in the trace.
	Requests int

	// Seed seeds the generator's private random source. Zero selects a
	// seed from the clock; any other value makes the trace reproducible.
	Seed int64
}

func (c Config) validate() error {
	if c.Processes < 1 {
		return fmt.Errorf("%w: process count must be at least 1, got %d", ssdfair.ErrConfig, c.Processes)
	}
	if c.Requests < 1 {
		return fmt.Errorf("%w: request count must be at least 1, got %d", ssdfair.ErrConfig, c.Requests)
	}
	return nil
}

// Generator produces the request sequence for one synthetic trace. Each
// request picks a process, direction, and aligned address uniformly at
// random, and the arrival clock advances by a uniform gap after every
// request, so the first request always arrives at time zero.
type Generator struct {
	cfg     Config
	seed    int64
	rng     *rand.Rand
	now     int64
	emitted int
}

// NewGenerator validates cfg and returns a generator for it.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		cfg:  cfg,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

// Seed returns the seed actually in use, which differs from Config.Seed only
// when that was zero. Reporting it lets a clock-seeded run be reproduced.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Remaining returns how many requests the generator has yet to produce.
func (g *Generator) Remaining() int {
	return g.cfg.Requests - g.emitted
}

// Next returns the next request in the trace. The second result is false
// once the configured request count has been produced.
func (g *Generator) Next() (ssdfair.Request, bool) {
	if g.emitted >= g.cfg.Requests {
		return ssdfair.Request{}, false
	}
	req := ssdfair.Request{
		Timestamp: g.now,
		Process:   ssdfair.ProcessLabel(1 + g.rng.Intn(g.cfg.Processes)),
		Op:        ssdfair.OpType(g.rng.Intn(2)),
		Address:   uint64(g.rng.Int63n(ssdfair.MaxAddress+1)) / ssdfair.BlockSize * ssdfair.BlockSize,
		Size:      ssdfair.BlockSize,
	}
	g.emitted++
	g.now += minGap + g.rng.Int63n(maxGap)
	return req, true
}

// Generate writes a complete synthetic trace for cfg to w and returns the
// seed used, so clock-seeded runs can be reported and replayed.
func Generate(w io.Writer, cfg Config) (int64, error) {
	g, err := NewGenerator(cfg)
	if err != nil {
		return 0, err
	}
	tw := NewWriter(w)
	for {
		req, ok := g.Next()
		if !ok {
			break
		}
		if err := tw.Write(req); err != nil {
			return g.Seed(), fmt.Errorf("write trace row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return g.Seed(), fmt.Errorf("flush trace: %w", err)
	}
	return g.Seed(), nil
}

// GenerateFile is Generate writing to a freshly created file at path.
func GenerateFile(path string, cfg Config) (seed int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create trace file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close trace file: %w", cerr)
		}
	}()
	return Generate(f, cfg)
}
