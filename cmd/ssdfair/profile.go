// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ssdfair "github.com/qchen4/ssd-fairness"
)

// workloadProfile mirrors the trace flags so a repeatable experiment can be
// checked into a file. Flags given explicitly on the command line win over
// profile values.
type workloadProfile struct {
	Processes int    `yaml:"processes" json:"processes"`
	Requests  int    `yaml:"requests" json:"requests"`
	Seed      int64  `yaml:"seed" json:"seed"`
	Output    string `yaml:"output" json:"output"`
}

// loadProfile reads a profile file, choosing the codec by extension: .json
// parses as JSON, anything else as YAML.
func loadProfile(path string) (*workloadProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var profile workloadProfile
	if filepath.Ext(path) == ".json" {
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("%w: profile %s: %v", ssdfair.ErrConfig, path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("%w: profile %s: %v", ssdfair.ErrConfig, path, err)
		}
	}
	return &profile, nil
}
