// Package testutil provides shared test infrastructure for the simulator.
// It holds the golden dataset types and path helpers used across the sim/
// test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one machine run with its expected result.
type GoldenTestCase struct {
	Machine string       `json:"machine"` // file under testdata/
	Input   string       `json:"input"`
	Limits  GoldenLimits `json:"limits"`
	Result  GoldenResult `json:"result"`
}

// GoldenLimits mirrors sim.Limits without the wall-clock bound, which is not
// deterministic.
type GoldenLimits struct {
	MaxDepth       int `json:"max_depth"`
	MaxTransitions int `json:"max_transitions"`
}

// GoldenResult represents the expected counters of a golden test case.
type GoldenResult struct {
	Outcome              string `json:"outcome"`
	Limit                string `json:"limit"`
	DepthReached         int    `json:"depth_reached"`
	TransitionsSimulated int    `json:"transitions_simulated"`
	MaxBranchingFactor   int    `json:"max_branching_factor"`
	PathLength           int    `json:"path_length"`
}

// TestdataPath resolves name under the repository testdata/ directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	data, err := os.ReadFile(TestdataPath(t, "goldendataset.json"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}
