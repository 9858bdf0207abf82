package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/updseq/internal/canon"
	"github.com/roach88/updseq/internal/gapcheck"
)

// Snapshot captures everything a scenario produced.
// It is serialized as canonical JSON for deterministic comparison.
type Snapshot struct {
	Scenario   string          `json:"scenario"`
	Window     string          `json:"window"`
	Groups     []GroupLine     `json:"groups"`
	Primary    []ItemLine      `json:"primary"`
	Secondary  []ItemLine      `json:"secondary"`
	Sessions   []SessionLine   `json:"sessions"`
	Timestamps []string        `json:"timestamps"`
	Check      gapcheck.Report `json:"check"`
}

// NewSnapshot builds the snapshot of result for the named scenario.
func NewSnapshot(name string, result *Result) Snapshot {
	return Snapshot{
		Scenario:   name,
		Window:     result.Window,
		Groups:     result.Groups,
		Primary:    result.Primary,
		Secondary:  result.Secondary,
		Sessions:   result.Sessions,
		Timestamps: result.Timestamps,
		Check:      result.Check,
	}
}

// Marshal renders the snapshot as canonical JSON indented by two spaces,
// with a trailing newline.
func (s Snapshot) Marshal() ([]byte, error) {
	data, err := canon.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("indent snapshot: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Hash returns the content hash of the snapshot's canonical form.
func (s Snapshot) Hash() (string, error) {
	id, _, err := canon.MarshalHash(canon.DomainSnapshot, s)
	return id, err
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(scenarioName, result).Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
