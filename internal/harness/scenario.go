package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/updseq/internal/frame"
	"github.com/roach88/updseq/internal/gapcheck"
)

// Scenario is a sequence of frames plus the assertions they must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Window is an optional fixed window ID.
	// If empty, defaults to "test-window-default".
	Window string `yaml:"window,omitempty"`

	// State is the last applied counter values the gap check starts from.
	State gapcheck.State `yaml:"state,omitempty"`

	// Frames are fed to the window in order, one arrival seq each.
	Frames []frame.Doc `yaml:"frames"`

	// Assertions validate the groups, views and check report.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a scenario result.
type Assertion struct {
	// Type selects the assertion; see the Assert constants.
	Type string `yaml:"type"`

	// Kinds is the expected group kind sequence (group_kinds).
	Kinds []string `yaml:"kinds,omitempty"`

	// Starts is the expected start sequence (primary_order, secondary_order,
	// session_order).
	Starts []int32 `yaml:"starts,omitempty"`

	// Count is the expected number of batches (timestamp_count).
	Count int `yaml:"count,omitempty"`

	// Line is an expected group description (describe_contains).
	Line string `yaml:"line,omitempty"`

	// Space is the expected gap space, or "none" (gap).
	Space string `yaml:"space,omitempty"`

	// Value is the expected resync flag (needs_resync).
	Value *bool `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertGroupKinds       = "group_kinds"
	AssertPrimaryOrder     = "primary_order"
	AssertSecondaryOrder   = "secondary_order"
	AssertSessionOrder     = "session_order"
	AssertTimestampCount   = "timestamp_count"
	AssertDescribeContains = "describe_contains"
	AssertGap              = "gap"
	AssertNeedsResync      = "needs_resync"
)

// NoGap is the gap assertion space meaning no gap is expected.
const NoGap = "none"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, its frames violate the frame
// schema, it contains unknown fields (typos), or required fields are missing.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(path, data)
}

// ParseScenario parses scenario YAML; filename is used in error positions.
func ParseScenario(filename string, data []byte) (*Scenario, error) {
	if errs := frame.ValidateYAML(filename, data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid frames: %w", errors.Join(errs...))
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Frames) == 0 {
		return fmt.Errorf("frames list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertGroupKinds:
		if len(a.Kinds) == 0 {
			return fmt.Errorf("assertions[%d]: kinds list is required for group_kinds", index)
		}
	case AssertPrimaryOrder, AssertSecondaryOrder, AssertSessionOrder:
		// An empty starts list asserts an empty view.
	case AssertTimestampCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for timestamp_count", index)
		}
	case AssertDescribeContains:
		if a.Line == "" {
			return fmt.Errorf("assertions[%d]: line is required for describe_contains", index)
		}
	case AssertGap:
		switch a.Space {
		case NoGap, string(gapcheck.SpacePrimary), string(gapcheck.SpaceSecondary), string(gapcheck.SpaceSession):
		default:
			return fmt.Errorf("assertions[%d]: space must be primary, secondary, session or none, got %q", index, a.Space)
		}
	case AssertNeedsResync:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for needs_resync", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
