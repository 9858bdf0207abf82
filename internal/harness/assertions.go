package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the group descriptions to help debug the failure.
type AssertionError struct {
	Type     string      // Assertion type for categorization
	Expected string      // Human-readable expected outcome
	Actual   string      // Human-readable actual outcome
	Groups   []GroupLine // Classified groups for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nGroups:\n")
	for _, g := range e.Groups {
		fmt.Fprintf(&buf, "  [%d] %s\n", g.Seq, g.Describe)
	}
	return buf.String()
}

// EvaluateAssertions runs every assertion against result and returns the
// failure messages. It does not modify result.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertGroupKinds:
		got := make([]string, len(result.Groups))
		for i, g := range result.Groups {
			got[i] = g.Kind
		}
		return expectSequence(result, a.Type, a.Kinds, got)
	case AssertPrimaryOrder:
		return expectSequence(result, a.Type, a.Starts, rangeStarts(result.Primary))
	case AssertSecondaryOrder:
		return expectSequence(result, a.Type, a.Starts, rangeStarts(result.Secondary))
	case AssertSessionOrder:
		got := make([]int32, len(result.Sessions))
		for i, s := range result.Sessions {
			got[i] = s.Start
		}
		return expectSequence(result, a.Type, a.Starts, got)
	case AssertTimestampCount:
		if len(result.Timestamps) != a.Count {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%d timestamp batches", a.Count),
				Actual:   fmt.Sprintf("%d timestamp batches", len(result.Timestamps)),
				Groups:   result.Groups,
			}
		}
	case AssertDescribeContains:
		for _, g := range result.Groups {
			if g.Describe == a.Line {
				return nil
			}
		}
		return &AssertionError{
			Type:     a.Type,
			Expected: a.Line,
			Actual:   "not found in groups",
			Groups:   result.Groups,
		}
	case AssertGap:
		return assertGap(result, a)
	case AssertNeedsResync:
		if result.Check.NeedsResync != *a.Value {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("needs_resync %t", *a.Value),
				Actual:   fmt.Sprintf("needs_resync %t", result.Check.NeedsResync),
				Groups:   result.Groups,
			}
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func assertGap(result *Result, a Assertion) error {
	got := NoGap
	if len(result.Check.Gaps) > 0 {
		got = string(result.Check.Gaps[0].Space)
	}
	if got == a.Space {
		return nil
	}

	actual := "no gap"
	if err := result.Check.Err(); err != nil {
		actual = err.Error()
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("first gap in %s", a.Space),
		Actual:   actual,
		Groups:   result.Groups,
	}
}

func expectSequence[T comparable](result *Result, typ string, want, got []T) error {
	if slices.Equal(want, got) {
		return nil
	}
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf("%v", want),
		Actual:   fmt.Sprintf("%v", got),
		Groups:   result.Groups,
	}
}

func rangeStarts(items []ItemLine) []int32 {
	starts := make([]int32, len(items))
	for i, item := range items {
		starts[i] = item.Start
	}
	return starts
}
