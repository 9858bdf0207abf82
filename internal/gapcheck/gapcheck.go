// Package gapcheck detects counter gaps in extracted views.
//
// It is a reference for the state-application layer: given the last applied
// counter values it walks the primary, secondary and session views in order
// and reports where a gap forces a resync. It never repairs anything.
package gapcheck

import (
	"errors"
	"fmt"

	"github.com/roach88/updseq/internal/group"
	"github.com/roach88/updseq/internal/sequence"
	"github.com/roach88/updseq/internal/update"
)

// Space names a counter space.
type Space string

const (
	SpacePrimary   Space = "primary"
	SpaceSecondary Space = "secondary"
	SpaceSession   Space = "session"
)

// State holds the last applied value of each counter.
type State struct {
	Primary   int32 `json:"primary" yaml:"primary,omitempty" toml:"primary"`
	Secondary int32 `json:"secondary" yaml:"secondary,omitempty" toml:"secondary"`
	Session   int32 `json:"session" yaml:"session,omitempty" toml:"session"`
}

// Verdict is the outcome of checking one range against the last applied value.
type Verdict int

const (
	// Apply means the range follows the last applied value exactly.
	Apply Verdict = iota
	// Duplicate means the range was already applied.
	Duplicate
	// Gap means changes are missing before the range.
	Gap
)

func (v Verdict) String() string {
	switch v {
	case Apply:
		return "apply"
	case Duplicate:
		return "duplicate"
	case Gap:
		return "gap"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// CheckRange compares a counter range with the last applied value.
// A range is stamped with the value reached after it is applied, so it
// follows last exactly when last+Count == Start. The sum is taken in int64
// so counters near the int32 limit do not wrap.
func CheckRange(last int32, r update.CounterRange) Verdict {
	next := int64(last) + int64(r.Count)
	switch {
	case next == int64(r.Start):
		return Apply
	case next > int64(r.Start):
		return Duplicate
	default:
		return Gap
	}
}

// CheckSeq compares a session window with the last applied session seq.
// A window starting at 0 is unordered and always applies.
func CheckSeq(last int32, r group.SeqRange) Verdict {
	switch {
	case r.Start == 0 || int64(r.Start) == int64(last)+1:
		return Apply
	case r.Start <= last:
		return Duplicate
	default:
		return Gap
	}
}

// GapInfo locates the first gap in a counter space.
type GapInfo struct {
	Space Space `json:"space"`
	// Last is the last applied value before the gap.
	Last int32 `json:"last"`
	// Start is the start of the first range that did not follow Last.
	Start int32 `json:"start"`
	// Index is the position of that range in its view.
	Index int `json:"index"`
}

// Report summarizes a check over one set of views.
type Report struct {
	// State is the input state advanced over every applied range up to the
	// first gap in each space.
	State      State     `json:"state"`
	Applied    int       `json:"applied"`
	Duplicates int       `json:"duplicates"`
	Gaps       []GapInfo `json:"gaps,omitempty"`

	// NeedsResync is set when a gap was found or a Reset group was present.
	NeedsResync bool `json:"needs_resync"`
}

// Check walks views in order starting from state.
func Check(state State, views sequence.Views) Report {
	rep := Report{State: state, NeedsResync: views.HasReset}

	for i, item := range views.Primary {
		if !rep.step(SpacePrimary, &rep.State.Primary, item.Range, i) {
			break
		}
	}
	for i, item := range views.Secondary {
		if !rep.step(SpaceSecondary, &rep.State.Secondary, item.Range, i) {
			break
		}
	}
	for i, item := range views.Session {
		v := CheckSeq(rep.State.Session, item.Seq)
		if !rep.record(v, SpaceSession, rep.State.Session, item.Seq.Start, i) {
			break
		}
		if v == Apply && item.Seq.Start != 0 {
			rep.State.Session = item.Seq.End
		}
	}

	if len(rep.Gaps) > 0 {
		rep.NeedsResync = true
	}
	return rep
}

func (rep *Report) step(space Space, last *int32, r update.CounterRange, index int) bool {
	v := CheckRange(*last, r)
	if !rep.record(v, space, *last, r.Start, index) {
		return false
	}
	if v == Apply {
		*last = r.Start
	}
	return true
}

// record tallies v and reports whether the walk may continue.
func (rep *Report) record(v Verdict, space Space, last, start int32, index int) bool {
	switch v {
	case Apply:
		rep.Applied++
	case Duplicate:
		rep.Duplicates++
	case Gap:
		rep.Gaps = append(rep.Gaps, GapInfo{Space: space, Last: last, Start: start, Index: index})
		return false
	}
	return true
}

// Err returns a *GapError for the first gap, or nil.
func (rep Report) Err() error {
	if len(rep.Gaps) == 0 {
		return nil
	}
	g := rep.Gaps[0]
	return &GapError{Code: ErrCodeGap, Space: g.Space, Last: g.Last, Start: g.Start}
}

// ErrorCode categorizes check errors.
type ErrorCode string

const (
	// ErrCodeGap indicates missing changes before a range.
	ErrCodeGap ErrorCode = "COUNTER_GAP"
)

// GapError reports a counter gap.
type GapError struct {
	Code  ErrorCode
	Space Space
	Last  int32
	Start int32
}

func (e *GapError) Error() string {
	return fmt.Sprintf("%s: %s counter jumps from %d to %d", e.Code, e.Space, e.Last, e.Start)
}

// IsGapError reports whether err is, or wraps, a GapError.
func IsGapError(err error) bool {
	var ge *GapError
	return errors.As(err, &ge)
}
