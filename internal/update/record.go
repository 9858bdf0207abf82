package update

import "fmt"

// CounterRange is the counter position a change is stamped with.
// Start is the value the counter reaches once the change is applied and
// Count is the number of counter steps the change covers.
type CounterRange struct {
	Start int32 `json:"start"`
	Count int32 `json:"count"`
}

// String renders the range as "start/count".
func (r CounterRange) String() string {
	return fmt.Sprintf("%d/%d", r.Start, r.Count)
}

// Record is a decoded change record.
//
// PrimaryRange and SecondaryRange are independent optional accessors. The
// protocol guarantees that at most one of them reports ok for any record;
// the classifier still probes primary first if a decoder breaks that rule.
type Record interface {
	// Kind is the snake_case variant name, e.g. "new_message".
	Kind() string

	// String is the debug description used by diagnostic rendering.
	String() string

	// PrimaryRange reports the primary counter range, if the record has one.
	PrimaryRange() (CounterRange, bool)

	// SecondaryRange reports the secondary counter range, if the record has one.
	SecondaryRange() (CounterRange, bool)
}

// PrimaryStamp marks a record as advancing the primary counter.
type PrimaryStamp struct {
	Pts      int32 `json:"pts"`
	PtsCount int32 `json:"pts_count"`
}

// PrimaryRange returns (Pts, PtsCount).
func (s PrimaryStamp) PrimaryRange() (CounterRange, bool) {
	return CounterRange{Start: s.Pts, Count: s.PtsCount}, true
}

// SecondaryRange always reports false.
func (PrimaryStamp) SecondaryRange() (CounterRange, bool) {
	return CounterRange{}, false
}

// SecondaryStamp marks a record as advancing the secondary counter.
// Secondary changes always cover exactly one step.
type SecondaryStamp struct {
	Qts int32 `json:"qts"`
}

// PrimaryRange always reports false.
func (SecondaryStamp) PrimaryRange() (CounterRange, bool) {
	return CounterRange{}, false
}

// SecondaryRange returns (Qts, 1).
func (s SecondaryStamp) SecondaryRange() (CounterRange, bool) {
	return CounterRange{Start: s.Qts, Count: 1}, true
}

// Unstamped marks a record that carries no counter. Such records are ordered
// by the frame's session window or date only.
type Unstamped struct{}

// PrimaryRange always reports false.
func (Unstamped) PrimaryRange() (CounterRange, bool) { return CounterRange{}, false }

// SecondaryRange always reports false.
func (Unstamped) SecondaryRange() (CounterRange, bool) { return CounterRange{}, false }
