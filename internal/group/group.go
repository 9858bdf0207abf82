package group

import (
	"fmt"

	"github.com/roach88/updseq/internal/update"
)

// Group kinds.
const (
	KindPrimary        = "primary"
	KindSecondary      = "secondary"
	KindSession        = "session"
	KindTimestamp      = "timestamp"
	KindReset          = "reset"
	KindCounterAdvance = "counter_advance"
)

// SeqRange is the session sequence window stamped on a frame.
type SeqRange struct {
	Start int32 `json:"start"`
	End   int32 `json:"end"`
}

func (r SeqRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Group is one classified batch. Only the six variants in this package
// implement it.
type Group interface {
	fmt.Stringer

	// Accept dispatches to the Visitor method for the concrete variant.
	Accept(v Visitor)

	group() // Sealed
}

// Visitor handles every Group variant.
type Visitor interface {
	VisitPrimary(PrimaryBatch)
	VisitSecondary(SecondaryBatch)
	VisitSession(SessionBatch)
	VisitTimestamp(TimestampBatch)
	VisitReset(Reset)
	VisitCounterAdvance(CounterAdvance)
}

// PrimaryBatch holds records sharing the primary counter space, in arrival order.
type PrimaryBatch struct {
	Records []update.Record
	Refs    update.References
}

// SecondaryBatch holds records sharing the secondary counter space.
type SecondaryBatch struct {
	Records []update.Record
	Refs    update.References
}

// SessionBatch holds unstamped records belonging to a session sequence window.
// An empty SessionBatch still confirms the window.
type SessionBatch struct {
	Records []update.Record
	Seq     SeqRange
	Date    int32
	Refs    update.References
}

// TimestampBatch holds unstamped records outside any session window.
type TimestampBatch struct {
	Records []update.Record
	Date    int32
	Refs    update.References
}

// Reset tells the consumer to discard cached state and refetch.
// It is fed in by the transport layer, never produced by Classify.
type Reset struct{}

// CounterAdvance proves Count primary changes happened up to Counter without
// carrying them. It is fed in by the transport layer and consumed like a
// PrimaryBatch.
type CounterAdvance struct {
	Counter int32
	Count   int32
}

func (g PrimaryBatch) Accept(v Visitor)   { v.VisitPrimary(g) }
func (g SecondaryBatch) Accept(v Visitor) { v.VisitSecondary(g) }
func (g SessionBatch) Accept(v Visitor)   { v.VisitSession(g) }
func (g TimestampBatch) Accept(v Visitor) { v.VisitTimestamp(g) }
func (g Reset) Accept(v Visitor)          { v.VisitReset(g) }
func (g CounterAdvance) Accept(v Visitor) { v.VisitCounterAdvance(g) }

func (PrimaryBatch) group()   {}
func (SecondaryBatch) group() {}
func (SessionBatch) group()   {}
func (TimestampBatch) group() {}
func (Reset) group()          {}
func (CounterAdvance) group() {}

func (g PrimaryBatch) String() string   { return Describe(g) }
func (g SecondaryBatch) String() string { return Describe(g) }
func (g SessionBatch) String() string   { return Describe(g) }
func (g TimestampBatch) String() string { return Describe(g) }
func (g Reset) String() string          { return Describe(g) }
func (g CounterAdvance) String() string { return Describe(g) }

// payload collects the kind, records and references of a group.
type payload struct {
	kind    string
	records []update.Record
	refs    update.References
}

func (p *payload) VisitPrimary(g PrimaryBatch) {
	*p = payload{kind: KindPrimary, records: g.Records, refs: g.Refs}
}

func (p *payload) VisitSecondary(g SecondaryBatch) {
	*p = payload{kind: KindSecondary, records: g.Records, refs: g.Refs}
}

func (p *payload) VisitSession(g SessionBatch) {
	*p = payload{kind: KindSession, records: g.Records, refs: g.Refs}
}

func (p *payload) VisitTimestamp(g TimestampBatch) {
	*p = payload{kind: KindTimestamp, records: g.Records, refs: g.Refs}
}

func (p *payload) VisitReset(Reset) {
	*p = payload{kind: KindReset}
}

func (p *payload) VisitCounterAdvance(CounterAdvance) {
	*p = payload{kind: KindCounterAdvance}
}

func payloadOf(g Group) payload {
	var p payload
	g.Accept(&p)
	return p
}

// Kind returns the kind constant of g.
func Kind(g Group) string {
	return payloadOf(g).kind
}

// Records returns the records carried by g.
// Reset and CounterAdvance carry none.
func Records(g Group) []update.Record {
	return payloadOf(g).records
}

// Refs returns the reference entities carried by g.
// Reset and CounterAdvance carry none.
func Refs(g Group) update.References {
	return payloadOf(g).refs
}

// Compile-time check that every variant satisfies Group.
var (
	_ Group = PrimaryBatch{}
	_ Group = SecondaryBatch{}
	_ Group = SessionBatch{}
	_ Group = TimestampBatch{}
	_ Group = Reset{}
	_ Group = CounterAdvance{}
)
