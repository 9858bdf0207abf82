package sequence

import (
	"cmp"
	"slices"

	"github.com/roach88/updseq/internal/group"
	"github.com/roach88/updseq/internal/update"
)

// PrimaryItem is one primary-space change. Record is nil when the item comes
// from a CounterAdvance.
type PrimaryItem struct {
	Record update.Record
	Range  update.CounterRange
	Refs   update.References
}

// SecondaryItem is one secondary-space change.
type SecondaryItem struct {
	Record update.Record
	Range  update.CounterRange
	Refs   update.References
}

// SessionItem is one session window, records kept together.
type SessionItem struct {
	Records []update.Record
	Seq     group.SeqRange
	Date    int32
	Refs    update.References
}

// Views bundles the four extractor outputs for one processing window.
type Views struct {
	Primary   []PrimaryItem
	Secondary []SecondaryItem
	Session   []SessionItem
	Timestamp []group.Group

	// HasReset reports whether any Reset group was present.
	HasReset bool
}

// Extract runs every extractor over groups.
func Extract(groups []group.Group) Views {
	c := collect(groups)
	return Views{
		Primary:   sortPrimary(c.primary),
		Secondary: sortSecondary(c.secondary),
		Session:   c.session,
		Timestamp: c.timestamp,
		HasReset:  c.reset,
	}
}

// ExtractPrimary returns every primary item sorted by Range.Start.
// PrimaryBatch records and CounterAdvance groups contribute; nothing else does.
func ExtractPrimary(groups []group.Group) []PrimaryItem {
	return sortPrimary(collect(groups).primary)
}

// ExtractSecondary returns every secondary item sorted by Range.Start.
func ExtractSecondary(groups []group.Group) []SecondaryItem {
	return sortSecondary(collect(groups).secondary)
}

// ExtractSession returns one item per SessionBatch in arrival order.
func ExtractSession(groups []group.Group) []SessionItem {
	return collect(groups).session
}

// ExtractTimestamp returns the TimestampBatch groups in arrival order.
func ExtractTimestamp(groups []group.Group) []group.Group {
	return collect(groups).timestamp
}

// Ties keep arrival order.
func sortPrimary(items []PrimaryItem) []PrimaryItem {
	slices.SortStableFunc(items, func(a, b PrimaryItem) int {
		return cmp.Compare(a.Range.Start, b.Range.Start)
	})
	return items
}

func sortSecondary(items []SecondaryItem) []SecondaryItem {
	slices.SortStableFunc(items, func(a, b SecondaryItem) int {
		return cmp.Compare(a.Range.Start, b.Range.Start)
	})
	return items
}

// collector routes each group variant into its view, in arrival order.
type collector struct {
	primary   []PrimaryItem
	secondary []SecondaryItem
	session   []SessionItem
	timestamp []group.Group
	reset     bool
}

func collect(groups []group.Group) *collector {
	c := &collector{}
	for _, g := range groups {
		g.Accept(c)
	}
	return c
}

func (c *collector) VisitPrimary(g group.PrimaryBatch) {
	for _, rec := range g.Records {
		if r, ok := rec.PrimaryRange(); ok {
			c.primary = append(c.primary, PrimaryItem{Record: rec, Range: r, Refs: g.Refs})
		}
	}
}

func (c *collector) VisitSecondary(g group.SecondaryBatch) {
	for _, rec := range g.Records {
		if r, ok := rec.SecondaryRange(); ok {
			c.secondary = append(c.secondary, SecondaryItem{Record: rec, Range: r, Refs: g.Refs})
		}
	}
}

func (c *collector) VisitSession(g group.SessionBatch) {
	c.session = append(c.session, SessionItem{Records: g.Records, Seq: g.Seq, Date: g.Date, Refs: g.Refs})
}

func (c *collector) VisitTimestamp(g group.TimestampBatch) {
	c.timestamp = append(c.timestamp, g)
}

func (c *collector) VisitReset(group.Reset) {
	c.reset = true
}

func (c *collector) VisitCounterAdvance(g group.CounterAdvance) {
	c.primary = append(c.primary, PrimaryItem{Range: update.CounterRange{Start: g.Counter, Count: g.Count}})
}
