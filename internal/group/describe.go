package group

import (
	"fmt"
	"strings"

	"github.com/roach88/updseq/internal/update"
)

// Describe renders g for logs. The output is deterministic for identical
// input and must not be parsed.
func Describe(g Group) string {
	var d describer
	g.Accept(&d)
	return d.b.String()
}

type describer struct {
	b strings.Builder
}

func (d *describer) VisitPrimary(g PrimaryBatch) {
	d.b.WriteString("primary(")
	d.records(g.Records)
	d.b.WriteString(")")
}

func (d *describer) VisitSecondary(g SecondaryBatch) {
	d.b.WriteString("secondary(")
	d.records(g.Records)
	d.b.WriteString(")")
}

func (d *describer) VisitSession(g SessionBatch) {
	fmt.Fprintf(&d.b, "session(seq %s, date %d", g.Seq, g.Date)
	if len(g.Records) > 0 {
		d.b.WriteString(", ")
		d.records(g.Records)
	}
	d.b.WriteString(")")
}

func (d *describer) VisitTimestamp(g TimestampBatch) {
	fmt.Fprintf(&d.b, "timestamp(date %d", g.Date)
	if len(g.Records) > 0 {
		d.b.WriteString(", ")
		d.records(g.Records)
	}
	d.b.WriteString(")")
}

func (d *describer) VisitReset(Reset) {
	d.b.WriteString("reset")
}

func (d *describer) VisitCounterAdvance(g CounterAdvance) {
	fmt.Fprintf(&d.b, "counter_advance(%d, %d)", g.Counter, g.Count)
}

func (d *describer) records(records []update.Record) {
	for i, rec := range records {
		if i > 0 {
			d.b.WriteString(", ")
		}
		d.b.WriteString(rec.String())
	}
}
