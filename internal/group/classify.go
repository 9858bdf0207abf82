package group

import "github.com/roach88/updseq/internal/update"

// Partitioned is the split of a record batch by counter space.
type Partitioned struct {
	Primary   []update.Record
	Secondary []update.Record
	Other     []update.Record
}

// Partition splits records into primary, secondary and untagged records,
// preserving order within each partition.
//
// The primary probe runs first. A record that reports both ranges violates
// the protocol and is treated as primary.
func Partition(records []update.Record) Partitioned {
	var p Partitioned
	for _, rec := range records {
		if _, ok := rec.PrimaryRange(); ok {
			p.Primary = append(p.Primary, rec)
		} else if _, ok := rec.SecondaryRange(); ok {
			p.Secondary = append(p.Secondary, rec)
		} else {
			p.Other = append(p.Other, rec)
		}
	}
	return p
}

// Classify groups one decoded frame.
//
// It emits a PrimaryBatch if any record carries a primary range, a
// SecondaryBatch if any carries a secondary range, and then exactly one of
// SessionBatch (seq != nil) or TimestampBatch (seq == nil) holding the
// remaining records, even when there are none. Every group shares refs.
func Classify(records []update.Record, refs update.References, date int32, seq *SeqRange) []Group {
	p := Partition(records)

	groups := make([]Group, 0, 3)
	if len(p.Primary) != 0 {
		groups = append(groups, PrimaryBatch{Records: p.Primary, Refs: refs})
	}
	if len(p.Secondary) != 0 {
		groups = append(groups, SecondaryBatch{Records: p.Secondary, Refs: refs})
	}

	if seq != nil {
		groups = append(groups, SessionBatch{Records: p.Other, Seq: *seq, Date: date, Refs: refs})
	} else {
		groups = append(groups, TimestampBatch{Records: p.Other, Date: date, Refs: refs})
	}

	return groups
}
