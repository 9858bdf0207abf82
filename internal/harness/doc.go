// Package harness runs frame scenarios through the classifier, the extractors
// and the gap checker, then evaluates assertions against what came out.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	window: test-window-001
//	state: {primary: 99, secondary: 4}
//	frames:
//	  - date: 1000
//	    records:
//	      - {kind: delete_messages, pts: 100, pts_count: 1, message_ids: [1]}
//	  - counter_advance: {pts: 104, pts_count: 3}
//	assertions:
//	  - type: group_kinds
//	    kinds: [primary, timestamp, counter_advance]
//	  - type: primary_order
//	    starts: [100, 104]
//	  - type: gap
//	    space: primary
//
// The frames field is validated against the frame schema before decoding.
//
// # Assertion Types
//
//   - group_kinds: the classified groups have exactly these kinds, in order
//   - primary_order: primary items start at exactly these counters, in order
//   - secondary_order: secondary items start at exactly these counters, in order
//   - session_order: session items start at exactly these seqs, in order
//   - timestamp_count: exactly count timestamp batches were produced
//   - describe_contains: some group description equals line
//   - gap: the first gap is in space, or "none" for no gap
//   - needs_resync: the check report's resync flag equals value
//
// # Deterministic Testing
//
// Every scenario runs in a fresh window with a fixed window ID (from
// scenario.window or "test-window-default") and a logical clock starting at
// zero, so snapshots are byte-identical across runs for golden comparison.
package harness
