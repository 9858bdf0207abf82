// Package frame decodes change frames from YAML fixtures.
//
// A frame is the unit the transport layer hands to the classifier: zero or
// more change records with their reference entities, a date and an optional
// session sequence window. A frame may instead carry a transport marker
// (reset or counter_advance), which becomes a Reset or CounterAdvance group
// directly.
//
// Input is checked in two passes: the raw document is validated against the
// embedded CUE schema (schema.cue), then decoded strictly with yaml.v3 so that
// unknown fields are rejected.
package frame
