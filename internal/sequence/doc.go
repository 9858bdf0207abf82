// Package sequence projects accumulated groups into the four views handed to
// the state-application layer.
//
// Primary and secondary views are exploded to one item per record and stably
// sorted by counter start, because the consumer must apply them in counter
// order even when frames arrived out of order. Session and timestamp views
// stay batch-granular and keep arrival order, which no field can improve on.
//
// All extractors are pure and idempotent. They never retain the input slice.
package sequence
