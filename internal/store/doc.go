// Package store provides a SQLite-backed log of recorded frames.
//
// The store is diagnostic tooling for determinism checks: frames are recorded
// under a window token and later replayed through the classifier to confirm
// the same groups come out. The classification core never touches it.
//
// # Tables
//
//   - windows: one row per recorded window token
//   - frames: canonical frame bodies with the group descriptions they produced
//
// # Ordering
//
//   - Frames are ordered by their arrival seq (logical clock), never wall time
//   - Queries use ORDER BY seq ASC, id ASC COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Frame IDs are domain-separated SHA-256 hashes of the canonical JSON body,
// computed by internal/canon.
package store
