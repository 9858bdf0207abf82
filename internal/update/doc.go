// Package update defines the change records streamed by a real-time sync
// session and the counter ranges derived from them.
//
// This package contains type definitions only. group and sequence import
// update; update imports nothing internal.
//
// Three counter spaces are in play:
//   - primary: the per-account counter advanced by message, read and edit changes
//   - secondary: the encrypted-channel counter, always advanced by one
//   - session: the session-wide sequence window stamped on a whole frame
//
// A record exposes at most one counter range. Counted variants embed exactly
// one stamp type (PrimaryStamp or SecondaryStamp) or Unstamped; a type that
// embeds two stamps has ambiguous range accessors and does not satisfy Record.
package update
