// Package window accumulates classified groups across the frames received in
// one processing tick.
//
// A Window belongs to the transport layer: the caller owns it, decides when
// to flush it and must not share it between goroutines without its own
// locking. The classifier and extractors never see the Window itself, only
// the group slice it hands them.
package window

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roach88/updseq/internal/frame"
	"github.com/roach88/updseq/internal/group"
	"github.com/roach88/updseq/internal/sequence"
)

// IDGenerator produces window IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator produces random UUIDv4 window IDs.
type UUIDGenerator struct{}

// Generate returns a new UUIDv4 string.
func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// Entry is one group with the arrival seq of the frame it came from.
type Entry struct {
	Seq   int64
	Group group.Group
}

// Window is an ordered, caller-owned buffer of groups.
type Window struct {
	id      string
	clock   *Clock
	log     zerolog.Logger
	entries []Entry
}

// Option configures a Window.
type Option func(*config)

type config struct {
	ids   IDGenerator
	clock *Clock
	log   zerolog.Logger
}

// WithIDGenerator sets the window ID source. Defaults to UUIDGenerator.
func WithIDGenerator(g IDGenerator) Option {
	return func(c *config) { c.ids = g }
}

// WithClock sets the arrival clock, e.g. to resume numbering.
func WithClock(clock *Clock) Option {
	return func(c *config) { c.clock = clock }
}

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) { c.log = log }
}

// New creates an empty window.
func New(opts ...Option) *Window {
	cfg := config{ids: UUIDGenerator{}, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clock == nil {
		cfg.clock = NewClock()
	}

	id := cfg.ids.Generate()
	return &Window{
		id:    id,
		clock: cfg.clock,
		log:   cfg.log.With().Str("window", id).Logger(),
	}
}

// ID returns the window ID.
func (w *Window) ID() string {
	return w.id
}

// Push classifies one decoded frame and appends its groups.
// It returns the arrival seq assigned to the frame.
func (w *Window) Push(f frame.Frame) int64 {
	return w.Append(f.Groups()...)
}

// Append adds groups that arrived together, e.g. a Reset or CounterAdvance
// produced by the transport layer. It returns the arrival seq assigned.
func (w *Window) Append(groups ...group.Group) int64 {
	seq := w.clock.Next()
	for _, g := range groups {
		w.entries = append(w.entries, Entry{Seq: seq, Group: g})
		w.log.Debug().Int64("seq", seq).Str("kind", group.Kind(g)).Msg(group.Describe(g))
	}
	return seq
}

// Len returns the number of buffered groups.
func (w *Window) Len() int {
	return len(w.entries)
}

// Entries returns a copy of the buffered entries in arrival order.
func (w *Window) Entries() []Entry {
	return append([]Entry(nil), w.entries...)
}

// Groups returns a copy of the buffered groups in arrival order.
func (w *Window) Groups() []group.Group {
	groups := make([]group.Group, len(w.entries))
	for i, e := range w.entries {
		groups[i] = e.Group
	}
	return groups
}

// Views extracts the four views without clearing the window.
func (w *Window) Views() sequence.Views {
	return sequence.Extract(w.Groups())
}

// Flush extracts the four views and empties the window.
func (w *Window) Flush() sequence.Views {
	views := w.Views()
	w.log.Debug().
		Int("groups", len(w.entries)).
		Int("primary", len(views.Primary)).
		Int("secondary", len(views.Secondary)).
		Int("session", len(views.Session)).
		Int("timestamp", len(views.Timestamp)).
		Bool("reset", views.HasReset).
		Msg("flushed window")
	w.entries = nil
	return views
}
