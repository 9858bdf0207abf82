package harness

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/roach88/updseq/internal/frame"
	"github.com/roach88/updseq/internal/gapcheck"
	"github.com/roach88/updseq/internal/group"
	"github.com/roach88/updseq/internal/sequence"
	"github.com/roach88/updseq/internal/testutil"
	"github.com/roach88/updseq/internal/update"
	"github.com/roach88/updseq/internal/window"
)

// Option configures a scenario run.
type Option func(*runConfig)

type runConfig struct {
	log zerolog.Logger
}

// WithLogger sets the logger handed to the scenario's window.
func WithLogger(log zerolog.Logger) Option {
	return func(c *runConfig) { c.log = log }
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Decode every frame document
//  2. Push each frame into a fresh window with a fixed ID
//  3. Flush the window into the four views
//  4. Check the views for gaps starting from scenario.State
//  5. Evaluate assertions
//
// An error is returned only when the scenario cannot be executed; failed
// assertions are reported in the Result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	frames, err := frame.DecodeAll(scenario.Frames)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frames: %w", err)
	}

	w := window.New(
		window.WithIDGenerator(testutil.NewFixedIDGenerator(scenario.Window)),
		window.WithLogger(cfg.log),
	)
	for _, f := range frames {
		w.Push(f)
	}

	result, views := Collect(w)
	result.Check = gapcheck.Check(scenario.State, views)

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// Collect flushes w into a new passing Result holding its groups and views.
// The raw views are returned too, for callers that check them further.
func Collect(w *window.Window) (*Result, sequence.Views) {
	result := NewResult()
	result.Window = w.ID()
	for _, e := range w.Entries() {
		result.Groups = append(result.Groups, GroupLine{
			Seq:      e.Seq,
			Kind:     group.Kind(e.Group),
			Describe: group.Describe(e.Group),
		})
	}

	views := w.Flush()
	fillViews(result, views)
	return result, views
}

func fillViews(result *Result, views sequence.Views) {
	for _, item := range views.Primary {
		result.Primary = append(result.Primary, itemLine(item.Range, item.Record))
	}
	for _, item := range views.Secondary {
		result.Secondary = append(result.Secondary, itemLine(item.Range, item.Record))
	}
	for _, item := range views.Session {
		line := SessionLine{Start: item.Seq.Start, End: item.Seq.End, Date: item.Date, Records: []string{}}
		for _, rec := range item.Records {
			line.Records = append(line.Records, rec.String())
		}
		result.Sessions = append(result.Sessions, line)
	}
	for _, g := range views.Timestamp {
		result.Timestamps = append(result.Timestamps, group.Describe(g))
	}
}

func itemLine(r update.CounterRange, rec update.Record) ItemLine {
	line := ItemLine{Start: r.Start, Count: r.Count}
	if rec != nil {
		line.Record = rec.String()
	}
	return line
}
