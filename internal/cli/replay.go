package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/updseq/internal/frame"
	"github.com/roach88/updseq/internal/group"
	"github.com/roach88/updseq/internal/harness"
	"github.com/roach88/updseq/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Window string // optional - specific window only
}

// ReplayWindowResult holds the replay result for a single window.
type ReplayWindowResult struct {
	Window        string   `json:"window"`
	Frames        int      `json:"frames"`
	Groups        int      `json:"groups"`
	Deterministic bool     `json:"deterministic"`
	MatchesRecord bool     `json:"matches_record"`
	Mismatches    []string `json:"mismatches,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Windows  []ReplayWindowResult `json:"windows"`
	Total    int                  `json:"total"`
	AllMatch bool                 `json:"all_match"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay recorded frames and verify classification is deterministic",
		Long: `Re-read every recorded window in arrival order, classify its frames twice
and compare both runs with each other and with the groups stored at record
time.

Exit codes:
  0 - Every window reproduces its recorded groups
  1 - Divergence detected
  2 - Command error (database not found, unknown window, etc.)

Examples:
  updseq replay --db ./updseq.db
  updseq replay --db ./updseq.db --window w1 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&rootOpts.Database, "db", "", "path to SQLite database (required unless set in config)")
	cmd.Flags().StringVar(&opts.Window, "window", "", "replay specific window only")
	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if opts.Database == "" {
		_ = formatter.Fail(ErrCodeGeneric, "--db is required", nil, nil, nil)
		return NewExitError(ExitCommandError, "--db is required")
	}
	if !FileExists(opts.Database) {
		msg := fmt.Sprintf("database not found: %s", opts.Database)
		_ = formatter.Fail(ErrCodeNotFound, msg, nil, nil, nil)
		return NewExitError(ExitCommandError, msg)
	}

	st, err := store.Open(opts.Database, store.WithLogger(opts.Logger))
	if err != nil {
		_ = formatter.Fail(ErrCodeStore, "failed to open database", err.Error(), nil, nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	windows, err := st.ListWindows(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "list windows", err)
	}

	var ids []string
	for _, w := range windows {
		if opts.Window == "" || w.ID == opts.Window {
			ids = append(ids, w.ID)
		}
	}
	if opts.Window != "" && len(ids) == 0 {
		msg := fmt.Sprintf("window not found: %s", opts.Window)
		_ = formatter.Fail(ErrCodeNotFound, msg, nil, nil, nil)
		return NewExitError(ExitCommandError, msg)
	}

	result := ReplayResult{Windows: []ReplayWindowResult{}, AllMatch: true}
	for _, id := range ids {
		recorded, err := st.ReadFrames(ctx, id)
		if err != nil {
			_ = formatter.Fail(ErrCodeStore, "failed to read frames", err.Error(), nil, nil)
			return WrapExitError(ExitCommandError, "read frames", err)
		}

		wr, err := replayWindow(opts.RootOptions, id, recorded)
		if err != nil {
			_ = formatter.Fail(ErrCodeDecodeFailed, err.Error(), nil, nil, nil)
			return WrapExitError(ExitCommandError, "replay window", err)
		}
		formatter.VerboseLog("Replayed window %s: %d frame(s)", id, wr.Frames)

		result.Windows = append(result.Windows, wr)
		result.Total++
		if !wr.Deterministic || !wr.MatchesRecord {
			result.AllMatch = false
		}
	}

	if !result.AllMatch {
		_ = formatter.Fail(ErrCodeDiverged, "replay does not reproduce recorded groups", nil, result, result.writeText)
		return NewExitError(ExitFailure, "replay diverged")
	}
	return formatter.Emit(result, result.writeText)
}

// replayWindow classifies the recorded frames of one window twice.
func replayWindow(opts *RootOptions, id string, recorded []store.FrameRecord) (ReplayWindowResult, error) {
	wr := ReplayWindowResult{Window: id, Frames: len(recorded), MatchesRecord: true}

	frames := make([]frame.Frame, len(recorded))
	for i, fr := range recorded {
		f, err := frame.Decode(fr.Doc)
		if err != nil {
			return wr, fmt.Errorf("window %s frame %d: %w", id, fr.Seq, err)
		}
		frames[i] = f
	}

	var hashes [2]string
	for run := range hashes {
		w := newWindow(opts, id)
		for i, f := range frames {
			before := w.Len()
			w.Push(f)
			if run > 0 {
				continue
			}

			var got []string
			for _, e := range w.Entries()[before:] {
				got = append(got, group.Describe(e.Group))
			}
			wr.Groups += len(got)
			if !slices.Equal(got, recorded[i].Groups) {
				wr.MatchesRecord = false
				wr.Mismatches = append(wr.Mismatches,
					fmt.Sprintf("frame %d: recorded %v, replayed %v", recorded[i].Seq, recorded[i].Groups, got))
			}
		}

		collected, _ := harness.Collect(w)
		hash, err := harness.NewSnapshot(id, collected).Hash()
		if err != nil {
			return wr, err
		}
		hashes[run] = hash
	}
	wr.Deterministic = hashes[0] == hashes[1]
	return wr, nil
}

func (r ReplayResult) writeText(w io.Writer) {
	for _, wr := range r.Windows {
		mark := "✓"
		if !wr.Deterministic || !wr.MatchesRecord {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s: %d frames, %d groups (deterministic=%t, matches_record=%t)\n",
			mark, wr.Window, wr.Frames, wr.Groups, wr.Deterministic, wr.MatchesRecord)
		for _, m := range wr.Mismatches {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}
	fmt.Fprintf(w, "%d window(s) replayed\n", r.Total)
}
