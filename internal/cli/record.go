package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/updseq/internal/frame"
	"github.com/roach88/updseq/internal/group"
	"github.com/roach88/updseq/internal/store"
	"github.com/roach88/updseq/internal/window"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	Window string
}

// RecordResult reports what was written to the frame log.
type RecordResult struct {
	Window   string `json:"window"`
	Database string `json:"database"`
	Frames   int    `json:"frames"`
	Groups   int    `json:"groups"`
	Resumed  bool   `json:"resumed"`
	FirstSeq int64  `json:"first_seq"`
	LastSeq  int64  `json:"last_seq"`
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record <frames.yaml>",
		Short: "Record frames and their groups in a SQLite frame log",
		Long: `Classify a frames file in a new window and store every frame, keyed by
its arrival seq, together with the groups it produced. Recorded windows can
later be checked with replay.

Frames are stored in canonical form (NFC text) and the groups are computed
from that form, so replay reproduces them exactly. Recording into an existing
window ID appends after its last recorded frame.

Examples:
  updseq record frames.yaml --db ./updseq.db
  updseq record frames.yaml --db ./updseq.db --window w1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&rootOpts.Database, "db", "", "path to SQLite database (required unless set in config)")
	cmd.Flags().StringVar(&opts.Window, "window", "", "fixed window ID (default: random UUID)")
	return cmd
}

func runRecord(opts *RecordOptions, path string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if opts.Database == "" {
		_ = formatter.Fail(ErrCodeGeneric, "--db is required", nil, nil, nil)
		return NewExitError(ExitCommandError, "--db is required")
	}

	_, frames, err := loadFrames(formatter, path)
	if err != nil {
		return err
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

	result := RecordResult{Database: opts.Database}
	var lastSeq int64
	if opts.Window != "" && slices.ContainsFunc(windows, func(w store.WindowRecord) bool { return w.ID == opts.Window }) {
		if lastSeq, err = st.LastSeq(ctx, opts.Window); err != nil {
			return WrapExitError(ExitCommandError, "resume window", err)
		}
		result.Resumed = true
	}

	clock := window.NewClockAt(lastSeq)
	w := newWindow(opts.RootOptions, opts.Window, window.WithClock(clock))
	result.Window = w.ID()
	if !result.Resumed {
		if err := st.WriteWindow(ctx, store.WindowRecord{ID: w.ID(), Source: path, CreatedSeq: int64(len(windows) + 1)}); err != nil {
			return WrapExitError(ExitCommandError, "record window", err)
		}
	}

	for i, f := range frames {
		stored, doc, err := frame.Canonical(f)
		if err != nil {
			_ = formatter.Fail(ErrCodeDecodeFailed, err.Error(), nil, nil, nil)
			return WrapExitError(ExitFailure, fmt.Sprintf("encode frame %d", i), err)
		}

		before := w.Len()
		seq := w.Push(stored)
		if result.FirstSeq == 0 {
			result.FirstSeq = seq
		}

		var describes []string
		for _, e := range w.Entries()[before:] {
			describes = append(describes, group.Describe(e.Group))
		}
		if _, err := st.WriteFrame(ctx, w.ID(), seq, doc, describes); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("record frame %d", i), err)
		}
		result.Frames++
		result.Groups += len(describes)
	}
	result.LastSeq = clock.Current()
	w.Flush()

	formatter.VerboseLog("Recorded %d frame(s) under window %s", result.Frames, result.Window)
	return formatter.Emit(result, func(out io.Writer) {
		verb := "recorded"
		if result.Resumed {
			verb = "appended"
		}
		fmt.Fprintf(out, "✓ %s %d frames (%d groups) under window %s, seq %d..%d\n",
			verb, result.Frames, result.Groups, result.Window, result.FirstSeq, result.LastSeq)
	})
}
