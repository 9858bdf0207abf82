package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/updseq/internal/gapcheck"
	"github.com/roach88/updseq/internal/harness"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Window string
}

// CheckResult is the gap report for one frames file.
type CheckResult struct {
	Window string          `json:"window"`
	From   gapcheck.State  `json:"from"`
	Report gapcheck.Report `json:"report"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <frames.yaml>",
		Short: "Check the sequence views of a frames file for counter gaps",
		Long: `Classify a frames file, extract its views and walk them from the given
last applied counters, reporting applied and duplicate changes and the first
gap in each counter space. Nothing is repaired.

Default counters can be set in the config file under [state].

Exit codes:
  0 - No gap (a reset may still require a resync)
  1 - Counter gap detected or frames invalid
  2 - Command error (file not found, etc.)

Examples:
  updseq check frames.yaml --primary 99 --secondary 4
  updseq check frames.yaml --session 49 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int32Var(&rootOpts.State.Primary, "primary", 0, "last applied primary counter")
	cmd.Flags().Int32Var(&rootOpts.State.Secondary, "secondary", 0, "last applied secondary counter")
	cmd.Flags().Int32Var(&rootOpts.State.Session, "session", 0, "last applied session seq")
	cmd.Flags().StringVar(&opts.Window, "window", "", "fixed window ID (default: random UUID)")
	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	_, frames, err := loadFrames(formatter, path)
	if err != nil {
		return err
	}

	w := newWindow(opts.RootOptions, opts.Window)
	for _, f := range frames {
		w.Push(f)
	}
	collected, views := harness.Collect(w)

	result := CheckResult{
		Window: collected.Window,
		From:   opts.State,
		Report: gapcheck.Check(opts.State, views),
	}
	opts.Logger.Debug().
		Str("window", result.Window).
		Int("applied", result.Report.Applied).
		Int("duplicates", result.Report.Duplicates).
		Bool("needs_resync", result.Report.NeedsResync).
		Msg("checked views")

	if gapErr := result.Report.Err(); gapErr != nil {
		_ = formatter.Fail(ErrCodeGap, gapErr.Error(), result.Report.Gaps, result, result.writeText)
		return WrapExitError(ExitFailure, "counter gap", gapErr)
	}
	return formatter.Emit(result, result.writeText)
}

func (r CheckResult) writeText(w io.Writer) {
	rep := r.Report
	fmt.Fprintf(w, "window %s\n", r.Window)
	fmt.Fprintf(w, "from  primary=%d secondary=%d session=%d\n", r.From.Primary, r.From.Secondary, r.From.Session)
	fmt.Fprintf(w, "to    primary=%d secondary=%d session=%d\n", rep.State.Primary, rep.State.Secondary, rep.State.Session)
	fmt.Fprintf(w, "applied %d, duplicates %d\n", rep.Applied, rep.Duplicates)
	for _, g := range rep.Gaps {
		fmt.Fprintf(w, "✗ %s gap: last applied %d, next range starts at %d (item %d)\n", g.Space, g.Last, g.Start, g.Index)
	}
	if rep.NeedsResync {
		fmt.Fprintln(w, "resync required")
	} else {
		fmt.Fprintln(w, "✓ no gaps")
	}
}
