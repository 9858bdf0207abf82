package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/updseq/internal/group"
	"github.com/roach88/updseq/internal/harness"
)

// ClassifyOptions holds flags for the classify command.
type ClassifyOptions struct {
	*RootOptions
	Window string // fixed window ID (optional)
}

// ClassifyResult is the groups and views produced by one window.
type ClassifyResult struct {
	Window     string                `json:"window"`
	Groups     []harness.GroupLine   `json:"groups"`
	Primary    []harness.ItemLine    `json:"primary"`
	Secondary  []harness.ItemLine    `json:"secondary"`
	Sessions   []harness.SessionLine `json:"sessions"`
	Timestamps []string              `json:"timestamps"`
	Reset      bool                  `json:"reset"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClassifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "classify <frames.yaml>",
		Short: "Classify frames and print the groups and sequence views",
		Long: `Classify every frame of a frames file into groups, in arrival order,
then extract the primary, secondary, session and timestamp views.

Examples:
  updseq classify frames.yaml
  updseq classify frames.yaml --window w1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Window, "window", "", "fixed window ID (default: random UUID)")
	return cmd
}

func runClassify(opts *ClassifyOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	_, frames, err := loadFrames(formatter, path)
	if err != nil {
		return err
	}

	r := classifyFrames(newWindow(opts.RootOptions, opts.Window), frames)
	result := ClassifyResult{
		Window:     r.Window,
		Groups:     r.Groups,
		Primary:    r.Primary,
		Secondary:  r.Secondary,
		Sessions:   r.Sessions,
		Timestamps: r.Timestamps,
	}
	for _, g := range r.Groups {
		if g.Kind == group.KindReset {
			result.Reset = true
		}
	}
	return formatter.Emit(result, result.writeText)
}

func (r ClassifyResult) writeText(w io.Writer) {
	fmt.Fprintf(w, "window %s\n", r.Window)

	fmt.Fprintln(w, "groups:")
	for _, g := range r.Groups {
		fmt.Fprintf(w, "  [%d] %s\n", g.Seq, g.Describe)
	}

	fmt.Fprintln(w, "primary:")
	writeItems(w, r.Primary)
	fmt.Fprintln(w, "secondary:")
	writeItems(w, r.Secondary)

	fmt.Fprintln(w, "sessions:")
	for _, s := range r.Sessions {
		fmt.Fprintf(w, "  %d..%d date %d", s.Start, s.End, s.Date)
		for i, rec := range s.Records {
			if i == 0 {
				fmt.Fprint(w, ": ")
			} else {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprint(w, rec)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "timestamps:")
	for _, t := range r.Timestamps {
		fmt.Fprintf(w, "  %s\n", t)
	}

	if r.Reset {
		fmt.Fprintln(w, "reset: resync required")
	}
}

func writeItems(w io.Writer, items []harness.ItemLine) {
	for _, item := range items {
		record := item.Record
		if record == "" {
			record = "counter_advance"
		}
		fmt.Fprintf(w, "  %d/%d %s\n", item.Start, item.Count, record)
	}
}
