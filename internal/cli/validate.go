package cli

import (
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <frames.yaml>",
		Short: "Validate a frames file without classifying it",
		Long: `Validate a frames file against the frame schema and decode every record.

Checks int32 bounds, counter stamps required by each record kind, that no
record carries two counter stamps, and rejects unknown fields.

Exit codes:
  0 - Frames valid
  1 - Frames invalid
  2 - Command error (file not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	docs, frames, err := loadFrames(formatter, path)
	if err != nil {
		return err
	}

	result := ValidateResult{File: path, Valid: true, Frames: len(docs)}
	for _, f := range frames {
		result.Records += len(f.Records)
	}
	formatter.VerboseLog("Validated %d frame(s) in %s", len(docs), path)
	return formatter.Emit(result, result.writeText)
}
