package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/roach88/updseq/internal/frame"
	"github.com/roach88/updseq/internal/harness"
	"github.com/roach88/updseq/internal/window"
)

// ValidationIssue is one schema violation in a frames file.
type ValidationIssue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidateResult reports whether a frames file is valid.
type ValidateResult struct {
	File    string            `json:"file"`
	Valid   bool              `json:"valid"`
	Frames  int               `json:"frames"`
	Records int               `json:"records"`
	Errors  []ValidationIssue `json:"errors,omitempty"`
}

// loadFrames reads, validates and decodes a frames file. On failure it writes
// the report through f and returns an ExitError.
func loadFrames(f *OutputFormatter, path string) ([]frame.Doc, []frame.Frame, error) {
	if !FileExists(path) {
		msg := fmt.Sprintf("frames file not found: %s", path)
		_ = f.Fail(ErrCodeNotFound, msg, nil, nil, nil)
		return nil, nil, NewExitError(ExitCommandError, msg)
	}

	file, err := frame.LoadFile(path)
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		msg := fmt.Sprintf("cannot read frames file: %s", path)
		_ = f.Fail(ErrCodeReadFailed, msg, err.Error(), nil, nil)
		return nil, nil, WrapExitError(ExitCommandError, msg, err)
	}
	if err != nil {
		result := ValidateResult{File: path, Errors: validationIssues(err)}
		if len(result.Errors) == 0 {
			result.Errors = []ValidationIssue{{Message: err.Error()}}
		}
		_ = f.Fail(ErrCodeInvalidFrames, "frames do not match the schema", nil, result, result.writeText)
		return nil, nil, WrapExitError(ExitFailure, "invalid frames", err)
	}

	frames, err := frame.DecodeAll(file.Frames)
	if err != nil {
		_ = f.Fail(ErrCodeDecodeFailed, err.Error(), nil, nil, nil)
		return nil, nil, WrapExitError(ExitFailure, "decode frames", err)
	}
	return file.Frames, frames, nil
}

// validationIssues flattens every *frame.ValidationError found in err.
func validationIssues(err error) []ValidationIssue {
	var issues []ValidationIssue
	var walk func(error)
	walk = func(e error) {
		switch x := e.(type) {
		case nil:
		case *frame.ValidationError:
			issue := ValidationIssue{Path: x.Path, Message: x.Message}
			if x.Pos.IsValid() {
				issue.Line = x.Pos.Line()
				issue.Column = x.Pos.Column()
			}
			issues = append(issues, issue)
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}
	walk(err)
	return issues
}

func (r ValidateResult) writeText(w io.Writer) {
	if r.Valid {
		fmt.Fprintf(w, "✓ %s: %d frames, %d records valid\n", r.File, r.Frames, r.Records)
		return
	}
	fmt.Fprintf(w, "✗ %s\n", r.File)
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "  line %d:%d: %s\n", e.Line, e.Column, e.Message)
		} else {
			fmt.Fprintf(w, "  %s\n", e.Message)
		}
	}
}

// staticID is a window IDGenerator for a caller-chosen ID.
type staticID string

func (s staticID) Generate() string { return string(s) }

// newWindow creates a window logging through opts, with a fixed ID when id is
// non-empty and a random UUID otherwise.
func newWindow(opts *RootOptions, id string, extra ...window.Option) *window.Window {
	wopts := []window.Option{window.WithLogger(opts.Logger)}
	if id != "" {
		wopts = append(wopts, window.WithIDGenerator(staticID(id)))
	}
	return window.New(append(wopts, extra...)...)
}

// classifyFrames pushes every frame into w and collects the result.
func classifyFrames(w *window.Window, frames []frame.Frame) *harness.Result {
	for _, f := range frames {
		w.Push(f)
	}
	result, _ := harness.Collect(w)
	return result
}
