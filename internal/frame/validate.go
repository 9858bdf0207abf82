package frame

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSrc string

// ValidationError is a schema violation in a frames document.
type ValidationError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *ValidationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Path, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidateYAML checks the "frames" field of a YAML document against the
// frame schema. A document without a frames field is valid.
//
// Returned errors are *ValidationError values, one per CUE error.
func ValidateYAML(filename string, data []byte) []error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []error{fmt.Errorf("compile frame schema: %w", err)}
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return convertCUEError(err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return convertCUEError(err)
	}

	frames := doc.LookupPath(cue.ParsePath("frames"))
	if !frames.Exists() {
		return nil
	}

	checked := schema.LookupPath(cue.ParsePath("#Frames")).Unify(frames)
	if err := checked.Validate(cue.Concrete(true)); err != nil {
		return convertCUEError(err)
	}
	return nil
}

// convertCUEError splits a CUE error into ValidationErrors with positions.
func convertCUEError(err error) []error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return []error{&ValidationError{Message: err.Error()}}
	}

	out := make([]error, 0, len(errs))
	for _, e := range errs {
		verr := &ValidationError{
			Path:    strings.Join(e.Path(), "."),
			Message: e.Error(),
		}
		if positions := cueerrors.Positions(e); len(positions) > 0 {
			verr.Pos = positions[0]
		}
		out = append(out, verr)
	}
	return out
}
