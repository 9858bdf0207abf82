package harness

import "github.com/roach88/updseq/internal/gapcheck"

// GroupLine is one classified group with the arrival seq of its frame.
type GroupLine struct {
	Seq      int64  `json:"seq"`
	Kind     string `json:"kind"`
	Describe string `json:"describe"`
}

// ItemLine is one primary or secondary view item. Record is empty for a
// counter advance.
type ItemLine struct {
	Start  int32  `json:"start"`
	Count  int32  `json:"count"`
	Record string `json:"record,omitempty"`
}

// SessionLine is one session view item.
type SessionLine struct {
	Start   int32    `json:"start"`
	End     int32    `json:"end"`
	Date    int32    `json:"date"`
	Records []string `json:"records"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all assertions hold.
	Pass bool `json:"pass"`

	Window     string          `json:"window"`
	Groups     []GroupLine     `json:"groups"`
	Primary    []ItemLine      `json:"primary"`
	Secondary  []ItemLine      `json:"secondary"`
	Sessions   []SessionLine   `json:"sessions"`
	Timestamps []string        `json:"timestamps"`
	Check      gapcheck.Report `json:"check"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result with empty, non-nil slices.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Groups:     []GroupLine{},
		Primary:    []ItemLine{},
		Secondary:  []ItemLine{},
		Sessions:   []SessionLine{},
		Timestamps: []string{},
		Errors:     []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
