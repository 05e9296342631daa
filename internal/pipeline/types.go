package pipeline

import (
	"context"

	"github.com/asaapi/plugin-init/internal/identity"
	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/rewrite"
	"github.com/asaapi/plugin-init/internal/workspace"
)

// Pipeline runs the instantiation components against a template tree.
type Pipeline interface {
	// Run executes every component in order. A component failure is
	// recorded in the Report and does not stop the run unless
	// Options.Atomic is set. The returned error is reserved for
	// cancellation and atomic aborts.
	Run(ctx context.Context, ws *workspace.Workspace, opts Options) (*Report, error)
}

// Options configures a run.
type Options struct {
	// Identity is the project the template becomes.
	Identity identity.Identity

	// Atomic rolls back every change and stops at the first failed component.
	Atomic bool
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	return o.Identity.Validate()
}

// Status is the result of one component.
type Status string

const (
	StatusApplied   Status = output.StatusApplied
	StatusUnchanged Status = output.StatusUnchanged
	StatusSkipped   Status = output.StatusSkipped
	StatusFailed    Status = output.StatusFailed
	StatusPlanned   Status = output.StatusPlanned
)

// Outcome is what one component did.
type Outcome struct {
	Component   string               `json:"component" yaml:"component"`
	Status      Status               `json:"status" yaml:"status"`
	Changes     []rewrite.Change     `json:"changes,omitempty" yaml:"changes,omitempty"`
	Renames     []rewrite.Rename     `json:"renames,omitempty" yaml:"renames,omitempty"`
	Diagnostics []rewrite.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Error       string               `json:"error,omitempty" yaml:"error,omitempty"`

	// Err is the error behind a skipped or failed status.
	Err error `json:"-" yaml:"-"`
}

// Report collects the outcome of a run.
type Report struct {
	Root        string            `json:"root" yaml:"root"`
	Project     string            `json:"project" yaml:"project"`
	Description string            `json:"description" yaml:"description"`
	DryRun      bool              `json:"dryRun" yaml:"dryRun"`
	Atomic      bool              `json:"atomic" yaml:"atomic"`
	RolledBack  bool              `json:"rolledBack,omitempty" yaml:"rolledBack,omitempty"`
	Outcomes    []Outcome         `json:"outcomes" yaml:"outcomes"`
	Plan        []workspace.Entry `json:"plan,omitempty" yaml:"plan,omitempty"`
}

// Failed returns the outcomes with StatusFailed.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// HasFailures reports whether any component failed.
func (r *Report) HasFailures() bool {
	return len(r.Failed()) > 0
}

// Renames returns every rename performed or planned, in order.
func (r *Report) Renames() []rewrite.Rename {
	var renames []rewrite.Rename
	for _, o := range r.Outcomes {
		renames = append(renames, o.Renames...)
	}
	return renames
}
