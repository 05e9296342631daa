// Package pipeline orders the instantiation components, classifies what each
// one did and renders the run report.
package pipeline

import (
	"context"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/rewrite"
	"github.com/asaapi/plugin-init/internal/workspace"
)

// pipeline implements the Pipeline interface.
type pipeline struct {
	components []rewrite.Component
}

// NewPipeline creates a Pipeline over components. With no components the
// standard instantiation order from rewrite.Components is used.
func NewPipeline(components ...rewrite.Component) Pipeline {
	if len(components) == 0 {
		components = rewrite.Components()
	}
	return &pipeline{components: components}
}

// Run executes the pipeline and returns the report.
//
// Phase sequence:
//  1. CONTENT:  manifest, solution, filters, project, sources, metadata
//  2. RENAME:   the template's own files, only after every reference is updated
//
// Each component is awaited before the next starts. Missing inputs mark a
// component skipped; any other error marks it failed. In atomic mode the
// first failure, or a cancelled context, rolls back the workspace journal and
// ends the run with an AbortedError.
func (p *pipeline) Run(ctx context.Context, ws *workspace.Workspace, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		Root:        ws.Root(),
		Project:     opts.Identity.Name,
		Description: opts.Identity.Description,
		DryRun:      ws.DryRun(),
		Atomic:      opts.Atomic,
		Outcomes:    make([]Outcome, 0, len(p.components)),
	}

	output.Debug("pipeline starting",
		"root", ws.Root(),
		"project", opts.Identity.Name,
		"components", len(p.components),
		"dryRun", ws.DryRun(),
		"atomic", opts.Atomic,
	)

	for _, c := range p.components {
		if err := ctx.Err(); err != nil {
			return report, interrupted(ws, report, c.Name(), err, opts.Atomic)
		}

		res, err := c.Apply(ctx, ws, opts.Identity)
		if err != nil && ctx.Err() != nil {
			return report, interrupted(ws, report, c.Name(), ctx.Err(), opts.Atomic)
		}

		outcome := classify(c.Name(), res, err, ws.DryRun())
		report.Outcomes = append(report.Outcomes, outcome)

		switch outcome.Status {
		case StatusFailed:
			output.Error("component failed", "component", c.Name(), "error", err)
		case StatusSkipped:
			output.Debug("component skipped", "component", c.Name(), "reason", err)
		}
		output.Info("Done " + c.Name())

		if outcome.Status == StatusFailed && opts.Atomic {
			return report, abort(ws, report, c.Name(), err)
		}
	}

	if ws.DryRun() {
		report.Plan = ws.Journal()
	}

	return report, nil
}

// classify turns a component result into an Outcome.
func classify(name string, res rewrite.Result, err error, dryRun bool) Outcome {
	outcome := Outcome{
		Component:   name,
		Changes:     res.Changes,
		Renames:     res.Renames,
		Diagnostics: res.Diagnostics,
		Err:         err,
	}
	if err != nil {
		outcome.Error = err.Error()
	}

	switch {
	case err != nil && oerrors.OnlyMissingFiles(err):
		outcome.Status = StatusSkipped
	case err != nil:
		outcome.Status = StatusFailed
	case res.Empty():
		outcome.Status = StatusUnchanged
	case dryRun:
		outcome.Status = StatusPlanned
	default:
		outcome.Status = StatusApplied
	}
	return outcome
}

// abort rolls back the workspace after a failure in atomic mode.
func abort(ws *workspace.Workspace, report *Report, name string, cause error) error {
	aborted := &AbortedError{ComponentName: name, Cause: cause}
	if rbErr := ws.Rollback(); rbErr != nil {
		aborted.RollbackErr = rbErr
		output.Error("rollback incomplete", "error", rbErr)
	} else {
		output.Warn("rolled back all changes", "component", name)
	}
	report.RolledBack = true
	return aborted
}

// interrupted handles a cancelled context at component name. Atomic runs are
// rolled back; best-effort runs keep what was already written.
func interrupted(ws *workspace.Workspace, report *Report, name string, cause error, atomic bool) error {
	if !atomic {
		return cause
	}
	return abort(ws, report, name, cause)
}
