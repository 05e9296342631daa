// Package rewrite implements the steps that turn the pristine plugin template
// into a named project: content rewrites of each well-known file followed by
// renaming the files that carry the template name.
package rewrite

import (
	"context"

	"github.com/asaapi/plugin-init/internal/identity"
	"github.com/asaapi/plugin-init/internal/workspace"
)

// Component is one step of template instantiation.
type Component interface {
	// Name identifies the component in logs and reports.
	Name() string

	// Apply performs the step against ws. A missing input file is reported
	// as an error matching ErrMissingFile; everything the step did before
	// failing is still returned in the Result.
	Apply(ctx context.Context, ws *workspace.Workspace, id identity.Identity) (Result, error)
}

// Result is what a component changed and noticed.
type Result struct {
	Changes     []Change     `json:"changes,omitempty" yaml:"changes,omitempty"`
	Renames     []Rename     `json:"renames,omitempty" yaml:"renames,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Empty reports whether the component changed nothing.
func (r Result) Empty() bool {
	return len(r.Changes) == 0 && len(r.Renames) == 0
}

func (r *Result) merge(other Result) {
	r.Changes = append(r.Changes, other.Changes...)
	r.Renames = append(r.Renames, other.Renames...)
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// Change is one rewritten line. Before and After are trimmed.
type Change struct {
	Path   string `json:"path" yaml:"path"`
	Line   int    `json:"line" yaml:"line"`
	Before string `json:"before" yaml:"before"`
	After  string `json:"after" yaml:"after"`
}

// Rename is one moved file, relative to the template root.
type Rename struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// Diagnostic is a non-fatal finding: an anchor that did not match, or a
// value that was not what the pristine template holds.
type Diagnostic struct {
	Path    string `json:"path" yaml:"path"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Components returns the instantiation steps in execution order. Every
// content rewrite precedes the renamer.
func Components() []Component {
	return []Component{
		NewManifestRewriter(),
		NewSolutionRewriter(),
		NewFiltersRewriter(),
		NewProjectRewriter(),
		NewSourceRewriter(),
		NewMetadataUpdater(),
		NewFileRenamer(),
	}
}
