package rewrite

import (
	"context"
	"errors"
	"strings"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
	"github.com/asaapi/plugin-init/internal/identity"
	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/workspace"
)

// projectFileSuffixes are the members of the vcxproj file family.
var projectFileSuffixes = []string{".vcxproj", ".vcxproj.filters", ".vcxproj.user"}

// RenameMappings returns the files the template renames for id, in order.
func RenameMappings(id identity.Identity) []Rename {
	mappings := []Rename{
		{Old: SolutionFile, New: id.Name + ".sln"},
	}
	for _, suffix := range projectFileSuffixes {
		old := identity.ProjectToken + suffix
		mappings = append(mappings, Rename{
			Old: old,
			New: strings.Replace(old, identity.ProjectFileToken, id.Name, 1),
		})
	}
	return append(mappings,
		Rename{Old: "Source/" + identity.SourceToken + ".cpp", New: "Source/" + id.Name + ".cpp"},
		Rename{Old: "Source/Public/" + identity.SourceToken + ".h", New: "Source/Public/" + id.Name + ".h"},
	)
}

type fileRenamer struct{}

// NewFileRenamer returns the component that gives the template's own files
// the project name. It must run after every content rewrite.
func NewFileRenamer() Component {
	return fileRenamer{}
}

func (fileRenamer) Name() string { return "rename" }

func (r fileRenamer) Apply(ctx context.Context, ws *workspace.Workspace, id identity.Identity) (Result, error) {
	log := output.ComponentLogger(r.Name())

	var res Result
	var errs []error
	for _, m := range RenameMappings(id) {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if m.Old == m.New {
			log.Debug("name unchanged, skipping", "path", m.Old)
			continue
		}

		err := ws.Rename(m.Old, m.New)
		switch {
		case errors.Is(err, oerrors.ErrMissingFile):
			log.Debug("file not found, skipping", "path", m.Old)
		case err != nil:
			log.Error("rename failed", "from", m.Old, "to", m.New, "error", err)
			errs = append(errs, err)
		default:
			log.Info("renamed " + output.FormatRename(m.Old, m.New))
			res.Renames = append(res.Renames, m)
		}
	}

	return res, errors.Join(errs...)
}
