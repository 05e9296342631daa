package rewrite

import (
	"context"
	"errors"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
	"github.com/asaapi/plugin-init/internal/identity"
	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/workspace"
)

// descriptorRewriter applies line rules to one build descriptor file.
type descriptorRewriter struct {
	name  string
	path  string
	rules func(id identity.Identity) []LineRule
}

func (d *descriptorRewriter) Name() string { return d.name }

func (d *descriptorRewriter) Apply(ctx context.Context, ws *workspace.Workspace, id identity.Identity) (Result, error) {
	log := output.ComponentLogger(d.name)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	data, err := ws.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, oerrors.ErrMissingFile) {
			log.Warn("file not found, skipping", "path", d.path)
		}
		return Result{}, err
	}

	updated, res := ApplyLineRules(d.path, data, d.rules(id))
	for _, diag := range res.Diagnostics {
		log.Warn(diag.Message, "path", diag.Path, "hint", diag.Line)
	}

	if len(res.Changes) == 0 {
		log.Info("no changes needed", "path", d.path)
		return res, nil
	}

	for _, c := range res.Changes {
		log.Debug("rewrote line", "path", c.Path, "line", c.Line, "before", c.Before, "after", c.After)
	}

	if err := ws.WriteFile(d.path, updated); err != nil {
		return res, err
	}

	log.Info("updated", "path", d.path, "lines", len(res.Changes))
	return res, nil
}
