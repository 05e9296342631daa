package rewrite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
	"github.com/asaapi/plugin-init/internal/identity"
	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/workspace"
)

// ManifestFile is the vcpkg package manifest.
const ManifestFile = "vcpkg.json"

// manifestRewriter sets the vcpkg package name.
type manifestRewriter struct{}

// NewManifestRewriter returns the component that renames the vcpkg package
// from asa-api-plugin-template to asa-api-plugin-<slug>. Every other byte of
// the manifest is preserved.
func NewManifestRewriter() Component {
	return manifestRewriter{}
}

func (manifestRewriter) Name() string { return "manifest" }

func (m manifestRewriter) Apply(ctx context.Context, ws *workspace.Workspace, id identity.Identity) (Result, error) {
	log := output.ComponentLogger(m.Name())

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	data, err := ws.ReadFile(ManifestFile)
	if err != nil {
		if errors.Is(err, oerrors.ErrMissingFile) {
			log.Warn("file not found, skipping", "path", ManifestFile)
		}
		return Result{}, err
	}

	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return Result{}, oerrors.NewParseError("manifest is not a JSON object", ManifestFile)
	}

	var res Result
	target := id.ManifestName()
	name := gjson.GetBytes(data, "name")

	switch {
	case !name.Exists():
		res.Diagnostics = append(res.Diagnostics, Diagnostic{Path: ManifestFile, Message: "manifest has no name field"})
		log.Warn("manifest has no name field", "path", ManifestFile)
		return res, nil
	case name.String() == target:
		log.Info("no changes needed", "path", ManifestFile, "name", target)
		return res, nil
	case name.String() != identity.ManifestToken:
		msg := fmt.Sprintf("package name is %q, expected %q; leaving it untouched", name.String(), identity.ManifestToken)
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Path:    ManifestFile,
			Line:    lineAt(data, name.Index),
			Message: msg,
		})
		log.Warn(msg, "path", ManifestFile)
		return res, nil
	}

	updated, err := sjson.SetBytes(data, "name", target)
	if err != nil {
		return res, fmt.Errorf("setting manifest name: %w", err)
	}

	line := lineAt(data, name.Index)
	res.Changes = append(res.Changes, Change{
		Path:   ManifestFile,
		Line:   line,
		Before: strings.TrimSpace(lineText(data, line)),
		After:  strings.TrimSpace(lineText(updated, line)),
	})

	if err := ws.WriteFile(ManifestFile, updated); err != nil {
		return res, err
	}

	log.Info("updated package name", "path", ManifestFile, "name", target)
	return res, nil
}

// lineAt returns the 1-based line holding byte offset.
func lineAt(data []byte, offset int) int {
	if offset < 0 || offset > len(data) {
		return 0
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

// lineText returns the 1-based line n of data, without its newline.
func lineText(data []byte, n int) string {
	if n < 1 {
		return ""
	}
	lines := strings.Split(string(data), "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}
