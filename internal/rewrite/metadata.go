package rewrite

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
	"github.com/asaapi/plugin-init/internal/identity"
	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/workspace"
)

// MetadataFile is the plugin metadata document loaded by the server API.
const MetadataFile = "Configs/PluginInfo.json"

// metadataIndent matches the indentation the template ships with.
var metadataIndent = &pretty.Options{Width: 0, Prefix: "", Indent: "  ", SortKeys: false}

type metadataUpdater struct{}

// NewMetadataUpdater returns the component that sets FullName and
// Description in the plugin metadata.
func NewMetadataUpdater() Component {
	return metadataUpdater{}
}

func (metadataUpdater) Name() string { return "metadata" }

func (m metadataUpdater) Apply(ctx context.Context, ws *workspace.Workspace, id identity.Identity) (Result, error) {
	log := output.ComponentLogger(m.Name())

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	data, err := ws.ReadFile(MetadataFile)
	if err != nil {
		if errors.Is(err, oerrors.ErrMissingFile) {
			log.Warn("file not found, skipping", "path", MetadataFile)
		}
		return Result{}, err
	}

	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return Result{}, oerrors.NewParseError("metadata is not a JSON object", MetadataFile)
	}

	fullName := gjson.GetBytes(data, "FullName")
	description := gjson.GetBytes(data, "Description")

	// An absent or non-string field differs from any value, including "".
	if fullName.Type == gjson.String && fullName.String() == id.Name &&
		description.Type == gjson.String && description.String() == id.Description {
		log.Info("no changes needed", "path", MetadataFile)
		return Result{}, nil
	}

	updated, err := sjson.SetBytes(data, "FullName", id.Name)
	if err != nil {
		return Result{}, fmt.Errorf("setting FullName: %w", err)
	}
	updated, err = sjson.SetBytes(updated, "Description", id.Description)
	if err != nil {
		return Result{}, fmt.Errorf("setting Description: %w", err)
	}

	updated = pretty.PrettyOptions(updated, metadataIndent)
	if !bytes.HasSuffix(data, []byte("\n")) {
		updated = bytes.TrimRight(updated, "\n")
	}

	res := Result{Changes: []Change{
		{Path: MetadataFile, Before: "FullName: " + fullName.String(), After: "FullName: " + id.Name},
		{Path: MetadataFile, Before: "Description: " + description.String(), After: "Description: " + id.Description},
	}}
	for i, field := range []string{"FullName", "Description"} {
		res.Changes[i].Line = lineAt(updated, gjson.GetBytes(updated, field).Index)
	}

	if err := ws.WriteFile(MetadataFile, updated); err != nil {
		return res, err
	}

	log.Info("updated plugin metadata", "path", MetadataFile)
	log.Info(output.FormatFieldChange("FullName", fullName.String(), id.Name))
	log.Info(output.FormatFieldChange("Description", description.String(), id.Description))

	if diff, err := output.RenderDocumentDiff(data, updated, false); err != nil {
		log.Debug("could not render metadata diff", "error", err)
	} else if diff != "" {
		log.Debug("metadata diff\n" + diff)
	}

	return res, nil
}
