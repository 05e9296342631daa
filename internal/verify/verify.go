// Package verify checks an instantiated template for leftovers of the
// pristine identity and for project references to files that do not exist.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
	"github.com/asaapi/plugin-init/internal/identity"
	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/workspace"
)

// skipDirs are build outputs and tool state never scanned for leftovers.
var skipDirs = map[string]bool{
	"logs":            true,
	".git":            true,
	".vs":             true,
	"x64":             true,
	"build":           true,
	"vcpkg_installed": true,
}

// leftoverTokens are the pristine identifiers that must not survive instantiation.
var leftoverTokens = []string{identity.SourceToken, identity.ProjectToken}

// Kind classifies a finding.
type Kind string

const (
	KindLeftover         Kind = "leftover"
	KindMissingReference Kind = "missing-reference"
	KindMissingFile      Kind = "missing-file"
	KindManifest         Kind = "manifest"
	KindParse            Kind = "parse"
)

// Finding is one inconsistency in the tree.
type Finding struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Path    string `json:"path" yaml:"path"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", f.Path, f.Line, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Path, f.Message)
}

// Result is the outcome of a verification.
type Result struct {
	FilesScanned int       `json:"filesScanned" yaml:"filesScanned"`
	Findings     []Finding `json:"findings" yaml:"findings"`
}

// OK reports whether nothing was found.
func (r *Result) OK() bool {
	return len(r.Findings) == 0
}

// Options configures a verification.
type Options struct {
	// Identity, when set, enables the checks that need the project name.
	Identity *identity.Identity
}

// Run scans the tree under ws.
func Run(ctx context.Context, ws *workspace.Workspace, opts Options) (*Result, error) {
	result := &Result{Findings: make([]Finding, 0)}

	var projects []string
	err := afero.Walk(ws.Fs(), ws.Root(), func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(ws.Root(), p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		data, err := ws.ReadFile(rel)
		if err != nil {
			return err
		}
		result.FilesScanned++
		result.Findings = append(result.Findings, scanLeftovers(rel, data)...)

		if strings.HasSuffix(rel, ".vcxproj") || strings.HasSuffix(rel, ".vcxproj.filters") {
			projects = append(projects, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", ws.Root(), err)
	}

	for _, rel := range projects {
		findings, err := checkReferences(ws, rel)
		if err != nil {
			return nil, err
		}
		result.Findings = append(result.Findings, findings...)
	}

	if opts.Identity != nil {
		findings, err := checkIdentity(ws, *opts.Identity)
		if err != nil {
			return nil, err
		}
		result.Findings = append(result.Findings, findings...)
	}

	sort.SliceStable(result.Findings, func(i, j int) bool {
		if result.Findings[i].Path != result.Findings[j].Path {
			return result.Findings[i].Path < result.Findings[j].Path
		}
		return result.Findings[i].Line < result.Findings[j].Line
	})

	output.Debug("verification finished", "files", result.FilesScanned, "findings", len(result.Findings))
	return result, nil
}

// scanLeftovers reports every line of a text file holding a pristine token.
func scanLeftovers(rel string, data []byte) []Finding {
	if bytes.IndexByte(data, 0) >= 0 {
		return nil
	}

	var findings []Finding
	for i, line := range strings.Split(string(data), "\n") {
		for _, token := range leftoverTokens {
			if strings.Contains(line, token) {
				findings = append(findings, Finding{
					Kind:    KindLeftover,
					Path:    rel,
					Line:    i + 1,
					Message: fmt.Sprintf("still contains %q", token),
				})
			}
		}
	}
	return findings
}

// checkReferences reports ClCompile and ClInclude items whose file is absent.
func checkReferences(ws *workspace.Workspace, rel string) ([]Finding, error) {
	data, err := ws.ReadFile(rel)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))); err != nil {
		return []Finding{{Kind: KindParse, Path: rel, Message: fmt.Sprintf("invalid XML: %v", err)}}, nil
	}

	var findings []Finding
	for _, tag := range []string{"ClCompile", "ClInclude"} {
		for _, el := range doc.FindElements("//" + tag) {
			include := el.SelectAttrValue("Include", "")
			if include == "" || strings.Contains(include, "$(") {
				continue
			}

			target := path.Join(path.Dir(rel), strings.ReplaceAll(include, `\`, "/"))
			ok, err := ws.Exists(target)
			if err != nil {
				return nil, err
			}
			if !ok {
				findings = append(findings, Finding{
					Kind:    KindMissingReference,
					Path:    rel,
					Message: fmt.Sprintf(`%s "%s" does not exist`, tag, include),
				})
			}
		}
	}
	return findings, nil
}

// checkIdentity checks the solution and manifest carry the project name.
func checkIdentity(ws *workspace.Workspace, id identity.Identity) ([]Finding, error) {
	var findings []Finding

	sln := id.Name + ".sln"
	ok, err := ws.Exists(sln)
	if err != nil {
		return nil, err
	}
	if !ok {
		findings = append(findings, Finding{Kind: KindMissingFile, Path: sln, Message: "solution file not found"})
	}

	data, err := ws.ReadFile("vcpkg.json")
	switch {
	case errors.Is(err, oerrors.ErrMissingFile):
		findings = append(findings, Finding{Kind: KindMissingFile, Path: "vcpkg.json", Message: "manifest not found"})
	case err != nil:
		return nil, err
	case !gjson.ValidBytes(data):
		findings = append(findings, Finding{Kind: KindParse, Path: "vcpkg.json", Message: "invalid JSON"})
	default:
		if name := gjson.GetBytes(data, "name").String(); name != id.ManifestName() {
			findings = append(findings, Finding{
				Kind:    KindManifest,
				Path:    "vcpkg.json",
				Message: fmt.Sprintf("package name is %q, expected %q", name, id.ManifestName()),
			})
		}
	}

	return findings, nil
}
