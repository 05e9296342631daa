// Package testutil provides test helpers for plugin-init tests.
package testutil

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// template is a pristine copy of the plugin template.
//
//go:embed testdata/template
var template embed.FS

const templateDir = "testdata/template"

// TemplateFiles lists the relative paths of every file in the pristine template.
func TemplateFiles(t *testing.T) []string {
	t.Helper()
	var files []string
	err := fs.WalkDir(template, templateDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		files = append(files, strings.TrimPrefix(p, templateDir+"/"))
		return nil
	})
	if err != nil {
		t.Fatalf("walking template fixture: %v", err)
	}
	return files
}

// TemplateContent returns the pristine content of rel.
func TemplateContent(t *testing.T, rel string) string {
	t.Helper()
	data, err := template.ReadFile(path.Join(templateDir, rel))
	if err != nil {
		t.Fatalf("reading template fixture %s: %v", rel, err)
	}
	return string(data)
}

// Template writes a pristine template into a fresh temporary directory and
// returns its path. Files named in omit are left out.
func Template(t *testing.T, omit ...string) string {
	t.Helper()
	dir := t.TempDir()
	skip := toSet(omit)
	for _, rel := range TemplateFiles(t) {
		if skip[rel] {
			continue
		}
		WriteFile(t, dir, filepath.FromSlash(rel), TemplateContent(t, rel))
	}
	return dir
}

// TemplateFs loads a pristine template into an in-memory filesystem rooted
// at root. Files named in omit are left out.
func TemplateFs(t *testing.T, root string, omit ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("creating %s: %v", root, err)
	}
	skip := toSet(omit)
	for _, rel := range TemplateFiles(t) {
		if skip[rel] {
			continue
		}
		p := path.Join(root, rel)
		if err := fsys.MkdirAll(path.Dir(p), 0o755); err != nil {
			t.Fatalf("creating parent dirs for %s: %v", p, err)
		}
		if err := afero.WriteFile(fsys, p, []byte(TemplateContent(t, rel)), 0o644); err != nil {
			t.Fatalf("writing %s: %v", p, err)
		}
	}
	return fsys
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", p, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", p, err)
	}
	return p
}

// ReadFile returns the content of a file under dir.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("failed to read file %s: %v", name, err)
	}
	return string(data)
}

// Exists reports whether name exists under dir.
func Exists(t *testing.T, dir, name string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
	return err == nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
