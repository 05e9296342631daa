package workspace

import "io/fs"

// EntryKind is the kind of a journaled mutation.
type EntryKind string

const (
	KindWrite  EntryKind = "write"
	KindRename EntryKind = "rename"
)

// Entry is one journaled mutation. For writes Before holds the previous
// content and Mode the file permissions; for renames NewPath is the target.
type Entry struct {
	Kind    EntryKind   `json:"kind" yaml:"kind"`
	Path    string      `json:"path" yaml:"path"`
	NewPath string      `json:"newPath,omitempty" yaml:"newPath,omitempty"`
	Before  []byte      `json:"-" yaml:"-"`
	Mode    fs.FileMode `json:"-" yaml:"-"`
}
