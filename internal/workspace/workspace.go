// Package workspace gives pipeline components access to the template tree.
//
// Every mutation goes through a Workspace, which journals it so a run can be
// rolled back or, in dry-run mode, reported without touching the disk.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
	"github.com/asaapi/plugin-init/internal/output"
)

// Workspace is the template root plus the filesystem it lives on.
// Paths passed to its methods are slash-separated and relative to the root.
type Workspace struct {
	fs     afero.Fs
	root   string
	dryRun bool

	mu      sync.Mutex
	journal []Entry

	// Dry-run overlay: pending content by path, and paths moved away by a
	// planned rename (value is the path now holding the content).
	pending map[string][]byte
	moved   map[string]string
	gone    map[string]bool
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithDryRun makes every mutation journal-only.
func WithDryRun(dryRun bool) Option {
	return func(w *Workspace) {
		w.dryRun = dryRun
	}
}

// New opens the template rooted at root. The root must be an existing directory.
func New(fsys afero.Fs, root string, opts ...Option) (*Workspace, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewNotFoundError(
				"template root does not exist",
				root,
				"Pass --root or set PLUGIN_INIT_ROOT to the directory holding PluginTemplate.sln.",
			)
		}
		return nil, oerrors.NewFilesystemError("stat", root, err)
	}
	if !info.IsDir() {
		return nil, oerrors.NewNotFoundError("template root is not a directory", root, "")
	}

	w := &Workspace{
		fs:      fsys,
		root:    root,
		pending: make(map[string][]byte),
		moved:   make(map[string]string),
		gone:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Root returns the absolute template root.
func (w *Workspace) Root() string {
	return w.root
}

// DryRun reports whether mutations are journal-only.
func (w *Workspace) DryRun() bool {
	return w.dryRun
}

// Fs returns the underlying filesystem.
func (w *Workspace) Fs() afero.Fs {
	return w.fs
}

// Path returns the on-disk path of rel.
func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

// Exists reports whether rel is present, taking planned mutations into account.
func (w *Workspace) Exists(rel string) (bool, error) {
	rel = clean(rel)

	w.mu.Lock()
	_, pending := w.pending[rel]
	_, moved := w.moved[rel]
	gone := w.gone[rel]
	w.mu.Unlock()

	if pending || moved {
		return true, nil
	}
	if gone {
		return false, nil
	}

	ok, err := afero.Exists(w.fs, w.Path(rel))
	if err != nil {
		return false, oerrors.NewFilesystemError("stat", rel, err)
	}
	return ok, nil
}

// ReadFile returns the content of rel. An absent file yields an error
// matching ErrMissingFile.
func (w *Workspace) ReadFile(rel string) ([]byte, error) {
	rel = clean(rel)

	w.mu.Lock()
	data, pending := w.pending[rel]
	src, moved := w.moved[rel]
	gone := w.gone[rel]
	w.mu.Unlock()

	switch {
	case pending:
		return append([]byte(nil), data...), nil
	case moved:
		return w.readDisk(src, rel)
	case gone:
		return nil, oerrors.NewMissingFileError(rel)
	}
	return w.readDisk(rel, rel)
}

// readDisk reads src from the underlying filesystem, reporting errors against rel.
func (w *Workspace) readDisk(src, rel string) ([]byte, error) {
	data, err := afero.ReadFile(w.fs, w.Path(src))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewMissingFileError(rel)
		}
		return nil, oerrors.NewFilesystemError("read", rel, err)
	}
	return data, nil
}

// ListFiles returns the names of the immediate regular files of dir, sorted.
// An absent directory yields an error matching ErrMissingFile.
func (w *Workspace) ListFiles(dir string) ([]string, error) {
	dir = clean(dir)

	infos, err := afero.ReadDir(w.fs, w.Path(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewMissingFileError(dir)
		}
		return nil, oerrors.NewFilesystemError("list", dir, err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.Mode().IsRegular() {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// WriteFile replaces the content of the existing file rel, keeping its mode.
func (w *Workspace) WriteFile(rel string, data []byte) error {
	rel = clean(rel)

	before, err := w.ReadFile(rel)
	if err != nil {
		return err
	}

	mode := fs.FileMode(0o644)
	if info, statErr := w.fs.Stat(w.Path(rel)); statErr == nil {
		mode = info.Mode().Perm()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dryRun {
		w.pending[rel] = append([]byte(nil), data...)
	} else if err := afero.WriteFile(w.fs, w.Path(rel), data, mode); err != nil {
		return oerrors.NewFilesystemError("write", rel, err)
	}

	w.journal = append(w.journal, Entry{
		Kind:   KindWrite,
		Path:   rel,
		Before: before,
		Mode:   mode,
	})
	output.Debug("journaled write", "path", rel, "bytes", len(data), "dryRun", w.dryRun)
	return nil
}

// Rename moves oldRel to newRel. Renaming a path onto itself is a no-op.
// An existing target is never overwritten.
func (w *Workspace) Rename(oldRel, newRel string) error {
	oldRel, newRel = clean(oldRel), clean(newRel)
	if oldRel == newRel {
		return nil
	}

	ok, err := w.Exists(oldRel)
	if err != nil {
		return err
	}
	if !ok {
		return oerrors.NewMissingFileError(oldRel)
	}

	taken, err := w.Exists(newRel)
	if err != nil {
		return err
	}
	if taken {
		return oerrors.NewFilesystemError("rename", newRel, fs.ErrExist)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dryRun {
		if data, pending := w.pending[oldRel]; pending {
			w.pending[newRel] = data
			delete(w.pending, oldRel)
		} else if src, moved := w.moved[oldRel]; moved {
			w.moved[newRel] = src
			delete(w.moved, oldRel)
		} else {
			w.moved[newRel] = oldRel
		}
		w.gone[oldRel] = true
		delete(w.gone, newRel)
	} else if err := w.fs.Rename(w.Path(oldRel), w.Path(newRel)); err != nil {
		return oerrors.NewFilesystemError("rename", oldRel, err)
	}

	w.journal = append(w.journal, Entry{
		Kind:    KindRename,
		Path:    oldRel,
		NewPath: newRel,
	})
	output.Debug("journaled rename", "from", oldRel, "to", newRel, "dryRun", w.dryRun)
	return nil
}

// Journal returns a copy of the recorded mutations in the order they happened.
func (w *Workspace) Journal() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Entry(nil), w.journal...)
}

// Rollback undoes every journaled mutation in reverse order and clears the
// journal. In dry-run mode only the overlay is discarded. Every entry is
// attempted; the errors are joined.
func (w *Workspace) Rollback() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	entries := w.journal
	w.journal = nil

	if w.dryRun {
		w.pending = make(map[string][]byte)
		w.moved = make(map[string]string)
		w.gone = make(map[string]bool)
		return nil
	}

	var errs []error
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		switch e.Kind {
		case KindWrite:
			if err := afero.WriteFile(w.fs, w.Path(e.Path), e.Before, e.Mode); err != nil {
				errs = append(errs, oerrors.NewFilesystemError("restore", e.Path, err))
			}
		case KindRename:
			if err := w.fs.Rename(w.Path(e.NewPath), w.Path(e.Path)); err != nil {
				errs = append(errs, oerrors.NewFilesystemError("restore rename", e.NewPath, err))
			}
		}
	}

	output.Debug("rolled back journal", "entries", len(entries), "errors", len(errs))
	if len(errs) > 0 {
		return fmt.Errorf("rollback incomplete: %w", errors.Join(errs...))
	}
	return nil
}

// clean normalizes a relative slash path.
func clean(rel string) string {
	return path.Clean(filepath.ToSlash(rel))
}

// osFs is the filesystem used outside tests.
var osFs afero.Fs = afero.NewOsFs()

// NewOS opens root on the operating system filesystem.
func NewOS(root string, opts ...Option) (*Workspace, error) {
	return New(osFs, root, opts...)
}
