package rewrite

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/asaapi/plugin-init/internal/identity"
	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/workspace"
)

// SourceDirs are the directories whose immediate files are rewritten.
var SourceDirs = []string{"Source", "Source/Public"}

// DirectoryJob replaces Token with Replacement in every immediate regular
// file of Dir. Subdirectories are not descended into.
type DirectoryJob struct {
	Dir         string
	Token       string
	Replacement string
}

// DirectorySummary totals one directory pass.
type DirectorySummary struct {
	Dir           string `json:"dir" yaml:"dir"`
	FilesScanned  int    `json:"filesScanned" yaml:"filesScanned"`
	FilesModified int    `json:"filesModified" yaml:"filesModified"`
	Replacements  int    `json:"replacements" yaml:"replacements"`
}

// fileResult is the outcome of one file; slots are addressed by file index.
type fileResult struct {
	count   int
	changes []Change
	err     error
}

// RewriteDirectory runs job against ws. Files are processed concurrently and
// all of them are finished before it returns. A failing file is logged and
// its error joined into the returned error; the other files still complete.
// An absent directory returns an error matching ErrMissingFile.
func RewriteDirectory(ctx context.Context, ws *workspace.Workspace, job DirectoryJob, log *output.ComponentLog) (DirectorySummary, Result, error) {
	summary := DirectorySummary{Dir: job.Dir}

	names, err := ws.ListFiles(job.Dir)
	if err != nil {
		return summary, Result{}, err
	}
	summary.FilesScanned = len(names)

	log.Info("processing directory", "dir", job.Dir, "files", len(names))

	pattern := regexp.MustCompile(regexp.QuoteMeta(job.Token))
	results := make([]fileResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(runtime.GOMAXPROCS(0), len(names))))

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = rewriteFile(ws, path.Join(job.Dir, name), pattern, job.Replacement, log)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, Result{}, err
	}

	var res Result
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		if r.count > 0 {
			summary.FilesModified++
			summary.Replacements += r.count
			res.Changes = append(res.Changes, r.changes...)
		}
	}

	log.Info("directory summary",
		"dir", job.Dir,
		"scanned", summary.FilesScanned,
		"modified", summary.FilesModified,
		"replacements", summary.Replacements,
	)

	return summary, res, errors.Join(errs...)
}

// rewriteFile replaces every occurrence of pattern in one file.
func rewriteFile(ws *workspace.Workspace, rel string, pattern *regexp.Regexp, replacement string, log *output.ComponentLog) fileResult {
	data, err := ws.ReadFile(rel)
	if err != nil {
		log.Error("reading file", "path", rel, "error", err)
		return fileResult{err: err}
	}

	content := string(data)
	count := len(pattern.FindAllStringIndex(content, -1))
	if count == 0 {
		log.Debug("no occurrences, skipping", "path", rel)
		return fileResult{}
	}

	var changes []Change
	for i, line := range strings.Split(content, "\n") {
		if !pattern.MatchString(line) {
			continue
		}
		after := pattern.ReplaceAllLiteralString(line, replacement)
		changes = append(changes, Change{
			Path:   rel,
			Line:   i + 1,
			Before: strings.TrimSpace(line),
			After:  strings.TrimSpace(after),
		})
		log.Info("preview", "path", rel, "line", i+1, "before", strings.TrimSpace(line), "after", strings.TrimSpace(after))
	}

	updated := pattern.ReplaceAllLiteralString(content, replacement)
	if err := ws.WriteFile(rel, []byte(updated)); err != nil {
		log.Error("writing file", "path", rel, "error", err)
		return fileResult{err: err}
	}

	log.Info("updated", "path", rel, "occurrences", count)
	return fileResult{count: count, changes: changes}
}

// sourceRewriter replaces the template token in the source directories.
type sourceRewriter struct {
	dirs []string
}

// NewSourceRewriter returns the component that replaces every PluginTemplate
// in the immediate files of Source and Source/Public.
func NewSourceRewriter() Component {
	return &sourceRewriter{dirs: SourceDirs}
}

func (s *sourceRewriter) Name() string { return "sources" }

func (s *sourceRewriter) Apply(ctx context.Context, ws *workspace.Workspace, id identity.Identity) (Result, error) {
	log := output.ComponentLogger(s.Name())

	var res Result
	var errs []error
	for _, dir := range s.dirs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		ok, err := ws.Exists(dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			log.Debug("directory not found, skipping", "dir", dir)
			continue
		}

		job := DirectoryJob{Dir: dir, Token: identity.SourceToken, Replacement: id.Name}
		_, dirRes, err := RewriteDirectory(ctx, ws, job, log)
		res.merge(dirRes)
		if err != nil {
			errs = append(errs, fmt.Errorf("rewriting %s: %w", dir, err))
		}
	}

	return res, errors.Join(errs...)
}
