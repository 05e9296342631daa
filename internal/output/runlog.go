package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// RunLogName returns the file name of the run log for the given day (YYYY-MM-DD.log).
func RunLogName(day time.Time) string {
	return day.Format(time.DateOnly) + ".log"
}

// OpenRunLog creates dir if needed and opens the day's run log for appending.
func OpenRunLog(fsys afero.Fs, dir string, day time.Time) (afero.File, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, RunLogName(day))
	f, err := fsys.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening run log %s: %w", path, err)
	}
	return f, nil
}
