package catalog

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Scan lists the media directory and returns filename to modification time
// for every regular, non-hidden file directly under it. Subdirectories are
// not descended into. A missing or unreadable directory is an error; callers
// log it and retry on the next cycle.
//
// Modification times are captured for the snapshot but deliberately not used
// for change detection: a file replaced in place under the same name is not
// treated as changed.
func Scan(dir string) (map[string]time.Time, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan media directory %s: %w", dir, err)
	}

	files := make(map[string]time.Time)
	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		if strings.HasPrefix(name, ".") || !dirEntry.Type().IsRegular() {
			continue
		}
		info, err := dirEntry.Info()
		if err != nil {
			// Raced with a deletion; the next cycle will see the result.
			continue
		}
		files[name] = info.ModTime()
	}
	return files, nil
}
