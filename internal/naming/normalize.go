package naming

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidChars   = regexp.MustCompile(`[^a-z0-9_-]`)
	underscoreRuns = regexp.MustCompile(`_+`)
	dashRuns       = regexp.MustCompile(`-+`)
)

// Normalize derives the canonical worker id for a media file path.
//
// The id is built from the filename with its extension removed: lowercased,
// every character outside [a-z0-9_-] replaced with an underscore, runs of
// underscores and dashes collapsed, and leading/trailing underscores and
// dashes stripped.
//
// Normalize is pure and total. It never fails, but it can return an empty
// string when the filename contains no usable characters; callers must treat
// an empty id as invalid and skip the file. Two distinct filenames can
// normalize to the same id, so callers deriving ids from a directory listing
// must detect and handle collisions themselves.
//
// The same path always yields the same id, and the function is idempotent:
// Normalize(Normalize(p)) == Normalize(p) for any already-extensionless name.
func Normalize(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	name = strings.ToLower(name)
	name = invalidChars.ReplaceAllString(name, "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = dashRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "_-")

	return name
}
