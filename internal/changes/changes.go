// Package changes detects notes modified since a previous run.
package changes

// Detect compares current note mtimes against the ones recorded by the
// previous run and returns the paths that are new or newer, with their
// current mtimes. Paths that vanished since the previous run are ignored.
func Detect(current, previous map[string]int64) map[string]int64 {
	modified := make(map[string]int64)
	for path, mtime := range current {
		if last, ok := previous[path]; !ok || mtime > last {
			modified[path] = mtime
		}
	}
	return modified
}

// WasModified reports whether a single path changed since the previous run.
// A path with no recorded mtime counts as modified.
func WasModified(path string, mtime int64, previous map[string]int64) bool {
	last, ok := previous[path]
	return !ok || mtime > last
}
