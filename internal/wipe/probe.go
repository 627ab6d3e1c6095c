package wipe

import "path/filepath"

// Exists reports whether path currently resolves to a real entity, following
// symlinks and normalizing the result. Any resolution failure (missing node,
// broken link, permission denial during resolution) degrades to false; this
// probe never errors and has no side effects.
//
// Note the consequence for broken symlinks: they probe false, so the walker
// treats them as already satisfied and the finalizer removes the link itself.
func Exists(path string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	return err == nil && resolved != ""
}
