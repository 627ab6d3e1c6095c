package wipe

import (
	"os"
	"path/filepath"
)

// List enumerates the immediate children of dir and classifies each one.
// The directory path is resolved exactly once per call so every descriptor
// in the result shares a consistent absolute base. Order is whatever the
// filesystem reports; callers must not rely on it.
//
// A directory that cannot be resolved or read yields a *ListError — the
// caller decides whether that is fatal (top level) or a recorded warning
// (mid-recursion).
func List(dir string) ([]Entry, error) {
	base, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, &ListError{Dir: dir, Err: err}
	}

	children, err := os.ReadDir(base)
	if err != nil {
		return nil, &ListError{Dir: base, Err: err}
	}

	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		entries = append(entries, Entry{
			Name: child.Name(),
			Path: filepath.Join(base, child.Name()),
			Kind: classifyMode(child.Type()),
		})
	}
	return entries, nil
}
