package fsops

import "os"

// OSDeleter performs real deletions against the local filesystem.
type OSDeleter struct{}

// Remove unlinks one entry; directories must be empty.
func (OSDeleter) Remove(path string) error {
	return os.Remove(path)
}

// RemoveAll removes path and everything under it, tolerating absence.
func (OSDeleter) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
