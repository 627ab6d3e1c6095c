package fsops

// Deleter abstracts filesystem delete operations
// Enables mocking in tests to prove dry-run never deletes
type Deleter interface {
	// Remove unlinks a single entry (precise delete)
	Remove(path string) error
	// RemoveAll is the forced removal primitive: recursive, does not
	// require directories to be empty, and "already absent" is success
	RemoveAll(path string) error
}
