package wipe

import "fmt"

// ListError means a directory could not be enumerated. For the top-level
// target this is fatal to the whole Remove call, since the walker cannot
// know what it must delete. Mid-recursion it is recorded as a warning and
// left for the finalizer.
type ListError struct {
	Dir string
	Err error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("list %s: %v", e.Dir, e.Err)
}

func (e *ListError) Unwrap() error { return e.Err }

// PurgeError means the finalizer's forced removal failed for a reason other
// than "not found". It is always fatal: the postcondition (target absent)
// cannot be guaranteed, typically because something outside the caller's
// control holds the path busy.
type PurgeError struct {
	Path string
	Err  error
}

func (e *PurgeError) Error() string {
	return fmt.Sprintf("purge %s: %v", e.Path, e.Err)
}

func (e *PurgeError) Unwrap() error { return e.Err }
