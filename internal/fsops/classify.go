package fsops

import "os"

// Kind is the closed set of failure classes a delete syscall can produce.
// Platform error codes are mapped into this set here, at the adapter
// boundary, and nowhere else.
type Kind int

const (
	// KindNone means the error was nil
	KindNone Kind = iota
	// KindNotFound: the entry does not exist (or a path component is gone)
	KindNotFound
	// KindPermission: the caller lacks permission to unlink the entry
	KindPermission
	// KindOther: any failure outside the two classes above (busy, I/O, ...)
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	default:
		return "other"
	}
}

// Classify maps a filesystem error into the closed Kind set
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case os.IsNotExist(err):
		return KindNotFound
	case os.IsPermission(err):
		return KindPermission
	default:
		return KindOther
	}
}
