package wipe

import "io/fs"

// EntryKind classifies a directory child at listing time.
// Exactly one kind applies per entry and it is never re-read mid-walk;
// if the node changes type concurrently, the leaf retry policy governs.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
	KindSocket
	KindSymlink
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindSocket:
		return "socket"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Entry describes one filesystem node discovered during a listing.
// Path is absolute, computed from the resolved parent directory, and is
// the entry's identity for the duration of one walk. Entries are never
// cached or shared across Remove invocations.
type Entry struct {
	Name string
	Path string
	Kind EntryKind
}

// classifyMode maps lstat type bits into the entry kind set.
// Symlink wins over everything (a link to a directory is still a leaf),
// sockets are leaves, directories recurse, everything else is a file.
func classifyMode(mode fs.FileMode) EntryKind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode&fs.ModeSocket != 0:
		return KindSocket
	case mode.IsDir():
		return KindDir
	default:
		return KindFile
	}
}
