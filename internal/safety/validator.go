package safety

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidPath    = errors.New("invalid path")
	ErrProtectedPath  = errors.New("protected path")
	ErrOutsideAllowed = errors.New("outside allowed roots")
	ErrTraversal      = errors.New("path traversal detected")
	ErrSymlinkEscape  = errors.New("symlink escape detected")
)

// Paths no sweep may ever touch, regardless of configuration.
var builtinProtected = []string{
	"/",
	"/etc",
	"/bin",
	"/usr",
	"/boot",
	"/lib",
	"/lib64",
	"/sbin",
	"/var/lib/repo-sweep",
	"/etc/repo-sweep",
}

// Validator enforces the safety contract before any destination is swept.
// A clone destination that fails validation is never handed to the wipe core.
type Validator struct {
	allowed   []string
	protected []string
}

// NewValidator builds a validator over the configured allowed roots, with
// extraProtected prefixes joined to the built-in protected set.
func NewValidator(allowed []string, extraProtected []string) *Validator {
	return &Validator{
		allowed:   cleanAll(allowed),
		protected: append(cleanAll(builtinProtected), cleanAll(extraProtected)...),
	}
}

// ValidateTarget is the single authorization gate for destructive sweeps.
// It returns nil only when path is an absolute, traversal-free location
// inside an allowed root that is neither protected nor a symlink pointing
// outside the allowed roots.
func (v *Validator) ValidateTarget(path string) error {
	abs, err := absClean(path)
	if err != nil {
		return err
	}

	if v.isProtected(abs) {
		return ErrProtectedPath
	}
	if !v.underAllowedRoot(abs) {
		return ErrOutsideAllowed
	}
	// The raw input is checked, not the cleaned form: Clean collapses
	// "a/b/../b" into something harmless, but accepting it would let
	// callers smuggle traversal past logs and audit rows.
	if containsDotDot(path) {
		return ErrTraversal
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// A destination that does not exist yet is fine; the sweep treats
		// an absent target as a successful no-op.
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !v.underAllowedRoot(filepath.Clean(resolved)) {
		return ErrSymlinkEscape
	}
	return nil
}

func (v *Validator) underAllowedRoot(abs string) bool {
	for _, root := range v.allowed {
		if underPrefix(abs, root) {
			return true
		}
	}
	return false
}

func (v *Validator) isProtected(abs string) bool {
	if abs == string(os.PathSeparator) {
		return true
	}
	for _, p := range v.protected {
		if p == string(os.PathSeparator) {
			// Handled by the exact-root check; as a prefix it would
			// match every absolute path.
			continue
		}
		if abs == p || underPrefix(abs, p) {
			return true
		}
	}
	return false
}

// underPrefix reports whether path sits at or below prefix in the tree.
// "/srv/checkout" is not under "/srv/check".
func underPrefix(path, prefix string) bool {
	if prefix == string(os.PathSeparator) {
		return filepath.IsAbs(path)
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+string(os.PathSeparator))
}

func containsDotDot(raw string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(raw), "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

func absClean(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrInvalidPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ErrInvalidPath
	}
	return filepath.Clean(abs), nil
}

func cleanAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		out = append(out, filepath.Clean(abs))
	}
	return out
}
