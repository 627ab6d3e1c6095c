package repourl

import (
	"errors"
	"fmt"
	"strings"
)

// hostShorthands maps "host:" prefixes to the https base they expand to
var hostShorthands = map[string]string{
	"github":    "https://github.com",
	"gitlab":    "https://gitlab.com",
	"bitbucket": "https://bitbucket.org",
}

var ErrInvalidAddress = errors.New("invalid repository address")

// Normalize expands repository address shorthands into something the
// checkout executable accepts. Full URLs and scp-style addresses pass
// through untouched; "user/repo" and "github:user/repo" style shorthands
// expand to an https URL.
func Normalize(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", ErrInvalidAddress
	}

	// Full URL (https, ssh, git, file, ...)
	if strings.Contains(addr, "://") {
		return addr, nil
	}

	// scp-style: git@host:user/repo.git
	if strings.Contains(addr, "@") && strings.Contains(addr, ":") {
		return addr, nil
	}

	// host shorthand: github:user/repo
	if host, rest, ok := strings.Cut(addr, ":"); ok {
		base, known := hostShorthands[host]
		if !known {
			return "", fmt.Errorf("%w: unknown host shorthand %q", ErrInvalidAddress, host)
		}
		if strings.Count(rest, "/") != 1 || strings.HasPrefix(rest, "/") || strings.HasSuffix(rest, "/") {
			return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
		}
		return base + "/" + rest, nil
	}

	// bare user/repo defaults to github
	if strings.Count(addr, "/") == 1 && !strings.HasPrefix(addr, "/") && !strings.HasSuffix(addr, "/") {
		return hostShorthands["github"] + "/" + addr, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
}

// DirName derives the default checkout directory from a repository address:
// the last path segment with any ".git" suffix removed.
func DirName(addr string) string {
	addr = strings.TrimRight(strings.TrimSpace(addr), "/")
	if i := strings.LastIndexAny(addr, "/:"); i >= 0 {
		addr = addr[i+1:]
	}
	return strings.TrimSuffix(addr, ".git")
}
