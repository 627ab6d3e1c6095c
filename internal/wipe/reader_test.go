package wipe

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestListClassifiesEntries(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.Symlink(filepath.Join(tmpDir, "a.txt"), filepath.Join(tmpDir, "link")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	entries, err := List(tmpDir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	kinds := make(map[string]EntryKind)
	for _, e := range entries {
		kinds[e.Name] = e.Kind
		if !filepath.IsAbs(e.Path) {
			t.Errorf("entry %s: path %s is not absolute", e.Name, e.Path)
		}
		if filepath.Base(e.Path) != e.Name {
			t.Errorf("entry %s: path %s does not end in entry name", e.Name, e.Path)
		}
	}

	if kinds["a.txt"] != KindFile {
		t.Errorf("a.txt: expected file, got %v", kinds["a.txt"])
	}
	if kinds["sub"] != KindDir {
		t.Errorf("sub: expected directory, got %v", kinds["sub"])
	}
	if kinds["link"] != KindSymlink {
		t.Errorf("link: expected symlink, got %v", kinds["link"])
	}
}

func TestListClassifiesSocket(t *testing.T) {
	tmpDir := t.TempDir()

	sock := filepath.Join(tmpDir, "s.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Skipf("cannot create unix socket: %v", err)
	}
	defer ln.Close()

	entries, err := List(tmpDir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Kind != KindSocket {
		t.Errorf("expected socket, got %v", entries[0].Kind)
	}
}

func TestListSharesResolvedBase(t *testing.T) {
	tmpDir := t.TempDir()

	real := filepath.Join(tmpDir, "real")
	if err := os.Mkdir(real, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(real, "f.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	alias := filepath.Join(tmpDir, "alias")
	if err := os.Symlink(real, alias); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	// Listing through the symlinked name must yield paths rooted at the
	// resolved directory, shared by all descriptors of that call
	entries, err := List(alias)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	resolved, err := filepath.EvalSymlinks(real)
	if err != nil {
		t.Fatalf("EvalSymlinks failed: %v", err)
	}
	want := filepath.Join(resolved, "f.txt")
	if entries[0].Path != want {
		t.Errorf("expected path %s, got %s", want, entries[0].Path)
	}
}

func TestListFailures(t *testing.T) {
	tmpDir := t.TempDir()

	// Missing directory
	_, err := List(filepath.Join(tmpDir, "missing"))
	var le *ListError
	if !errors.As(err, &le) {
		t.Errorf("expected ListError for missing dir, got %v", err)
	}

	// A plain file cannot be enumerated
	file := filepath.Join(tmpDir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	_, err = List(file)
	if !errors.As(err, &le) {
		t.Errorf("expected ListError for non-directory, got %v", err)
	}
}
