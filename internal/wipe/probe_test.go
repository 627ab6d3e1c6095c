package wipe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	file := filepath.Join(tmpDir, "present.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !Exists(tmpDir) {
		t.Error("expected directory to exist")
	}
	if !Exists(file) {
		t.Error("expected file to exist")
	}
	if Exists(filepath.Join(tmpDir, "missing")) {
		t.Error("expected missing path to probe false")
	}
}

func TestExistsFollowsSymlinks(t *testing.T) {
	tmpDir := t.TempDir()

	target := filepath.Join(tmpDir, "target.txt")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create target: %v", err)
	}

	good := filepath.Join(tmpDir, "good-link")
	if err := os.Symlink(target, good); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}
	if !Exists(good) {
		t.Error("expected symlink to existing target to probe true")
	}

	// A broken link resolves to nothing; the probe degrades to false
	broken := filepath.Join(tmpDir, "broken-link")
	if err := os.Symlink(filepath.Join(tmpDir, "gone"), broken); err != nil {
		t.Fatalf("Failed to create broken symlink: %v", err)
	}
	if Exists(broken) {
		t.Error("expected broken symlink to probe false")
	}
}
