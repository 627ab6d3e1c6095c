package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"repo-sweep/internal/clone"
	"repo-sweep/internal/config"
	"repo-sweep/internal/metrics"
	"repo-sweep/internal/safety"
	"repo-sweep/internal/wipe"
)

func init() {
	// Initialize metrics once for all integration tests
	metrics.Init()
}

// recordingRunner stands in for the external checkout executable and creates
// the destination the way a real clone would
type recordingRunner struct {
	invocations int
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) error {
	r.invocations++
	// Last argument is the destination directory per cloneArgs
	dest := args[len(args)-1]
	if err := os.MkdirAll(filepath.Join(dest, ".git"), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dest, "README.md"), []byte("fresh checkout"), 0644)
}

// TestPrepareSafetyIntegration verifies the complete prepare-then-clone flow
// with a real filesystem: stale content is destroyed, protected content is
// never touched, and the destination ends up holding only the new checkout
func TestPrepareSafetyIntegration(t *testing.T) {
	tmpRoot := t.TempDir()
	allowedDir := filepath.Join(tmpRoot, "allowed")
	protectedDir := filepath.Join(tmpRoot, "protected")

	if err := os.MkdirAll(allowedDir, 0755); err != nil {
		t.Fatalf("Failed to create allowed dir: %v", err)
	}
	if err := os.MkdirAll(protectedDir, 0755); err != nil {
		t.Fatalf("Failed to create protected dir: %v", err)
	}

	// Protected file that must survive everything below
	protectedFile := filepath.Join(protectedDir, "keep.txt")
	if err := os.WriteFile(protectedFile, []byte("MUST KEEP"), 0644); err != nil {
		t.Fatalf("Failed to create protected file: %v", err)
	}

	// Stale destination: a file, a nested dir, and a symlink pointing at
	// the protected file
	dest := filepath.Join(allowedDir, "checkout")
	if err := os.MkdirAll(filepath.Join(dest, "src"), 0755); err != nil {
		t.Fatalf("Failed to create stale dest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dest, "stale.txt"), []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to create stale file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dest, "src", "old.go"), []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to create nested stale file: %v", err)
	}
	if err := os.Symlink(protectedFile, filepath.Join(dest, "link_out")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	cfg := &config.Config{
		AllowedRoots: []string{allowedDir},
		Git: config.GitCfg{
			Binary:         "git",
			TimeoutSeconds: 60,
			Runner:         config.RunnerQuiet,
		},
	}

	t.Run("DryRun_NoFilesystemChanges", func(t *testing.T) {
		cloner := clone.NewCloner(cfg, nil, wipe.NewRemover(wipe.NopSink, true, nil)) // dryRun=true
		if err := cloner.Prepare(context.Background(), dest); err != nil {
			t.Fatalf("dry-run Prepare failed: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dest, "stale.txt")); os.IsNotExist(err) {
			t.Error("DRY-RUN VIOLATION: stale.txt was deleted")
		}
		if _, err := os.Stat(filepath.Join(dest, "src", "old.go")); os.IsNotExist(err) {
			t.Error("DRY-RUN VIOLATION: src/old.go was deleted")
		}
	})

	t.Run("RealMode_SweepThenClone", func(t *testing.T) {
		runner := &recordingRunner{}
		cloner := clone.NewCloner(cfg, nil, wipe.NewRemover(wipe.NopSink, false, nil))
		cloner.SetRunner(runner)

		if err := cloner.Run(context.Background(), "https://github.com/user/repo.git", dest); err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if runner.invocations != 1 {
			t.Errorf("expected exactly 1 checkout invocation, got %d", runner.invocations)
		}
		if _, err := os.Stat(filepath.Join(dest, "stale.txt")); !os.IsNotExist(err) {
			t.Error("stale.txt survived the sweep")
		}
		if _, err := os.Stat(filepath.Join(dest, "README.md")); err != nil {
			t.Errorf("fresh checkout missing: %v", err)
		}
		// The symlink was unlinked, never followed
		if content, err := os.ReadFile(protectedFile); err != nil || string(content) != "MUST KEEP" {
			t.Errorf("SAFETY VIOLATION: protected file touched via symlink: %v", err)
		}
	})

	t.Run("OutsideAllowedRoot_Blocked", func(t *testing.T) {
		cloner := clone.NewCloner(cfg, nil, wipe.NewRemover(wipe.NopSink, false, nil))

		err := cloner.Prepare(context.Background(), protectedDir)
		if !errors.Is(err, safety.ErrOutsideAllowed) {
			t.Fatalf("expected ErrOutsideAllowed, got %v", err)
		}
		if _, err := os.Stat(protectedFile); os.IsNotExist(err) {
			t.Error("CRITICAL SAFETY VIOLATION: file outside allowed root was deleted")
		}
	})

	t.Run("ProtectedPaths_Blocked", func(t *testing.T) {
		protectedPaths := []string{
			"/etc/passwd",
			"/bin/sh",
			"/usr/bin/id",
			"/boot/vmlinuz",
		}

		for _, path := range protectedPaths {
			validator := safety.NewValidator([]string{"/"}, nil)
			err := validator.ValidateTarget(path)
			if err != safety.ErrProtectedPath {
				t.Errorf("SAFETY VIOLATION: protected path %s not blocked (err=%v)", path, err)
			}
		}
	})
}

// TestPrepareIdempotent verifies two consecutive prepares of the same
// destination both succeed and leave the path absent
func TestPrepareIdempotent(t *testing.T) {
	tmpRoot := t.TempDir()
	dest := filepath.Join(tmpRoot, "checkout")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatalf("Failed to create dest: %v", err)
	}

	cfg := &config.Config{
		AllowedRoots: []string{tmpRoot},
		Git:          config.GitCfg{Binary: "git", TimeoutSeconds: 60, Runner: config.RunnerQuiet},
	}
	cloner := clone.NewCloner(cfg, nil, wipe.NewRemover(wipe.NopSink, false, nil))

	if err := cloner.Prepare(context.Background(), dest); err != nil {
		t.Fatalf("first Prepare failed: %v", err)
	}
	if err := cloner.Prepare(context.Background(), dest); err != nil {
		t.Fatalf("second Prepare failed: %v", err)
	}
	if wipe.Exists(dest) {
		t.Error("destination still exists after prepare")
	}
}
