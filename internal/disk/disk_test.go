package disk

import "testing"

func TestFreeBytes(t *testing.T) {
	free, err := FreeBytes(t.TempDir())
	if err != nil {
		t.Fatalf("FreeBytes failed: %v", err)
	}
	if free < 0 {
		t.Errorf("negative free space: %d", free)
	}
}

func TestFreeBytesMissingPath(t *testing.T) {
	if _, err := FreeBytes("/nonexistent/path/for/test"); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestUsedPercent(t *testing.T) {
	used, err := UsedPercent(t.TempDir())
	if err != nil {
		t.Fatalf("UsedPercent failed: %v", err)
	}
	if used < 0 || used > 100 {
		t.Errorf("used percent out of range: %f", used)
	}
}
