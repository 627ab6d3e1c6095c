package fsops

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil error", nil, KindNone},
		{"raw ENOENT", syscall.ENOENT, KindNotFound},
		{"wrapped ENOENT", &fs.PathError{Op: "remove", Path: "/x", Err: syscall.ENOENT}, KindNotFound},
		{"raw EACCES", syscall.EACCES, KindPermission},
		{"wrapped EACCES", &fs.PathError{Op: "remove", Path: "/x", Err: syscall.EACCES}, KindPermission},
		{"EPERM", &fs.PathError{Op: "remove", Path: "/x", Err: syscall.EPERM}, KindPermission},
		{"EBUSY", &fs.PathError{Op: "remove", Path: "/x", Err: syscall.EBUSY}, KindOther},
		{"plain error", errors.New("boom"), KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyRealSyscall(t *testing.T) {
	// A Remove on a path that does not exist must classify as not_found
	err := os.Remove("/definitely/not/a/real/path/for/this/test")
	if got := Classify(err); got != KindNotFound {
		t.Errorf("expected not_found for missing path, got %v", got)
	}
}

func TestFakeDeleterInjection(t *testing.T) {
	fake := &FakeDeleter{
		RemoveErrs: map[string]error{"/a": syscall.EACCES},
	}

	if err := fake.Remove("/a"); !errors.Is(err, syscall.EACCES) {
		t.Errorf("expected injected EACCES, got %v", err)
	}
	if err := fake.Remove("/b"); err != nil {
		t.Errorf("expected nil for uninjected path, got %v", err)
	}
	if err := fake.RemoveAll("/a"); err != nil {
		t.Errorf("expected nil RemoveAll with no injection, got %v", err)
	}

	want := []string{"rm:/a", "rm:/b", "rmall:/a"}
	if len(fake.Calls) != len(want) {
		t.Fatalf("expected %d calls, got %d: %v", len(want), len(fake.Calls), fake.Calls)
	}
	for i, c := range want {
		if fake.Calls[i] != c {
			t.Errorf("call %d: expected %s, got %s", i, c, fake.Calls[i])
		}
	}
}
