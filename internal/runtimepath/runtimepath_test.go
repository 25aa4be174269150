package runtimepath

import (
	"path/filepath"
	"testing"
)

func TestDir_PrefersXDGRuntimeDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", tmp)

	dir, err := Dir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != tmp {
		t.Fatalf("expected %s, got %s", tmp, dir)
	}
}

func TestSocketPath(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", tmp)

	path, err := SocketPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(tmp, "snapdeck.sock") {
		t.Fatalf("unexpected socket path: %s", path)
	}
}
