package database

import "testing"

func TestOpen_BadPath(t *testing.T) {
	// A directory is not a valid sqlite file; Open must fail cleanly.
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("Open() on a directory path succeeded, want error")
	}
}
