package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWrittenLog_AddContainsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "written.log")

	l, err := OpenWrittenLog(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if l.Contains("g1") {
		t.Fatal("fresh log should contain nothing")
	}

	if err := l.Add("g1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := l.Add("g2"); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Duplicate adds are no-ops.
	if err := l.Add("g1"); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if !l.Contains("g1") || !l.Contains("g2") || l.Count() != 2 {
		t.Fatalf("count=%d contains g1=%v g2=%v", l.Count(), l.Contains("g1"), l.Contains("g2"))
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopen and confirm the IDs survived, once each.
	l2, err := OpenWrittenLog(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer l2.Close()

	if l2.Count() != 2 || !l2.Contains("g1") || !l2.Contains("g2") {
		t.Fatalf("reloaded count=%d", l2.Count())
	}

	snap := l2.SnapshotBoolMap()
	if len(snap) != 2 || !snap["g1"] || !snap["g2"] {
		t.Fatalf("snapshot=%v", snap)
	}
}

func TestWrittenLog_IgnoresBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "written.log")
	if err := os.WriteFile(path, []byte("g1\n\n  \ng2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := OpenWrittenLog(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer l.Close()

	if l.Count() != 2 {
		t.Fatalf("count=%d want=2", l.Count())
	}
}
