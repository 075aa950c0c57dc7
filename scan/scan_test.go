package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsmap/fsmap/snapshot"
)

type recordingWatcher struct {
	notified []string
	errored  []string
}

func (w *recordingWatcher) Notify(path string) { w.notified = append(w.notified, path) }
func (w *recordingWatcher) Error(path string)  { w.errored = append(w.errored, path) }

func TestScanBasicTree(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("world"), 0644); err != nil {
		t.Fatal(err)
	}

	w := &recordingWatcher{}
	s := New(w, false)
	mounts := snapshot.NewMounts()
	ent, err := s.Scan(mounts, root)
	if err != nil {
		t.Fatal(err)
	}
	if ent.Kind != snapshot.KindDir {
		t.Fatalf("expected KindDir, got %v", ent.Kind)
	}
	if len(ent.Dir.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ent.Dir.Entries))
	}
	var sawFile, sawDir bool
	for _, ne := range ent.Dir.Entries {
		switch string(ne.Name) {
		case "a.txt":
			sawFile = ne.Entry.Kind == snapshot.KindFile
		case "sub":
			sawDir = ne.Entry.Kind == snapshot.KindDir
		}
	}
	if !sawFile || !sawDir {
		t.Fatalf("expected a file entry and a dir entry, got %+v", ent.Dir.Entries)
	}
	if len(w.notified) == 0 {
		t.Fatalf("expected Notify to be called")
	}
}

func TestScanMissingPath(t *testing.T) {
	w := &recordingWatcher{}
	s := New(w, false)
	mounts := snapshot.NewMounts()
	ent, err := s.Scan(mounts, "/nonexistent/does/not/exist")
	if err != nil {
		t.Fatal(err)
	}
	if ent.Kind != snapshot.KindError {
		t.Fatalf("expected KindError, got %v", ent.Kind)
	}
	if len(w.errored) == 0 {
		t.Fatalf("expected Error to be called")
	}
}
