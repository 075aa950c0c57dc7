package limit

import (
	"testing"

	"github.com/fsmap/fsmap/predicate"
	"github.com/fsmap/fsmap/snapshot"
	"github.com/fsmap/fsmap/traverse"
)

type recordingObserver struct {
	traverse.DefaultObserver
	entered int
	matched int
}

func (r *recordingObserver) EnterDir(name []byte) (traverse.Action, error) {
	r.entered++
	return traverse.Enter, nil
}

func (r *recordingObserver) MatchingEntry(fse *snapshot.FileSystemEntry, name []byte, device *snapshot.Device, entry snapshot.Entry, data *predicate.FsData) (traverse.Action, error) {
	r.matched++
	return traverse.Enter, nil
}

func TestMaxDepthZeroSkipsEverything(t *testing.T) {
	rec := &recordingObserver{}
	lim := New(Settings{MaxDepth: 0, MaxBreadth: Unlimited, MaxEntries: Unlimited}, rec)
	action, err := lim.EnterFS(0, &snapshot.FileSystemEntry{})
	if err != nil {
		t.Fatal(err)
	}
	if action != traverse.Skip {
		t.Fatalf("EnterFS with MaxDepth=0 should Skip, got %v", action)
	}
}

func TestMaxBreadthLimitsSiblingDirs(t *testing.T) {
	rec := &recordingObserver{}
	lim := New(Settings{MaxDepth: Unlimited, MaxBreadth: 2, MaxEntries: Unlimited}, rec)
	if _, err := lim.EnterFS(0, &snapshot.FileSystemEntry{}); err != nil {
		t.Fatal(err)
	}
	// MaxBreadth=2 allows exactly two EnterDir calls before the cap engages.
	action, err := lim.EnterDir([]byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	if action != traverse.Enter {
		t.Fatalf("first EnterDir should enter, got %v", action)
	}
	if err := lim.LeaveDir(); err != nil {
		t.Fatal(err)
	}
	action, err = lim.EnterDir([]byte("b"))
	if err != nil {
		t.Fatal(err)
	}
	if action != traverse.Enter {
		t.Fatalf("second EnterDir should still enter (exactly k=2 allowed), got %v", action)
	}
	if err := lim.LeaveDir(); err != nil {
		t.Fatal(err)
	}
	action, err = lim.EnterDir([]byte("c"))
	if err != nil {
		t.Fatal(err)
	}
	if action != traverse.Skip {
		t.Fatalf("third sibling EnterDir should Skip once breadth cap reached, got %v", action)
	}
}

func TestMaxEntriesLimitsMatches(t *testing.T) {
	rec := &recordingObserver{}
	lim := New(Settings{MaxDepth: Unlimited, MaxBreadth: Unlimited, MaxEntries: 1}, rec)
	if _, err := lim.EnterFS(0, &snapshot.FileSystemEntry{}); err != nil {
		t.Fatal(err)
	}
	action, err := lim.MatchingEntry(&snapshot.FileSystemEntry{}, []byte("a"), nil, snapshot.Entry{}, &predicate.FsData{})
	if err != nil {
		t.Fatal(err)
	}
	if action != traverse.Enter {
		t.Fatalf("MaxEntries=1 should allow exactly the first match, got %v", action)
	}
	action, err = lim.MatchingEntry(&snapshot.FileSystemEntry{}, []byte("b"), nil, snapshot.Entry{}, &predicate.FsData{})
	if err != nil {
		t.Fatal(err)
	}
	if action != traverse.Skip {
		t.Fatalf("second match should Skip once the entries cap is reached, got %v", action)
	}
}
