// Package traverse walks a loaded snapshot in pre-order, testing each entry
// against a filter predicate and reporting matches to an Observer. It plays
// the same role the scanner plays for a live directory tree, but over
// already-loaded snapshot data, and is itself interruptible.
package traverse

import (
	"github.com/fsmap/fsmap/predicate"
	"github.com/fsmap/fsmap/snapshot"
)

// Action tells a Traverser whether to continue descending into an entry's
// subtree (Enter) or stop processing the current directory (Skip).
type Action int

const (
	// Enter continues normal traversal.
	Enter Action = iota
	// Skip, returned from MatchingEntry, stops descending into that entry
	// and stops processing its remaining siblings; returned from EnterFS or
	// EnterDir, it skips that file system or directory.
	Skip
)

// Observer receives traversal events. Every method has a default no-op
// behavior via DefaultObserver, so implementations only override the hooks
// they care about.
type Observer interface {
	EnterFS(i int, fse *snapshot.FileSystemEntry) (Action, error)
	LeaveFS() error
	EnterDir(name []byte) (Action, error)
	LeaveDir() error
	MatchingEntry(fse *snapshot.FileSystemEntry, name []byte, device *snapshot.Device, entry snapshot.Entry, data *predicate.FsData) (Action, error)
	Interrupted() error
	DeviceNotFound(dev uint64) error
}

// DefaultObserver implements Observer with every hook a no-op that continues
// traversal; embed it to override only the hooks that matter.
type DefaultObserver struct{}

func (DefaultObserver) EnterFS(int, *snapshot.FileSystemEntry) (Action, error) { return Enter, nil }
func (DefaultObserver) LeaveFS() error                                        { return nil }
func (DefaultObserver) EnterDir([]byte) (Action, error)                       { return Enter, nil }
func (DefaultObserver) LeaveDir() error                                       { return nil }
func (DefaultObserver) MatchingEntry(*snapshot.FileSystemEntry, []byte, *snapshot.Device, snapshot.Entry, *predicate.FsData) (Action, error) {
	return Enter, nil
}
func (DefaultObserver) Interrupted() error      { return nil }
func (DefaultObserver) DeviceNotFound(uint64) error { return nil }

// Interrupter reports and clears a process-wide interrupt request. It is
// satisfied by package appinit's SigintGuard.
type Interrupter interface {
	Interrupted() bool
}

// Traverser walks one or more loaded file systems in pre-order, evaluating
// pred against each entry and delivering matches to an Observer.
type Traverser struct {
	interrupt Interrupter
	systems   *snapshot.FileSystems
	pred      *predicate.Expr
	observer  Observer

	idrive         int
	current        []byte
	MatchingBytes  uint64
	MatchingEntries int
}

// New builds a Traverser over systems, testing each entry with pred and
// reporting to observer. interrupt may be nil, in which case the traversal
// never checks for interruption.
func New(interrupt Interrupter, systems *snapshot.FileSystems, pred *predicate.Expr, observer Observer) *Traverser {
	return &Traverser{interrupt: interrupt, systems: systems, pred: pred, observer: observer}
}

// Observer returns the wrapped Observer, for callers that need to unwrap a
// decorator chain (e.g. to read accumulated state from a Collector).
func (t *Traverser) Observer() Observer { return t.observer }

// Run walks every file system, calling EnterFS/LeaveFS around each.
func (t *Traverser) Run() error {
	for i := range t.systems.Systems {
		fse := &t.systems.Systems[i]
		action, err := t.observer.EnterFS(i, fse)
		if err != nil {
			return err
		}
		if action == Enter {
			t.idrive = i
			t.current = t.current[:0]
			if err := t.dumpDir(fse, fse.FS.Root); err != nil {
				return err
			}
			if err := t.observer.LeaveFS(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Traverser) dumpDir(fse *snapshot.FileSystemEntry, dir *snapshot.Directory) error {
	device, ok := fse.FS.Mounts.Device(dir.Dev)
	if !ok {
		return t.observer.DeviceNotFound(dir.Dev)
	}
	for _, ne := range dir.Entries {
		if t.interrupt != nil && t.interrupt.Interrupted() {
			if err := t.observer.Interrupted(); err != nil {
				return err
			}
		}
		action, err := t.dumpEntry(fse, ne.Name, device, ne.Entry)
		if err != nil {
			return err
		}
		if action == Skip {
			break
		}
	}
	return nil
}

func (t *Traverser) dumpEntry(fse *snapshot.FileSystemEntry, name []byte, device *snapshot.Device, entry snapshot.Entry) (Action, error) {
	t.current = append(t.current, '/')
	t.current = append(t.current, name...)
	path := string(t.current)

	data := &predicate.FsData{
		Drive: uint64(t.idrive),
		Name:  string(name),
		Path:  path,
	}
	if entry.Kind == snapshot.KindFile {
		if fi, ok := device.Inode(entry.Ino); ok {
			size := fi.Size
			ts := fi.UnixTime()
			data.Size = &size
			data.Timestamp = &ts
		}
	}

	action := Enter
	if t.pred.Test(data) {
		t.MatchingEntries++
		if data.Size != nil {
			t.MatchingBytes += *data.Size
		}
		var err error
		action, err = t.observer.MatchingEntry(fse, name, device, entry, data)
		if err != nil {
			t.current = t.current[:len(t.current)-len(name)-1]
			return action, err
		}
	}
	if action == Enter && entry.Kind == snapshot.KindDir {
		dirAction, err := t.observer.EnterDir(name)
		if err != nil {
			t.current = t.current[:len(t.current)-len(name)-1]
			return action, err
		}
		if dirAction == Enter {
			if err := t.dumpDir(fse, entry.Dir); err != nil {
				t.current = t.current[:len(t.current)-len(name)-1]
				return action, err
			}
			if err := t.observer.LeaveDir(); err != nil {
				t.current = t.current[:len(t.current)-len(name)-1]
				return action, err
			}
		}
	}
	t.current = t.current[:len(t.current)-len(name)-1]
	return action, nil
}
