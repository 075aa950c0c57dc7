// Package limit implements a traversal depth/breadth/entry-count cap as a
// decorator over a traverse.Observer, so any printer or collector can be
// bounded without knowing about limits itself.
package limit

import (
	"math"

	"github.com/fsmap/fsmap/predicate"
	"github.com/fsmap/fsmap/snapshot"
	"github.com/fsmap/fsmap/traverse"
)

// Unlimited marks a Settings field as having no cap.
const Unlimited = math.MaxInt64

// DirSkipNotifier is an optional extension an Observer can implement to
// learn when the Limiter suppressed descent into a directory that the
// traverser otherwise would have entered, so it can render a placeholder
// (TreePrinter prints "...") rather than silently omitting the subtree.
type DirSkipNotifier interface {
	SkippedDir(name []byte)
}

// Settings bounds a traversal. The zero value admits nothing (use Unlimited,
// not 0, for "no limit": a MaxDepth of 0 skips every file system entirely,
// matching the examine shell's "maxdepth 0" behavior).
type Settings struct {
	MaxDepth   int64
	MaxBreadth int64
	MaxEntries int64
}

// DefaultSettings returns a Settings with every field unlimited.
func DefaultSettings() Settings {
	return Settings{MaxDepth: Unlimited, MaxBreadth: Unlimited, MaxEntries: Unlimited}
}

type dirState struct {
	breadth int64
	entries int64
}

// Limiter wraps an inner Observer, suppressing EnterFS/EnterDir/MatchingEntry
// once a configured cap is reached. Caps are tracked per directory level via
// a stack that mirrors the traverser's own recursion.
type Limiter struct {
	settings Settings
	stack    []dirState
	inner    traverse.Observer
}

// New returns a Limiter applying settings in front of inner.
func New(settings Settings, inner traverse.Observer) *Limiter {
	return &Limiter{settings: settings, inner: inner}
}

// Inner returns the wrapped Observer.
func (l *Limiter) Inner() traverse.Observer { return l.inner }

func (l *Limiter) EnterFS(i int, fse *snapshot.FileSystemEntry) (traverse.Action, error) {
	n := int64(len(l.stack))
	if n+1 < l.settings.MaxDepth {
		l.stack = l.stack[:0]
		l.stack = append(l.stack, dirState{})
		return l.inner.EnterFS(i, fse)
	}
	return traverse.Skip, nil
}

func (l *Limiter) LeaveFS() error {
	if err := l.inner.LeaveFS(); err != nil {
		return err
	}
	l.popStack()
	return nil
}

func (l *Limiter) EnterDir(name []byte) (traverse.Action, error) {
	n := int64(len(l.stack))
	if n == 0 {
		return traverse.Skip, nil
	}
	state := &l.stack[n-1]
	if state.breadth < l.settings.MaxBreadth && n+1 < l.settings.MaxDepth {
		state.breadth++
		l.stack = append(l.stack, dirState{})
		action, err := l.inner.EnterDir(name)
		if err != nil {
			return traverse.Enter, err
		}
		if action == traverse.Skip {
			if err := l.LeaveDir(); err != nil {
				return traverse.Skip, err
			}
			return traverse.Skip, nil
		}
		return traverse.Enter, nil
	}
	if notifier, ok := l.inner.(DirSkipNotifier); ok {
		notifier.SkippedDir(name)
	}
	return traverse.Skip, nil
}

func (l *Limiter) LeaveDir() error {
	if err := l.inner.LeaveDir(); err != nil {
		return err
	}
	l.popStack()
	return nil
}

func (l *Limiter) MatchingEntry(fse *snapshot.FileSystemEntry, name []byte, device *snapshot.Device, entry snapshot.Entry, data *predicate.FsData) (traverse.Action, error) {
	n := int64(len(l.stack))
	if n == 0 {
		return traverse.Skip, nil
	}
	state := &l.stack[n-1]
	if state.entries < l.settings.MaxEntries {
		state.entries++
		return l.inner.MatchingEntry(fse, name, device, entry, data)
	}
	return traverse.Skip, nil
}

func (l *Limiter) Interrupted() error { return l.inner.Interrupted() }

func (l *Limiter) DeviceNotFound(dev uint64) error { return l.inner.DeviceNotFound(dev) }

func (l *Limiter) popStack() {
	if n := len(l.stack); n > 0 {
		l.stack = l.stack[:n-1]
	}
}
