// Package scan implements the live filesystem walk: Scanner descends a
// directory tree, recording one inode record per (device, inode) pair seen
// and building the recursive snapshot.Directory structure, while reporting
// its progress through a Watcher.
package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/fsmap/fsmap/snapshot"
)

// Watcher is notified as the scanner visits and fails to read paths. It
// plays the same role the examine-side traverse.Observer plays for reading
// a snapshot back, but for the much smaller live-scan event set.
type Watcher interface {
	Notify(path string)
	Error(path string)
}

// NopWatcher implements Watcher by doing nothing; useful for tests and for
// -quiet runs.
type NopWatcher struct{}

func (NopWatcher) Notify(string) {}
func (NopWatcher) Error(string)  {}

// Scanner walks a directory tree, recording inode metadata into a
// snapshot.Mounts and assembling a snapshot.Directory tree.
type Scanner struct {
	watcher    Watcher
	oneDevice  bool
	device     *uint64
}

// New returns a Scanner that reports to watcher. If oneDevice is set, Scan
// refuses to cross into a different device than the one the top-level path
// resolves to, recording an error entry for the mount point instead of
// descending into it.
func New(watcher Watcher, oneDevice bool) *Scanner {
	return &Scanner{watcher: watcher, oneDevice: oneDevice}
}

// Scan walks path, recording inode records into mounts and returning the
// snapshot.Entry rooted at path (a KindDir entry on success, or a KindError
// entry if path itself could not be read).
func (s *Scanner) Scan(mounts *snapshot.Mounts, path string) (snapshot.Entry, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		s.watcher.Error(path)
		return snapshot.Err(err.Error()), nil
	}
	dev := st.Dev
	if s.oneDevice && s.device != nil && *s.device != dev {
		return snapshot.Err(fmt.Sprintf("skip dev %d %s", dev, path)), nil
	}
	d := dev
	s.device = &d

	dd := mounts.EnsureDevice(dev)
	if !dd.HasInode(st.Ino) {
		dd.InsertInode(st.Ino, snapshot.OfStat(&st))
	}

	dir := snapshot.NewDirectory(dev)
	s.watcher.Notify(path)
	entries, err := os.ReadDir(path)
	if err != nil {
		s.watcher.Error(path)
		return snapshot.Err(err.Error()), nil
	}
	for _, de := range entries {
		name := de.Name()
		subPath := filepath.Join(path, name)
		ent, err := s.scanEntry(mounts, subPath)
		if err != nil {
			s.watcher.Error(subPath)
			ent = snapshot.Err(err.Error())
		}
		dir.Insert([]byte(name), ent)
	}
	return snapshot.DirEntry(dir), nil
}

func (s *Scanner) scanEntry(mounts *snapshot.Mounts, subPath string) (snapshot.Entry, error) {
	s.watcher.Notify(subPath)
	var st unix.Stat_t
	if err := unix.Lstat(subPath, &st); err != nil {
		return snapshot.Entry{}, errors.Wrapf(err, "lstat %s", subPath)
	}
	dev := st.Dev
	dd := mounts.EnsureDevice(dev)
	if !dd.HasInode(st.Ino) {
		dd.InsertInode(st.Ino, snapshot.OfStat(&st))
	}

	switch {
	case st.Mode&unix.S_IFMT == unix.S_IFDIR:
		return s.Scan(mounts, subPath)
	case st.Mode&unix.S_IFMT == unix.S_IFREG:
		return snapshot.File(st.Ino), nil
	case st.Mode&unix.S_IFMT == unix.S_IFLNK:
		target, err := os.Readlink(subPath)
		if err != nil {
			return snapshot.Entry{}, errors.Wrapf(err, "readlink %s", subPath)
		}
		return snapshot.Symlink([]byte(target)), nil
	default:
		return snapshot.Other(st.Ino), nil
	}
}

