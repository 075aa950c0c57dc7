// Package snapshot defines the in-memory representation of a scanned
// directory tree: a mount table of per-device inode records plus an owned
// recursive directory tree. It is the data model produced by package scan,
// persisted by package codec, and replayed by package traverse.
package snapshot

import (
	"golang.org/x/sys/unix"
)

// FileInfo is the per-inode record kept in a Device: size and a coarse,
// minute-resolution timestamp. The minute granularity keeps the on-disk
// footprint small; it is sufficient for the date-level filters the
// predicate language exposes.
type FileInfo struct {
	Size uint64
	// Time is minutes since the POSIX epoch, the max of mtime/atime/ctime
	// truncated by integer division.
	Time int32
}

// OfStat builds a FileInfo from a raw unix.Stat_t, as produced by Lstat/Stat
// during a scan.
func OfStat(st *unix.Stat_t) FileInfo {
	mtime := st.Mtim.Sec
	atime := st.Atim.Sec
	ctime := st.Ctim.Sec
	max := mtime
	if atime > max {
		max = atime
	}
	if ctime > max {
		max = ctime
	}
	return FileInfo{
		Size: uint64(st.Size),
		Time: int32(max / 60),
	}
}

// UnixTime reconstructs a seconds-precision Unix timestamp from the stored
// minute-resolution Time.
func (fi FileInfo) UnixTime() int64 {
	return int64(fi.Time) * 60
}

// Device is a per-device map from inode number to FileInfo. Keys are unique;
// insertion order is irrelevant.
type Device struct {
	inodes map[uint64]FileInfo
}

// NewDevice returns an empty Device.
func NewDevice() *Device {
	return &Device{inodes: make(map[uint64]FileInfo)}
}

// HasInode reports whether ino has already been recorded.
func (d *Device) HasInode(ino uint64) bool {
	_, ok := d.inodes[ino]
	return ok
}

// InsertInode records fi for ino. Existing records are not overwritten by
// callers that check HasInode first, as the scanner does, but InsertInode
// itself does not enforce that; it simply sets the map entry.
func (d *Device) InsertInode(ino uint64, fi FileInfo) {
	d.inodes[ino] = fi
}

// Inode looks up the FileInfo recorded for ino.
func (d *Device) Inode(ino uint64) (FileInfo, bool) {
	fi, ok := d.inodes[ino]
	return fi, ok
}

// Len returns the number of inodes recorded in d.
func (d *Device) Len() int { return len(d.inodes) }

// Each calls f once per recorded inode, in unspecified order. It exists so
// package codec can serialize a Device without exposing its internal map.
func (d *Device) Each(f func(ino uint64, fi FileInfo)) {
	for ino, fi := range d.inodes {
		f(ino, fi)
	}
}

// Mounts maps device-id to Device. Device records are created on first
// encounter during a scan and are never removed.
type Mounts struct {
	devices map[uint64]*Device
}

// NewMounts returns an empty mount table.
func NewMounts() *Mounts {
	return &Mounts{devices: make(map[uint64]*Device)}
}

// EnsureDevice creates a Device record for dev if one does not already
// exist.
func (m *Mounts) EnsureDevice(dev uint64) *Device {
	if d, ok := m.devices[dev]; ok {
		return d
	}
	d := NewDevice()
	m.devices[dev] = d
	return d
}

// Device returns the Device record for dev, or nil if none has been seen.
func (m *Mounts) Device(dev uint64) (*Device, bool) {
	d, ok := m.devices[dev]
	return d, ok
}

// Devices returns the device-ids recorded in m, for codec iteration. Order
// is unspecified.
func (m *Mounts) Devices() []uint64 {
	ids := make([]uint64, 0, len(m.devices))
	for id := range m.devices {
		ids = append(ids, id)
	}
	return ids
}

// EntryKind tags the variant held by an Entry.
type EntryKind int

const (
	// KindDir is a directory owning a nested Directory.
	KindDir EntryKind = iota
	// KindFile is a regular file, referencing an inode in the owning device.
	KindFile
	// KindSymlink is a symbolic link; its target is captured verbatim, never
	// resolved.
	KindSymlink
	// KindOther is anything else with an inode (socket, fifo, device file).
	KindOther
	// KindError is a captured error encountered reading this entry or its
	// subtree.
	KindError
)

// Entry is a tagged variant: exactly one of the fields matching Kind is
// meaningful.
type Entry struct {
	Kind EntryKind

	Dir     *Directory // KindDir
	Ino     uint64     // KindFile, KindOther
	Target  []byte     // KindSymlink: the link target, verbatim
	Message string     // KindError
}

// File returns a KindFile entry for inode ino.
func File(ino uint64) Entry { return Entry{Kind: KindFile, Ino: ino} }

// Symlink returns a KindSymlink entry with the given target.
func Symlink(target []byte) Entry { return Entry{Kind: KindSymlink, Target: target} }

// Other returns a KindOther entry for inode ino.
func Other(ino uint64) Entry { return Entry{Kind: KindOther, Ino: ino} }

// Err returns a KindError entry carrying msg.
func Err(msg string) Entry { return Entry{Kind: KindError, Message: msg} }

// DirEntry returns a KindDir entry owning dir.
func DirEntry(dir *Directory) Entry { return Entry{Kind: KindDir, Dir: dir} }

// NamedEntry is one (name, entry) pair within a Directory, in the order the
// underlying directory read produced it.
type NamedEntry struct {
	Name  []byte
	Entry Entry
}

// Directory is an owning device-id plus an ordered sequence of named
// entries. Directories never share substructure: the Dir variant forms an
// acyclic ownership tree.
type Directory struct {
	Dev     uint64
	Entries []NamedEntry
}

// NewDirectory returns an empty Directory owned by device dev.
func NewDirectory(dev uint64) *Directory {
	return &Directory{Dev: dev}
}

// Insert appends a (name, entry) pair, preserving scan order.
func (d *Directory) Insert(name []byte, entry Entry) {
	d.Entries = append(d.Entries, NamedEntry{Name: name, Entry: entry})
}

// FileSystem is a named root: a mount table plus a root directory.
type FileSystem struct {
	Mounts *Mounts
	Root   *Directory
}

// FileSystemEntry pairs a loaded FileSystem with the name it was loaded
// from (its "origin"), used as the display name in printers.
type FileSystemEntry struct {
	Origin string
	FS     *FileSystem
}

// FileSystems is the ordered collection of loaded snapshots; its index is
// the "drive id" the predicate language's %drive atom compares against.
type FileSystems struct {
	Systems []FileSystemEntry
}

// LoadError pairs the path a snapshot failed to load from with the error
// encountered.
type LoadError struct {
	Path string
	Err  error
}

func (e LoadError) Error() string { return e.Path + ": " + e.Err.Error() }
