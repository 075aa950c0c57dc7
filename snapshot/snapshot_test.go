package snapshot

import "testing"

func TestDeviceInsertAndLookup(t *testing.T) {
	d := NewDevice()
	if d.HasInode(1) {
		t.Fatal("empty device should not have inode 1")
	}
	d.InsertInode(1, FileInfo{Size: 100, Time: 42})
	if !d.HasInode(1) {
		t.Fatal("expected inode 1 to be recorded")
	}
	fi, ok := d.Inode(1)
	if !ok || fi.Size != 100 || fi.Time != 42 {
		t.Fatalf("Inode(1) = %+v, %v", fi, ok)
	}
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
}

func TestDeviceEachVisitsAllInodes(t *testing.T) {
	d := NewDevice()
	want := map[uint64]FileInfo{
		1: {Size: 10, Time: 1},
		2: {Size: 20, Time: 2},
		3: {Size: 30, Time: 3},
	}
	for ino, fi := range want {
		d.InsertInode(ino, fi)
	}
	got := make(map[uint64]FileInfo)
	d.Each(func(ino uint64, fi FileInfo) { got[ino] = fi })
	if len(got) != len(want) {
		t.Fatalf("Each visited %d inodes, want %d", len(got), len(want))
	}
	for ino, fi := range want {
		if got[ino] != fi {
			t.Errorf("inode %d = %+v, want %+v", ino, got[ino], fi)
		}
	}
}

func TestFileInfoUnixTime(t *testing.T) {
	fi := FileInfo{Time: 5}
	if got := fi.UnixTime(); got != 300 {
		t.Fatalf("UnixTime() = %d, want 300", got)
	}
}

func TestMountsEnsureDeviceIsIdempotent(t *testing.T) {
	m := NewMounts()
	d1 := m.EnsureDevice(7)
	d2 := m.EnsureDevice(7)
	if d1 != d2 {
		t.Fatal("EnsureDevice should return the same Device for the same dev id")
	}
	if _, ok := m.Device(8); ok {
		t.Fatal("Device(8) should not be found before EnsureDevice(8)")
	}
	devs := m.Devices()
	if len(devs) != 1 || devs[0] != 7 {
		t.Fatalf("Devices() = %v, want [7]", devs)
	}
}

func TestDirectoryInsertPreservesOrder(t *testing.T) {
	dir := NewDirectory(1)
	dir.Insert([]byte("b"), File(1))
	dir.Insert([]byte("a"), File(2))
	if len(dir.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(dir.Entries))
	}
	if string(dir.Entries[0].Name) != "b" || string(dir.Entries[1].Name) != "a" {
		t.Fatal("Insert should preserve scan order, not sort")
	}
}

func TestLoadErrorMessage(t *testing.T) {
	le := LoadError{Path: "snap.bin", Err: errString("bad magic")}
	if le.Error() != "snap.bin: bad magic" {
		t.Fatalf("Error() = %q", le.Error())
	}
}

type errString string

func (e errString) Error() string { return string(e) }
