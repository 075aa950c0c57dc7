package shell

import (
	"bytes"
	"testing"

	"github.com/fsmap/fsmap/limit"
	"github.com/fsmap/fsmap/snapshot"
)

func sampleSystems() *snapshot.FileSystems {
	mounts := snapshot.NewMounts()
	dev := mounts.EnsureDevice(1)
	dev.InsertInode(10, snapshot.FileInfo{Size: 5})
	root := snapshot.NewDirectory(1)
	root.Insert([]byte("a.txt"), snapshot.File(10))
	return &snapshot.FileSystems{Systems: []snapshot.FileSystemEntry{
		{Origin: "snap.bin", FS: &snapshot.FileSystem{Mounts: mounts, Root: root}},
	}}
}

func TestListCommand(t *testing.T) {
	s := New(sampleSystems(), nil)
	var buf bytes.Buffer
	quit, err := s.HandleLine("list %t", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if quit {
		t.Fatal("unexpected quit")
	}
	if buf.String() != "0:/a.txt\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestEmptyExprDefaultsToTrue(t *testing.T) {
	s := New(sampleSystems(), nil)
	var buf bytes.Buffer
	if _, err := s.HandleLine("list", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "0:/a.txt\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestMaxdepthQuery(t *testing.T) {
	s := New(sampleSystems(), nil)
	var buf bytes.Buffer
	if _, err := s.HandleLine("maxdepth?", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "u\n" {
		t.Fatalf("expected unlimited by default, got %q", buf.String())
	}
	buf.Reset()
	if _, err := s.HandleLine("maxdepth 3", &buf); err != nil {
		t.Fatal(err)
	}
	if s.Settings.MaxDepth != 3 {
		t.Fatalf("expected MaxDepth=3, got %d", s.Settings.MaxDepth)
	}
	buf.Reset()
	if _, err := s.HandleLine("maxdepth u", &buf); err != nil {
		t.Fatal(err)
	}
	if s.Settings.MaxDepth != limit.Unlimited {
		t.Fatalf("expected unlimited after 'u', got %d", s.Settings.MaxDepth)
	}
}

func TestUnknownCommand(t *testing.T) {
	s := New(sampleSystems(), nil)
	var buf bytes.Buffer
	if _, err := s.HandleLine("bogus", &buf); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestQuitCommand(t *testing.T) {
	s := New(sampleSystems(), nil)
	var buf bytes.Buffer
	quit, err := s.HandleLine("quit", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if !quit {
		t.Fatal("expected quit=true")
	}
}

func TestDrivesCommand(t *testing.T) {
	s := New(sampleSystems(), nil)
	var buf bytes.Buffer
	if _, err := s.HandleLine("drives", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "0: snap.bin\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestCountsToggle(t *testing.T) {
	s := New(sampleSystems(), nil)
	var buf bytes.Buffer
	if _, err := s.HandleLine("counts", &buf); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if _, err := s.HandleLine("list %t", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "0:/a.txt\n1 entries, 5 bytes\n" {
		t.Fatalf("got %q", buf.String())
	}
}
