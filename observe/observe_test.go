package observe

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fsmap/fsmap/predicate"
	"github.com/fsmap/fsmap/snapshot"
	"github.com/fsmap/fsmap/traverse"
)

func TestListPrinterShortMode(t *testing.T) {
	var buf bytes.Buffer
	p := &ListPrinter{w: &buf, long: false}
	data := &predicate.FsData{Drive: 0, Name: "a.txt", Path: "/a.txt"}
	if _, err := p.MatchingEntry(&snapshot.FileSystemEntry{}, []byte("a.txt"), snapshot.NewDevice(), snapshot.File(1), data); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "0:/a.txt\n" {
		t.Fatalf("got %q", got)
	}
}

func TestListPrinterLongModeFile(t *testing.T) {
	var buf bytes.Buffer
	p := &ListPrinter{w: &buf, long: true}
	dev := snapshot.NewDevice()
	dev.InsertInode(1, snapshot.FileInfo{Size: 42, Time: 0})
	data := &predicate.FsData{Drive: 0, Name: "a.txt", Path: "/a.txt"}
	if _, err := p.MatchingEntry(&snapshot.FileSystemEntry{}, []byte("a.txt"), dev, snapshot.File(1), data); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "42") {
		t.Fatalf("expected size in output, got %q", buf.String())
	}
}

func TestTreePrinterDrvHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	p := &TreePrinter{w: &buf, indentMode: IndentSpaces}
	fse := &snapshot.FileSystemEntry{Origin: "snap.bin"}
	if _, err := p.EnterFS(0, fse); err != nil {
		t.Fatal(err)
	}
	if _, err := p.EnterFS(0, fse); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "DRV"); got != 1 {
		t.Fatalf("expected one DRV header for repeated EnterFS(0), got %d in %q", got, buf.String())
	}
}

func TestTreePrinterDoesNotRepeatSameDir(t *testing.T) {
	var buf bytes.Buffer
	p := &TreePrinter{w: &buf, indentMode: IndentSpaces}
	fse := &snapshot.FileSystemEntry{Origin: "snap.bin"}
	if _, err := p.EnterFS(0, fse); err != nil {
		t.Fatal(err)
	}
	if _, err := p.EnterDir([]byte("sub")); err != nil {
		t.Fatal(err)
	}
	dev := snapshot.NewDevice()
	data1 := &predicate.FsData{Name: "a", Path: "/sub/a"}
	data2 := &predicate.FsData{Name: "b", Path: "/sub/b"}
	if _, err := p.MatchingEntry(fse, []byte("a"), dev, snapshot.File(1), data1); err != nil {
		t.Fatal(err)
	}
	if _, err := p.MatchingEntry(fse, []byte("b"), dev, snapshot.File(2), data2); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "sub/"); got != 1 {
		t.Fatalf("expected \"sub/\" header exactly once, got %d in %q", got, buf.String())
	}
}

func TestCollectorAccumulates(t *testing.T) {
	c := NewCollector()
	data := &predicate.FsData{Drive: 0, Name: "a", Path: "/a"}
	if _, err := c.MatchingEntry(&snapshot.FileSystemEntry{}, []byte("a"), snapshot.NewDevice(), snapshot.File(1), data); err != nil {
		t.Fatal(err)
	}
	if len(c.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(c.Results))
	}
	var buf bytes.Buffer
	c.Print(&buf)
	if buf.String() != "0:/a a\n" {
		t.Fatalf("got %q", buf.String())
	}
}

var _ traverse.Observer = (*ListPrinter)(nil)
var _ traverse.Observer = (*TreePrinter)(nil)
var _ traverse.Observer = (*Collector)(nil)
