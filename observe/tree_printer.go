package observe

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fsmap/fsmap/fsmaplog"
	"github.com/fsmap/fsmap/predicate"
	"github.com/fsmap/fsmap/snapshot"
	"github.com/fsmap/fsmap/traverse"
)

// TreePrinter prints an indented tree of matching entries, grouped under a
// "DRV <origin>" header whenever the active file system changes, and under
// directory headers printed only for the path components not already shown
// by the previous entry (so a deep run of siblings doesn't repeat its
// parent directories on every line).
type TreePrinter struct {
	w          io.Writer
	indentMode IndentMode

	dir         []string
	lastDir     []string
	idriveShown *int
}

// NewTreePrinter returns a TreePrinter writing to os.Stdout with the given
// indentation style.
func NewTreePrinter(mode IndentMode) *TreePrinter {
	return &TreePrinter{w: os.Stdout, indentMode: mode}
}

// EnterFS implements traverse.Observer: prints a DRV header on a drive
// change and resets the directory-path diffing state for the new tree.
func (p *TreePrinter) EnterFS(i int, fse *snapshot.FileSystemEntry) (traverse.Action, error) {
	if p.idriveShown == nil || *p.idriveShown != i {
		fmt.Fprintf(p.w, "DRV %s\n", fse.Origin)
		shown := i
		p.idriveShown = &shown
	}
	p.dir = p.dir[:0]
	p.lastDir = p.lastDir[:0]
	return traverse.Enter, nil
}

func (p *TreePrinter) LeaveFS() error { return nil }

// EnterDir implements traverse.Observer, tracking the current directory
// path for diffing against the last one printed.
func (p *TreePrinter) EnterDir(name []byte) (traverse.Action, error) {
	p.dir = append(p.dir, string(name))
	return traverse.Enter, nil
}

func (p *TreePrinter) LeaveDir() error {
	if n := len(p.dir); n > 0 {
		p.dir = p.dir[:n-1]
	}
	return nil
}

// Interrupted implements traverse.Observer: a tree print that sees an
// interrupt stops rather than producing a partial, inconsistent tree.
func (p *TreePrinter) Interrupted() error { return fmt.Errorf("interrupted") }

// DeviceNotFound implements traverse.Observer.
func (p *TreePrinter) DeviceNotFound(dev uint64) error {
	fsmaplog.Error.Printf("cannot find device %d", dev)
	return nil
}

// SkippedDir implements limit.DirSkipNotifier: prints a "..." placeholder
// for a directory the Limiter suppressed, so a capped tree shows that
// something was cut off rather than looking like a naturally shallow tree.
func (p *TreePrinter) SkippedDir(name []byte) {
	p.showDir()
	fmt.Fprintf(p.w, "%-21s ", "")
	p.indentMode.Put(p.w, len(p.dir)+1)
	fmt.Fprintln(p.w, string(name)+"/...")
}

func (p *TreePrinter) showDir() {
	m1, m2 := len(p.lastDir), len(p.dir)
	matchSoFar := true
	for i := 0; i < m2; i++ {
		if matchSoFar {
			matchSoFar = i < m1 && p.lastDir[i] == p.dir[i]
		}
		if !matchSoFar {
			fmt.Fprintf(p.w, "%-21s ", "")
			p.indentMode.Put(p.w, i)
			fmt.Fprintf(p.w, "%s/\n", p.dir[i])
		}
	}
	if !matchSoFar {
		p.lastDir = append([]string(nil), p.dir...)
	}
}

// MatchingEntry implements traverse.Observer: prints any newly-entered
// directory headers, then the entry itself at the current depth.
func (p *TreePrinter) MatchingEntry(fse *snapshot.FileSystemEntry, name []byte, device *snapshot.Device, entry snapshot.Entry, data *predicate.FsData) (traverse.Action, error) {
	p.showDir()
	depth := len(p.dir)
	switch entry.Kind {
	case snapshot.KindDir:
		fmt.Fprintf(p.w, "%-21s ", "DIR")
		p.indentMode.Put(p.w, depth)
		fmt.Fprintln(p.w, data.Name)
	case snapshot.KindFile:
		if fi, ok := device.Inode(entry.Ino); ok {
			t := time.Unix(fi.UnixTime(), 0).UTC()
			fmt.Fprintf(p.w, "%-10d %04d-%02d-%02d ", fi.Size, t.Year(), t.Month(), t.Day())
		} else {
			fmt.Fprintf(p.w, "%-21s ", "NO-INODE")
		}
		p.indentMode.Put(p.w, depth)
		fmt.Fprintln(p.w, data.Name)
	case snapshot.KindSymlink:
		fmt.Fprintf(p.w, "%-21s ", "SYML")
		p.indentMode.Put(p.w, depth)
		fmt.Fprintf(p.w, "%s -> %s\n", data.Name, string(entry.Target))
	case snapshot.KindOther:
		fmt.Fprintf(p.w, "%-21s ", "OTHER")
		p.indentMode.Put(p.w, depth)
		fmt.Fprintf(p.w, "%s ino %d\n", data.Name, entry.Ino)
	case snapshot.KindError:
		fmt.Fprintf(p.w, "%-21s ", "ERROR")
		p.indentMode.Put(p.w, depth)
		fmt.Fprintf(p.w, "%s : %s\n", data.Name, entry.Message)
	}
	return traverse.Enter, nil
}
