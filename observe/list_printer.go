// Package observe implements the traverse.Observer printers and collectors
// used by the dump and examine commands: ListPrinter (one line per match),
// TreePrinter (an indented tree with directory headers), and Collector
// (accumulates matches for programmatic use).
package observe

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fsmap/fsmap/predicate"
	"github.com/fsmap/fsmap/snapshot"
	"github.com/fsmap/fsmap/traverse"
)

// ListPrinter prints one line per matching entry: "drive:path" in short
// mode, with a trailing size/date/target/kind annotation in long mode.
type ListPrinter struct {
	traverse.DefaultObserver
	w    io.Writer
	long bool
}

// NewListPrinter returns a ListPrinter writing to os.Stdout.
func NewListPrinter(long bool) *ListPrinter {
	return &ListPrinter{w: os.Stdout, long: long}
}

// MatchingEntry implements traverse.Observer.
func (p *ListPrinter) MatchingEntry(fse *snapshot.FileSystemEntry, name []byte, device *snapshot.Device, entry snapshot.Entry, data *predicate.FsData) (traverse.Action, error) {
	fmt.Fprintf(p.w, "%d:%s", data.Drive, data.Path)
	if p.long {
		switch entry.Kind {
		case snapshot.KindDir:
			fmt.Fprint(p.w, "/")
		case snapshot.KindFile:
			if fi, ok := device.Inode(entry.Ino); ok {
				t := time.Unix(fi.UnixTime(), 0).UTC()
				fmt.Fprintf(p.w, " %d %04d-%02d-%02d", fi.Size, t.Year(), t.Month(), t.Day())
			} else {
				fmt.Fprintf(p.w, " NO-INODE %d", entry.Ino)
			}
		case snapshot.KindSymlink:
			fmt.Fprintf(p.w, " -> %s", string(entry.Target))
		case snapshot.KindOther:
			fmt.Fprintf(p.w, " OTHER %d", entry.Ino)
		case snapshot.KindError:
			fmt.Fprintf(p.w, " ERROR %s", entry.Message)
		}
	}
	fmt.Fprintln(p.w)
	return traverse.Enter, nil
}
