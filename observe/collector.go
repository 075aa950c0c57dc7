package observe

import (
	"fmt"
	"io"

	"github.com/fsmap/fsmap/predicate"
	"github.com/fsmap/fsmap/snapshot"
	"github.com/fsmap/fsmap/traverse"
)

// Collector accumulates every matching entry's projected data instead of
// printing it, so a caller (a test, for example) can post-process the full
// result set.
type Collector struct {
	traverse.DefaultObserver
	Results []predicate.FsData
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// MatchingEntry implements traverse.Observer.
func (c *Collector) MatchingEntry(fse *snapshot.FileSystemEntry, name []byte, device *snapshot.Device, entry snapshot.Entry, data *predicate.FsData) (traverse.Action, error) {
	c.Results = append(c.Results, *data)
	return traverse.Enter, nil
}

// Print writes one "drive:path name" line per collected result, in the
// order they were collected.
func (c *Collector) Print(w io.Writer) {
	for _, d := range c.Results {
		fmt.Fprintf(w, "%d:%s %s\n", d.Drive, d.Path, d.Name)
	}
}
