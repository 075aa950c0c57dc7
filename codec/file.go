package codec

import (
	"os"

	"github.com/fsmap/fsmap/fsmaplog"
	"github.com/fsmap/fsmap/snapshot"
)

// SaveFile writes fs to path, creating or truncating it.
func SaveFile(path string, fs *snapshot.FileSystem) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Save(f, fs)
}

// LoadFile reads a FileSystem previously written by SaveFile.
func LoadFile(path string) (*snapshot.FileSystem, error) {
	fsmaplog.Info.Printf("loading %s...", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// LoadMultiple loads every path in paths, collecting per-path load failures
// instead of stopping at the first one: one bad snapshot file shouldn't
// keep the rest of a dump/examine invocation from working.
func LoadMultiple(paths []string) (*snapshot.FileSystems, []snapshot.LoadError) {
	var systems snapshot.FileSystems
	var errs []snapshot.LoadError
	for _, p := range paths {
		fs, err := LoadFile(p)
		if err != nil {
			fsmaplog.Error.Printf("error loading %s: %v", p, err)
			errs = append(errs, snapshot.LoadError{Path: p, Err: err})
			continue
		}
		systems.Systems = append(systems.Systems, snapshot.FileSystemEntry{Origin: p, FS: fs})
	}
	return &systems, errs
}
