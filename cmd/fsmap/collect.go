package main

import (
	"flag"
	"fmt"

	"github.com/fsmap/fsmap/appinit"
	"github.com/fsmap/fsmap/codec"
	"github.com/fsmap/fsmap/scan"
	"github.com/fsmap/fsmap/shutdown"
	"github.com/fsmap/fsmap/snapshot"
)

func runCollect(args []string) error {
	fs := flag.NewFlagSet("collect", flag.ExitOnError)
	out := fs.String("out", "", "output snapshot file")
	oneDevice := fs.Bool("one-device", false, "do not cross device boundaries")
	quiet := fs.Bool("quiet", false, "suppress progress output")
	gopsFlag := appinit.AddFlags(fs)
	teardown, err := appinit.Init(fs, gopsFlag, args)
	if err != nil {
		return err
	}
	defer teardown()

	paths := fs.Args()
	if *out == "" || len(paths) != 1 {
		return fmt.Errorf("usage: fsmap collect --out FILE [--one-device] PATH")
	}

	mounts := snapshot.NewMounts()
	var watcher scan.Watcher
	counter := scan.NewCounter()
	if *quiet {
		watcher = scan.NopWatcher{}
	} else {
		watcher = counter
		shutdown.Register(counter.Finish)
	}

	scanner := scan.New(watcher, *oneDevice)
	ent, err := scanner.Scan(mounts, paths[0])
	if err != nil {
		return err
	}
	if ent.Kind != snapshot.KindDir {
		return fmt.Errorf("%s: not a directory (%s)", paths[0], ent.Message)
	}

	fsys := &snapshot.FileSystem{Mounts: mounts, Root: ent.Dir}
	return codec.SaveFile(*out, fsys)
}
