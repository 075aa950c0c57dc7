package main

import (
	"flag"
	"os"

	"github.com/fsmap/fsmap/appinit"
	"github.com/fsmap/fsmap/codec"
	"github.com/fsmap/fsmap/fsmaplog"
	"github.com/fsmap/fsmap/shell"
)

func runExamine(args []string) error {
	fs := flag.NewFlagSet("examine", flag.ExitOnError)
	noHistory := fs.Bool("no-history", false, "do not load or save ~/.fsmap-hist")
	gopsFlag := appinit.AddFlags(fs)
	teardown, err := appinit.Init(fs, gopsFlag, args)
	if err != nil {
		return err
	}
	defer teardown()

	fsmaplog.Info.Print("loading inputs")
	paths := expandGlobs(fs.Args())
	systems, errs := codec.LoadMultiple(paths)
	for _, e := range errs {
		fsmaplog.Error.Printf("error loading %s: %v", e.Path, e.Err)
	}

	guard := appinit.NewSigintGuard()
	defer guard.Close()

	sh := shell.New(systems, guard)
	driver := shell.NewDriver(sh, os.Stdin, os.Stdout, !*noHistory)
	return driver.Run()
}
