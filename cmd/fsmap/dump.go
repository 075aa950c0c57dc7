package main

import (
	"flag"
	"fmt"

	"github.com/fsmap/fsmap/appinit"
	"github.com/fsmap/fsmap/codec"
	"github.com/fsmap/fsmap/fsmaplog"
	"github.com/fsmap/fsmap/observe"
	"github.com/fsmap/fsmap/predicate"
	"github.com/fsmap/fsmap/traverse"
)

func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	expr := fs.String("expr", "%t", "filter expression")
	gopsFlag := appinit.AddFlags(fs)
	teardown, err := appinit.Init(fs, gopsFlag, args)
	if err != nil {
		return err
	}
	defer teardown()

	pred, err := predicate.Parse(*expr)
	if err != nil {
		return fmt.Errorf("invalid --expr: %w", err)
	}

	paths := expandGlobs(fs.Args())
	systems, errs := codec.LoadMultiple(paths)
	for _, e := range errs {
		fsmaplog.Error.Printf("error loading %s: %v", e.Path, e.Err)
	}

	guard := appinit.NewSigintGuard()
	defer guard.Close()

	printer := observe.NewTreePrinter(observe.IndentSpaces)
	t := traverse.New(guard, systems, pred, printer)
	return t.Run()
}
