// Command fsmap captures, persists, and interactively queries snapshots of
// on-disk directory trees.
package main

import (
	"fmt"
	"os"

	"github.com/fsmap/fsmap/fsmaplog"
)

type command struct {
	name string
	run  func(args []string) error
	help string
}

var commands = []command{
	{"collect", runCollect, "scan a directory and save a snapshot"},
	{"dump", runDump, "load snapshots and print matching entries"},
	{"examine", runExamine, "interactively query loaded snapshots"},
	{"help", runHelp, "print this help text"},
	{"help-expr", runHelpExpr, "print the filter expression grammar"},
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: fsmap <command> [args]")
	fmt.Fprintln(os.Stderr, "\nCommands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", c.name, c.help)
	}
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	name := os.Args[1]
	for _, c := range commands {
		if c.name == name {
			if err := c.run(os.Args[2:]); err != nil {
				fsmaplog.Error.Printf("%v", err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	printUsage()
	os.Exit(2)
}
