package main

import (
	"fmt"

	"github.com/fsmap/fsmap/shell"
)

func runHelp(args []string) error {
	fmt.Print(topLevelHelpText)
	return nil
}

func runHelpExpr(args []string) error {
	fmt.Print(shell.ExprHelpText)
	return nil
}

const topLevelHelpText = `fsmap: capture and query filesystem snapshots

collect --out FILE [--one-device] PATH
    scan PATH and write a snapshot to FILE

dump [--expr E] FILE...
    load one or more snapshots and print entries matching E (default %t)
    as an indented tree

examine [--no-history] FILE...
    load one or more snapshots and enter an interactive query shell;
    run "help" inside the shell for its command grammar

help
    this text

help-expr
    the filter expression grammar

collect, dump and examine accept -log (off, error, info, debug) and -gops
(enable the gops diagnostics listener); FSMAP_LOG and GOPS set the same
from the environment.
`
