// Package shell implements the examine command's interactive grammar: a
// small set of query and limit-setting commands evaluated against the
// snapshots an examine session has loaded. The line-reading driver lives in
// driver.go; this file is the command language itself, usable independently
// of any particular input source (tests drive it directly).
package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fsmap/fsmap/limit"
	"github.com/fsmap/fsmap/observe"
	"github.com/fsmap/fsmap/predicate"
	"github.com/fsmap/fsmap/snapshot"
	"github.com/fsmap/fsmap/traverse"
)

// Shell holds one examine session's state: the loaded snapshots, the
// current depth/breadth/entry caps, and whether a run prints its match
// counts afterward.
type Shell struct {
	Systems    *snapshot.FileSystems
	Interrupt  traverse.Interrupter
	Settings   limit.Settings
	ShowCounts bool
}

// New returns a Shell over the given loaded snapshots, with every limit
// unlimited and counts off, matching a freshly started examine session.
func New(systems *snapshot.FileSystems, interrupt traverse.Interrupter) *Shell {
	return &Shell{Systems: systems, Interrupt: interrupt, Settings: limit.DefaultSettings()}
}

// HandleLine processes one input line, writing any command output to out.
// It returns quit=true for the "quit" command; any other error is a
// command-level error the driver should print and continue past, not treat
// as fatal.
func (s *Shell) HandleLine(line string, out io.Writer) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	cmd, rest := splitCommand(line)
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "list", "ls":
		return false, s.runQuery(rest, observe.NewListPrinter(false), out)
	case "longlist", "ll":
		return false, s.runQuery(rest, observe.NewListPrinter(true), out)
	case "tree", "tr":
		return false, s.runQuery(rest, observe.NewTreePrinter(observe.IndentSpaces), out)
	case "ntree", "ntr":
		return false, s.runQuery(rest, observe.NewTreePrinter(observe.IndentNumbered), out)
	case "maxdepth", "maxd":
		return false, s.setLimit(&s.Settings.MaxDepth, rest)
	case "maxbreadth", "maxb":
		return false, s.setLimit(&s.Settings.MaxBreadth, rest)
	case "maxent", "maxe":
		return false, s.setLimit(&s.Settings.MaxEntries, rest)
	case "maxdepth?":
		fmt.Fprintln(out, formatLimit(s.Settings.MaxDepth))
		return false, nil
	case "maxbreadth?":
		fmt.Fprintln(out, formatLimit(s.Settings.MaxBreadth))
		return false, nil
	case "maxent?":
		fmt.Fprintln(out, formatLimit(s.Settings.MaxEntries))
		return false, nil
	case "counts":
		s.ShowCounts = true
		return false, nil
	case "nocounts":
		s.ShowCounts = false
		return false, nil
	case "drives":
		for i, fse := range s.Systems.Systems {
			fmt.Fprintf(out, "%d: %s\n", i, fse.Origin)
		}
		return false, nil
	case "help":
		fmt.Fprint(out, CommandHelpText)
		return false, nil
	case "help-expr":
		fmt.Fprint(out, ExprHelpText)
		return false, nil
	case "quit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}
}

func (s *Shell) runQuery(expr string, observer traverse.Observer, out io.Writer) error {
	if expr == "" {
		expr = "%t"
	}
	pred, err := predicate.Parse(expr)
	if err != nil {
		return err
	}
	lim := limit.New(s.Settings, observer)
	t := traverse.New(s.Interrupt, s.Systems, pred, lim)
	if err := t.Run(); err != nil {
		return err
	}
	if s.ShowCounts {
		fmt.Fprintf(out, "%d entries, %d bytes\n", t.MatchingEntries, t.MatchingBytes)
	}
	return nil
}

func (s *Shell) setLimit(field *int64, rest string) error {
	if rest == "u" {
		*field = limit.Unlimited
		return nil
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return fmt.Errorf("expected a number or 'u': %v", err)
	}
	if n < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	*field = n
	return nil
}

func formatLimit(v int64) string {
	if v == limit.Unlimited {
		return "u"
	}
	return strconv.FormatInt(v, 10)
}

func splitCommand(line string) (cmd, rest string) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i+1:]
}
