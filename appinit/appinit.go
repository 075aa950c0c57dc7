// Package appinit performs process-wide bootstrap for an fsmap subcommand:
// it wires up the -log level flag, an optional gops diagnostics listener,
// and the interrupt guard used to make traversal and scanning responsive to
// Ctrl-C. It plays the same role as the teacher's grail.Init, trimmed to
// what a standalone CLI tool needs (no config profiles, no RPC logging
// backend).
package appinit

import (
	"flag"
	"os"

	"github.com/google/gops/agent"

	"github.com/fsmap/fsmap/fsmaplog"
	"github.com/fsmap/fsmap/shutdown"
)

// Shutdown performs final process cleanup; call it (typically via defer)
// before the process exits.
type Shutdown func()

// AddFlags registers the flags Init consults: -log and -gops.
func AddFlags(fs *flag.FlagSet) *bool {
	fsmaplog.AddFlags(fs)
	return fs.Bool("gops", false, "enable the gops diagnostics listener")
}

// Init parses fs against args, applies FSMAP_LOG if -log was not given
// explicitly, and starts the gops agent if requested by *gopsFlag (as
// returned by AddFlags) or by the GOPS environment variable. It returns a
// Shutdown to defer.
func Init(fs *flag.FlagSet, gopsFlag *bool, args []string) (Shutdown, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if !flagWasSet(fs, "log") {
		if err := fsmaplog.SetFromEnv(os.Getenv("FSMAP_LOG")); err != nil {
			fsmaplog.Error.Printf("FSMAP_LOG: %v", err)
		}
	}
	_, gopsEnv := os.LookupEnv("GOPS")
	if gopsEnv || (gopsFlag != nil && *gopsFlag) {
		if err := agent.Listen(agent.Options{}); err != nil {
			fsmaplog.Error.Printf("gops: %v", err)
		} else {
			shutdown.Register(agent.Close)
		}
	}
	return func() {
		shutdown.Run()
	}, nil
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
