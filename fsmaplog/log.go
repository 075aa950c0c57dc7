// Package fsmaplog provides simple level logging, in the manner of
// github.com/grailbio/base/log: log output goes through an Outputter (by
// default Go's standard "log" package) so a program can unify its logging
// with a different backend without changing call sites.
package fsmaplog

import (
	"flag"
	"fmt"
	golog "log"
	"os"
)

// A Level is a log verbosity. Lower levels have higher priority: if the
// outputter is logging at level L, every message at level M <= L is emitted.
type Level int

const (
	// Off never outputs messages.
	Off = Level(-2)
	// Error outputs error messages.
	Error = Level(-1)
	// Info outputs informational messages; the default level.
	Info = Level(0)
	// Debug outputs verbose diagnostic messages.
	Debug = Level(1)
)

func (l Level) String() string {
	switch l {
	case Off:
		return "off"
	case Error:
		return "error"
	case Info:
		return "info"
	case Debug:
		return "debug"
	default:
		return fmt.Sprintf("level%d", int(l))
	}
}

// An Outputter is a destination for leveled log output. Providing an
// alternative implementation via SetOutputter lets a program unify fsmap's
// log output with a different backend without changing any call site.
type Outputter interface {
	// Level returns the level the outputter is currently accepting
	// messages at.
	Level() Level
	// Output writes s at calldepth/level. The outputter drops the message
	// if it is not logging at that level.
	Output(calldepth int, level Level, s string) error
}

var out Outputter = gologOutputter{}

// SetOutputter installs a new Outputter and returns the previous one.
// Not safe to call concurrently with log output; call only during program
// initialization.
func SetOutputter(newOut Outputter) Outputter {
	old := out
	out = newOut
	return old
}

// GetOutputter returns the Outputter currently in use.
func GetOutputter() Outputter { return out }

// gologOutputter is the default Outputter, backed by the standard "log"
// package.
type gologOutputter struct{}

func (gologOutputter) Level() Level { return current }

func (gologOutputter) Output(calldepth int, level Level, s string) error {
	if current < level {
		return nil
	}
	return golog.Output(calldepth+1, s)
}

var current = Info

// SetLevel sets the process-wide log level.
func SetLevel(l Level) { current = l }

// GetLevel returns the process-wide log level.
func GetLevel() Level { return current }

// At reports whether the given level is currently logged by the installed
// Outputter.
func At(l Level) bool { return l <= out.Level() }

// Print formats a message like fmt.Sprint and outputs it at level l.
func (l Level) Print(v ...interface{}) {
	if At(l) {
		out.Output(2, l, fmt.Sprint(v...))
	}
}

// Println formats a message like fmt.Sprintln and outputs it at level l.
func (l Level) Println(v ...interface{}) {
	if At(l) {
		out.Output(2, l, fmt.Sprintln(v...))
	}
}

// Printf formats a message like fmt.Sprintf and outputs it at level l.
func (l Level) Printf(format string, v ...interface{}) {
	if At(l) {
		out.Output(2, l, fmt.Sprintf(format, v...))
	}
}

// Fatal logs v at the Error level and exits the process with status 1.
func Fatal(v ...interface{}) {
	out.Output(2, Error, fmt.Sprint(v...))
	os.Exit(1)
}

// levelFlag implements flag.Value/flag.Getter for -log / FSMAP_LOG.
type levelFlag string

func (f levelFlag) String() string { return string(f) }

func (f *levelFlag) Set(s string) error {
	switch s {
	case "off":
		current = Off
	case "error":
		current = Error
	case "info":
		current = Info
	case "debug":
		current = Debug
	default:
		return fmt.Errorf("invalid log level %q", s)
	}
	return nil
}

func (levelFlag) Get() interface{} { return current }

// AddFlags registers a -log flag on fs (off, error, info, debug).
func AddFlags(fs *flag.FlagSet) {
	fs.Var(new(levelFlag), "log", "set log level (off, error, info, debug)")
}

// SetFromEnv applies a level string as read from an environment variable
// such as FSMAP_LOG, ignoring an empty value.
func SetFromEnv(value string) error {
	if value == "" {
		return nil
	}
	var f levelFlag
	return f.Set(value)
}
