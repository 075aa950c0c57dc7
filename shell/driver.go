package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Driver runs a Shell against an interactive input/output pair, reading one
// line at a time (bufio, since a real line editor with in-place
// history-search and arrow-key recall is outside what this package
// provides) and appending accepted lines to a history file across runs.
type Driver struct {
	shell       *Shell
	in          *bufio.Scanner
	out         io.Writer
	historyPath string
	history     bool
}

// NewDriver returns a Driver reading from in and writing to out. If
// enableHistory is true, history is loaded from and appended to
// $HOME/.fsmap-hist.
func NewDriver(shell *Shell, in io.Reader, out io.Writer, enableHistory bool) *Driver {
	d := &Driver{shell: shell, in: bufio.NewScanner(in), out: out, history: enableHistory}
	if home, err := os.UserHomeDir(); err == nil {
		d.historyPath = filepath.Join(home, ".fsmap-hist")
	}
	return d
}

// Run reads and executes lines until EOF, the "quit" command, or an
// unrecoverable read error. Command errors are printed to out and do not
// stop the loop.
func (d *Driver) Run() error {
	var lines []string
	if d.history && d.historyPath != "" {
		lines = loadHistory(d.historyPath)
	}

	fmt.Fprint(d.out, "> ")
	for d.in.Scan() {
		line := d.in.Text()
		lines = append(lines, line)
		quit, err := d.shell.HandleLine(line, d.out)
		if err != nil {
			fmt.Fprintf(d.out, "Error: %v\n", err)
		}
		if quit {
			break
		}
		fmt.Fprint(d.out, "> ")
	}
	if err := d.in.Err(); err != nil {
		return err
	}

	if d.history && d.historyPath != "" {
		saveHistory(d.historyPath, lines)
	}
	return nil
}

func loadHistory(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

func saveHistory(path string, lines []string) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	w.Flush()
}
