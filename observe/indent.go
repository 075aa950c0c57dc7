package observe

import (
	"fmt"
	"io"
)

// IndentMode selects how TreePrinter renders an entry's nesting depth.
type IndentMode int

const (
	// IndentNumbered prints the numeric depth, e.g. "  3 ".
	IndentNumbered IndentMode = iota
	// IndentSpaces prints two spaces per level of depth.
	IndentSpaces
)

// Put writes the indentation for the given depth to w.
func (m IndentMode) Put(w io.Writer, depth int) {
	switch m {
	case IndentNumbered:
		fmt.Fprintf(w, " %2d ", depth)
	case IndentSpaces:
		for i := 0; i < depth; i++ {
			fmt.Fprint(w, "  ")
		}
	}
}
