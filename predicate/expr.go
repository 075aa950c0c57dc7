package predicate

import "regexp"

// AtomKind tags the variant held by an Atom.
type AtomKind int

const (
	AtomDrive AtomKind = iota
	AtomPathMatch
	AtomNameMatch
	AtomBefore
	AtomAfter
	AtomSmaller
	AtomLarger
)

// Atom is one leaf test in a filter expression.
type Atom struct {
	Kind  AtomKind
	Num   uint64
	Regex *regexp.Regexp
	Time  int64
}

// FsData is the per-entry projection a filter expression is evaluated
// against. Size and Timestamp are set only for regular files whose inode is
// recorded; they are absent for every other entry (directories, symlinks,
// other inodes, errored reads, files with a missing inode record), and any
// atom testing an absent field evaluates to false.
type FsData struct {
	Drive     uint64
	Name      string
	Path      string
	Timestamp *int64
	Size      *uint64
}

// Eval tests data against a, the leaf evaluation rule for each AtomKind.
func (a Atom) Eval(data *FsData) bool {
	switch a.Kind {
	case AtomDrive:
		return data.Drive == a.Num
	case AtomPathMatch:
		return a.Regex.MatchString(data.Path)
	case AtomNameMatch:
		return a.Regex.MatchString(data.Name)
	case AtomSmaller:
		return data.Size != nil && *data.Size <= a.Num
	case AtomLarger:
		return data.Size != nil && a.Num <= *data.Size
	case AtomBefore:
		return data.Timestamp != nil && *data.Timestamp <= a.Time
	case AtomAfter:
		return data.Timestamp != nil && a.Time <= *data.Timestamp
	default:
		return false
	}
}

// ExprKind tags the variant held by an Expr.
type ExprKind int

const (
	ExprTrue ExprKind = iota
	ExprFalse
	ExprAtom
	ExprAnd
	ExprOr
	ExprDiff
)

// Expr is a boolean filter expression tree: a constant, an atom, or a
// combinator over two subexpressions. Diff(x, y) means "x and not y".
type Expr struct {
	Kind ExprKind
	Atom Atom
	X, Y *Expr
}

func exprTrue() *Expr          { return &Expr{Kind: ExprTrue} }
func exprFalse() *Expr         { return &Expr{Kind: ExprFalse} }
func exprAtomOf(a Atom) *Expr  { return &Expr{Kind: ExprAtom, Atom: a} }
func exprAnd(x, y *Expr) *Expr { return &Expr{Kind: ExprAnd, X: x, Y: y} }
func exprOr(x, y *Expr) *Expr  { return &Expr{Kind: ExprOr, X: x, Y: y} }
func exprDiff(x, y *Expr) *Expr { return &Expr{Kind: ExprDiff, X: x, Y: y} }

// Eval evaluates e against data, short-circuiting And/Or/Diff exactly as
// Go's && and || do.
func (e *Expr) Eval(data *FsData) bool {
	switch e.Kind {
	case ExprTrue:
		return true
	case ExprFalse:
		return false
	case ExprAtom:
		return e.Atom.Eval(data)
	case ExprAnd:
		return e.X.Eval(data) && e.Y.Eval(data)
	case ExprOr:
		return e.X.Eval(data) || e.Y.Eval(data)
	case ExprDiff:
		return e.X.Eval(data) && !e.Y.Eval(data)
	default:
		return false
	}
}

// Test implements the traverser's predicate interface.
func (e *Expr) Test(data *FsData) bool { return e.Eval(data) }
