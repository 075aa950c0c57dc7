package predicate

import "testing"

func mustParse(t *testing.T, u string) *Expr {
	t.Helper()
	e, err := Parse(u)
	if err != nil {
		t.Fatalf("Parse(%q): %v", u, err)
	}
	return e
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		expr string
		want ExprKind
	}{
		{"a", ExprAtom},
		{"a | b", ExprOr},
		{"a & b", ExprAnd},
		{"a & b | c", ExprOr},   // (a & b) | c
		{"a | b & c", ExprOr},   // a | (b & c)
		{"a \\ b", ExprDiff},
		{"a & b \\ c", ExprAnd}, // a & (b \ c)
	}
	for _, c := range cases {
		e := mustParse(t, c.expr)
		if e.Kind != c.want {
			t.Errorf("Parse(%q).Kind = %v, want %v", c.expr, e.Kind, c.want)
		}
	}
}

func TestParseAndBeforeOr(t *testing.T) {
	e := mustParse(t, "a & b | c")
	if e.Kind != ExprOr {
		t.Fatalf("top kind = %v, want Or", e.Kind)
	}
	if e.X.Kind != ExprAnd {
		t.Fatalf("left kind = %v, want And", e.X.Kind)
	}
	if e.Y.Kind != ExprAtom {
		t.Fatalf("right kind = %v, want Atom", e.Y.Kind)
	}
}

func TestParseParens(t *testing.T) {
	e := mustParse(t, "a | (b | c)")
	if e.Kind != ExprOr || e.X.Kind != ExprAtom || e.Y.Kind != ExprOr {
		t.Fatalf("unexpected shape for a | (b | c): %+v", e)
	}
}

func TestParseJunkAtEnd(t *testing.T) {
	if _, err := Parse("a b"); err == nil {
		t.Fatalf("expected error for trailing junk")
	}
}

func TestParseMissingRParen(t *testing.T) {
	if _, err := Parse("(a"); err == nil {
		t.Fatalf("expected error for missing )")
	}
}

func TestParseUnknownKeyword(t *testing.T) {
	if _, err := Parse("%bogus"); err == nil {
		t.Fatalf("expected error for unknown keyword")
	}
}

func TestTrueFalseAtoms(t *testing.T) {
	tr := mustParse(t, "%t")
	fa := mustParse(t, "%f")
	data := &FsData{}
	if !tr.Eval(data) {
		t.Errorf("%%t should evaluate true")
	}
	if fa.Eval(data) {
		t.Errorf("%%f should evaluate false")
	}
}

func TestDriveAtom(t *testing.T) {
	e := mustParse(t, "%drive 2")
	if !e.Eval(&FsData{Drive: 2}) {
		t.Errorf("expected %%drive 2 to match drive 2")
	}
	if e.Eval(&FsData{Drive: 1}) {
		t.Errorf("expected %%drive 2 not to match drive 1")
	}
}

func TestSizeAtomsAbsentSize(t *testing.T) {
	e := mustParse(t, "%smaller 100")
	if e.Eval(&FsData{}) {
		t.Errorf("size test on entry with no size should be false")
	}
}

func TestSizeSuffixes(t *testing.T) {
	e := mustParse(t, "%larger 1k")
	size := uint64(2048)
	if !e.Eval(&FsData{Size: &size}) {
		t.Errorf("expected %%larger 1k to match a 2048-byte entry")
	}
}

func TestNameMatch(t *testing.T) {
	e := mustParse(t, "%name 'foo.*'")
	if !e.Eval(&FsData{Name: "foobar"}) {
		t.Errorf("expected name match")
	}
	if e.Eval(&FsData{Name: "bar"}) {
		t.Errorf("expected no match")
	}
}

func TestDiffIsAndNot(t *testing.T) {
	e := mustParse(t, "%t \\ %f")
	if !e.Eval(&FsData{}) {
		t.Errorf("%%t \\ %%f should be true")
	}
	e2 := mustParse(t, "%t \\ %t")
	if e2.Eval(&FsData{}) {
		t.Errorf("%%t \\ %%t should be false")
	}
}
