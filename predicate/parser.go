package predicate

import (
	"fmt"
	"regexp"
	"time"
)

// Parse tokenizes and parses u into an Expr, the full filter language
// grammar: %t, %f, %drive N, %smaller N, %larger N, %before DATE,
// %after DATE, %name 'REGEX', a bare/quoted string (a path regex), a
// parenthesized subexpression, and the combinators & (and), | (or, lowest
// precedence, right-associative), and \ (and-not, binds like &).
func Parse(u string) (*Expr, error) {
	toks, err := Tokenize(u)
	if err != nil {
		return nil, err
	}
	e, rest, err := parseFromTokens(toks)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("junk at end of expression")
	}
	return e, nil
}

func parseFromTokens(toks []Token) (*Expr, []Token, error) {
	return eat(toks)
}

func eat(u []Token) (*Expr, []Token, error) {
	x, rest, err := eatOne(u)
	if err != nil {
		return nil, nil, err
	}
	return eatRest(rest, x)
}

func eatOne(u []Token) (*Expr, []Token, error) {
	if len(u) == 0 {
		return nil, nil, fmt.Errorf("invalid syntax")
	}
	switch u[0].Kind {
	case TokFalse:
		return exprFalse(), u[1:], nil
	case TokTrue:
		return exprTrue(), u[1:], nil
	case TokDrive:
		if len(u) < 2 || u[1].Kind != TokUnsigned {
			return nil, nil, fmt.Errorf("invalid syntax")
		}
		return exprAtomOf(Atom{Kind: AtomDrive, Num: u[1].Num}), u[2:], nil
	case TokSmaller:
		if len(u) < 2 || u[1].Kind != TokUnsigned {
			return nil, nil, fmt.Errorf("invalid syntax")
		}
		return exprAtomOf(Atom{Kind: AtomSmaller, Num: u[1].Num}), u[2:], nil
	case TokLarger:
		if len(u) < 2 || u[1].Kind != TokUnsigned {
			return nil, nil, fmt.Errorf("invalid syntax")
		}
		return exprAtomOf(Atom{Kind: AtomLarger, Num: u[1].Num}), u[2:], nil
	case TokBefore:
		if len(u) < 2 || u[1].Kind != TokDate {
			return nil, nil, fmt.Errorf("invalid syntax")
		}
		ts, err := dateTimestamp(u[1].Date)
		if err != nil {
			return nil, nil, err
		}
		return exprAtomOf(Atom{Kind: AtomBefore, Time: ts}), u[2:], nil
	case TokAfter:
		if len(u) < 2 || u[1].Kind != TokDate {
			return nil, nil, fmt.Errorf("invalid syntax")
		}
		ts, err := dateTimestamp(u[1].Date)
		if err != nil {
			return nil, nil, err
		}
		return exprAtomOf(Atom{Kind: AtomAfter, Time: ts}), u[2:], nil
	case TokName:
		if len(u) < 2 || u[1].Kind != TokStr {
			return nil, nil, fmt.Errorf("invalid syntax")
		}
		rx, err := regexp.Compile(u[1].Str)
		if err != nil {
			return nil, nil, err
		}
		return exprAtomOf(Atom{Kind: AtomNameMatch, Regex: rx}), u[2:], nil
	case TokStr:
		rx, err := regexp.Compile(u[0].Str)
		if err != nil {
			return nil, nil, err
		}
		return exprAtomOf(Atom{Kind: AtomPathMatch, Regex: rx}), u[1:], nil
	case TokLPar:
		x, rest, err := eat(u[1:])
		if err != nil {
			return nil, nil, err
		}
		if len(rest) == 0 || rest[0].Kind != TokRPar {
			return nil, nil, fmt.Errorf("expecting right parenthesis")
		}
		return x, rest[1:], nil
	default:
		return nil, nil, fmt.Errorf("invalid syntax")
	}
}

func eatRest(u []Token, x *Expr) (*Expr, []Token, error) {
	if len(u) == 0 {
		return x, u, nil
	}
	switch u[0].Kind {
	case TokDiff:
		y, rest, err := eatOne(u[1:])
		if err != nil {
			return nil, nil, err
		}
		return eatRest(rest, exprDiff(x, y))
	case TokAnd:
		return eatAnd(u[1:], x)
	case TokOr:
		y, rest, err := eat(u[1:])
		if err != nil {
			return nil, nil, err
		}
		return exprOr(x, y), rest, nil
	default:
		return x, u, nil
	}
}

func eatAnd(u []Token, x *Expr) (*Expr, []Token, error) {
	y, rest, err := eatOne(u)
	if err != nil {
		return nil, nil, err
	}
	if len(rest) > 0 {
		switch rest[0].Kind {
		case TokAnd:
			return eatAnd(rest[1:], exprAnd(x, y))
		case TokDiff:
			z, rest2, err := eatOne(rest[1:])
			if err != nil {
				return nil, nil, err
			}
			return eatRest(rest2, exprAnd(x, exprDiff(y, z)))
		case TokOr:
			e := exprAnd(x, y)
			f, rest2, err := eat(rest[1:])
			if err != nil {
				return nil, nil, err
			}
			return exprOr(e, f), rest2, nil
		}
	}
	return exprAnd(x, y), rest, nil
}

func dateTimestamp(d Date) (int64, error) {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if int(t.Month()) != d.Month || t.Day() != d.Day {
		return 0, fmt.Errorf("invalid date %04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	return t.Unix(), nil
}
