// Package fsmaperrors implements an error type that defines standard
// interpretable error codes for common error conditions. Errors also carry
// an interpretable severity, so error-producing operations can be retried in
// a consistent way. Errors returned by this package can be chained, thus
// attributing one error to another.
//
// This is a trimmed adaptation of github.com/grailbio/base/errors: the kind
// and severity vocabulary and the E(...) construction convention are kept,
// but the verror interoperability (meant for a Vanadium RPC layer) is
// dropped, since fsmap has no RPC surface.
package fsmaperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/fsmap/fsmap/fsmaplog"
)

// Separator separates chained errors in error messages.
var Separator = ":\n\t"

// Kind classifies an error so callers can decide how to react to it.
type Kind int

const (
	// Other indicates an unknown error.
	Other Kind = iota
	// Canceled indicates a context cancellation.
	Canceled
	// NotExist indicates a nonexistent resource.
	NotExist
	// NotAllowed indicates a permission failure.
	NotAllowed
	// Invalid indicates that the caller supplied invalid parameters.
	Invalid
	// Interrupted indicates the process-wide interrupt flag was observed.
	Interrupted
	// Corrupt indicates malformed persisted data (a bad snapshot file).
	Corrupt

	maxKind
)

var kinds = map[Kind]string{
	Other:       "unknown error",
	Canceled:    "operation was canceled",
	NotExist:    "resource does not exist",
	NotAllowed:  "access denied",
	Invalid:     "invalid argument",
	Interrupted: "interrupted",
	Corrupt:     "corrupt data",
}

// String returns a human-readable description of k.
func (k Kind) String() string { return kinds[k] }

var kindStdErrs = map[Kind]error{
	Canceled: context.Canceled,
	NotExist: os.ErrNotExist,
	Invalid:  os.ErrInvalid,
}

// Severity describes how urgently an error should be treated.
type Severity int

const (
	// Unknown is the default severity.
	Unknown Severity = 0
	// Temporary indicates the condition may clear on its own.
	Temporary Severity = -1
	// Fatal indicates the condition is unrecoverable.
	Fatal Severity = 1
)

var severities = map[Severity]string{
	Unknown:   "unknown",
	Temporary: "temporary",
	Fatal:     "fatal",
}

// String returns a human-readable description of s.
func (s Severity) String() string { return severities[s] }

// Error is the standard error type, carrying a Kind, an optional Severity, a
// message, and potentially an underlying error. Construct with E.
type Error struct {
	Kind     Kind
	Severity Severity
	Message  string
	Err      error
}

// E constructs an error from its arguments, interpreted by type:
//
//   - Kind: sets the error's kind
//   - Severity: sets the error's severity
//   - string: appended (space separated) to the message
//   - *Error: copied and set as the cause
//   - error: set as the cause
//
// If no Kind is given but a cause is, E attempts to classify the cause by
// matching it against a handful of well known stdlib sentinel errors.
func E(args ...interface{}) error {
	if len(args) == 0 {
		panic("fsmaperrors.E: no args")
	}
	e := new(Error)
	var msg strings.Builder
	for _, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case Severity:
			e.Severity = arg
		case string:
			if msg.Len() > 0 {
				msg.WriteString(" ")
			}
			msg.WriteString(arg)
		case *Error:
			cp := *arg
			if len(args) == 1 {
				return &cp
			}
			e.Err = &cp
		case error:
			e.Err = arg
		default:
			_, file, line, _ := runtime.Caller(1)
			fsmaplog.Error.Printf("fsmaperrors.E: bad call (type %T) from %s:%d: %v", arg, file, line, arg)
			return &Error{Kind: Invalid, Message: fmt.Sprintf("unknown type %T in error call", arg)}
		}
	}
	e.Message = msg.String()
	if e.Err == nil {
		return e
	}
	switch prev := e.Err.(type) {
	case *Error:
		if prev.Kind == e.Kind || e.Kind == Other {
			e.Kind = prev.Kind
			prev.Kind = Other
		}
		if prev.Severity == e.Severity || e.Severity == Unknown {
			e.Severity = prev.Severity
			prev.Severity = Unknown
		}
	default:
		if e.Kind != Other {
			break
		}
		for kind := Kind(0); kind < maxKind; kind++ {
			if std := kindStdErrs[kind]; std != nil && errors.Is(e.Err, std) {
				e.Kind = kind
				break
			}
		}
	}
	return e
}

// Recover wraps any error as an *Error, returning it unchanged if it already
// is one.
func Recover(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return E(err).(*Error)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b bytes.Buffer
	e.writeError(&b)
	return b.String()
}

func (e *Error) writeError(b *bytes.Buffer) {
	if e.Message != "" {
		pad(b, ": ")
		b.WriteString(e.Message)
	}
	if e.Kind != Other {
		pad(b, ": ")
		b.WriteString(e.Kind.String())
	}
	if e.Severity != Unknown {
		pad(b, " ")
		b.WriteByte('(')
		b.WriteString(e.Severity.String())
		b.WriteByte(')')
	}
	if e.Err == nil {
		return
	}
	if err, ok := e.Err.(*Error); ok {
		pad(b, Separator)
		b.WriteString(err.Error())
	} else {
		pad(b, ": ")
		b.WriteString(e.Err.Error())
	}
}

// Unwrap lets errors.Unwrap/errors.Is/errors.As work with *Error.
func (e *Error) Unwrap() error { return e.Err }

// Is tells whether e.Kind corresponds to the standard sentinel err.
func (e *Error) Is(err error) bool {
	if err == nil {
		return false
	}
	return err == kindStdErrs[e.Kind]
}

// Is tells whether err's kind is kind, skipping through Other links in the
// chain.
func Is(kind Kind, err error) bool {
	if err == nil {
		return false
	}
	return is(kind, Recover(err))
}

func is(kind Kind, e *Error) bool {
	if e.Kind != Other {
		return e.Kind == kind
	}
	if e.Err != nil {
		if e2, ok := e.Err.(*Error); ok {
			return is(kind, e2)
		}
	}
	return false
}

// Match tells whether every nonempty field in err1 matches the
// corresponding fields in err2. The comparison recurses on chained errors.
// Match is designed to aid in testing errors.
func Match(err1, err2 error) bool {
	e1 := Recover(err1)
	e2 := Recover(err2)
	if e1.Kind != Other && e1.Kind != e2.Kind {
		return false
	}
	if e1.Severity != Unknown && e1.Severity != e2.Severity {
		return false
	}
	if e1.Message != "" && e1.Message != e2.Message {
		return false
	}
	if e1.Err != nil {
		if e2.Err == nil {
			return false
		}
		switch e1.Err.(type) {
		case *Error:
			return Match(e1.Err, e2.Err)
		default:
			return e1.Err.Error() == e2.Err.Error()
		}
	}
	return true
}

func pad(b *bytes.Buffer, s string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(s)
}
