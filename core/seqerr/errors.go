// core/seqerr/errors.go
package seqerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies malformed input by where it was detected.
type Kind int

const (
	// InvalidHeader: a chunk or record does not begin with the record marker.
	InvalidHeader Kind = iota + 1
	// InvalidRecord: one record is structurally malformed (length mismatch).
	InvalidRecord
	// Invalid: the stream ended with unparsed trailing content.
	Invalid
	// UnknownFormat: the first byte matched no known format or compression.
	UnknownFormat
	// IO: the underlying reader failed.
	IO
)

func (k Kind) String() string {
	switch k {
	case InvalidHeader:
		return "InvalidHeader"
	case InvalidRecord:
		return "InvalidRecord"
	case Invalid:
		return "Invalid"
	case UnknownFormat:
		return "UnknownFormat"
	case IO:
		return "IO"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels for errors.Is matching by kind.
var (
	ErrInvalidHeader = &ParseError{Kind: InvalidHeader}
	ErrInvalidRecord = &ParseError{Kind: InvalidRecord}
	ErrInvalid       = &ParseError{Kind: Invalid}
	ErrUnknownFormat = &ParseError{Kind: UnknownFormat}
	ErrIO            = &ParseError{Kind: IO}
)

// ParseError is returned for any malformed input. Context is the offending
// record id, or a raw snippet when no id could be read. Records is the number
// of records successfully produced before the error; extractors leave it at
// zero and the driving loop fills it in.
type ParseError struct {
	Kind    Kind
	Msg     string
	Context string
	Records int
	Err     error
}

// New returns a ParseError of kind k with message msg.
func New(k Kind, msg string) *ParseError {
	return &ParseError{Kind: k, Msg: msg}
}

// Wrap turns a reader failure into an IO ParseError.
func Wrap(err error) *ParseError {
	if err == nil {
		return nil
	}
	return &ParseError{Kind: IO, Msg: err.Error(), Err: err}
}

// WithContext sets a display snippet. Invalid UTF-8 is replaced, never rejected.
func (e *ParseError) WithContext(b []byte) *ParseError {
	e.Context = strings.ToValidUTF8(string(b), "�")
	return e
}

// WithRecords records how many records were produced before the failure.
func (e *ParseError) WithRecords(n int) *ParseError {
	e.Records = n
	return e
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Context != "" {
		fmt.Fprintf(&b, " (%q)", e.Context)
	}
	if e.Records > 0 {
		fmt.Fprintf(&b, " after %d records", e.Records)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches another *ParseError by kind only, so the package sentinels
// work with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the Kind of err, or 0 when err is not a ParseError.
func KindOf(err error) Kind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
