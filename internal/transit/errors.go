package transit

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why arrivals for a line could not be read.
type ErrorKind int

const (
	KindUnknown    ErrorKind = iota
	KindTransport            // DNS, connect, timeout or body read failure
	KindHTTPStatus           // non-2xx response
	KindParse                // markup could not be parsed
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http-status"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// FetchError is returned by the fetch and extract path for one line.
type FetchError struct {
	Kind       ErrorKind
	Line       string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("line %s: %s error", e.Line, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.URL != "" {
		msg += " fetching " + e.URL
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind carried by err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
