// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package tmdb

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed client operation.
type ErrorKind string

const (
	// KindTransport covers connection failures and timeouts.
	KindTransport ErrorKind = "transport"
	// KindUpstreamStatus is a non-2xx response from TMDB.
	KindUpstreamStatus ErrorKind = "upstream_status"
	// KindDecode is a response body that could not be parsed.
	KindDecode ErrorKind = "decode"
	// KindValidation is bad caller input caught before any network call.
	KindValidation ErrorKind = "validation"
	// KindCircuitOpen means the circuit breaker rejected the call.
	KindCircuitOpen ErrorKind = "circuit_open"
)

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrTransport      = &Error{Kind: KindTransport}
	ErrUpstreamStatus = &Error{Kind: KindUpstreamStatus}
	ErrDecode         = &Error{Kind: KindDecode}
	ErrValidation     = &Error{Kind: KindValidation}
	ErrCircuitOpen    = &Error{Kind: KindCircuitOpen}
)

// Error is the failure variant of every client operation. Message is safe to
// hand back to API callers verbatim.
type Error struct {
	Kind ErrorKind
	// StatusCode is set for KindUpstreamStatus.
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the ErrorKind of err, or "" when err is not a client error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
}

func statusError(code int, body []byte) *Error {
	return &Error{
		Kind:       KindUpstreamStatus,
		StatusCode: code,
		Message:    fmt.Sprintf("request failed with status %d: %s", code, body),
	}
}

func decodeError(format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Kind: KindDecode, Message: err.Error(), Err: errors.Unwrap(err)}
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}
