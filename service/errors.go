package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
)

// ErrorKind tells callers which side of the search failed.
type ErrorKind string

const (
	ErrorKindInput      ErrorKind = "input"
	ErrorKindConnection ErrorKind = "connection"
	ErrorKindQuery      ErrorKind = "query"
)

// User facing messages of each kind.
const (
	MESSAGE_INPUT      = "No valid input received."
	MESSAGE_CONNECTION = "DB connection failed"
	MESSAGE_QUERY      = "Query failed"
)

// SearchError is the only error GeocacheQueryService returns.
type SearchError struct {
	Kind ErrorKind
	Err  error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// Message is the stable text shown to clients for the error's kind.
func (e *SearchError) Message() string {
	switch e.Kind {
	case ErrorKindInput:
		return MESSAGE_INPUT
	case ErrorKindConnection:
		return MESSAGE_CONNECTION
	}
	return MESSAGE_QUERY
}

func inputError(err error) *SearchError {
	return &SearchError{Kind: ErrorKindInput, Err: err}
}

func connectionError(err error) *SearchError {
	return &SearchError{Kind: ErrorKindConnection, Err: err}
}

// classifyQueryError separates a store that went away mid query from one that
// rejected the statement.
func classifyQueryError(err error) *SearchError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &netErr):
		return connectionError(err)
	}
	return &SearchError{Kind: ErrorKindQuery, Err: err}
}
