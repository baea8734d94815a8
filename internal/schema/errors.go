package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConnectivity indicates the catalog could not be reached.
	ErrConnectivity = errors.New("table-gen: catalog unreachable")
	// ErrQuery indicates a failing catalog query.
	ErrQuery = errors.New("table-gen: catalog query failed")
	// ErrInvalidCatalog indicates catalog rows that break the model invariants.
	ErrInvalidCatalog = errors.New("table-gen: invalid catalog data")
)

// ConnectivityError reports a failure to reach the catalog.
type ConnectivityError struct {
	Driver string
	Cause  error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("table-gen: cannot reach %s catalog: %v", e.Driver, e.Cause)
}

func (e *ConnectivityError) Unwrap() error { return e.Cause }

func (e *ConnectivityError) Is(target error) bool { return target == ErrConnectivity }

// QueryError reports a failing catalog query together with what was being read.
type QueryError struct {
	Op    string // e.g. "list columns"
	Table string
	Index string
	Cause error
}

func (e *QueryError) Error() string {
	var b strings.Builder
	b.WriteString("table-gen: ")
	b.WriteString(e.Op)
	if e.Table != "" {
		b.WriteString(" of table ")
		b.WriteString(e.Table)
	}
	if e.Index != "" {
		b.WriteString(" index ")
		b.WriteString(e.Index)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *QueryError) Unwrap() error { return e.Cause }

func (e *QueryError) Is(target error) bool { return target == ErrQuery }

// IsConnectivityError reports whether the error is a ConnectivityError.
func IsConnectivityError(err error) bool {
	var connErr *ConnectivityError
	return errors.As(err, &connErr)
}

// IsQueryError reports whether the error is a QueryError.
func IsQueryError(err error) bool {
	var queryErr *QueryError
	return errors.As(err, &queryErr)
}
