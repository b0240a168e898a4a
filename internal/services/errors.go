// Package services defines the comparison pipeline: entity resolution,
// metrics fetching, normalization, assembly, and the search adapter used to
// fill comparison slots.
//
// This file centralizes the error taxonomy. Translation into HTTP statuses is
// done by the handler layer.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/votabienperu/comparador/internal/domain"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrDataFetch matches every *DataFetchError.
	ErrDataFetch = errors.New("data fetch failed")
)

// ValidationError rejects a request before any I/O happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DataFetchError is a transport, query, or row-shape failure of the backing
// store. It fails the whole comparison; no partial result is returned.
type DataFetchError struct {
	Op   string
	Kind domain.Kind
	IDs  []string
	Err  error
}

func (e *DataFetchError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Kind != "" {
		b.WriteString(" ")
		b.WriteString(string(e.Kind))
	}
	b.WriteString(": ")
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(ErrDataFetch.Error())
	}
	return b.String()
}

func (e *DataFetchError) Unwrap() error { return e.Err }

func (e *DataFetchError) Is(target error) bool { return target == ErrDataFetch }

func fetchFailed(op string, kind domain.Kind, ids []string, err error) error {
	return &DataFetchError{Op: op, Kind: kind, IDs: ids, Err: err}
}
