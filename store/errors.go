package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinels for errors.Is checks. The typed errors below wrap them.
var (
	ErrValidation           = errors.New("validation failed")
	ErrUniquenessConflict   = errors.New("uniqueness conflict")
	ErrNotFound             = errors.New("record not found")
	ErrReferentialIntegrity = errors.New("delete blocked by dependent records")
	ErrStoreUnavailable     = errors.New("store unavailable")
)

// ValidationError reports one message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, " ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationErr(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// UniquenessConflict reports a duplicate value on a unique field.
type UniquenessConflict struct {
	Entity string
	Field  string
	Value  string
}

func (e *UniquenessConflict) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

func (e *UniquenessConflict) Unwrap() error { return ErrUniquenessConflict }

// NotFoundError reports an identifier that did not resolve, either the
// target of an operation or a foreign-key reference at write time.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ReferentialIntegrityError reports a delete blocked by live dependents.
type ReferentialIntegrityError struct {
	Entity    string
	ID        string
	Dependent string
	Count     int64
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s %q: %d live %s record(s) reference it", e.Entity, e.ID, e.Count, e.Dependent)
}

func (e *ReferentialIntegrityError) Unwrap() error { return ErrReferentialIntegrity }

// StoreUnavailableError wraps a driver or connection failure. Reads
// are safe to retry; writes are not without deduplication upstream.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return "store unavailable: " + e.Err.Error()
}

func (e *StoreUnavailableError) Unwrap() error { return ErrStoreUnavailable }
