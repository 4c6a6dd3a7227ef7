// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the error kinds surfaced by the gallery API. Stores
// and handlers return *Error values so the HTTP layer can pick a status code
// and a user-facing message without inspecting driver errors.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the API boundary.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindDuplicateKey     Kind = "duplicate_key"
	KindNotFound         Kind = "not_found"
	KindDependencyExists Kind = "dependency_exists"
	KindStorageFailure   Kind = "storage_failure"
)

// Error carries a kind, a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindDuplicateKey, KindDependencyExists:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

func DuplicateKey(msg string, err error) error {
	return &Error{Kind: KindDuplicateKey, Message: msg, Err: err}
}

func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

func DependencyExists(msg string) error { return &Error{Kind: KindDependencyExists, Message: msg} }

func StorageFailure(msg string, err error) error {
	return &Error{Kind: KindStorageFailure, Message: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindStorageFailure for any other non-nil error.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageFailure
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
