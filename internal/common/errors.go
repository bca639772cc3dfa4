// Package common defines sentinel errors shared across the buildpad sync
// core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrMalformedRecord marks a fetched remote record that lacks a usable
	// id or update timestamp. Such records are excluded from reconciliation
	// rather than failing the whole pass.
	ErrMalformedRecord = errors.New("malformed remote record")

	// ErrNoOwner is returned when an owner id cannot be resolved from the
	// session token.
	ErrNoOwner = errors.New("owner id missing")

	// ErrOwnerMismatch is returned when a write targets a record that
	// exists under a different owner. Records never move between owners.
	ErrOwnerMismatch = errors.New("record belongs to another owner")

	// ErrUnknownBackend is returned for an unrecognized remote backend name.
	ErrUnknownBackend = errors.New("unknown remote backend")
)
