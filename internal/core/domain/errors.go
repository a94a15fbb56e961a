package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrParseFailure indicates an upload could not be parsed into records.
	// The stored aggregate for the period is left untouched.
	ErrParseFailure = errors.New("parse failure")

	// ErrMissingColumn indicates the upload header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrNoData indicates a period has no uploaded aggregate.
	ErrNoData = errors.New("no data for period")

	// ErrPeriodOutOfRange indicates a period outside the selectable window.
	ErrPeriodOutOfRange = errors.New("period outside selectable window")

	// ErrInvariantViolation indicates an aggregate that can only come from
	// an aggregation bug, such as a negative bucket count.
	ErrInvariantViolation = errors.New("invariant violation")
)
