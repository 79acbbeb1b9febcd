// Package errors defines all exported error sentinels for the parsort library.
//
// This is the single source of truth for error values. The top-level parsort
// package, its internal packages and the cmd tools import from here, so
// errors.Is checks work across package boundaries.
package errors

import "errors"

// Argument errors
var (
	ErrInvalidArguments = errors.New("parsort: wrong number of arguments")
	ErrInvalidCoreCount = errors.New("parsort: number of cores must be > 0")
	ErrInvalidPageSize  = errors.New("parsort: page must hold at least one element")
)

// Input errors
var (
	ErrInputUnreadable = errors.New("parsort: input file is unreadable")
)

// Verification errors (only returned when verification is enabled)
var (
	ErrNotSorted    = errors.New("parsort: output is not sorted")
	ErrConservation = errors.New("parsort: output does not contain the input values")
)
