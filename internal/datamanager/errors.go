// Package datamanager defines the data-access contract for the app and its
// GORM-backed implementation. The sentinel errors below let higher layers
// such as handlers distinguish between failure scenarios without string
// matching. For example, ErrDuplicateEmail should become an HTTP 409 while
// an ErrValidation-wrapped error should become a 400.
package datamanager

import "errors"

// ErrDuplicateEmail is returned when a user with the same normalized email
// address already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrDuplicateMovie is returned when the owning user already has a movie
// with the same title in their list.
var ErrDuplicateMovie = errors.New("movie already in user's list")

// ErrValidation wraps caller-supplied-value violations such as an empty
// review text or a rating outside [0, 10]. These are checked here, not only
// at the HTTP boundary, so the contract holds regardless of caller.
var ErrValidation = errors.New("validation failed")

// ErrPersistence wraps any underlying storage failure. Whenever it is
// returned, the in-flight write has been rolled back and no partial
// mutation is visible.
var ErrPersistence = errors.New("persistence failure")
