package services

import "errors"

// ErrNotFound is returned when the entity an operation targets does not
// exist. Handlers translate it into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on an
// entity owned by someone else. Handlers translate it into an HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrUnknownEmail is returned by login when no account matches the
// normalized email address.
var ErrUnknownEmail = errors.New("no account registered for that email")

// ErrLookupMiss is returned when the metadata lookup cannot resolve a
// title. Lookup transport failures are logged and collapse into this same
// error.
var ErrLookupMiss = errors.New("movie not found in metadata lookup")
