package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that a concurrent writer created the resource first
// (e.g. two simultaneous saves of the same till's daily closing). Callers
// should retry the operation as an update.
var ErrConflict = errors.New("resource already exists")
