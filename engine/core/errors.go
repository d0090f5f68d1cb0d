package core

import (
	"errors"
)

var (
	ErrMissingResource = errors.New("missing resource")
	ErrBorrowConflict  = errors.New("borrow conflict")
	ErrTypeMismatch    = errors.New("resource type mismatch")
	ErrInvalidHandler  = errors.New("invalid handler")
	ErrReleasedGuard   = errors.New("resource guard used after release")
	ErrInvalidLogLevel = errors.New("invalid log level")
)
