package verify

import (
	"errors"

	"github.com/creativeyann17/tgmedia/internal/source"
)

var (
	// ErrInputRequired is returned when the serialized input path is not specified
	ErrInputRequired = errors.New("serialized input path is required")

	// ErrOutputRequired is returned when the deserialized file to check is not specified
	ErrOutputRequired = errors.New("deserialized file path is required")

	// ErrNotFound is returned when either file cannot be opened
	ErrNotFound = source.ErrNotFound

	// ErrMismatch is recorded for a part whose bytes differ in the deserialized file
	ErrMismatch = errors.New("part content mismatch")

	// ErrBeyondEnd is recorded for a part that ends past the deserialized file
	ErrBeyondEnd = errors.New("part ends past the deserialized file")
)
