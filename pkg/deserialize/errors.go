// pkg/deserialize/errors.go
package deserialize

import (
	"errors"

	"github.com/creativeyann17/tgmedia/internal/source"
)

var (
	// ErrInputRequired is returned when the serialized input path is not specified
	ErrInputRequired = errors.New("serialized input path is required")

	// ErrOutputRequired is returned when the deserialized output path is not specified
	ErrOutputRequired = errors.New("deserialized output path is required")

	// ErrInputNotFound is returned when the serialized input cannot be opened
	ErrInputNotFound = source.ErrNotFound

	// ErrOutputExists is returned when the output path is already taken.
	// Outputs are never overwritten.
	ErrOutputExists = errors.New("already exists")

	// ErrShortPayload is returned when the input ends before a part's declared size
	ErrShortPayload = errors.New("short payload read")

	// ErrInvalidOptions is returned for contradictory options
	ErrInvalidOptions = errors.New("invalid options")
)
