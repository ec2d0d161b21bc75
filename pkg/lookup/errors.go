package lookup

import (
	"errors"
	"fmt"
)

var (
	// ErrLookupTypeRequired ...
	ErrLookupTypeRequired = errors.New("lookup type must be specified")
	// ErrNullExplorerService ...
	ErrNullExplorerService = errors.New("explorer service must not be null")
	// ErrLookupInProgress ...
	ErrLookupInProgress = errors.New("another lookup is still in progress")
)

// LookupTypeUnrecognizedError is returned when parsing an unknown lookup type.
type LookupTypeUnrecognizedError struct {
	Type string
}

func (e LookupTypeUnrecognizedError) Error() string {
	return fmt.Sprintf("unrecognized lookup type %q", e.Type)
}
