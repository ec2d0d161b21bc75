package descriptor

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyKey ...
	ErrEmptyKey = errors.New("a key must be set for a single-sig template")
	// ErrEmptyKeyset ...
	ErrEmptyKeyset = errors.New(
		"a multi-sig template must use at least two unique keys",
	)
	// ErrEmptyScript ...
	ErrEmptyScript = errors.New("script source must not be empty")
	// ErrSourceTypeRequired ...
	ErrSourceTypeRequired = errors.New(
		"the type of the provided script source must be specified",
	)
	// ErrInvalidThreshold ...
	ErrInvalidThreshold = errors.New(
		"signing threshold must be within [1, number of keys]",
	)
	// ErrNoVariantsEnabled ...
	ErrNoVariantsEnabled = errors.New(
		"at least one script variant must be enabled",
	)
)

// NotYetSupportedError is the explicit refusal for features the current
// version does not implement. It is a deliberate boundary, callers can detect
// it deterministically instead of getting a best-effort approximation.
type NotYetSupportedError struct {
	Feature string
}

func (e NotYetSupportedError) Error() string {
	return fmt.Sprintf("%s is not supported in the current version", e.Feature)
}

// IsNotYetSupported reports whether err is a NotYetSupportedError.
func IsNotYetSupported(err error) bool {
	var target NotYetSupportedError
	return errors.As(err, &target)
}
