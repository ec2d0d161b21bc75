package hdwallet

import (
	"errors"
	"fmt"
)

var (
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must not start or end with a '/' and " +
			"can optionally start with 'm/' for absolute paths",
	)
	// ErrInvalidHardenedSplit ...
	ErrInvalidHardenedSplit = errors.New(
		"derivation path must not contain a hardened index after a normal one",
	)
	// ErrMissingAccountKey ...
	ErrMissingAccountKey = errors.New(
		"derivation path crosses a hardened boundary, either an account-level " +
			"extended public key or the master private key must be provided",
	)
	// ErrKeyDerivationOverflow ...
	ErrKeyDerivationOverflow = errors.New(
		"derived child index is at or past the hardened index boundary",
	)
	// ErrNullMasterKey ...
	ErrNullMasterKey = errors.New("master key material must not be null")
	// ErrPrivateAccountKey ...
	ErrPrivateAccountKey = errors.New("account key must be an extended public key")

	// ErrRangeNotSpecified ...
	ErrRangeNotSpecified = errors.New("index range must not be empty")
)

// EmptyRangeError is returned when parsing an index range specifier that
// contains an empty token, like "0,,5-10".
type EmptyRangeError struct {
	Position int
}

func (e EmptyRangeError) Error() string {
	return fmt.Sprintf("empty range specifier at position %d", e.Position)
}

// WrongIndexNumberError is returned when a range bound cannot be parsed as a
// non-hardened child index.
type WrongIndexNumberError struct {
	Token    string
	Position int
}

func (e WrongIndexNumberError) Error() string {
	return fmt.Sprintf(
		"unable to parse '%s' as index at position %d", e.Token, e.Position,
	)
}

// WrongRangeError is returned for a malformed two-bound token, like "5-1" or
// "1-2-3".
type WrongRangeError struct {
	Token    string
	Position int
}

func (e WrongRangeError) Error() string {
	return fmt.Sprintf(
		"unable to parse '%s' as range at position %d", e.Token, e.Position,
	)
}
