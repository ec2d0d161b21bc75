package domain

import "errors"

var (
	// ErrAccountNameRequired ...
	ErrAccountNameRequired = errors.New("account name must not be null")
	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists ...
	ErrAccountAlreadyExists = errors.New("account with same name already exists")
	// ErrNullKeyRecipe ...
	ErrNullKeyRecipe = errors.New(
		"either a public key or an extended key recipe must be set",
	)
	// ErrAmbiguousKeyRecipe ...
	ErrAmbiguousKeyRecipe = errors.New(
		"a key recipe must be either a public key or an extended key, not both",
	)
	// ErrUnknownTemplateType ...
	ErrUnknownTemplateType = errors.New("unknown descriptor template type")
)
