package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sosthene00/bitcoin-pro/pkg/descriptor"
)

// TrackingAccount is a named key source kept in the registry so it can be
// reused across descriptor accounts.
type TrackingAccount struct {
	ID        uuid.UUID
	Name      string
	Key       KeyRecipe
	CreatedAt time.Time
}

// NewTrackingAccount returns a new account after checking that the recipe
// holds parseable key material.
func NewTrackingAccount(name string, key KeyRecipe) (*TrackingAccount, error) {
	if len(name) <= 0 {
		return nil, ErrAccountNameRequired
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}

	return &TrackingAccount{
		ID:        uuid.New(),
		Name:      name,
		Key:       key,
		CreatedAt: time.Now(),
	}, nil
}

// SingleSig reconstructs the live key source of the account.
func (a *TrackingAccount) SingleSig() (descriptor.SingleSig, error) {
	return a.Key.SingleSig()
}
