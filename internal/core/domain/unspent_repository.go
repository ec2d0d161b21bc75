package domain

import (
	"context"

	"github.com/google/uuid"
)

type UnspentRepository interface {
	// AddUnspents inserts the given coins and returns how many were new.
	// Coins already known by their UnspentKey are left untouched.
	AddUnspents(ctx context.Context, unspents []Unspent) (int, error)
	GetAllUnspents(ctx context.Context) ([]Unspent, error)
	GetUnspentsForAccount(
		ctx context.Context, accountID uuid.UUID,
	) ([]Unspent, error)
	GetBalanceForAccount(ctx context.Context, accountID uuid.UUID) (uint64, error)
	GetUnspentForKey(ctx context.Context, key UnspentKey) (*Unspent, error)
	DeleteUnspentsForAccount(ctx context.Context, accountID uuid.UUID) error
}
