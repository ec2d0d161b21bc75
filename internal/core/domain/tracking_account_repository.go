package domain

import (
	"context"

	"github.com/google/uuid"
)

type TrackingAccountRepository interface {
	AddAccount(ctx context.Context, account *TrackingAccount) error
	GetAccountByID(ctx context.Context, id uuid.UUID) (*TrackingAccount, error)
	GetAccountByName(ctx context.Context, name string) (*TrackingAccount, error)
	GetAllAccounts(ctx context.Context) ([]TrackingAccount, error)
	UpdateAccount(
		ctx context.Context,
		id uuid.UUID,
		updateFn func(account *TrackingAccount) (*TrackingAccount, error),
	) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}
