package domain

import (
	"context"

	"github.com/google/uuid"
)

type DescriptorAccountRepository interface {
	AddAccount(ctx context.Context, account *DescriptorAccount) error
	GetAccountByID(ctx context.Context, id uuid.UUID) (*DescriptorAccount, error)
	GetAccountByName(ctx context.Context, name string) (*DescriptorAccount, error)
	GetAllAccounts(ctx context.Context) ([]DescriptorAccount, error)
	UpdateAccount(
		ctx context.Context,
		id uuid.UUID,
		updateFn func(account *DescriptorAccount) (*DescriptorAccount, error),
	) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}
