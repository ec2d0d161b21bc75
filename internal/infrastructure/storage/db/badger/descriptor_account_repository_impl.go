package dbbadger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/Sosthene00/bitcoin-pro/internal/core/domain"
)

type descriptorAccountRepositoryImpl struct {
	db *DbManager
}

func NewDescriptorAccountRepositoryImpl(
	db *DbManager,
) domain.DescriptorAccountRepository {
	return descriptorAccountRepositoryImpl{db: db}
}

func (r descriptorAccountRepositoryImpl) AddAccount(
	_ context.Context, account *domain.DescriptorAccount,
) error {
	if _, err := r.findByName(account.Name); err == nil {
		return domain.ErrAccountAlreadyExists
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}

	err := r.db.DescriptorStore.Insert(account.ID, *account)
	if errors.Is(err, badgerhold.ErrKeyExists) {
		return domain.ErrAccountAlreadyExists
	}
	return err
}

func (r descriptorAccountRepositoryImpl) GetAccountByID(
	_ context.Context, id uuid.UUID,
) (*domain.DescriptorAccount, error) {
	var account domain.DescriptorAccount
	err := r.db.DescriptorStore.Get(id, &account)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r descriptorAccountRepositoryImpl) GetAccountByName(
	_ context.Context, name string,
) (*domain.DescriptorAccount, error) {
	return r.findByName(name)
}

func (r descriptorAccountRepositoryImpl) GetAllAccounts(
	_ context.Context,
) ([]domain.DescriptorAccount, error) {
	accounts := make([]domain.DescriptorAccount, 0)
	if err := r.db.DescriptorStore.Find(
		&accounts, &badgerhold.Query{},
	); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r descriptorAccountRepositoryImpl) UpdateAccount(
	ctx context.Context,
	id uuid.UUID,
	updateFn func(account *domain.DescriptorAccount) (*domain.DescriptorAccount, error),
) error {
	account, err := r.GetAccountByID(ctx, id)
	if err != nil {
		return err
	}

	updated, err := updateFn(account)
	if err != nil {
		return err
	}

	return r.db.DescriptorStore.Update(id, *updated)
}

func (r descriptorAccountRepositoryImpl) DeleteAccount(
	_ context.Context, id uuid.UUID,
) error {
	err := r.db.DescriptorStore.Delete(id, domain.DescriptorAccount{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return domain.ErrAccountNotFound
	}
	return err
}

func (r descriptorAccountRepositoryImpl) findByName(
	name string,
) (*domain.DescriptorAccount, error) {
	accounts := make([]domain.DescriptorAccount, 0)
	if err := r.db.DescriptorStore.Find(
		&accounts, badgerhold.Where("Name").Eq(name),
	); err != nil {
		return nil, err
	}
	if len(accounts) <= 0 {
		return nil, domain.ErrAccountNotFound
	}
	return &accounts[0], nil
}
