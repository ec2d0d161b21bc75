package dbbadger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/Sosthene00/bitcoin-pro/internal/core/domain"
)

type trackingAccountRepositoryImpl struct {
	db *DbManager
}

func NewTrackingAccountRepositoryImpl(
	db *DbManager,
) domain.TrackingAccountRepository {
	return trackingAccountRepositoryImpl{db: db}
}

func (r trackingAccountRepositoryImpl) AddAccount(
	_ context.Context, account *domain.TrackingAccount,
) error {
	if _, err := r.findByName(account.Name); err == nil {
		return domain.ErrAccountAlreadyExists
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}

	err := r.db.AccountStore.Insert(account.ID, *account)
	if errors.Is(err, badgerhold.ErrKeyExists) {
		return domain.ErrAccountAlreadyExists
	}
	return err
}

func (r trackingAccountRepositoryImpl) GetAccountByID(
	_ context.Context, id uuid.UUID,
) (*domain.TrackingAccount, error) {
	var account domain.TrackingAccount
	err := r.db.AccountStore.Get(id, &account)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r trackingAccountRepositoryImpl) GetAccountByName(
	_ context.Context, name string,
) (*domain.TrackingAccount, error) {
	return r.findByName(name)
}

func (r trackingAccountRepositoryImpl) GetAllAccounts(
	_ context.Context,
) ([]domain.TrackingAccount, error) {
	accounts := make([]domain.TrackingAccount, 0)
	if err := r.db.AccountStore.Find(
		&accounts, &badgerhold.Query{},
	); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r trackingAccountRepositoryImpl) UpdateAccount(
	ctx context.Context,
	id uuid.UUID,
	updateFn func(account *domain.TrackingAccount) (*domain.TrackingAccount, error),
) error {
	account, err := r.GetAccountByID(ctx, id)
	if err != nil {
		return err
	}

	updated, err := updateFn(account)
	if err != nil {
		return err
	}

	return r.db.AccountStore.Update(id, *updated)
}

func (r trackingAccountRepositoryImpl) DeleteAccount(
	_ context.Context, id uuid.UUID,
) error {
	err := r.db.AccountStore.Delete(id, domain.TrackingAccount{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return domain.ErrAccountNotFound
	}
	return err
}

func (r trackingAccountRepositoryImpl) findByName(
	name string,
) (*domain.TrackingAccount, error) {
	accounts := make([]domain.TrackingAccount, 0)
	if err := r.db.AccountStore.Find(
		&accounts, badgerhold.Where("Name").Eq(name),
	); err != nil {
		return nil, err
	}
	if len(accounts) <= 0 {
		return nil, domain.ErrAccountNotFound
	}
	return &accounts[0], nil
}
