package dbbadger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/Sosthene00/bitcoin-pro/internal/core/domain"
)

type unspentRepositoryImpl struct {
	db *DbManager
}

func NewUnspentRepositoryImpl(db *DbManager) domain.UnspentRepository {
	return unspentRepositoryImpl{db: db}
}

func (r unspentRepositoryImpl) AddUnspents(
	_ context.Context, unspents []domain.Unspent,
) (int, error) {
	added := 0
	for _, unspent := range unspents {
		err := r.db.UnspentStore.Insert(unspent.Key(), unspent)
		if errors.Is(err, badgerhold.ErrKeyExists) {
			// the same coin found by a later pass is not a new coin
			continue
		}
		if err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (r unspentRepositoryImpl) GetAllUnspents(
	_ context.Context,
) ([]domain.Unspent, error) {
	unspents := make([]domain.Unspent, 0)
	if err := r.db.UnspentStore.Find(
		&unspents, &badgerhold.Query{},
	); err != nil {
		return nil, err
	}
	return unspents, nil
}

func (r unspentRepositoryImpl) GetUnspentsForAccount(
	_ context.Context, accountID uuid.UUID,
) ([]domain.Unspent, error) {
	unspents := make([]domain.Unspent, 0)
	if err := r.db.UnspentStore.Find(
		&unspents, badgerhold.Where("AccountID").Eq(accountID),
	); err != nil {
		return nil, err
	}
	return unspents, nil
}

func (r unspentRepositoryImpl) GetBalanceForAccount(
	ctx context.Context, accountID uuid.UUID,
) (uint64, error) {
	unspents, err := r.GetUnspentsForAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}

	var balance uint64
	for _, unspent := range unspents {
		balance += unspent.Value
	}
	return balance, nil
}

func (r unspentRepositoryImpl) GetUnspentForKey(
	_ context.Context, key domain.UnspentKey,
) (*domain.Unspent, error) {
	var unspent domain.Unspent
	err := r.db.UnspentStore.Get(key, &unspent)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &unspent, nil
}

func (r unspentRepositoryImpl) DeleteUnspentsForAccount(
	_ context.Context, accountID uuid.UUID,
) error {
	return r.db.UnspentStore.DeleteMatching(
		domain.Unspent{}, badgerhold.Where("AccountID").Eq(accountID),
	)
}
