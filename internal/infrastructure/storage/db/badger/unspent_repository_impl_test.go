package dbbadger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sosthene00/bitcoin-pro/internal/core/domain"
)

func TestAddUnspentsIsIdempotent(t *testing.T) {
	ctx, repos := newTestDb(t)
	accountID := uuid.New()

	unspents := []domain.Unspent{
		{
			TxID:      "aa",
			VOut:      0,
			Value:     1000,
			AccountID: accountID,
			Variant:   "segwit",
			Confirmed: true,
		},
		{
			TxID:      "aa",
			VOut:      1,
			Value:     2500,
			AccountID: accountID,
			Variant:   "segwit",
		},
	}

	added, err := repos.unspents.AddUnspents(ctx, unspents)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	// a second pass over the same coins adds nothing
	added, err = repos.unspents.AddUnspents(ctx, unspents)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	all, err := repos.unspents.GetAllUnspents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	balance, err := repos.unspents.GetBalanceForAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3500), balance)
}

func TestGetUnspentsForAccount(t *testing.T) {
	ctx, repos := newTestDb(t)
	first, second := uuid.New(), uuid.New()

	_, err := repos.unspents.AddUnspents(ctx, []domain.Unspent{
		{TxID: "aa", VOut: 0, Value: 1000, AccountID: first},
		{TxID: "bb", VOut: 0, Value: 2000, AccountID: second},
		{TxID: "cc", VOut: 3, Value: 3000, AccountID: first},
	})
	require.NoError(t, err)

	unspents, err := repos.unspents.GetUnspentsForAccount(ctx, first)
	require.NoError(t, err)
	assert.Len(t, unspents, 2)
	for _, unspent := range unspents {
		assert.Equal(t, first, unspent.AccountID)
	}

	unspent, err := repos.unspents.GetUnspentForKey(
		ctx, domain.UnspentKey{TxID: "bb", VOut: 0},
	)
	require.NoError(t, err)
	require.NotNil(t, unspent)
	assert.Equal(t, uint64(2000), unspent.Value)

	missing, err := repos.unspents.GetUnspentForKey(
		ctx, domain.UnspentKey{TxID: "dd", VOut: 0},
	)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteUnspentsForAccount(t *testing.T) {
	ctx, repos := newTestDb(t)
	first, second := uuid.New(), uuid.New()

	_, err := repos.unspents.AddUnspents(ctx, []domain.Unspent{
		{TxID: "aa", VOut: 0, Value: 1000, AccountID: first},
		{TxID: "bb", VOut: 0, Value: 2000, AccountID: second},
	})
	require.NoError(t, err)

	require.NoError(t, repos.unspents.DeleteUnspentsForAccount(ctx, first))

	all, err := repos.unspents.GetAllUnspents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second, all[0].AccountID)
}
