package dbbadger

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sosthene00/bitcoin-pro/internal/core/domain"
)

func testPubkeyHex(t *testing.T, tag byte) string {
	t.Helper()

	_, pubkey := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{tag}, 32))
	return hex.EncodeToString(pubkey.SerializeCompressed())
}

func TestAddAndGetTrackingAccount(t *testing.T) {
	ctx, repos := newTestDb(t)

	account, err := domain.NewTrackingAccount("alice key", domain.KeyRecipe{
		PubkeyHex: testPubkeyHex(t, 1),
	})
	require.NoError(t, err)
	require.NoError(t, repos.accounts.AddAccount(ctx, account))

	byID, err := repos.accounts.GetAccountByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Name, byID.Name)
	assert.Equal(t, account.Key, byID.Key)

	byName, err := repos.accounts.GetAccountByName(ctx, "alice key")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byName.ID)

	// the restored recipe still yields a working key source
	key, err := byID.SingleSig()
	require.NoError(t, err)
	assert.Equal(t, testPubkeyHex(t, 1), key.Identity())
}

func TestAddTrackingAccountTwice(t *testing.T) {
	ctx, repos := newTestDb(t)

	account, err := domain.NewTrackingAccount("alice key", domain.KeyRecipe{
		PubkeyHex: testPubkeyHex(t, 1),
	})
	require.NoError(t, err)
	require.NoError(t, repos.accounts.AddAccount(ctx, account))

	sameName, err := domain.NewTrackingAccount("alice key", domain.KeyRecipe{
		PubkeyHex: testPubkeyHex(t, 2),
	})
	require.NoError(t, err)
	err = repos.accounts.AddAccount(ctx, sameName)
	assert.EqualError(t, err, domain.ErrAccountAlreadyExists.Error())
}

func TestAddTrackingAccountOnClosedStore(t *testing.T) {
	dbManager, err := NewDbManager(t.TempDir(), nil)
	require.NoError(t, err)
	repo := NewTrackingAccountRepositoryImpl(dbManager)
	require.NoError(t, dbManager.Close())

	account, err := domain.NewTrackingAccount("alice key", domain.KeyRecipe{
		PubkeyHex: testPubkeyHex(t, 1),
	})
	require.NoError(t, err)

	// a failing uniqueness probe surfaces the store error instead of
	// treating the name as free
	err = repo.AddAccount(context.Background(), account)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAccountAlreadyExists)
	assert.NotErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestUpdateTrackingAccount(t *testing.T) {
	ctx, repos := newTestDb(t)

	account, err := domain.NewTrackingAccount("old name", domain.KeyRecipe{
		PubkeyHex: testPubkeyHex(t, 1),
	})
	require.NoError(t, err)
	require.NoError(t, repos.accounts.AddAccount(ctx, account))

	err = repos.accounts.UpdateAccount(
		ctx, account.ID,
		func(a *domain.TrackingAccount) (*domain.TrackingAccount, error) {
			a.Name = "new name"
			return a, nil
		},
	)
	require.NoError(t, err)

	updated, err := repos.accounts.GetAccountByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "new name", updated.Name)
}

func TestDeleteTrackingAccount(t *testing.T) {
	ctx, repos := newTestDb(t)

	account, err := domain.NewTrackingAccount("alice key", domain.KeyRecipe{
		PubkeyHex: testPubkeyHex(t, 1),
	})
	require.NoError(t, err)
	require.NoError(t, repos.accounts.AddAccount(ctx, account))
	require.NoError(t, repos.accounts.DeleteAccount(ctx, account.ID))

	_, err = repos.accounts.GetAccountByID(ctx, account.ID)
	assert.EqualError(t, err, domain.ErrAccountNotFound.Error())

	err = repos.accounts.DeleteAccount(ctx, uuid.New())
	assert.EqualError(t, err, domain.ErrAccountNotFound.Error())
}

func TestGetAllTrackingAccounts(t *testing.T) {
	ctx, repos := newTestDb(t)

	for i, name := range []string{"first", "second", "third"} {
		account, err := domain.NewTrackingAccount(name, domain.KeyRecipe{
			PubkeyHex: testPubkeyHex(t, byte(i+1)),
		})
		require.NoError(t, err)
		require.NoError(t, repos.accounts.AddAccount(ctx, account))
	}

	accounts, err := repos.accounts.GetAllAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}
