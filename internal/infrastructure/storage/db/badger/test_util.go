package dbbadger

import (
	"context"
	"testing"

	"github.com/Sosthene00/bitcoin-pro/internal/core/domain"
)

type testRepositories struct {
	accounts    domain.TrackingAccountRepository
	descriptors domain.DescriptorAccountRepository
	unspents    domain.UnspentRepository
}

func newTestDb(t *testing.T) (context.Context, testRepositories) {
	t.Helper()

	dbManager, err := NewDbManager(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := dbManager.Close(); err != nil {
			t.Error(err)
		}
	})

	return context.Background(), testRepositories{
		accounts:    NewTrackingAccountRepositoryImpl(dbManager),
		descriptors: NewDescriptorAccountRepositoryImpl(dbManager),
		unspents:    NewUnspentRepositoryImpl(dbManager),
	}
}
