package application

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"

	"github.com/Sosthene00/bitcoin-pro/internal/core/domain"
	"github.com/Sosthene00/bitcoin-pro/pkg/explorer"
)

type inMemoryTrackingRepository struct {
	accounts map[uuid.UUID]domain.TrackingAccount
}

func newInMemoryTrackingRepository() *inMemoryTrackingRepository {
	return &inMemoryTrackingRepository{
		accounts: map[uuid.UUID]domain.TrackingAccount{},
	}
}

func (r *inMemoryTrackingRepository) AddAccount(
	_ context.Context, account *domain.TrackingAccount,
) error {
	for _, existing := range r.accounts {
		if existing.Name == account.Name {
			return domain.ErrAccountAlreadyExists
		}
	}
	r.accounts[account.ID] = *account
	return nil
}

func (r *inMemoryTrackingRepository) GetAccountByID(
	_ context.Context, id uuid.UUID,
) (*domain.TrackingAccount, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

func (r *inMemoryTrackingRepository) GetAccountByName(
	_ context.Context, name string,
) (*domain.TrackingAccount, error) {
	for _, account := range r.accounts {
		if account.Name == name {
			account := account
			return &account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *inMemoryTrackingRepository) GetAllAccounts(
	_ context.Context,
) ([]domain.TrackingAccount, error) {
	accounts := make([]domain.TrackingAccount, 0, len(r.accounts))
	for _, account := range r.accounts {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (r *inMemoryTrackingRepository) UpdateAccount(
	ctx context.Context,
	id uuid.UUID,
	updateFn func(*domain.TrackingAccount) (*domain.TrackingAccount, error),
) error {
	account, err := r.GetAccountByID(ctx, id)
	if err != nil {
		return err
	}
	updated, err := updateFn(account)
	if err != nil {
		return err
	}
	r.accounts[id] = *updated
	return nil
}

func (r *inMemoryTrackingRepository) DeleteAccount(
	_ context.Context, id uuid.UUID,
) error {
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

type inMemoryDescriptorRepository struct {
	accounts map[uuid.UUID]domain.DescriptorAccount
}

func newInMemoryDescriptorRepository() *inMemoryDescriptorRepository {
	return &inMemoryDescriptorRepository{
		accounts: map[uuid.UUID]domain.DescriptorAccount{},
	}
}

func (r *inMemoryDescriptorRepository) AddAccount(
	_ context.Context, account *domain.DescriptorAccount,
) error {
	for _, existing := range r.accounts {
		if existing.Name == account.Name {
			return domain.ErrAccountAlreadyExists
		}
	}
	r.accounts[account.ID] = *account
	return nil
}

func (r *inMemoryDescriptorRepository) GetAccountByID(
	_ context.Context, id uuid.UUID,
) (*domain.DescriptorAccount, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

func (r *inMemoryDescriptorRepository) GetAccountByName(
	_ context.Context, name string,
) (*domain.DescriptorAccount, error) {
	for _, account := range r.accounts {
		if account.Name == name {
			account := account
			return &account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *inMemoryDescriptorRepository) GetAllAccounts(
	_ context.Context,
) ([]domain.DescriptorAccount, error) {
	accounts := make([]domain.DescriptorAccount, 0, len(r.accounts))
	for _, account := range r.accounts {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (r *inMemoryDescriptorRepository) UpdateAccount(
	ctx context.Context,
	id uuid.UUID,
	updateFn func(*domain.DescriptorAccount) (*domain.DescriptorAccount, error),
) error {
	account, err := r.GetAccountByID(ctx, id)
	if err != nil {
		return err
	}
	updated, err := updateFn(account)
	if err != nil {
		return err
	}
	r.accounts[id] = *updated
	return nil
}

func (r *inMemoryDescriptorRepository) DeleteAccount(
	_ context.Context, id uuid.UUID,
) error {
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

type inMemoryUnspentRepository struct {
	unspents map[domain.UnspentKey]domain.Unspent
}

func newInMemoryUnspentRepository() *inMemoryUnspentRepository {
	return &inMemoryUnspentRepository{
		unspents: map[domain.UnspentKey]domain.Unspent{},
	}
}

func (r *inMemoryUnspentRepository) AddUnspents(
	_ context.Context, unspents []domain.Unspent,
) (int, error) {
	added := 0
	for _, unspent := range unspents {
		if _, ok := r.unspents[unspent.Key()]; ok {
			continue
		}
		r.unspents[unspent.Key()] = unspent
		added++
	}
	return added, nil
}

func (r *inMemoryUnspentRepository) GetAllUnspents(
	_ context.Context,
) ([]domain.Unspent, error) {
	unspents := make([]domain.Unspent, 0, len(r.unspents))
	for _, unspent := range r.unspents {
		unspents = append(unspents, unspent)
	}
	return unspents, nil
}

func (r *inMemoryUnspentRepository) GetUnspentsForAccount(
	_ context.Context, accountID uuid.UUID,
) ([]domain.Unspent, error) {
	unspents := make([]domain.Unspent, 0)
	for _, unspent := range r.unspents {
		if unspent.AccountID == accountID {
			unspents = append(unspents, unspent)
		}
	}
	return unspents, nil
}

func (r *inMemoryUnspentRepository) GetBalanceForAccount(
	ctx context.Context, accountID uuid.UUID,
) (uint64, error) {
	unspents, _ := r.GetUnspentsForAccount(ctx, accountID)
	var balance uint64
	for _, unspent := range unspents {
		balance += unspent.Value
	}
	return balance, nil
}

func (r *inMemoryUnspentRepository) GetUnspentForKey(
	_ context.Context, key domain.UnspentKey,
) (*domain.Unspent, error) {
	unspent, ok := r.unspents[key]
	if !ok {
		return nil, nil
	}
	return &unspent, nil
}

func (r *inMemoryUnspentRepository) DeleteUnspentsForAccount(
	_ context.Context, accountID uuid.UUID,
) error {
	for key, unspent := range r.unspents {
		if unspent.AccountID == accountID {
			delete(r.unspents, key)
		}
	}
	return nil
}

// mockExplorer serves canned utxos keyed by scriptPubKey hex.
type mockExplorer struct {
	unspents map[string][]explorer.Utxo
}

func (m *mockExplorer) GetUnspentsForScript(
	script []byte,
) ([]explorer.Utxo, error) {
	return m.unspents[hex.EncodeToString(script)], nil
}

func (m *mockExplorer) GetUnspentsForScripts(
	scripts [][]byte,
) ([]explorer.Utxo, error) {
	unspents := make([]explorer.Utxo, 0)
	for _, script := range scripts {
		found, _ := m.GetUnspentsForScript(script)
		unspents = append(unspents, found...)
	}
	return unspents, nil
}

func (m *mockExplorer) GetTransactionHex(_ string) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockExplorer) IsTransactionConfirmed(_ string) (bool, error) {
	return false, errors.New("not implemented")
}

func (m *mockExplorer) GetBlockHeight() (int, error) {
	return 0, nil
}
