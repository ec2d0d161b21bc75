package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/Sosthene00/bitcoin-pro/internal/core/domain"
	"github.com/Sosthene00/bitcoin-pro/pkg/descriptor"
	"github.com/Sosthene00/bitcoin-pro/pkg/explorer"
	"github.com/Sosthene00/bitcoin-pro/pkg/lookup"
)

// ResolutionReport summarizes one resolution pass over a descriptor account.
type ResolutionReport struct {
	AccountName   string
	NewUnspents   int
	TotalUnspents int
	TotalValue    uint64
}

// AccountService orchestrates the account registry, the script generation and
// the coin resolution on top of the repositories and the chain index.
type AccountService interface {
	AddTrackingAccount(
		ctx context.Context, name string, key domain.KeyRecipe,
	) (*domain.TrackingAccount, error)
	ListTrackingAccounts(ctx context.Context) ([]domain.TrackingAccount, error)
	RemoveTrackingAccount(ctx context.Context, name string) error

	AddDescriptorAccount(
		ctx context.Context, opts domain.DescriptorAccountOpts,
	) (*domain.DescriptorAccount, error)
	ListDescriptorAccounts(ctx context.Context) ([]domain.DescriptorAccount, error)
	RemoveDescriptorAccount(ctx context.Context, name string) error

	GenerateScripts(
		ctx context.Context, accountName string, index uint32,
	) ([]descriptor.ScriptTemplate, error)
	ResolveUnspents(
		ctx context.Context, accountName string, mode lookup.Mode,
	) (*ResolutionReport, error)
	ListUnspents(ctx context.Context, accountName string) ([]domain.Unspent, error)
	GetBalance(ctx context.Context, accountName string) (uint64, error)
}

type accountService struct {
	trackingRepository   domain.TrackingAccountRepository
	descriptorRepository domain.DescriptorAccountRepository
	unspentRepository    domain.UnspentRepository
	explorerService      explorer.Service
	requestsPerSecond    float64
}

func NewAccountService(
	trackingRepository domain.TrackingAccountRepository,
	descriptorRepository domain.DescriptorAccountRepository,
	unspentRepository domain.UnspentRepository,
	explorerService explorer.Service,
	requestsPerSecond float64,
) AccountService {
	return &accountService{
		trackingRepository:   trackingRepository,
		descriptorRepository: descriptorRepository,
		unspentRepository:    unspentRepository,
		explorerService:      explorerService,
		requestsPerSecond:    requestsPerSecond,
	}
}

func (s *accountService) AddTrackingAccount(
	ctx context.Context, name string, key domain.KeyRecipe,
) (*domain.TrackingAccount, error) {
	account, err := domain.NewTrackingAccount(name, key)
	if err != nil {
		return nil, err
	}
	if err := s.trackingRepository.AddAccount(ctx, account); err != nil {
		return nil, err
	}

	log.Infof("added tracking account %s", account.Name)
	return account, nil
}

func (s *accountService) ListTrackingAccounts(
	ctx context.Context,
) ([]domain.TrackingAccount, error) {
	return s.trackingRepository.GetAllAccounts(ctx)
}

func (s *accountService) RemoveTrackingAccount(
	ctx context.Context, name string,
) error {
	account, err := s.trackingRepository.GetAccountByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.trackingRepository.DeleteAccount(ctx, account.ID); err != nil {
		return err
	}

	log.Infof("removed tracking account %s", name)
	return nil
}

func (s *accountService) AddDescriptorAccount(
	ctx context.Context, opts domain.DescriptorAccountOpts,
) (*domain.DescriptorAccount, error) {
	account, err := domain.NewDescriptorAccount(opts)
	if err != nil {
		return nil, err
	}
	if err := s.descriptorRepository.AddAccount(ctx, account); err != nil {
		return nil, err
	}

	log.Infof("added descriptor account %s", account.Name)
	return account, nil
}

func (s *accountService) ListDescriptorAccounts(
	ctx context.Context,
) ([]domain.DescriptorAccount, error) {
	return s.descriptorRepository.GetAllAccounts(ctx)
}

func (s *accountService) RemoveDescriptorAccount(
	ctx context.Context, name string,
) error {
	account, err := s.descriptorRepository.GetAccountByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.descriptorRepository.DeleteAccount(ctx, account.ID); err != nil {
		return err
	}
	// coins found for the account are meaningless without it
	if err := s.unspentRepository.DeleteUnspentsForAccount(
		ctx, account.ID,
	); err != nil {
		return err
	}

	log.Infof("removed descriptor account %s", name)
	return nil
}

func (s *accountService) GenerateScripts(
	ctx context.Context, accountName string, index uint32,
) ([]descriptor.ScriptTemplate, error) {
	account, err := s.descriptorRepository.GetAccountByName(ctx, accountName)
	if err != nil {
		return nil, err
	}
	generator, err := account.Generator()
	if err != nil {
		return nil, err
	}
	return generator.ScriptsAt(index)
}

func (s *accountService) ResolveUnspents(
	ctx context.Context, accountName string, mode lookup.Mode,
) (*ResolutionReport, error) {
	account, err := s.descriptorRepository.GetAccountByName(ctx, accountName)
	if err != nil {
		return nil, err
	}
	generator, err := account.Generator()
	if err != nil {
		return nil, err
	}
	ranges, err := account.Ranges()
	if err != nil {
		return nil, err
	}

	engine, err := lookup.NewEngine(lookup.Opts{
		ExplorerSvc:       s.explorerService,
		Mode:              mode,
		RequestsPerSecond: s.requestsPerSecond,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"account": accountName,
		"mode":    mode.String(),
	}).Info("starting coin resolution")

	entries, err := engine.Lookup(ctx, lookup.Request{
		Generator: generator,
		Indexes:   ranges,
	})
	if err != nil {
		return nil, err
	}

	unspents := make([]domain.Unspent, 0, len(entries))
	for _, entry := range entries {
		unspents = append(unspents, domain.NewUnspentFromEntry(entry, account.ID))
	}
	added, err := s.unspentRepository.AddUnspents(ctx, unspents)
	if err != nil {
		return nil, err
	}

	all, err := s.unspentRepository.GetUnspentsForAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	var total uint64
	for _, unspent := range all {
		total += unspent.Value
	}

	log.WithFields(log.Fields{
		"account": accountName,
		"new":     added,
		"total":   len(all),
	}).Info("coin resolution completed")

	return &ResolutionReport{
		AccountName:   accountName,
		NewUnspents:   added,
		TotalUnspents: len(all),
		TotalValue:    total,
	}, nil
}

func (s *accountService) ListUnspents(
	ctx context.Context, accountName string,
) ([]domain.Unspent, error) {
	account, err := s.descriptorRepository.GetAccountByName(ctx, accountName)
	if err != nil {
		return nil, err
	}
	return s.unspentRepository.GetUnspentsForAccount(ctx, account.ID)
}

func (s *accountService) GetBalance(
	ctx context.Context, accountName string,
) (uint64, error) {
	account, err := s.descriptorRepository.GetAccountByName(ctx, accountName)
	if err != nil {
		return 0, err
	}
	return s.unspentRepository.GetBalanceForAccount(ctx, account.ID)
}
