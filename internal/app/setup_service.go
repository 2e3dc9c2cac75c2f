package app

import (
	"context"
	"strconv"

	"github.com/openvenue/mintgate/internal/authority"
	"github.com/openvenue/mintgate/internal/clock"
	"github.com/openvenue/mintgate/internal/codec"
	"github.com/openvenue/mintgate/internal/domain"
)

type SetupRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateMarketplace(ctx context.Context, marketplace domain.Marketplace) error
	CreateAccount(ctx context.Context, account domain.Account) error
	CreateManager(ctx context.Context, manager domain.Manager) error
	GetManager(ctx context.Context, organizerID string) (domain.Manager, error)
	CreateCollection(ctx context.Context, collection domain.Collection) error
}

// SetupService bootstraps the records issuance reads: marketplaces with
// their treasuries, organizer managers, event collections, and funded
// buyer accounts.
type SetupService struct {
	repo  SetupRepository
	clock clock.Clock
}

func NewSetupService(repo SetupRepository, clk clock.Clock) *SetupService {
	return &SetupService{
		repo:  repo,
		clock: clk,
	}
}

type CreateMarketplaceInput struct {
	Name   string
	FeeBps uint16
}

func (s *SetupService) CreateMarketplace(ctx context.Context, in CreateMarketplaceInput) (domain.Marketplace, error) {
	if in.Name == "" {
		return domain.Marketplace{}, domain.ErrNameRequired
	}

	treasury := authority.DeriveTreasury(in.Name, authority.DefaultBump)
	marketplace := domain.Marketplace{
		Name:       in.Name,
		FeeBps:     in.FeeBps,
		TreasuryID: treasury.String(),
		CreatedAt:  s.clock.Now(),
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		// Treasury account first: the marketplace row references it.
		if err := s.repo.CreateAccount(txCtx, domain.Account{ID: marketplace.TreasuryID}); err != nil {
			return err
		}
		return s.repo.CreateMarketplace(txCtx, marketplace)
	})
	if err != nil {
		return domain.Marketplace{}, err
	}
	return marketplace, nil
}

type CreateManagerInput struct {
	OrganizerID string
}

func (s *SetupService) CreateManager(ctx context.Context, in CreateManagerInput) (domain.Manager, error) {
	if in.OrganizerID == "" {
		return domain.Manager{}, domain.ErrInvalidID
	}

	bump := authority.DefaultBump
	manager := domain.Manager{
		OrganizerID: in.OrganizerID,
		Authority:   authority.DeriveManager(in.OrganizerID, bump).String(),
		Bump:        bump,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.CreateManager(ctx, manager); err != nil {
		return domain.Manager{}, err
	}
	return manager, nil
}

type CreateCollectionInput struct {
	OrganizerID  string
	Name         string
	URI          string
	Capacity     uint32
	Transferable bool
	Attributes   []domain.Attribute
}

// CreateCollection encodes and stores a fresh event collection record with
// the capacity and transferability attributes issuance depends on.
func (s *SetupService) CreateCollection(ctx context.Context, in CreateCollectionInput) (domain.Collection, error) {
	if in.OrganizerID == "" {
		return domain.Collection{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Collection{}, domain.ErrNameRequired
	}
	if in.Capacity == 0 {
		return domain.Collection{}, domain.ErrInvalidCapacity
	}

	var result domain.Collection
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		manager, err := s.repo.GetManager(txCtx, in.OrganizerID)
		if err != nil {
			return err
		}

		attributes := []domain.Attribute{
			{Key: domain.AttrCapacity, Value: strconv.FormatUint(uint64(in.Capacity), 10)},
			{Key: domain.AttrIsTicketTransferable, Value: strconv.FormatBool(in.Transferable)},
		}
		attributes = append(attributes, in.Attributes...)

		record, err := codec.EncodeCollectionRecord(domain.CollectionRecord{
			Name:            in.Name,
			URI:             in.URI,
			UpdateAuthority: manager.Authority,
			NumMinted:       0,
			Attributes:      attributes,
		})
		if err != nil {
			return err
		}

		collection := domain.Collection{ID: newUUID(), Record: record}
		if err := s.repo.CreateCollection(txCtx, collection); err != nil {
			return err
		}
		result = collection
		return nil
	})
	if err != nil {
		return domain.Collection{}, err
	}
	return result, nil
}

type CreateAccountInput struct {
	ID      string
	Balance uint64
}

func (s *SetupService) CreateAccount(ctx context.Context, in CreateAccountInput) (domain.Account, error) {
	if in.ID == "" {
		return domain.Account{}, domain.ErrInvalidID
	}

	account := domain.Account{ID: in.ID, Balance: in.Balance}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}
