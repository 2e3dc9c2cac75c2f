package app

import (
	"context"
	"testing"
	"time"

	"github.com/openvenue/mintgate/internal/authority"
	"github.com/openvenue/mintgate/internal/clock"
	"github.com/openvenue/mintgate/internal/codec"
	"github.com/openvenue/mintgate/internal/domain"
)

func TestSetupService(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	makeSvc := func() (*SetupService, *fakeSetupRepo) {
		repo := newFakeSetupRepo()
		return NewSetupService(repo, clock.NewFixed(now)), repo
	}

	t.Run("marketplace gets a derived treasury account", func(t *testing.T) {
		svc, repo := makeSvc()

		marketplace, err := svc.CreateMarketplace(context.Background(), CreateMarketplaceInput{
			Name:   "main-stage",
			FeeBps: 250,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		wantTreasury := authority.DeriveTreasury("main-stage", authority.DefaultBump).String()
		if marketplace.TreasuryID != wantTreasury {
			t.Fatalf("expected treasury %s, got %s", wantTreasury, marketplace.TreasuryID)
		}
		if _, ok := repo.accounts[wantTreasury]; !ok {
			t.Fatalf("expected treasury account created")
		}
	})

	t.Run("marketplace name required", func(t *testing.T) {
		svc, _ := makeSvc()
		if _, err := svc.CreateMarketplace(context.Background(), CreateMarketplaceInput{}); err != domain.ErrNameRequired {
			t.Fatalf("expected ErrNameRequired, got %v", err)
		}
	})

	t.Run("manager authority re-derives from organizer and bump", func(t *testing.T) {
		svc, repo := makeSvc()

		manager, err := svc.CreateManager(context.Background(), CreateManagerInput{OrganizerID: "organizer-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := authority.DeriveManager("organizer-1", manager.Bump)
		if manager.Authority != want.String() {
			t.Fatalf("expected authority %s, got %s", want, manager.Authority)
		}
		if _, ok := repo.managers["organizer-1"]; !ok {
			t.Fatalf("expected manager stored")
		}
	})

	t.Run("collection record carries capacity and transferability", func(t *testing.T) {
		svc, repo := makeSvc()

		if _, err := svc.CreateManager(context.Background(), CreateManagerInput{OrganizerID: "organizer-1"}); err != nil {
			t.Fatalf("create manager: %v", err)
		}

		collection, err := svc.CreateCollection(context.Background(), CreateCollectionInput{
			OrganizerID:  "organizer-1",
			Name:         "Launch Party",
			URI:          "https://example.com/event.json",
			Capacity:     100,
			Transferable: true,
			Attributes:   []domain.Attribute{{Key: "City", Value: "Lisbon"}},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		record, err := codec.DecodeCollectionRecord(repo.collections[collection.ID].Record)
		if err != nil {
			t.Fatalf("decode record: %v", err)
		}
		if record.NumMinted != 0 {
			t.Fatalf("expected num_minted 0, got %d", record.NumMinted)
		}
		if v, ok := record.Attribute(domain.AttrCapacity); !ok || v != "100" {
			t.Fatalf("expected capacity 100, got %q present=%v", v, ok)
		}
		if v, ok := record.Attribute(domain.AttrIsTicketTransferable); !ok || v != "true" {
			t.Fatalf("expected transferable true, got %q present=%v", v, ok)
		}
		if v, ok := record.Attribute("City"); !ok || v != "Lisbon" {
			t.Fatalf("expected extra attribute kept, got %q present=%v", v, ok)
		}
		wantAuthority := authority.DeriveManager("organizer-1", authority.DefaultBump).String()
		if record.UpdateAuthority != wantAuthority {
			t.Fatalf("expected update authority %s, got %s", wantAuthority, record.UpdateAuthority)
		}
	})

	t.Run("collection requires an existing manager", func(t *testing.T) {
		svc, _ := makeSvc()

		_, err := svc.CreateCollection(context.Background(), CreateCollectionInput{
			OrganizerID: "organizer-1",
			Name:        "Launch Party",
			Capacity:    10,
		})
		if err != domain.ErrManagerNotFound {
			t.Fatalf("expected ErrManagerNotFound, got %v", err)
		}
	})

	t.Run("collection rejects zero capacity", func(t *testing.T) {
		svc, _ := makeSvc()

		_, err := svc.CreateCollection(context.Background(), CreateCollectionInput{
			OrganizerID: "organizer-1",
			Name:        "Launch Party",
			Capacity:    0,
		})
		if err != domain.ErrInvalidCapacity {
			t.Fatalf("expected ErrInvalidCapacity, got %v", err)
		}
	})

	t.Run("account creation", func(t *testing.T) {
		svc, repo := makeSvc()

		account, err := svc.CreateAccount(context.Background(), CreateAccountInput{ID: "buyer-1", Balance: 1000})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if account.Balance != 1000 {
			t.Fatalf("expected balance 1000, got %d", account.Balance)
		}
		if _, ok := repo.accounts["buyer-1"]; !ok {
			t.Fatalf("expected account stored")
		}

		if _, err := svc.CreateAccount(context.Background(), CreateAccountInput{ID: "buyer-1"}); err != domain.ErrAccountAlreadyExists {
			t.Fatalf("expected ErrAccountAlreadyExists, got %v", err)
		}
	})
}

type fakeSetupRepo struct {
	marketplaces map[string]domain.Marketplace
	accounts     map[string]domain.Account
	managers     map[string]domain.Manager
	collections  map[string]domain.Collection
}

func newFakeSetupRepo() *fakeSetupRepo {
	return &fakeSetupRepo{
		marketplaces: make(map[string]domain.Marketplace),
		accounts:     make(map[string]domain.Account),
		managers:     make(map[string]domain.Manager),
		collections:  make(map[string]domain.Collection),
	}
}

func (f *fakeSetupRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeSetupRepo) CreateMarketplace(_ context.Context, marketplace domain.Marketplace) error {
	if _, ok := f.marketplaces[marketplace.Name]; ok {
		return domain.ErrMarketplaceAlreadyExists
	}
	f.marketplaces[marketplace.Name] = marketplace
	return nil
}

func (f *fakeSetupRepo) CreateAccount(_ context.Context, account domain.Account) error {
	if _, ok := f.accounts[account.ID]; ok {
		return domain.ErrAccountAlreadyExists
	}
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeSetupRepo) CreateManager(_ context.Context, manager domain.Manager) error {
	if _, ok := f.managers[manager.OrganizerID]; ok {
		return domain.ErrManagerAlreadyExists
	}
	f.managers[manager.OrganizerID] = manager
	return nil
}

func (f *fakeSetupRepo) GetManager(_ context.Context, organizerID string) (domain.Manager, error) {
	m, ok := f.managers[organizerID]
	if !ok {
		return domain.Manager{}, domain.ErrManagerNotFound
	}
	return m, nil
}

func (f *fakeSetupRepo) CreateCollection(_ context.Context, collection domain.Collection) error {
	if _, ok := f.collections[collection.ID]; ok {
		return domain.ErrCollectionAlreadyExists
	}
	f.collections[collection.ID] = collection
	return nil
}
