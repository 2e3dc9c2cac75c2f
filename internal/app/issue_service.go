package app

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/openvenue/mintgate/internal/asset"
	"github.com/openvenue/mintgate/internal/authority"
	"github.com/openvenue/mintgate/internal/clock"
	"github.com/openvenue/mintgate/internal/codec"
	"github.com/openvenue/mintgate/internal/domain"
)

type LedgerRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetMarketplace(ctx context.Context, name string) (domain.Marketplace, error)
	GetManager(ctx context.Context, organizerID string) (domain.Manager, error)
	GetCollectionForUpdate(ctx context.Context, collectionID string) ([]byte, error)
	Transfer(ctx context.Context, fromID, toID string, amount uint64) error
}

// IssueService mints tickets against an event collection. The whole
// operation (capacity guard, payment, asset creation) runs inside one
// repository transaction; no partial effect survives a failure.
type IssueService struct {
	repo   LedgerRepository
	minter asset.Minter
	clock  clock.Clock
}

func NewIssueService(repo LedgerRepository, minter asset.Minter, clk clock.Clock) *IssueService {
	return &IssueService{
		repo:   repo,
		minter: minter,
		clock:  clk,
	}
}

type IssueTicketInput struct {
	CollectionID    string
	MarketplaceName string
	OrganizerID     string
	BuyerID         string
	Name            string
	URI             string
	Price           uint64
	VenueAuthority  string
	// Seating metadata; empty means absent.
	Row    string
	Seat   string
	Screen string
}

func (s *IssueService) IssueTicket(ctx context.Context, in IssueTicketInput) (domain.Ticket, error) {
	if in.Name == "" {
		return domain.Ticket{}, domain.ErrNameRequired
	}
	if in.URI == "" {
		return domain.Ticket{}, domain.ErrURIRequired
	}
	if in.VenueAuthority == "" {
		return domain.Ticket{}, domain.ErrVenueAuthorityRequired
	}

	now := s.clock.Now()
	var result domain.Ticket

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		marketplace, err := s.repo.GetMarketplace(txCtx, in.MarketplaceName)
		if err != nil {
			return err
		}

		manager, err := s.repo.GetManager(txCtx, in.OrganizerID)
		if err != nil {
			return err
		}
		// The stored authority must re-derive from the organizer identity
		// and bump; a mismatch means the manager record was not established
		// for this organizer.
		derived := authority.DeriveManager(in.OrganizerID, manager.Bump)
		if manager.Authority != derived.String() {
			return domain.ErrAuthorityMismatch
		}

		// Row lock on the collection serializes concurrent issuance, so two
		// requests for the last slot cannot both pass the capacity guard.
		raw, err := s.repo.GetCollectionForUpdate(txCtx, in.CollectionID)
		if err != nil {
			return err
		}
		record, err := codec.DecodeCollectionRecord(raw)
		if err != nil {
			return err
		}

		capacity, err := collectionCapacity(record)
		if err != nil {
			return err
		}
		if record.NumMinted >= capacity {
			return domain.ErrMaximumTicketsReached
		}

		if err := s.repo.Transfer(txCtx, in.BuyerID, marketplace.TreasuryID, in.Price); err != nil {
			return err
		}

		if record.NumMinted == math.MaxUint32 {
			return domain.ErrNumericalOverflow
		}
		ticketNumber := record.NumMinted + 1

		builder := asset.NewBuilder(newUUID(), in.CollectionID).
			Name(in.Name).
			URI(in.URI).
			Owner(in.BuyerID).
			Payer(in.BuyerID).
			SigningAuthority(manager.Authority).
			Attribute(domain.AttrTicketNumber, strconv.FormatUint(uint64(ticketNumber), 10)).
			Attribute(domain.AttrPrice, strconv.FormatUint(in.Price, 10))
		if in.Row != "" {
			builder.Attribute(domain.AttrRow, in.Row)
		}
		if in.Seat != "" {
			builder.Attribute(domain.AttrSeat, in.Seat)
		}
		if in.Screen != "" {
			builder.Attribute(domain.AttrScreen, in.Screen)
		}

		builder.Delegate(domain.Delegate{Kind: domain.DelegateFreeze, Frozen: !isTicketTransferable(record)})
		builder.Delegate(domain.Delegate{Kind: domain.DelegateBurn})
		builder.Delegate(domain.Delegate{Kind: domain.DelegateTransfer})

		builder.AppData(domain.AppDataRegistration{
			DataAuthority: in.VenueAuthority,
			Schema:        domain.AppDataSchemaBinary,
		})

		req, err := builder.Build()
		if err != nil {
			return err
		}
		if err := s.minter.CreateAsset(txCtx, req); err != nil {
			return err
		}

		result = domain.Ticket{
			ID:           req.AssetID,
			CollectionID: req.CollectionID,
			Owner:        req.Owner,
			Name:         req.Name,
			URI:          req.URI,
			Attributes:   req.Attributes,
			Delegates:    req.Delegates,
			AppData:      req.AppData,
			CreatedAt:    now,
		}
		return nil
	})
	if err != nil {
		return domain.Ticket{}, err
	}

	return result, nil
}

func collectionCapacity(record domain.CollectionRecord) (uint32, error) {
	value, ok := record.Attribute(domain.AttrCapacity)
	if !ok {
		return 0, domain.ErrMissingCapacityAttribute
	}
	capacity, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, domain.ErrNumericalOverflow
	}
	return uint32(capacity), nil
}

func isTicketTransferable(record domain.CollectionRecord) bool {
	value, ok := record.Attribute(domain.AttrIsTicketTransferable)
	return ok && strings.EqualFold(value, "true")
}
