package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openvenue/mintgate/internal/asset"
	"github.com/openvenue/mintgate/internal/codec"
	"github.com/openvenue/mintgate/internal/domain"
)

// AssetStore is the asset-creation system: it materializes ticket assets as
// children of their collection and advances the collection's mint counter.
// CreateAsset participates in whatever transaction the caller's context
// carries, so a failed issuance leaves neither an asset nor a counter bump.
type AssetStore struct {
	pool *pgxpool.Pool
}

func NewAssetStore(pool *pgxpool.Pool) *AssetStore {
	return &AssetStore{pool: pool}
}

func (s *AssetStore) CreateAsset(ctx context.Context, req asset.CreateRequest) error {
	const lockCollection = `SELECT record FROM collections WHERE id = $1 FOR UPDATE`
	const updateCollection = `UPDATE collections SET record = $2 WHERE id = $1`
	const insertAsset = `
INSERT INTO assets (id, collection_id, owner_id, ticket_number, record, created_at)
VALUES ($1, $2, $3, $4, $5, NOW())`

	var raw []byte
	if err := s.queryRow(ctx, lockCollection, req.CollectionID).Scan(&raw); err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrCollectionNotFound
		}
		return fmt.Errorf("lock collection: %w", err)
	}

	record, err := codec.DecodeCollectionRecord(raw)
	if err != nil {
		return err
	}
	if record.NumMinted == math.MaxUint32 {
		return domain.ErrNumericalOverflow
	}
	record.NumMinted++

	updated, err := codec.EncodeCollectionRecord(record)
	if err != nil {
		return err
	}

	ticketRecord, err := codec.EncodeAssetRecord(domain.Ticket{
		Name:       req.Name,
		URI:        req.URI,
		Owner:      req.Owner,
		Attributes: req.Attributes,
		Delegates:  req.Delegates,
		AppData:    req.AppData,
	})
	if err != nil {
		return err
	}

	_, err = s.exec(ctx, insertAsset,
		req.AssetID,
		req.CollectionID,
		req.Owner,
		int64(record.NumMinted),
		ticketRecord,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTicketAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrCollectionNotFound
		}
		return fmt.Errorf("insert asset: %w", err)
	}

	if _, err := s.exec(ctx, updateCollection, req.CollectionID, updated); err != nil {
		return fmt.Errorf("update collection record: %w", err)
	}
	return nil
}

// GetTicket loads one minted ticket asset by ID.
func (s *AssetStore) GetTicket(ctx context.Context, id string) (domain.Ticket, error) {
	const query = `
SELECT id, collection_id, record, created_at
FROM assets
WHERE id = $1`

	var (
		assetID      string
		collectionID string
		record       []byte
	)
	var ticket domain.Ticket
	err := s.queryRow(ctx, query, id).Scan(&assetID, &collectionID, &record, &ticket.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Ticket{}, domain.ErrTicketNotFound
		}
		return domain.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}

	decoded, err := codec.DecodeAssetRecord(record)
	if err != nil {
		return domain.Ticket{}, err
	}
	decoded.ID = assetID
	decoded.CollectionID = collectionID
	decoded.CreatedAt = ticket.CreatedAt
	return decoded, nil
}

func (s *AssetStore) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return s.pool.Exec(ctx, sql, args...)
}

func (s *AssetStore) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return s.pool.QueryRow(ctx, sql, args...)
}
