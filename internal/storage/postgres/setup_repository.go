package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openvenue/mintgate/internal/domain"
)

type SetupRepository struct {
	pool *pgxpool.Pool
}

func NewSetupRepository(pool *pgxpool.Pool) *SetupRepository {
	return &SetupRepository{pool: pool}
}

func (r *SetupRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *SetupRepository) CreateMarketplace(ctx context.Context, marketplace domain.Marketplace) error {
	const stmt = `
INSERT INTO marketplaces (name, fee_bps, treasury_id, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.exec(ctx, stmt,
		marketplace.Name,
		marketplace.FeeBps,
		marketplace.TreasuryID,
		marketplace.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMarketplaceAlreadyExists
		}
		return fmt.Errorf("create marketplace: %w", err)
	}
	return nil
}

func (r *SetupRepository) CreateAccount(ctx context.Context, account domain.Account) error {
	const stmt = `INSERT INTO accounts (id, balance) VALUES ($1, $2)`

	_, err := r.exec(ctx, stmt, account.ID, int64(account.Balance))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *SetupRepository) CreateManager(ctx context.Context, manager domain.Manager) error {
	const stmt = `
INSERT INTO managers (organizer_id, authority, bump, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.exec(ctx, stmt,
		manager.OrganizerID,
		manager.Authority,
		int16(manager.Bump),
		manager.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrManagerAlreadyExists
		}
		return fmt.Errorf("create manager: %w", err)
	}
	return nil
}

func (r *SetupRepository) GetManager(ctx context.Context, organizerID string) (domain.Manager, error) {
	const query = `SELECT organizer_id, authority, bump, created_at FROM managers WHERE organizer_id = $1`

	var m domain.Manager
	err := r.queryRow(ctx, query, organizerID).
		Scan(&m.OrganizerID, &m.Authority, &m.Bump, &m.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Manager{}, domain.ErrManagerNotFound
		}
		return domain.Manager{}, fmt.Errorf("get manager: %w", err)
	}
	return m, nil
}

func (r *SetupRepository) CreateCollection(ctx context.Context, collection domain.Collection) error {
	const stmt = `INSERT INTO collections (id, record, created_at) VALUES ($1, $2, NOW())`

	_, err := r.exec(ctx, stmt, collection.ID, collection.Record)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCollectionAlreadyExists
		}
		return fmt.Errorf("create collection: %w", err)
	}
	return nil
}

func (r *SetupRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *SetupRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
