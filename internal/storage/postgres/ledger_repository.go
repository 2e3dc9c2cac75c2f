package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openvenue/mintgate/internal/domain"
)

type LedgerRepository struct {
	pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *LedgerRepository) GetMarketplace(ctx context.Context, name string) (domain.Marketplace, error) {
	const query = `SELECT name, fee_bps, treasury_id, created_at FROM marketplaces WHERE name = $1`

	var m domain.Marketplace
	err := r.queryRow(ctx, query, name).
		Scan(&m.Name, &m.FeeBps, &m.TreasuryID, &m.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Marketplace{}, domain.ErrMarketplaceNotFound
		}
		return domain.Marketplace{}, fmt.Errorf("get marketplace: %w", err)
	}
	return m, nil
}

func (r *LedgerRepository) GetManager(ctx context.Context, organizerID string) (domain.Manager, error) {
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

// GetCollectionForUpdate returns the collection's raw stored record under an
// exclusive row lock held until the surrounding transaction ends.
func (r *LedgerRepository) GetCollectionForUpdate(ctx context.Context, collectionID string) ([]byte, error) {
	const query = `SELECT record FROM collections WHERE id = $1 FOR UPDATE`

	var record []byte
	if err := r.queryRow(ctx, query, collectionID).Scan(&record); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return record, nil
}

// Transfer moves amount between accounts. A zero amount still validates
// both accounts exist.
func (r *LedgerRepository) Transfer(ctx context.Context, fromID, toID string, amount uint64) error {
	const debit = `UPDATE accounts SET balance = balance - $2 WHERE id = $1`
	const credit = `UPDATE accounts SET balance = balance + $2 WHERE id = $1`

	tag, err := r.exec(ctx, debit, fromID, int64(amount))
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientFunds
		}
		return fmt.Errorf("debit account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	tag, err = r.exec(ctx, credit, toID, int64(amount))
	if err != nil {
		return fmt.Errorf("credit account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *LedgerRepository) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	const query = `SELECT id, balance FROM accounts WHERE id = $1`

	var a domain.Account
	var balance int64
	if err := r.queryRow(ctx, query, id).Scan(&a.ID, &balance); err != nil {
		if err == pgx.ErrNoRows {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	a.Balance = uint64(balance)
	return a, nil
}

func (r *LedgerRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *LedgerRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
