package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool (and pgx.Tx) used by KV.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	selectRecord = `SELECT value FROM paywall_records WHERE key = $1`
	insertRecord = `INSERT INTO paywall_records (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO NOTHING`
	updateRecord = `UPDATE paywall_records SET value = $3, updated_at = now()
WHERE key = $1 AND value = $2`
)

// KV stores byte values in the paywall_records table created by Migrate.
type KV struct {
	db DBTX
}

// NewKV wraps a pool or transaction. Panics if db is nil.
func NewKV(db DBTX) *KV {
	if db == nil {
		panic("pg: DBTX is required")
	}
	return &KV{db: db}
}

// Get returns nil, nil when key does not exist.
func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := s.db.QueryRow(ctx, selectRecord, key).Scan(&value); err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// CompareAndSwap inserts key when old is nil, otherwise updates it only while
// the stored value still equals old. The row count tells whether it won.
func (s *KV) CompareAndSwap(ctx context.Context, key string, old, next []byte) (bool, error) {
	var (
		tag pgconn.CommandTag
		err error
	)
	if old == nil {
		tag, err = s.db.Exec(ctx, insertRecord, key, next)
	} else {
		tag, err = s.db.Exec(ctx, updateRecord, key, old, next)
	}
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
