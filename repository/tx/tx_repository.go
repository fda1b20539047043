package tx

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// TxRepository scopes multi-statement writes to a single transaction. The
// only cross-record writes in this system are the user+proxy registration
// pair and the profile/proxy sync, which must commit or fail as a unit.
type TxRepository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	CommitTx(tx *sqlx.Tx) error
	RollbackTx(tx *sqlx.Tx) error
}

type txRepo struct {
	conn *sqlx.DB
}

func NewTxRepository(conn *sqlx.DB) TxRepository {
	return &txRepo{conn: conn}
}

func (r *txRepo) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.conn.BeginTxx(ctx, nil)
}

func (r *txRepo) CommitTx(tx *sqlx.Tx) error {
	return tx.Commit()
}

func (r *txRepo) RollbackTx(tx *sqlx.Tx) error {
	return tx.Rollback()
}
