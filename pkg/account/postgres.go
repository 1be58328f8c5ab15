package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresResolver resolves accounts from the accounts table.
type PostgresResolver struct {
	pool *pgxpool.Pool
}

// NewPostgresResolver creates a resolver backed by the given connection pool.
func NewPostgresResolver(pool *pgxpool.Pool) *PostgresResolver {
	return &PostgresResolver{pool: pool}
}

func (r *PostgresResolver) Resolve(ctx context.Context, id string) (*Account, error) {
	const query = `SELECT id, role, display_name FROM accounts WHERE id = $1`

	var acc Account
	err := r.pool.QueryRow(ctx, query, id).Scan(&acc.ID, &acc.Role, &acc.DisplayName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}
