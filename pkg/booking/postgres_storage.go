package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage persists bookings in the bookings table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a storage backed by the given connection pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

const bookingColumns = `id, requester_id, provider_id, category, status, note, created_at, accepted_at, completed_at`

func (s *PostgresStorage) Create(ctx context.Context, b Booking) error {
	const query = `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.pool.Exec(ctx, query,
		b.ID, b.RequesterID, b.ProviderID, b.Category, b.Status, b.Note,
		b.CreatedAt, b.AcceptedAt, b.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, id string) (*Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("select booking: %w", err)
	}
	return b, nil
}

// Update performs a compare-and-swap on the booking's status: the WHERE
// clause on the old status makes concurrent transitions lose cleanly instead
// of overwriting each other.
func (s *PostgresStorage) Update(ctx context.Context, b Booking, expected Status) error {
	const query = `
		UPDATE bookings
		SET status = $1, note = $2, accepted_at = $3, completed_at = $4
		WHERE id = $5 AND status = $6`

	tag, err := s.pool.Exec(ctx, query,
		b.Status, b.Note, b.AcceptedAt, b.CompletedAt, b.ID, expected,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the booking is gone or its status moved under us.
		if _, getErr := s.Get(ctx, b.ID); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}
	return nil
}

func (s *PostgresStorage) ListByRequester(ctx context.Context, requesterID string) ([]Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE requester_id = $1 ORDER BY created_at DESC`
	return s.list(ctx, query, requesterID)
}

func (s *PostgresStorage) ListByProvider(ctx context.Context, providerID string) ([]Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE provider_id = $1 ORDER BY created_at DESC`
	return s.list(ctx, query, providerID)
}

func (s *PostgresStorage) list(ctx context.Context, query string, arg any) ([]Booking, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	result := make([]Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return result, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.RequesterID, &b.ProviderID, &b.Category, &b.Status, &b.Note,
		&b.CreatedAt, &b.AcceptedAt, &b.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
