package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickhelper/bookingkit/pkg/account"
)

// PostgresStorage persists notifications in the notifications table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a storage backed by the given connection pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Create(ctx context.Context, n Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	const query = `
		INSERT INTO notifications (id, receiver_id, receiver_role, type, title, message, read, read_at, high_priority, booking_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)`

	_, err := s.pool.Exec(ctx, query,
		n.ID, n.ReceiverID, n.ReceiverRole, n.Type, n.Title, n.Message,
		n.Read, n.ReadAt, n.HighPriority, n.BookingID, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, id string) (*Notification, error) {
	const query = `
		SELECT id, receiver_id, receiver_role, type, title, message, read, read_at, high_priority, COALESCE(booking_id, ''), created_at
		FROM notifications
		WHERE id = $1`

	var n Notification
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.ReceiverID, &n.ReceiverRole, &n.Type, &n.Title, &n.Message,
		&n.Read, &n.ReadAt, &n.HighPriority, &n.BookingID, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("select notification: %w", err)
	}
	return &n, nil
}

func (s *PostgresStorage) List(ctx context.Context, receiverID string, role account.Role, opts ListOptions) ([]Notification, error) {
	query := `
		SELECT id, receiver_id, receiver_role, type, title, message, read, read_at, high_priority, COALESCE(booking_id, ''), created_at
		FROM notifications
		WHERE receiver_id = $1 AND receiver_role = $2`
	args := []any{receiverID, role}

	if opts.OnlyUnread {
		query += ` AND read = FALSE`
	}
	query += ` ORDER BY created_at DESC`
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	result := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(
			&n.ID, &n.ReceiverID, &n.ReceiverRole, &n.Type, &n.Title, &n.Message,
			&n.Read, &n.ReadAt, &n.HighPriority, &n.BookingID, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return result, nil
}

func (s *PostgresStorage) MarkRead(ctx context.Context, id string) error {
	// COALESCE keeps the first read timestamp on repeated calls.
	const query = `UPDATE notifications SET read = TRUE, read_at = COALESCE(read_at, now()) WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *PostgresStorage) MarkAllRead(ctx context.Context, receiverID string, role account.Role) error {
	const query = `UPDATE notifications SET read = TRUE, read_at = now() WHERE receiver_id = $1 AND receiver_role = $2 AND read = FALSE`
	if _, err := s.pool.Exec(ctx, query, receiverID, role); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

func (s *PostgresStorage) CountUnread(ctx context.Context, receiverID string, role account.Role) (int, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE receiver_id = $1 AND receiver_role = $2 AND read = FALSE`

	var count int
	if err := s.pool.QueryRow(ctx, query, receiverID, role).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (s *PostgresStorage) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
