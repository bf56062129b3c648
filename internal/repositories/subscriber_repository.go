package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

type SubscriberRepository interface {
	// Subscribe inserts email unless present. created reports a new row.
	Subscribe(ctx context.Context, executor SQLExecutor, email string) (subscriber *models.Subscriber, created bool, err error)
	GetSubscribers(ctx context.Context, page, pageSize int) ([]models.Subscriber, int, error)
	Unsubscribe(ctx context.Context, executor SQLExecutor, email string) error
}

type subscriberRepository struct {
	db *sql.DB
}

func NewSubscriberRepository(db *sql.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Subscribe(ctx context.Context, executor SQLExecutor, email string) (*models.Subscriber, bool, error) {
	s := &models.Subscriber{Email: email}
	err := executor.QueryRowContext(ctx,
		`INSERT INTO subscribers (email, created_at) VALUES ($1, $2)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id, created_at`,
		email, time.Now(),
	).Scan(&s.ID, &s.CreatedAt)
	if err == nil {
		return s, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, translateError(err, "subscribing email")
	}

	err = executor.QueryRowContext(ctx, `SELECT id, created_at FROM subscribers WHERE email = $1`, email).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, false, translateError(err, "reading existing subscriber")
	}
	return s, false, nil
}

func (r *subscriberRepository) GetSubscribers(ctx context.Context, page, pageSize int) ([]models.Subscriber, int, error) {
	subscribers := []models.Subscriber{}
	totalCount := 0

	var qb queryBuilder
	query := `SELECT id, email, created_at, COUNT(*) OVER() AS total_count FROM subscribers ORDER BY created_at DESC, id DESC` +
		qb.paginate(page, pageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying subscribers")
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning subscriber: %v", ErrDatabaseError, err)
		}
		subscribers = append(subscribers, s)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating subscriber rows: %v", ErrDatabaseError, err)
	}
	return subscribers, totalCount, nil
}

func (r *subscriberRepository) Unsubscribe(ctx context.Context, executor SQLExecutor, email string) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM subscribers WHERE email = $1`, email)
	if err != nil {
		return translateError(err, "unsubscribing email")
	}
	return requireAffected(result, "unsubscribing email")
}
