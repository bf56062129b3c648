package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

type PasswordResetRepository interface {
	CreateReset(ctx context.Context, executor SQLExecutor, reset *models.PasswordReset) (int64, error)
	// GetActiveResets returns unexpired codes for email, newest first.
	GetActiveResets(ctx context.Context, email string, now time.Time) ([]models.PasswordReset, error)
	DeleteResetsByEmail(ctx context.Context, executor SQLExecutor, email string) error
}

type passwordResetRepository struct {
	db *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) CreateReset(ctx context.Context, executor SQLExecutor, reset *models.PasswordReset) (int64, error) {
	reset.CreatedAt = time.Now()
	err := executor.QueryRowContext(ctx,
		`INSERT INTO password_resets (email, code_hash, expires_at, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		reset.Email, reset.CodeHash, reset.ExpiresAt, reset.CreatedAt,
	).Scan(&reset.ID)
	if err != nil {
		return 0, translateError(err, "creating password reset")
	}
	return reset.ID, nil
}

func (r *passwordResetRepository) GetActiveResets(ctx context.Context, email string, now time.Time) ([]models.PasswordReset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, code_hash, expires_at, created_at FROM password_resets
		 WHERE LOWER(email) = LOWER($1) AND expires_at > $2
		 ORDER BY created_at DESC, id DESC`, email, now)
	if err != nil {
		return nil, translateError(err, "querying password resets")
	}
	defer rows.Close()

	resets := []models.PasswordReset{}
	for rows.Next() {
		var pr models.PasswordReset
		if err := rows.Scan(&pr.ID, &pr.Email, &pr.CodeHash, &pr.ExpiresAt, &pr.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning password reset: %v", ErrDatabaseError, err)
		}
		resets = append(resets, pr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating password resets: %v", ErrDatabaseError, err)
	}
	return resets, nil
}

func (r *passwordResetRepository) DeleteResetsByEmail(ctx context.Context, executor SQLExecutor, email string) error {
	_, err := executor.ExecContext(ctx, `DELETE FROM password_resets WHERE LOWER(email) = LOWER($1)`, email)
	if err != nil {
		return translateError(err, "deleting password resets")
	}
	return nil
}
