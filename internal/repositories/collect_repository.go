package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

// CollectRepository defines the interface for redemption pickup records.
type CollectRepository interface {
	CreateCollect(ctx context.Context, executor SQLExecutor, collect *models.CollectInformation) (int64, error)
	GetCollectByCollectID(ctx context.Context, collectID string) (*models.CollectInformation, error)
	GetCollects(ctx context.Context, status string, accountID *int64, page, pageSize int) ([]models.CollectInformation, int, error)
	MarkCollected(ctx context.Context, executor SQLExecutor, collectID string, at time.Time) error
	DeleteCollect(ctx context.Context, executor SQLExecutor, id int64) error
}

type collectRepository struct {
	db *sql.DB
}

func NewCollectRepository(db *sql.DB) CollectRepository {
	return &collectRepository{db: db}
}

const collectColumns = `id, collect_id, account_id, email, product_name, leaves_spent, status, collected_at, created_at, updated_at`

func scanCollect(row scanner, extra ...interface{}) (*models.CollectInformation, error) {
	var c models.CollectInformation
	var accountID sql.NullInt64
	var collectedAt sql.NullTime
	dest := []interface{}{
		&c.ID, &c.CollectID, &accountID, &c.Email, &c.ProductName, &c.LeavesSpent, &c.Status, &collectedAt,
		&c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if accountID.Valid {
		c.AccountID = &accountID.Int64
	}
	if collectedAt.Valid {
		c.CollectedAt = &collectedAt.Time
	}
	return &c, nil
}

func (r *collectRepository) CreateCollect(ctx context.Context, executor SQLExecutor, collect *models.CollectInformation) (int64, error) {
	query := `INSERT INTO collect_information (collect_id, account_id, email, product_name, leaves_spent, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	collect.CreatedAt, collect.UpdatedAt = currentTime, currentTime
	err := executor.QueryRowContext(ctx, query,
		collect.CollectID, collect.AccountID, collect.Email, collect.ProductName, collect.LeavesSpent, collect.Status,
		collect.CreatedAt, collect.UpdatedAt,
	).Scan(&collect.ID)
	if err != nil {
		return 0, translateError(err, "creating collect information")
	}
	return collect.ID, nil
}

func (r *collectRepository) GetCollectByCollectID(ctx context.Context, collectID string) (*models.CollectInformation, error) {
	collect, err := scanCollect(r.db.QueryRowContext(ctx, `SELECT `+collectColumns+` FROM collect_information WHERE collect_id = $1`, collectID))
	if err != nil {
		return nil, translateError(err, "getting collect information")
	}
	return collect, nil
}

func (r *collectRepository) GetCollects(ctx context.Context, status string, accountID *int64, page, pageSize int) ([]models.CollectInformation, int, error) {
	collects := []models.CollectInformation{}
	totalCount := 0

	var qb queryBuilder
	if status != "" {
		qb.add("status = ?", status)
	}
	if accountID != nil {
		qb.add("account_id = ?", *accountID)
	}
	query := `SELECT ` + collectColumns + `, COUNT(*) OVER() AS total_count FROM collect_information` +
		qb.where() + ` ORDER BY created_at DESC, id DESC` + qb.paginate(page, pageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying collect information")
	}
	defer rows.Close()

	for rows.Next() {
		collect, err := scanCollect(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning collect information: %v", ErrDatabaseError, err)
		}
		collects = append(collects, *collect)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating collect rows: %v", ErrDatabaseError, err)
	}
	return collects, totalCount, nil
}

func (r *collectRepository) MarkCollected(ctx context.Context, executor SQLExecutor, collectID string, at time.Time) error {
	query := `UPDATE collect_information SET status = $1, collected_at = $2, updated_at = $2 WHERE collect_id = $3`
	result, err := executor.ExecContext(ctx, query, models.CollectStatusCollected, at, collectID)
	if err != nil {
		return translateError(err, "marking collect information collected")
	}
	return requireAffected(result, "marking collect information collected")
}

func (r *collectRepository) DeleteCollect(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM collect_information WHERE id = $1`, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("deleting collect information ID %d", id))
	}
	return requireAffected(result, "deleting collect information")
}
