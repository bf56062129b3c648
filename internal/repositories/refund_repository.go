package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

// RefundRepository defines the interface for refund database operations.
type RefundRepository interface {
	CreateRefund(ctx context.Context, executor SQLExecutor, refund *models.Refund) (int64, error)
	GetRefundByID(ctx context.Context, id int64) (*models.Refund, error)
	GetRefunds(ctx context.Context, status string, page, pageSize int) ([]models.Refund, int, error)
	UpdateRefundStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error
	DeleteRefund(ctx context.Context, executor SQLExecutor, id int64) error
}

type refundRepository struct {
	db *sql.DB
}

func NewRefundRepository(db *sql.DB) RefundRepository {
	return &refundRepository{db: db}
}

const refundColumns = `id, refund_id, payment_id, email, amount, reason, status, created_at, updated_at`

func scanRefund(row scanner, extra ...interface{}) (*models.Refund, error) {
	var rf models.Refund
	dest := []interface{}{&rf.ID, &rf.RefundID, &rf.PaymentID, &rf.Email, &rf.Amount, &rf.Reason, &rf.Status, &rf.CreatedAt, &rf.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &rf, nil
}

func (r *refundRepository) CreateRefund(ctx context.Context, executor SQLExecutor, refund *models.Refund) (int64, error) {
	query := `INSERT INTO refunds (refund_id, payment_id, email, amount, reason, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	refund.CreatedAt, refund.UpdatedAt = currentTime, currentTime
	err := executor.QueryRowContext(ctx, query,
		refund.RefundID, refund.PaymentID, refund.Email, refund.Amount, refund.Reason, refund.Status,
		refund.CreatedAt, refund.UpdatedAt,
	).Scan(&refund.ID)
	if err != nil {
		return 0, translateError(err, "creating refund")
	}
	return refund.ID, nil
}

func (r *refundRepository) GetRefundByID(ctx context.Context, id int64) (*models.Refund, error) {
	refund, err := scanRefund(r.db.QueryRowContext(ctx, `SELECT `+refundColumns+` FROM refunds WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("getting refund by ID %d", id))
	}
	return refund, nil
}

func (r *refundRepository) GetRefunds(ctx context.Context, status string, page, pageSize int) ([]models.Refund, int, error) {
	refunds := []models.Refund{}
	totalCount := 0

	var qb queryBuilder
	if status != "" {
		qb.add("status = ?", status)
	}
	query := `SELECT ` + refundColumns + `, COUNT(*) OVER() AS total_count FROM refunds` +
		qb.where() + ` ORDER BY created_at DESC, id DESC` + qb.paginate(page, pageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying refunds")
	}
	defer rows.Close()

	for rows.Next() {
		refund, err := scanRefund(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning refund: %v", ErrDatabaseError, err)
		}
		refunds = append(refunds, *refund)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating refund rows: %v", ErrDatabaseError, err)
	}
	return refunds, totalCount, nil
}

func (r *refundRepository) UpdateRefundStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error {
	result, err := executor.ExecContext(ctx, `UPDATE refunds SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating status for refund ID %d", id))
	}
	return requireAffected(result, "updating refund status")
}

func (r *refundRepository) DeleteRefund(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM refunds WHERE id = $1`, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("deleting refund ID %d", id))
	}
	return requireAffected(result, "deleting refund")
}
