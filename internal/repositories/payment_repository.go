package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

// PaymentRepository defines the interface for payment database operations.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, executor SQLExecutor, payment *models.Payment) (int64, error)
	GetPaymentByID(ctx context.Context, id int64) (*models.Payment, error)
	GetPaymentByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error)
	GetPayments(ctx context.Context, status, email string, page, pageSize int) ([]models.Payment, int, error)
	UpdatePaymentStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error
	UpdatePaymentStatusByPaymentID(ctx context.Context, executor SQLExecutor, paymentID, status string) error
	DeletePayment(ctx context.Context, executor SQLExecutor, id int64) error
}

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, payment_id, booking_id, payer_name, email, amount, method, status, created_at, updated_at`

func scanPayment(row scanner, extra ...interface{}) (*models.Payment, error) {
	var p models.Payment
	var bookingID sql.NullInt64
	dest := []interface{}{&p.ID, &p.PaymentID, &bookingID, &p.PayerName, &p.Email, &p.Amount, &p.Method, &p.Status, &p.CreatedAt, &p.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if bookingID.Valid {
		p.BookingID = &bookingID.Int64
	}
	return &p, nil
}

func (r *paymentRepository) CreatePayment(ctx context.Context, executor SQLExecutor, payment *models.Payment) (int64, error) {
	query := `INSERT INTO payments (payment_id, booking_id, payer_name, email, amount, method, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	currentTime := time.Now()
	payment.CreatedAt, payment.UpdatedAt = currentTime, currentTime
	err := executor.QueryRowContext(ctx, query,
		payment.PaymentID, payment.BookingID, payment.PayerName, payment.Email, payment.Amount, payment.Method,
		payment.Status, payment.CreatedAt, payment.UpdatedAt,
	).Scan(&payment.ID)
	if err != nil {
		return 0, translateError(err, "creating payment")
	}
	return payment.ID, nil
}

func (r *paymentRepository) GetPaymentByID(ctx context.Context, id int64) (*models.Payment, error) {
	payment, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("getting payment by ID %d", id))
	}
	return payment, nil
}

func (r *paymentRepository) GetPaymentByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, paymentID))
	if err != nil {
		return nil, translateError(err, "getting payment by payment id")
	}
	return payment, nil
}

func (r *paymentRepository) GetPayments(ctx context.Context, status, email string, page, pageSize int) ([]models.Payment, int, error) {
	payments := []models.Payment{}
	totalCount := 0

	var qb queryBuilder
	if status != "" {
		qb.add("status = ?", status)
	}
	if email != "" {
		qb.add("LOWER(email) = LOWER(?)", email)
	}
	query := `SELECT ` + paymentColumns + `, COUNT(*) OVER() AS total_count FROM payments` +
		qb.where() + ` ORDER BY created_at DESC, id DESC` + qb.paginate(page, pageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying payments")
	}
	defer rows.Close()

	for rows.Next() {
		payment, err := scanPayment(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
		}
		payments = append(payments, *payment)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating payment rows: %v", ErrDatabaseError, err)
	}
	return payments, totalCount, nil
}

func (r *paymentRepository) UpdatePaymentStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error {
	result, err := executor.ExecContext(ctx, `UPDATE payments SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating status for payment ID %d", id))
	}
	return requireAffected(result, "updating payment status")
}

func (r *paymentRepository) UpdatePaymentStatusByPaymentID(ctx context.Context, executor SQLExecutor, paymentID, status string) error {
	result, err := executor.ExecContext(ctx, `UPDATE payments SET status = $1, updated_at = $2 WHERE payment_id = $3`, status, time.Now(), paymentID)
	if err != nil {
		return translateError(err, "updating payment status by payment id")
	}
	return requireAffected(result, "updating payment status by payment id")
}

func (r *paymentRepository) DeletePayment(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("deleting payment ID %d", id))
	}
	return requireAffected(result, "deleting payment")
}
