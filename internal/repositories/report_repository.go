package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

// ReportRepository runs the aggregate queries behind the dashboard.
type ReportRepository interface {
	CountAccounts(ctx context.Context) (int, error)
	CountUpcomingEvents(ctx context.Context, from time.Time) (int, error)
	CountBookingsByStatus(ctx context.Context) (models.BookingStatusCounts, error)
	CountCheckInsBetween(ctx context.Context, from, to time.Time) (int, error)
	SumPaidRevenueBetween(ctx context.Context, from, to time.Time) (float64, error)
	CountPendingRefunds(ctx context.Context) (int, error)
	CountPendingCollections(ctx context.Context) (int, error)
	GetLowStockProducts(ctx context.Context, threshold int) ([]models.LowStockProduct, error)
}

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) count(ctx context.Context, what, query string, args ...interface{}) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting %s: %v", ErrDatabaseError, what, err)
	}
	return n, nil
}

func (r *reportRepository) CountAccounts(ctx context.Context) (int, error) {
	return r.count(ctx, "accounts", `SELECT COUNT(*) FROM accounts`)
}

func (r *reportRepository) CountUpcomingEvents(ctx context.Context, from time.Time) (int, error) {
	return r.count(ctx, "upcoming events", `SELECT COUNT(*) FROM events WHERE start_date >= $1`, from)
}

func (r *reportRepository) CountBookingsByStatus(ctx context.Context) (models.BookingStatusCounts, error) {
	var counts models.BookingStatusCounts
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return counts, fmt.Errorf("%w: counting bookings by status: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return counts, fmt.Errorf("%w: scanning booking counts: %v", ErrDatabaseError, err)
		}
		switch status {
		case models.BookingStatusActive:
			counts.Active = n
		case models.BookingStatusCancelled:
			counts.Cancelled = n
		case models.BookingStatusAttended:
			counts.Attended = n
		}
	}
	if err = rows.Err(); err != nil {
		return counts, fmt.Errorf("%w: iterating booking counts: %v", ErrDatabaseError, err)
	}
	return counts, nil
}

func (r *reportRepository) CountCheckInsBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.count(ctx, "check-ins",
		`SELECT COUNT(*) FROM check_ins WHERE qr_code_status = $1 AND check_in_time BETWEEN $2 AND $3`,
		models.CheckInStatusCheckedIn, from, to)
}

func (r *reportRepository) SumPaidRevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = $1 AND updated_at BETWEEN $2 AND $3`,
		models.PaymentStatusPaid, from, to,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%w: summing revenue: %v", ErrDatabaseError, err)
	}
	return total, nil
}

func (r *reportRepository) CountPendingRefunds(ctx context.Context) (int, error) {
	return r.count(ctx, "pending refunds", `SELECT COUNT(*) FROM refunds WHERE status = $1`, models.RefundStatusPending)
}

func (r *reportRepository) CountPendingCollections(ctx context.Context) (int, error) {
	return r.count(ctx, "pending collections", `SELECT COUNT(*) FROM collect_information WHERE status = $1`, models.CollectStatusPending)
}

func (r *reportRepository) GetLowStockProducts(ctx context.Context, threshold int) ([]models.LowStockProduct, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_name, stock FROM product_details WHERE stock <= $1 ORDER BY stock ASC, product_name ASC`, threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: querying low stock products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	products := []models.LowStockProduct{}
	for rows.Next() {
		var p models.LowStockProduct
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Stock); err != nil {
			return nil, fmt.Errorf("%w: scanning low stock product: %v", ErrDatabaseError, err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating low stock products: %v", ErrDatabaseError, err)
	}
	return products, nil
}
