package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

// BookingRepository defines the interface for booking-related database operations.
type BookingRepository interface {
	CreateBooking(ctx context.Context, executor SQLExecutor, booking *models.Booking) (int64, error)
	GetBookingByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Booking, error)
	GetBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int, error) // Bookings, total count
	UpdateBookingStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error
	// OrphanEventBookings detaches every booking of eventID, marking it
	// cancelled under the deleted-event name. It returns the affected ids.
	OrphanEventBookings(ctx context.Context, executor SQLExecutor, eventID int64) ([]int64, error)
	DeleteBooking(ctx context.Context, executor SQLExecutor, id int64) error
}

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new instance of BookingRepository.
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, event_id, event_name, full_name, email, phone, tickets, leaf_points, qr_code_text, status, created_at, updated_at`

func scanBooking(row scanner, extra ...interface{}) (*models.Booking, error) {
	var b models.Booking
	var eventID sql.NullInt64
	dest := []interface{}{
		&b.ID, &eventID, &b.EventName, &b.FullName, &b.Email, &b.Phone, &b.Tickets, &b.LeafPoints,
		&b.QRCodeText, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if eventID.Valid {
		b.EventID = &eventID.Int64
	}
	return &b, nil
}

func (r *bookingRepository) CreateBooking(ctx context.Context, executor SQLExecutor, booking *models.Booking) (int64, error) {
	query := `INSERT INTO bookings (event_id, event_name, full_name, email, phone, tickets, leaf_points, qr_code_text, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`
	currentTime := time.Now()
	booking.CreatedAt, booking.UpdatedAt = currentTime, currentTime
	err := executor.QueryRowContext(ctx, query,
		booking.EventID, booking.EventName, booking.FullName, booking.Email, booking.Phone, booking.Tickets,
		booking.LeafPoints, booking.QRCodeText, booking.Status, booking.CreatedAt, booking.UpdatedAt,
	).Scan(&booking.ID)
	if err != nil {
		return 0, translateError(err, "creating booking")
	}
	return booking.ID, nil
}

// GetBookingByID reads through executor so callers can see their own
// uncommitted writes inside a transaction. A nil executor uses the pool.
func (r *bookingRepository) GetBookingByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Booking, error) {
	if executor == nil {
		executor = r.db
	}
	booking, err := scanBooking(executor.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("getting booking by ID %d", id))
	}
	return booking, nil
}

func (r *bookingRepository) GetBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int, error) {
	bookings := []models.Booking{}
	totalCount := 0

	var qb queryBuilder
	if filter.EventID != nil {
		qb.add("event_id = ?", *filter.EventID)
	}
	if filter.Status != "" {
		qb.add("status = ?", filter.Status)
	}
	if filter.Email != "" {
		qb.add("LOWER(email) = LOWER(?)", filter.Email)
	}
	if filter.Search != "" {
		qb.add("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(event_name) LIKE ?)", likePattern(filter.Search))
	}
	query := `SELECT ` + bookingColumns + `, COUNT(*) OVER() AS total_count FROM bookings` +
		qb.where() + ` ORDER BY created_at DESC, id DESC` + qb.paginate(filter.Page, filter.PageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying bookings")
	}
	defer rows.Close()

	for rows.Next() {
		booking, err := scanBooking(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning booking: %v", ErrDatabaseError, err)
		}
		bookings = append(bookings, *booking)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating booking rows: %v", ErrDatabaseError, err)
	}
	return bookings, totalCount, nil
}

func (r *bookingRepository) UpdateBookingStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error {
	result, err := executor.ExecContext(ctx, `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating status for booking ID %d", id))
	}
	return requireAffected(result, "updating booking status")
}

func (r *bookingRepository) OrphanEventBookings(ctx context.Context, executor SQLExecutor, eventID int64) ([]int64, error) {
	query := `UPDATE bookings SET event_id = NULL, event_name = $1, status = $2, updated_at = $3
	          WHERE event_id = $4
	          RETURNING id`
	rows, err := executor.QueryContext(ctx, query, models.DeletedEventName, models.BookingStatusCancelled, time.Now(), eventID)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("orphaning bookings of event ID %d", eventID))
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning orphaned booking id: %v", ErrDatabaseError, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating orphaned bookings: %v", ErrDatabaseError, err)
	}
	return ids, nil
}

func (r *bookingRepository) DeleteBooking(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("deleting booking ID %d", id))
	}
	return requireAffected(result, "deleting booking")
}
