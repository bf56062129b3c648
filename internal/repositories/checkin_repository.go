package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"ecohaven_backend/internal/models"
)

// CheckInRepository defines the interface for check-in database operations.
type CheckInRepository interface {
	CreateCheckIn(ctx context.Context, executor SQLExecutor, checkIn *models.CheckIn) (int64, error)
	FindByQRCode(ctx context.Context, qrCodeText string) (*models.CheckIn, error)
	// FindLatestByGuestName returns the most recently created row for the
	// name, breaking created_at ties by the higher id.
	FindLatestByGuestName(ctx context.Context, guestName string) (*models.CheckIn, error)
	GetCheckInByBookingID(ctx context.Context, bookingID int64) (*models.CheckIn, error)
	GetCheckIns(ctx context.Context, status string, page, pageSize int) ([]models.CheckIn, int, error)
	// MarkCheckedIn flips a 'Not Checked' row to 'Checked-In'. It returns
	// ErrConditionFailed when the row is no longer 'Not Checked'.
	MarkCheckedIn(ctx context.Context, executor SQLExecutor, id int64, at time.Time) error
	SetStatusByBookingID(ctx context.Context, executor SQLExecutor, bookingID int64, status string) (int64, error)
	// CancelPendingByBookingIDs cancels only rows still 'Not Checked'.
	CancelPendingByBookingIDs(ctx context.Context, executor SQLExecutor, bookingIDs []int64) (int64, error)
}

type checkInRepository struct {
	db *sql.DB
}

func NewCheckInRepository(db *sql.DB) CheckInRepository {
	return &checkInRepository{db: db}
}

const checkInColumns = `id, booking_id, qr_code_text, guest_name, email, event_name, leaf_points, qr_code_status, check_in_time, created_at, updated_at`

func scanCheckIn(row scanner, extra ...interface{}) (*models.CheckIn, error) {
	var c models.CheckIn
	var at sql.NullTime
	dest := []interface{}{
		&c.ID, &c.AssociatedBookingID, &c.QRCodeText, &c.GuestName, &c.Email, &c.EventName, &c.LeafPoints,
		&c.QRCodeStatus, &at, &c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if at.Valid {
		c.CheckInTime = &at.Time
	}
	return &c, nil
}

func (r *checkInRepository) CreateCheckIn(ctx context.Context, executor SQLExecutor, checkIn *models.CheckIn) (int64, error) {
	query := `INSERT INTO check_ins (booking_id, qr_code_text, guest_name, email, event_name, leaf_points, qr_code_status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	currentTime := time.Now()
	checkIn.CreatedAt, checkIn.UpdatedAt = currentTime, currentTime
	err := executor.QueryRowContext(ctx, query,
		checkIn.AssociatedBookingID, checkIn.QRCodeText, checkIn.GuestName, checkIn.Email, checkIn.EventName,
		checkIn.LeafPoints, checkIn.QRCodeStatus, checkIn.CreatedAt, checkIn.UpdatedAt,
	).Scan(&checkIn.ID)
	if err != nil {
		return 0, translateError(err, "creating check-in")
	}
	return checkIn.ID, nil
}

func (r *checkInRepository) FindByQRCode(ctx context.Context, qrCodeText string) (*models.CheckIn, error) {
	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE qr_code_text = $1
	          ORDER BY created_at DESC, id DESC LIMIT 1`
	checkIn, err := scanCheckIn(r.db.QueryRowContext(ctx, query, qrCodeText))
	if err != nil {
		return nil, translateError(err, "finding check-in by QR code")
	}
	return checkIn, nil
}

func (r *checkInRepository) FindLatestByGuestName(ctx context.Context, guestName string) (*models.CheckIn, error) {
	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE guest_name = $1
	          ORDER BY created_at DESC, id DESC LIMIT 1`
	checkIn, err := scanCheckIn(r.db.QueryRowContext(ctx, query, guestName))
	if err != nil {
		return nil, translateError(err, "finding check-in by guest name")
	}
	return checkIn, nil
}

func (r *checkInRepository) GetCheckInByBookingID(ctx context.Context, bookingID int64) (*models.CheckIn, error) {
	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE booking_id = $1 ORDER BY id DESC LIMIT 1`
	checkIn, err := scanCheckIn(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("getting check-in for booking ID %d", bookingID))
	}
	return checkIn, nil
}

func (r *checkInRepository) GetCheckIns(ctx context.Context, status string, page, pageSize int) ([]models.CheckIn, int, error) {
	checkIns := []models.CheckIn{}
	totalCount := 0

	var qb queryBuilder
	if status != "" {
		qb.add("qr_code_status = ?", status)
	}
	query := `SELECT ` + checkInColumns + `, COUNT(*) OVER() AS total_count FROM check_ins` +
		qb.where() + ` ORDER BY created_at DESC, id DESC` + qb.paginate(page, pageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying check-ins")
	}
	defer rows.Close()

	for rows.Next() {
		checkIn, err := scanCheckIn(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning check-in: %v", ErrDatabaseError, err)
		}
		checkIns = append(checkIns, *checkIn)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating check-in rows: %v", ErrDatabaseError, err)
	}
	return checkIns, totalCount, nil
}

func (r *checkInRepository) MarkCheckedIn(ctx context.Context, executor SQLExecutor, id int64, at time.Time) error {
	query := `UPDATE check_ins SET qr_code_status = $1, check_in_time = $2, updated_at = $2
	          WHERE id = $3 AND qr_code_status = $4`
	result, err := executor.ExecContext(ctx, query, models.CheckInStatusCheckedIn, at, id, models.CheckInStatusNotChecked)
	if err != nil {
		return translateError(err, fmt.Sprintf("checking in ID %d", id))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking in ID %d: %v", ErrDatabaseError, id, err)
	}
	if n == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (r *checkInRepository) SetStatusByBookingID(ctx context.Context, executor SQLExecutor, bookingID int64, status string) (int64, error) {
	result, err := executor.ExecContext(ctx,
		`UPDATE check_ins SET qr_code_status = $1, updated_at = $2 WHERE booking_id = $3`,
		status, time.Now(), bookingID)
	if err != nil {
		return 0, translateError(err, fmt.Sprintf("updating check-ins of booking ID %d", bookingID))
	}
	n, _ := result.RowsAffected()
	return n, nil
}

func (r *checkInRepository) CancelPendingByBookingIDs(ctx context.Context, executor SQLExecutor, bookingIDs []int64) (int64, error) {
	if len(bookingIDs) == 0 {
		return 0, nil
	}
	query := `UPDATE check_ins SET qr_code_status = $1, updated_at = $2
	          WHERE booking_id = ANY($3) AND qr_code_status = $4`
	result, err := executor.ExecContext(ctx, query,
		models.CheckInStatusCancelled, time.Now(), pq.Array(bookingIDs), models.CheckInStatusNotChecked)
	if err != nil {
		return 0, translateError(err, "cancelling pending check-ins")
	}
	n, _ := result.RowsAffected()
	return n, nil
}
