package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

type VolunteerRepository interface {
	CreateVolunteer(ctx context.Context, executor SQLExecutor, volunteer *models.Volunteer) (int64, error)
	GetVolunteerByID(ctx context.Context, id int64) (*models.Volunteer, error)
	GetVolunteers(ctx context.Context, status string, page, pageSize int) ([]models.Volunteer, int, error)
	UpdateVolunteerStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error
	DeleteVolunteer(ctx context.Context, executor SQLExecutor, id int64) error
}

type volunteerRepository struct {
	db *sql.DB
}

func NewVolunteerRepository(db *sql.DB) VolunteerRepository {
	return &volunteerRepository{db: db}
}

const volunteerColumns = `id, full_name, email, phone, interest, availability, status, created_at, updated_at`

func scanVolunteer(row scanner, extra ...interface{}) (*models.Volunteer, error) {
	var v models.Volunteer
	dest := []interface{}{&v.ID, &v.FullName, &v.Email, &v.Phone, &v.Interest, &v.Availability, &v.Status, &v.CreatedAt, &v.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *volunteerRepository) CreateVolunteer(ctx context.Context, executor SQLExecutor, volunteer *models.Volunteer) (int64, error) {
	query := `INSERT INTO volunteers (full_name, email, phone, interest, availability, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	volunteer.CreatedAt, volunteer.UpdatedAt = currentTime, currentTime
	err := executor.QueryRowContext(ctx, query,
		volunteer.FullName, volunteer.Email, volunteer.Phone, volunteer.Interest, volunteer.Availability,
		volunteer.Status, volunteer.CreatedAt, volunteer.UpdatedAt,
	).Scan(&volunteer.ID)
	if err != nil {
		return 0, translateError(err, "creating volunteer")
	}
	return volunteer.ID, nil
}

func (r *volunteerRepository) GetVolunteerByID(ctx context.Context, id int64) (*models.Volunteer, error) {
	volunteer, err := scanVolunteer(r.db.QueryRowContext(ctx, `SELECT `+volunteerColumns+` FROM volunteers WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("getting volunteer by ID %d", id))
	}
	return volunteer, nil
}

func (r *volunteerRepository) GetVolunteers(ctx context.Context, status string, page, pageSize int) ([]models.Volunteer, int, error) {
	volunteers := []models.Volunteer{}
	totalCount := 0

	var qb queryBuilder
	if status != "" {
		qb.add("status = ?", status)
	}
	query := `SELECT ` + volunteerColumns + `, COUNT(*) OVER() AS total_count FROM volunteers` +
		qb.where() + ` ORDER BY created_at DESC, id DESC` + qb.paginate(page, pageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying volunteers")
	}
	defer rows.Close()

	for rows.Next() {
		volunteer, err := scanVolunteer(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning volunteer: %v", ErrDatabaseError, err)
		}
		volunteers = append(volunteers, *volunteer)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating volunteer rows: %v", ErrDatabaseError, err)
	}
	return volunteers, totalCount, nil
}

func (r *volunteerRepository) UpdateVolunteerStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error {
	result, err := executor.ExecContext(ctx, `UPDATE volunteers SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating status for volunteer ID %d", id))
	}
	return requireAffected(result, "updating volunteer status")
}

func (r *volunteerRepository) DeleteVolunteer(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM volunteers WHERE id = $1`, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("deleting volunteer ID %d", id))
	}
	return requireAffected(result, "deleting volunteer")
}
