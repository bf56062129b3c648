package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

// StaffRepository defines the interface for staff account database operations.
type StaffRepository interface {
	CreateStaffAccount(ctx context.Context, executor SQLExecutor, staff *models.StaffAccount) (int64, error)
	GetStaffAccountByID(ctx context.Context, id int64) (*models.StaffAccount, error)
	GetStaffAccountByLogin(ctx context.Context, login string) (*models.StaffAccount, error) // username or email
	GetStaffAccounts(ctx context.Context, page, pageSize int, searchTerm, role, status string) ([]models.StaffAccount, int, error)
	UpdateStaffAccount(ctx context.Context, executor SQLExecutor, staff *models.StaffAccount) error
	UpdateStaffPassword(ctx context.Context, executor SQLExecutor, id int64, passwordHash string) error
	UpdateStaffStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, username, full_name, email, password_hash, role, status, created_at, updated_at`

func scanStaffAccount(row scanner, extra ...interface{}) (*models.StaffAccount, error) {
	var s models.StaffAccount
	dest := []interface{}{&s.ID, &s.Username, &s.FullName, &s.Email, &s.PasswordHash, &s.Role, &s.Status, &s.CreatedAt, &s.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepository) CreateStaffAccount(ctx context.Context, executor SQLExecutor, staff *models.StaffAccount) (int64, error) {
	query := `INSERT INTO staff_accounts (username, full_name, email, password_hash, role, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	staff.CreatedAt, staff.UpdatedAt = currentTime, currentTime
	err := executor.QueryRowContext(ctx, query,
		staff.Username, staff.FullName, staff.Email, staff.PasswordHash, staff.Role, staff.Status,
		staff.CreatedAt, staff.UpdatedAt,
	).Scan(&staff.ID)
	if err != nil {
		return 0, translateError(err, "creating staff account")
	}
	return staff.ID, nil
}

func (r *staffRepository) GetStaffAccountByID(ctx context.Context, id int64) (*models.StaffAccount, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_accounts WHERE id = $1`
	staff, err := scanStaffAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("getting staff account by ID %d", id))
	}
	return staff, nil
}

func (r *staffRepository) GetStaffAccountByLogin(ctx context.Context, login string) (*models.StaffAccount, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_accounts
	          WHERE username = $1 OR LOWER(email) = LOWER($1)
	          LIMIT 1`
	staff, err := scanStaffAccount(r.db.QueryRowContext(ctx, query, login))
	if err != nil {
		return nil, translateError(err, "getting staff account by login")
	}
	return staff, nil
}

func (r *staffRepository) GetStaffAccounts(ctx context.Context, page, pageSize int, searchTerm, role, status string) ([]models.StaffAccount, int, error) {
	list := []models.StaffAccount{}
	totalCount := 0

	var qb queryBuilder
	if searchTerm != "" {
		qb.add("(LOWER(username) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)", likePattern(searchTerm))
	}
	if role != "" {
		qb.add("role = ?", role)
	}
	if status != "" {
		qb.add("status = ?", status)
	}
	query := `SELECT ` + staffColumns + `, COUNT(*) OVER() AS total_count FROM staff_accounts` +
		qb.where() + ` ORDER BY username ASC` + qb.paginate(page, pageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying staff accounts")
	}
	defer rows.Close()

	for rows.Next() {
		staff, err := scanStaffAccount(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning staff account: %v", ErrDatabaseError, err)
		}
		list = append(list, *staff)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating staff rows: %v", ErrDatabaseError, err)
	}
	return list, totalCount, nil
}

func (r *staffRepository) UpdateStaffAccount(ctx context.Context, executor SQLExecutor, staff *models.StaffAccount) error {
	query := `UPDATE staff_accounts SET username = $1, full_name = $2, email = $3, role = $4, status = $5, updated_at = $6
	          WHERE id = $7`
	staff.UpdatedAt = time.Now()
	result, err := executor.ExecContext(ctx, query, staff.Username, staff.FullName, staff.Email, staff.Role, staff.Status, staff.UpdatedAt, staff.ID)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating staff account ID %d", staff.ID))
	}
	return requireAffected(result, "updating staff account")
}

func (r *staffRepository) UpdateStaffPassword(ctx context.Context, executor SQLExecutor, id int64, passwordHash string) error {
	result, err := executor.ExecContext(ctx, `UPDATE staff_accounts SET password_hash = $1, updated_at = $2 WHERE id = $3`, passwordHash, time.Now(), id)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating password for staff ID %d", id))
	}
	return requireAffected(result, "updating staff password")
}

func (r *staffRepository) UpdateStaffStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error {
	result, err := executor.ExecContext(ctx, `UPDATE staff_accounts SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating status for staff ID %d", id))
	}
	return requireAffected(result, "updating staff status")
}
