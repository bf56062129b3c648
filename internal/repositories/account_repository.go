package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

// AccountRepository defines the interface for account-related database operations.
type AccountRepository interface {
	CreateAccount(ctx context.Context, executor SQLExecutor, account *models.Account) (int64, error)
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccounts(ctx context.Context, page, pageSize int, searchTerm string) ([]models.Account, int, error) // Accounts, total count, error
	UpdateAccount(ctx context.Context, executor SQLExecutor, account *models.Account) error
	UpdatePassword(ctx context.Context, executor SQLExecutor, id int64, passwordHash string) error
	UpdatePasswordByEmail(ctx context.Context, executor SQLExecutor, email, passwordHash string) error
	UpdateProfilePic(ctx context.Context, executor SQLExecutor, id int64, fileName string) error
	DeleteAccount(ctx context.Context, executor SQLExecutor, id int64) error
	// AddLeafPointsByEmail credits points to the account owning email.
	// It returns false when no account matches.
	AddLeafPointsByEmail(ctx context.Context, executor SQLExecutor, email string, points int) (bool, error)
	// DeductLeafPoints debits cost only if the balance covers it.
	DeductLeafPoints(ctx context.Context, executor SQLExecutor, id int64, cost int) (bool, error)
}

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, full_name, email, phone, password_hash, leaf_points, profile_pic, created_at, updated_at`

func scanAccount(row scanner, extra ...interface{}) (*models.Account, error) {
	var a models.Account
	var phone, pic sql.NullString
	dest := []interface{}{&a.ID, &a.FullName, &a.Email, &phone, &a.PasswordHash, &a.LeafPoints, &pic, &a.CreatedAt, &a.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if phone.Valid {
		a.Phone = &phone.String
	}
	if pic.Valid {
		a.ProfilePic = &pic.String
	}
	return &a, nil
}

// CreateAccount inserts a new account into the database.
func (r *accountRepository) CreateAccount(ctx context.Context, executor SQLExecutor, account *models.Account) (int64, error) {
	query := `INSERT INTO accounts (full_name, email, phone, password_hash, leaf_points, profile_pic, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	account.CreatedAt = currentTime
	account.UpdatedAt = currentTime

	err := executor.QueryRowContext(ctx, query,
		account.FullName, account.Email, account.Phone, account.PasswordHash,
		account.LeafPoints, account.ProfilePic, account.CreatedAt, account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		return 0, translateError(err, "creating account")
	}
	return account.ID, nil
}

// GetAccountByID retrieves an account by its ID.
func (r *accountRepository) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("getting account by ID %d", id))
	}
	return account, nil
}

// GetAccountByEmail matches case-insensitively.
func (r *accountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE LOWER(email) = LOWER($1)`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, translateError(err, "getting account by email")
	}
	return account, nil
}

// GetAccounts retrieves a list of accounts with pagination and optional search.
func (r *accountRepository) GetAccounts(ctx context.Context, page, pageSize int, searchTerm string) ([]models.Account, int, error) {
	accounts := []models.Account{}
	totalCount := 0

	var qb queryBuilder
	if searchTerm != "" {
		qb.add("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?)", likePattern(searchTerm))
	}
	query := `SELECT ` + accountColumns + `, COUNT(*) OVER() AS total_count FROM accounts` +
		qb.where() + ` ORDER BY full_name ASC, id ASC` + qb.paginate(page, pageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying accounts")
	}
	defer rows.Close()

	for rows.Next() {
		account, err := scanAccount(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning account: %v", ErrDatabaseError, err)
		}
		accounts = append(accounts, *account)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating account rows: %v", ErrDatabaseError, err)
	}
	return accounts, totalCount, nil
}

// UpdateAccount saves the editable profile fields.
func (r *accountRepository) UpdateAccount(ctx context.Context, executor SQLExecutor, account *models.Account) error {
	query := `UPDATE accounts SET full_name = $1, email = $2, phone = $3, updated_at = $4 WHERE id = $5`
	account.UpdatedAt = time.Now()
	result, err := executor.ExecContext(ctx, query, account.FullName, account.Email, account.Phone, account.UpdatedAt, account.ID)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating account ID %d", account.ID))
	}
	return requireAffected(result, "updating account")
}

func (r *accountRepository) UpdatePassword(ctx context.Context, executor SQLExecutor, id int64, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating password for account ID %d", id))
	}
	return requireAffected(result, "updating password")
}

func (r *accountRepository) UpdatePasswordByEmail(ctx context.Context, executor SQLExecutor, email, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = $1, updated_at = $2 WHERE LOWER(email) = LOWER($3)`
	result, err := executor.ExecContext(ctx, query, passwordHash, time.Now(), email)
	if err != nil {
		return translateError(err, "updating password by email")
	}
	return requireAffected(result, "updating password by email")
}

func (r *accountRepository) UpdateProfilePic(ctx context.Context, executor SQLExecutor, id int64, fileName string) error {
	query := `UPDATE accounts SET profile_pic = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.ExecContext(ctx, query, fileName, time.Now(), id)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating profile picture for account ID %d", id))
	}
	return requireAffected(result, "updating profile picture")
}

func (r *accountRepository) DeleteAccount(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("deleting account ID %d", id))
	}
	return requireAffected(result, "deleting account")
}

func (r *accountRepository) AddLeafPointsByEmail(ctx context.Context, executor SQLExecutor, email string, points int) (bool, error) {
	query := `UPDATE accounts SET leaf_points = leaf_points + $1, updated_at = $2 WHERE LOWER(email) = LOWER($3)`
	result, err := executor.ExecContext(ctx, query, points, time.Now(), email)
	if err != nil {
		return false, translateError(err, "adding leaf points")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: adding leaf points: %v", ErrDatabaseError, err)
	}
	return n > 0, nil
}

func (r *accountRepository) DeductLeafPoints(ctx context.Context, executor SQLExecutor, id int64, cost int) (bool, error) {
	query := `UPDATE accounts SET leaf_points = leaf_points - $1, updated_at = $2
	          WHERE id = $3 AND leaf_points >= $1`
	result, err := executor.ExecContext(ctx, query, cost, time.Now(), id)
	if err != nil {
		return false, translateError(err, fmt.Sprintf("deducting leaf points from account ID %d", id))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: deducting leaf points: %v", ErrDatabaseError, err)
	}
	return n > 0, nil
}
