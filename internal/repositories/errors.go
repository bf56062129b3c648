package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKey is returned when a referenced row does not exist.
	ErrForeignKey = errors.New("foreign key constraint violated")

	// ErrConditionFailed is returned when a guarded update matched no rows.
	ErrConditionFailed = errors.New("update precondition not met")
)

// SQLExecutor defines an interface that can be satisfied by *sql.DB or *sql.Tx
// This allows repository methods to be used within transactions or with a direct DB connection.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// scanner is an interface satisfied by *sql.Row and *sql.Rows.
// This allows for generic scanning helpers.
type scanner interface {
	Scan(dest ...interface{}) error
}

// DuplicateKeyError carries the violated unique constraint.
type DuplicateKeyError struct {
	Constraint string
	Detail     string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s (constraint: %s)", ErrDuplicateKey.Error(), e.Constraint)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// DuplicateColumn returns the column behind a unique violation, using the
// default "<table>_<column>_key" constraint naming. It returns "" when err
// is not a duplicate key error.
func DuplicateColumn(err error) string {
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		return ""
	}
	c := strings.TrimSuffix(dup.Constraint, "_key")
	for _, col := range []string{"username", "email", "phone", "product_name", "collect_id", "qr_code_text", "payment_id", "refund_id"} {
		if strings.HasSuffix(c, "_"+col) {
			return col
		}
	}
	return c
}

// translateError maps driver errors onto the repository sentinels.
func translateError(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return &DuplicateKeyError{Constraint: pqErr.Constraint, Detail: pqErr.Detail}
		case "foreign_key_violation":
			return fmt.Errorf("%w: %s: %s", ErrForeignKey, action, pqErr.Message)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, action, err)
}

// requireAffected turns a zero-row write into ErrNotFound.
func requireAffected(result sql.Result, action string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDatabaseError, action, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// queryBuilder accumulates WHERE conditions with positional args.
type queryBuilder struct {
	conditions []string
	args       []interface{}
}

// add appends a condition; every "?" in cond becomes the next $n.
func (q *queryBuilder) add(cond string, arg interface{}) {
	q.args = append(q.args, arg)
	q.conditions = append(q.conditions, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(q.args))))
}

func (q *queryBuilder) where() string {
	if len(q.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conditions, " AND ")
}

// paginate appends LIMIT/OFFSET when pageSize is positive.
func (q *queryBuilder) paginate(page, pageSize int) string {
	if pageSize <= 0 {
		return ""
	}
	q.args = append(q.args, pageSize)
	clause := fmt.Sprintf(" LIMIT $%d", len(q.args))
	if page > 1 {
		q.args = append(q.args, (page-1)*pageSize)
		clause += fmt.Sprintf(" OFFSET $%d", len(q.args))
	}
	return clause
}

func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
