package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, executor SQLExecutor, review *models.Review) (int64, error)
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	GetReviews(ctx context.Context, eventID *int64, page, pageSize int) ([]models.Review, int, error)
	DeleteReview(ctx context.Context, executor SQLExecutor, id int64) error
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, account_id, reviewer_name, event_id, rating, comment, created_at, updated_at`

func scanReview(row scanner, extra ...interface{}) (*models.Review, error) {
	var rv models.Review
	var accountID, eventID sql.NullInt64
	dest := []interface{}{&rv.ID, &accountID, &rv.ReviewerName, &eventID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if accountID.Valid {
		rv.AccountID = &accountID.Int64
	}
	if eventID.Valid {
		rv.EventID = &eventID.Int64
	}
	return &rv, nil
}

func (r *reviewRepository) CreateReview(ctx context.Context, executor SQLExecutor, review *models.Review) (int64, error) {
	query := `INSERT INTO reviews (account_id, reviewer_name, event_id, rating, comment, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	currentTime := time.Now()
	review.CreatedAt, review.UpdatedAt = currentTime, currentTime
	err := executor.QueryRowContext(ctx, query,
		review.AccountID, review.ReviewerName, review.EventID, review.Rating, review.Comment,
		review.CreatedAt, review.UpdatedAt,
	).Scan(&review.ID)
	if err != nil {
		return 0, translateError(err, "creating review")
	}
	return review.ID, nil
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	review, err := scanReview(r.db.QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("getting review by ID %d", id))
	}
	return review, nil
}

func (r *reviewRepository) GetReviews(ctx context.Context, eventID *int64, page, pageSize int) ([]models.Review, int, error) {
	reviews := []models.Review{}
	totalCount := 0

	var qb queryBuilder
	if eventID != nil {
		qb.add("event_id = ?", *eventID)
	}
	query := `SELECT ` + reviewColumns + `, COUNT(*) OVER() AS total_count FROM reviews` +
		qb.where() + ` ORDER BY created_at DESC, id DESC` + qb.paginate(page, pageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying reviews")
	}
	defer rows.Close()

	for rows.Next() {
		review, err := scanReview(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning review: %v", ErrDatabaseError, err)
		}
		reviews = append(reviews, *review)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating review rows: %v", ErrDatabaseError, err)
	}
	return reviews, totalCount, nil
}

func (r *reviewRepository) DeleteReview(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("deleting review ID %d", id))
	}
	return requireAffected(result, "deleting review")
}
