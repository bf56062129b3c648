package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

type FAQRepository interface {
	CreateFAQ(ctx context.Context, executor SQLExecutor, faq *models.FAQ) (int64, error)
	GetFAQByID(ctx context.Context, id int64) (*models.FAQ, error)
	GetFAQs(ctx context.Context) ([]models.FAQ, error)
	UpdateFAQ(ctx context.Context, executor SQLExecutor, faq *models.FAQ) error
	DeleteFAQ(ctx context.Context, executor SQLExecutor, id int64) error
}

type faqRepository struct {
	db *sql.DB
}

func NewFAQRepository(db *sql.DB) FAQRepository {
	return &faqRepository{db: db}
}

func (r *faqRepository) CreateFAQ(ctx context.Context, executor SQLExecutor, faq *models.FAQ) (int64, error) {
	currentTime := time.Now()
	faq.CreatedAt, faq.UpdatedAt = currentTime, currentTime
	err := executor.QueryRowContext(ctx,
		`INSERT INTO faqs (question, answer, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		faq.Question, faq.Answer, faq.CreatedAt, faq.UpdatedAt,
	).Scan(&faq.ID)
	if err != nil {
		return 0, translateError(err, "creating faq")
	}
	return faq.ID, nil
}

func (r *faqRepository) GetFAQByID(ctx context.Context, id int64) (*models.FAQ, error) {
	faq := &models.FAQ{}
	err := r.db.QueryRowContext(ctx, `SELECT id, question, answer, created_at, updated_at FROM faqs WHERE id = $1`, id).
		Scan(&faq.ID, &faq.Question, &faq.Answer, &faq.CreatedAt, &faq.UpdatedAt)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("getting faq by ID %d", id))
	}
	return faq, nil
}

func (r *faqRepository) GetFAQs(ctx context.Context) ([]models.FAQ, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, question, answer, created_at, updated_at FROM faqs ORDER BY id ASC`)
	if err != nil {
		return nil, translateError(err, "querying faqs")
	}
	defer rows.Close()

	faqs := []models.FAQ{}
	for rows.Next() {
		var faq models.FAQ
		if err := rows.Scan(&faq.ID, &faq.Question, &faq.Answer, &faq.CreatedAt, &faq.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning faq: %v", ErrDatabaseError, err)
		}
		faqs = append(faqs, faq)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating faq rows: %v", ErrDatabaseError, err)
	}
	return faqs, nil
}

func (r *faqRepository) UpdateFAQ(ctx context.Context, executor SQLExecutor, faq *models.FAQ) error {
	faq.UpdatedAt = time.Now()
	result, err := executor.ExecContext(ctx, `UPDATE faqs SET question = $1, answer = $2, updated_at = $3 WHERE id = $4`,
		faq.Question, faq.Answer, faq.UpdatedAt, faq.ID)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating faq ID %d", faq.ID))
	}
	return requireAffected(result, "updating faq")
}

func (r *faqRepository) DeleteFAQ(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("deleting faq ID %d", id))
	}
	return requireAffected(result, "deleting faq")
}
