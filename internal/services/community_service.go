package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/pkg/utils"
)

// --- Volunteer ---

type VolunteerRequest struct {
	FullName     string `json:"full_name" binding:"required,max=255"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"omitempty,phone"`
	Interest     string `json:"interest" binding:"max=255"`
	Availability string `json:"availability" binding:"max=255"`
}

type UpdateVolunteerStatusRequest struct {
	Status string `json:"status" binding:"required,volunteer_status"`
}

type VolunteerFilter struct {
	ListParams
	Status string `form:"status" binding:"omitempty,volunteer_status"`
}

type VolunteerService interface {
	Apply(ctx context.Context, req VolunteerRequest) (*models.Volunteer, error)
	GetVolunteer(ctx context.Context, id int64) (*models.Volunteer, error)
	GetVolunteers(ctx context.Context, filter VolunteerFilter) (*ListResult, error)
	UpdateVolunteerStatus(ctx context.Context, id int64, status string) (*models.Volunteer, error)
	DeleteVolunteer(ctx context.Context, id int64) error
}

type volunteerService struct {
	repo repositories.VolunteerRepository
	db   repositories.SQLExecutor
}

func NewVolunteerService(repo repositories.VolunteerRepository, db repositories.SQLExecutor) VolunteerService {
	return &volunteerService{repo: repo, db: db}
}

func (s *volunteerService) Apply(ctx context.Context, req VolunteerRequest) (*models.Volunteer, error) {
	volunteer := &models.Volunteer{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        utils.NormalizeEmail(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Interest:     strings.TrimSpace(req.Interest),
		Availability: strings.TrimSpace(req.Availability),
		Status:       models.VolunteerStatusPending,
	}
	if _, err := s.repo.CreateVolunteer(ctx, s.db, volunteer); err != nil {
		return nil, fmt.Errorf("creating volunteer: %w", err)
	}
	return volunteer, nil
}

func (s *volunteerService) GetVolunteer(ctx context.Context, id int64) (*models.Volunteer, error) {
	volunteer, err := s.repo.GetVolunteerByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrVolunteerNotFound)
	}
	return volunteer, nil
}

func (s *volunteerService) GetVolunteers(ctx context.Context, filter VolunteerFilter) (*ListResult, error) {
	params := filter.ListParams.Normalize()
	volunteers, total, err := s.repo.GetVolunteers(ctx, filter.Status, params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}
	return newListResult(volunteers, total, params), nil
}

func (s *volunteerService) UpdateVolunteerStatus(ctx context.Context, id int64, status string) (*models.Volunteer, error) {
	if err := s.repo.UpdateVolunteerStatus(ctx, s.db, id, status); err != nil {
		return nil, mapNotFound(err, ErrVolunteerNotFound)
	}
	return s.GetVolunteer(ctx, id)
}

func (s *volunteerService) DeleteVolunteer(ctx context.Context, id int64) error {
	return mapNotFound(s.repo.DeleteVolunteer(ctx, s.db, id), ErrVolunteerNotFound)
}

// --- FAQ ---

type FAQRequest struct {
	Question string `json:"question" binding:"required,max=500"`
	Answer   string `json:"answer" binding:"required"`
}

type FAQService interface {
	CreateFAQ(ctx context.Context, req FAQRequest) (*models.FAQ, error)
	GetFAQ(ctx context.Context, id int64) (*models.FAQ, error)
	GetFAQs(ctx context.Context) ([]models.FAQ, error)
	UpdateFAQ(ctx context.Context, id int64, req FAQRequest) (*models.FAQ, error)
	DeleteFAQ(ctx context.Context, id int64) error
}

type faqService struct {
	repo repositories.FAQRepository
	db   repositories.SQLExecutor
}

func NewFAQService(repo repositories.FAQRepository, db repositories.SQLExecutor) FAQService {
	return &faqService{repo: repo, db: db}
}

func (s *faqService) CreateFAQ(ctx context.Context, req FAQRequest) (*models.FAQ, error) {
	faq := &models.FAQ{Question: strings.TrimSpace(req.Question), Answer: strings.TrimSpace(req.Answer)}
	if _, err := s.repo.CreateFAQ(ctx, s.db, faq); err != nil {
		return nil, fmt.Errorf("creating faq: %w", err)
	}
	return faq, nil
}

func (s *faqService) GetFAQ(ctx context.Context, id int64) (*models.FAQ, error) {
	faq, err := s.repo.GetFAQByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrFAQNotFound)
	}
	return faq, nil
}

func (s *faqService) GetFAQs(ctx context.Context) ([]models.FAQ, error) {
	return s.repo.GetFAQs(ctx)
}

func (s *faqService) UpdateFAQ(ctx context.Context, id int64, req FAQRequest) (*models.FAQ, error) {
	faq, err := s.GetFAQ(ctx, id)
	if err != nil {
		return nil, err
	}
	faq.Question = strings.TrimSpace(req.Question)
	faq.Answer = strings.TrimSpace(req.Answer)
	if err := s.repo.UpdateFAQ(ctx, s.db, faq); err != nil {
		return nil, mapNotFound(err, ErrFAQNotFound)
	}
	return faq, nil
}

func (s *faqService) DeleteFAQ(ctx context.Context, id int64) error {
	return mapNotFound(s.repo.DeleteFAQ(ctx, s.db, id), ErrFAQNotFound)
}

// --- Review ---

type ReviewRequest struct {
	EventID *int64 `json:"event_id" binding:"omitempty,gt=0"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

type ReviewFilter struct {
	ListParams
	EventID *int64 `form:"event_id"`
}

type ReviewService interface {
	CreateReview(ctx context.Context, principal *models.Principal, req ReviewRequest) (*models.Review, error)
	GetReviews(ctx context.Context, filter ReviewFilter) (*ListResult, error)
	DeleteReview(ctx context.Context, principal *models.Principal, id int64) error
}

type reviewService struct {
	repo repositories.ReviewRepository
	db   repositories.SQLExecutor
}

func NewReviewService(repo repositories.ReviewRepository, db repositories.SQLExecutor) ReviewService {
	return &reviewService{repo: repo, db: db}
}

func (s *reviewService) CreateReview(ctx context.Context, principal *models.Principal, req ReviewRequest) (*models.Review, error) {
	if !principal.IsAccount() {
		return nil, ErrForbidden
	}
	accountID := principal.ID
	review := &models.Review{
		AccountID:    &accountID,
		ReviewerName: principal.FullName,
		EventID:      req.EventID,
		Rating:       req.Rating,
		Comment:      strings.TrimSpace(req.Comment),
	}
	if _, err := s.repo.CreateReview(ctx, s.db, review); err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("creating review: %w", err)
	}
	return review, nil
}

func (s *reviewService) GetReviews(ctx context.Context, filter ReviewFilter) (*ListResult, error) {
	params := filter.ListParams.Normalize()
	reviews, total, err := s.repo.GetReviews(ctx, filter.EventID, params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}
	return newListResult(reviews, total, params), nil
}

// DeleteReview is allowed for the author or any staff member.
func (s *reviewService) DeleteReview(ctx context.Context, principal *models.Principal, id int64) error {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return mapNotFound(err, ErrReviewNotFound)
	}
	owner := principal.IsAccount() && review.AccountID != nil && *review.AccountID == principal.ID
	if !owner && !principal.IsStaff() {
		return ErrForbidden
	}
	return mapNotFound(s.repo.DeleteReview(ctx, s.db, id), ErrReviewNotFound)
}
