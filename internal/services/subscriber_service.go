package services

import (
	"context"
	"fmt"

	"ecohaven_backend/internal/mailer"
	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/pkg/utils"
)

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SubscriberService interface {
	// Subscribe is idempotent; created reports whether the email was new.
	Subscribe(ctx context.Context, email string) (sub *models.Subscriber, created bool, err error)
	GetSubscribers(ctx context.Context, params ListParams) (*ListResult, error)
	Unsubscribe(ctx context.Context, email string) error
}

type subscriberService struct {
	repo repositories.SubscriberRepository
	db   repositories.SQLExecutor
	mail mailer.Mailer
}

func NewSubscriberService(repo repositories.SubscriberRepository, db repositories.SQLExecutor, mail mailer.Mailer) SubscriberService {
	return &subscriberService{repo: repo, db: db, mail: mail}
}

func (s *subscriberService) Subscribe(ctx context.Context, email string) (*models.Subscriber, bool, error) {
	email = utils.NormalizeEmail(email)
	sub, created, err := s.repo.Subscribe(ctx, s.db, email)
	if err != nil {
		return nil, false, fmt.Errorf("subscribing %s: %w", email, err)
	}
	if created {
		if err := s.mail.Send(ctx, mailer.SubscriptionConfirmed(email)); err != nil {
			utils.LogWarn("Failed to send subscription confirmation", map[string]interface{}{"email": email, "error": err.Error()})
		}
	}
	return sub, created, nil
}

func (s *subscriberService) GetSubscribers(ctx context.Context, params ListParams) (*ListResult, error) {
	params = params.Normalize()
	subs, total, err := s.repo.GetSubscribers(ctx, params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}
	return newListResult(subs, total, params), nil
}

func (s *subscriberService) Unsubscribe(ctx context.Context, email string) error {
	return mapNotFound(s.repo.Unsubscribe(ctx, s.db, utils.NormalizeEmail(email)), ErrSubscriberNotFound)
}
