package services

import (
	"context"
	"fmt"
	"strings"

	"ecohaven_backend/internal/mailer"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=255"`
	Message string `json:"message" binding:"required,max=5000"`
}

// ContactService forwards contact-form messages to the site inbox. Unlike
// other notifications a failed send is returned to the caller.
type ContactService interface {
	Send(ctx context.Context, req ContactRequest) error
}

type contactService struct {
	inbox string
	mail  mailer.Mailer
}

func NewContactService(inbox string, mail mailer.Mailer) ContactService {
	return &contactService{inbox: inbox, mail: mail}
}

func (s *contactService) Send(ctx context.Context, req ContactRequest) error {
	if s.inbox == "" {
		return ErrContactNotConfigured
	}
	msg := mailer.ContactForm(s.inbox, strings.TrimSpace(req.Name), strings.TrimSpace(req.Email), strings.TrimSpace(req.Subject), req.Message)
	if err := s.mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("forwarding contact message: %w", err)
	}
	return nil
}
