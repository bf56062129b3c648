package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ecohaven_backend/internal/mailer"
	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/pkg/utils"
)

const (
	resetCodeLength = 6
	resetCodeTTL    = 15 * time.Minute
)

type ResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyResetRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type passwordResetService struct {
	resetRepo   repositories.PasswordResetRepository
	accountRepo repositories.AccountRepository
	db          repositories.SQLExecutor
	tx          Transactor
	mail        mailer.Mailer
	now         func() time.Time
}

func NewPasswordResetService(
	resetRepo repositories.PasswordResetRepository,
	accountRepo repositories.AccountRepository,
	db repositories.SQLExecutor,
	tx Transactor,
	mail mailer.Mailer,
) PasswordResetService {
	return &passwordResetService{resetRepo: resetRepo, accountRepo: accountRepo, db: db, tx: tx, mail: mail, now: time.Now}
}

// RequestReset stores a hashed 6-digit code and emails the plain code.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if _, err := s.accountRepo.GetAccountByEmail(ctx, email); err != nil {
		return mapNotFound(err, ErrAccountNotFound)
	}

	code := utils.RandomDigits(resetCodeLength)
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing reset code: %w", err)
	}
	reset := &models.PasswordReset{Email: email, CodeHash: string(hash), ExpiresAt: s.now().Add(resetCodeTTL)}
	if _, err := s.resetRepo.CreateReset(ctx, s.db, reset); err != nil {
		return fmt.Errorf("storing reset code: %w", err)
	}

	if err := s.mail.Send(ctx, mailer.ResetCode(email, code, int(resetCodeTTL.Minutes()))); err != nil {
		utils.LogWarn("Failed to send reset code", map[string]interface{}{"email": email, "error": err.Error()})
	}
	return nil
}

func (s *passwordResetService) VerifyCode(ctx context.Context, email, code string) error {
	resets, err := s.resetRepo.GetActiveResets(ctx, utils.NormalizeEmail(email), s.now())
	if err != nil {
		return err
	}
	for _, r := range resets {
		err := bcrypt.CompareHashAndPassword([]byte(r.CodeHash), []byte(code))
		if err == nil {
			return nil
		}
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("comparing reset code: %w", err)
		}
	}
	return ErrInvalidResetCode
}

func (s *passwordResetService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	email := utils.NormalizeEmail(req.Email)
	if err := s.VerifyCode(ctx, email, req.Code); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	err = s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.accountRepo.UpdatePasswordByEmail(ctx, exec, email, string(hash)); err != nil {
			return mapNotFound(err, ErrAccountNotFound)
		}
		return s.resetRepo.DeleteResetsByEmail(ctx, exec, email)
	})
	if err != nil {
		return err
	}
	utils.LogInfo("Password reset", map[string]interface{}{"email": email})
	return nil
}
