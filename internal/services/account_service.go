package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/internal/storage"
	"ecohaven_backend/pkg/utils"
)

// --- Data Transfer Objects (DTOs) ---

type RegisterAccountRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateAccountRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	Token   string      `json:"token"`
	Account interface{} `json:"account"`
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Generate(subject utils.TokenSubject) (string, error)
}

// --- AccountService Interface ---
type AccountService interface {
	Register(ctx context.Context, req RegisterAccountRequest) (*AuthResponse, error)
	Login(ctx context.Context, req models.Credentials) (*AuthResponse, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	GetAccounts(ctx context.Context, params ListParams, search string) (*ListResult, error)
	UpdateAccount(ctx context.Context, id int64, req UpdateAccountRequest) (*AuthResponse, error)
	ChangePassword(ctx context.Context, id int64, req ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, id int64, password string) error
	UploadProfilePicture(ctx context.Context, id int64, fh *multipart.FileHeader) (*AuthResponse, error)
}

type accountService struct {
	accountRepo repositories.AccountRepository
	db          repositories.SQLExecutor
	tokens      TokenIssuer
	files       FileStore
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(accountRepo repositories.AccountRepository, db repositories.SQLExecutor, tokens TokenIssuer, files FileStore) AccountService {
	return &accountService{accountRepo: accountRepo, db: db, tokens: tokens, files: files}
}

func (s *accountService) issue(account *models.Account) (*AuthResponse, error) {
	token, err := s.tokens.Generate(utils.TokenSubject{
		ID:         account.ID,
		Kind:       utils.KindAccount,
		Email:      account.Email,
		FullName:   account.FullName,
		ProfilePic: utils.StringValue(account.ProfilePic),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AuthResponse{Token: token, Account: account}, nil
}

func (s *accountService) Register(ctx context.Context, req RegisterAccountRequest) (*AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        utils.NormalizeEmail(req.Email),
		Phone:        utils.NewNullString(req.Phone),
		PasswordHash: string(hashed),
	}
	if _, err := s.accountRepo.CreateAccount(ctx, s.db, account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, duplicateError(err)
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	utils.LogInfo("Account registered", map[string]interface{}{"account_id": account.ID})
	return s.issue(account)
}

func (s *accountService) Login(ctx context.Context, req models.Credentials) (*AuthResponse, error) {
	account, err := s.accountRepo.GetAccountByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(account)
}

func (s *accountService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrAccountNotFound)
	}
	return account, nil
}

func (s *accountService) GetAccounts(ctx context.Context, params ListParams, search string) (*ListResult, error) {
	params = params.Normalize()
	accounts, total, err := s.accountRepo.GetAccounts(ctx, params.Page, params.PageSize, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	return newListResult(accounts, total, params), nil
}

// UpdateAccount applies the provided fields and reissues the token so the
// client's cached profile matches the database.
func (s *accountService) UpdateAccount(ctx context.Context, id int64, req UpdateAccountRequest) (*AuthResponse, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil && strings.TrimSpace(*req.FullName) != "" {
		account.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil && *req.Email != "" {
		account.Email = utils.NormalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		account.Phone = utils.NewNullString(*req.Phone)
	}

	if err := s.accountRepo.UpdateAccount(ctx, s.db, account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, duplicateError(err)
		}
		return nil, mapNotFound(err, ErrAccountNotFound)
	}
	return s.issue(account)
}

func (s *accountService) ChangePassword(ctx context.Context, id int64, req ChangePasswordRequest) error {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrIncorrectPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return mapNotFound(s.accountRepo.UpdatePassword(ctx, s.db, id, string(hashed)), ErrAccountNotFound)
}

func (s *accountService) DeleteAccount(ctx context.Context, id int64, password string) error {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return ErrIncorrectPassword
	}
	if err := s.accountRepo.DeleteAccount(ctx, s.db, id); err != nil {
		return mapNotFound(err, ErrAccountNotFound)
	}
	if account.ProfilePic != nil {
		if err := s.files.Remove(storage.ProfilePictures, *account.ProfilePic); err != nil {
			utils.LogWarn("Failed to remove profile picture", map[string]interface{}{"account_id": id, "error": err.Error()})
		}
	}
	utils.LogInfo("Account deleted", map[string]interface{}{"account_id": id})
	return nil
}

func (s *accountService) UploadProfilePicture(ctx context.Context, id int64, fh *multipart.FileHeader) (*AuthResponse, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := s.files.Save(storage.ProfilePictures, fh)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.UpdateProfilePic(ctx, s.db, id, name); err != nil {
		_ = s.files.Remove(storage.ProfilePictures, name)
		return nil, mapNotFound(err, ErrAccountNotFound)
	}
	if account.ProfilePic != nil {
		if err := s.files.Remove(storage.ProfilePictures, *account.ProfilePic); err != nil {
			utils.LogWarn("Failed to remove old profile picture", map[string]interface{}{"account_id": id, "error": err.Error()})
		}
	}
	account.ProfilePic = &name
	return s.issue(account)
}
