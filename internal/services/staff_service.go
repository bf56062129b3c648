package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/pkg/utils"
)

type CreateStaffRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	FullName string `json:"full_name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,staff_role"`
	Status   string `json:"status" binding:"omitempty,staff_status"`
}

type UpdateStaffRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=100"`
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     *string `json:"role" binding:"omitempty,staff_role"`
	Status   *string `json:"status" binding:"omitempty,staff_status"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

type UpdateStaffStatusRequest struct {
	Status string `json:"status" binding:"required,staff_status"`
}

type StaffFilter struct {
	ListParams
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,staff_role"`
	Status string `form:"status" binding:"omitempty,staff_status"`
}

// StaffService manages back-office accounts.
type StaffService interface {
	Login(ctx context.Context, req models.StaffCredentials) (*AuthResponse, error)
	CreateStaff(ctx context.Context, req CreateStaffRequest) (*models.StaffAccount, error)
	GetStaff(ctx context.Context, id int64) (*models.StaffAccount, error)
	GetStaffList(ctx context.Context, filter StaffFilter) (*ListResult, error)
	UpdateStaff(ctx context.Context, id int64, req UpdateStaffRequest) (*models.StaffAccount, error)
	UpdateStaffStatus(ctx context.Context, id int64, status string) (*models.StaffAccount, error)
}

type staffService struct {
	staffRepo repositories.StaffRepository
	db        repositories.SQLExecutor
	tx        Transactor
	tokens    TokenIssuer
}

func NewStaffService(staffRepo repositories.StaffRepository, db repositories.SQLExecutor, tx Transactor, tokens TokenIssuer) StaffService {
	return &staffService{staffRepo: staffRepo, db: db, tx: tx, tokens: tokens}
}

func (s *staffService) Login(ctx context.Context, req models.StaffCredentials) (*AuthResponse, error) {
	staff, err := s.staffRepo.GetStaffAccountByLogin(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !staff.IsActive() {
		return nil, ErrStaffInactive
	}

	token, err := s.tokens.Generate(utils.TokenSubject{
		ID:       staff.ID,
		Kind:     utils.KindStaff,
		Email:    staff.Email,
		FullName: staff.FullName,
		Role:     staff.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	utils.LogInfo("Staff logged in", map[string]interface{}{"staff_id": staff.ID, "role": staff.Role})
	return &AuthResponse{Token: token, Account: staff}, nil
}

func (s *staffService) CreateStaff(ctx context.Context, req CreateStaffRequest) (*models.StaffAccount, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	status := req.Status
	if status == "" {
		status = models.StaffStatusActive
	}
	staff := &models.StaffAccount{
		Username:     strings.TrimSpace(req.Username),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        utils.NormalizeEmail(req.Email),
		PasswordHash: string(hashed),
		Role:         req.Role,
		Status:       status,
	}
	if _, err := s.staffRepo.CreateStaffAccount(ctx, s.db, staff); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, duplicateError(err)
		}
		return nil, fmt.Errorf("creating staff account: %w", err)
	}
	return staff, nil
}

func (s *staffService) GetStaff(ctx context.Context, id int64) (*models.StaffAccount, error) {
	staff, err := s.staffRepo.GetStaffAccountByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrStaffNotFound)
	}
	return staff, nil
}

func (s *staffService) GetStaffList(ctx context.Context, filter StaffFilter) (*ListResult, error) {
	params := filter.ListParams.Normalize()
	list, total, err := s.staffRepo.GetStaffAccounts(ctx, params.Page, params.PageSize, strings.TrimSpace(filter.Search), filter.Role, filter.Status)
	if err != nil {
		return nil, err
	}
	return newListResult(list, total, params), nil
}

// UpdateStaff saves profile changes and, when given, a new password in
// one transaction.
func (s *staffService) UpdateStaff(ctx context.Context, id int64, req UpdateStaffRequest) (*models.StaffAccount, error) {
	staff, err := s.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Username != nil && *req.Username != "" {
		staff.Username = strings.TrimSpace(*req.Username)
	}
	if req.FullName != nil && *req.FullName != "" {
		staff.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil && *req.Email != "" {
		staff.Email = utils.NormalizeEmail(*req.Email)
	}
	if req.Role != nil && *req.Role != "" {
		staff.Role = *req.Role
	}
	if req.Status != nil && *req.Status != "" {
		staff.Status = *req.Status
	}

	var passwordHash string
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = string(hashed)
	}

	err = s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.staffRepo.UpdateStaffAccount(ctx, exec, staff); err != nil {
			return err
		}
		if passwordHash != "" {
			return s.staffRepo.UpdateStaffPassword(ctx, exec, id, passwordHash)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, duplicateError(err)
		}
		return nil, mapNotFound(err, ErrStaffNotFound)
	}
	return staff, nil
}

func (s *staffService) UpdateStaffStatus(ctx context.Context, id int64, status string) (*models.StaffAccount, error) {
	if err := s.staffRepo.UpdateStaffStatus(ctx, s.db, id, status); err != nil {
		return nil, mapNotFound(err, ErrStaffNotFound)
	}
	utils.LogInfo("Staff status changed", map[string]interface{}{"staff_id": id, "status": status})
	return s.GetStaff(ctx, id)
}
