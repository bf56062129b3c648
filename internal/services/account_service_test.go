package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
)

func hashFor(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	accounts := new(mockAccountRepository)
	svc := NewAccountService(accounts, nil, fakeTokens{}, &fakeFiles{})

	accounts.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), &repositories.DuplicateKeyError{Constraint: "accounts_email_key"})

	_, err := svc.Register(context.Background(), RegisterAccountRequest{
		FullName: "Ana Lima", Email: "ana@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
	accounts.AssertExpectations(t)
}

func TestRegisterIssuesToken(t *testing.T) {
	accounts := new(mockAccountRepository)
	svc := NewAccountService(accounts, nil, fakeTokens{}, &fakeFiles{})

	accounts.On("CreateAccount", mock.Anything, mock.Anything, mock.MatchedBy(func(a *models.Account) bool {
		return a.Email == "ana@example.com" && a.PasswordHash != "secret123"
	})).Run(func(args mock.Arguments) { args.Get(2).(*models.Account).ID = 3 }).Return(int64(3), nil)

	resp, err := svc.Register(context.Background(), RegisterAccountRequest{
		FullName: " Ana Lima ", Email: "ANA@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-account-3", resp.Token)
}

func TestAccountLogin(t *testing.T) {
	accounts := new(mockAccountRepository)
	svc := NewAccountService(accounts, nil, fakeTokens{}, &fakeFiles{})
	ctx := context.Background()

	accounts.On("GetAccountByEmail", ctx, "ana@example.com").
		Return(&models.Account{ID: 3, Email: "ana@example.com", PasswordHash: hashFor(t, "secret123")}, nil)
	accounts.On("GetAccountByEmail", ctx, "nobody@example.com").Return(nil, repositories.ErrNotFound)

	_, err := svc.Login(ctx, models.Credentials{Email: "ana@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.Credentials{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := svc.Login(ctx, models.Credentials{Email: "Ana@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "token-account-3", resp.Token)
}

func TestStaffLoginInactive(t *testing.T) {
	staffRepo := new(mockStaffRepository)
	svc := NewStaffService(staffRepo, nil, &fakeTx{}, fakeTokens{})

	staffRepo.On("GetStaffAccountByLogin", mock.Anything, "maria").Return(&models.StaffAccount{
		ID: 2, Username: "maria", PasswordHash: hashFor(t, "secret123"), Role: models.StaffRoleStaff, Status: models.StaffStatusInactive,
	}, nil)

	_, err := svc.Login(context.Background(), models.StaffCredentials{Username: "maria", Password: "secret123"})
	assert.ErrorIs(t, err, ErrStaffInactive)

	_, err = svc.Login(context.Background(), models.StaffCredentials{Username: "maria", Password: "nope-nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
