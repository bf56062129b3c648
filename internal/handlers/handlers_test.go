package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/services"
	"ecohaven_backend/pkg/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := utils.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type mockCheckInService struct{ mock.Mock }

func (m *mockCheckInService) CheckIn(ctx context.Context, token string) (*models.CheckIn, error) {
	args := m.Called(ctx, token)
	r0, _ := args.Get(0).(*models.CheckIn)
	return r0, args.Error(1)
}

func (m *mockCheckInService) GetCheckIns(ctx context.Context, filter services.CheckInFilter) (*services.ListResult, error) {
	args := m.Called(ctx, filter)
	r0, _ := args.Get(0).(*services.ListResult)
	return r0, args.Error(1)
}

func (m *mockCheckInService) GetCheckInByBookingID(ctx context.Context, bookingID int64) (*models.CheckIn, error) {
	args := m.Called(ctx, bookingID)
	r0, _ := args.Get(0).(*models.CheckIn)
	return r0, args.Error(1)
}

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) CreateBooking(ctx context.Context, req services.CreateBookingRequest) (*services.BookingConfirmation, error) {
	args := m.Called(ctx, req)
	r0, _ := args.Get(0).(*services.BookingConfirmation)
	return r0, args.Error(1)
}

func (m *mockBookingService) GetBooking(ctx context.Context, p *models.Principal, id int64) (*models.Booking, error) {
	args := m.Called(ctx, p, id)
	r0, _ := args.Get(0).(*models.Booking)
	return r0, args.Error(1)
}

func (m *mockBookingService) GetBookings(ctx context.Context, filter services.BookingFilter) (*services.ListResult, error) {
	args := m.Called(ctx, filter)
	r0, _ := args.Get(0).(*services.ListResult)
	return r0, args.Error(1)
}

func (m *mockBookingService) GetMyBookings(ctx context.Context, p *models.Principal, params services.ListParams) (*services.ListResult, error) {
	args := m.Called(ctx, p, params)
	r0, _ := args.Get(0).(*services.ListResult)
	return r0, args.Error(1)
}

func (m *mockBookingService) CancelBooking(ctx context.Context, p *models.Principal, id int64) (*models.Booking, error) {
	args := m.Called(ctx, p, id)
	r0, _ := args.Get(0).(*models.Booking)
	return r0, args.Error(1)
}

func (m *mockBookingService) GetBookingQRCode(ctx context.Context, p *models.Principal, id int64) ([]byte, error) {
	args := m.Called(ctx, p, id)
	r0, _ := args.Get(0).([]byte)
	return r0, args.Error(1)
}

func (m *mockBookingService) GetBookingTicket(ctx context.Context, p *models.Principal, id int64) ([]byte, error) {
	args := m.Called(ctx, p, id)
	r0, _ := args.Get(0).([]byte)
	return r0, args.Error(1)
}

type mockAccountService struct {
	mock.Mock
	services.AccountService
}

func (m *mockAccountService) Register(ctx context.Context, req services.RegisterAccountRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	r0, _ := args.Get(0).(*services.AuthResponse)
	return r0, args.Error(1)
}

func performJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func withPrincipal(p *models.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("principal", p)
		c.Next()
	}
}

func TestCheckInHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"success", nil, http.StatusOK, "Check-in successful"},
		{"unknown code", services.ErrCheckInNotFound, http.StatusNotFound, "Check-in record not found."},
		{"second scan", services.ErrAlreadyCheckedIn, http.StatusBadRequest, "Already checked in."},
		{"cancelled booking", services.ErrCheckInCancelled, http.StatusBadRequest, "Booking has been cancelled."},
		{"database down", errors.New("connection refused"), http.StatusInternalServerError, utils.GenericErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockCheckInService)
			var result *models.CheckIn
			if tt.err == nil {
				result = &models.CheckIn{QRCodeText: "ABC123", QRCodeStatus: models.CheckInStatusCheckedIn}
			}
			svc.On("CheckIn", mock.Anything, "ABC123").Return(result, tt.err)

			r := gin.New()
			r.POST("/checkin/checkin", NewCheckInHandler(svc).CheckIn)
			w := performJSON(r, http.MethodPost, "/checkin/checkin", `{"data":"ABC123"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decode(t, w)["message"])
			svc.AssertExpectations(t)
		})
	}
}

func TestCheckInHandlerRequiresData(t *testing.T) {
	svc := new(mockCheckInService)
	r := gin.New()
	r.POST("/checkin/checkin", NewCheckInHandler(svc).CheckIn)

	w := performJSON(r, http.MethodPost, "/checkin/checkin", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CheckIn", mock.Anything, mock.Anything)
}

func TestCancelBookingHandler(t *testing.T) {
	owner := &models.Principal{ID: 3, Kind: "account", Email: "ana@example.com"}
	svc := new(mockBookingService)
	svc.On("CancelBooking", mock.Anything, owner, int64(42)).
		Return(&models.Booking{ID: 42, Email: owner.Email, Status: models.BookingStatusCancelled}, nil)
	svc.On("CancelBooking", mock.Anything, owner, int64(7)).Return(nil, services.ErrBookingNotFound)
	svc.On("CancelBooking", mock.Anything, owner, int64(8)).Return(nil, services.ErrForbidden)

	r := gin.New()
	r.PUT("/api/bookings/cancel/:id", withPrincipal(owner), NewBookingHandler(svc).CancelBooking)

	w := performJSON(r, http.MethodPut, "/api/bookings/cancel/42", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Booking cancelled successfully", body["message"])
	booking, ok := body["booking"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Cancelled", booking["status"])

	w = performJSON(r, http.MethodPut, "/api/bookings/cancel/7", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Booking not found.", decode(t, w)["message"])

	w = performJSON(r, http.MethodPut, "/api/bookings/cancel/8", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performJSON(r, http.MethodPut, "/api/bookings/cancel/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid booking ID format.", decode(t, w)["message"])
	svc.AssertExpectations(t)
}

func TestRegisterHandler(t *testing.T) {
	svc := new(mockAccountService)
	taken := services.RegisterAccountRequest{FullName: "Ana", Email: "ana@example.com", Password: "secret123"}
	fresh := services.RegisterAccountRequest{FullName: "Ben", Email: "ben@example.com", Password: "secret123"}
	svc.On("Register", mock.Anything, taken).Return(nil, services.ErrEmailExists)
	svc.On("Register", mock.Anything, fresh).
		Return(&services.AuthResponse{Token: "tok", Account: &models.Account{ID: 9, Email: fresh.Email}}, nil)

	r := gin.New()
	r.POST("/account/register", NewAccountHandler(svc, nil).Register)

	w := performJSON(r, http.MethodPost, "/account/register",
		`{"full_name":"Ana","email":"ana@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists.", decode(t, w)["message"])

	w = performJSON(r, http.MethodPost, "/account/register",
		`{"full_name":"Ben","email":"ben@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "tok", decode(t, w)["token"])

	w = performJSON(r, http.MethodPost, "/account/register", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, utils.ErrCodeValidationFailed, body["code"])
	assert.Contains(t, body["details"], "email")
	svc.AssertExpectations(t)
}
