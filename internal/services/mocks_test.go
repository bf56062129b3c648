package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/stretchr/testify/mock"

	"ecohaven_backend/internal/mailer"
	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/pkg/utils"
)

// fakeTx runs fn directly and records whether the transaction committed.
type fakeTx struct {
	calls     int
	committed int
}

func (f *fakeTx) WithinTransaction(_ context.Context, fn func(tx repositories.SQLExecutor) error) error {
	f.calls++
	if err := fn(nil); err != nil {
		return err
	}
	f.committed++
	return nil
}

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Generate(subject utils.TokenSubject) (string, error) {
	return "token-" + subject.Kind + "-" + utils.Int64ToStr(subject.ID), nil
}

type fakeFiles struct {
	removed []string
}

func (f *fakeFiles) Save(category string, _ *multipart.FileHeader) (string, error) {
	return category + "-new.png", nil
}

func (f *fakeFiles) Remove(category, filename string) error {
	f.removed = append(f.removed, category+"/"+filename)
	return nil
}

type mockAccountRepository struct{ mock.Mock }

func (m *mockAccountRepository) CreateAccount(ctx context.Context, executor repositories.SQLExecutor, account *models.Account) (int64, error) {
	args := m.Called(ctx, executor, account)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *mockAccountRepository) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.Account)
	return r0, args.Error(1)
}

func (m *mockAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	r0, _ := args.Get(0).(*models.Account)
	return r0, args.Error(1)
}

func (m *mockAccountRepository) GetAccounts(ctx context.Context, page, pageSize int, searchTerm string) ([]models.Account, int, error) {
	args := m.Called(ctx, page, pageSize, searchTerm)
	r0, _ := args.Get(0).([]models.Account)
	r1, _ := args.Get(1).(int)
	return r0, r1, args.Error(2)
}

func (m *mockAccountRepository) UpdateAccount(ctx context.Context, executor repositories.SQLExecutor, account *models.Account) error {
	args := m.Called(ctx, executor, account)
	return args.Error(0)
}

func (m *mockAccountRepository) UpdatePassword(ctx context.Context, executor repositories.SQLExecutor, id int64, passwordHash string) error {
	args := m.Called(ctx, executor, id, passwordHash)
	return args.Error(0)
}

func (m *mockAccountRepository) UpdatePasswordByEmail(ctx context.Context, executor repositories.SQLExecutor, email, passwordHash string) error {
	args := m.Called(ctx, executor, email, passwordHash)
	return args.Error(0)
}

func (m *mockAccountRepository) UpdateProfilePic(ctx context.Context, executor repositories.SQLExecutor, id int64, fileName string) error {
	args := m.Called(ctx, executor, id, fileName)
	return args.Error(0)
}

func (m *mockAccountRepository) DeleteAccount(ctx context.Context, executor repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, executor, id)
	return args.Error(0)
}

func (m *mockAccountRepository) AddLeafPointsByEmail(ctx context.Context, executor repositories.SQLExecutor, email string, points int) (bool, error) {
	args := m.Called(ctx, executor, email, points)
	r0, _ := args.Get(0).(bool)
	return r0, args.Error(1)
}

func (m *mockAccountRepository) DeductLeafPoints(ctx context.Context, executor repositories.SQLExecutor, id int64, cost int) (bool, error) {
	args := m.Called(ctx, executor, id, cost)
	r0, _ := args.Get(0).(bool)
	return r0, args.Error(1)
}

type mockBookingRepository struct{ mock.Mock }

func (m *mockBookingRepository) CreateBooking(ctx context.Context, executor repositories.SQLExecutor, booking *models.Booking) (int64, error) {
	args := m.Called(ctx, executor, booking)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *mockBookingRepository) GetBookingByID(ctx context.Context, executor repositories.SQLExecutor, id int64) (*models.Booking, error) {
	args := m.Called(ctx, executor, id)
	r0, _ := args.Get(0).(*models.Booking)
	return r0, args.Error(1)
}

func (m *mockBookingRepository) GetBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int, error) {
	args := m.Called(ctx, filter)
	r0, _ := args.Get(0).([]models.Booking)
	r1, _ := args.Get(1).(int)
	return r0, r1, args.Error(2)
}

func (m *mockBookingRepository) UpdateBookingStatus(ctx context.Context, executor repositories.SQLExecutor, id int64, status string) error {
	args := m.Called(ctx, executor, id, status)
	return args.Error(0)
}

func (m *mockBookingRepository) OrphanEventBookings(ctx context.Context, executor repositories.SQLExecutor, eventID int64) ([]int64, error) {
	args := m.Called(ctx, executor, eventID)
	r0, _ := args.Get(0).([]int64)
	return r0, args.Error(1)
}

func (m *mockBookingRepository) DeleteBooking(ctx context.Context, executor repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, executor, id)
	return args.Error(0)
}

type mockCheckInRepository struct{ mock.Mock }

func (m *mockCheckInRepository) CreateCheckIn(ctx context.Context, executor repositories.SQLExecutor, checkIn *models.CheckIn) (int64, error) {
	args := m.Called(ctx, executor, checkIn)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *mockCheckInRepository) FindByQRCode(ctx context.Context, qrCodeText string) (*models.CheckIn, error) {
	args := m.Called(ctx, qrCodeText)
	r0, _ := args.Get(0).(*models.CheckIn)
	return r0, args.Error(1)
}

func (m *mockCheckInRepository) FindLatestByGuestName(ctx context.Context, guestName string) (*models.CheckIn, error) {
	args := m.Called(ctx, guestName)
	r0, _ := args.Get(0).(*models.CheckIn)
	return r0, args.Error(1)
}

func (m *mockCheckInRepository) GetCheckInByBookingID(ctx context.Context, bookingID int64) (*models.CheckIn, error) {
	args := m.Called(ctx, bookingID)
	r0, _ := args.Get(0).(*models.CheckIn)
	return r0, args.Error(1)
}

func (m *mockCheckInRepository) GetCheckIns(ctx context.Context, status string, page, pageSize int) ([]models.CheckIn, int, error) {
	args := m.Called(ctx, status, page, pageSize)
	r0, _ := args.Get(0).([]models.CheckIn)
	r1, _ := args.Get(1).(int)
	return r0, r1, args.Error(2)
}

func (m *mockCheckInRepository) MarkCheckedIn(ctx context.Context, executor repositories.SQLExecutor, id int64, at time.Time) error {
	args := m.Called(ctx, executor, id, at)
	return args.Error(0)
}

func (m *mockCheckInRepository) SetStatusByBookingID(ctx context.Context, executor repositories.SQLExecutor, bookingID int64, status string) (int64, error) {
	args := m.Called(ctx, executor, bookingID, status)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *mockCheckInRepository) CancelPendingByBookingIDs(ctx context.Context, executor repositories.SQLExecutor, bookingIDs []int64) (int64, error) {
	args := m.Called(ctx, executor, bookingIDs)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

type mockEventRepository struct{ mock.Mock }

func (m *mockEventRepository) CreateEvent(ctx context.Context, executor repositories.SQLExecutor, event *models.Event) (int64, error) {
	args := m.Called(ctx, executor, event)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *mockEventRepository) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.Event)
	return r0, args.Error(1)
}

func (m *mockEventRepository) GetEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	args := m.Called(ctx, filter)
	r0, _ := args.Get(0).([]models.Event)
	r1, _ := args.Get(1).(int)
	return r0, r1, args.Error(2)
}

func (m *mockEventRepository) UpdateEvent(ctx context.Context, executor repositories.SQLExecutor, event *models.Event) error {
	args := m.Called(ctx, executor, event)
	return args.Error(0)
}

func (m *mockEventRepository) UpdateEventImage(ctx context.Context, executor repositories.SQLExecutor, id int64, fileName string) error {
	args := m.Called(ctx, executor, id, fileName)
	return args.Error(0)
}

func (m *mockEventRepository) DeleteEvent(ctx context.Context, executor repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, executor, id)
	return args.Error(0)
}

func (m *mockEventRepository) SearchEvents(ctx context.Context, term string, limit int) ([]models.Event, error) {
	args := m.Called(ctx, term, limit)
	r0, _ := args.Get(0).([]models.Event)
	return r0, args.Error(1)
}

type mockProductRepository struct{ mock.Mock }

func (m *mockProductRepository) CreateProduct(ctx context.Context, executor repositories.SQLExecutor, product *models.ProductDetail) (int64, error) {
	args := m.Called(ctx, executor, product)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *mockProductRepository) GetProductByID(ctx context.Context, id int64) (*models.ProductDetail, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.ProductDetail)
	return r0, args.Error(1)
}

func (m *mockProductRepository) GetProductByName(ctx context.Context, name string) (*models.ProductDetail, error) {
	args := m.Called(ctx, name)
	r0, _ := args.Get(0).(*models.ProductDetail)
	return r0, args.Error(1)
}

func (m *mockProductRepository) GetProducts(ctx context.Context, searchTerm string, page, pageSize int) ([]models.ProductDetail, int, error) {
	args := m.Called(ctx, searchTerm, page, pageSize)
	r0, _ := args.Get(0).([]models.ProductDetail)
	r1, _ := args.Get(1).(int)
	return r0, r1, args.Error(2)
}

func (m *mockProductRepository) UpdateProduct(ctx context.Context, executor repositories.SQLExecutor, product *models.ProductDetail) error {
	args := m.Called(ctx, executor, product)
	return args.Error(0)
}

func (m *mockProductRepository) UpdateProductImage(ctx context.Context, executor repositories.SQLExecutor, id int64, fileName string) error {
	args := m.Called(ctx, executor, id, fileName)
	return args.Error(0)
}

func (m *mockProductRepository) DeleteProduct(ctx context.Context, executor repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, executor, id)
	return args.Error(0)
}

func (m *mockProductRepository) UpdateStock(ctx context.Context, executor repositories.SQLExecutor, id int64, quantityChange int) (int, error) {
	args := m.Called(ctx, executor, id, quantityChange)
	r0, _ := args.Get(0).(int)
	return r0, args.Error(1)
}

func (m *mockProductRepository) SearchProducts(ctx context.Context, term string, limit int) ([]models.ProductDetail, error) {
	args := m.Called(ctx, term, limit)
	r0, _ := args.Get(0).([]models.ProductDetail)
	return r0, args.Error(1)
}

type mockCollectRepository struct{ mock.Mock }

func (m *mockCollectRepository) CreateCollect(ctx context.Context, executor repositories.SQLExecutor, collect *models.CollectInformation) (int64, error) {
	args := m.Called(ctx, executor, collect)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *mockCollectRepository) GetCollectByCollectID(ctx context.Context, collectID string) (*models.CollectInformation, error) {
	args := m.Called(ctx, collectID)
	r0, _ := args.Get(0).(*models.CollectInformation)
	return r0, args.Error(1)
}

func (m *mockCollectRepository) GetCollects(ctx context.Context, status string, accountID *int64, page, pageSize int) ([]models.CollectInformation, int, error) {
	args := m.Called(ctx, status, accountID, page, pageSize)
	r0, _ := args.Get(0).([]models.CollectInformation)
	r1, _ := args.Get(1).(int)
	return r0, r1, args.Error(2)
}

func (m *mockCollectRepository) MarkCollected(ctx context.Context, executor repositories.SQLExecutor, collectID string, at time.Time) error {
	args := m.Called(ctx, executor, collectID, at)
	return args.Error(0)
}

func (m *mockCollectRepository) DeleteCollect(ctx context.Context, executor repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, executor, id)
	return args.Error(0)
}

type mockPaymentRepository struct{ mock.Mock }

func (m *mockPaymentRepository) CreatePayment(ctx context.Context, executor repositories.SQLExecutor, payment *models.Payment) (int64, error) {
	args := m.Called(ctx, executor, payment)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *mockPaymentRepository) GetPaymentByID(ctx context.Context, id int64) (*models.Payment, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.Payment)
	return r0, args.Error(1)
}

func (m *mockPaymentRepository) GetPaymentByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	r0, _ := args.Get(0).(*models.Payment)
	return r0, args.Error(1)
}

func (m *mockPaymentRepository) GetPayments(ctx context.Context, status, email string, page, pageSize int) ([]models.Payment, int, error) {
	args := m.Called(ctx, status, email, page, pageSize)
	r0, _ := args.Get(0).([]models.Payment)
	r1, _ := args.Get(1).(int)
	return r0, r1, args.Error(2)
}

func (m *mockPaymentRepository) UpdatePaymentStatus(ctx context.Context, executor repositories.SQLExecutor, id int64, status string) error {
	args := m.Called(ctx, executor, id, status)
	return args.Error(0)
}

func (m *mockPaymentRepository) UpdatePaymentStatusByPaymentID(ctx context.Context, executor repositories.SQLExecutor, paymentID, status string) error {
	args := m.Called(ctx, executor, paymentID, status)
	return args.Error(0)
}

func (m *mockPaymentRepository) DeletePayment(ctx context.Context, executor repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, executor, id)
	return args.Error(0)
}

type mockRefundRepository struct{ mock.Mock }

func (m *mockRefundRepository) CreateRefund(ctx context.Context, executor repositories.SQLExecutor, refund *models.Refund) (int64, error) {
	args := m.Called(ctx, executor, refund)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *mockRefundRepository) GetRefundByID(ctx context.Context, id int64) (*models.Refund, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.Refund)
	return r0, args.Error(1)
}

func (m *mockRefundRepository) GetRefunds(ctx context.Context, status string, page, pageSize int) ([]models.Refund, int, error) {
	args := m.Called(ctx, status, page, pageSize)
	r0, _ := args.Get(0).([]models.Refund)
	r1, _ := args.Get(1).(int)
	return r0, r1, args.Error(2)
}

func (m *mockRefundRepository) UpdateRefundStatus(ctx context.Context, executor repositories.SQLExecutor, id int64, status string) error {
	args := m.Called(ctx, executor, id, status)
	return args.Error(0)
}

func (m *mockRefundRepository) DeleteRefund(ctx context.Context, executor repositories.SQLExecutor, id int64) error {
	args := m.Called(ctx, executor, id)
	return args.Error(0)
}

type mockStaffRepository struct{ mock.Mock }

func (m *mockStaffRepository) CreateStaffAccount(ctx context.Context, executor repositories.SQLExecutor, staff *models.StaffAccount) (int64, error) {
	args := m.Called(ctx, executor, staff)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *mockStaffRepository) GetStaffAccountByID(ctx context.Context, id int64) (*models.StaffAccount, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*models.StaffAccount)
	return r0, args.Error(1)
}

func (m *mockStaffRepository) GetStaffAccountByLogin(ctx context.Context, login string) (*models.StaffAccount, error) {
	args := m.Called(ctx, login)
	r0, _ := args.Get(0).(*models.StaffAccount)
	return r0, args.Error(1)
}

func (m *mockStaffRepository) GetStaffAccounts(ctx context.Context, page, pageSize int, searchTerm, role, status string) ([]models.StaffAccount, int, error) {
	args := m.Called(ctx, page, pageSize, searchTerm, role, status)
	r0, _ := args.Get(0).([]models.StaffAccount)
	r1, _ := args.Get(1).(int)
	return r0, r1, args.Error(2)
}

func (m *mockStaffRepository) UpdateStaffAccount(ctx context.Context, executor repositories.SQLExecutor, staff *models.StaffAccount) error {
	args := m.Called(ctx, executor, staff)
	return args.Error(0)
}

func (m *mockStaffRepository) UpdateStaffPassword(ctx context.Context, executor repositories.SQLExecutor, id int64, passwordHash string) error {
	args := m.Called(ctx, executor, id, passwordHash)
	return args.Error(0)
}

func (m *mockStaffRepository) UpdateStaffStatus(ctx context.Context, executor repositories.SQLExecutor, id int64, status string) error {
	args := m.Called(ctx, executor, id, status)
	return args.Error(0)
}

type mockPasswordResetRepository struct{ mock.Mock }

func (m *mockPasswordResetRepository) CreateReset(ctx context.Context, executor repositories.SQLExecutor, reset *models.PasswordReset) (int64, error) {
	args := m.Called(ctx, executor, reset)
	r0, _ := args.Get(0).(int64)
	return r0, args.Error(1)
}

func (m *mockPasswordResetRepository) GetActiveResets(ctx context.Context, email string, now time.Time) ([]models.PasswordReset, error) {
	args := m.Called(ctx, email, now)
	r0, _ := args.Get(0).([]models.PasswordReset)
	return r0, args.Error(1)
}

func (m *mockPasswordResetRepository) DeleteResetsByEmail(ctx context.Context, executor repositories.SQLExecutor, email string) error {
	args := m.Called(ctx, executor, email)
	return args.Error(0)
}
