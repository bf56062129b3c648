package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
)

type checkInFixture struct {
	checkIns *mockCheckInRepository
	bookings *mockBookingRepository
	accounts *mockAccountRepository
	tx       *fakeTx
	svc      *checkInService
}

func newCheckInFixture(t *testing.T) *checkInFixture {
	f := &checkInFixture{
		checkIns: new(mockCheckInRepository),
		bookings: new(mockBookingRepository),
		accounts: new(mockAccountRepository),
		tx:       &fakeTx{},
	}
	f.svc = NewCheckInService(f.checkIns, f.bookings, f.accounts, f.tx).(*checkInService)
	f.svc.now = func() time.Time { return time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		f.checkIns.AssertExpectations(t)
		f.bookings.AssertExpectations(t)
		f.accounts.AssertExpectations(t)
	})
	return f
}

func pendingCheckIn() *models.CheckIn {
	return &models.CheckIn{
		ID:                  7,
		AssociatedBookingID: 42,
		QRCodeText:          "ABC123",
		GuestName:           "Ana Lima",
		Email:               "ana@example.com",
		LeafPoints:          10,
		QRCodeStatus:        models.CheckInStatusNotChecked,
	}
}

func TestCheckInByQRCode(t *testing.T) {
	f := newCheckInFixture(t)
	ctx := context.Background()

	f.checkIns.On("FindByQRCode", ctx, "ABC123").Return(pendingCheckIn(), nil)
	f.checkIns.On("MarkCheckedIn", ctx, mock.Anything, int64(7), f.svc.now()).Return(nil)
	f.bookings.On("UpdateBookingStatus", ctx, mock.Anything, int64(42), models.BookingStatusAttended).Return(nil)
	f.accounts.On("AddLeafPointsByEmail", ctx, mock.Anything, "ana@example.com", 10).Return(true, nil)

	checkIn, err := f.svc.CheckIn(ctx, " ABC123 ")
	require.NoError(t, err)
	assert.Equal(t, models.CheckInStatusCheckedIn, checkIn.QRCodeStatus)
	require.NotNil(t, checkIn.CheckInTime)
	assert.Equal(t, 1, f.tx.committed)
}

func TestCheckInFallsBackToGuestName(t *testing.T) {
	f := newCheckInFixture(t)
	ctx := context.Background()
	guest := pendingCheckIn()
	guest.LeafPoints = 0

	f.checkIns.On("FindByQRCode", ctx, "Ana Lima").Return(nil, repositories.ErrNotFound)
	f.checkIns.On("FindLatestByGuestName", ctx, "Ana Lima").Return(guest, nil)
	f.checkIns.On("MarkCheckedIn", ctx, mock.Anything, int64(7), mock.Anything).Return(nil)
	f.bookings.On("UpdateBookingStatus", ctx, mock.Anything, int64(42), models.BookingStatusAttended).Return(nil)

	_, err := f.svc.CheckIn(ctx, "Ana Lima")
	require.NoError(t, err)
	f.accounts.AssertNotCalled(t, "AddLeafPointsByEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckInGuestWithoutAccount(t *testing.T) {
	f := newCheckInFixture(t)
	ctx := context.Background()

	f.checkIns.On("FindByQRCode", ctx, "ABC123").Return(pendingCheckIn(), nil)
	f.checkIns.On("MarkCheckedIn", ctx, mock.Anything, int64(7), mock.Anything).Return(nil)
	f.bookings.On("UpdateBookingStatus", ctx, mock.Anything, int64(42), models.BookingStatusAttended).Return(nil)
	f.accounts.On("AddLeafPointsByEmail", ctx, mock.Anything, "ana@example.com", 10).Return(false, nil)

	_, err := f.svc.CheckIn(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, 1, f.tx.committed)
}

func TestCheckInRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		f := newCheckInFixture(t)
		f.checkIns.On("FindByQRCode", ctx, "nobody").Return(nil, repositories.ErrNotFound)
		f.checkIns.On("FindLatestByGuestName", ctx, "nobody").Return(nil, repositories.ErrNotFound)

		_, err := f.svc.CheckIn(ctx, "nobody")
		assert.ErrorIs(t, err, ErrCheckInNotFound)
	})

	t.Run("already checked in", func(t *testing.T) {
		f := newCheckInFixture(t)
		done := pendingCheckIn()
		done.QRCodeStatus = models.CheckInStatusCheckedIn
		f.checkIns.On("FindByQRCode", ctx, "ABC123").Return(done, nil)

		_, err := f.svc.CheckIn(ctx, "ABC123")
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newCheckInFixture(t)
		cancelled := pendingCheckIn()
		cancelled.QRCodeStatus = models.CheckInStatusCancelled
		f.checkIns.On("FindByQRCode", ctx, "ABC123").Return(cancelled, nil)

		_, err := f.svc.CheckIn(ctx, "ABC123")
		assert.ErrorIs(t, err, ErrCheckInCancelled)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("blank token", func(t *testing.T) {
		f := newCheckInFixture(t)
		_, err := f.svc.CheckIn(ctx, "  ")
		assert.ErrorIs(t, err, ErrCheckInNotFound)
	})
}

func TestCheckInConcurrentDuplicateLoses(t *testing.T) {
	f := newCheckInFixture(t)
	ctx := context.Background()

	f.checkIns.On("FindByQRCode", ctx, "ABC123").Return(pendingCheckIn(), nil)
	f.checkIns.On("MarkCheckedIn", ctx, mock.Anything, int64(7), mock.Anything).Return(repositories.ErrConditionFailed)

	_, err := f.svc.CheckIn(ctx, "ABC123")
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.Zero(t, f.tx.committed)
	f.bookings.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckInRollsBackOnPointsFailure(t *testing.T) {
	f := newCheckInFixture(t)
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	f.checkIns.On("FindByQRCode", ctx, "ABC123").Return(pendingCheckIn(), nil)
	f.checkIns.On("MarkCheckedIn", ctx, mock.Anything, int64(7), mock.Anything).Return(nil)
	f.bookings.On("UpdateBookingStatus", ctx, mock.Anything, int64(42), models.BookingStatusAttended).Return(nil)
	f.accounts.On("AddLeafPointsByEmail", ctx, mock.Anything, "ana@example.com", 10).Return(false, dbErr)

	_, err := f.svc.CheckIn(ctx, "ABC123")
	assert.ErrorIs(t, err, dbErr)
	assert.Zero(t, f.tx.committed)
}
