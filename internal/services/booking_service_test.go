package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
)

type bookingFixture struct {
	bookings *mockBookingRepository
	events   *mockEventRepository
	checkIns *mockCheckInRepository
	payments *mockPaymentRepository
	tx       *fakeTx
	mail     *fakeMailer
	svc      *bookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	f := &bookingFixture{
		bookings: new(mockBookingRepository),
		events:   new(mockEventRepository),
		checkIns: new(mockCheckInRepository),
		payments: new(mockPaymentRepository),
		tx:       &fakeTx{},
		mail:     &fakeMailer{},
	}
	f.svc = NewBookingService(f.bookings, f.events, f.checkIns, f.payments, f.tx, f.mail).(*bookingService)
	f.svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		f.bookings.AssertExpectations(t)
		f.events.AssertExpectations(t)
		f.checkIns.AssertExpectations(t)
		f.payments.AssertExpectations(t)
	})
	return f
}

var (
	testOwner = &models.Principal{ID: 3, Kind: "account", Email: "ana@example.com"}
	testStaff = &models.Principal{ID: 1, Kind: "staff", Role: models.StaffRoleStaff}
)

func activeBooking() *models.Booking {
	eventID := int64(5)
	return &models.Booking{ID: 42, EventID: &eventID, EventName: "Beach Cleanup", FullName: "Ana Lima",
		Email: "ana@example.com", Tickets: 1, QRCodeText: "ABC123", Status: models.BookingStatusActive}
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.bookings.On("GetBookingByID", ctx, mock.Anything, int64(42)).Return(activeBooking(), nil)
	f.bookings.On("UpdateBookingStatus", ctx, mock.Anything, int64(42), models.BookingStatusCancelled).Return(nil)
	f.checkIns.On("SetStatusByBookingID", ctx, mock.Anything, int64(42), models.CheckInStatusCancelled).Return(int64(1), nil)

	booking, err := f.svc.CancelBooking(ctx, testOwner, 42)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, booking.Status)
	assert.Equal(t, 1, f.tx.committed)
}

func TestCancelBookingIsIdempotent(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	cancelled := activeBooking()
	cancelled.Status = models.BookingStatusCancelled

	f.bookings.On("GetBookingByID", ctx, mock.Anything, int64(42)).Return(cancelled, nil)
	f.bookings.On("UpdateBookingStatus", ctx, mock.Anything, int64(42), models.BookingStatusCancelled).Return(nil)
	f.checkIns.On("SetStatusByBookingID", ctx, mock.Anything, int64(42), models.CheckInStatusCancelled).Return(int64(1), nil)

	booking, err := f.svc.CancelBooking(ctx, testStaff, 42)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, booking.Status)
}

func TestCancelBookingRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		f := newBookingFixture(t)
		f.bookings.On("GetBookingByID", ctx, mock.Anything, int64(42)).Return(nil, repositories.ErrNotFound)

		_, err := f.svc.CancelBooking(ctx, testOwner, 42)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("attended", func(t *testing.T) {
		f := newBookingFixture(t)
		attended := activeBooking()
		attended.Status = models.BookingStatusAttended
		f.bookings.On("GetBookingByID", ctx, mock.Anything, int64(42)).Return(attended, nil)

		_, err := f.svc.CancelBooking(ctx, testStaff, 42)
		assert.ErrorIs(t, err, ErrBookingAttended)
		assert.Zero(t, f.tx.committed)
	})

	t.Run("other account", func(t *testing.T) {
		f := newBookingFixture(t)
		f.bookings.On("GetBookingByID", ctx, mock.Anything, int64(42)).Return(activeBooking(), nil)

		other := &models.Principal{ID: 9, Kind: "account", Email: "bo@example.com"}
		_, err := f.svc.CancelBooking(ctx, other, 42)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestCreateBookingForPaidEvent(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	event := &models.Event{ID: 5, Name: "Beach Cleanup", Price: 12.5, LeafPoints: 20,
		StartDate: time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)}

	f.events.On("GetEventByID", ctx, int64(5)).Return(event, nil)
	f.bookings.On("CreateBooking", ctx, mock.Anything, mock.AnythingOfType("*models.Booking")).
		Run(func(args mock.Arguments) { args.Get(2).(*models.Booking).ID = 42 }).
		Return(int64(42), nil)
	f.checkIns.On("CreateCheckIn", ctx, mock.Anything, mock.MatchedBy(func(c *models.CheckIn) bool {
		return c.AssociatedBookingID == 42 && c.LeafPoints == 20 && c.QRCodeStatus == models.CheckInStatusNotChecked
	})).Return(int64(1), nil)
	f.payments.On("CreatePayment", ctx, mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.Amount == 25 && p.Status == models.PaymentStatusUnpaid
	})).Return(int64(1), nil)

	confirmation, err := f.svc.CreateBooking(ctx, CreateBookingRequest{
		EventID: 5, FullName: "Ana Lima", Email: "Ana@Example.com", Tickets: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", confirmation.Booking.Email)
	assert.Len(t, confirmation.Booking.QRCodeText, qrCodeLength)
	require.NotNil(t, confirmation.Payment)
	require.Len(t, f.mail.sent, 1)
	assert.Len(t, f.mail.sent[0].Attachments, 1)
}

func TestCreateBookingForEndedEvent(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	event := &models.Event{ID: 5, IsFree: true, EndDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)}
	f.events.On("GetEventByID", ctx, int64(5)).Return(event, nil)

	_, err := f.svc.CreateBooking(ctx, CreateBookingRequest{EventID: 5, FullName: "Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrEventNotBookable)
	assert.Zero(t, f.tx.calls)
}
