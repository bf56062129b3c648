package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecohaven_backend/internal/mailer"
	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/internal/tickets"
	"ecohaven_backend/pkg/utils"
)

const (
	qrCodeLength   = 8
	maxCodeRetries = 5
)

// --- DTOs ---

type CreateBookingRequest struct {
	EventID  int64  `json:"event_id" binding:"required,gt=0"`
	FullName string `json:"full_name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	Tickets  int    `json:"tickets" binding:"omitempty,min=1,max=20"`
}

type BookingFilter struct {
	ListParams
	EventID *int64 `form:"event_id"`
	Status  string `form:"status" binding:"omitempty,booking_status"`
	Email   string `form:"email"`
	Search  string `form:"search"`
}

// BookingConfirmation is returned on creation. Payment is set for paid events.
type BookingConfirmation struct {
	Booking *models.Booking `json:"booking"`
	Payment *models.Payment `json:"payment,omitempty"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingConfirmation, error)
	GetBooking(ctx context.Context, principal *models.Principal, id int64) (*models.Booking, error)
	GetBookings(ctx context.Context, filter BookingFilter) (*ListResult, error)
	GetMyBookings(ctx context.Context, principal *models.Principal, params ListParams) (*ListResult, error)
	CancelBooking(ctx context.Context, principal *models.Principal, id int64) (*models.Booking, error)
	GetBookingQRCode(ctx context.Context, principal *models.Principal, id int64) ([]byte, error)
	GetBookingTicket(ctx context.Context, principal *models.Principal, id int64) ([]byte, error)
}

type bookingService struct {
	bookingRepo repositories.BookingRepository
	eventRepo   repositories.EventRepository
	checkInRepo repositories.CheckInRepository
	paymentRepo repositories.PaymentRepository
	tx          Transactor
	mail        mailer.Mailer
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	eventRepo repositories.EventRepository,
	checkInRepo repositories.CheckInRepository,
	paymentRepo repositories.PaymentRepository,
	tx Transactor,
	mail mailer.Mailer,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		checkInRepo: checkInRepo,
		paymentRepo: paymentRepo,
		tx:          tx,
		mail:        mail,
		now:         time.Now,
	}
}

// CreateBooking stores the booking together with its check-in record and,
// for paid events, an unpaid payment. A collision on the generated QR text
// retries the whole transaction.
func (s *bookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingConfirmation, error) {
	event, err := s.eventRepo.GetEventByID(ctx, req.EventID)
	if err != nil {
		return nil, mapNotFound(err, ErrEventNotFound)
	}
	today := s.now().Truncate(24 * time.Hour)
	if event.EndDate.Before(today) {
		return nil, ErrEventNotBookable
	}
	if req.Tickets == 0 {
		req.Tickets = 1
	}

	var confirmation *BookingConfirmation
	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		confirmation, err = s.createOnce(ctx, req, event)
		if repositories.DuplicateColumn(err) == "qr_code_text" || repositories.DuplicateColumn(err) == "payment_id" {
			utils.LogDebug("Generated booking code collided, retrying", map[string]interface{}{"attempt": attempt + 1})
			continue
		}
		break
	}
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrQRCodeGeneration
		}
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	utils.LogInfo("Booking created", map[string]interface{}{"booking_id": confirmation.Booking.ID, "event_id": event.ID})
	s.sendConfirmation(ctx, confirmation.Booking, event)
	return confirmation, nil
}

func (s *bookingService) createOnce(ctx context.Context, req CreateBookingRequest, event *models.Event) (*BookingConfirmation, error) {
	eventID := event.ID
	booking := &models.Booking{
		EventID:    &eventID,
		EventName:  event.Name,
		FullName:   strings.TrimSpace(req.FullName),
		Email:      utils.NormalizeEmail(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Tickets:    req.Tickets,
		LeafPoints: event.LeafPoints,
		QRCodeText: utils.ShortCode(qrCodeLength),
		Status:     models.BookingStatusActive,
	}
	confirmation := &BookingConfirmation{Booking: booking}

	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.bookingRepo.CreateBooking(ctx, exec, booking); err != nil {
			return err
		}
		checkIn := &models.CheckIn{
			AssociatedBookingID: booking.ID,
			QRCodeText:          booking.QRCodeText,
			GuestName:           booking.FullName,
			Email:               booking.Email,
			EventName:           booking.EventName,
			LeafPoints:          booking.LeafPoints,
			QRCodeStatus:        models.CheckInStatusNotChecked,
		}
		if _, err := s.checkInRepo.CreateCheckIn(ctx, exec, checkIn); err != nil {
			return err
		}
		if event.IsFree || event.Price <= 0 {
			return nil
		}
		bookingID := booking.ID
		payment := &models.Payment{
			PaymentID: "PAY-" + utils.ShortCode(qrCodeLength),
			BookingID: &bookingID,
			PayerName: booking.FullName,
			Email:     booking.Email,
			Amount:    event.Price * float64(booking.Tickets),
			Status:    models.PaymentStatusUnpaid,
		}
		if _, err := s.paymentRepo.CreatePayment(ctx, exec, payment); err != nil {
			return err
		}
		confirmation.Payment = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmation, nil
}

func (s *bookingService) sendConfirmation(ctx context.Context, booking *models.Booking, event *models.Event) {
	ticket, err := tickets.TicketPDF(booking, event)
	if err != nil {
		utils.LogWarn("Failed to render ticket", map[string]interface{}{"booking_id": booking.ID, "error": err.Error()})
	}
	msg := mailer.BookingConfirmed(booking.Email, booking.FullName, booking.EventName, booking.QRCodeText, ticket)
	if err := s.mail.Send(ctx, msg); err != nil {
		utils.LogWarn("Failed to send booking confirmation", map[string]interface{}{"booking_id": booking.ID, "error": err.Error()})
	}
}

func authorizeBooking(principal *models.Principal, booking *models.Booking) error {
	if principal.IsStaff() {
		return nil
	}
	if principal.IsAccount() && strings.EqualFold(principal.Email, booking.Email) {
		return nil
	}
	return ErrForbidden
}

func (s *bookingService) GetBooking(ctx context.Context, principal *models.Principal, id int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(ctx, nil, id)
	if err != nil {
		return nil, mapNotFound(err, ErrBookingNotFound)
	}
	if err := authorizeBooking(principal, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) GetBookings(ctx context.Context, filter BookingFilter) (*ListResult, error) {
	params := filter.ListParams.Normalize()
	bookings, total, err := s.bookingRepo.GetBookings(ctx, models.BookingFilter{
		EventID:  filter.EventID,
		Status:   filter.Status,
		Email:    utils.NormalizeEmail(filter.Email),
		Search:   strings.TrimSpace(filter.Search),
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return newListResult(bookings, total, params), nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, principal *models.Principal, params ListParams) (*ListResult, error) {
	if !principal.IsAccount() {
		return nil, ErrForbidden
	}
	return s.GetBookings(ctx, BookingFilter{ListParams: params, Email: principal.Email})
}

// CancelBooking marks the booking and its check-ins Cancelled in one
// transaction. Cancelling a cancelled booking rewrites the same values.
func (s *bookingService) CancelBooking(ctx context.Context, principal *models.Principal, id int64) (*models.Booking, error) {
	var booking *models.Booking
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		booking, err = s.bookingRepo.GetBookingByID(ctx, exec, id)
		if err != nil {
			return err
		}
		if err := authorizeBooking(principal, booking); err != nil {
			return err
		}
		if booking.Status == models.BookingStatusAttended {
			return ErrBookingAttended
		}
		if err := s.bookingRepo.UpdateBookingStatus(ctx, exec, id, models.BookingStatusCancelled); err != nil {
			return err
		}
		if _, err := s.checkInRepo.SetStatusByBookingID(ctx, exec, id, models.CheckInStatusCancelled); err != nil {
			return err
		}
		booking.Status = models.BookingStatusCancelled
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err, ErrBookingNotFound)
	}
	utils.LogInfo("Booking cancelled", map[string]interface{}{"booking_id": id})
	return booking, nil
}

func (s *bookingService) GetBookingQRCode(ctx context.Context, principal *models.Principal, id int64) ([]byte, error) {
	booking, err := s.GetBooking(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return tickets.QRCode(booking.QRCodeText)
}

func (s *bookingService) GetBookingTicket(ctx context.Context, principal *models.Principal, id int64) ([]byte, error) {
	booking, err := s.GetBooking(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, ErrBookingCancelled
	}
	var event *models.Event
	if booking.EventID != nil {
		event, err = s.eventRepo.GetEventByID(ctx, *booking.EventID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}
	return tickets.TicketPDF(booking, event)
}
