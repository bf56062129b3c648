package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/pkg/utils"
)

type CheckInRequest struct {
	Data string `json:"data" binding:"required"`
}

type CheckInFilter struct {
	ListParams
	Status string `form:"status" binding:"omitempty,checkin_status"`
}

type CheckInService interface {
	CheckIn(ctx context.Context, token string) (*models.CheckIn, error)
	GetCheckIns(ctx context.Context, filter CheckInFilter) (*ListResult, error)
	GetCheckInByBookingID(ctx context.Context, bookingID int64) (*models.CheckIn, error)
}

type checkInService struct {
	checkInRepo repositories.CheckInRepository
	bookingRepo repositories.BookingRepository
	accountRepo repositories.AccountRepository
	tx          Transactor
	now         func() time.Time
}

func NewCheckInService(
	checkInRepo repositories.CheckInRepository,
	bookingRepo repositories.BookingRepository,
	accountRepo repositories.AccountRepository,
	tx Transactor,
) CheckInService {
	return &checkInService{checkInRepo: checkInRepo, bookingRepo: bookingRepo, accountRepo: accountRepo, tx: tx, now: time.Now}
}

// lookup resolves a scanned token: an exact QR text match wins, otherwise
// the most recent check-in for that guest name.
func (s *checkInService) lookup(ctx context.Context, token string) (*models.CheckIn, error) {
	checkIn, err := s.checkInRepo.FindByQRCode(ctx, token)
	if err == nil {
		return checkIn, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	checkIn, err = s.checkInRepo.FindLatestByGuestName(ctx, token)
	if err != nil {
		return nil, mapNotFound(err, ErrCheckInNotFound)
	}
	return checkIn, nil
}

// CheckIn marks the guest as arrived, the booking as attended and credits
// the event's leaf points to the matching account, all or nothing.
func (s *checkInService) CheckIn(ctx context.Context, token string) (*models.CheckIn, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrCheckInNotFound
	}
	checkIn, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	switch checkIn.QRCodeStatus {
	case models.CheckInStatusCheckedIn:
		return nil, ErrAlreadyCheckedIn
	case models.CheckInStatusCancelled:
		return nil, ErrCheckInCancelled
	}

	at := s.now()
	credited := false
	err = s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.checkInRepo.MarkCheckedIn(ctx, exec, checkIn.ID, at); err != nil {
			if errors.Is(err, repositories.ErrConditionFailed) {
				return ErrAlreadyCheckedIn
			}
			return err
		}
		if err := s.bookingRepo.UpdateBookingStatus(ctx, exec, checkIn.AssociatedBookingID, models.BookingStatusAttended); err != nil {
			return err
		}
		if checkIn.LeafPoints <= 0 {
			return nil
		}
		ok, err := s.accountRepo.AddLeafPointsByEmail(ctx, exec, checkIn.Email, checkIn.LeafPoints)
		if err != nil {
			return err
		}
		credited = ok
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err, ErrBookingNotFound)
	}

	checkIn.QRCodeStatus = models.CheckInStatusCheckedIn
	checkIn.CheckInTime = &at
	utils.LogInfo("Guest checked in", map[string]interface{}{
		"check_in_id": checkIn.ID, "booking_id": checkIn.AssociatedBookingID, "points_credited": credited,
	})
	return checkIn, nil
}

func (s *checkInService) GetCheckIns(ctx context.Context, filter CheckInFilter) (*ListResult, error) {
	params := filter.ListParams.Normalize()
	checkIns, total, err := s.checkInRepo.GetCheckIns(ctx, filter.Status, params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}
	return newListResult(checkIns, total, params), nil
}

func (s *checkInService) GetCheckInByBookingID(ctx context.Context, bookingID int64) (*models.CheckIn, error) {
	checkIn, err := s.checkInRepo.GetCheckInByBookingID(ctx, bookingID)
	if err != nil {
		return nil, mapNotFound(err, ErrCheckInNotFound)
	}
	return checkIn, nil
}
