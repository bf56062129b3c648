package services

import (
	"context"
	"time"

	"github.com/jinzhu/now"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
)

type ReportService interface {
	GetDashboardSummary(ctx context.Context) (*models.DashboardSummary, error)
}

type reportService struct {
	repo    repositories.ReportRepository
	windows *now.Config
	now     func() time.Time
}

func NewReportService(repo repositories.ReportRepository) ReportService {
	return &reportService{
		repo:    repo,
		windows: &now.Config{WeekStartDay: time.Monday, TimeLocation: time.Local},
		now:     time.Now,
	}
}

func (s *reportService) GetDashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	t := s.windows.With(s.now())
	dayStart, dayEnd := t.BeginningOfDay(), t.EndOfDay()

	var (
		summary models.DashboardSummary
		err     error
	)
	if summary.AccountsCount, err = s.repo.CountAccounts(ctx); err != nil {
		return nil, err
	}
	if summary.UpcomingEventsCount, err = s.repo.CountUpcomingEvents(ctx, dayStart); err != nil {
		return nil, err
	}
	if summary.Bookings, err = s.repo.CountBookingsByStatus(ctx); err != nil {
		return nil, err
	}
	if summary.CheckInsToday, err = s.repo.CountCheckInsBetween(ctx, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if summary.Revenue.Today, err = s.repo.SumPaidRevenueBetween(ctx, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if summary.Revenue.ThisWeek, err = s.repo.SumPaidRevenueBetween(ctx, t.BeginningOfWeek(), t.EndOfWeek()); err != nil {
		return nil, err
	}
	if summary.Revenue.ThisMonth, err = s.repo.SumPaidRevenueBetween(ctx, t.BeginningOfMonth(), t.EndOfMonth()); err != nil {
		return nil, err
	}
	if summary.PendingRefunds, err = s.repo.CountPendingRefunds(ctx); err != nil {
		return nil, err
	}
	if summary.PendingCollections, err = s.repo.CountPendingCollections(ctx); err != nil {
		return nil, err
	}
	if summary.LowStockProducts, err = s.repo.GetLowStockProducts(ctx, models.LowStockThreshold); err != nil {
		return nil, err
	}
	return &summary, nil
}
