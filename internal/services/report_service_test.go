package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecohaven_backend/internal/models"
)

type mockReportRepository struct{ mock.Mock }

func (m *mockReportRepository) CountAccounts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockReportRepository) CountUpcomingEvents(ctx context.Context, from time.Time) (int, error) {
	args := m.Called(ctx, from)
	return args.Int(0), args.Error(1)
}

func (m *mockReportRepository) CountBookingsByStatus(ctx context.Context) (models.BookingStatusCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.BookingStatusCounts), args.Error(1)
}

func (m *mockReportRepository) CountCheckInsBetween(ctx context.Context, from, to time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

func (m *mockReportRepository) SumPaidRevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockReportRepository) CountPendingRefunds(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockReportRepository) CountPendingCollections(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockReportRepository) GetLowStockProducts(ctx context.Context, threshold int) ([]models.LowStockProduct, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]models.LowStockProduct), args.Error(1)
}

func TestDashboardSummaryWindows(t *testing.T) {
	repo := new(mockReportRepository)
	svc := NewReportService(repo).(*reportService)
	// Thursday 2024-05-16.
	svc.now = func() time.Time { return time.Date(2024, 5, 16, 15, 30, 0, 0, time.Local) }
	ctx := context.Background()

	dayStart := time.Date(2024, 5, 16, 0, 0, 0, 0, time.Local)
	weekStart := time.Date(2024, 5, 13, 0, 0, 0, 0, time.Local)
	monthStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	startsAt := func(want time.Time) interface{} {
		return mock.MatchedBy(func(got time.Time) bool { return got.Equal(want) })
	}

	repo.On("CountAccounts", ctx).Return(12, nil)
	repo.On("CountUpcomingEvents", ctx, startsAt(dayStart)).Return(3, nil)
	repo.On("CountBookingsByStatus", ctx).Return(models.BookingStatusCounts{Active: 5, Cancelled: 1, Attended: 2}, nil)
	repo.On("CountCheckInsBetween", ctx, startsAt(dayStart), mock.Anything).Return(2, nil)
	repo.On("SumPaidRevenueBetween", ctx, startsAt(dayStart), mock.Anything).Return(25.0, nil)
	repo.On("SumPaidRevenueBetween", ctx, startsAt(weekStart), mock.Anything).Return(60.0, nil)
	repo.On("SumPaidRevenueBetween", ctx, startsAt(monthStart), mock.Anything).Return(180.0, nil)
	repo.On("CountPendingRefunds", ctx).Return(1, nil)
	repo.On("CountPendingCollections", ctx).Return(4, nil)
	repo.On("GetLowStockProducts", ctx, models.LowStockThreshold).
		Return([]models.LowStockProduct{{ID: 11, ProductName: "Bamboo Cup", Stock: 2}}, nil)

	summary, err := svc.GetDashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, summary.AccountsCount)
	assert.Equal(t, models.RevenueSummary{Today: 25, ThisWeek: 60, ThisMonth: 180}, summary.Revenue)
	assert.Len(t, summary.LowStockProducts, 1)
	repo.AssertExpectations(t)
}
