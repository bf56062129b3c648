package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/internal/storage"
)

func TestDeleteEventOrphansBookings(t *testing.T) {
	events, bookings, checkIns := new(mockEventRepository), new(mockBookingRepository), new(mockCheckInRepository)
	tx, files := &fakeTx{}, &fakeFiles{}
	svc := NewEventService(events, bookings, checkIns, nil, tx, files)
	ctx := context.Background()
	image := "cover.png"

	events.On("GetEventByID", ctx, int64(5)).Return(&models.Event{ID: 5, Image: &image}, nil)
	bookings.On("OrphanEventBookings", ctx, mock.Anything, int64(5)).Return([]int64{1, 2, 3}, nil)
	checkIns.On("CancelPendingByBookingIDs", ctx, mock.Anything, []int64{1, 2, 3}).Return(int64(2), nil)
	events.On("DeleteEvent", ctx, mock.Anything, int64(5)).Return(nil)

	result, err := svc.DeleteEvent(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, result.OrphanedBookings)
	assert.Equal(t, int64(2), result.CancelledCheckIns)
	assert.Equal(t, 1, tx.committed)
	assert.Equal(t, []string{storage.EventImages + "/cover.png"}, files.removed)
	mock.AssertExpectationsForObjects(t, events, bookings, checkIns)
}

func TestDeleteEventNotFound(t *testing.T) {
	events := new(mockEventRepository)
	tx := &fakeTx{}
	svc := NewEventService(events, new(mockBookingRepository), new(mockCheckInRepository), nil, tx, &fakeFiles{})

	events.On("GetEventByID", mock.Anything, int64(5)).Return(nil, repositories.ErrNotFound)

	_, err := svc.DeleteEvent(context.Background(), 5)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Zero(t, tx.calls)
}

func TestEventRequestDates(t *testing.T) {
	svc := NewEventService(new(mockEventRepository), nil, nil, nil, &fakeTx{}, &fakeFiles{})

	_, err := svc.CreateEvent(context.Background(), EventRequest{Name: "Tree planting", StartDate: "04/05/2024", EndDate: "2024-05-04"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.CreateEvent(context.Background(), EventRequest{Name: "Tree planting", StartDate: "2024-05-04", EndDate: "2024-05-03"})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestEventRequestFreeFlag(t *testing.T) {
	var event models.Event
	require.NoError(t, EventRequest{Name: "Swap", StartDate: "2024-05-04", EndDate: "2024-05-04"}.apply(&event))
	assert.True(t, event.IsFree)

	paid := false
	require.NoError(t, EventRequest{Name: "Workshop", StartDate: "2024-05-04", EndDate: "2024-05-05", Price: 10, IsFree: &paid}.apply(&event))
	assert.False(t, event.IsFree)
	assert.Equal(t, 10.0, event.Price)
}
