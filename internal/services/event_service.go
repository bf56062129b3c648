package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/internal/storage"
	"ecohaven_backend/pkg/utils"
)

const dateLayout = "2006-01-02"

type EventRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"max=100"`
	Location    string  `json:"location" binding:"max=255"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	StartTime   string  `json:"start_time" binding:"max=10"`
	EndTime     string  `json:"end_time" binding:"max=10"`
	Price       float64 `json:"price" binding:"gte=0"`
	IsFree      *bool   `json:"is_free"`
	LeafPoints  int     `json:"leaf_points" binding:"gte=0"`
}

type EventFilter struct {
	ListParams
	Category string `form:"category"`
	Search   string `form:"search"`
	Upcoming bool   `form:"upcoming"`
}

// EventDeletionResult reports how many bookings were orphaned.
type EventDeletionResult struct {
	EventID           int64 `json:"event_id"`
	OrphanedBookings  int   `json:"orphaned_bookings"`
	CancelledCheckIns int64 `json:"cancelled_check_ins"`
}

type EventService interface {
	CreateEvent(ctx context.Context, req EventRequest) (*models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	GetEvents(ctx context.Context, filter EventFilter) (*ListResult, error)
	UpdateEvent(ctx context.Context, id int64, req EventRequest) (*models.Event, error)
	UploadEventImage(ctx context.Context, id int64, fh *multipart.FileHeader) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int64) (*EventDeletionResult, error)
}

type eventService struct {
	eventRepo   repositories.EventRepository
	bookingRepo repositories.BookingRepository
	checkInRepo repositories.CheckInRepository
	db          repositories.SQLExecutor
	tx          Transactor
	files       FileStore
}

func NewEventService(
	eventRepo repositories.EventRepository,
	bookingRepo repositories.BookingRepository,
	checkInRepo repositories.CheckInRepository,
	db repositories.SQLExecutor,
	tx Transactor,
	files FileStore,
) EventService {
	return &eventService{eventRepo: eventRepo, bookingRepo: bookingRepo, checkInRepo: checkInRepo, db: db, tx: tx, files: files}
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

func (req EventRequest) apply(event *models.Event) error {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return ErrInvalidSchedule
	}

	event.Name = strings.TrimSpace(req.Name)
	event.Description = req.Description
	event.Category = strings.TrimSpace(req.Category)
	event.Location = strings.TrimSpace(req.Location)
	event.StartDate, event.EndDate = start, end
	event.StartTime, event.EndTime = req.StartTime, req.EndTime
	event.Price = req.Price
	event.LeafPoints = req.LeafPoints
	if req.IsFree != nil {
		event.IsFree = *req.IsFree
	} else {
		event.IsFree = req.Price == 0
	}
	if event.IsFree {
		event.Price = 0
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, req EventRequest) (*models.Event, error) {
	event := &models.Event{}
	if err := req.apply(event); err != nil {
		return nil, err
	}
	if _, err := s.eventRepo.CreateEvent(ctx, s.db, event); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	utils.LogInfo("Event created", map[string]interface{}{"event_id": event.ID})
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrEventNotFound)
	}
	return event, nil
}

func (s *eventService) GetEvents(ctx context.Context, filter EventFilter) (*ListResult, error) {
	params := filter.ListParams.Normalize()
	events, total, err := s.eventRepo.GetEvents(ctx, models.EventFilter{
		Category: strings.TrimSpace(filter.Category),
		Search:   strings.TrimSpace(filter.Search),
		Upcoming: filter.Upcoming,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return newListResult(events, total, params), nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int64, req EventRequest) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.apply(event); err != nil {
		return nil, err
	}
	if err := s.eventRepo.UpdateEvent(ctx, s.db, event); err != nil {
		return nil, mapNotFound(err, ErrEventNotFound)
	}
	return event, nil
}

func (s *eventService) UploadEventImage(ctx context.Context, id int64, fh *multipart.FileHeader) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := s.files.Save(storage.EventImages, fh)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.UpdateEventImage(ctx, s.db, id, name); err != nil {
		_ = s.files.Remove(storage.EventImages, name)
		return nil, mapNotFound(err, ErrEventNotFound)
	}
	if event.Image != nil {
		if err := s.files.Remove(storage.EventImages, *event.Image); err != nil {
			utils.LogWarn("Failed to remove old event image", map[string]interface{}{"event_id": id, "error": err.Error()})
		}
	}
	event.Image = &name
	return event, nil
}

// DeleteEvent orphans the event's bookings, cancels their unchecked
// check-ins and removes the event, all in one transaction. Checked-in
// rows keep their status.
func (s *eventService) DeleteEvent(ctx context.Context, id int64) (*EventDeletionResult, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &EventDeletionResult{EventID: id}
	err = s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		bookingIDs, err := s.bookingRepo.OrphanEventBookings(ctx, exec, id)
		if err != nil {
			return err
		}
		result.OrphanedBookings = len(bookingIDs)

		cancelled, err := s.checkInRepo.CancelPendingByBookingIDs(ctx, exec, bookingIDs)
		if err != nil {
			return err
		}
		result.CancelledCheckIns = cancelled

		return s.eventRepo.DeleteEvent(ctx, exec, id)
	})
	if err != nil {
		return nil, mapNotFound(err, ErrEventNotFound)
	}

	if event.Image != nil {
		if err := s.files.Remove(storage.EventImages, *event.Image); err != nil {
			utils.LogWarn("Failed to remove event image", map[string]interface{}{"event_id": id, "error": err.Error()})
		}
	}
	utils.LogInfo("Event deleted", map[string]interface{}{
		"event_id": id, "orphaned_bookings": result.OrphanedBookings, "cancelled_check_ins": result.CancelledCheckIns,
	})
	return result, nil
}
