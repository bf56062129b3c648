package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecohaven_backend/internal/models"
)

// EventRepository defines the interface for event database operations.
type EventRepository interface {
	CreateEvent(ctx context.Context, executor SQLExecutor, event *models.Event) (int64, error)
	GetEventByID(ctx context.Context, id int64) (*models.Event, error)
	GetEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	UpdateEvent(ctx context.Context, executor SQLExecutor, event *models.Event) error
	UpdateEventImage(ctx context.Context, executor SQLExecutor, id int64, fileName string) error
	DeleteEvent(ctx context.Context, executor SQLExecutor, id int64) error
	SearchEvents(ctx context.Context, term string, limit int) ([]models.Event, error)
}

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, name, description, category, location, start_date, end_date, start_time, end_time,
	price, is_free, leaf_points, image, created_at, updated_at`

func scanEvent(row scanner, extra ...interface{}) (*models.Event, error) {
	var e models.Event
	var image sql.NullString
	dest := []interface{}{
		&e.ID, &e.Name, &e.Description, &e.Category, &e.Location, &e.StartDate, &e.EndDate, &e.StartTime, &e.EndTime,
		&e.Price, &e.IsFree, &e.LeafPoints, &image, &e.CreatedAt, &e.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if image.Valid {
		e.Image = &image.String
	}
	return &e, nil
}

func (r *eventRepository) CreateEvent(ctx context.Context, executor SQLExecutor, event *models.Event) (int64, error) {
	query := `INSERT INTO events (name, description, category, location, start_date, end_date, start_time, end_time,
	              price, is_free, leaf_points, image, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id`
	currentTime := time.Now()
	event.CreatedAt, event.UpdatedAt = currentTime, currentTime
	err := executor.QueryRowContext(ctx, query,
		event.Name, event.Description, event.Category, event.Location, event.StartDate, event.EndDate,
		event.StartTime, event.EndTime, event.Price, event.IsFree, event.LeafPoints, event.Image,
		event.CreatedAt, event.UpdatedAt,
	).Scan(&event.ID)
	if err != nil {
		return 0, translateError(err, "creating event")
	}
	return event.ID, nil
}

func (r *eventRepository) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	event, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("getting event by ID %d", id))
	}
	return event, nil
}

// GetEvents lists events soonest first.
func (r *eventRepository) GetEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	events := []models.Event{}
	totalCount := 0

	var qb queryBuilder
	if filter.Category != "" {
		qb.add("LOWER(category) = LOWER(?)", filter.Category)
	}
	if filter.Search != "" {
		qb.add("(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?)", likePattern(filter.Search))
	}
	if filter.Upcoming {
		qb.add("end_date >= ?", time.Now().Truncate(24*time.Hour))
	}
	query := `SELECT ` + eventColumns + `, COUNT(*) OVER() AS total_count FROM events` +
		qb.where() + ` ORDER BY start_date ASC, start_time ASC, id ASC` + qb.paginate(filter.Page, filter.PageSize)

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, 0, translateError(err, "querying events")
	}
	defer rows.Close()

	for rows.Next() {
		event, err := scanEvent(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning event: %v", ErrDatabaseError, err)
		}
		events = append(events, *event)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating event rows: %v", ErrDatabaseError, err)
	}
	return events, totalCount, nil
}

func (r *eventRepository) UpdateEvent(ctx context.Context, executor SQLExecutor, event *models.Event) error {
	query := `UPDATE events SET name = $1, description = $2, category = $3, location = $4, start_date = $5, end_date = $6,
	              start_time = $7, end_time = $8, price = $9, is_free = $10, leaf_points = $11, updated_at = $12
	          WHERE id = $13`
	event.UpdatedAt = time.Now()
	result, err := executor.ExecContext(ctx, query,
		event.Name, event.Description, event.Category, event.Location, event.StartDate, event.EndDate,
		event.StartTime, event.EndTime, event.Price, event.IsFree, event.LeafPoints, event.UpdatedAt, event.ID,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating event ID %d", event.ID))
	}
	return requireAffected(result, "updating event")
}

func (r *eventRepository) UpdateEventImage(ctx context.Context, executor SQLExecutor, id int64, fileName string) error {
	result, err := executor.ExecContext(ctx, `UPDATE events SET image = $1, updated_at = $2 WHERE id = $3`, fileName, time.Now(), id)
	if err != nil {
		return translateError(err, fmt.Sprintf("updating image for event ID %d", id))
	}
	return requireAffected(result, "updating event image")
}

func (r *eventRepository) DeleteEvent(ctx context.Context, executor SQLExecutor, id int64) error {
	result, err := executor.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("deleting event ID %d", id))
	}
	return requireAffected(result, "deleting event")
}

func (r *eventRepository) SearchEvents(ctx context.Context, term string, limit int) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
	          WHERE name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1
	          ORDER BY start_date DESC, id DESC
	          LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, likePattern(term), limit)
	if err != nil {
		return nil, translateError(err, "searching events")
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning event: %v", ErrDatabaseError, err)
		}
		events = append(events, *event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating event rows: %v", ErrDatabaseError, err)
	}
	return events, nil
}
