package repository

import (
	"context"
	"fmt"
	"time"

	"theater-booking/internal/data/entity"
	"theater-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ReserveCapacity atomically subtracts persons from remaining_capacity.
	// Returns false when the event does not have enough seats left; the
	// conditional update is what serializes concurrent bookings on the row.
	ReserveCapacity(ctx context.Context, id uuid.UUID, persons int) (bool, error)

	// ReleaseCapacity atomically returns persons to remaining_capacity,
	// bounded above by the event's capacity.
	ReleaseCapacity(ctx context.Context, id uuid.UUID, persons int) error

	SetWaitlistActive(ctx context.Context, id uuid.UUID, active bool) error
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, date, type, capacity, remaining_capacity, allowed_arrangements,
	custom_pricing, doors_open, starts_at, ends_at, is_active, waitlist_active, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, date, type, capacity, remaining_capacity, allowed_arrangements,
			custom_pricing, doors_open, starts_at, ends_at, is_active, waitlist_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.Date,
		event.Type,
		event.Capacity,
		event.RemainingCapacity,
		event.AllowedArrangements,
		event.CustomPricing,
		event.DoorsOpen,
		event.StartsAt,
		event.EndsAt,
		event.IsActive,
		event.WaitlistActive,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
			zap.Time("date", event.Date),
		)
		return fmt.Errorf("create event %s: %w", event.ID.String(), err)
	}

	return nil
}

func (r *eventRepository) scanEvent(row pgx.Row) (*entity.Event, error) {
	var event entity.Event
	err := row.Scan(
		&event.ID,
		&event.Date,
		&event.Type,
		&event.Capacity,
		&event.RemainingCapacity,
		&event.AllowedArrangements,
		&event.CustomPricing,
		&event.DoorsOpen,
		&event.StartsAt,
		&event.EndsAt,
		&event.IsActive,
		&event.WaitlistActive,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := r.scanEvent(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return event, nil
}

func (r *eventRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE date >= $1 AND date <= $2 ORDER BY date`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to find events by date range",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("find events by date range: %w", err)
	}
	defer rows.Close()

	return r.collectEvents(rows)
}

func (r *eventRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find events", zap.Error(err))
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer rows.Close()

	return r.collectEvents(rows)
}

func (r *eventRepository) collectEvents(rows pgx.Rows) ([]*entity.Event, error) {
	var events []*entity.Event
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *eventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count events", zap.Error(err))
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET date = $2, type = $3, capacity = $4, remaining_capacity = $5,
		    allowed_arrangements = $6, custom_pricing = $7, doors_open = $8,
		    starts_at = $9, ends_at = $10, is_active = $11, waitlist_active = $12,
		    updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		event.ID,
		event.Date,
		event.Type,
		event.Capacity,
		event.RemainingCapacity,
		event.AllowedArrangements,
		event.CustomPricing,
		event.DoorsOpen,
		event.StartsAt,
		event.EndsAt,
		event.IsActive,
		event.WaitlistActive,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", event.ID.String())
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", id.String())
	}

	r.log.Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}

func (r *eventRepository) ReserveCapacity(ctx context.Context, id uuid.UUID, persons int) (bool, error) {
	query := `
		UPDATE events
		SET remaining_capacity = remaining_capacity - $2, updated_at = NOW()
		WHERE id = $1 AND remaining_capacity >= $2
	`

	result, err := r.db.Exec(ctx, query, id, persons)
	if err != nil {
		r.log.Error("Failed to reserve capacity",
			zap.Error(err),
			zap.String("event_id", id.String()),
			zap.Int("persons", persons),
		)
		return false, fmt.Errorf("reserve capacity for event %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *eventRepository) ReleaseCapacity(ctx context.Context, id uuid.UUID, persons int) error {
	query := `
		UPDATE events
		SET remaining_capacity = LEAST(capacity, remaining_capacity + $2), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, persons)
	if err != nil {
		r.log.Error("Failed to release capacity",
			zap.Error(err),
			zap.String("event_id", id.String()),
			zap.Int("persons", persons),
		)
		return fmt.Errorf("release capacity for event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", id.String())
	}

	return nil
}

func (r *eventRepository) SetWaitlistActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE events SET waitlist_active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set waitlist flag",
			zap.Error(err),
			zap.String("event_id", id.String()),
			zap.Bool("active", active),
		)
		return fmt.Errorf("set waitlist flag for event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", id.String())
	}

	return nil
}
