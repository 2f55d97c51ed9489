package repository

import (
	"context"
	"fmt"

	"theater-booking/internal/data/entity"
	"theater-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WaitlistRepository interface {
	Create(ctx context.Context, entry *entity.WaitlistEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WaitlistEntry, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.WaitlistEntry, error)
	CountPendingByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.WaitlistStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type waitlistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWaitlistRepository(db database.PgxIface, log *zap.Logger) WaitlistRepository {
	return &waitlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "waitlist")),
	}
}

const waitlistColumns = `id, event_id, contact_name, contact_email, contact_phone,
	number_of_persons, status, created_at, updated_at`

func (r *waitlistRepository) Create(ctx context.Context, entry *entity.WaitlistEntry) error {
	query := `
		INSERT INTO waitlist_entries (id, event_id, contact_name, contact_email, contact_phone,
			number_of_persons, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.EventID,
		entry.ContactName,
		entry.ContactEmail,
		entry.ContactPhone,
		entry.NumberOfPersons,
		entry.Status,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create waitlist entry",
			zap.Error(err),
			zap.String("event_id", entry.EventID.String()),
		)
		return fmt.Errorf("create waitlist entry %s: %w", entry.ID.String(), err)
	}

	return nil
}

func (r *waitlistRepository) scanEntry(row pgx.Row) (*entity.WaitlistEntry, error) {
	var entry entity.WaitlistEntry
	err := row.Scan(
		&entry.ID,
		&entry.EventID,
		&entry.ContactName,
		&entry.ContactEmail,
		&entry.ContactPhone,
		&entry.NumberOfPersons,
		&entry.Status,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *waitlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries WHERE id = $1`

	entry, err := r.scanEntry(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find waitlist entry by ID",
			zap.Error(err),
			zap.String("entry_id", id.String()),
		)
		return nil, fmt.Errorf("find waitlist entry by ID %s: %w", id.String(), err)
	}

	return entry, nil
}

func (r *waitlistRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries WHERE event_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find waitlist entries by event ID",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find waitlist entries by event ID %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.WaitlistEntry
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			r.log.Error("Failed to scan waitlist entry row", zap.Error(err))
			return nil, fmt.Errorf("scan waitlist entry row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *waitlistRepository) CountPendingByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM waitlist_entries WHERE event_id = $1 AND status = 'pending'`

	var count int64
	err := r.db.QueryRow(ctx, query, eventID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count pending waitlist entries",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return 0, fmt.Errorf("count pending waitlist entries for event %s: %w", eventID.String(), err)
	}

	return count, nil
}

func (r *waitlistRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.WaitlistStatus) error {
	query := `UPDATE waitlist_entries SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update waitlist entry status",
			zap.Error(err),
			zap.String("entry_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update waitlist entry %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("waitlist entry %s not found", id.String())
	}

	return nil
}

func (r *waitlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM waitlist_entries WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete waitlist entry",
			zap.Error(err),
			zap.String("entry_id", id.String()),
		)
		return fmt.Errorf("delete waitlist entry %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("waitlist entry %s not found", id.String())
	}

	return nil
}
