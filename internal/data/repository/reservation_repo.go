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

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Reservation, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SumActivePersonsByEvent returns the seat count held by reservations
	// that count toward capacity, used to audit the capacity invariant.
	SumActivePersonsByEvent(ctx context.Context, eventID uuid.UUID) (int, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, event_id, contact_name, contact_email, contact_phone, company_name,
	number_of_persons, arrangement, pre_drink, after_party, merchandise, promotion_code, voucher_code,
	status, total_price, pricing_snapshot, created_at, updated_at`

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, event_id, contact_name, contact_email, contact_phone, company_name,
			number_of_persons, arrangement, pre_drink, after_party, merchandise, promotion_code, voucher_code,
			status, total_price, pricing_snapshot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.EventID,
		reservation.ContactName,
		reservation.ContactEmail,
		reservation.ContactPhone,
		reservation.CompanyName,
		reservation.NumberOfPersons,
		reservation.Arrangement,
		reservation.PreDrink,
		reservation.AfterParty,
		reservation.Merchandise,
		reservation.PromotionCode,
		reservation.VoucherCode,
		reservation.Status,
		reservation.TotalPrice,
		reservation.PricingSnapshot,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("event_id", reservation.EventID.String()),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.ID.String(), err)
	}

	return nil
}

func (r *reservationRepository) scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.EventID,
		&reservation.ContactName,
		&reservation.ContactEmail,
		&reservation.ContactPhone,
		&reservation.CompanyName,
		&reservation.NumberOfPersons,
		&reservation.Arrangement,
		&reservation.PreDrink,
		&reservation.AfterParty,
		&reservation.Merchandise,
		&reservation.PromotionCode,
		&reservation.VoucherCode,
		&reservation.Status,
		&reservation.TotalPrice,
		&reservation.PricingSnapshot,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := r.scanReservation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE event_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find reservations by event ID",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find reservations by event ID %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	return r.collectReservations(rows)
}

func (r *reservationRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations", zap.Error(err))
		return nil, fmt.Errorf("find reservations: %w", err)
	}
	defer rows.Close()

	return r.collectReservations(rows)
}

func (r *reservationRepository) collectReservations(rows pgx.Rows) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := r.scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

func (r *reservationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations", zap.Error(err))
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return count, nil
}

// Update never touches pricing_snapshot: the snapshot is written once at
// booking time and later price displays must keep reading the frozen figures.
func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET contact_name = $2, contact_email = $3, contact_phone = $4, company_name = $5,
		    number_of_persons = $6, arrangement = $7, pre_drink = $8, after_party = $9,
		    merchandise = $10, promotion_code = $11, voucher_code = $12, status = $13,
		    total_price = $14, updated_at = $15
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.ContactName,
		reservation.ContactEmail,
		reservation.ContactPhone,
		reservation.CompanyName,
		reservation.NumberOfPersons,
		reservation.Arrangement,
		reservation.PreDrink,
		reservation.AfterParty,
		reservation.Merchandise,
		reservation.PromotionCode,
		reservation.VoucherCode,
		reservation.Status,
		reservation.TotalPrice,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return fmt.Errorf("update reservation %s: %w", reservation.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservation.ID.String())
	}

	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("delete reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	r.log.Info("Reservation deleted", zap.String("reservation_id", id.String()))
	return nil
}

func (r *reservationRepository) SumActivePersonsByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(number_of_persons), 0)
		FROM reservations
		WHERE event_id = $1 AND status NOT IN ('cancelled', 'rejected')
	`

	var total int
	err := r.db.QueryRow(ctx, query, eventID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to sum active persons by event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return 0, fmt.Errorf("sum active persons for event %s: %w", eventID.String(), err)
	}

	return total, nil
}
