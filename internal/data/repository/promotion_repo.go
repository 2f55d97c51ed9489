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

type PromotionRepository interface {
	Create(ctx context.Context, promo *entity.PromotionCode) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PromotionCode, error)
	FindByCode(ctx context.Context, code string) (*entity.PromotionCode, error)
	FindAll(ctx context.Context) ([]*entity.PromotionCode, error)
	Update(ctx context.Context, promo *entity.PromotionCode) error
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementUsage bumps used_count only while the usage budget allows it.
	// Returns false when max_uses is already reached; the conditional update
	// serializes concurrent redemptions of the same code.
	IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error)

	// DecrementUsage undoes an increment when a later commit step fails.
	DecrementUsage(ctx context.Context, id uuid.UUID) error
}

type promotionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPromotionRepository(db database.PgxIface, log *zap.Logger) PromotionRepository {
	return &promotionRepository{
		db:  db,
		log: log.With(zap.String("repository", "promotion")),
	}
}

const promotionColumns = `id, code, type, value, valid_from, valid_until, max_uses, used_count,
	min_booking_amount, applicable_to, is_active, created_at, updated_at`

func (r *promotionRepository) Create(ctx context.Context, promo *entity.PromotionCode) error {
	query := `
		INSERT INTO promotion_codes (id, code, type, value, valid_from, valid_until, max_uses,
			used_count, min_booking_amount, applicable_to, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		promo.ID,
		promo.Code,
		promo.Type,
		promo.Value,
		promo.ValidFrom,
		promo.ValidUntil,
		promo.MaxUses,
		promo.UsedCount,
		promo.MinBookingAmount,
		promo.ApplicableTo,
		promo.IsActive,
		promo.CreatedAt,
		promo.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create promotion code",
			zap.Error(err),
			zap.String("code", promo.Code),
		)
		return fmt.Errorf("create promotion code %s: %w", promo.Code, err)
	}

	return nil
}

func (r *promotionRepository) scanPromotion(row pgx.Row) (*entity.PromotionCode, error) {
	var promo entity.PromotionCode
	err := row.Scan(
		&promo.ID,
		&promo.Code,
		&promo.Type,
		&promo.Value,
		&promo.ValidFrom,
		&promo.ValidUntil,
		&promo.MaxUses,
		&promo.UsedCount,
		&promo.MinBookingAmount,
		&promo.ApplicableTo,
		&promo.IsActive,
		&promo.CreatedAt,
		&promo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PromotionCode, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotion_codes WHERE id = $1`

	promo, err := r.scanPromotion(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promotion code by ID",
			zap.Error(err),
			zap.String("promotion_id", id.String()),
		)
		return nil, fmt.Errorf("find promotion code by ID %s: %w", id.String(), err)
	}

	return promo, nil
}

func (r *promotionRepository) FindByCode(ctx context.Context, code string) (*entity.PromotionCode, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotion_codes WHERE LOWER(code) = LOWER($1)`

	promo, err := r.scanPromotion(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promotion code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find promotion code %s: %w", code, err)
	}

	return promo, nil
}

func (r *promotionRepository) FindAll(ctx context.Context) ([]*entity.PromotionCode, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotion_codes ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find promotion codes", zap.Error(err))
		return nil, fmt.Errorf("find promotion codes: %w", err)
	}
	defer rows.Close()

	var promos []*entity.PromotionCode
	for rows.Next() {
		promo, err := r.scanPromotion(rows)
		if err != nil {
			r.log.Error("Failed to scan promotion code row", zap.Error(err))
			return nil, fmt.Errorf("scan promotion code row: %w", err)
		}
		promos = append(promos, promo)
	}

	return promos, nil
}

func (r *promotionRepository) Update(ctx context.Context, promo *entity.PromotionCode) error {
	query := `
		UPDATE promotion_codes
		SET code = $2, type = $3, value = $4, valid_from = $5, valid_until = $6,
		    max_uses = $7, min_booking_amount = $8, applicable_to = $9, is_active = $10,
		    updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		promo.ID,
		promo.Code,
		promo.Type,
		promo.Value,
		promo.ValidFrom,
		promo.ValidUntil,
		promo.MaxUses,
		promo.MinBookingAmount,
		promo.ApplicableTo,
		promo.IsActive,
		promo.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update promotion code",
			zap.Error(err),
			zap.String("promotion_id", promo.ID.String()),
		)
		return fmt.Errorf("update promotion code %s: %w", promo.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("promotion code %s not found", promo.ID.String())
	}

	return nil
}

func (r *promotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM promotion_codes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete promotion code",
			zap.Error(err),
			zap.String("promotion_id", id.String()),
		)
		return fmt.Errorf("delete promotion code %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("promotion code %s not found", id.String())
	}

	return nil
}

func (r *promotionRepository) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE promotion_codes
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1 AND (max_uses = 0 OR used_count < max_uses)
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to increment promotion usage",
			zap.Error(err),
			zap.String("promotion_id", id.String()),
		)
		return false, fmt.Errorf("increment usage for promotion %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *promotionRepository) DecrementUsage(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE promotion_codes
		SET used_count = GREATEST(0, used_count - 1), updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to decrement promotion usage",
			zap.Error(err),
			zap.String("promotion_id", id.String()),
		)
		return fmt.Errorf("decrement usage for promotion %s: %w", id.String(), err)
	}

	return nil
}
