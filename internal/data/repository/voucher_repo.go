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

type VoucherRepository interface {
	Create(ctx context.Context, voucher *entity.Voucher) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error)
	FindByCode(ctx context.Context, code string) (*entity.Voucher, error)
	FindAll(ctx context.Context) ([]*entity.Voucher, error)
	Update(ctx context.Context, voucher *entity.Voucher) error
	Delete(ctx context.Context, id uuid.UUID) error
	CodeExists(ctx context.Context, code string) (bool, error)

	// DecrementValue atomically subtracts amount from a gift card's balance
	// and flips status to used when the balance hits zero. Returns false when
	// the balance is insufficient, which also guards double-spend under
	// concurrent redemptions of the same code.
	DecrementValue(ctx context.Context, id uuid.UUID, amount float64) (bool, error)

	// RestoreValue compensates a decrement when a later commit step fails.
	RestoreValue(ctx context.Context, id uuid.UUID, amount float64) error

	AppendUsage(ctx context.Context, usage *entity.VoucherUsage) error
	FindUsageByVoucherID(ctx context.Context, voucherID uuid.UUID) ([]*entity.VoucherUsage, error)
}

type voucherRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVoucherRepository(db database.PgxIface, log *zap.Logger) VoucherRepository {
	return &voucherRepository{
		db:  db,
		log: log.With(zap.String("repository", "voucher")),
	}
}

const voucherColumns = `id, code, type, value, original_value, discount_type, valid_from, valid_until,
	is_active, status, created_by, notes, created_at, updated_at`

func (r *voucherRepository) Create(ctx context.Context, voucher *entity.Voucher) error {
	query := `
		INSERT INTO vouchers (id, code, type, value, original_value, discount_type, valid_from,
			valid_until, is_active, status, created_by, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		voucher.ID,
		voucher.Code,
		voucher.Type,
		voucher.Value,
		voucher.OriginalValue,
		voucher.DiscountType,
		voucher.ValidFrom,
		voucher.ValidUntil,
		voucher.IsActive,
		voucher.Status,
		voucher.CreatedBy,
		voucher.Notes,
		voucher.CreatedAt,
		voucher.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create voucher",
			zap.Error(err),
			zap.String("code", voucher.Code),
		)
		return fmt.Errorf("create voucher %s: %w", voucher.Code, err)
	}

	return nil
}

func (r *voucherRepository) scanVoucher(row pgx.Row) (*entity.Voucher, error) {
	var voucher entity.Voucher
	err := row.Scan(
		&voucher.ID,
		&voucher.Code,
		&voucher.Type,
		&voucher.Value,
		&voucher.OriginalValue,
		&voucher.DiscountType,
		&voucher.ValidFrom,
		&voucher.ValidUntil,
		&voucher.IsActive,
		&voucher.Status,
		&voucher.CreatedBy,
		&voucher.Notes,
		&voucher.CreatedAt,
		&voucher.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1`

	voucher, err := r.scanVoucher(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find voucher by ID",
			zap.Error(err),
			zap.String("voucher_id", id.String()),
		)
		return nil, fmt.Errorf("find voucher by ID %s: %w", id.String(), err)
	}

	return voucher, nil
}

func (r *voucherRepository) FindByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE LOWER(code) = LOWER($1)`

	voucher, err := r.scanVoucher(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find voucher by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find voucher %s: %w", code, err)
	}

	return voucher, nil
}

func (r *voucherRepository) FindAll(ctx context.Context) ([]*entity.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find vouchers", zap.Error(err))
		return nil, fmt.Errorf("find vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []*entity.Voucher
	for rows.Next() {
		voucher, err := r.scanVoucher(rows)
		if err != nil {
			r.log.Error("Failed to scan voucher row", zap.Error(err))
			return nil, fmt.Errorf("scan voucher row: %w", err)
		}
		vouchers = append(vouchers, voucher)
	}

	return vouchers, nil
}

func (r *voucherRepository) Update(ctx context.Context, voucher *entity.Voucher) error {
	query := `
		UPDATE vouchers
		SET type = $2, value = $3, original_value = $4, discount_type = $5, valid_from = $6,
		    valid_until = $7, is_active = $8, status = $9, notes = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		voucher.ID,
		voucher.Type,
		voucher.Value,
		voucher.OriginalValue,
		voucher.DiscountType,
		voucher.ValidFrom,
		voucher.ValidUntil,
		voucher.IsActive,
		voucher.Status,
		voucher.Notes,
		voucher.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update voucher",
			zap.Error(err),
			zap.String("voucher_id", voucher.ID.String()),
		)
		return fmt.Errorf("update voucher %s: %w", voucher.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("voucher %s not found", voucher.ID.String())
	}

	return nil
}

func (r *voucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM vouchers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete voucher",
			zap.Error(err),
			zap.String("voucher_id", id.String()),
		)
		return fmt.Errorf("delete voucher %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("voucher %s not found", id.String())
	}

	return nil
}

func (r *voucherRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM vouchers WHERE LOWER(code) = LOWER($1))`, code,
	).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check voucher code existence",
			zap.Error(err),
			zap.String("code", code),
		)
		return false, fmt.Errorf("check voucher code %s: %w", code, err)
	}

	return exists, nil
}

func (r *voucherRepository) DecrementValue(ctx context.Context, id uuid.UUID, amount float64) (bool, error) {
	query := `
		UPDATE vouchers
		SET value = value - $2,
		    status = CASE WHEN value - $2 <= 0 THEN 'used' ELSE status END,
		    updated_at = NOW()
		WHERE id = $1 AND type = 'gift_card' AND value >= $2
	`

	result, err := r.db.Exec(ctx, query, id, amount)
	if err != nil {
		r.log.Error("Failed to decrement voucher value",
			zap.Error(err),
			zap.String("voucher_id", id.String()),
			zap.Float64("amount", amount),
		)
		return false, fmt.Errorf("decrement voucher %s value: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *voucherRepository) RestoreValue(ctx context.Context, id uuid.UUID, amount float64) error {
	query := `
		UPDATE vouchers
		SET value = LEAST(original_value, value + $2), status = 'active', updated_at = NOW()
		WHERE id = $1 AND type = 'gift_card'
	`

	_, err := r.db.Exec(ctx, query, id, amount)
	if err != nil {
		r.log.Error("Failed to restore voucher value",
			zap.Error(err),
			zap.String("voucher_id", id.String()),
			zap.Float64("amount", amount),
		)
		return fmt.Errorf("restore voucher %s value: %w", id.String(), err)
	}

	return nil
}

func (r *voucherRepository) AppendUsage(ctx context.Context, usage *entity.VoucherUsage) error {
	query := `
		INSERT INTO voucher_usages (id, voucher_id, reservation_id, used_at, amount_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		usage.ID,
		usage.VoucherID,
		usage.ReservationID,
		usage.UsedAt,
		usage.AmountUsed,
		usage.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to append voucher usage",
			zap.Error(err),
			zap.String("voucher_id", usage.VoucherID.String()),
			zap.String("reservation_id", usage.ReservationID.String()),
		)
		return fmt.Errorf("append usage for voucher %s: %w", usage.VoucherID.String(), err)
	}

	return nil
}

func (r *voucherRepository) FindUsageByVoucherID(ctx context.Context, voucherID uuid.UUID) ([]*entity.VoucherUsage, error) {
	query := `
		SELECT id, voucher_id, reservation_id, used_at, amount_used, created_at
		FROM voucher_usages
		WHERE voucher_id = $1
		ORDER BY used_at
	`

	rows, err := r.db.Query(ctx, query, voucherID)
	if err != nil {
		r.log.Error("Failed to find voucher usage",
			zap.Error(err),
			zap.String("voucher_id", voucherID.String()),
		)
		return nil, fmt.Errorf("find usage for voucher %s: %w", voucherID.String(), err)
	}
	defer rows.Close()

	var usages []*entity.VoucherUsage
	for rows.Next() {
		var usage entity.VoucherUsage
		err := rows.Scan(
			&usage.ID,
			&usage.VoucherID,
			&usage.ReservationID,
			&usage.UsedAt,
			&usage.AmountUsed,
			&usage.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan voucher usage row", zap.Error(err))
			return nil, fmt.Errorf("scan voucher usage row: %w", err)
		}
		usages = append(usages, &usage)
	}

	return usages, nil
}
