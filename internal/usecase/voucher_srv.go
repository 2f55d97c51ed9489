package usecase

import (
	"context"
	"fmt"
	"time"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/dto/request"
	"theater-booking/internal/dto/response"
	"theater-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxCodeAttempts bounds the collision retry loop when generating voucher
// codes. The code space is large enough that hitting the bound means
// something is wrong with the random source, not the data.
const maxCodeAttempts = 5

type VoucherService interface {
	// ValidateForBooking checks a voucher against a booking total without
	// spending it. Gift cards discount up to their remaining balance; discount
	// vouchers apply their rate against the total.
	ValidateForBooking(ctx context.Context, code string, totalAmount float64) (*entity.DiscountResult, error)

	// RedeemCode debits a gift card balance at commit time. The conditional
	// decrement guards double-spend under concurrent redemptions; discount
	// vouchers are not consumed.
	RedeemCode(ctx context.Context, code string, amount float64) (*entity.Voucher, error)

	// RecordUsage appends the redemption record once the reservation row
	// exists.
	RecordUsage(ctx context.Context, voucherID, reservationID uuid.UUID, amount float64) error

	// RestoreBalance compensates RedeemCode when a later commit step fails.
	RestoreBalance(ctx context.Context, voucherID uuid.UUID, amount float64) error

	ValidateCode(ctx context.Context, req *request.ValidateVoucherRequest) (*entity.DiscountResult, error)
	CreateVoucher(ctx context.Context, req *request.CreateVoucherRequest) (*response.VoucherResponse, error)
	GetVouchers(ctx context.Context) ([]response.VoucherResponse, error)
	GetVoucherByID(ctx context.Context, voucherID string) (*response.VoucherResponse, error)
	GetVoucherUsage(ctx context.Context, voucherID string) ([]response.VoucherUsageResponse, error)
	UpdateVoucher(ctx context.Context, voucherID string, req *request.UpdateVoucherRequest) (*response.VoucherResponse, error)
	DeleteVoucher(ctx context.Context, voucherID string) error
	GenerateBulkVouchers(ctx context.Context, req *request.BulkGenerateVouchersRequest) ([]response.VoucherResponse, error)
	GetVoucherStats(ctx context.Context) (*response.VoucherStatsResponse, error)
}

type voucherService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVoucherService(repo *repository.Repository, log *zap.Logger) VoucherService {
	return &voucherService{
		repo: repo,
		log:  log.With(zap.String("service", "voucher")),
	}
}

func invalidVoucher(message string) *entity.DiscountResult {
	return &entity.DiscountResult{IsValid: false, ErrorMessage: message}
}

func (s *voucherService) ValidateForBooking(ctx context.Context, code string, totalAmount float64) (*entity.DiscountResult, error) {
	voucher, err := s.repo.Voucher.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("validate voucher %s: %w", code, err)
	}
	if voucher == nil {
		return invalidVoucher("invalid voucher code"), nil
	}

	if !voucher.IsActive || voucher.Status == entity.VoucherStatusUsed {
		return invalidVoucher("voucher is no longer active"), nil
	}

	now := time.Now()
	if now.Before(voucher.ValidFrom) {
		return invalidVoucher("voucher is not yet valid"), nil
	}
	if now.After(voucher.ValidUntil) {
		return invalidVoucher("voucher has expired"), nil
	}

	switch voucher.Type {
	case entity.VoucherTypeGiftCard:
		if voucher.Value <= 0 {
			return invalidVoucher("voucher has no remaining balance"), nil
		}
		return &entity.DiscountResult{
			IsValid:        true,
			DiscountAmount: min(voucher.Value, totalAmount),
			DiscountType:   entity.DiscountTypeFixed,
		}, nil

	case entity.VoucherTypeDiscount:
		var discount float64
		discountType := voucher.DiscountType
		switch discountType {
		case entity.DiscountTypePercentage:
			discount = totalAmount * voucher.Value / 100
		default:
			discountType = entity.DiscountTypeFixed
			discount = min(voucher.Value, totalAmount)
		}
		return &entity.DiscountResult{
			IsValid:        true,
			DiscountAmount: discount,
			DiscountType:   discountType,
		}, nil

	default:
		s.log.Warn("Unknown voucher type",
			zap.String("code", voucher.Code),
			zap.String("type", string(voucher.Type)),
		)
		return invalidVoucher("voucher has an unknown type"), nil
	}
}

func (s *voucherService) RedeemCode(ctx context.Context, code string, amount float64) (*entity.Voucher, error) {
	voucher, err := s.repo.Voucher.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("redeem voucher %s: %w", code, err)
	}
	if voucher == nil {
		return nil, fmt.Errorf("voucher %s not found", code)
	}

	if voucher.Type != entity.VoucherTypeGiftCard {
		// Discount vouchers carry no balance to debit.
		return voucher, nil
	}

	debited, err := s.repo.Voucher.DecrementValue(ctx, voucher.ID, amount)
	if err != nil {
		return nil, fmt.Errorf("redeem voucher %s: %w", code, err)
	}
	if !debited {
		// Lost the race against a concurrent redemption of the same card.
		return nil, fmt.Errorf("voucher %s has insufficient balance", code)
	}

	s.log.Info("Voucher redeemed",
		zap.String("voucher_id", voucher.ID.String()),
		zap.String("code", voucher.Code),
		zap.Float64("amount", amount),
	)
	return voucher, nil
}

func (s *voucherService) RecordUsage(ctx context.Context, voucherID, reservationID uuid.UUID, amount float64) error {
	now := time.Now()
	usage := &entity.VoucherUsage{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		VoucherID:     voucherID,
		ReservationID: reservationID,
		UsedAt:        now,
		AmountUsed:    amount,
	}

	if err := s.repo.Voucher.AppendUsage(ctx, usage); err != nil {
		return fmt.Errorf("record voucher usage: %w", err)
	}
	return nil
}

func (s *voucherService) RestoreBalance(ctx context.Context, voucherID uuid.UUID, amount float64) error {
	if err := s.repo.Voucher.RestoreValue(ctx, voucherID, amount); err != nil {
		return fmt.Errorf("restore voucher %s: %w", voucherID.String(), err)
	}

	s.log.Info("Voucher balance restored",
		zap.String("voucher_id", voucherID.String()),
		zap.Float64("amount", amount),
	)
	return nil
}

func (s *voucherService) ValidateCode(ctx context.Context, req *request.ValidateVoucherRequest) (*entity.DiscountResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Validate voucher validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	return s.ValidateForBooking(ctx, req.Code, req.TotalAmount)
}

func (s *voucherService) CreateVoucher(ctx context.Context, req *request.CreateVoucherRequest) (*response.VoucherResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create voucher validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	validFrom, validUntil, err := parseValidityWindow(req.ValidFrom, req.ValidUntil)
	if err != nil {
		return nil, err
	}

	code := utils.FormatVoucherCode(req.Code)
	if code == "" {
		code, err = s.generateUniqueCode(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		exists, err := s.repo.Voucher.CodeExists(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("check voucher code %s: %w", code, err)
		}
		if exists {
			return nil, fmt.Errorf("voucher code %s already exists", code)
		}
	}

	voucher := s.buildVoucher(code, entity.VoucherType(req.Type), req.Value,
		entity.DiscountType(req.DiscountType), validFrom, validUntil, req.CreatedBy, req.Notes)

	if err := s.repo.Voucher.Create(ctx, voucher); err != nil {
		s.log.Error("Failed to create voucher",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("create voucher: %w", err)
	}

	s.log.Info("Voucher created",
		zap.String("voucher_id", voucher.ID.String()),
		zap.String("code", voucher.Code),
		zap.String("type", string(voucher.Type)),
		zap.Float64("value", voucher.Value),
	)

	resp := response.VoucherToResponse(voucher)
	return &resp, nil
}

func (s *voucherService) GetVouchers(ctx context.Context) ([]response.VoucherResponse, error) {
	vouchers, err := s.repo.Voucher.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get vouchers", zap.Error(err))
		return nil, fmt.Errorf("get vouchers: %w", err)
	}

	voucherResponses := make([]response.VoucherResponse, len(vouchers))
	for i, voucher := range vouchers {
		voucherResponses[i] = response.VoucherToResponse(voucher)
	}

	return voucherResponses, nil
}

func (s *voucherService) GetVoucherByID(ctx context.Context, voucherID string) (*response.VoucherResponse, error) {
	id, err := uuid.Parse(voucherID)
	if err != nil {
		return nil, fmt.Errorf("invalid voucher ID format %s: %w", voucherID, err)
	}

	voucher, err := s.repo.Voucher.FindByID(ctx, id)
	if err != nil || voucher == nil {
		return nil, fmt.Errorf("voucher %s not found", voucherID)
	}

	resp := response.VoucherToResponse(voucher)
	return &resp, nil
}

func (s *voucherService) GetVoucherUsage(ctx context.Context, voucherID string) ([]response.VoucherUsageResponse, error) {
	id, err := uuid.Parse(voucherID)
	if err != nil {
		return nil, fmt.Errorf("invalid voucher ID format %s: %w", voucherID, err)
	}

	usages, err := s.repo.Voucher.FindUsageByVoucherID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get voucher usage",
			zap.Error(err),
			zap.String("voucher_id", voucherID),
		)
		return nil, fmt.Errorf("get voucher usage: %w", err)
	}

	usageResponses := make([]response.VoucherUsageResponse, len(usages))
	for i, usage := range usages {
		usageResponses[i] = response.VoucherUsageToResponse(usage)
	}

	return usageResponses, nil
}

func (s *voucherService) UpdateVoucher(ctx context.Context, voucherID string, req *request.UpdateVoucherRequest) (*response.VoucherResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update voucher validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(voucherID)
	if err != nil {
		return nil, fmt.Errorf("invalid voucher ID format %s: %w", voucherID, err)
	}

	voucher, err := s.repo.Voucher.FindByID(ctx, id)
	if err != nil || voucher == nil {
		return nil, fmt.Errorf("voucher %s not found", voucherID)
	}

	if req.Value != nil {
		voucher.Value = *req.Value
		if *req.Value > voucher.OriginalValue {
			voucher.OriginalValue = *req.Value
		}
		if voucher.Type == entity.VoucherTypeGiftCard {
			if *req.Value <= 0 {
				voucher.Status = entity.VoucherStatusUsed
			} else {
				voucher.Status = entity.VoucherStatusActive
			}
		}
	}
	if req.ValidFrom != "" {
		validFrom, err := time.Parse("2006-01-02", req.ValidFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid valid_from date %s: %w", req.ValidFrom, err)
		}
		voucher.ValidFrom = validFrom
	}
	if req.ValidUntil != "" {
		validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, fmt.Errorf("invalid valid_until date %s: %w", req.ValidUntil, err)
		}
		voucher.ValidUntil = validUntil.Add(24*time.Hour - time.Second)
	}
	if req.IsActive != nil {
		voucher.IsActive = *req.IsActive
	}
	if req.Notes != "" {
		voucher.Notes = req.Notes
	}
	voucher.UpdatedAt = time.Now()

	if err := s.repo.Voucher.Update(ctx, voucher); err != nil {
		s.log.Error("Failed to update voucher",
			zap.Error(err),
			zap.String("voucher_id", voucherID),
		)
		return nil, fmt.Errorf("update voucher: %w", err)
	}

	s.log.Info("Voucher updated", zap.String("voucher_id", voucherID))

	resp := response.VoucherToResponse(voucher)
	return &resp, nil
}

func (s *voucherService) DeleteVoucher(ctx context.Context, voucherID string) error {
	id, err := uuid.Parse(voucherID)
	if err != nil {
		return fmt.Errorf("invalid voucher ID format %s: %w", voucherID, err)
	}

	if err := s.repo.Voucher.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete voucher",
			zap.Error(err),
			zap.String("voucher_id", voucherID),
		)
		return fmt.Errorf("delete voucher: %w", err)
	}

	s.log.Info("Voucher deleted", zap.String("voucher_id", voucherID))
	return nil
}

func (s *voucherService) GenerateBulkVouchers(ctx context.Context, req *request.BulkGenerateVouchersRequest) ([]response.VoucherResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Bulk generate validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	validFrom, validUntil, err := parseValidityWindow(req.ValidFrom, req.ValidUntil)
	if err != nil {
		return nil, err
	}

	voucherResponses := make([]response.VoucherResponse, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		code, err := s.generateUniqueCode(ctx)
		if err != nil {
			return nil, err
		}

		voucher := s.buildVoucher(code, entity.VoucherTypeGiftCard, req.Value,
			"", validFrom, validUntil, req.CreatedBy, "")

		if err := s.repo.Voucher.Create(ctx, voucher); err != nil {
			s.log.Error("Failed to create voucher in bulk generation",
				zap.Error(err),
				zap.String("code", code),
				zap.Int("generated", i),
			)
			return nil, fmt.Errorf("bulk generate vouchers after %d: %w", i, err)
		}

		voucherResponses = append(voucherResponses, response.VoucherToResponse(voucher))
	}

	s.log.Info("Vouchers generated in bulk",
		zap.Int("count", req.Count),
		zap.Float64("value", req.Value),
		zap.String("created_by", req.CreatedBy),
	)

	return voucherResponses, nil
}

func (s *voucherService) GetVoucherStats(ctx context.Context) (*response.VoucherStatsResponse, error) {
	vouchers, err := s.repo.Voucher.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get vouchers for stats", zap.Error(err))
		return nil, fmt.Errorf("get voucher stats: %w", err)
	}

	stats := &response.VoucherStatsResponse{Total: len(vouchers)}
	for _, voucher := range vouchers {
		stats.TotalValue += voucher.Value
		stats.TotalOriginalValue += voucher.OriginalValue
		if voucher.Status == entity.VoucherStatusUsed {
			stats.Redeemed++
		} else if voucher.IsActive {
			stats.Active++
		}
	}

	return stats, nil
}

// generateUniqueCode draws random codes until one misses the existing set,
// bounded by maxCodeAttempts.
func (s *voucherService) generateUniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := utils.GenerateVoucherCode()
		if err != nil {
			return "", fmt.Errorf("generate voucher code: %w", err)
		}

		exists, err := s.repo.Voucher.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check voucher code %s: %w", code, err)
		}
		if !exists {
			return code, nil
		}

		s.log.Warn("Voucher code collision, retrying",
			zap.String("code", code),
			zap.Int("attempt", attempt+1),
		)
	}

	return "", fmt.Errorf("could not generate unique voucher code after %d attempts", maxCodeAttempts)
}

func (s *voucherService) buildVoucher(code string, voucherType entity.VoucherType, value float64, discountType entity.DiscountType, validFrom, validUntil time.Time, createdBy, notes string) *entity.Voucher {
	now := time.Now()
	return &entity.Voucher{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:          code,
		Type:          voucherType,
		Value:         value,
		OriginalValue: value,
		DiscountType:  discountType,
		ValidFrom:     validFrom,
		ValidUntil:    validUntil,
		IsActive:      true,
		Status:        entity.VoucherStatusActive,
		CreatedBy:     createdBy,
		Notes:         notes,
	}
}

func parseValidityWindow(from, until string) (time.Time, time.Time, error) {
	validFrom, err := time.Parse("2006-01-02", from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid valid_from date %s: %w", from, err)
	}
	validUntil, err := time.Parse("2006-01-02", until)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid valid_until date %s: %w", until, err)
	}
	// The window includes the whole last day.
	return validFrom, validUntil.Add(24*time.Hour - time.Second), nil
}
