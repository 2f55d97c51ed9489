package usecase

import (
	"context"
	"testing"
	"time"

	"theater-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activePromo(code string, discountType entity.DiscountType, value float64) *entity.PromotionCode {
	return &entity.PromotionCode{
		Base:       entity.Base{ID: uuid.New()},
		Code:       code,
		Type:       discountType,
		Value:      value,
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(time.Hour),
		IsActive:   true,
	}
}

func TestValidateForBooking_UnknownCode(t *testing.T) {
	service := NewPromotionService(newTestMocks().repo(), testLogger())

	result, err := service.ValidateForBooking(context.Background(), "NOPE", 700, nil, "", 10, 1)
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.Equal(t, "invalid promotion code", result.ErrorMessage)
}

func TestValidateForBooking_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		promo   func() *entity.PromotionCode
		message string
	}{
		{
			"inactive code",
			func() *entity.PromotionCode {
				p := activePromo("X", entity.DiscountTypeFixed, 10)
				p.IsActive = false
				return p
			},
			"promotion code is no longer active",
		},
		{
			"expired code",
			func() *entity.PromotionCode {
				p := activePromo("X", entity.DiscountTypeFixed, 10)
				p.ValidUntil = time.Now().Add(-time.Minute)
				return p
			},
			"promotion code has expired",
		},
		{
			"not yet valid",
			func() *entity.PromotionCode {
				p := activePromo("X", entity.DiscountTypeFixed, 10)
				p.ValidFrom = time.Now().Add(time.Minute)
				return p
			},
			"promotion code is not yet valid",
		},
		{
			"usage limit reached",
			func() *entity.PromotionCode {
				p := activePromo("X", entity.DiscountTypeFixed, 10)
				p.MaxUses = 5
				p.UsedCount = 5
				return p
			},
			"promotion code has reached its usage limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := newTestMocks()
			mocks.promotion.FindByCodeFunc = func(ctx context.Context, code string) (*entity.PromotionCode, error) {
				return tt.promo(), nil
			}
			service := NewPromotionService(mocks.repo(), testLogger())

			result, err := service.ValidateForBooking(context.Background(), "X", 700, nil, "", 10, 1)
			require.NoError(t, err)
			assert.False(t, result.IsValid)
			assert.Equal(t, tt.message, result.ErrorMessage)
		})
	}
}

func TestValidateForBooking_MinimumBookingAmount(t *testing.T) {
	mocks := newTestMocks()
	mocks.promotion.FindByCodeFunc = func(ctx context.Context, code string) (*entity.PromotionCode, error) {
		p := activePromo(code, entity.DiscountTypeFixed, 50)
		p.MinBookingAmount = 500
		return p, nil
	}
	service := NewPromotionService(mocks.repo(), testLogger())

	below, err := service.ValidateForBooking(context.Background(), "MIN", 300, nil, "", 10, 1)
	require.NoError(t, err)
	assert.False(t, below.IsValid)

	above, err := service.ValidateForBooking(context.Background(), "MIN", 700, nil, "", 10, 1)
	require.NoError(t, err)
	assert.True(t, above.IsValid)
	assert.Equal(t, 50.0, above.DiscountAmount)
}

func TestValidateForBooking_DiscountTypes(t *testing.T) {
	tests := []struct {
		name         string
		discountType entity.DiscountType
		value        float64
		expected     float64
	}{
		{"percentage of subtotal", entity.DiscountTypePercentage, 10, 70},
		{"fixed amount", entity.DiscountTypeFixed, 50, 50},
		{"fixed amount capped at subtotal", entity.DiscountTypeFixed, 2000, 700},
		{"per person times headcount", entity.DiscountTypePerPerson, 5, 50},
		{"per arrangement", entity.DiscountTypePerArrangement, 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := newTestMocks()
			mocks.promotion.FindByCodeFunc = func(ctx context.Context, code string) (*entity.PromotionCode, error) {
				return activePromo(code, tt.discountType, tt.value), nil
			}
			service := NewPromotionService(mocks.repo(), testLogger())

			result, err := service.ValidateForBooking(context.Background(), "CODE", 700, nil, "", 10, 1)
			require.NoError(t, err)
			assert.True(t, result.IsValid)
			assert.Equal(t, tt.expected, result.DiscountAmount)
		})
	}
}

func TestValidateForBooking_Applicability(t *testing.T) {
	mocks := newTestMocks()
	mocks.promotion.FindByCodeFunc = func(ctx context.Context, code string) (*entity.PromotionCode, error) {
		p := activePromo(code, entity.DiscountTypeFixed, 25)
		p.ApplicableTo = entity.PromotionApplicability{
			EventTypes:   []entity.EventType{entity.EventTypeMatinee},
			Arrangements: []entity.Arrangement{entity.ArrangementBWF},
		}
		return p, nil
	}
	service := NewPromotionService(mocks.repo(), testLogger())

	matinee := &entity.Event{Type: entity.EventTypeMatinee}
	regular := &entity.Event{Type: entity.EventTypeRegular}

	valid, err := service.ValidateForBooking(context.Background(), "MAT", 700, matinee, entity.ArrangementBWF, 10, 1)
	require.NoError(t, err)
	assert.True(t, valid.IsValid)

	wrongEvent, err := service.ValidateForBooking(context.Background(), "MAT", 700, regular, entity.ArrangementBWF, 10, 1)
	require.NoError(t, err)
	assert.False(t, wrongEvent.IsValid)
	assert.Equal(t, "promotion code is not valid for this event", wrongEvent.ErrorMessage)

	wrongArrangement, err := service.ValidateForBooking(context.Background(), "MAT", 700, matinee, entity.ArrangementBWFM, 10, 1)
	require.NoError(t, err)
	assert.False(t, wrongArrangement.IsValid)
	assert.Equal(t, "promotion code is not valid for this arrangement", wrongArrangement.ErrorMessage)
}

func TestApplyCode(t *testing.T) {
	t.Run("consumes one use", func(t *testing.T) {
		promo := activePromo("APPLY", entity.DiscountTypeFixed, 10)
		incremented := false

		mocks := newTestMocks()
		mocks.promotion.FindByCodeFunc = func(ctx context.Context, code string) (*entity.PromotionCode, error) {
			return promo, nil
		}
		mocks.promotion.IncrementUsageFunc = func(ctx context.Context, id uuid.UUID) (bool, error) {
			assert.Equal(t, promo.ID, id)
			incremented = true
			return true, nil
		}
		service := NewPromotionService(mocks.repo(), testLogger())

		applied, err := service.ApplyCode(context.Background(), "APPLY")
		require.NoError(t, err)
		assert.True(t, incremented)
		assert.Equal(t, promo.ID, applied.ID)
	})

	t.Run("exhausted budget fails", func(t *testing.T) {
		mocks := newTestMocks()
		mocks.promotion.FindByCodeFunc = func(ctx context.Context, code string) (*entity.PromotionCode, error) {
			return activePromo(code, entity.DiscountTypeFixed, 10), nil
		}
		mocks.promotion.IncrementUsageFunc = func(ctx context.Context, id uuid.UUID) (bool, error) {
			// Another booking took the last use between validation and commit.
			return false, nil
		}
		service := NewPromotionService(mocks.repo(), testLogger())

		_, err := service.ApplyCode(context.Background(), "GONE")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage limit")
	})
}

func TestReleaseCode(t *testing.T) {
	promoID := uuid.New()
	released := false

	mocks := newTestMocks()
	mocks.promotion.DecrementUsageFunc = func(ctx context.Context, id uuid.UUID) error {
		assert.Equal(t, promoID, id)
		released = true
		return nil
	}
	service := NewPromotionService(mocks.repo(), testLogger())

	require.NoError(t, service.ReleaseCode(context.Background(), promoID))
	assert.True(t, released)
}
