package usecase

import (
	"context"
	"testing"
	"time"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeGiftCard(code string, balance float64) *entity.Voucher {
	return &entity.Voucher{
		Base:          entity.Base{ID: uuid.New()},
		Code:          code,
		Type:          entity.VoucherTypeGiftCard,
		Value:         balance,
		OriginalValue: balance,
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    time.Now().Add(time.Hour),
		IsActive:      true,
		Status:        entity.VoucherStatusActive,
	}
}

func TestVoucherValidateForBooking_GiftCard(t *testing.T) {
	mocks := newTestMocks()
	mocks.voucher.FindByCodeFunc = func(ctx context.Context, code string) (*entity.Voucher, error) {
		return activeGiftCard(code, 50), nil
	}
	service := NewVoucherService(mocks.repo(), testLogger())

	t.Run("covers up to the balance", func(t *testing.T) {
		result, err := service.ValidateForBooking(context.Background(), "CARD", 700)
		require.NoError(t, err)
		assert.True(t, result.IsValid)
		assert.Equal(t, 50.0, result.DiscountAmount)
	})

	t.Run("never exceeds the booking total", func(t *testing.T) {
		result, err := service.ValidateForBooking(context.Background(), "CARD", 30)
		require.NoError(t, err)
		assert.True(t, result.IsValid)
		assert.Equal(t, 30.0, result.DiscountAmount)
	})
}

func TestVoucherValidateForBooking_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		voucher func() *entity.Voucher
		message string
	}{
		{
			"unknown code", func() *entity.Voucher { return nil },
			"invalid voucher code",
		},
		{
			"drained gift card",
			func() *entity.Voucher {
				v := activeGiftCard("X", 0)
				return v
			},
			"voucher has no remaining balance",
		},
		{
			"used voucher",
			func() *entity.Voucher {
				v := activeGiftCard("X", 50)
				v.Status = entity.VoucherStatusUsed
				return v
			},
			"voucher is no longer active",
		},
		{
			"expired voucher",
			func() *entity.Voucher {
				v := activeGiftCard("X", 50)
				v.ValidUntil = time.Now().Add(-time.Minute)
				return v
			},
			"voucher has expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := newTestMocks()
			mocks.voucher.FindByCodeFunc = func(ctx context.Context, code string) (*entity.Voucher, error) {
				return tt.voucher(), nil
			}
			service := NewVoucherService(mocks.repo(), testLogger())

			result, err := service.ValidateForBooking(context.Background(), "X", 700)
			require.NoError(t, err)
			assert.False(t, result.IsValid)
			assert.Equal(t, tt.message, result.ErrorMessage)
		})
	}
}

func TestVoucherValidateForBooking_DiscountVoucher(t *testing.T) {
	mocks := newTestMocks()
	mocks.voucher.FindByCodeFunc = func(ctx context.Context, code string) (*entity.Voucher, error) {
		v := activeGiftCard(code, 15)
		v.Type = entity.VoucherTypeDiscount
		v.DiscountType = entity.DiscountTypePercentage
		return v, nil
	}
	service := NewVoucherService(mocks.repo(), testLogger())

	result, err := service.ValidateForBooking(context.Background(), "DISC", 700)
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, 105.0, result.DiscountAmount)
	assert.Equal(t, entity.DiscountTypePercentage, result.DiscountType)
}

func TestRedeemCode(t *testing.T) {
	t.Run("debits a gift card", func(t *testing.T) {
		card := activeGiftCard("CARD", 100)
		var debitedAmount float64

		mocks := newTestMocks()
		mocks.voucher.FindByCodeFunc = func(ctx context.Context, code string) (*entity.Voucher, error) {
			return card, nil
		}
		mocks.voucher.DecrementValueFunc = func(ctx context.Context, id uuid.UUID, amount float64) (bool, error) {
			assert.Equal(t, card.ID, id)
			debitedAmount = amount
			return true, nil
		}
		service := NewVoucherService(mocks.repo(), testLogger())

		redeemed, err := service.RedeemCode(context.Background(), "CARD", 60)
		require.NoError(t, err)
		assert.Equal(t, card.ID, redeemed.ID)
		assert.Equal(t, 60.0, debitedAmount)
	})

	t.Run("insufficient balance fails", func(t *testing.T) {
		mocks := newTestMocks()
		mocks.voucher.FindByCodeFunc = func(ctx context.Context, code string) (*entity.Voucher, error) {
			return activeGiftCard(code, 100), nil
		}
		mocks.voucher.DecrementValueFunc = func(ctx context.Context, id uuid.UUID, amount float64) (bool, error) {
			// A concurrent redemption drained the card first.
			return false, nil
		}
		service := NewVoucherService(mocks.repo(), testLogger())

		_, err := service.RedeemCode(context.Background(), "CARD", 60)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient balance")
	})

	t.Run("discount voucher is not debited", func(t *testing.T) {
		mocks := newTestMocks()
		mocks.voucher.FindByCodeFunc = func(ctx context.Context, code string) (*entity.Voucher, error) {
			v := activeGiftCard(code, 10)
			v.Type = entity.VoucherTypeDiscount
			return v, nil
		}
		mocks.voucher.DecrementValueFunc = func(ctx context.Context, id uuid.UUID, amount float64) (bool, error) {
			t.Fatal("discount voucher must not be debited")
			return false, nil
		}
		service := NewVoucherService(mocks.repo(), testLogger())

		_, err := service.RedeemCode(context.Background(), "DISC", 60)
		require.NoError(t, err)
	})
}

func TestCreateVoucher_GeneratesUniqueCode(t *testing.T) {
	attempts := 0
	var created *entity.Voucher

	mocks := newTestMocks()
	mocks.voucher.CodeExistsFunc = func(ctx context.Context, code string) (bool, error) {
		attempts++
		// First two draws collide, the third is free.
		return attempts < 3, nil
	}
	mocks.voucher.CreateFunc = func(ctx context.Context, voucher *entity.Voucher) error {
		created = voucher
		return nil
	}
	service := NewVoucherService(mocks.repo(), testLogger())

	resp, err := service.CreateVoucher(context.Background(), &request.CreateVoucherRequest{
		Type:       "gift_card",
		Value:      100,
		ValidFrom:  "2026-01-01",
		ValidUntil: "2026-12-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, attempts)
	require.NotNil(t, created)
	assert.Regexp(t, `^[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}$`, created.Code)
	assert.Equal(t, created.Code, resp.Code)
}

func TestCreateVoucher_GivesUpAfterMaxAttempts(t *testing.T) {
	mocks := newTestMocks()
	mocks.voucher.CodeExistsFunc = func(ctx context.Context, code string) (bool, error) {
		return true, nil
	}
	mocks.voucher.CreateFunc = func(ctx context.Context, voucher *entity.Voucher) error {
		t.Fatal("voucher must not be created without a unique code")
		return nil
	}
	service := NewVoucherService(mocks.repo(), testLogger())

	_, err := service.CreateVoucher(context.Background(), &request.CreateVoucherRequest{
		Type:       "gift_card",
		Value:      100,
		ValidFrom:  "2026-01-01",
		ValidUntil: "2026-12-31",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 5 attempts")
}

func TestCreateVoucher_RejectsDuplicateExplicitCode(t *testing.T) {
	mocks := newTestMocks()
	mocks.voucher.CodeExistsFunc = func(ctx context.Context, code string) (bool, error) {
		return true, nil
	}
	service := NewVoucherService(mocks.repo(), testLogger())

	_, err := service.CreateVoucher(context.Background(), &request.CreateVoucherRequest{
		Code:       "gift-2026-abcd-efgh",
		Type:       "gift_card",
		Value:      100,
		ValidFrom:  "2026-01-01",
		ValidUntil: "2026-12-31",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	// The hand-entered code is checked in its normalized form.
	assert.Contains(t, err.Error(), "GIFT-2026-ABCD-EFGH")
}
