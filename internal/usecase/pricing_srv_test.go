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

func newPricingService(m *testMocks) PricingService {
	log := testLogger()
	promotion := NewPromotionService(m.repo(), log)
	voucher := NewVoucherService(m.repo(), log)
	return NewPricingService(m.repo(), testConfig(), promotion, voucher, log)
}

// 2026-01-03 is a Saturday, 2026-01-06 a Tuesday.
func weekendEvent() *entity.Event {
	return &entity.Event{
		Base:              entity.Base{ID: uuid.New()},
		Date:              time.Date(2026, 1, 3, 19, 0, 0, 0, time.UTC),
		Type:              entity.EventTypeRegular,
		Capacity:          230,
		RemainingCapacity: 230,
		IsActive:          true,
	}
}

func weekdayEvent() *entity.Event {
	event := weekendEvent()
	event.Date = time.Date(2026, 1, 6, 19, 0, 0, 0, time.UTC)
	return event
}

func TestResolveDayType(t *testing.T) {
	service := newPricingService(newTestMocks())

	tests := []struct {
		name     string
		event    *entity.Event
		expected entity.DayType
	}{
		{"regular on Saturday is weekend", weekendEvent(), entity.DayTypeWeekend},
		{"regular on Tuesday is weekday", weekdayEvent(), entity.DayTypeWeekday},
		{"matinee ignores the date", &entity.Event{
			Date: time.Date(2026, 1, 3, 14, 0, 0, 0, time.UTC),
			Type: entity.EventTypeMatinee,
		}, entity.DayTypeMatinee},
		{"care heroes has its own row", &entity.Event{
			Date: time.Date(2026, 1, 6, 19, 0, 0, 0, time.UTC),
			Type: entity.EventTypeCareHeroes,
		}, entity.DayTypeCareHeroes},
		{"request prices by date", &entity.Event{
			Date: time.Date(2026, 1, 3, 19, 0, 0, 0, time.UTC),
			Type: entity.EventTypeRequest,
		}, entity.DayTypeWeekend},
		{"custom type lowercases", &entity.Event{
			Date: time.Date(2026, 1, 6, 19, 0, 0, 0, time.UTC),
			Type: entity.EventType("GALA"),
		}, entity.DayType("gala")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.ResolveDayType(tt.event))
		})
	}
}

func TestCalculatePrice_BasePrice(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return fullPriceTable(), nil
	}
	service := newPricingService(mocks)

	form := &request.BookingForm{NumberOfPersons: 10, Arrangement: "BWF"}

	calc, err := service.CalculatePrice(context.Background(), weekendEvent(), form, "", "")
	require.NoError(t, err)

	assert.Equal(t, 700.0, calc.BasePrice)
	assert.Equal(t, 700.0, calc.Subtotal)
	assert.Equal(t, 700.0, calc.TotalPrice)
	assert.Equal(t, 70.0, calc.Breakdown.Arrangement.PricePerPerson)
	assert.Equal(t, 10, calc.Breakdown.Arrangement.Persons)
}

func TestCalculatePrice_CustomPricingWins(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return fullPriceTable(), nil
	}
	service := newPricingService(mocks)

	event := weekendEvent()
	event.CustomPricing = map[entity.Arrangement]float64{entity.ArrangementBWF: 95}

	form := &request.BookingForm{NumberOfPersons: 10, Arrangement: "BWF"}

	calc, err := service.CalculatePrice(context.Background(), event, form, "", "")
	require.NoError(t, err)
	assert.Equal(t, 950.0, calc.BasePrice)
}

func TestCalculatePrice_MissingRuleFailsCalculation(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return nil, nil
	}
	service := newPricingService(mocks)

	form := &request.BookingForm{NumberOfPersons: 10, Arrangement: "BWF"}

	_, err := service.CalculatePrice(context.Background(), weekendEvent(), form, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrConfigurationMissing)
}

func TestCalculatePrice_AddOnBelowThreshold(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return fullPriceTable(), nil
	}
	service := newPricingService(mocks)

	form := &request.BookingForm{
		NumberOfPersons: 10,
		Arrangement:     "BWF",
		PreDrink:        request.AddOnSelection{Enabled: true, Quantity: 10},
	}

	calc, err := service.CalculatePrice(context.Background(), weekendEvent(), form, "", "")
	require.NoError(t, err)

	// Quantity 10 is under the 25-person minimum, so the add-on contributes
	// nothing even though it is enabled.
	assert.Equal(t, 0.0, calc.PreDrinkTotal)
	assert.Nil(t, calc.Breakdown.PreDrink)
	assert.Equal(t, 700.0, calc.TotalPrice)
}

func TestCalculatePrice_AddOnAtThreshold(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return fullPriceTable(), nil
	}
	service := newPricingService(mocks)

	form := &request.BookingForm{
		NumberOfPersons: 30,
		Arrangement:     "BWF",
		PreDrink:        request.AddOnSelection{Enabled: true, Quantity: 30},
	}

	calc, err := service.CalculatePrice(context.Background(), weekendEvent(), form, "", "")
	require.NoError(t, err)

	assert.Equal(t, 2100.0, calc.BasePrice)
	assert.Equal(t, 450.0, calc.PreDrinkTotal)
	require.NotNil(t, calc.Breakdown.PreDrink)
	assert.Equal(t, 15.0, calc.Breakdown.PreDrink.PricePerPerson)
	assert.Equal(t, 2550.0, calc.TotalPrice)
}

func TestCalculatePrice_AddOnConfigOverridesDefaults(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return fullPriceTable(), nil
	}
	mocks.pricing.FindAddOnFunc = func(ctx context.Context, key entity.AddOnKey) (*entity.AddOnConfig, error) {
		return &entity.AddOnConfig{Key: key, PricePerPerson: 25, MinPersons: 10}, nil
	}
	service := newPricingService(mocks)

	form := &request.BookingForm{
		NumberOfPersons: 10,
		Arrangement:     "BWF",
		AfterParty:      request.AddOnSelection{Enabled: true, Quantity: 10},
	}

	calc, err := service.CalculatePrice(context.Background(), weekendEvent(), form, "", "")
	require.NoError(t, err)
	assert.Equal(t, 250.0, calc.AfterPartyTotal)
}

func TestCalculatePrice_UnknownMerchandiseContributesNothing(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return fullPriceTable(), nil
	}
	mocks.merchandise.FindByKeyFunc = func(ctx context.Context, key string) (*entity.MerchandiseItem, error) {
		if key == "tshirt" {
			return &entity.MerchandiseItem{Key: "tshirt", Name: "T-shirt", Price: 20}, nil
		}
		return nil, nil
	}
	service := newPricingService(mocks)

	form := &request.BookingForm{
		NumberOfPersons: 10,
		Arrangement:     "BWF",
		Merchandise: []request.MerchandiseSelection{
			{ItemID: "tshirt", Quantity: 2},
			{ItemID: "does-not-exist", Quantity: 5},
		},
	}

	calc, err := service.CalculatePrice(context.Background(), weekendEvent(), form, "", "")
	require.NoError(t, err)

	assert.Equal(t, 40.0, calc.MerchandiseTotal)
	require.NotNil(t, calc.Breakdown.Merchandise)
	assert.Len(t, calc.Breakdown.Merchandise.Items, 1)
	assert.Equal(t, 740.0, calc.TotalPrice)
}

func TestCalculatePrice_PercentagePromotion(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return fullPriceTable(), nil
	}
	mocks.promotion.FindByCodeFunc = func(ctx context.Context, code string) (*entity.PromotionCode, error) {
		return &entity.PromotionCode{
			Base:       entity.Base{ID: uuid.New()},
			Code:       code,
			Type:       entity.DiscountTypePercentage,
			Value:      10,
			ValidFrom:  time.Now().Add(-time.Hour),
			ValidUntil: time.Now().Add(time.Hour),
			IsActive:   true,
		}, nil
	}
	service := newPricingService(mocks)

	form := &request.BookingForm{NumberOfPersons: 10, Arrangement: "BWF"}

	calc, err := service.CalculatePrice(context.Background(), weekendEvent(), form, "LAUNCH10", "")
	require.NoError(t, err)

	assert.Equal(t, 70.0, calc.PromotionDiscount)
	assert.Equal(t, 0.0, calc.VoucherDiscount)
	assert.Equal(t, 70.0, calc.DiscountAmount)
	assert.Equal(t, 630.0, calc.TotalPrice)
	require.NotNil(t, calc.Breakdown.Discount)
	assert.Equal(t, "promotion LAUNCH10", calc.Breakdown.Discount.Description)
}

func TestCalculatePrice_InvalidPromotionIsIgnored(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return fullPriceTable(), nil
	}
	service := newPricingService(mocks)

	form := &request.BookingForm{NumberOfPersons: 10, Arrangement: "BWF"}

	// FindByCode returns nil: unknown code, full price, no error.
	calc, err := service.CalculatePrice(context.Background(), weekendEvent(), form, "NOPE", "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, calc.DiscountAmount)
	assert.Equal(t, 700.0, calc.TotalPrice)
	assert.Nil(t, calc.Breakdown.Discount)
}

func TestCalculatePrice_GiftCardClampsAtZero(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return fullPriceTable(), nil
	}
	mocks.voucher.FindByCodeFunc = func(ctx context.Context, code string) (*entity.Voucher, error) {
		return &entity.Voucher{
			Base:       entity.Base{ID: uuid.New()},
			Code:       code,
			Type:       entity.VoucherTypeGiftCard,
			Value:      1000,
			ValidFrom:  time.Now().Add(-time.Hour),
			ValidUntil: time.Now().Add(time.Hour),
			IsActive:   true,
			Status:     entity.VoucherStatusActive,
		}, nil
	}
	service := newPricingService(mocks)

	form := &request.BookingForm{NumberOfPersons: 10, Arrangement: "BWF"}

	calc, err := service.CalculatePrice(context.Background(), weekendEvent(), form, "", "GIFT-CARD")
	require.NoError(t, err)

	// The card covers only what the booking costs; the total never goes
	// negative.
	assert.Equal(t, 700.0, calc.VoucherDiscount)
	assert.Equal(t, 0.0, calc.TotalPrice)
}

func TestCalculatePrice_Deterministic(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return fullPriceTable(), nil
	}
	service := newPricingService(mocks)

	event := weekendEvent()
	form := &request.BookingForm{
		NumberOfPersons: 30,
		Arrangement:     "BWFM",
		PreDrink:        request.AddOnSelection{Enabled: true, Quantity: 30},
	}

	first, err := service.CalculatePrice(context.Background(), event, form, "", "")
	require.NoError(t, err)
	second, err := service.CalculatePrice(context.Background(), event, form, "", "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidateTable(t *testing.T) {
	t.Run("complete table passes", func(t *testing.T) {
		mocks := newTestMocks()
		mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
			return fullPriceTable(), nil
		}
		service := newPricingService(mocks)

		assert.NoError(t, service.ValidateTable(context.Background()))
	})

	t.Run("missing row fails", func(t *testing.T) {
		mocks := newTestMocks()
		mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
			return fullPriceTable()[:7], nil
		}
		service := newPricingService(mocks)

		err := service.ValidateTable(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrConfigurationMissing)
		assert.Contains(t, err.Error(), "care_heroes/BWFM")
	})
}

func TestCreatePricingSnapshot(t *testing.T) {
	mocks := newTestMocks()
	mocks.pricing.FindAllRulesFunc = func(ctx context.Context) ([]*entity.PriceRule, error) {
		return fullPriceTable(), nil
	}
	service := newPricingService(mocks)

	form := &request.BookingForm{
		NumberOfPersons: 30,
		Arrangement:     "BWF",
		PreDrink:        request.AddOnSelection{Enabled: true, Quantity: 30},
	}

	calc, err := service.CalculatePrice(context.Background(), weekendEvent(), form, "", "")
	require.NoError(t, err)

	snapshot := service.CreatePricingSnapshot(calc)

	assert.Equal(t, 70.0, snapshot.PricePerPerson)
	assert.Equal(t, 30, snapshot.NumberOfPersons)
	assert.Equal(t, entity.ArrangementBWF, snapshot.Arrangement)
	assert.Equal(t, 2100.0, snapshot.ArrangementTotal)
	assert.Equal(t, 450.0, snapshot.PreDrinkTotal)
	assert.Equal(t, calc.TotalPrice, snapshot.FinalTotal)
	assert.False(t, snapshot.CalculatedAt.IsZero())
}

func TestGetReservationDisplayPrice(t *testing.T) {
	service := newPricingService(newTestMocks())

	withSnapshot := &entity.Reservation{
		TotalPrice:      999,
		PricingSnapshot: &entity.PricingSnapshot{FinalTotal: 700},
	}
	legacy := &entity.Reservation{TotalPrice: 850}

	// The frozen snapshot wins over the stored column; legacy rows fall back.
	assert.Equal(t, 700.0, service.GetReservationDisplayPrice(withSnapshot))
	assert.Equal(t, 850.0, service.GetReservationDisplayPrice(legacy))
}
