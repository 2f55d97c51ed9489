package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/dto/request"
	"theater-booking/internal/dto/response"
	"theater-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PricingService interface {
	// ValidateTable checks at startup that every core day type carries a price
	// for every arrangement, so a missing entry is a deploy-time failure
	// instead of a zero-priced booking.
	ValidateTable(ctx context.Context) error

	// ResolveDayType maps an event to its price-table row key.
	ResolveDayType(event *entity.Event) entity.DayType

	// ResolveArrangementPrice returns the per-person price for an arrangement
	// on an event: event custom pricing wins, then the table row. A missing
	// entry is ErrConfigurationMissing, never a silent zero.
	ResolveArrangementPrice(ctx context.Context, event *entity.Event, arrangement entity.Arrangement) (float64, error)

	// CalculatePrice runs the full engine: base price, add-ons, merchandise,
	// promotion, voucher. Pure with respect to state: no usage is consumed,
	// identical inputs give identical results.
	CalculatePrice(ctx context.Context, event *entity.Event, form *request.BookingForm, promotionCode, voucherCode string) (*entity.PriceCalculation, error)

	// CreatePricingSnapshot freezes a calculation for storage alongside a
	// reservation.
	CreatePricingSnapshot(calc *entity.PriceCalculation) *entity.PricingSnapshot

	// GetReservationDisplayPrice prefers the frozen snapshot total and falls
	// back to the legacy stored total for pre-snapshot reservations.
	GetReservationDisplayPrice(reservation *entity.Reservation) float64

	PreviewPrice(ctx context.Context, req *request.PricePreviewRequest) (*response.PricePreviewResponse, error)
	GetPriceTable(ctx context.Context) (*response.PriceTableResponse, error)
	UpdatePriceRule(ctx context.Context, req *request.UpdatePriceRuleRequest) error
	DeletePriceRule(ctx context.Context, dayType, arrangement string) error
	UpdateAddOn(ctx context.Context, req *request.UpdateAddOnRequest) error

	GetMerchandise(ctx context.Context) ([]response.MerchandiseItemResponse, error)
	UpsertMerchandise(ctx context.Context, req *request.UpdateMerchandiseRequest) (*response.MerchandiseItemResponse, error)
	DeleteMerchandise(ctx context.Context, key string) error
}

type pricingService struct {
	repo      *repository.Repository
	config    *utils.Config
	promotion PromotionService
	voucher   VoucherService
	log       *zap.Logger
}

func NewPricingService(repo *repository.Repository, config *utils.Config, promotion PromotionService, voucher VoucherService, log *zap.Logger) PricingService {
	return &pricingService{
		repo:      repo,
		config:    config,
		promotion: promotion,
		voucher:   voucher,
		log:       log.With(zap.String("service", "pricing")),
	}
}

// coreDayTypes are the rows every deployment must price for every arrangement.
var coreDayTypes = []entity.DayType{
	entity.DayTypeWeekday,
	entity.DayTypeWeekend,
	entity.DayTypeMatinee,
	entity.DayTypeCareHeroes,
}

var coreArrangements = []entity.Arrangement{
	entity.ArrangementBWF,
	entity.ArrangementBWFM,
}

func (s *pricingService) ValidateTable(ctx context.Context) error {
	rules, err := s.repo.Pricing.FindAllRules(ctx)
	if err != nil {
		return fmt.Errorf("validate price table: %w", err)
	}

	priced := make(map[entity.DayType]map[entity.Arrangement]bool)
	for _, rule := range rules {
		if priced[rule.DayType] == nil {
			priced[rule.DayType] = make(map[entity.Arrangement]bool)
		}
		priced[rule.DayType][rule.Arrangement] = true
	}

	var missing []string
	for _, dayType := range coreDayTypes {
		for _, arrangement := range coreArrangements {
			if !priced[dayType][arrangement] {
				missing = append(missing, fmt.Sprintf("%s/%s", dayType, arrangement))
			}
		}
	}

	if len(missing) > 0 {
		s.log.Error("Price table incomplete", zap.Strings("missing", missing))
		return fmt.Errorf("price table missing entries %s: %w",
			strings.Join(missing, ", "), entity.ErrConfigurationMissing)
	}

	s.log.Info("Price table validated", zap.Int("rules", len(rules)))
	return nil
}

func (s *pricingService) ResolveDayType(event *entity.Event) entity.DayType {
	switch event.Type {
	case entity.EventTypeMatinee:
		return entity.DayTypeMatinee
	case entity.EventTypeCareHeroes:
		return entity.DayTypeCareHeroes
	case entity.EventTypeRegular, entity.EventTypeRequest:
		weekday := event.Date.Weekday().String()
		for _, day := range s.config.Booking.WeekendDays {
			if strings.EqualFold(day, weekday) {
				return entity.DayTypeWeekend
			}
		}
		return entity.DayTypeWeekday
	default:
		// Custom event types price under their lowercased name.
		return entity.DayType(strings.ToLower(string(event.Type)))
	}
}

func (s *pricingService) ResolveArrangementPrice(ctx context.Context, event *entity.Event, arrangement entity.Arrangement) (float64, error) {
	if price, ok := event.CustomPricing[arrangement]; ok {
		return price, nil
	}

	dayType := s.ResolveDayType(event)

	rules, err := s.repo.Pricing.FindAllRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve arrangement price: %w", err)
	}

	for _, rule := range rules {
		if rule.DayType == dayType && rule.Arrangement == arrangement {
			return rule.PricePerPerson, nil
		}
	}

	s.log.Error("No price configured",
		zap.String("event_id", event.ID.String()),
		zap.String("day_type", string(dayType)),
		zap.String("arrangement", string(arrangement)),
	)
	return 0, fmt.Errorf("no price for %s/%s: %w", dayType, arrangement, entity.ErrConfigurationMissing)
}

func (s *pricingService) CalculatePrice(ctx context.Context, event *entity.Event, form *request.BookingForm, promotionCode, voucherCode string) (*entity.PriceCalculation, error) {
	arrangement := entity.Arrangement(form.Arrangement)

	pricePerPerson, err := s.ResolveArrangementPrice(ctx, event, arrangement)
	if err != nil {
		return nil, err
	}

	calc := &entity.PriceCalculation{
		BasePrice: pricePerPerson * float64(form.NumberOfPersons),
	}
	calc.Breakdown.Arrangement = entity.ArrangementLine{
		Type:           arrangement,
		PricePerPerson: pricePerPerson,
		Persons:        form.NumberOfPersons,
		Total:          calc.BasePrice,
	}

	preDrinkTotal, preDrinkLine, err := s.calculateAddOn(ctx, entity.AddOnPreDrink, form.PreDrink)
	if err != nil {
		return nil, err
	}
	calc.PreDrinkTotal = preDrinkTotal
	calc.Breakdown.PreDrink = preDrinkLine

	afterPartyTotal, afterPartyLine, err := s.calculateAddOn(ctx, entity.AddOnAfterParty, form.AfterParty)
	if err != nil {
		return nil, err
	}
	calc.AfterPartyTotal = afterPartyTotal
	calc.Breakdown.AfterParty = afterPartyLine

	merchandiseTotal, merchandiseLines, err := s.calculateMerchandise(ctx, form.Merchandise)
	if err != nil {
		return nil, err
	}
	calc.MerchandiseTotal = merchandiseTotal
	calc.Breakdown.Merchandise = merchandiseLines

	calc.Subtotal = calc.BasePrice + calc.PreDrinkTotal + calc.AfterPartyTotal + calc.MerchandiseTotal

	var discountParts []string

	if promotionCode != "" {
		result, err := s.promotion.ValidateForBooking(ctx, promotionCode, calc.Subtotal, event, arrangement, form.NumberOfPersons, 1)
		if err != nil {
			return nil, err
		}
		if result.IsValid {
			calc.PromotionDiscount = result.DiscountAmount
			discountParts = append(discountParts, fmt.Sprintf("promotion %s", strings.ToUpper(promotionCode)))
		} else {
			s.log.Info("Promotion code rejected during calculation",
				zap.String("code", promotionCode),
				zap.String("reason", result.ErrorMessage),
			)
		}
	}

	if voucherCode != "" {
		// The voucher sees what is left after the promotion.
		remaining := calc.Subtotal - calc.PromotionDiscount
		result, err := s.voucher.ValidateForBooking(ctx, voucherCode, remaining)
		if err != nil {
			return nil, err
		}
		if result.IsValid {
			calc.VoucherDiscount = result.DiscountAmount
			discountParts = append(discountParts, fmt.Sprintf("voucher %s", strings.ToUpper(voucherCode)))
		} else {
			s.log.Info("Voucher rejected during calculation",
				zap.String("code", voucherCode),
				zap.String("reason", result.ErrorMessage),
			)
		}
	}

	calc.DiscountAmount = calc.PromotionDiscount + calc.VoucherDiscount
	if calc.DiscountAmount > 0 {
		calc.Breakdown.Discount = &entity.DiscountLine{
			Description: strings.Join(discountParts, " + "),
			Amount:      calc.DiscountAmount,
		}
	}

	calc.TotalPrice = max(0, calc.Subtotal-calc.DiscountAmount)

	return calc, nil
}

// calculateAddOn applies the threshold rule: the add-on only contributes when
// enabled and the quantity reaches the configured minimum.
func (s *pricingService) calculateAddOn(ctx context.Context, key entity.AddOnKey, selection request.AddOnSelection) (float64, *entity.AddOnLine, error) {
	if !selection.Enabled || selection.Quantity <= 0 {
		return 0, nil, nil
	}

	pricePerPerson := s.config.Booking.AddOnPricePerPerson
	minPersons := s.config.Booking.AddOnMinPersons

	addOn, err := s.repo.Pricing.FindAddOn(ctx, key)
	if err != nil {
		return 0, nil, fmt.Errorf("calculate add-on %s: %w", key, err)
	}
	if addOn != nil {
		pricePerPerson = addOn.PricePerPerson
		minPersons = addOn.MinPersons
	}

	if selection.Quantity < minPersons {
		return 0, nil, nil
	}

	total := pricePerPerson * float64(selection.Quantity)
	return total, &entity.AddOnLine{
		PricePerPerson: pricePerPerson,
		Persons:        selection.Quantity,
		Total:          total,
	}, nil
}

func (s *pricingService) calculateMerchandise(ctx context.Context, selections []request.MerchandiseSelection) (float64, *entity.MerchandiseLines, error) {
	if len(selections) == 0 {
		return 0, nil, nil
	}

	lines := &entity.MerchandiseLines{}
	for _, selection := range selections {
		item, err := s.repo.Merchandise.FindByKey(ctx, selection.ItemID)
		if err != nil {
			return 0, nil, fmt.Errorf("calculate merchandise: %w", err)
		}
		if item == nil {
			// Unknown item contributes nothing; the booking still goes through.
			s.log.Warn("Unknown merchandise item in booking",
				zap.String("item_id", selection.ItemID),
				zap.Int("quantity", selection.Quantity),
			)
			continue
		}

		lineTotal := item.Price * float64(selection.Quantity)
		lines.Items = append(lines.Items, entity.MerchandiseLine{
			ItemID:   item.Key,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: selection.Quantity,
			Total:    lineTotal,
		})
		lines.Total += lineTotal
	}

	if len(lines.Items) == 0 {
		return 0, nil, nil
	}
	return lines.Total, lines, nil
}

func (s *pricingService) CreatePricingSnapshot(calc *entity.PriceCalculation) *entity.PricingSnapshot {
	snapshot := &entity.PricingSnapshot{
		PricePerPerson:   calc.Breakdown.Arrangement.PricePerPerson,
		NumberOfPersons:  calc.Breakdown.Arrangement.Persons,
		Arrangement:      calc.Breakdown.Arrangement.Type,
		ArrangementTotal: calc.BasePrice,
		MerchandiseTotal: calc.MerchandiseTotal,
		Subtotal:         calc.Subtotal,
		DiscountAmount:   calc.DiscountAmount,
		FinalTotal:       calc.TotalPrice,
		CalculatedAt:     time.Now(),
	}

	if calc.Breakdown.PreDrink != nil {
		snapshot.PreDrinkPrice = calc.Breakdown.PreDrink.PricePerPerson
		snapshot.PreDrinkTotal = calc.Breakdown.PreDrink.Total
	}
	if calc.Breakdown.AfterParty != nil {
		snapshot.AfterPartyPrice = calc.Breakdown.AfterParty.PricePerPerson
		snapshot.AfterPartyTotal = calc.Breakdown.AfterParty.Total
	}
	if calc.Breakdown.Discount != nil {
		snapshot.DiscountDescription = calc.Breakdown.Discount.Description
	}

	return snapshot
}

func (s *pricingService) GetReservationDisplayPrice(reservation *entity.Reservation) float64 {
	if reservation.PricingSnapshot != nil {
		return reservation.PricingSnapshot.FinalTotal
	}
	return reservation.TotalPrice
}

func (s *pricingService) PreviewPrice(ctx context.Context, req *request.PricePreviewRequest) (*response.PricePreviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Price preview validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", req.EventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil || event == nil {
		return nil, fmt.Errorf("event %s not found", req.EventID)
	}

	if !event.AllowsArrangement(entity.Arrangement(req.Arrangement)) {
		return nil, fmt.Errorf("arrangement %s: %w", req.Arrangement, entity.ErrArrangementNotAllowed)
	}

	calc, err := s.CalculatePrice(ctx, event, &req.BookingForm, req.PromotionCode, req.VoucherCode)
	if err != nil {
		return nil, err
	}

	return &response.PricePreviewResponse{
		Currency:    s.config.Booking.Currency,
		Calculation: *calc,
	}, nil
}

func (s *pricingService) GetPriceTable(ctx context.Context) (*response.PriceTableResponse, error) {
	rules, err := s.repo.Pricing.FindAllRules(ctx)
	if err != nil {
		s.log.Error("Failed to get price rules", zap.Error(err))
		return nil, fmt.Errorf("get price table: %w", err)
	}

	addOns, err := s.repo.Pricing.FindAllAddOns(ctx)
	if err != nil {
		s.log.Error("Failed to get add-on configs", zap.Error(err))
		return nil, fmt.Errorf("get price table: %w", err)
	}

	table := &response.PriceTableResponse{
		Rules:  make([]response.PriceRuleResponse, len(rules)),
		AddOns: make([]response.AddOnResponse, len(addOns)),
	}
	for i, rule := range rules {
		table.Rules[i] = response.PriceRuleResponse{
			DayType:        string(rule.DayType),
			Arrangement:    string(rule.Arrangement),
			PricePerPerson: rule.PricePerPerson,
		}
	}
	for i, addOn := range addOns {
		table.AddOns[i] = response.AddOnResponse{
			Key:            string(addOn.Key),
			PricePerPerson: addOn.PricePerPerson,
			MinPersons:     addOn.MinPersons,
			Description:    addOn.Description,
		}
	}

	return table, nil
}

func (s *pricingService) UpdatePriceRule(ctx context.Context, req *request.UpdatePriceRuleRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update price rule validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	rule := &entity.PriceRule{
		DayType:        entity.DayType(req.DayType),
		Arrangement:    entity.Arrangement(req.Arrangement),
		PricePerPerson: req.PricePerPerson,
	}

	if err := s.repo.Pricing.UpsertRule(ctx, rule); err != nil {
		s.log.Error("Failed to update price rule",
			zap.Error(err),
			zap.String("day_type", req.DayType),
			zap.String("arrangement", req.Arrangement),
		)
		return fmt.Errorf("update price rule: %w", err)
	}

	s.log.Info("Price rule updated",
		zap.String("day_type", req.DayType),
		zap.String("arrangement", req.Arrangement),
		zap.Float64("price_per_person", req.PricePerPerson),
	)

	// Edits must not leave the core table with holes.
	return s.ValidateTable(ctx)
}

func (s *pricingService) DeletePriceRule(ctx context.Context, dayType, arrangement string) error {
	if err := s.repo.Pricing.DeleteRule(ctx, entity.DayType(dayType), entity.Arrangement(arrangement)); err != nil {
		s.log.Error("Failed to delete price rule",
			zap.Error(err),
			zap.String("day_type", dayType),
			zap.String("arrangement", arrangement),
		)
		return fmt.Errorf("delete price rule: %w", err)
	}

	s.log.Info("Price rule deleted",
		zap.String("day_type", dayType),
		zap.String("arrangement", arrangement),
	)
	return nil
}

func (s *pricingService) UpdateAddOn(ctx context.Context, req *request.UpdateAddOnRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update add-on validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	addOn := &entity.AddOnConfig{
		Key:            entity.AddOnKey(req.Key),
		PricePerPerson: req.PricePerPerson,
		MinPersons:     req.MinPersons,
		Description:    req.Description,
	}

	if err := s.repo.Pricing.UpsertAddOn(ctx, addOn); err != nil {
		s.log.Error("Failed to update add-on config",
			zap.Error(err),
			zap.String("key", req.Key),
		)
		return fmt.Errorf("update add-on: %w", err)
	}

	s.log.Info("Add-on config updated",
		zap.String("key", req.Key),
		zap.Float64("price_per_person", req.PricePerPerson),
		zap.Int("min_persons", req.MinPersons),
	)
	return nil
}

func (s *pricingService) GetMerchandise(ctx context.Context) ([]response.MerchandiseItemResponse, error) {
	items, err := s.repo.Merchandise.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get merchandise catalog", zap.Error(err))
		return nil, fmt.Errorf("get merchandise: %w", err)
	}

	itemResponses := make([]response.MerchandiseItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = response.MerchandiseItemToResponse(item)
	}

	return itemResponses, nil
}

func (s *pricingService) UpsertMerchandise(ctx context.Context, req *request.UpdateMerchandiseRequest) (*response.MerchandiseItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update merchandise validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	item, err := s.repo.Merchandise.FindByKey(ctx, req.Key)
	if err != nil {
		return nil, fmt.Errorf("find merchandise item %s: %w", req.Key, err)
	}

	if item == nil {
		item = &entity.MerchandiseItem{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			Key:         req.Key,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Category:    entity.MerchandiseCategory(req.Category),
			InStock:     req.InStock,
		}
		if err := s.repo.Merchandise.Create(ctx, item); err != nil {
			s.log.Error("Failed to create merchandise item",
				zap.Error(err),
				zap.String("key", req.Key),
			)
			return nil, fmt.Errorf("create merchandise item: %w", err)
		}
	} else {
		item.Name = req.Name
		item.Description = req.Description
		item.Price = req.Price
		item.Category = entity.MerchandiseCategory(req.Category)
		item.InStock = req.InStock
		if err := s.repo.Merchandise.Update(ctx, item); err != nil {
			s.log.Error("Failed to update merchandise item",
				zap.Error(err),
				zap.String("key", req.Key),
			)
			return nil, fmt.Errorf("update merchandise item: %w", err)
		}
	}

	s.log.Info("Merchandise item saved",
		zap.String("key", item.Key),
		zap.Float64("price", item.Price),
	)

	resp := response.MerchandiseItemToResponse(item)
	return &resp, nil
}

func (s *pricingService) DeleteMerchandise(ctx context.Context, key string) error {
	if err := s.repo.Merchandise.Delete(ctx, key); err != nil {
		s.log.Error("Failed to delete merchandise item",
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("delete merchandise item: %w", err)
	}

	s.log.Info("Merchandise item deleted", zap.String("key", key))
	return nil
}
