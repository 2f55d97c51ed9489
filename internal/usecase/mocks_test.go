package usecase

import (
	"context"
	"time"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/data/repository"
	"theater-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The mocks below implement the repository interfaces with overridable func
// fields. Unset funcs return zero values so each test only wires the calls it
// cares about.

type eventRepoMock struct {
	CreateFunc            func(ctx context.Context, event *entity.Event) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindByDateRangeFunc   func(ctx context.Context, from, to time.Time) ([]*entity.Event, error)
	FindAllFunc           func(ctx context.Context, limit, offset int) ([]*entity.Event, error)
	CountFunc             func(ctx context.Context) (int64, error)
	UpdateFunc            func(ctx context.Context, event *entity.Event) error
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	ReserveCapacityFunc   func(ctx context.Context, id uuid.UUID, persons int) (bool, error)
	ReleaseCapacityFunc   func(ctx context.Context, id uuid.UUID, persons int) error
	SetWaitlistActiveFunc func(ctx context.Context, id uuid.UUID, active bool) error
}

func (m *eventRepoMock) Create(ctx context.Context, event *entity.Event) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	return nil
}

func (m *eventRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *eventRepoMock) FindByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error) {
	if m.FindByDateRangeFunc != nil {
		return m.FindByDateRangeFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *eventRepoMock) FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *eventRepoMock) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *eventRepoMock) Update(ctx context.Context, event *entity.Event) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, event)
	}
	return nil
}

func (m *eventRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *eventRepoMock) ReserveCapacity(ctx context.Context, id uuid.UUID, persons int) (bool, error) {
	if m.ReserveCapacityFunc != nil {
		return m.ReserveCapacityFunc(ctx, id, persons)
	}
	return true, nil
}

func (m *eventRepoMock) ReleaseCapacity(ctx context.Context, id uuid.UUID, persons int) error {
	if m.ReleaseCapacityFunc != nil {
		return m.ReleaseCapacityFunc(ctx, id, persons)
	}
	return nil
}

func (m *eventRepoMock) SetWaitlistActive(ctx context.Context, id uuid.UUID, active bool) error {
	if m.SetWaitlistActiveFunc != nil {
		return m.SetWaitlistActiveFunc(ctx, id, active)
	}
	return nil
}

type reservationRepoMock struct {
	CreateFunc                  func(ctx context.Context, reservation *entity.Reservation) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByEventIDFunc           func(ctx context.Context, eventID uuid.UUID) ([]*entity.Reservation, error)
	FindAllFunc                 func(ctx context.Context, limit, offset int) ([]*entity.Reservation, error)
	CountFunc                   func(ctx context.Context) (int64, error)
	UpdateFunc                  func(ctx context.Context, reservation *entity.Reservation) error
	UpdateStatusFunc            func(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error
	DeleteFunc                  func(ctx context.Context, id uuid.UUID) error
	SumActivePersonsByEventFunc func(ctx context.Context, eventID uuid.UUID) (int, error)
}

func (m *reservationRepoMock) Create(ctx context.Context, reservation *entity.Reservation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reservation)
	}
	return nil
}

func (m *reservationRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *reservationRepoMock) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Reservation, error) {
	if m.FindByEventIDFunc != nil {
		return m.FindByEventIDFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *reservationRepoMock) FindAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *reservationRepoMock) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *reservationRepoMock) Update(ctx context.Context, reservation *entity.Reservation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, reservation)
	}
	return nil
}

func (m *reservationRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *reservationRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *reservationRepoMock) SumActivePersonsByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	if m.SumActivePersonsByEventFunc != nil {
		return m.SumActivePersonsByEventFunc(ctx, eventID)
	}
	return 0, nil
}

type promotionRepoMock struct {
	CreateFunc         func(ctx context.Context, promo *entity.PromotionCode) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*entity.PromotionCode, error)
	FindByCodeFunc     func(ctx context.Context, code string) (*entity.PromotionCode, error)
	FindAllFunc        func(ctx context.Context) ([]*entity.PromotionCode, error)
	UpdateFunc         func(ctx context.Context, promo *entity.PromotionCode) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	IncrementUsageFunc func(ctx context.Context, id uuid.UUID) (bool, error)
	DecrementUsageFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *promotionRepoMock) Create(ctx context.Context, promo *entity.PromotionCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, promo)
	}
	return nil
}

func (m *promotionRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.PromotionCode, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *promotionRepoMock) FindByCode(ctx context.Context, code string) (*entity.PromotionCode, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *promotionRepoMock) FindAll(ctx context.Context) ([]*entity.PromotionCode, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *promotionRepoMock) Update(ctx context.Context, promo *entity.PromotionCode) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, promo)
	}
	return nil
}

func (m *promotionRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *promotionRepoMock) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.IncrementUsageFunc != nil {
		return m.IncrementUsageFunc(ctx, id)
	}
	return true, nil
}

func (m *promotionRepoMock) DecrementUsage(ctx context.Context, id uuid.UUID) error {
	if m.DecrementUsageFunc != nil {
		return m.DecrementUsageFunc(ctx, id)
	}
	return nil
}

type voucherRepoMock struct {
	CreateFunc               func(ctx context.Context, voucher *entity.Voucher) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*entity.Voucher, error)
	FindByCodeFunc           func(ctx context.Context, code string) (*entity.Voucher, error)
	FindAllFunc              func(ctx context.Context) ([]*entity.Voucher, error)
	UpdateFunc               func(ctx context.Context, voucher *entity.Voucher) error
	DeleteFunc               func(ctx context.Context, id uuid.UUID) error
	CodeExistsFunc           func(ctx context.Context, code string) (bool, error)
	DecrementValueFunc       func(ctx context.Context, id uuid.UUID, amount float64) (bool, error)
	RestoreValueFunc         func(ctx context.Context, id uuid.UUID, amount float64) error
	AppendUsageFunc          func(ctx context.Context, usage *entity.VoucherUsage) error
	FindUsageByVoucherIDFunc func(ctx context.Context, voucherID uuid.UUID) ([]*entity.VoucherUsage, error)
}

func (m *voucherRepoMock) Create(ctx context.Context, voucher *entity.Voucher) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, voucher)
	}
	return nil
}

func (m *voucherRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *voucherRepoMock) FindByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *voucherRepoMock) FindAll(ctx context.Context) ([]*entity.Voucher, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *voucherRepoMock) Update(ctx context.Context, voucher *entity.Voucher) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, voucher)
	}
	return nil
}

func (m *voucherRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *voucherRepoMock) CodeExists(ctx context.Context, code string) (bool, error) {
	if m.CodeExistsFunc != nil {
		return m.CodeExistsFunc(ctx, code)
	}
	return false, nil
}

func (m *voucherRepoMock) DecrementValue(ctx context.Context, id uuid.UUID, amount float64) (bool, error) {
	if m.DecrementValueFunc != nil {
		return m.DecrementValueFunc(ctx, id, amount)
	}
	return true, nil
}

func (m *voucherRepoMock) RestoreValue(ctx context.Context, id uuid.UUID, amount float64) error {
	if m.RestoreValueFunc != nil {
		return m.RestoreValueFunc(ctx, id, amount)
	}
	return nil
}

func (m *voucherRepoMock) AppendUsage(ctx context.Context, usage *entity.VoucherUsage) error {
	if m.AppendUsageFunc != nil {
		return m.AppendUsageFunc(ctx, usage)
	}
	return nil
}

func (m *voucherRepoMock) FindUsageByVoucherID(ctx context.Context, voucherID uuid.UUID) ([]*entity.VoucherUsage, error) {
	if m.FindUsageByVoucherIDFunc != nil {
		return m.FindUsageByVoucherIDFunc(ctx, voucherID)
	}
	return nil, nil
}

type merchandiseRepoMock struct {
	CreateFunc    func(ctx context.Context, item *entity.MerchandiseItem) error
	FindByKeyFunc func(ctx context.Context, key string) (*entity.MerchandiseItem, error)
	FindAllFunc   func(ctx context.Context) ([]*entity.MerchandiseItem, error)
	UpdateFunc    func(ctx context.Context, item *entity.MerchandiseItem) error
	DeleteFunc    func(ctx context.Context, key string) error
}

func (m *merchandiseRepoMock) Create(ctx context.Context, item *entity.MerchandiseItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *merchandiseRepoMock) FindByKey(ctx context.Context, key string) (*entity.MerchandiseItem, error) {
	if m.FindByKeyFunc != nil {
		return m.FindByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *merchandiseRepoMock) FindAll(ctx context.Context) ([]*entity.MerchandiseItem, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *merchandiseRepoMock) Update(ctx context.Context, item *entity.MerchandiseItem) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, item)
	}
	return nil
}

func (m *merchandiseRepoMock) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

type pricingRepoMock struct {
	FindAllRulesFunc  func(ctx context.Context) ([]*entity.PriceRule, error)
	UpsertRuleFunc    func(ctx context.Context, rule *entity.PriceRule) error
	DeleteRuleFunc    func(ctx context.Context, dayType entity.DayType, arrangement entity.Arrangement) error
	FindAddOnFunc     func(ctx context.Context, key entity.AddOnKey) (*entity.AddOnConfig, error)
	FindAllAddOnsFunc func(ctx context.Context) ([]*entity.AddOnConfig, error)
	UpsertAddOnFunc   func(ctx context.Context, addOn *entity.AddOnConfig) error
}

func (m *pricingRepoMock) FindAllRules(ctx context.Context) ([]*entity.PriceRule, error) {
	if m.FindAllRulesFunc != nil {
		return m.FindAllRulesFunc(ctx)
	}
	return nil, nil
}

func (m *pricingRepoMock) UpsertRule(ctx context.Context, rule *entity.PriceRule) error {
	if m.UpsertRuleFunc != nil {
		return m.UpsertRuleFunc(ctx, rule)
	}
	return nil
}

func (m *pricingRepoMock) DeleteRule(ctx context.Context, dayType entity.DayType, arrangement entity.Arrangement) error {
	if m.DeleteRuleFunc != nil {
		return m.DeleteRuleFunc(ctx, dayType, arrangement)
	}
	return nil
}

func (m *pricingRepoMock) FindAddOn(ctx context.Context, key entity.AddOnKey) (*entity.AddOnConfig, error) {
	if m.FindAddOnFunc != nil {
		return m.FindAddOnFunc(ctx, key)
	}
	return nil, nil
}

func (m *pricingRepoMock) FindAllAddOns(ctx context.Context) ([]*entity.AddOnConfig, error) {
	if m.FindAllAddOnsFunc != nil {
		return m.FindAllAddOnsFunc(ctx)
	}
	return nil, nil
}

func (m *pricingRepoMock) UpsertAddOn(ctx context.Context, addOn *entity.AddOnConfig) error {
	if m.UpsertAddOnFunc != nil {
		return m.UpsertAddOnFunc(ctx, addOn)
	}
	return nil
}

type waitlistRepoMock struct {
	CreateFunc              func(ctx context.Context, entry *entity.WaitlistEntry) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*entity.WaitlistEntry, error)
	FindByEventIDFunc       func(ctx context.Context, eventID uuid.UUID) ([]*entity.WaitlistEntry, error)
	CountPendingByEventFunc func(ctx context.Context, eventID uuid.UUID) (int64, error)
	UpdateStatusFunc        func(ctx context.Context, id uuid.UUID, status entity.WaitlistStatus) error
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
}

func (m *waitlistRepoMock) Create(ctx context.Context, entry *entity.WaitlistEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *waitlistRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.WaitlistEntry, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *waitlistRepoMock) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.WaitlistEntry, error) {
	if m.FindByEventIDFunc != nil {
		return m.FindByEventIDFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *waitlistRepoMock) CountPendingByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	if m.CountPendingByEventFunc != nil {
		return m.CountPendingByEventFunc(ctx, eventID)
	}
	return 0, nil
}

func (m *waitlistRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.WaitlistStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *waitlistRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// publisherMock records every published message.
type publisherMock struct {
	published []publishedMessage
	err       error
}

type publishedMessage struct {
	routingKey string
	payload    any
}

func (m *publisherMock) Publish(routingKey string, payload any) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, publishedMessage{routingKey: routingKey, payload: payload})
	return nil
}

// testMocks bundles one mock per repository so tests can override behavior
// before building services.
type testMocks struct {
	event       *eventRepoMock
	reservation *reservationRepoMock
	promotion   *promotionRepoMock
	voucher     *voucherRepoMock
	merchandise *merchandiseRepoMock
	pricing     *pricingRepoMock
	waitlist    *waitlistRepoMock
}

func newTestMocks() *testMocks {
	return &testMocks{
		event:       &eventRepoMock{},
		reservation: &reservationRepoMock{},
		promotion:   &promotionRepoMock{},
		voucher:     &voucherRepoMock{},
		merchandise: &merchandiseRepoMock{},
		pricing:     &pricingRepoMock{},
		waitlist:    &waitlistRepoMock{},
	}
}

func (m *testMocks) repo() *repository.Repository {
	return &repository.Repository{
		Event:       m.event,
		Reservation: m.reservation,
		Promotion:   m.promotion,
		Voucher:     m.voucher,
		Merchandise: m.merchandise,
		Pricing:     m.pricing,
		Waitlist:    m.waitlist,
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			WeekendDays:         []string{"Friday", "Saturday"},
			AddOnMinPersons:     25,
			AddOnPricePerPerson: 15.0,
			DefaultCapacity:     230,
			Currency:            "EUR",
			VoucherCodeAttempts: 5,
		},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// fullPriceTable covers every core day type and arrangement, priced so tests
// can tell rows apart.
func fullPriceTable() []*entity.PriceRule {
	return []*entity.PriceRule{
		{DayType: entity.DayTypeWeekday, Arrangement: entity.ArrangementBWF, PricePerPerson: 62.5},
		{DayType: entity.DayTypeWeekday, Arrangement: entity.ArrangementBWFM, PricePerPerson: 72.5},
		{DayType: entity.DayTypeWeekend, Arrangement: entity.ArrangementBWF, PricePerPerson: 70},
		{DayType: entity.DayTypeWeekend, Arrangement: entity.ArrangementBWFM, PricePerPerson: 80},
		{DayType: entity.DayTypeMatinee, Arrangement: entity.ArrangementBWF, PricePerPerson: 55},
		{DayType: entity.DayTypeMatinee, Arrangement: entity.ArrangementBWFM, PricePerPerson: 65},
		{DayType: entity.DayTypeCareHeroes, Arrangement: entity.ArrangementBWF, PricePerPerson: 50},
		{DayType: entity.DayTypeCareHeroes, Arrangement: entity.ArrangementBWFM, PricePerPerson: 60},
	}
}
