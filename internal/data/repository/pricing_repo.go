package repository

import (
	"context"
	"fmt"

	"theater-booking/internal/data/entity"
	"theater-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PricingRepository stores the price table (day type x arrangement rows) and
// the add-on configuration. Both are admin-editable and loaded at startup.
type PricingRepository interface {
	FindAllRules(ctx context.Context) ([]*entity.PriceRule, error)
	UpsertRule(ctx context.Context, rule *entity.PriceRule) error
	DeleteRule(ctx context.Context, dayType entity.DayType, arrangement entity.Arrangement) error

	FindAddOn(ctx context.Context, key entity.AddOnKey) (*entity.AddOnConfig, error)
	FindAllAddOns(ctx context.Context) ([]*entity.AddOnConfig, error)
	UpsertAddOn(ctx context.Context, addOn *entity.AddOnConfig) error
}

type pricingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPricingRepository(db database.PgxIface, log *zap.Logger) PricingRepository {
	return &pricingRepository{
		db:  db,
		log: log.With(zap.String("repository", "pricing")),
	}
}

func (r *pricingRepository) FindAllRules(ctx context.Context) ([]*entity.PriceRule, error) {
	query := `SELECT day_type, arrangement, price_per_person FROM price_rules ORDER BY day_type, arrangement`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find price rules", zap.Error(err))
		return nil, fmt.Errorf("find price rules: %w", err)
	}
	defer rows.Close()

	var rules []*entity.PriceRule
	for rows.Next() {
		var rule entity.PriceRule
		if err := rows.Scan(&rule.DayType, &rule.Arrangement, &rule.PricePerPerson); err != nil {
			r.log.Error("Failed to scan price rule row", zap.Error(err))
			return nil, fmt.Errorf("scan price rule row: %w", err)
		}
		rules = append(rules, &rule)
	}

	return rules, nil
}

func (r *pricingRepository) UpsertRule(ctx context.Context, rule *entity.PriceRule) error {
	query := `
		INSERT INTO price_rules (day_type, arrangement, price_per_person)
		VALUES ($1, $2, $3)
		ON CONFLICT (day_type, arrangement)
		DO UPDATE SET price_per_person = EXCLUDED.price_per_person
	`

	_, err := r.db.Exec(ctx, query, rule.DayType, rule.Arrangement, rule.PricePerPerson)
	if err != nil {
		r.log.Error("Failed to upsert price rule",
			zap.Error(err),
			zap.String("day_type", string(rule.DayType)),
			zap.String("arrangement", string(rule.Arrangement)),
		)
		return fmt.Errorf("upsert price rule %s/%s: %w", rule.DayType, rule.Arrangement, err)
	}

	return nil
}

func (r *pricingRepository) DeleteRule(ctx context.Context, dayType entity.DayType, arrangement entity.Arrangement) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM price_rules WHERE day_type = $1 AND arrangement = $2`,
		dayType, arrangement,
	)
	if err != nil {
		r.log.Error("Failed to delete price rule",
			zap.Error(err),
			zap.String("day_type", string(dayType)),
			zap.String("arrangement", string(arrangement)),
		)
		return fmt.Errorf("delete price rule %s/%s: %w", dayType, arrangement, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("price rule %s/%s not found", dayType, arrangement)
	}

	return nil
}

func (r *pricingRepository) FindAddOn(ctx context.Context, key entity.AddOnKey) (*entity.AddOnConfig, error) {
	query := `SELECT key, price_per_person, min_persons, description FROM add_ons WHERE key = $1`

	var addOn entity.AddOnConfig
	err := r.db.QueryRow(ctx, query, key).Scan(
		&addOn.Key,
		&addOn.PricePerPerson,
		&addOn.MinPersons,
		&addOn.Description,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find add-on config",
			zap.Error(err),
			zap.String("key", string(key)),
		)
		return nil, fmt.Errorf("find add-on %s: %w", key, err)
	}

	return &addOn, nil
}

func (r *pricingRepository) FindAllAddOns(ctx context.Context) ([]*entity.AddOnConfig, error) {
	query := `SELECT key, price_per_person, min_persons, description FROM add_ons ORDER BY key`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find add-on configs", zap.Error(err))
		return nil, fmt.Errorf("find add-ons: %w", err)
	}
	defer rows.Close()

	var addOns []*entity.AddOnConfig
	for rows.Next() {
		var addOn entity.AddOnConfig
		if err := rows.Scan(&addOn.Key, &addOn.PricePerPerson, &addOn.MinPersons, &addOn.Description); err != nil {
			r.log.Error("Failed to scan add-on row", zap.Error(err))
			return nil, fmt.Errorf("scan add-on row: %w", err)
		}
		addOns = append(addOns, &addOn)
	}

	return addOns, nil
}

func (r *pricingRepository) UpsertAddOn(ctx context.Context, addOn *entity.AddOnConfig) error {
	query := `
		INSERT INTO add_ons (key, price_per_person, min_persons, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key)
		DO UPDATE SET price_per_person = EXCLUDED.price_per_person,
		              min_persons = EXCLUDED.min_persons,
		              description = EXCLUDED.description
	`

	_, err := r.db.Exec(ctx, query, addOn.Key, addOn.PricePerPerson, addOn.MinPersons, addOn.Description)
	if err != nil {
		r.log.Error("Failed to upsert add-on config",
			zap.Error(err),
			zap.String("key", string(addOn.Key)),
		)
		return fmt.Errorf("upsert add-on %s: %w", addOn.Key, err)
	}

	return nil
}
