package repository

import (
	"context"
	"fmt"

	"theater-booking/internal/data/entity"
	"theater-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MerchandiseRepository is the merchandise catalog boundary: pricing only
// needs lookup by item key; the admin surface manages the catalog.
type MerchandiseRepository interface {
	Create(ctx context.Context, item *entity.MerchandiseItem) error
	FindByKey(ctx context.Context, key string) (*entity.MerchandiseItem, error)
	FindAll(ctx context.Context) ([]*entity.MerchandiseItem, error)
	Update(ctx context.Context, item *entity.MerchandiseItem) error
	Delete(ctx context.Context, key string) error
}

type merchandiseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMerchandiseRepository(db database.PgxIface, log *zap.Logger) MerchandiseRepository {
	return &merchandiseRepository{
		db:  db,
		log: log.With(zap.String("repository", "merchandise")),
	}
}

const merchandiseColumns = `id, key, name, description, price, category, in_stock, created_at`

func (r *merchandiseRepository) Create(ctx context.Context, item *entity.MerchandiseItem) error {
	query := `
		INSERT INTO merchandise_items (id, key, name, description, price, category, in_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.Key,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		item.InStock,
		item.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create merchandise item",
			zap.Error(err),
			zap.String("key", item.Key),
		)
		return fmt.Errorf("create merchandise item %s: %w", item.Key, err)
	}

	return nil
}

func (r *merchandiseRepository) FindByKey(ctx context.Context, key string) (*entity.MerchandiseItem, error) {
	query := `SELECT ` + merchandiseColumns + ` FROM merchandise_items WHERE key = $1`

	var item entity.MerchandiseItem
	err := r.db.QueryRow(ctx, query, key).Scan(
		&item.ID,
		&item.Key,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.InStock,
		&item.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find merchandise item",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("find merchandise item %s: %w", key, err)
	}

	return &item, nil
}

func (r *merchandiseRepository) FindAll(ctx context.Context) ([]*entity.MerchandiseItem, error) {
	query := `SELECT ` + merchandiseColumns + ` FROM merchandise_items ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find merchandise items", zap.Error(err))
		return nil, fmt.Errorf("find merchandise items: %w", err)
	}
	defer rows.Close()

	var items []*entity.MerchandiseItem
	for rows.Next() {
		var item entity.MerchandiseItem
		err := rows.Scan(
			&item.ID,
			&item.Key,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.Category,
			&item.InStock,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan merchandise row", zap.Error(err))
			return nil, fmt.Errorf("scan merchandise row: %w", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *merchandiseRepository) Update(ctx context.Context, item *entity.MerchandiseItem) error {
	query := `
		UPDATE merchandise_items
		SET name = $2, description = $3, price = $4, category = $5, in_stock = $6
		WHERE key = $1
	`

	result, err := r.db.Exec(ctx, query,
		item.Key,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		item.InStock,
	)

	if err != nil {
		r.log.Error("Failed to update merchandise item",
			zap.Error(err),
			zap.String("key", item.Key),
		)
		return fmt.Errorf("update merchandise item %s: %w", item.Key, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("merchandise item %s not found", item.Key)
	}

	return nil
}

func (r *merchandiseRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM merchandise_items WHERE key = $1`, key)
	if err != nil {
		r.log.Error("Failed to delete merchandise item",
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("delete merchandise item %s: %w", key, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("merchandise item %s not found", key)
	}

	return nil
}
