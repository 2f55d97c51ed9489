package entity

type MerchandiseCategory string

const (
	MerchandiseCategoryClothing    MerchandiseCategory = "clothing"
	MerchandiseCategoryAccessories MerchandiseCategory = "accessories"
	MerchandiseCategoryOther       MerchandiseCategory = "other"
)

type MerchandiseItem struct {
	BaseSimple
	Key         string              `db:"key"`
	Name        string              `db:"name"`
	Description string              `db:"description"`
	Price       float64             `db:"price"`
	Category    MerchandiseCategory `db:"category"`
	InStock     bool                `db:"in_stock"`
}
