package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ProductFilter narrows a category's product listing. Nil bounds are not
// applied; Sort is one of the Sort* constants or empty.
type ProductFilter struct {
	CategoryID uint
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
	Limit      int
	Offset     int
}

type ProductRepo interface {
	GetByID(dbc dbctx.Context, id uint) (*shop.Product, error)
	ListFiltered(dbc dbctx.Context, f ProductFilter) ([]shop.Product, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) conn(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *productRepo) GetByID(dbc dbctx.Context, id uint) (*shop.Product, error) {
	var row shop.Product
	err := r.conn(dbc).Preload("Size").Preload("Categories").First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *productRepo) ListFiltered(dbc dbctx.Context, f ProductFilter) ([]shop.Product, error) {
	q := r.conn(dbc).Model(&shop.Product{}).
		Joins("JOIN product_category pc ON pc.product_id = products.id").
		Where("pc.category_id = ?", f.CategoryID).
		Preload("Size").Preload("Categories")

	if f.MinPrice != nil {
		q = q.Where("products.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("products.price <= ?", *f.MaxPrice)
	}
	switch f.Sort {
	case SortPriceAsc:
		q = q.Order("products.price ASC, products.id ASC")
	case SortPriceDesc:
		q = q.Order("products.price DESC, products.id ASC")
	default:
		q = q.Order("products.id ASC")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var out []shop.Product
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
