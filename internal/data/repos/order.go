package repos

import (
	"gorm.io/gorm"

	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

type OrderRepo interface {
	Create(dbc dbctx.Context, row *shop.Order) error
	ListByOwner(dbc dbctx.Context, ownerID uint) ([]shop.Order, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

func (r *orderRepo) conn(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *orderRepo) Create(dbc dbctx.Context, row *shop.Order) error {
	return r.conn(dbc).Create(row).Error
}

func (r *orderRepo) ListByOwner(dbc dbctx.Context, ownerID uint) ([]shop.Order, error) {
	var out []shop.Order
	if err := r.conn(dbc).Where("owner_id = ?", ownerID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type OrderLineRepo interface {
	Create(dbc dbctx.Context, row *shop.OrderLine) error
	ListByOrder(dbc dbctx.Context, orderID uint) ([]shop.OrderLine, error)
}

type orderLineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderLineRepo(db *gorm.DB, baseLog *logger.Logger) OrderLineRepo {
	return &orderLineRepo{db: db, log: baseLog.With("repo", "OrderLineRepo")}
}

func (r *orderLineRepo) conn(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *orderLineRepo) Create(dbc dbctx.Context, row *shop.OrderLine) error {
	return r.conn(dbc).Create(row).Error
}

func (r *orderLineRepo) ListByOrder(dbc dbctx.Context, orderID uint) ([]shop.OrderLine, error) {
	var out []shop.OrderLine
	if err := r.conn(dbc).Where("order_id = ?", orderID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
