package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

type CartRepo interface {
	GetByOwner(dbc dbctx.Context, ownerID uint) (*shop.Cart, error)
	Create(dbc dbctx.Context, row *shop.Cart) error
	UpdateTotals(dbc dbctx.Context, cartID uint, totalPrice float64, totalQuantity int) error
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	return &cartRepo{db: db, log: baseLog.With("repo", "CartRepo")}
}

func (r *cartRepo) conn(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *cartRepo) GetByOwner(dbc dbctx.Context, ownerID uint) (*shop.Cart, error) {
	var row shop.Cart
	err := r.conn(dbc).Where("owner_id = ?", ownerID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *cartRepo) Create(dbc dbctx.Context, row *shop.Cart) error {
	return r.conn(dbc).Create(row).Error
}

func (r *cartRepo) UpdateTotals(dbc dbctx.Context, cartID uint, totalPrice float64, totalQuantity int) error {
	return r.conn(dbc).Model(&shop.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"total_price":    totalPrice,
		"total_quantity": totalQuantity,
	}).Error
}

type CartLineRepo interface {
	ListByCart(dbc dbctx.Context, cartID uint) ([]shop.CartLine, error)
	GetByID(dbc dbctx.Context, cartID, lineID uint) (*shop.CartLine, error)
	GetByProduct(dbc dbctx.Context, cartID, productID uint) (*shop.CartLine, error)
	Create(dbc dbctx.Context, row *shop.CartLine) error
	Update(dbc dbctx.Context, row *shop.CartLine) error
	Delete(dbc dbctx.Context, lineID uint) error
	DeleteByCart(dbc dbctx.Context, cartID uint) error
}

type cartLineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartLineRepo(db *gorm.DB, baseLog *logger.Logger) CartLineRepo {
	return &cartLineRepo{db: db, log: baseLog.With("repo", "CartLineRepo")}
}

func (r *cartLineRepo) conn(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *cartLineRepo) ListByCart(dbc dbctx.Context, cartID uint) ([]shop.CartLine, error) {
	var out []shop.CartLine
	if err := r.conn(dbc).Where("cart_id = ?", cartID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cartLineRepo) GetByID(dbc dbctx.Context, cartID, lineID uint) (*shop.CartLine, error) {
	var row shop.CartLine
	err := r.conn(dbc).Where("cart_id = ? AND id = ?", cartID, lineID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *cartLineRepo) GetByProduct(dbc dbctx.Context, cartID, productID uint) (*shop.CartLine, error) {
	var row shop.CartLine
	err := r.conn(dbc).Where("cart_id = ? AND product_id = ?", cartID, productID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *cartLineRepo) Create(dbc dbctx.Context, row *shop.CartLine) error {
	return r.conn(dbc).Create(row).Error
}

func (r *cartLineRepo) Update(dbc dbctx.Context, row *shop.CartLine) error {
	return r.conn(dbc).Save(row).Error
}

func (r *cartLineRepo) Delete(dbc dbctx.Context, lineID uint) error {
	return r.conn(dbc).Delete(&shop.CartLine{}, lineID).Error
}

func (r *cartLineRepo) DeleteByCart(dbc dbctx.Context, cartID uint) error {
	return r.conn(dbc).Where("cart_id = ?", cartID).Delete(&shop.CartLine{}).Error
}
