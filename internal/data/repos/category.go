package repos

import (
	"gorm.io/gorm"

	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

type CategoryRepo interface {
	// ListPage returns up to limit rows ordered by ascending id starting at
	// offset. Callers probe for a next page by requesting limit+1 rows.
	ListPage(dbc dbctx.Context, limit, offset int) ([]shop.Category, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (r *categoryRepo) conn(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *categoryRepo) ListPage(dbc dbctx.Context, limit, offset int) ([]shop.Category, error) {
	var out []shop.Category
	if err := r.conn(dbc).Order("id ASC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
