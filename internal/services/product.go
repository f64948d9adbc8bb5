package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/CATyPH67/shop-api/internal/cache"
	"github.com/CATyPH67/shop-api/internal/data/aggregates"
	"github.com/CATyPH67/shop-api/internal/data/repos"
	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

const (
	productsTTL = 60 * time.Second

	productsNamespace = "products"
	productNamespace  = "product"
)

type ProductQuery struct {
	CategoryID uint
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
	Limit      int
	Offset     int
}

type ProductView struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Price       float64  `json:"price"`
	Size        string   `json:"size,omitempty"`
	Categories  []string `json:"categories"`
}

type ProductPage struct {
	Items   []ProductView `json:"items"`
	HasNext bool          `json:"has_next"`
}

type ProductService struct {
	log      *logger.Logger
	products repos.ProductRepo
	cache    cache.Store
	sfg      singleflight.Group
}

func NewProductService(log *logger.Logger, products repos.ProductRepo, store cache.Store) *ProductService {
	return &ProductService{
		log:      log.With("service", "ProductService"),
		products: products,
		cache:    store,
	}
}

// List returns one page of a category's products, read through the cache
// under the products namespace. The same limit+1 probe as the category page
// derives HasNext.
func (s *ProductService) List(ctx context.Context, q ProductQuery) (ProductPage, error) {
	const op = "Shop.ProductService.List"
	if q.Limit <= 0 {
		return ProductPage{}, shop.NewError(shop.CodeInvalidArgument, op, "limit must be positive", nil)
	}
	if q.Offset < 0 {
		return ProductPage{}, shop.NewError(shop.CodeInvalidArgument, op, "offset cannot be negative", nil)
	}
	switch q.Sort {
	case "", repos.SortPriceAsc, repos.SortPriceDesc:
	default:
		return ProductPage{}, shop.NewError(shop.CodeInvalidArgument, op, "unknown sort order", nil)
	}

	key := cache.Call{
		Namespace: productsNamespace,
		Params: map[string]any{
			"category_id": q.CategoryID,
			"min_price":   derefFloat(q.MinPrice),
			"max_price":   derefFloat(q.MaxPrice),
			"sort":        q.Sort,
			"limit":       q.Limit,
			"offset":      q.Offset,
		},
	}.Key()

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		if data, err := s.cacheGet(ctx, key); err == nil {
			var page ProductPage
			if err := json.Unmarshal(data, &page); err == nil {
				return page, nil
			}
			s.log.Warn("cache entry unreadable", "key", key)
		}

		f := repos.ProductFilter{
			CategoryID: q.CategoryID,
			MinPrice:   q.MinPrice,
			MaxPrice:   q.MaxPrice,
			Sort:       q.Sort,
			Limit:      q.Limit + 1,
			Offset:     q.Offset,
		}
		rows, err := s.products.ListFiltered(dbctx.Context{Ctx: ctx}, f)
		if err != nil {
			return nil, aggregates.MapError(op, err)
		}
		hasNext := len(rows) > q.Limit
		if hasNext {
			rows = rows[:q.Limit]
		}
		items := make([]ProductView, 0, len(rows))
		for i := range rows {
			items = append(items, buildProductView(&rows[i]))
		}
		page := ProductPage{Items: items, HasNext: hasNext}

		s.cacheSet(ctx, key, page)
		return page, nil
	})
	if err != nil {
		return ProductPage{}, err
	}
	return v.(ProductPage), nil
}

// Get returns one product by id, cached under the product namespace.
// Absent products are not cached.
func (s *ProductService) Get(ctx context.Context, productID uint) (ProductView, error) {
	const op = "Shop.ProductService.Get"

	key := cache.Call{Namespace: productNamespace, Args: []any{productID}}.Key()

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		if data, err := s.cacheGet(ctx, key); err == nil {
			var view ProductView
			if err := json.Unmarshal(data, &view); err == nil {
				return view, nil
			}
			s.log.Warn("cache entry unreadable", "key", key)
		}

		row, err := s.products.GetByID(dbctx.Context{Ctx: ctx}, productID)
		if err != nil {
			return nil, aggregates.MapError(op, err)
		}
		if row == nil {
			return nil, shop.NewError(shop.CodeNotFound, op, "product not found", nil)
		}
		view := buildProductView(row)

		s.cacheSet(ctx, key, view)
		return view, nil
	})
	if err != nil {
		return ProductView{}, err
	}
	return v.(ProductView), nil
}

func (s *ProductService) cacheGet(ctx context.Context, key string) ([]byte, error) {
	if s.cache == nil {
		return nil, cache.ErrMiss
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("cache get failed", "key", key, "error", err)
	}
	return data, err
}

func (s *ProductService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, productsTTL); err != nil {
		s.log.Warn("cache set failed", "key", key, "error", err)
	}
}

func buildProductView(p *shop.Product) ProductView {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	sizeName := ""
	if p.Size != nil {
		sizeName = p.Size.Name
	}
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Size:        sizeName,
		Categories:  names,
	}
}

// derefFloat normalizes an optional bound for key derivation: identical
// bounds must render identically whether set or absent.
func derefFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
