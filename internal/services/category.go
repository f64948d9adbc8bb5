package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/CATyPH67/shop-api/internal/cache"
	"github.com/CATyPH67/shop-api/internal/catalog"
	"github.com/CATyPH67/shop-api/internal/data/aggregates"
	"github.com/CATyPH67/shop-api/internal/data/repos"
	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

// categoriesTTL bounds how stale a cached page may be. Entries are never
// invalidated on writes; a read can observe data up to one TTL window old.
const categoriesTTL = 60 * time.Second

const categoriesNamespace = "categories"

type CategoryPage struct {
	Items   []*catalog.Node `json:"items"`
	HasNext bool            `json:"has_next"`
}

type CategoryService struct {
	log        *logger.Logger
	categories repos.CategoryRepo
	cache      cache.Store
	sfg        singleflight.Group // prevents cache stampede
}

func NewCategoryService(log *logger.Logger, categories repos.CategoryRepo, store cache.Store) *CategoryService {
	return &CategoryService{
		log:        log.With("service", "CategoryService"),
		categories: categories,
		cache:      store,
	}
}

// List returns one page of the category forest. It fetches limit+1 rows to
// probe for a next page without a count query, trims to limit, then builds
// the forest over the trimmed rows only.
func (s *CategoryService) List(ctx context.Context, limit, offset int) (CategoryPage, error) {
	const op = "Shop.CategoryService.List"
	if limit <= 0 {
		return CategoryPage{}, shop.NewError(shop.CodeInvalidArgument, op, "limit must be positive", nil)
	}
	if offset < 0 {
		return CategoryPage{}, shop.NewError(shop.CodeInvalidArgument, op, "offset cannot be negative", nil)
	}

	key := cache.Call{
		Namespace: categoriesNamespace,
		Params:    map[string]any{"limit": limit, "offset": offset},
	}.Key()

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		if page, ok := s.cachedPage(ctx, key); ok {
			return page, nil
		}

		rows, err := s.categories.ListPage(dbctx.Context{Ctx: ctx}, limit+1, offset)
		if err != nil {
			return nil, aggregates.MapError(op, err)
		}
		hasNext := len(rows) > limit
		if hasNext {
			rows = rows[:limit]
		}
		page := CategoryPage{Items: catalog.BuildForest(rows), HasNext: hasNext}

		s.storePage(ctx, key, page)
		return page, nil
	})
	if err != nil {
		return CategoryPage{}, err
	}
	return v.(CategoryPage), nil
}

func (s *CategoryService) cachedPage(ctx context.Context, key string) (CategoryPage, bool) {
	if s.cache == nil {
		return CategoryPage{}, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("cache get failed", "key", key, "error", err)
		}
		return CategoryPage{}, false
	}
	var page CategoryPage
	if err := json.Unmarshal(data, &page); err != nil {
		s.log.Warn("cache entry unreadable", "key", key, "error", err)
		return CategoryPage{}, false
	}
	return page, true
}

func (s *CategoryService) storePage(ctx context.Context, key string, page CategoryPage) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		s.log.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, categoriesTTL); err != nil {
		s.log.Warn("cache set failed", "key", key, "error", err)
	}
}
