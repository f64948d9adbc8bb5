package services

import (
	"context"
	"sync"
	"time"

	"github.com/CATyPH67/shop-api/internal/cache"
	"github.com/CATyPH67/shop-api/internal/data/repos"
	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
)

// memStore is an in-process cache.Store. TTLs are recorded but never
// enforced; expiry behavior is covered by the redis store's own tests.
type memStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	sets    int
}

func newMemStore() *memStore {
	return &memStore{
		entries: map[string][]byte{},
		ttls:    map[string]time.Duration{},
	}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return data, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	m.ttls[key] = ttl
	m.sets++
	return nil
}

type fakeCategoryRepo struct {
	rows  []shop.Category
	calls int
}

func (f *fakeCategoryRepo) ListPage(_ dbctx.Context, limit, offset int) ([]shop.Category, error) {
	f.calls++
	if offset >= len(f.rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[offset:end], nil
}

type fakeProductRepo struct {
	rows  []shop.Product
	byID  map[uint]*shop.Product
	calls int
}

func (f *fakeProductRepo) GetByID(_ dbctx.Context, id uint) (*shop.Product, error) {
	f.calls++
	return f.byID[id], nil
}

func (f *fakeProductRepo) ListFiltered(_ dbctx.Context, flt repos.ProductFilter) ([]shop.Product, error) {
	f.calls++
	if flt.Offset >= len(f.rows) {
		return nil, nil
	}
	end := len(f.rows)
	if flt.Limit > 0 && flt.Offset+flt.Limit < end {
		end = flt.Offset + flt.Limit
	}
	return f.rows[flt.Offset:end], nil
}
