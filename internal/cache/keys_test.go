package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyRendersNamespaceArgsAndSortedParams(t *testing.T) {
	c := Call{
		Namespace: "products",
		Args:      []any{uint(7)},
		Params: map[string]any{
			"offset": 0,
			"limit":  20,
			"sort":   "price_asc",
		},
	}
	assert.Equal(t, "products:7:limit=20:offset=0:sort=price_asc", c.Key())
}

func TestKeyIsStableAcrossCallSites(t *testing.T) {
	// Build the same descriptor through two differently shaped paths; the
	// map iteration order must never leak into the key.
	build := func(params map[string]any) string {
		return Call{Namespace: "categories", Params: params}.Key()
	}
	a := build(map[string]any{"limit": 2, "offset": 4})
	b := build(map[string]any{"offset": 4, "limit": 2})
	assert.Equal(t, a, b)
	assert.Equal(t, "categories:limit=2:offset=4", a)
}

func TestKeyExcludesTransportParams(t *testing.T) {
	c := Call{
		Namespace: "categories",
		Params: map[string]any{
			"request":  struct{ addr string }{"10.0.0.1"},
			"response": struct{}{},
			"limit":    2,
			"offset":   0,
		},
	}
	assert.Equal(t, "categories:limit=2:offset=0", c.Key())
}

func TestKeyPreservesArgOrder(t *testing.T) {
	a := Call{Namespace: "n", Args: []any{1, 2}}.Key()
	b := Call{Namespace: "n", Args: []any{2, 1}}.Key()
	assert.NotEqual(t, a, b)
}

func TestKeyRendersNilParamValues(t *testing.T) {
	c := Call{
		Namespace: "products",
		Params:    map[string]any{"min_price": nil, "max_price": 99.5},
	}
	assert.Equal(t, "products:max_price=99.5:min_price=<nil>", c.Key())
}
