package aggregates

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	return d
}

// executeWrite runs fn inside one transaction and maps the outcome onto the
// domain error taxonomy. Expected failures pass through untouched; anything
// else rolls back and surfaces as an opaque internal error.
func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "shop.write"
	}
	err := deps.Runner.InTx(ctx, fn)
	mapped := MapError(op, err)
	if mapped != nil && deps.Log != nil {
		deps.Log.Warn("aggregate write failed", "op", op, "error", mapped)
	}
	return mapped
}
