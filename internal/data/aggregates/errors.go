package aggregates

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/CATyPH67/shop-api/internal/domain/shop"
)

// MapError maps infrastructure failures into domain error codes. Errors
// already carrying a code pass through unchanged; storage internals never
// leak into the surfaced message.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*shop.Error); ok {
		return err
	}
	var shopErr *shop.Error
	if errors.As(err, &shopErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shop.Wrap(shop.CodeNotFound, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shop.Wrap(shop.CodeConflict, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505": // unique_violation
			return shop.Wrap(shop.CodeConflict, op, err)
		case "23503": // foreign_key_violation
			return shop.NewError(shop.CodeInvalidArgument, op, "referenced row does not exist", err)
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") {
		return shop.Wrap(shop.CodeConflict, op, err)
	}

	return shop.NewError(shop.CodeInternal, op, "storage failure", err)
}
