package aggregates

import (
	"context"

	"github.com/CATyPH67/shop-api/internal/data/repos"
	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
)

type CartAggregateDeps struct {
	Base BaseDeps

	Carts repos.CartRepo
	Lines repos.CartLineRepo
}

type cartAggregate struct {
	deps CartAggregateDeps
}

func NewCartAggregate(deps CartAggregateDeps) shop.CartAggregate {
	deps.Base = deps.Base.withDefaults()
	return &cartAggregate{deps: deps}
}

func (a *cartAggregate) GetOrCreate(ctx context.Context, ownerID uint) (shop.CartSnapshot, error) {
	const op = "Shop.Cart.GetOrCreate"
	var out shop.CartSnapshot
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		cart, err := a.loadOrCreateCart(dbc, op, ownerID)
		if err != nil {
			return err
		}
		lines, err := a.deps.Lines.ListByCart(dbc, cart.ID)
		if err != nil {
			return err
		}
		out = shop.CartSnapshot{Cart: *cart, Lines: lines}
		return nil
	})
	return out, err
}

func (a *cartAggregate) AddLine(ctx context.Context, in shop.AddLineInput) (shop.CartSnapshot, error) {
	const op = "Shop.Cart.AddLine"
	var out shop.CartSnapshot
	if in.Quantity <= 0 {
		return out, shop.NewError(shop.CodeInvalidArgument, op, "quantity must be positive", nil)
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		cart, err := a.loadOrCreateCart(dbc, op, in.OwnerID)
		if err != nil {
			return err
		}

		line, err := a.deps.Lines.GetByProduct(dbc, cart.ID, in.ProductID)
		if err != nil {
			return err
		}
		if line != nil {
			// Merge into the existing line; the snapshot is recomputed from
			// the current unit price, not accumulated.
			line.Quantity += in.Quantity
			line.PriceSnapshot = in.UnitPrice * float64(line.Quantity)
			if err := a.deps.Lines.Update(dbc, line); err != nil {
				return err
			}
		} else {
			line = &shop.CartLine{
				CartID:        cart.ID,
				ProductID:     in.ProductID,
				Quantity:      in.Quantity,
				PriceSnapshot: in.UnitPrice * float64(in.Quantity),
			}
			if err := a.deps.Lines.Create(dbc, line); err != nil {
				return err
			}
		}

		snap, err := a.commitTotals(dbc, cart)
		if err != nil {
			return err
		}
		out = snap
		return nil
	})
	return out, err
}

func (a *cartAggregate) SetLine(ctx context.Context, in shop.SetLineInput) (shop.CartSnapshot, error) {
	const op = "Shop.Cart.SetLine"
	var out shop.CartSnapshot
	if in.Quantity < 0 {
		return out, shop.NewError(shop.CodeInvalidArgument, op, "quantity cannot be negative", nil)
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		cart, err := a.deps.Carts.GetByOwner(dbc, in.OwnerID)
		if err != nil {
			return err
		}
		if cart == nil {
			return shop.NewError(shop.CodeNotFound, op, "cart not found", nil)
		}
		line, err := a.deps.Lines.GetByID(dbc, cart.ID, in.LineID)
		if err != nil {
			return err
		}
		if line == nil {
			return shop.NewError(shop.CodeNotFound, op, "cart line not found", nil)
		}

		if in.Quantity == 0 {
			if err := a.deps.Lines.Delete(dbc, line.ID); err != nil {
				return err
			}
		} else {
			line.Quantity = in.Quantity
			line.PriceSnapshot = in.UnitPrice * float64(in.Quantity)
			if err := a.deps.Lines.Update(dbc, line); err != nil {
				return err
			}
		}

		snap, err := a.commitTotals(dbc, cart)
		if err != nil {
			return err
		}
		out = snap
		return nil
	})
	return out, err
}

func (a *cartAggregate) RemoveLine(ctx context.Context, in shop.RemoveLineInput) (shop.CartSnapshot, error) {
	const op = "Shop.Cart.RemoveLine"
	var out shop.CartSnapshot
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		cart, err := a.deps.Carts.GetByOwner(dbc, in.OwnerID)
		if err != nil {
			return err
		}
		if cart == nil {
			return shop.NewError(shop.CodeNotFound, op, "cart not found", nil)
		}
		line, err := a.deps.Lines.GetByID(dbc, cart.ID, in.LineID)
		if err != nil {
			return err
		}
		if line == nil {
			return shop.NewError(shop.CodeNotFound, op, "cart line not found", nil)
		}
		if err := a.deps.Lines.Delete(dbc, line.ID); err != nil {
			return err
		}

		snap, err := a.commitTotals(dbc, cart)
		if err != nil {
			return err
		}
		out = snap
		return nil
	})
	return out, err
}

func (a *cartAggregate) loadOrCreateCart(dbc dbctx.Context, op string, ownerID uint) (*shop.Cart, error) {
	if ownerID == 0 {
		return nil, shop.NewError(shop.CodeInvalidArgument, op, "missing owner id", nil)
	}
	cart, err := a.deps.Carts.GetByOwner(dbc, ownerID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &shop.Cart{OwnerID: ownerID}
	// The unique index on owner_id turns a concurrent duplicate create into
	// a conflict error rather than a second cart.
	if err := a.deps.Carts.Create(dbc, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// commitTotals recomputes the cart totals from its current line set and
// persists them as the final step of the enclosing transaction. No mutating
// operation returns before this runs.
func (a *cartAggregate) commitTotals(dbc dbctx.Context, cart *shop.Cart) (shop.CartSnapshot, error) {
	lines, err := a.deps.Lines.ListByCart(dbc, cart.ID)
	if err != nil {
		return shop.CartSnapshot{}, err
	}
	totalPrice, totalQuantity := cartTotals(lines)
	if err := a.deps.Carts.UpdateTotals(dbc, cart.ID, totalPrice, totalQuantity); err != nil {
		return shop.CartSnapshot{}, err
	}
	cart.TotalPrice = totalPrice
	cart.TotalQuantity = totalQuantity
	return shop.CartSnapshot{Cart: *cart, Lines: lines}, nil
}

// cartTotals sums the line set. Pure; kept separate so the invariant can be
// checked without a store.
func cartTotals(lines []shop.CartLine) (totalPrice float64, totalQuantity int) {
	for _, l := range lines {
		totalPrice += l.PriceSnapshot
		totalQuantity += l.Quantity
	}
	return totalPrice, totalQuantity
}
