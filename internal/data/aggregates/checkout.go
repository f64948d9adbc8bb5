package aggregates

import (
	"context"

	"github.com/CATyPH67/shop-api/internal/data/repos"
	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
)

type CheckoutAggregateDeps struct {
	Base BaseDeps

	Carts      repos.CartRepo
	Lines      repos.CartLineRepo
	Orders     repos.OrderRepo
	OrderLines repos.OrderLineRepo
}

type checkoutAggregate struct {
	deps CheckoutAggregateDeps
}

func NewCheckoutAggregate(deps CheckoutAggregateDeps) shop.CheckoutAggregate {
	deps.Base = deps.Base.withDefaults()
	return &checkoutAggregate{deps: deps}
}

// Checkout runs validating and committing inside one transaction. The order
// totals are copied verbatim from the cart row, not recomputed from lines,
// so the committed order always matches the totals the cart advertised.
func (a *checkoutAggregate) Checkout(ctx context.Context, ownerID uint) (shop.CheckoutResult, error) {
	const op = "Shop.Checkout.Checkout"
	out := shop.CheckoutResult{State: shop.CheckoutIdle}
	if ownerID == 0 {
		out.State = shop.CheckoutAborted
		return out, shop.NewError(shop.CodeInvalidArgument, op, "missing owner id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		out.State = shop.CheckoutValidating
		cart, err := a.deps.Carts.GetByOwner(dbc, ownerID)
		if err != nil {
			return err
		}
		if cart == nil {
			return shop.NewError(shop.CodeEmptyCart, op, "cart is empty", nil)
		}
		lines, err := a.deps.Lines.ListByCart(dbc, cart.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return shop.NewError(shop.CodeEmptyCart, op, "cart is empty", nil)
		}

		out.State = shop.CheckoutCommitting
		order := &shop.Order{
			OwnerID:       ownerID,
			TotalPrice:    cart.TotalPrice,
			TotalQuantity: cart.TotalQuantity,
		}
		if err := a.deps.Orders.Create(dbc, order); err != nil {
			return err
		}

		orderLines := make([]shop.OrderLine, 0, len(lines))
		for _, l := range lines {
			ol := shop.OrderLine{
				OrderID:       order.ID,
				ProductID:     l.ProductID,
				Quantity:      l.Quantity,
				PriceSnapshot: l.PriceSnapshot,
			}
			if err := a.deps.OrderLines.Create(dbc, &ol); err != nil {
				return err
			}
			orderLines = append(orderLines, ol)
		}

		if err := a.deps.Lines.DeleteByCart(dbc, cart.ID); err != nil {
			return err
		}
		if err := a.deps.Carts.UpdateTotals(dbc, cart.ID, 0, 0); err != nil {
			return err
		}

		out.Order = *order
		out.Lines = orderLines
		return nil
	})
	if err != nil {
		out.State = shop.CheckoutAborted
		out.Order = shop.Order{}
		out.Lines = nil
		return out, err
	}
	out.State = shop.CheckoutCompleted
	return out, nil
}
