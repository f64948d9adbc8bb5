package shop

import "context"

// CartSnapshot is the observable state of a cart after a committed
// operation: the cart row plus its full line set.
type CartSnapshot struct {
	Cart  Cart
	Lines []CartLine
}

type AddLineInput struct {
	OwnerID   uint
	ProductID uint
	Quantity  int
	UnitPrice float64
}

type SetLineInput struct {
	OwnerID   uint
	LineID    uint
	Quantity  int
	UnitPrice float64
}

type RemoveLineInput struct {
	OwnerID uint
	LineID  uint
}

// CartAggregate is the single source of truth for cart contents and totals.
//
// Every mutating method commits its write together with the totals
// recompute as one unit, so cart.total_price equals the sum of line price
// snapshots and cart.total_quantity equals the sum of line quantities after
// every observable state.
//
// Failures return *shop.Error with codes CodeInvalidArgument, CodeNotFound,
// CodeConflict or CodeInternal.
type CartAggregate interface {
	GetOrCreate(ctx context.Context, ownerID uint) (CartSnapshot, error)
	AddLine(ctx context.Context, in AddLineInput) (CartSnapshot, error)
	SetLine(ctx context.Context, in SetLineInput) (CartSnapshot, error)
	RemoveLine(ctx context.Context, in RemoveLineInput) (CartSnapshot, error)
}

// CheckoutState tracks progress of a checkout run.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutValidating CheckoutState = "validating"
	CheckoutCommitting CheckoutState = "committing"
	CheckoutCompleted  CheckoutState = "completed"
	CheckoutAborted    CheckoutState = "aborted"
)

type CheckoutResult struct {
	State CheckoutState
	Order Order
	Lines []OrderLine
}

// CheckoutAggregate converts a cart into an immutable order.
//
// The order row, its lines, the cart line deletions and the totals reset
// commit atomically: the cart is observed either fully intact or fully
// cleared with a matching order, never in between. An empty line set fails
// with CodeEmptyCart before any write.
type CheckoutAggregate interface {
	Checkout(ctx context.Context, ownerID uint) (CheckoutResult, error)
}
