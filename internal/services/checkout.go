package services

import (
	"context"
	"fmt"
	"time"

	"github.com/CATyPH67/shop-api/internal/data/repos"
	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/notify"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

type OrderLineView struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderView struct {
	ID            uint            `json:"id"`
	TotalPrice    float64         `json:"total_price"`
	TotalQuantity int             `json:"total_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderLineView `json:"items"`
}

type CheckoutService struct {
	log        *logger.Logger
	checkout   shop.CheckoutAggregate
	users      repos.UserRepo
	dispatcher notify.Dispatcher
}

func NewCheckoutService(log *logger.Logger, checkout shop.CheckoutAggregate, users repos.UserRepo, dispatcher notify.Dispatcher) *CheckoutService {
	return &CheckoutService{
		log:        log.With("service", "CheckoutService"),
		checkout:   checkout,
		users:      users,
		dispatcher: dispatcher,
	}
}

// Checkout commits the order and then schedules the confirmation message.
// The order is durable by the time the dispatcher is involved, so any
// notification problem is logged and swallowed, never surfaced.
func (s *CheckoutService) Checkout(ctx context.Context, ownerID uint) (OrderView, error) {
	res, err := s.checkout.Checkout(ctx, ownerID)
	if err != nil {
		return OrderView{}, err
	}
	s.log.Info("checkout completed",
		"owner_id", ownerID, "order_id", res.Order.ID, "total_price", res.Order.TotalPrice)

	s.notifyOwner(ctx, ownerID, res.Order)

	items := make([]OrderLineView, 0, len(res.Lines))
	for _, l := range res.Lines {
		items = append(items, OrderLineView{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.PriceSnapshot,
		})
	}
	return OrderView{
		ID:            res.Order.ID,
		TotalPrice:    res.Order.TotalPrice,
		TotalQuantity: res.Order.TotalQuantity,
		CreatedAt:     res.Order.CreatedAt,
		Items:         items,
	}, nil
}

func (s *CheckoutService) notifyOwner(ctx context.Context, ownerID uint, order shop.Order) {
	if s.dispatcher == nil {
		return
	}
	user, err := s.users.GetByID(dbctx.Context{Ctx: ctx}, ownerID)
	if err != nil || user == nil {
		s.log.Warn("skipping order confirmation, owner lookup failed",
			"owner_id", ownerID, "order_id", order.ID, "error", err)
		return
	}
	body := fmt.Sprintf(
		"Thank you for your order!\nOrder number: %d\nDate: %s\nTotal: %.2f",
		order.ID,
		order.CreatedAt.Format("2006-01-02 15:04"),
		order.TotalPrice,
	)
	s.dispatcher.Submit(user.Email, "Your order has been placed", body)
}
