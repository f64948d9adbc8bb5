package services

import (
	"context"

	"github.com/CATyPH67/shop-api/internal/data/aggregates"
	"github.com/CATyPH67/shop-api/internal/data/repos"
	"github.com/CATyPH67/shop-api/internal/domain/shop"
	"github.com/CATyPH67/shop-api/internal/platform/dbctx"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

type CartLineView struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CartView struct {
	ID            uint           `json:"id"`
	TotalPrice    float64        `json:"total_price"`
	TotalQuantity int            `json:"total_quantity"`
	Items         []CartLineView `json:"items"`
}

// CartService resolves products for the cart aggregate and shapes its
// snapshots for transport. Pricing is authoritative here: the unit price
// fed into the aggregate always comes from the product row, never from the
// caller.
type CartService struct {
	log      *logger.Logger
	products repos.ProductRepo
	carts    shop.CartAggregate
}

func NewCartService(log *logger.Logger, products repos.ProductRepo, carts shop.CartAggregate) *CartService {
	return &CartService{log: log.With("service", "CartService"), products: products, carts: carts}
}

func (s *CartService) GetCart(ctx context.Context, ownerID uint) (CartView, error) {
	snap, err := s.carts.GetOrCreate(ctx, ownerID)
	if err != nil {
		return CartView{}, err
	}
	return buildCartView(snap), nil
}

func (s *CartService) AddLine(ctx context.Context, ownerID, productID uint, quantity int) (CartView, error) {
	const op = "Shop.CartService.AddLine"
	if quantity <= 0 {
		return CartView{}, shop.NewError(shop.CodeInvalidArgument, op, "quantity must be positive", nil)
	}
	product, err := s.products.GetByID(dbctx.Context{Ctx: ctx}, productID)
	if err != nil {
		return CartView{}, aggregates.MapError(op, err)
	}
	if product == nil {
		return CartView{}, shop.NewError(shop.CodeNotFound, op, "product not found", nil)
	}

	snap, err := s.carts.AddLine(ctx, shop.AddLineInput{
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	})
	if err != nil {
		return CartView{}, err
	}
	s.log.Info("cart line added",
		"owner_id", ownerID, "product_id", productID,
		"quantity", quantity, "total_price", snap.Cart.TotalPrice)
	return buildCartView(snap), nil
}

func (s *CartService) SetLine(ctx context.Context, ownerID, lineID uint, quantity int) (CartView, error) {
	const op = "Shop.CartService.SetLine"
	if quantity < 0 {
		return CartView{}, shop.NewError(shop.CodeInvalidArgument, op, "quantity cannot be negative", nil)
	}

	// The line's current product supplies the unit price for the recompute.
	snap, err := s.carts.GetOrCreate(ctx, ownerID)
	if err != nil {
		return CartView{}, err
	}
	var line *shop.CartLine
	for i := range snap.Lines {
		if snap.Lines[i].ID == lineID {
			line = &snap.Lines[i]
			break
		}
	}
	if line == nil {
		return CartView{}, shop.NewError(shop.CodeNotFound, op, "cart line not found", nil)
	}

	unitPrice := 0.0
	if quantity > 0 {
		product, err := s.products.GetByID(dbctx.Context{Ctx: ctx}, line.ProductID)
		if err != nil {
			return CartView{}, aggregates.MapError(op, err)
		}
		if product == nil {
			return CartView{}, shop.NewError(shop.CodeNotFound, op, "product not found", nil)
		}
		unitPrice = product.Price
	}

	out, err := s.carts.SetLine(ctx, shop.SetLineInput{
		OwnerID:   ownerID,
		LineID:    lineID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	if err != nil {
		return CartView{}, err
	}
	s.log.Info("cart line set",
		"owner_id", ownerID, "line_id", lineID, "quantity", quantity)
	return buildCartView(out), nil
}

func (s *CartService) RemoveLine(ctx context.Context, ownerID, lineID uint) (CartView, error) {
	snap, err := s.carts.RemoveLine(ctx, shop.RemoveLineInput{OwnerID: ownerID, LineID: lineID})
	if err != nil {
		return CartView{}, err
	}
	s.log.Info("cart line removed", "owner_id", ownerID, "line_id", lineID)
	return buildCartView(snap), nil
}

func buildCartView(snap shop.CartSnapshot) CartView {
	items := make([]CartLineView, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		items = append(items, CartLineView{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.PriceSnapshot,
		})
	}
	return CartView{
		ID:            snap.Cart.ID,
		TotalPrice:    snap.Cart.TotalPrice,
		TotalQuantity: snap.Cart.TotalQuantity,
		Items:         items,
	}
}
