package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/CATyPH67/shop-api/internal/services"
)

type OrderHandler struct {
	svc *services.CheckoutService
}

func NewOrderHandler(svc *services.CheckoutService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) Create(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	view, err := h.svc.Checkout(c.Request.Context(), ownerID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}
