package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CATyPH67/shop-api/internal/requestdata"
	"github.com/CATyPH67/shop-api/internal/services"
)

type CartHandler struct {
	svc *services.CartService
}

func NewCartHandler(svc *services.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	view, err := h.svc.GetCart(c.Request.Context(), ownerID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

type addLineRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

func (h *CartHandler) AddLine(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	view, err := h.svc.AddLine(c.Request.Context(), ownerID, req.ProductID, req.Quantity)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

type setLineRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *CartHandler) SetLine(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	lineID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req setLineRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	view, err := h.svc.SetLine(c.Request.Context(), ownerID, lineID, *req.Quantity)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

func (h *CartHandler) RemoveLine(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	lineID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	view, err := h.svc.RemoveLine(c.Request.Context(), ownerID, lineID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

func ownerFrom(c *gin.Context) (uint, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.OwnerID == 0 {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return 0, false
	}
	return rd.OwnerID, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}
