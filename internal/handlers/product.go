package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CATyPH67/shop-api/internal/services"
)

type ProductHandler struct {
	svc *services.ProductService
}

func NewProductHandler(svc *services.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) List(c *gin.Context) {
	categoryID, ok := uintQuery(c, "category_id")
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", defaultPageSize)
	if !ok {
		return
	}
	offset, ok := intQuery(c, "offset", 0)
	if !ok {
		return
	}
	minPrice, ok := floatQuery(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := floatQuery(c, "max_price")
	if !ok {
		return
	}

	q := services.ProductQuery{
		CategoryID: categoryID,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Sort:       c.Query("sort"),
		Limit:      limit,
		Offset:     offset,
	}
	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	view, err := h.svc.Get(c.Request.Context(), productID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

func floatQuery(c *gin.Context, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &v, true
}
