package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CATyPH67/shop-api/internal/domain/shop"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError translates the domain error taxonomy onto HTTP statuses.
// Internal failures keep an opaque message; everything else surfaces as-is.
func RespondError(c *gin.Context, err error) {
	code := shop.CodeOf(err)
	status := http.StatusInternalServerError
	msg := "internal error"

	switch code {
	case shop.CodeInvalidArgument, shop.CodeEmptyCart:
		status = http.StatusBadRequest
		msg = err.Error()
	case shop.CodeNotFound:
		status = http.StatusNotFound
		msg = err.Error()
	case shop.CodeConflict:
		status = http.StatusConflict
		msg = err.Error()
	}

	c.JSON(status, ErrorEnvelope{
		Error: APIError{Message: msg, Code: string(code)},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
