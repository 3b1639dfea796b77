package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/logger"
	"github.com/GabrielBaezJ/travel-brain/internal/response"
	"github.com/GabrielBaezJ/travel-brain/internal/service"
)

// CurrencyHandler handles currency exchange endpoints
type CurrencyHandler struct {
	currency *service.CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currency *service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currency: currency}
}

func (h *CurrencyHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownCurrency):
		response.BadRequest(c, "Unknown currency code")
	case errors.Is(err, service.ErrInvalidAmount):
		response.BadRequest(c, "Amount must be positive")
	default:
		logger.Get().Error("currency request failed", zap.Error(err))
		response.InternalError(c)
	}
}

// Rates handles GET /api/currency/rates/:base
func (h *CurrencyHandler) Rates(c *gin.Context) {
	rates, err := h.currency.Rates(c.Request.Context(), c.Param("base"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, rates)
}

// Convert handles POST /api/currency/convert
func (h *CurrencyHandler) Convert(c *gin.Context) {
	req := &dto.ConvertRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Amount, from and to are required")
		return
	}
	h.convert(c, req)
}

// ConvertPath handles GET /api/currency/convert/:amount/:from/:to
func (h *CurrencyHandler) ConvertPath(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Param("amount"), 64)
	if err != nil {
		response.BadRequest(c, "Amount must be a number")
		return
	}
	h.convert(c, &dto.ConvertRequest{
		Amount: amount,
		From:   c.Param("from"),
		To:     c.Param("to"),
	})
}

func (h *CurrencyHandler) convert(c *gin.Context, req *dto.ConvertRequest) {
	result, err := h.currency.Convert(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}
