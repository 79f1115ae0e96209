package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/transfer-calculator/internal/dto"
	"github.com/anyulbade/transfer-calculator/internal/service"
)

type CurrencyHandler struct {
	svc *service.CurrencyService
}

func NewCurrencyHandler(svc *service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{svc: svc}
}

func (h *CurrencyHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.svc.Currencies()})
}

func (h *CurrencyHandler) ExchangeRate(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}

	rate, err := h.svc.GetExchangeRate(from, to)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ExchangeRateResponse{
		From:      from,
		To:        to,
		Rate:      rate,
		Formatted: service.FormatExchangeRate(rate),
	})
}

func (h *CurrencyHandler) Convert(c *gin.Context) {
	var req dto.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed: " + err.Error()})
		return
	}

	converted, err := h.svc.ConvertCurrency(*req.Amount, req.FromCurrency, req.ToCurrency)
	if err != nil {
		_ = c.Error(err)
		return
	}
	rate, _ := h.svc.GetExchangeRate(req.FromCurrency, req.ToCurrency)

	c.JSON(http.StatusOK, dto.ConversionResponse{
		Amount:          *req.Amount,
		FromCurrency:    req.FromCurrency,
		ToCurrency:      req.ToCurrency,
		ConvertedAmount: converted,
		Rate:            rate,
		FormattedRate:   service.FormatExchangeRate(rate),
	})
}
