package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/transfer-calculator/internal/dto"
	"github.com/anyulbade/transfer-calculator/internal/service"
)

// FeeHandler exposes the pricing rules. They never fail: a currency without
// its own thresholds is priced against the USD thresholds scaled by its rate,
// or unscaled when the code is unknown.
type FeeHandler struct {
	fees      *service.FeeService
	discounts *service.DiscountService
	errors    *service.ErrorService
}

func NewFeeHandler(fees *service.FeeService, discounts *service.DiscountService, errs *service.ErrorService) *FeeHandler {
	return &FeeHandler{fees: fees, discounts: discounts, errors: errs}
}

func (h *FeeHandler) CalculateFees(c *gin.Context) {
	var req dto.FeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.fees.CalculateFees(*req.Amount, req.FromCurrency, req.PaymentMethodID))
}

func (h *FeeHandler) CalculateDiscount(c *gin.Context) {
	var req dto.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.discounts.CalculateDiscount(*req.Amount, req.Currency, *req.BaseFeePercentage))
}

func (h *FeeHandler) DeriveErrorState(c *gin.Context) {
	var req dto.ErrorStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.errors.DeriveErrorState(*req.Amount, req.Currency))
}
