package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/transfer-calculator/internal/dto"
	"github.com/anyulbade/transfer-calculator/internal/handoff"
	"github.com/anyulbade/transfer-calculator/internal/model"
)

type HandoffHandler struct {
	svc *handoff.Service
}

func NewHandoffHandler(svc *handoff.Service) *HandoffHandler {
	return &HandoffHandler{svc: svc}
}

func (h *HandoffHandler) GetCalculator(c *gin.Context) {
	data, err := h.svc.LoadCalculator(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *HandoffHandler) PutRecipient(c *gin.Context) {
	var req model.SelectedRecipient
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed: " + err.Error()})
		return
	}

	if err := h.svc.SaveRecipient(c.Request.Context(), c.Param("id"), req); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *HandoffHandler) GetRecipient(c *gin.Context) {
	r, err := h.svc.LoadRecipient(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *HandoffHandler) PutHome(c *gin.Context) {
	var req dto.HomeDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed: " + err.Error()})
		return
	}

	home := model.HomeData{Balances: req.Balances, UpdatedAt: time.Now().UTC()}
	if err := h.svc.SaveHome(c.Request.Context(), c.Param("id"), home); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, home)
}

func (h *HandoffHandler) GetHome(c *gin.Context) {
	home, err := h.svc.LoadHome(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, home)
}
