package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/transfer-calculator/internal/calculator"
	"github.com/anyulbade/transfer-calculator/internal/dto"
	"github.com/anyulbade/transfer-calculator/internal/handoff"
	"github.com/anyulbade/transfer-calculator/internal/session"
)

type CalculatorHandler struct {
	sessions *session.Registry
	handoff  *handoff.Service
}

func NewCalculatorHandler(sessions *session.Registry, handoffSvc *handoff.Service) *CalculatorHandler {
	return &CalculatorHandler{sessions: sessions, handoff: handoffSvc}
}

func (h *CalculatorHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed: " + err.Error()})
			return
		}
	}

	id, m, err := h.sessions.Create(calculator.Init{
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		FromAmount:   req.FromAmount,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.SessionResponse{ID: id, State: m.State()})
}

func (h *CalculatorHandler) Get(c *gin.Context) {
	id := c.Param("id")
	m, err := h.sessions.Get(id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{ID: id, State: m.State()})
}

func (h *CalculatorHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CalculatorHandler) Event(c *gin.Context) {
	var req dto.SessionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed: " + err.Error()})
		return
	}

	id := c.Param("id")
	m, err := h.sessions.Get(id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := apply(m, req); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{ID: id, State: m.State()})
}

func apply(m *calculator.Machine, req dto.SessionEventRequest) error {
	switch req.Type {
	case dto.EventBlur:
		return m.Blur()
	case dto.EventSelectPaymentMethod:
		return m.SelectPaymentMethod(req.Value)
	case dto.EventDismissOverlay:
		return m.DismissOverlay()
	}

	field, err := calculator.ParseField(req.Field)
	if err != nil {
		return err
	}
	switch req.Type {
	case dto.EventFocus:
		return m.Focus(field)
	case dto.EventEditAmount:
		return m.SetAmount(field, req.Value)
	default:
		return m.SetCurrency(field, req.Value)
	}
}

// Handoff stores the current amounts for the review screen.
func (h *CalculatorHandler) Handoff(c *gin.Context) {
	id := c.Param("id")
	m, err := h.sessions.Get(id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	data := m.Handoff()
	if err := h.handoff.SaveCalculator(c.Request.Context(), id, data); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, data)
}
