package handler

import "github.com/gin-gonic/gin"

type Handlers struct {
	Health     *HealthHandler
	Currency   *CurrencyHandler
	Fee        *FeeHandler
	Calculator *CalculatorHandler
	Handoff    *HandoffHandler
	Markdown   *MarkdownHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	router.GET("/health", h.Health.Health)
	router.GET("/api/markdown", h.Markdown.Get)

	api := router.Group("/api/v1")
	{
		api.GET("/currencies", h.Currency.List)
		api.GET("/exchange-rates", h.Currency.ExchangeRate)
		api.POST("/conversions", h.Currency.Convert)

		api.POST("/fees", h.Fee.CalculateFees)
		api.POST("/discounts", h.Fee.CalculateDiscount)
		api.POST("/error-states", h.Fee.DeriveErrorState)

		api.POST("/calculator/sessions", h.Calculator.Create)
		api.GET("/calculator/sessions/:id", h.Calculator.Get)
		api.DELETE("/calculator/sessions/:id", h.Calculator.Delete)
		api.POST("/calculator/sessions/:id/events", h.Calculator.Event)
		api.POST("/calculator/sessions/:id/handoff", h.Calculator.Handoff)

		api.GET("/handoff/:id/calculator", h.Handoff.GetCalculator)
		api.PUT("/handoff/:id/recipient", h.Handoff.PutRecipient)
		api.GET("/handoff/:id/recipient", h.Handoff.GetRecipient)
		api.PUT("/handoff/:id/home", h.Handoff.PutHome)
		api.GET("/handoff/:id/home", h.Handoff.GetHome)
	}
}
