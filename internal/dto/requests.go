package dto

import "github.com/anyulbade/transfer-calculator/internal/model"

type ConversionRequest struct {
	Amount       *float64 `json:"amount" binding:"required,gte=0"`
	FromCurrency string   `json:"from_currency" binding:"required,len=3"`
	ToCurrency   string   `json:"to_currency" binding:"required,len=3"`
}

type FeeRequest struct {
	Amount          *float64 `json:"amount" binding:"required,gte=0"`
	FromCurrency    string   `json:"from_currency" binding:"required,len=3"`
	PaymentMethodID string   `json:"payment_method_id"`
}

type DiscountRequest struct {
	Amount            *float64 `json:"amount" binding:"required,gte=0"`
	Currency          string   `json:"currency" binding:"required,len=3"`
	BaseFeePercentage *float64 `json:"base_fee_percentage" binding:"required,gte=0"`
}

type ErrorStateRequest struct {
	Amount   *float64 `json:"amount" binding:"required,gte=0"`
	Currency string   `json:"currency" binding:"required,len=3"`
}

type CreateSessionRequest struct {
	FromCurrency string `json:"from_currency" binding:"omitempty,len=3"`
	ToCurrency   string `json:"to_currency" binding:"omitempty,len=3"`
	FromAmount   string `json:"from_amount"`
}

type EventType string

const (
	EventFocus               EventType = "focus"
	EventBlur                EventType = "blur"
	EventEditAmount          EventType = "edit_amount"
	EventChangeCurrency      EventType = "change_currency"
	EventSelectPaymentMethod EventType = "select_payment_method"
	EventDismissOverlay      EventType = "dismiss_overlay"
)

type SessionEventRequest struct {
	Type  EventType `json:"type" binding:"required,oneof=focus blur edit_amount change_currency select_payment_method dismiss_overlay"`
	Field string    `json:"field"`
	Value string    `json:"value"`
}

type HomeDataRequest struct {
	Balances []model.Balance `json:"balances" binding:"required,dive"`
}
