package model

import "time"

type Currency struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

// Thresholds are absolute amounts in the currency's own units. Tier3 is zero
// when the currency has no nudge threshold.
type Thresholds struct {
	Currency string  `json:"currency"`
	Tier1    float64 `json:"tier1"`
	Tier2    float64 `json:"tier2"`
	Tier3    float64 `json:"tier3,omitempty"`
}

type Tier string

const (
	TierNone Tier = "none"
	Tier1    Tier = "tier1"
	Tier2    Tier = "tier2"
	Tier3    Tier = "tier3"
)

type CurrencyFamily string

const (
	FamilyUSD   CurrencyFamily = "usd"
	FamilyOther CurrencyFamily = "other"
)

func FamilyOf(code string) CurrencyFamily {
	if code == "USD" {
		return FamilyUSD
	}
	return FamilyOther
}

type MethodClass string

const (
	ClassBank    MethodClass = "bank"
	ClassBalance MethodClass = "balance"
	ClassCard    MethodClass = "card"
)

const (
	MethodBankACH       = "bank_ach"
	MethodWireTransfer  = "wire_transfer"
	MethodSwiftTransfer = "swift_transfer"
	MethodYourBalance   = "your_balance"
	MethodDebitCard     = "debit_card"
	MethodCreditCard    = "credit_card"
	MethodApplePay      = "apple_pay"
)

type PaymentMethod struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Fee         float64     `json:"fee"`
	ArrivalTime string      `json:"arrival_time"`
	Class       MethodClass `json:"class"`
	Disabled    bool        `json:"disabled"`
}

type DiscountCalculation struct {
	Tier                  Tier    `json:"tier"`
	OriginalFeePercentage float64 `json:"original_fee_percentage"`
	FinalFeePercentage    float64 `json:"final_fee_percentage"`
	DiscountAmount        float64 `json:"discount_amount"`
	HasDiscount           bool    `json:"has_discount"`
}

type FeeCalculation struct {
	Amount                  float64             `json:"amount"`
	Currency                string              `json:"currency"`
	Tier                    Tier                `json:"tier"`
	IsLargeAmount           bool                `json:"is_large_amount"`
	IsVeryLargeAmount       bool                `json:"is_very_large_amount"`
	IsLargeGBPAmount        bool                `json:"is_large_gbp_amount"`
	WiseFee                 float64             `json:"wise_fee"`
	PaymentMethodFee        float64             `json:"payment_method_fee"`
	TotalFee                float64             `json:"total_fee"`
	TotalFeeAmount          float64             `json:"total_fee_amount"`
	FeePercentage           float64             `json:"fee_percentage"`
	AvailablePaymentMethods []PaymentMethod     `json:"available_payment_methods"`
	DefaultPaymentMethod    string              `json:"default_payment_method"`
	SelectedPaymentMethod   string              `json:"selected_payment_method"`
	DiscountCalculation     DiscountCalculation `json:"discount_calculation"`
}

type ErrorType string

const (
	ErrorNone                ErrorType = "none"
	ErrorBrazilMalaysiaLimit ErrorType = "brazil_malaysia_limit"
	ErrorTier2Overlay        ErrorType = "tier2_overlay"
	ErrorUSDMarketHours      ErrorType = "usd_market_hours"
)

type AlertConfig struct {
	Variant     string `json:"variant"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Dismissible bool   `json:"dismissible"`
}

type InlineMessage struct {
	Tone string `json:"tone"`
	Text string `json:"text"`
}

type OverlayConfig struct {
	Title           string `json:"title"`
	Body            string `json:"body"`
	PrimaryAction   string `json:"primary_action"`
	SecondaryAction string `json:"secondary_action,omitempty"`
}

type ErrorState struct {
	Type                  ErrorType      `json:"type"`
	Alert                 *AlertConfig   `json:"alert,omitempty"`
	Message               *InlineMessage `json:"message,omitempty"`
	Overlay               *OverlayConfig `json:"overlay,omitempty"`
	HideCalculatorDetails bool           `json:"hide_calculator_details"`
	WaitingHours          int            `json:"waiting_hours,omitempty"`
}

func NoError() ErrorState {
	return ErrorState{Type: ErrorNone}
}

// Hand-off payloads exchanged between screens.

type CalculatorData struct {
	FromAmount   string  `json:"from_amount"`
	ToAmount     string  `json:"to_amount"`
	FromCurrency string  `json:"from_currency"`
	ToCurrency   string  `json:"to_currency"`
	ExchangeRate float64 `json:"exchange_rate"`
}

type SelectedRecipient struct {
	ID            string `json:"id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Currency      string `json:"currency" binding:"required,len=3"`
	AccountSuffix string `json:"account_suffix,omitempty"`
}

type Balance struct {
	Currency string  `json:"currency" binding:"required,len=3"`
	Amount   float64 `json:"amount"`
}

type HomeData struct {
	Balances  []Balance `json:"balances" binding:"dive"`
	UpdatedAt time.Time `json:"updated_at"`
}
