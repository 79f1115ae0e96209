package calculator

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/transfer-calculator/internal/model"
	"github.com/anyulbade/transfer-calculator/internal/service"
)

const (
	ConversionDelay     = 2 * time.Second
	CurrencyChangeDelay = 100 * time.Millisecond
	PaymentMethodDelay  = 2 * time.Second
	KeyboardDismissTime = 150 * time.Millisecond
)

var (
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrInvalidField             = errors.New("invalid field")
	ErrPaymentMethodUnavailable = errors.New("payment method unavailable")
	ErrClosed                   = errors.New("calculator closed")
)

type Field string

const (
	FieldNone Field = ""
	FieldFrom Field = "from"
	FieldTo   Field = "to"
)

func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldFrom, FieldTo:
		return Field(s), nil
	}
	return FieldNone, fmt.Errorf("%w: %q", ErrInvalidField, s)
}

type Converter interface {
	ConvertCurrency(amount float64, from, to string) (float64, error)
	GetExchangeRate(from, to string) (float64, error)
	Supported(code string) bool
}

type FeeCalculator interface {
	CalculateFees(amount float64, fromCurrency, selectedPaymentMethodID string) model.FeeCalculation
}

type ErrorDeriver interface {
	DeriveErrorState(amount float64, currency string) model.ErrorState
}

type Deps struct {
	Currencies Converter
	Fees       FeeCalculator
	Errors     ErrorDeriver
	Clock      Clock
}

// Init seeds a new machine. Empty fields take defaults.
type Init struct {
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
	FromAmount   string `json:"from_amount"`
}

type State struct {
	FromAmount            string               `json:"from_amount"`
	ToAmount              string               `json:"to_amount"`
	FromCurrency          string               `json:"from_currency"`
	ToCurrency            string               `json:"to_currency"`
	ExchangeRate          float64              `json:"exchange_rate"`
	SelectedPaymentMethod string               `json:"selected_payment_method"`
	FocusedInput          Field                `json:"focused_input"`
	SourceField           Field                `json:"source_field"`
	IsLoading             bool                 `json:"is_loading"`
	Fees                  model.FeeCalculation `json:"fees"`
	Display               Display              `json:"display"`
}

// Machine is the view-state of the two-field conversion form. All
// transitions and timer callbacks are serialized on mu.
type Machine struct {
	deps Deps

	mu     sync.Mutex
	closed bool
	state  State

	fromValue   decimal.Decimal
	toValue     decimal.Decimal
	lastDefault string

	converting     bool
	paymentLoading bool

	conversion timerSlot
	payment    timerSlot
	message    timerSlot
	overlay    timerSlot
	keyboard   timerSlot
}

func New(deps Deps, init Init) (*Machine, error) {
	if deps.Clock == nil {
		deps.Clock = RealClock()
	}
	if init.FromCurrency == "" {
		init.FromCurrency = "USD"
	}
	if init.ToCurrency == "" {
		init.ToCurrency = "EUR"
	}
	if init.FromAmount == "" {
		init.FromAmount = "1000"
	}

	for _, code := range []string{init.FromCurrency, init.ToCurrency} {
		if !deps.Currencies.Supported(code) {
			return nil, fmt.Errorf("%w: %s", service.ErrUnsupportedCurrency, code)
		}
	}
	from, err := parseAmount(init.FromAmount)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		deps:      deps,
		fromValue: from,
		state: State{
			FromAmount:   init.FromAmount,
			FromCurrency: init.FromCurrency,
			ToCurrency:   init.ToCurrency,
			SourceField:  FieldFrom,
		},
	}
	m.applyConversion()
	return m, nil
}

func parseAmount(text string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if clean == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, text)
	}
	return d, nil
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Machine) snapshot() State {
	s := m.state
	s.IsLoading = m.converting || m.paymentLoading
	s.Fees.AvailablePaymentMethods = append([]model.PaymentMethod(nil), m.state.Fees.AvailablePaymentMethods...)
	return s
}

// Handoff returns the snapshot the review screen consumes.
func (m *Machine) Handoff() model.CalculatorData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.CalculatorData{
		FromAmount:   m.state.FromAmount,
		ToAmount:     m.state.ToAmount,
		FromCurrency: m.state.FromCurrency,
		ToCurrency:   m.state.ToCurrency,
		ExchangeRate: m.state.ExchangeRate,
	}
}

func (m *Machine) Focus(field Field) error {
	if field != FieldFrom && field != FieldTo {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	m.keyboard.stop()
	m.state.FocusedInput = field
	return nil
}

func (m *Machine) Blur() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	m.arm(&m.keyboard, KeyboardDismissTime, func() {
		m.state.FocusedInput = FieldNone
	})
	return nil
}

func (m *Machine) SetFromAmount(text string) error {
	return m.setAmount(FieldFrom, text)
}

func (m *Machine) SetToAmount(text string) error {
	return m.setAmount(FieldTo, text)
}

func (m *Machine) SetAmount(field Field, text string) error {
	if field != FieldFrom && field != FieldTo {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return m.setAmount(field, text)
}

func (m *Machine) setAmount(field Field, text string) error {
	value, err := parseAmount(text)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	m.state.SourceField = field
	var changed bool
	if field == FieldFrom {
		changed = !value.Equal(m.fromValue)
		m.state.FromAmount = text
		m.fromValue = value
	} else {
		changed = !value.Equal(m.toValue)
		m.state.ToAmount = text
		m.toValue = value
	}
	if !changed {
		return nil
	}

	if m.state.FocusedInput != field {
		m.conversion.stop()
		m.applyConversion()
		return nil
	}

	m.converting = true
	m.arm(&m.conversion, ConversionDelay, m.applyConversion)
	if field == FieldFrom {
		// The fee and error state follow the source amount right away;
		// only the opposite field waits for the conversion.
		m.refreshPricing()
		m.refreshDisplay()
	}
	return nil
}

func (m *Machine) SetFromCurrency(code string) error {
	return m.setCurrency(FieldFrom, code)
}

func (m *Machine) SetToCurrency(code string) error {
	return m.setCurrency(FieldTo, code)
}

func (m *Machine) SetCurrency(field Field, code string) error {
	if field != FieldFrom && field != FieldTo {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return m.setCurrency(field, code)
}

func (m *Machine) setCurrency(field Field, code string) error {
	if !m.deps.Currencies.Supported(code) {
		return fmt.Errorf("%w: %s", service.ErrUnsupportedCurrency, code)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	if field == FieldFrom {
		if m.state.FromCurrency == code {
			return nil
		}
		m.state.FromCurrency = code
	} else {
		if m.state.ToCurrency == code {
			return nil
		}
		m.state.ToCurrency = code
	}

	m.arm(&m.conversion, CurrencyChangeDelay, m.applyConversion)
	return nil
}

func (m *Machine) SelectPaymentMethod(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	// Checked against the catalog of the current source currency, which may
	// be newer than state.Fees while a currency change is pending.
	fees := m.deps.Fees.CalculateFees(m.fromValue.InexactFloat64(), m.state.FromCurrency, id)
	if fees.SelectedPaymentMethod != id {
		return fmt.Errorf("%w: %s", ErrPaymentMethodUnavailable, id)
	}

	m.lastDefault = fees.DefaultPaymentMethod
	m.state.SelectedPaymentMethod = id
	m.state.Fees = fees

	m.paymentLoading = true
	m.arm(&m.payment, PaymentMethodDelay, func() {
		m.paymentLoading = false
	})
	return nil
}

func (m *Machine) DismissOverlay() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	if m.overlay.pending() || m.state.Display.ShowOverlay {
		m.state.Display.OverlayShown = true
	}
	m.overlay.stop()
	m.state.Display.ShowOverlay = false
	return nil
}

// Close stops every pending timer. Later transitions return ErrClosed.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for _, slot := range []*timerSlot{&m.conversion, &m.payment, &m.message, &m.overlay, &m.keyboard} {
		slot.stop()
	}
}

// arm replaces whatever is pending in slot. Must be called with mu held.
func (m *Machine) arm(slot *timerSlot, d time.Duration, fn func()) {
	slot.stop()
	gen := slot.gen
	slot.timer = m.deps.Clock.AfterFunc(d, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed || slot.gen != gen {
			return
		}
		slot.timer = nil
		fn()
	})
}

// applyConversion recomputes the opposite field from SourceField, then the
// fees and display. Must be called with mu held.
func (m *Machine) applyConversion() {
	m.converting = false

	from, to := m.state.FromCurrency, m.state.ToCurrency
	if m.state.SourceField == FieldTo {
		converted, err := m.convert(m.toValue, to, from)
		if err == nil {
			m.fromValue = converted
			m.state.FromAmount = formatConverted(converted, m.state.ToAmount)
		}
	} else {
		converted, err := m.convert(m.fromValue, from, to)
		if err == nil {
			m.toValue = converted
			m.state.ToAmount = formatConverted(converted, m.state.FromAmount)
		}
	}

	if rate, err := m.deps.Currencies.GetExchangeRate(from, to); err == nil {
		m.state.ExchangeRate = rate
	}

	m.refreshPricing()
	m.refreshDisplay()
}

func (m *Machine) convert(value decimal.Decimal, from, to string) (decimal.Decimal, error) {
	out, err := m.deps.Currencies.ConvertCurrency(value.InexactFloat64(), from, to)
	if err != nil {
		// Currencies are validated on the way in; this only happens when
		// a catalog reload drops a code that is already selected.
		log.Warn().Err(err).Str("from", from).Str("to", to).Msg("conversion skipped")
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(out).Round(2), nil
}

func formatConverted(value decimal.Decimal, sourceText string) string {
	if strings.TrimSpace(sourceText) == "" {
		return ""
	}
	return value.StringFixed(2)
}

// refreshPricing recomputes fees and re-derives the default payment method.
// The selection follows the default when the default moves or when the
// selected method is no longer usable.
func (m *Machine) refreshPricing() {
	amount := m.fromValue.InexactFloat64()
	fees := m.deps.Fees.CalculateFees(amount, m.state.FromCurrency, m.state.SelectedPaymentMethod)

	selected := fees.SelectedPaymentMethod
	if fees.DefaultPaymentMethod != m.lastDefault && selected != fees.DefaultPaymentMethod {
		selected = fees.DefaultPaymentMethod
		fees = m.deps.Fees.CalculateFees(amount, m.state.FromCurrency, selected)
	}

	if m.state.SelectedPaymentMethod != "" && selected != m.state.SelectedPaymentMethod {
		log.Debug().
			Str("from", m.state.SelectedPaymentMethod).
			Str("to", selected).
			Msg("payment method re-derived")
	}

	m.lastDefault = fees.DefaultPaymentMethod
	m.state.SelectedPaymentMethod = selected
	m.state.Fees = fees
}

func (m *Machine) refreshDisplay() {
	next := m.deps.Errors.DeriveErrorState(m.fromValue.InexactFloat64(), m.state.FromCurrency)
	t := DeriveDisplayState(next, m.converting || m.paymentLoading, m.state.Display)
	m.state.Display = t.Display

	if t.PendingMessage {
		m.arm(&m.message, MessageDelay, func() {
			m.state.Display.ShowMessage = m.state.Display.ErrorState.Message != nil
		})
	} else {
		m.message.stop()
	}

	if t.PendingOverlay {
		m.arm(&m.overlay, OverlayDelay, func() {
			if m.state.Display.ErrorState.Overlay == nil || m.state.Display.OverlayShown {
				return
			}
			m.state.Display.ShowOverlay = true
			m.state.Display.OverlayShown = true
		})
	} else {
		m.overlay.stop()
	}
}
