package service

import (
	"sort"

	"github.com/anyulbade/transfer-calculator/internal/model"
)

const (
	usdBaseFee      = 0.31
	usdLargeBaseFee = 0.21
	baseFee         = 0.35
	largeBaseFee    = 0.24

	// balanceFactor makes "your balance" 20% cheaper than the primary bank method.
	balanceFactor = 0.8
)

type methodTemplate struct {
	id          string
	name        string
	fee         float64
	arrivalTime string
	class       model.MethodClass
}

var usdMethods = []methodTemplate{
	{model.MethodBankACH, "ACH bank transfer", 0.00, "by Thursday", model.ClassBank},
	{model.MethodWireTransfer, "Wire transfer", 0.08, "today", model.ClassBank},
	{model.MethodDebitCard, "Debit card", 0.55, "in seconds", model.ClassCard},
	{model.MethodCreditCard, "Credit card", 1.20, "in seconds", model.ClassCard},
	{model.MethodApplePay, "Apple Pay", 0.60, "in seconds", model.ClassCard},
}

var otherMethods = []methodTemplate{
	{model.MethodSwiftTransfer, "SWIFT bank transfer", 0.25, "in 1-2 working days", model.ClassBank},
	{model.MethodDebitCard, "Debit card", 0.60, "in seconds", model.ClassCard},
	{model.MethodCreditCard, "Credit card", 1.50, "in seconds", model.ClassCard},
	{model.MethodApplePay, "Apple Pay", 0.65, "in seconds", model.ClassCard},
}

func primaryBankMethod(family model.CurrencyFamily) string {
	if family == model.FamilyUSD {
		return model.MethodBankACH
	}
	return model.MethodSwiftTransfer
}

type FeeService struct {
	currencies *CurrencyService
	discounts  *DiscountService
}

func NewFeeService(currencies *CurrencyService, discounts *DiscountService) *FeeService {
	return &FeeService{currencies: currencies, discounts: discounts}
}

// CalculateFees never fails: unknown currencies price against scaled USD
// thresholds and the non-USD catalog.
func (s *FeeService) CalculateFees(amount float64, fromCurrency, selectedPaymentMethodID string) model.FeeCalculation {
	t := s.currencies.Thresholds(fromCurrency)
	family := model.FamilyOf(fromCurrency)

	isLarge := amount > t.Tier1
	isVeryLarge := amount > t.Tier2
	isLargeGBP := fromCurrency == "GBP" && t.Tier3 > 0 && amount > t.Tier3

	wiseFee := baseFeeFor(family, isLarge)
	methods := PaymentMethods(family, isLarge, isVeryLarge)
	defaultID := defaultMethod(family, isVeryLarge)

	selected := defaultID
	if selectedPaymentMethodID != "" {
		if m, ok := findMethod(methods, selectedPaymentMethodID); ok && !m.Disabled {
			selected = m.ID
		}
	}

	methodFee := 0.0
	if m, ok := findMethod(methods, selected); ok {
		methodFee = m.Fee
	}

	totalFee := round(wiseFee+methodFee, 4)
	discount := s.discounts.CalculateDiscount(amount, fromCurrency, totalFee)

	return model.FeeCalculation{
		Amount:                  amount,
		Currency:                fromCurrency,
		Tier:                    discount.Tier,
		IsLargeAmount:           isLarge,
		IsVeryLargeAmount:       isVeryLarge,
		IsLargeGBPAmount:        isLargeGBP,
		WiseFee:                 wiseFee,
		PaymentMethodFee:        methodFee,
		TotalFee:                totalFee,
		TotalFeeAmount:          round(amount*discount.FinalFeePercentage/100, 2),
		FeePercentage:           discount.FinalFeePercentage,
		AvailablePaymentMethods: methods,
		DefaultPaymentMethod:    defaultID,
		SelectedPaymentMethod:   selected,
		DiscountCalculation:     discount,
	}
}

func baseFeeFor(family model.CurrencyFamily, isLarge bool) float64 {
	switch {
	case family == model.FamilyUSD && isLarge:
		return usdLargeBaseFee
	case family == model.FamilyUSD:
		return usdBaseFee
	case isLarge:
		return largeBaseFee
	default:
		return baseFee
	}
}

func defaultMethod(family model.CurrencyFamily, isVeryLarge bool) string {
	if isVeryLarge {
		return model.MethodYourBalance
	}
	return primaryBankMethod(family)
}

// PaymentMethods builds the sorted catalog for a currency family. Disabled
// methods stay listed at the end.
func PaymentMethods(family model.CurrencyFamily, isLarge, isVeryLarge bool) []model.PaymentMethod {
	templates := otherMethods
	if family == model.FamilyUSD {
		templates = usdMethods
	}
	primary := primaryBankMethod(family)

	methods := make([]model.PaymentMethod, 0, len(templates)+1)
	for _, tpl := range templates {
		methods = append(methods, model.PaymentMethod{
			ID:          tpl.id,
			Name:        tpl.name,
			Fee:         tpl.fee,
			ArrivalTime: tpl.arrivalTime,
			Class:       tpl.class,
			Disabled:    (tpl.class == model.ClassCard && isLarge) || (tpl.class == model.ClassBank && isVeryLarge),
		})
		if tpl.id == primary {
			methods = append(methods, model.PaymentMethod{
				ID:          model.MethodYourBalance,
				Name:        "Your Wise balance",
				Fee:         round(tpl.fee*balanceFactor, 4),
				ArrivalTime: "in seconds",
				Class:       model.ClassBalance,
			})
		}
	}

	first := primary
	if isVeryLarge {
		first = model.MethodYourBalance
	}

	sort.SliceStable(methods, func(i, j int) bool {
		a, b := methods[i], methods[j]
		if a.Disabled != b.Disabled {
			return !a.Disabled
		}
		if (a.ID == first) != (b.ID == first) {
			return a.ID == first
		}
		return a.Fee < b.Fee
	})
	return methods
}

func findMethod(methods []model.PaymentMethod, id string) (model.PaymentMethod, bool) {
	for _, m := range methods {
		if m.ID == id {
			return m, true
		}
	}
	return model.PaymentMethod{}, false
}
