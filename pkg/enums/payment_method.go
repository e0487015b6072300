package enums

import "fmt"

// PaymentMethod describes how a buyer intends to settle a purchase.
type PaymentMethod string

const (
	PaymentMethodPayPal    PaymentMethod = "paypal"
	PaymentMethodCard      PaymentMethod = "card"
	PaymentMethodGooglePay PaymentMethod = "google_pay"
	PaymentMethodApplePay  PaymentMethod = "apple_pay"
	PaymentMethodLitecoin  PaymentMethod = "litecoin"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodPayPal,
	PaymentMethodCard,
	PaymentMethodGooglePay,
	PaymentMethodApplePay,
	PaymentMethodLitecoin,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// Label returns the human-readable name shown in the payment prompt.
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentMethodPayPal:
		return "PayPal"
	case PaymentMethodCard:
		return "Card"
	case PaymentMethodGooglePay:
		return "Google Pay"
	case PaymentMethodApplePay:
		return "Apple Pay"
	case PaymentMethodLitecoin:
		return "Litecoin"
	}
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// PaymentMethods returns the supported methods in prompt order.
func PaymentMethods() []PaymentMethod {
	methods := make([]PaymentMethod, len(validPaymentMethods))
	copy(methods, validPaymentMethods)
	return methods
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
