// Package actions defines the control identifiers carried on message
// components and the typed actions they decode into. Identifiers are
// parsed once at the transport boundary; everything past it switches
// on types, never on raw strings.
package actions

import (
	"fmt"
	"strings"

	"github.com/solimanzein/storefront-bot/pkg/enums"
)

// Wire format: "<verb>|<itemName>" for per-line controls, bare
// literals for the checkout and payment controls, and
// "catalog_select|<category>" for the catalog prompt.
const (
	verbPlus   = "plus"
	verbMinus  = "minus"
	verbRemove = "remove"

	checkoutID      = "checkout"
	paymentSelectID = "payment_select"
	catalogSelectID = "catalog_select"

	separator = "|"
)

// Action is the closed set of things an interaction can ask for.
type Action interface {
	// Kind names the action for logs and metrics.
	Kind() string
}

// AddToCart carries the catalog items chosen from a selection prompt.
type AddToCart struct {
	Category string
	Items    []string
}

// Increment bumps one cart line by one.
type Increment struct{ Item string }

// Decrement lowers one cart line by one.
type Decrement struct{ Item string }

// Remove drops one cart line.
type Remove struct{ Item string }

// Checkout commits the cart and opens the payment prompt.
type Checkout struct{}

// SelectPayment finishes checkout with the chosen method.
type SelectPayment struct{ Method enums.PaymentMethod }

func (AddToCart) Kind() string     { return "catalog_select" }
func (Increment) Kind() string     { return "plus" }
func (Decrement) Kind() string     { return "minus" }
func (Remove) Kind() string        { return "remove" }
func (Checkout) Kind() string      { return "checkout" }
func (SelectPayment) Kind() string { return "payment_select" }

// IncrementID encodes the "+" control for a line.
func IncrementID(item string) string { return verbPlus + separator + item }

// DecrementID encodes the "−" control for a line.
func DecrementID(item string) string { return verbMinus + separator + item }

// RemoveID encodes the remove control for a line.
func RemoveID(item string) string { return verbRemove + separator + item }

// CheckoutID encodes the single checkout control.
func CheckoutID() string { return checkoutID }

// PaymentSelectID encodes the payment-method select menu.
func PaymentSelectID() string { return paymentSelectID }

// CatalogSelectID encodes the catalog select menu for a category.
func CatalogSelectID(category string) string {
	return catalogSelectID + separator + category
}

// Parse decodes a control identifier and its selected values into a
// typed action.
func Parse(customID string, values []string) (Action, error) {
	verb, arg, hasArg := strings.Cut(customID, separator)

	switch verb {
	case verbPlus, verbMinus, verbRemove:
		if !hasArg || arg == "" {
			return nil, fmt.Errorf("control %q missing item name", customID)
		}
		switch verb {
		case verbPlus:
			return Increment{Item: arg}, nil
		case verbMinus:
			return Decrement{Item: arg}, nil
		default:
			return Remove{Item: arg}, nil
		}
	case checkoutID:
		return Checkout{}, nil
	case paymentSelectID:
		if len(values) != 1 {
			return nil, fmt.Errorf("payment selection carries %d values", len(values))
		}
		method, err := enums.ParsePaymentMethod(values[0])
		if err != nil {
			return nil, err
		}
		return SelectPayment{Method: method}, nil
	case catalogSelectID:
		if !hasArg || arg == "" {
			return nil, fmt.Errorf("catalog selection missing category")
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("catalog selection carries no values")
		}
		return AddToCart{Category: arg, Items: values}, nil
	}
	return nil, fmt.Errorf("unknown control %q", customID)
}
