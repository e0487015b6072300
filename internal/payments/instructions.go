package payments

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/solimanzein/storefront-bot/pkg/config"
	"github.com/solimanzein/storefront-bot/pkg/enums"
	pkgerrors "github.com/solimanzein/storefront-bot/pkg/errors"
	"github.com/solimanzein/storefront-bot/pkg/money"
)

// Instructions is the message emitted once a payment method is chosen.
type Instructions struct {
	Title string
	Body  string
}

// Formatter renders payment instructions for a quoted total. All
// contact and address content comes from configuration; there is no
// payment processing behind it.
type Formatter struct {
	paypalEmail     string
	litecoinAddress string
	cardNote        string
}

// NewFormatter builds a formatter from the payments config.
func NewFormatter(cfg config.PaymentsConfig) (*Formatter, error) {
	if cfg.PayPalEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "paypal email required")
	}
	if cfg.LitecoinAddress == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "litecoin address required")
	}
	return &Formatter{
		paypalEmail:     cfg.PayPalEmail,
		litecoinAddress: cfg.LitecoinAddress,
		cardNote:        cfg.CardNote,
	}, nil
}

// Format produces the instruction message for the chosen method and
// the total snapshotted at checkout.
func (f *Formatter) Format(method enums.PaymentMethod, total decimal.Decimal) (Instructions, error) {
	quoted := money.FormatUSD(total)

	switch method {
	case enums.PaymentMethodPayPal:
		return Instructions{
			Title: "PayPal Payment",
			Body: fmt.Sprintf(
				"Your total is %s.\nPlease send %s to `%s` through FnF (friends and family).\nAfter paying, send a screenshot of the transaction in the ticket.",
				quoted, quoted, f.paypalEmail,
			),
		}, nil
	case enums.PaymentMethodLitecoin:
		return Instructions{
			Title: "Litecoin Payment",
			Body: fmt.Sprintf(
				"Your total is %s.\nPlease send exactly %s to this Litecoin address `%s`.\nAfter paying, send a screenshot of the transaction in the ticket.",
				quoted, quoted, f.litecoinAddress,
			),
		}, nil
	case enums.PaymentMethodCard, enums.PaymentMethodGooglePay, enums.PaymentMethodApplePay:
		return Instructions{
			Title: fmt.Sprintf("%s Payment", method.Label()),
			Body: fmt.Sprintf(
				"Your total is %s.\n%s\nAfter paying, send a screenshot of the transaction.",
				quoted, f.cardNote,
			),
		}, nil
	}
	return Instructions{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported payment method %q", method))
}
