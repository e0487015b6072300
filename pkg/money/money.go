package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Zero is the additive identity for USD amounts.
var Zero = decimal.Zero

// FormatUSD renders an amount the way the storefront quotes prices,
// always with two decimal places.
func FormatUSD(amount decimal.Decimal) string {
	return fmt.Sprintf("$%s USD", amount.StringFixed(2))
}

// ParseUSD parses a decimal string such as "5.00" into an amount.
// Negative amounts are rejected.
func ParseUSD(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", value, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q cannot be negative", value)
	}
	return amount, nil
}

// LineTotal returns unitPrice multiplied by quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
