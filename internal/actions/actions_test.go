package actions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solimanzein/storefront-bot/pkg/enums"
)

func TestParseRoundTripsEncodedIDs(t *testing.T) {
	tests := []struct {
		name     string
		customID string
		values   []string
		want     Action
	}{
		{name: "plus", customID: IncrementID("Sword"), want: Increment{Item: "Sword"}},
		{name: "minus", customID: DecrementID("Shield"), want: Decrement{Item: "Shield"}},
		{name: "remove", customID: RemoveID("Potion"), want: Remove{Item: "Potion"}},
		{name: "checkout", customID: CheckoutID(), want: Checkout{}},
		{
			name:     "payment",
			customID: PaymentSelectID(),
			values:   []string{"litecoin"},
			want:     SelectPayment{Method: enums.PaymentMethodLitecoin},
		},
		{
			name:     "catalog",
			customID: CatalogSelectID("games"),
			values:   []string{"Sword", "Shield"},
			want:     AddToCart{Category: "games", Items: []string{"Sword", "Shield"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.customID, tt.values)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseItemNamesContainingSeparatorCharacters(t *testing.T) {
	// Only the first separator splits; item names keep the rest.
	got, err := Parse("plus|Buy|One|Get|One", nil)
	require.NoError(t, err)
	require.Equal(t, Increment{Item: "Buy|One|Get|One"}, got)
}

func TestParseRejectsMalformedIDs(t *testing.T) {
	tests := []struct {
		name     string
		customID string
		values   []string
	}{
		{name: "unknown verb", customID: "teleport|Sword"},
		{name: "plus without item", customID: "plus|"},
		{name: "bare plus", customID: "plus"},
		{name: "payment without value", customID: "payment_select"},
		{name: "payment with two values", customID: "payment_select", values: []string{"card", "paypal"}},
		{name: "payment unknown method", customID: "payment_select", values: []string{"venmo"}},
		{name: "catalog without category", customID: "catalog_select"},
		{name: "catalog without values", customID: "catalog_select|games"},
		{name: "empty", customID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.customID, tt.values)
			require.Error(t, err)
		})
	}
}
