// Package money renders ledger amounts for display.
//
// Values are rounded here and nowhere else: the calculator keeps full precision so
// repeated computations never drift from display rounding.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripledger/internal/models"
)

// DisplayPlaces is the number of decimals shown for every currency.
const DisplayPlaces = 2

// Round rounds half away from zero to DisplayPlaces, starting from the shortest
// decimal representation of value (so 1.005 rounds to 1.01).
func Round(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(DisplayPlaces)
}

// Format renders value as "12.30 EUR". A blank currency falls back to the default.
func Format(value float64, currency string) string {
	return Round(value).StringFixed(DisplayPlaces) + " " + models.NormalizeCurrency(currency)
}

// FormatSigned is Format with a leading "+" for values that are not negative once rounded,
// the way balances are shown: "+50.00 USD", "-50.00 USD", "+0.00 USD".
func FormatSigned(value float64, currency string) string {
	s := Format(value, currency)
	if !Round(value).IsNegative() {
		return "+" + s
	}
	return s
}
