package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/subvista/subvista-backend/pkg/enums"
)

// Absent is rendered wherever an amount or date is missing upstream.
const Absent = "N/A"

var symbolByCurrency = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
}

var currencyBySymbol = map[string]string{
	"$": "usd",
	"€": "eur",
	"£": "gbp",
}

// Format renders an integer minor-unit amount as a display string. Currencies
// with a known symbol render as "$10.00" ("-$5.00" for credits); anything else
// falls back to "10.00 XXX".
func Format(amountMinor int64, currency string) string {
	currency = strings.ToLower(strings.TrimSpace(currency))
	value := decimal.New(amountMinor, -2)

	symbol, ok := symbolByCurrency[currency]
	if !ok {
		code := strings.ToUpper(currency)
		if code == "" {
			code = "USD"
		}
		return fmt.Sprintf("%s %s", value.StringFixed(2), code)
	}

	if value.IsNegative() {
		return fmt.Sprintf("-%s%s", symbol, value.Abs().StringFixed(2))
	}
	return fmt.Sprintf("%s%s", symbol, value.StringFixed(2))
}

// FormatPtr renders an optional amount, falling back to Absent when nil.
func FormatPtr(amountMinor *int64, currency string) string {
	if amountMinor == nil {
		return Absent
	}
	return Format(*amountMinor, currency)
}

// Parse recovers the minor-unit amount and currency from a string produced by
// Format. It rejects anything it could not have emitted itself.
func Parse(value string) (int64, string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == Absent {
		return 0, "", fmt.Errorf("no amount in %q", value)
	}

	negative := strings.HasPrefix(trimmed, "-")
	trimmed = strings.TrimPrefix(trimmed, "-")

	currency := ""
	for symbol, code := range currencyBySymbol {
		if strings.HasPrefix(trimmed, symbol) {
			trimmed = strings.TrimPrefix(trimmed, symbol)
			currency = code
			break
		}
	}
	if currency == "" {
		// "10.00 XXX" form
		parts := strings.Fields(trimmed)
		if len(parts) != 2 || len(parts[1]) != 3 {
			return 0, "", fmt.Errorf("unrecognized amount format %q", value)
		}
		trimmed = parts[0]
		currency = strings.ToLower(parts[1])
	}

	dec, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, "", fmt.Errorf("parse amount %q: %w", value, err)
	}
	minor := dec.Mul(decimal.New(100, 0))
	if !minor.IsInteger() {
		return 0, "", fmt.Errorf("amount %q is not a whole minor-unit value", value)
	}
	amount := minor.IntPart()
	if negative {
		amount = -amount
	}
	return amount, currency, nil
}

// FormatFrequency renders a price's recurring cadence. Prices with no
// recurring interval are one-time charges.
func FormatFrequency(interval *enums.BillingInterval, intervalCount int64) string {
	if interval == nil || *interval == "" {
		return "One-time"
	}
	if intervalCount <= 1 {
		return fmt.Sprintf("Every %s", interval.String())
	}
	return fmt.Sprintf("Every %d %ss", intervalCount, interval.String())
}
