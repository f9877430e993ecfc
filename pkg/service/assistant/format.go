package assistant

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var enIN = message.NewPrinter(language.MustParse("en-IN"))

// FormatCurrency renders an amount with its currency symbol using en-IN
// conventions (Indian digit grouping, 2 fraction digits). Unknown or empty
// currency codes fall back to INR.
func FormatCurrency(amount float64, code string) string {
	unit := currency.INR
	if code != "" {
		if parsed, err := currency.ParseISO(code); err == nil {
			unit = parsed
		}
	}
	symbol := enIN.Sprint(currency.Symbol(unit))
	return symbol + enIN.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatDateTime renders a timestamp the way the assistant speaks it,
// matching the en-IN medium-date short-time style.
func FormatDateTime(t time.Time) string {
	return t.Format("2 Jan 2006, 3:04 pm")
}

// MaskAccount hides all but the last four digits of an account number.
// Short values are returned unchanged.
func MaskAccount(value string) string {
	if value == "" {
		return ""
	}
	if len(value) > 4 {
		return "ending " + value[len(value)-4:]
	}
	return value
}
