package utils

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders a raw decimal price as a locale-aware display
// string (e.g. 34.5 -> "$ 34.50"). Display only; comparison logic
// always runs on the raw numbers.
func FormatUSD(amount float64) string {
	return usdPrinter.Sprintf("%v", currency.Symbol(currency.USD.Amount(amount)))
}
