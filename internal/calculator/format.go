package calculator

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var DefaultCurrency = currency.EUR

// FormatRange renders an estimate with the digit grouping of locale,
// e.g. "4,000 – 5,500 EUR" for en and "4.000 – 5.500 EUR" for de.
// Totals themselves are locale independent.
func FormatRange(e PriceEstimate, locale string, cur currency.Unit) string {
	tag, err := language.Parse(locale)
	if err != nil || tag == language.Und {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	if e.MinTotal == e.MaxTotal {
		return p.Sprintf("%d %s", e.MinTotal, cur.String())
	}
	return p.Sprintf("%d – %d %s", e.MinTotal, e.MaxTotal, cur.String())
}
