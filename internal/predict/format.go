package predict

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter converts predictions into display strings.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter creates a Formatter that groups digits according to locale
// (a BCP 47 tag such as "en-US") and prefixes symbol.
func NewFormatter(locale, symbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidLocale, locale, err)
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}, nil
}

// FormatPrice converts a prediction in thousands into a whole-unit price
// string, e.g. 24.5 becomes "$24,500".
func (f *Formatter) FormatPrice(thousands float64) string {
	amount := math.Round(thousands * 1000)
	if amount < 0 {
		return "-" + f.symbol + f.printer.Sprintf("%.0f", -amount)
	}
	if amount == 0 {
		// Drop the sign of negative zero.
		amount = 0
	}
	return f.symbol + f.printer.Sprintf("%.0f", amount)
}
