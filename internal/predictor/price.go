package predictor

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Price is an estimate in thousands of dollars.
type Price float64

// String renders the price the way the form shows it, e.g. "$1,234.56k".
func (p Price) String() string {
	return message.NewPrinter(language.English).Sprintf("$%.2fk", float64(p))
}
