package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Price formats a decimal amount for display.
// Example: Price(d("1234.5"), "USD") => "$1,234.50"
func Price(amount decimal.Decimal, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	switch currency {
	case "USD":
		return sign(amount) + "$" + grouped(amount.Abs(), 2)
	case "EUR":
		return sign(amount) + "€" + grouped(amount.Abs(), 2)
	case "JPY":
		// no minor units
		return sign(amount) + "¥" + grouped(amount.Abs(), 0)
	default:
		return currency + " " + grouped(amount, 2)
	}
}

func sign(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-"
	}
	return ""
}

func grouped(amount decimal.Decimal, places int32) string {
	s := amount.StringFixed(places)
	head := s
	tail := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		head, tail = s[:i], s[i:]
	}
	out := ""
	for i, c := range head {
		if i != 0 && (len(head)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	return out + tail
}

// Date formats time in a short human-readable form.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
