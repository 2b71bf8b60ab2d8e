// Package money provides a fixed-point monetary value object.
//
// Amounts are stored as int64 cents (scale 2) alongside an ISO 4217 currency
// code. Arithmetic between two values requires identical currencies.
package money

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	apperrors "financehouse/internal/errors"
)

// Money is an immutable amount of a single currency, stored in cents.
type Money struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

// New creates a Money value. Negative amounts are rejected.
func New(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, apperrors.ErrInvalidAmount
	}
	if currency == "" {
		return Money{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency is required")
	}
	return Money{Cents: cents, Currency: currency}, nil
}

// FromCents creates a Money value without validation. Callers use this only
// for values already validated or loaded from storage.
func FromCents(cents int64, currency string) Money {
	return Money{Cents: cents, Currency: currency}
}

// Zero returns the zero amount in the given currency.
func Zero(currency string) Money {
	return Money{Cents: 0, Currency: currency}
}

// ParseDecimal converts a decimal string to a Money value.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. More than
// two fraction digits, negative values, and non-numeric input are rejected.
func ParseDecimal(s, currency string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, apperrors.ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, apperrors.ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, apperrors.ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	// Scale is capped at 2: a third fraction digit is an error, not a rounding case.
	if len(fracPart) > 2 {
		return Money{}, apperrors.ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, apperrors.ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, apperrors.ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, apperrors.ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Money{}, apperrors.ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
		}
	}
	return New(iv*100+fracCents, currency)
}

// Add returns m + o. Fails if the currencies differ.
func (m Money) Add(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, apperrors.ErrCurrencyMismatch
	}
	return Money{Cents: m.Cents + o.Cents, Currency: m.Currency}, nil
}

// Sub returns m - o. Fails if the currencies differ. The result may be
// negative; callers that need clamping do it themselves.
func (m Money) Sub(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, apperrors.ErrCurrencyMismatch
	}
	return Money{Cents: m.Cents - o.Cents, Currency: m.Currency}, nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.Cents == 0 }

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool { return m.Cents > 0 }

// Format renders the amount as a plain decimal string, e.g. "1234.56".
func (m Money) Format() string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// String renders the amount with its currency code, e.g. "1234.56 BRL".
func (m Money) String() string {
	return m.Format() + " " + m.Currency
}

// PercentOf computes part/whole x 100 using 4-decimal intermediate precision
// and half-up rounding to 2 decimals. A zero whole yields 0.
func PercentOf(part, whole Money) (float64, error) {
	if part.Currency != whole.Currency {
		return 0, apperrors.ErrCurrencyMismatch
	}
	if whole.Cents <= 0 {
		return 0, nil
	}
	// part/whole*100 in units of 0.0001%, rounded half up.
	pct4 := (part.Cents*1_000_000 + whole.Cents/2) / whole.Cents
	// Round half up to 2 decimals.
	pct2 := (pct4 + 50) / 100
	return float64(pct2) / 100, nil
}
