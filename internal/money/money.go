// Package money is a small value object for currency amounts. Inputs are
// validated before any arithmetic and every result is truncated toward zero
// to the currency's default fraction digits; banker's rounding is never used.
package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Currency carries an ISO code and its default fraction digits.
type Currency struct {
	Code           string
	FractionDigits int32
}

var (
	RUB = Currency{Code: "RUB", FractionDigits: 2}
	USD = Currency{Code: "USD", FractionDigits: 2}
)

// DefaultCurrency is used by the single-argument constructor.
var DefaultCurrency = RUB

// FormatError reports input that cannot be treated as a money value. Input
// holds the offending string verbatim.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("value %q %s", e.Input, e.Reason)
}

// numericPattern accepts unsigned decimals with a dot separator only.
// Negative signs, commas and any non-digit characters are rejected up front.
var numericPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

type Money struct {
	value    decimal.Decimal
	currency Currency
}

// New parses a money value in the given currency. The string must be an
// unsigned decimal with a dot separator; anything else fails before any
// arithmetic is attempted.
func New(s string, currency Currency) (Money, error) {
	if !numericPattern.MatchString(s) {
		return Money{}, &FormatError{Input: s, Reason: "contains non-numeric characters, a sign, or a non-dot separator"}
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, &FormatError{Input: s, Reason: "is not a decimal number"}
	}
	if v.IsNegative() {
		return Money{}, &FormatError{Input: s, Reason: "is negative"}
	}
	return Money{value: v, currency: currency}, nil
}

// NewDefault parses a money value in the default currency.
func NewDefault(s string) (Money, error) {
	return New(s, DefaultCurrency)
}

// Value returns the amount truncated to the currency's fraction digits.
func (m Money) Value() decimal.Decimal {
	return m.value.Truncate(m.currency.FractionDigits)
}

func (m Money) Currency() Currency {
	return m.currency
}

// MultiplyByInt multiplies the truncated amount by an integer factor and
// truncates the result again.
func (m Money) MultiplyByInt(n int) Money {
	v := m.Value().Mul(decimal.NewFromInt(int64(n))).Truncate(m.currency.FractionDigits)
	return Money{value: v, currency: m.currency}
}

// DivideByInt divides the truncated amount by an integer divisor, truncating
// the quotient to the currency's fraction digits.
func (m Money) DivideByInt(n int) (Money, error) {
	if n == 0 {
		return Money{}, &FormatError{Input: "0", Reason: "is not a usable divisor"}
	}
	v := m.Value().DivRound(decimal.NewFromInt(int64(n)), m.currency.FractionDigits+8).
		Truncate(m.currency.FractionDigits)
	return Money{value: v, currency: m.currency}, nil
}

// Add parses the argument in this money's currency and returns the truncated sum.
func (m Money) Add(s string) (Money, error) {
	other, err := New(s, m.currency)
	if err != nil {
		return Money{}, err
	}
	v := m.Value().Add(other.Value()).Truncate(m.currency.FractionDigits)
	return Money{value: v, currency: m.currency}, nil
}

// Subtract parses the argument in this money's currency and returns the
// truncated difference.
func (m Money) Subtract(s string) (Money, error) {
	other, err := New(s, m.currency)
	if err != nil {
		return Money{}, err
	}
	v := m.Value().Sub(other.Value()).Truncate(m.currency.FractionDigits)
	return Money{value: v, currency: m.currency}, nil
}

func (m Money) String() string {
	return m.Value().String() + " " + m.currency.Code
}
