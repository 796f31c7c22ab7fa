package domain

import (
	"fmt"

	"github.com/festarent/rental_mgmt_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Money is a fixed-precision monetary value: an integer amount of minor units
// (e.g. centavos) plus a currency code. It is never backed by a binary float.
type Money struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
}

// NewMoney builds a Money value from minor units.
func NewMoney(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// Zero returns the zero value in the given currency.
func Zero(currency string) Money {
	return Money{Amount: 0, Currency: currency}
}

// SameCurrency reports whether both values share a currency code.
func (m Money) SameCurrency(other Money) bool {
	return m.Currency == other.Currency
}

// Add returns m + other. Mixing currencies fails with ErrCurrencyMismatch.
func (m Money) Add(other Money) (Money, error) {
	if !m.SameCurrency(other) {
		return Money{}, fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Sub returns m - other. Mixing currencies fails with ErrCurrencyMismatch.
func (m Money) Sub(other Money) (Money, error) {
	if !m.SameCurrency(other) {
		return Money{}, fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// Scale multiplies by a decimal factor, rounding half-up to the minor unit.
func (m Money) Scale(factor decimal.Decimal) Money {
	scaled := decimal.NewFromInt(m.Amount).Mul(factor).Round(0)
	return Money{Amount: scaled.IntPart(), Currency: m.Currency}
}

// RatioOf returns m / denom as a decimal, without rounding. Denominator zero
// or a currency mismatch is the caller's responsibility to rule out first.
func (m Money) RatioOf(denom Money) decimal.Decimal {
	return decimal.NewFromInt(m.Amount).Div(decimal.NewFromInt(denom.Amount))
}

func (m Money) IsZero() bool     { return m.Amount == 0 }
func (m Money) IsNegative() bool { return m.Amount < 0 }
func (m Money) IsPositive() bool { return m.Amount > 0 }

// Cmp compares amounts; it assumes same-currency operands.
func (m Money) Cmp(other Money) int {
	switch {
	case m.Amount < other.Amount:
		return -1
	case m.Amount > other.Amount:
		return 1
	default:
		return 0
	}
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}
