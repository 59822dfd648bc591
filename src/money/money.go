// Package money is a fixed-point money value. Amounts are integer minor
// units (cents); float arithmetic is never used for prices or refunds.
package money

import (
	"errors"
	"fmt"
)

var ErrCurrencyMismatch = errors.New("money: operation on mixed currencies")

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func New(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

func Zero(currency string) Money {
	return Money{Amount: 0, Currency: currency}
}

func (m Money) Add(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("%w: %s + %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{Amount: m.Amount + o.Amount, Currency: m.Currency}, nil
}

func (m Money) Sub(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{Amount: m.Amount - o.Amount, Currency: m.Currency}, nil
}

func (m Money) MulInt(n int64) Money {
	return Money{Amount: m.Amount * n, Currency: m.Currency}
}

// Percent returns pct% of m rounded half-up to the minor unit.
func (m Money) Percent(pct uint) Money {
	return Money{Amount: (m.Amount*int64(pct) + 50) / 100, Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) Equal(o Money) bool {
	return m.Amount == o.Amount && m.Currency == o.Currency
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}
