package pricing

import (
	"errors"
	"fmt"
)

var ErrNegativeMoney = errors.New("money cannot be negative")

// Money is an amount in integer pence. Lead prices and credit balances never
// need sub-penny precision.
type Money struct {
	pence int64
}

func NewMoney(pence int64) Money {
	return Money{pence: pence}
}

func NewMoneyFromPence(pence int64) (Money, error) {
	if pence < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{pence: pence}, nil
}

func (m Money) Pence() int64 {
	return m.pence
}

func (m Money) IsZero() bool {
	return m.pence == 0
}

func (m Money) LessThan(other Money) bool {
	return m.pence < other.pence
}

func (m Money) Add(other Money) Money {
	return Money{pence: m.pence + other.pence}
}

func (m Money) Sub(other Money) Money {
	return Money{pence: m.pence - other.pence}
}

// String formats as decimal pounds, e.g. "9.99".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.pence/100, m.pence%100)
}
