package model

import (
	"github.com/shopspring/decimal"
)

// Amount is a nullable monetary value with two fraction digits.
// It is persisted as numeric(10,2) and encoded in JSON as a fixed-point string.
type Amount struct {
	decimal.NullDecimal
}

// NewAmount parses s as an exact decimal amount.
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{decimal.NewNullDecimal(d)}, nil
}

// MustAmount is like NewAmount but panics on malformed input.
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String renders the amount with exactly two fraction digits, or "" when null.
func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return a.Decimal.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + a.Decimal.StringFixed(2) + `"`), nil
}
