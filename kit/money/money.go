// Package money implements fixed-point monetary amounts at a scale of two
// fraction digits. All arithmetic goes through shopspring/decimal; values
// never pass through float64.
package money

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fraction digits every Amount carries.
const Scale = 2

var (
	ErrInvalidAmount = errors.New("money: invalid amount")
	ErrTooPrecise    = errors.New("money: more than two fraction digits")
)

// Amount is an exact decimal value with two fraction digits.
type Amount struct {
	d decimal.Decimal
}

var Zero = Amount{d: decimal.Zero}

// Parse reads a decimal string such as "10", "10.5" or "10.50". Inputs with
// more than two fraction digits are rejected rather than rounded.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.Equal(d.Truncate(Scale)) {
		return Zero, fmt.Errorf("%w: %q", ErrTooPrecise, s)
	}
	return Amount{d: d}, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromCents builds an Amount from an integer count of minor units.
func FromCents(cents int64) Amount {
	return Amount{d: decimal.New(cents, -Scale)}
}

func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

// Mul multiplies by an integer quantity. The scale is unchanged.
func (a Amount) Mul(qty int) Amount {
	return Amount{d: a.d.Mul(decimal.NewFromInt(int64(qty)))}
}

// Sum adds up amounts; the sum of nothing is Zero.
func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func (a Amount) LessThan(b Amount) bool { return a.d.LessThan(b.d) }

// Cents returns the amount in minor units.
func (a Amount) Cents() int64 {
	return a.d.Shift(Scale).IntPart()
}

// String always renders two fraction digits, e.g. "35.00".
func (a Amount) String() string {
	return a.d.StringFixed(Scale)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both "12.50" and 12.50. Numbers are read from their
// literal text, so no binary float rounding takes place.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Value stores amounts as their fixed two-digit text.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

func (a *Amount) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		*a = Amount{d: decimal.NewFromInt(v)}
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidAmount, src)
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
