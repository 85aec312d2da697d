package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nskaik/order-payment-api/kit/money"
	"github.com/nskaik/order-payment-api/kit/validation"
)

const maxProductName = 255

var minUnitPrice = money.MustParse("0.01")

// Price holds a unit price exactly as the client wrote it, quoted or not,
// so the precision check sees the original digits.
type Price string

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*p = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*p = Price(str)
	default:
		*p = Price(s)
	}
	return nil
}

type ItemInput struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Price  `json:"unit_price"`
}

// ValidateItems checks a full item set and converts it. Field errors are
// keyed items.<index>.<field>.
func ValidateItems(inputs []ItemInput) ([]Item, error) {
	errs := validation.Errors{}
	if len(inputs) == 0 {
		errs.Add("items", "The items field is required and must contain at least one item.")
		return nil, errs.Err()
	}

	items := make([]Item, 0, len(inputs))
	for i, in := range inputs {
		prefix := fmt.Sprintf("items.%d", i)
		item, itemErrs := validateItem(in)
		errs.Merge(prefix, itemErrs)
		items = append(items, item)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func validateItem(in ItemInput) (Item, validation.Errors) {
	errs := validation.Errors{}

	name := strings.TrimSpace(in.ProductName)
	switch {
	case name == "":
		errs.Add("product_name", "The product name field is required.")
	case utf8.RuneCountInString(name) > maxProductName:
		errs.Add("product_name", "The product name may not be greater than 255 characters.")
	}

	if in.Quantity < 1 {
		errs.Add("quantity", "The quantity must be at least 1.")
	}

	var price money.Amount
	raw := strings.TrimSpace(string(in.UnitPrice))
	if raw == "" {
		errs.Add("unit_price", "The unit price field is required.")
	} else {
		p, err := money.Parse(raw)
		switch {
		case errors.Is(err, money.ErrTooPrecise):
			errs.Add("unit_price", "The unit price may not have more than 2 decimal places.")
		case err != nil:
			errs.Add("unit_price", "The unit price must be a number.")
		case p.LessThan(minUnitPrice):
			errs.Add("unit_price", "The unit price must be at least 0.01.")
		default:
			price = p
		}
	}

	return Item{ProductName: name, Quantity: in.Quantity, UnitPrice: price}, errs
}

// ParseStatus reads the optional list filter. Empty means no filter.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return "", nil
	}
	s := Status(strings.ToLower(raw))
	if !s.Valid() {
		return "", validation.Field("status", "The selected status is invalid.", nil)
	}
	return s, nil
}
