package zohodomain

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary or rate field of a Zoho payload. Zoho sends numbers, but older
// endpoints and custom fields send strings; anything unparsable decodes as an invalid Amount
// instead of failing the whole page.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

func NewAmount(value string) Amount {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}
	}
	return Amount{Value: d, Valid: true}
}

func AmountFromFloat(value float64) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Valid: true}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if raw == "" || raw == "null" {
		*a = Amount{}
		return nil
	}

	*a = NewAmount(raw)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Value.String()), nil
}

// OrZero returns the value, or zero when the field was missing or not numeric.
func (a Amount) OrZero() decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Value
}
