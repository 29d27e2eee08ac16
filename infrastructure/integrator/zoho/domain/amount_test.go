package zohodomain

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input     string
		wantValid bool
		want      string
	}{
		{input: `1250.5`, wantValid: true, want: "1250.5"},
		{input: `"1250.50"`, wantValid: true, want: "1250.5"},
		{input: `0`, wantValid: true, want: "0"},
		{input: `null`, wantValid: false, want: "0"},
		{input: `""`, wantValid: false, want: "0"},
		{input: `"n/a"`, wantValid: false, want: "0"},
		{input: `true`, wantValid: false, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var a Amount
			require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(tt.input), &a))
			assert.Equal(t, tt.wantValid, a.Valid)
			assert.True(t, a.OrZero().Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestInvoice_Rate(t *testing.T) {
	tests := []struct {
		name string
		rate Amount
		want string
	}{
		{name: "missing", rate: Amount{}, want: "1"},
		{name: "zero", rate: NewAmount("0"), want: "1"},
		{name: "negative", rate: NewAmount("-3.6725"), want: "1"},
		{name: "usd to aed", rate: NewAmount("3.6725"), want: "3.6725"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invoice{ExchangeRate: tt.rate}
			assert.True(t, inv.Rate().Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestInvoice_IsOutstanding(t *testing.T) {
	outstanding := map[InvoiceStatus]bool{
		InvoiceStatusDraft:   true,
		InvoiceStatusSent:    true,
		InvoiceStatusOverdue: true,
		"partially_paid":     true,
		InvoiceStatusPaid:    false,
		InvoiceStatusVoid:    false,
	}

	for status, want := range outstanding {
		assert.Equal(t, want, Invoice{Status: status}.IsOutstanding(), status)
	}
}
