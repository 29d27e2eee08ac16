package summarizing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
)

func TestNormalizer_ReportingCurrencyPassesThrough(t *testing.T) {
	n := NewNormalizer("AED")

	for _, total := range []string{"0", "0.01", "1234.56", "374999.99", "1000000"} {
		inv := zohodomain.Invoice{
			CurrencyCode: "AED",
			Total:        zohodomain.NewAmount(total),
			Balance:      zohodomain.NewAmount(total),
			ExchangeRate: zohodomain.NewAmount("3.6725"),
		}

		assert.True(t, n.ToReportingCurrency(inv).Equal(decimal.RequireFromString(total)), total)
		assert.True(t, n.ToReportingBalance(inv).Equal(decimal.RequireFromString(total)), total)
	}
}

func TestNormalizer_ForeignCurrencyUsesInvoiceRate(t *testing.T) {
	n := NewNormalizer("AED")

	tests := []struct {
		name    string
		inv     zohodomain.Invoice
		wantTot string
		wantBal string
	}{
		{
			name: "usd",
			inv: zohodomain.Invoice{
				CurrencyCode: "USD",
				Total:        zohodomain.NewAmount("100"),
				Balance:      zohodomain.NewAmount("40"),
				ExchangeRate: zohodomain.NewAmount("3.6725"),
			},
			wantTot: "367.25",
			wantBal: "146.9",
		},
		{
			name: "missing rate counts as 1",
			inv: zohodomain.Invoice{
				CurrencyCode: "EUR",
				Total:        zohodomain.NewAmount("250"),
				Balance:      zohodomain.NewAmount("250"),
			},
			wantTot: "250",
			wantBal: "250",
		},
		{
			name: "missing amounts count as 0",
			inv: zohodomain.Invoice{
				CurrencyCode: "GBP",
				ExchangeRate: zohodomain.NewAmount("4.65"),
			},
			wantTot: "0",
			wantBal: "0",
		},
		{
			name: "currency code compared case-insensitively",
			inv: zohodomain.Invoice{
				CurrencyCode: "aed",
				Total:        zohodomain.NewAmount("10"),
				ExchangeRate: zohodomain.NewAmount("2"),
			},
			wantTot: "10",
			wantBal: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, n.ToReportingCurrency(tt.inv).Equal(decimal.RequireFromString(tt.wantTot)))
			assert.True(t, n.ToReportingBalance(tt.inv).Equal(decimal.RequireFromString(tt.wantBal)))
		})
	}
}
