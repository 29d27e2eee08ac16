package summarizing

import (
	"strings"

	"github.com/shopspring/decimal"

	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
)

// Normalizer converts invoice amounts into the reporting currency using the exchange rate
// recorded on each invoice at invoice time.
type Normalizer struct {
	ReportingCurrency string
}

func NewNormalizer(reportingCurrency string) Normalizer {
	return Normalizer{ReportingCurrency: strings.ToUpper(strings.TrimSpace(reportingCurrency))}
}

// ToReportingCurrency returns the invoice total in the reporting currency.
func (n Normalizer) ToReportingCurrency(inv zohodomain.Invoice) decimal.Decimal {
	return n.convert(inv, inv.Total.OrZero())
}

// ToReportingBalance returns the outstanding balance in the reporting currency.
func (n Normalizer) ToReportingBalance(inv zohodomain.Invoice) decimal.Decimal {
	return n.convert(inv, inv.Balance.OrZero())
}

func (n Normalizer) convert(inv zohodomain.Invoice, amount decimal.Decimal) decimal.Decimal {
	if n.isReporting(inv.CurrencyCode) {
		return amount
	}
	return amount.Mul(inv.Rate())
}

func (n Normalizer) isReporting(currency string) bool {
	return strings.EqualFold(strings.TrimSpace(currency), n.ReportingCurrency)
}
