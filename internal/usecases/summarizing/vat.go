package summarizing

import (
	"github.com/shopspring/decimal"

	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/domain"
)

// Thresholds are the UAE VAT registration levels in the reporting currency.
type Thresholds struct {
	Threshold decimal.Decimal
	WarnAt    decimal.Decimal
}

func NewThresholds(cfg config.Vat) Thresholds {
	return Thresholds{
		Threshold: decimal.NewFromFloat(cfg.Threshold),
		WarnAt:    decimal.NewFromFloat(cfg.WarnAt),
	}
}

// Classify rates an unrounded rolling 12 month total; 374999.995 is still below the
// threshold even though it is reported as 375000.00.
func (t Thresholds) Classify(rolling12 decimal.Decimal) domain.VatStatus {
	switch {
	case rolling12.GreaterThanOrEqual(t.Threshold):
		return domain.VatStatusExceeded
	case rolling12.GreaterThanOrEqual(t.WarnAt):
		return domain.VatStatusWarning
	default:
		return domain.VatStatusOK
	}
}
