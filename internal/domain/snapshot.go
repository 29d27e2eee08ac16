package domain

import "time"

// ZohoSnapshot is the persisted projection of a FinancialSummary, one row per client.
type ZohoSnapshot struct {
	ClientID       string    `json:"client_id"`
	UpdatedAt      time.Time `json:"updated_at"`
	Rolling12AED   float64   `json:"rolling12_aed"`
	TotalBilledAED float64   `json:"total_billed_aed"`
	TotalUnpaidAED float64   `json:"total_unpaid_aed"`
	VatStatus      VatStatus `json:"vat_status"`
	Year           int       `json:"year"`
	CountInvoices  int       `json:"count_invoices"`
	CountOverdue   int       `json:"count_overdue"`
	OrgCurrency    string    `json:"org_currency"`
}

func NewZohoSnapshot(clientID string, summary *FinancialSummary, updatedAt time.Time) *ZohoSnapshot {
	return &ZohoSnapshot{
		ClientID:       clientID,
		UpdatedAt:      updatedAt,
		Rolling12AED:   summary.Rolling12AED,
		TotalBilledAED: summary.TotalBilledAED,
		TotalUnpaidAED: summary.TotalUnpaidAED,
		VatStatus:      summary.VatStatus,
		Year:           summary.Year,
		CountInvoices:  summary.CountInvoices,
		CountOverdue:   summary.CountOverdue,
		OrgCurrency:    summary.OrgCurrency,
	}
}
