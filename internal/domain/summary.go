package domain

type VatStatus string

const (
	VatStatusOK       VatStatus = "ok"
	VatStatusWarning  VatStatus = "warning"
	VatStatusExceeded VatStatus = "exceeded"
)

// LastInvoice is the most recent invoice of the current year.
type LastInvoice struct {
	Number string  `json:"number"`
	Date   string  `json:"date"`
	Total  float64 `json:"total"`
	Status string  `json:"status"`
}

// FinancialSummary is recomputed on every request and never stored as is. Year-to-date
// totals are in the organization currency; the *AED fields are in the reporting currency.
type FinancialSummary struct {
	Year           int          `json:"year"`
	TotalBilled    float64      `json:"totalBilled"`
	TotalPaid      float64      `json:"totalPaid"`
	TotalUnpaid    float64      `json:"totalUnpaid"`
	CountInvoices  int          `json:"countInvoices"`
	CountOverdue   int          `json:"countOverdue"`
	LastInvoice    *LastInvoice `json:"lastInvoice"`
	OrgCurrency    string       `json:"orgCurrency"`
	TotalBilledAED float64      `json:"totalBilledAED"`
	TotalPaidAED   float64      `json:"totalPaidAED"`
	TotalUnpaidAED float64      `json:"totalUnpaidAED"`
	Rolling12AED   float64      `json:"rolling12AED"`
	Rolling12Start string       `json:"rolling12Start"`
	VatStatus      VatStatus    `json:"vatStatus"`
	VatThreshold   float64      `json:"vatThreshold"`
	VatWarnAt      float64      `json:"vatWarnAt"`
	PrevYearAED    float64      `json:"prevYearAED"`
}

// SyncResult is the outcome of one snapshot sync pass.
type SyncResult struct {
	Synced int `json:"synced"`
	Errors int `json:"errors"`
}
