package zohodomain

import "github.com/shopspring/decimal"

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// Invoice is a read-only snapshot of a Zoho Books invoice.
type Invoice struct {
	InvoiceID     string        `json:"invoice_id"`
	InvoiceNumber string        `json:"invoice_number"`
	CustomerName  string        `json:"customer_name"`
	Date          string        `json:"date"` // YYYY-MM-DD
	DueDate       string        `json:"due_date"`
	Total         Amount        `json:"total"`
	Balance       Amount        `json:"balance"`
	CurrencyCode  string        `json:"currency_code"`
	ExchangeRate  Amount        `json:"exchange_rate"`
	Status        InvoiceStatus `json:"status"`
}

func (i Invoice) IsVoid() bool {
	return i.Status == InvoiceStatusVoid
}

func (i Invoice) IsOverdue() bool {
	return i.Status == InvoiceStatusOverdue
}

// IsOutstanding reports whether the balance of the invoice is still owed.
func (i Invoice) IsOutstanding() bool {
	return i.Status == InvoiceStatusOverdue ||
		(i.Status != InvoiceStatusPaid && i.Status != InvoiceStatusVoid)
}

// Rate is the exchange rate from the invoice currency to the organization base currency at
// invoice time. A missing, non-numeric or non-positive rate counts as 1.
func (i Invoice) Rate() decimal.Decimal {
	if !i.ExchangeRate.Valid || !i.ExchangeRate.Value.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return i.ExchangeRate.Value
}

type PageContext struct {
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	HasMorePage bool `json:"has_more_page"`
}

// InvoicesPage is one page of GET /invoices.
type InvoicesPage struct {
	Code        int          `json:"code"`
	Message     string       `json:"message"`
	Invoices    []Invoice    `json:"invoices"`
	PageContext *PageContext `json:"page_context"`
}
