package summarizing

import (
	"context"

	"github.com/indubai/portal-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_summarizer.go -package=mocks

// Summarizer computes the financial summary of a Zoho Books organization.
type Summarizer interface {
	// CalcSummary fetches the invoices of orgID with token and aggregates them. No partial
	// summary is returned when a fetch fails.
	CalcSummary(ctx context.Context, token, orgID string) (*domain.FinancialSummary, error)
}
