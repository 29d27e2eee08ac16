package summarizing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/indubai/portal-api/infrastructure/integrator/zoho"
	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/domain"
	"github.com/indubai/portal-api/pkg/clock"
	"github.com/indubai/portal-api/pkg/utils"
)

type Service struct {
	cfg        *config.Config
	zoho       zoho.ZohoIntegrator
	clock      clock.Clock
	normalizer Normalizer
	thresholds Thresholds
}

func NewService(cfg *config.Config, zohoService zoho.ZohoIntegrator, clk clock.Clock) Summarizer {
	if clk == nil {
		clk = clock.SystemClock{}
	}

	return &Service{
		cfg:        cfg,
		zoho:       zohoService,
		clock:      clk,
		normalizer: NewNormalizer(cfg.Vat.ReportingCurrency),
		thresholds: NewThresholds(cfg.Vat),
	}
}

// Windows are the date ranges a summary is computed over, all inclusive.
type Windows struct {
	Today         time.Time
	YearStart     time.Time
	RollingStart  time.Time
	PrevYearStart time.Time
	PrevYearEnd   time.Time
}

// WindowsAt anchors the windows on now. The rolling window is not calendar aligned: it
// starts exactly one year before today.
func WindowsAt(now time.Time) Windows {
	today := utils.StartOfDay(now)
	year := today.Year()
	loc := today.Location()

	return Windows{
		Today:         today,
		YearStart:     time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		RollingStart:  today.AddDate(-1, 0, 0),
		PrevYearStart: time.Date(year-1, time.January, 1, 0, 0, 0, 0, loc),
		PrevYearEnd:   time.Date(year-1, time.December, 31, 0, 0, 0, 0, loc),
	}
}

func (s *Service) CalcSummary(ctx context.Context, token, orgID string) (*domain.FinancialSummary, error) {
	windows := WindowsAt(s.clock.Now())

	var rolling, prevYear []zohodomain.Invoice

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		invoices, err := s.zoho.FetchAllInvoices(gctx, token, orgID, windows.RollingStart, windows.Today)
		if err != nil {
			return fmt.Errorf("fetching rolling 12 months invoices: %w", err)
		}
		rolling = invoices
		return nil
	})
	g.Go(func() error {
		invoices, err := s.zoho.FetchAllInvoices(gctx, token, orgID, windows.PrevYearStart, windows.PrevYearEnd)
		if err != nil {
			return fmt.Errorf("fetching previous year invoices: %w", err)
		}
		prevYear = invoices
		return nil
	})

	if err := g.Wait(); err != nil {
		logrus.WithFields(logrus.Fields{
			"organization_id": orgID,
		}).WithError(err).Error("Could not compute financial summary")
		return nil, err
	}

	summary := s.Aggregate(windows, rolling, prevYear)

	logrus.WithFields(logrus.Fields{
		"organization_id": orgID,
		"invoices":        summary.CountInvoices,
		"rolling12_aed":   summary.Rolling12AED,
		"vat_status":      summary.VatStatus,
	}).Debug("Financial summary computed")

	return summary, nil
}

// Aggregate builds the summary from already fetched invoices. The current year set is the
// part of the rolling window dated on or after January 1st.
func (s *Service) Aggregate(windows Windows, rolling, prevYear []zohodomain.Invoice) *domain.FinancialSummary {
	yearStart := utils.FormatDate(windows.YearStart)

	var (
		totalBilled, totalPaid, totalUnpaid          decimal.Decimal
		totalBilledAED, totalPaidAED, totalUnpaidAED decimal.Decimal
		rolling12AED, prevYearAED                    decimal.Decimal
		countInvoices, countOverdue                  int
		orgCurrency                                  string
		last                                         *zohodomain.Invoice
	)

	for i := range rolling {
		inv := rolling[i]

		if !inv.IsVoid() {
			rolling12AED = rolling12AED.Add(s.normalizer.ToReportingCurrency(inv))
		}

		// Dates are YYYY-MM-DD so they order lexically.
		if inv.Date < yearStart {
			continue
		}

		countInvoices++
		if orgCurrency == "" {
			orgCurrency = inv.CurrencyCode
		}
		if inv.IsOverdue() {
			countOverdue++
		}
		// Strict comparison: on equal dates the first invoice in upstream order is kept.
		if last == nil || inv.Date > last.Date {
			last = &rolling[i]
		}

		if inv.IsVoid() {
			continue
		}

		total := inv.Total.OrZero()
		balance := inv.Balance.OrZero()
		totalBilled = totalBilled.Add(total)
		totalPaid = totalPaid.Add(total.Sub(balance))

		totalAED := s.normalizer.ToReportingCurrency(inv)
		balanceAED := s.normalizer.ToReportingBalance(inv)
		totalBilledAED = totalBilledAED.Add(totalAED)
		totalPaidAED = totalPaidAED.Add(totalAED.Sub(balanceAED))

		if inv.IsOutstanding() {
			totalUnpaid = totalUnpaid.Add(balance)
			totalUnpaidAED = totalUnpaidAED.Add(balanceAED)
		}
	}

	for _, inv := range prevYear {
		if inv.IsVoid() {
			continue
		}
		prevYearAED = prevYearAED.Add(s.normalizer.ToReportingCurrency(inv))
	}

	if orgCurrency == "" {
		orgCurrency = s.normalizer.ReportingCurrency
	}

	summary := &domain.FinancialSummary{
		Year:           windows.Today.Year(),
		TotalBilled:    utils.RoundMoney(totalBilled),
		TotalPaid:      utils.RoundMoney(totalPaid),
		TotalUnpaid:    utils.RoundMoney(totalUnpaid),
		CountInvoices:  countInvoices,
		CountOverdue:   countOverdue,
		OrgCurrency:    orgCurrency,
		TotalBilledAED: utils.RoundMoney(totalBilledAED),
		TotalPaidAED:   utils.RoundMoney(totalPaidAED),
		TotalUnpaidAED: utils.RoundMoney(totalUnpaidAED),
		Rolling12AED:   utils.RoundMoney(rolling12AED),
		Rolling12Start: utils.FormatDate(windows.RollingStart),
		VatStatus:      s.thresholds.Classify(rolling12AED),
		VatThreshold:   s.thresholds.Threshold.InexactFloat64(),
		VatWarnAt:      s.thresholds.WarnAt.InexactFloat64(),
		PrevYearAED:    utils.RoundMoney(prevYearAED),
	}

	if last != nil {
		summary.LastInvoice = &domain.LastInvoice{
			Number: last.InvoiceNumber,
			Date:   last.Date,
			Total:  utils.RoundMoney(last.Total.OrZero()),
			Status: string(last.Status),
		}
	}

	return summary
}
