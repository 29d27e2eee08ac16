package summarizing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
	zohomocks "github.com/indubai/portal-api/infrastructure/integrator/zoho/mocks"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/domain"
	"github.com/indubai/portal-api/pkg/clock"
)

var testNow = time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Vat: config.Vat{
			ReportingCurrency: "AED",
			Threshold:         375000,
			WarnAt:            300000,
		},
	}
}

func invoice(number, date, currency, total, balance, rate string, status zohodomain.InvoiceStatus) zohodomain.Invoice {
	inv := zohodomain.Invoice{
		InvoiceNumber: number,
		Date:          date,
		CurrencyCode:  currency,
		Total:         zohodomain.NewAmount(total),
		Balance:       zohodomain.NewAmount(balance),
		Status:        status,
	}
	if rate != "" {
		inv.ExchangeRate = zohodomain.NewAmount(rate)
	}
	return inv
}

func rollingFixture() []zohodomain.Invoice {
	return []zohodomain.Invoice{
		invoice("INV-A", "2024-06-01", "AED", "1000", "0", "1", zohodomain.InvoiceStatusPaid),
		invoice("INV-B", "2025-01-05", "USD", "100", "100", "3.6725", zohodomain.InvoiceStatusOverdue),
		invoice("INV-C", "2025-02-01", "AED", "500", "200", "1", zohodomain.InvoiceStatusSent),
		invoice("INV-D", "2025-02-01", "AED", "999", "999", "1", zohodomain.InvoiceStatusVoid),
		invoice("INV-E", "2025-01-20", "AED", "300", "0", "1", zohodomain.InvoiceStatusPaid),
	}
}

func prevYearFixture() []zohodomain.Invoice {
	return []zohodomain.Invoice{
		invoice("INV-P1", "2024-02-01", "AED", "2000", "0", "1", zohodomain.InvoiceStatusPaid),
		invoice("INV-P2", "2024-05-01", "EUR", "100", "0", "4", zohodomain.InvoiceStatusPaid),
		invoice("INV-P3", "2024-07-01", "AED", "5000", "5000", "1", zohodomain.InvoiceStatusVoid),
	}
}

func TestWindowsAt(t *testing.T) {
	w := WindowsAt(testNow)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), w.Today)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), w.YearStart)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), w.RollingStart)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.PrevYearStart)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), w.PrevYearEnd)
}

func TestCalcSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zohoMock := zohomocks.NewMockZohoIntegrator(ctrl)
	windows := WindowsAt(testNow)

	zohoMock.EXPECT().
		FetchAllInvoices(gomock.Any(), "tok", "org-1", windows.RollingStart, windows.Today).
		Return(rollingFixture(), nil).
		Times(1)
	zohoMock.EXPECT().
		FetchAllInvoices(gomock.Any(), "tok", "org-1", windows.PrevYearStart, windows.PrevYearEnd).
		Return(prevYearFixture(), nil).
		Times(1)

	service := NewService(testConfig(), zohoMock, clock.NewFakeClock(testNow))

	summary, err := service.CalcSummary(context.Background(), "tok", "org-1")
	require.NoError(t, err)

	expected := &domain.FinancialSummary{
		Year:          2025,
		TotalBilled:   900,
		TotalPaid:     600,
		TotalUnpaid:   300,
		CountInvoices: 4,
		CountOverdue:  1,
		LastInvoice: &domain.LastInvoice{
			Number: "INV-C",
			Date:   "2025-02-01",
			Total:  500,
			Status: "sent",
		},
		OrgCurrency:    "USD",
		TotalBilledAED: 1167.25,
		TotalPaidAED:   600,
		TotalUnpaidAED: 567.25,
		Rolling12AED:   2167.25,
		Rolling12Start: "2024-03-10",
		VatStatus:      domain.VatStatusOK,
		VatThreshold:   375000,
		VatWarnAt:      300000,
		PrevYearAED:    2400,
	}
	assert.Equal(t, expected, summary)
}

func TestCalcSummary_FetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zohoMock := zohomocks.NewMockZohoIntegrator(ctrl)
	windows := WindowsAt(testNow)
	upstreamErr := &zohodomain.UpstreamError{Op: "list_invoices", StatusCode: 503}

	zohoMock.EXPECT().
		FetchAllInvoices(gomock.Any(), "tok", "org-1", windows.RollingStart, windows.Today).
		Return(rollingFixture(), nil)
	zohoMock.EXPECT().
		FetchAllInvoices(gomock.Any(), "tok", "org-1", windows.PrevYearStart, windows.PrevYearEnd).
		Return(nil, upstreamErr)

	service := NewService(testConfig(), zohoMock, clock.NewFakeClock(testNow))

	summary, err := service.CalcSummary(context.Background(), "tok", "org-1")
	assert.Nil(t, summary)

	var target *zohodomain.UpstreamError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, 503, target.StatusCode)
}

func TestAggregate_EmptyOrganization(t *testing.T) {
	service := NewService(testConfig(), nil, clock.NewFakeClock(testNow)).(*Service)

	summary := service.Aggregate(WindowsAt(testNow), nil, nil)

	assert.Equal(t, 0, summary.CountInvoices)
	assert.Nil(t, summary.LastInvoice)
	assert.Equal(t, "AED", summary.OrgCurrency)
	assert.Equal(t, domain.VatStatusOK, summary.VatStatus)
	assert.Zero(t, summary.Rolling12AED)
}

func TestAggregate_LastInvoiceKeepsFirstOnTie(t *testing.T) {
	service := NewService(testConfig(), nil, clock.NewFakeClock(testNow)).(*Service)

	rolling := []zohodomain.Invoice{
		invoice("INV-1", "2025-03-01", "AED", "10", "0", "", zohodomain.InvoiceStatusPaid),
		invoice("INV-2", "2025-03-01", "AED", "20", "0", "", zohodomain.InvoiceStatusPaid),
	}

	summary := service.Aggregate(WindowsAt(testNow), rolling, nil)
	require.NotNil(t, summary.LastInvoice)
	assert.Equal(t, "INV-1", summary.LastInvoice.Number)
}

func TestAggregate_Rolling12IsMonotonic(t *testing.T) {
	service := NewService(testConfig(), nil, clock.NewFakeClock(testNow)).(*Service)
	windows := WindowsAt(testNow)

	candidates := []zohodomain.Invoice{
		invoice("1", "2024-04-01", "AED", "120000", "0", "", zohodomain.InvoiceStatusPaid),
		invoice("2", "2024-09-15", "USD", "10000", "10000", "3.6725", zohodomain.InvoiceStatusSent),
		invoice("3", "2025-01-02", "AED", "0", "0", "", zohodomain.InvoiceStatusDraft),
		invoice("4", "2025-02-10", "EUR", "50000", "0", "", zohodomain.InvoiceStatusPaid),
		invoice("5", "2025-02-11", "AED", "not-a-number", "0", "", zohodomain.InvoiceStatusSent),
		invoice("6", "2025-03-01", "GBP", "25000", "0", "4.65", zohodomain.InvoiceStatusOverdue),
	}

	var invoices []zohodomain.Invoice
	previous := 0.0
	for _, inv := range candidates {
		invoices = append(invoices, inv)
		summary := service.Aggregate(windows, invoices, nil)
		assert.GreaterOrEqual(t, summary.Rolling12AED, previous, "adding %s decreased rolling12AED", inv.InvoiceNumber)
		previous = summary.Rolling12AED
	}
}

func TestThresholds_Classify(t *testing.T) {
	thresholds := NewThresholds(testConfig().Vat)

	tests := []struct {
		amount string
		want   domain.VatStatus
	}{
		{amount: "0", want: domain.VatStatusOK},
		{amount: "299999.99", want: domain.VatStatusOK},
		{amount: "299999.995", want: domain.VatStatusOK},
		{amount: "300000", want: domain.VatStatusWarning},
		{amount: "374999.99", want: domain.VatStatusWarning},
		{amount: "374999.995", want: domain.VatStatusWarning},
		{amount: "375000", want: domain.VatStatusExceeded},
		{amount: "375000.001", want: domain.VatStatusExceeded},
		{amount: "1000000", want: domain.VatStatusExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, thresholds.Classify(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestAggregate_VatStatusFromRollingWindow(t *testing.T) {
	service := NewService(testConfig(), nil, clock.NewFakeClock(testNow)).(*Service)

	rolling := []zohodomain.Invoice{
		invoice("1", "2024-05-01", "AED", "200000", "0", "", zohodomain.InvoiceStatusPaid),
		invoice("2", "2025-02-01", "AED", "100000", "0", "", zohodomain.InvoiceStatusPaid),
		invoice("3", "2025-02-02", "AED", "900000", "0", "", zohodomain.InvoiceStatusVoid),
	}

	summary := service.Aggregate(WindowsAt(testNow), rolling, nil)
	assert.Equal(t, 300000.0, summary.Rolling12AED)
	assert.Equal(t, domain.VatStatusWarning, summary.VatStatus)
}
