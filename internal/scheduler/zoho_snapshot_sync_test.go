package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
	zohomocks "github.com/indubai/portal-api/infrastructure/integrator/zoho/mocks"
	"github.com/indubai/portal-api/infrastructure/repository"
	"github.com/indubai/portal-api/infrastructure/repository/mocks"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/domain"
	summarizingmocks "github.com/indubai/portal-api/internal/usecases/summarizing/mocks"
	"github.com/indubai/portal-api/pkg/clock"
)

var syncNow = time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)

type syncFixture struct {
	clientRepo   *mocks.MockClientRepository
	snapshotRepo *mocks.MockZohoSnapshotRepository
	zohoService  *zohomocks.MockZohoIntegrator
	summarizer   *summarizingmocks.MockSummarizer
	service      *ZohoSnapshotSyncService
}

func newSyncFixture(t *testing.T, maxConcurrent int) *syncFixture {
	ctrl := gomock.NewController(t)

	f := &syncFixture{
		clientRepo:   mocks.NewMockClientRepository(ctrl),
		snapshotRepo: mocks.NewMockZohoSnapshotRepository(ctrl),
		zohoService:  zohomocks.NewMockZohoIntegrator(ctrl),
		summarizer:   summarizingmocks.NewMockSummarizer(ctrl),
	}

	cfg := &config.Config{
		ZohoSync: config.ZohoSync{
			CronSchedule:      "0 2 * * *",
			MaxConcurrentJobs: maxConcurrent,
		},
	}

	f.service = NewZohoSnapshotSyncService(f.clientRepo, f.snapshotRepo, f.zohoService, f.summarizer, cfg, clock.NewFakeClock(syncNow))

	return f
}

func summaryFor(rolling12 float64) *domain.FinancialSummary {
	return &domain.FinancialSummary{
		Year:           2025,
		Rolling12AED:   rolling12,
		TotalBilledAED: rolling12 / 2,
		VatStatus:      domain.VatStatusOK,
		OrgCurrency:    "AED",
		CountInvoices:  3,
	}
}

func threeClients() []domain.ClientOrgLink {
	return []domain.ClientOrgLink{
		{ClientID: "client-a", ZohoOrgID: "org-a"},
		{ClientID: "client-b", ZohoOrgID: "org-b"},
		{ClientID: "client-c", ZohoOrgID: "org-c"},
	}
}

func TestZohoSnapshotSyncService_RunSync(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(f *syncFixture, stored *sync.Map)
		wantResult *domain.SyncResult
		wantStored []string
	}{
		{
			name: "one failing summary does not stop the other clients",
			setup: func(f *syncFixture, stored *sync.Map) {
				f.clientRepo.EXPECT().ListSyncEligible(gomock.Any()).Return(threeClients(), nil)
				f.summarizer.EXPECT().CalcSummary(gomock.Any(), "tok", "org-a").Return(summaryFor(1000), nil)
				f.summarizer.EXPECT().CalcSummary(gomock.Any(), "tok", "org-b").
					Return(nil, &zohodomain.UpstreamError{Op: "list_invoices", StatusCode: 500})
				f.summarizer.EXPECT().CalcSummary(gomock.Any(), "tok", "org-c").Return(summaryFor(2000), nil)
			},
			wantResult: &domain.SyncResult{Synced: 2, Errors: 1},
			wantStored: []string{"client-a", "client-c"},
		},
		{
			name: "panicking client is counted as an error",
			setup: func(f *syncFixture, stored *sync.Map) {
				f.clientRepo.EXPECT().ListSyncEligible(gomock.Any()).Return(threeClients(), nil)
				f.summarizer.EXPECT().CalcSummary(gomock.Any(), "tok", "org-a").Return(summaryFor(1000), nil)
				f.summarizer.EXPECT().CalcSummary(gomock.Any(), "tok", "org-b").
					DoAndReturn(func(context.Context, string, string) (*domain.FinancialSummary, error) {
						panic("unexpected payload")
					})
				f.summarizer.EXPECT().CalcSummary(gomock.Any(), "tok", "org-c").Return(summaryFor(2000), nil)
			},
			wantResult: &domain.SyncResult{Synced: 2, Errors: 1},
			wantStored: []string{"client-a", "client-c"},
		},
		{
			name: "no eligible clients",
			setup: func(f *syncFixture, stored *sync.Map) {
				f.clientRepo.EXPECT().ListSyncEligible(gomock.Any()).Return([]domain.ClientOrgLink{}, nil)
			},
			wantResult: &domain.SyncResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSyncFixture(t, 2)
			var stored sync.Map

			f.zohoService.EXPECT().AccessToken(gomock.Any()).Return("tok", nil).Times(1)
			f.snapshotRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, s *domain.ZohoSnapshot) error {
					stored.Store(s.ClientID, s)
					return nil
				}).
				AnyTimes()
			tt.setup(f, &stored)

			result, err := f.service.RunSync(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, result)

			var got []string
			stored.Range(func(key, value any) bool {
				got = append(got, key.(string))
				snapshot := value.(*domain.ZohoSnapshot)
				assert.Equal(t, syncNow, snapshot.UpdatedAt)
				return true
			})
			assert.ElementsMatch(t, tt.wantStored, got)

			status := f.service.GetStatus()
			assert.Equal(t, false, status["sync_running"])
			assert.Equal(t, tt.wantResult, status["last_result"])
		})
	}
}

func TestZohoSnapshotSyncService_RunSync_PersistenceFailure(t *testing.T) {
	f := newSyncFixture(t, 5)

	f.zohoService.EXPECT().AccessToken(gomock.Any()).Return("tok", nil)
	f.clientRepo.EXPECT().ListSyncEligible(gomock.Any()).Return(threeClients(), nil)
	f.summarizer.EXPECT().CalcSummary(gomock.Any(), "tok", gomock.Any()).Return(summaryFor(10), nil).Times(3)
	f.snapshotRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domain.ZohoSnapshot) error {
			if s.ClientID == "client-c" {
				return &repository.PersistenceError{ClientID: s.ClientID, Err: errors.New("deadlock detected")}
			}
			return nil
		}).
		Times(3)

	result, err := f.service.RunSync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.SyncResult{Synced: 2, Errors: 1}, result)
}

func TestZohoSnapshotSyncService_RunSync_TokenFailure(t *testing.T) {
	f := newSyncFixture(t, 5)

	authErr := &zohodomain.AuthError{Response: `{"error":"invalid_code"}`}
	f.zohoService.EXPECT().AccessToken(gomock.Any()).Return("", authErr)

	result, err := f.service.RunSync(context.Background())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, authErr)
	assert.Equal(t, authErr.Error(), f.service.GetStatus()["last_error"])
}

func TestZohoSnapshotSyncService_RunSync_RejectsOverlap(t *testing.T) {
	f := newSyncFixture(t, 1)

	started := make(chan struct{})
	unblock := make(chan struct{})

	f.zohoService.EXPECT().AccessToken(gomock.Any()).Return("tok", nil)
	f.clientRepo.EXPECT().ListSyncEligible(gomock.Any()).
		Return([]domain.ClientOrgLink{{ClientID: "client-a", ZohoOrgID: "org-a"}}, nil)
	f.summarizer.EXPECT().CalcSummary(gomock.Any(), "tok", "org-a").
		DoAndReturn(func(context.Context, string, string) (*domain.FinancialSummary, error) {
			close(started)
			<-unblock
			return summaryFor(1), nil
		})
	f.snapshotRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	done := make(chan *domain.SyncResult)
	go func() {
		result, _ := f.service.RunSync(context.Background())
		done <- result
	}()

	<-started

	_, err := f.service.RunSync(context.Background())
	assert.ErrorIs(t, err, ErrSyncInProgress)
	assert.ErrorIs(t, f.service.TriggerManualSync(), ErrSyncInProgress)
	assert.Equal(t, true, f.service.GetStatus()["sync_running"])

	close(unblock)
	assert.Equal(t, &domain.SyncResult{Synced: 1}, <-done)
}
