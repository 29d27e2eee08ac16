package scheduler

import (
	"context"

	"github.com/indubai/portal-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_snapshot_syncer.go -package=mocks

// SnapshotSyncer is the part of the snapshot sync the HTTP layer drives.
type SnapshotSyncer interface {
	RunSync(ctx context.Context) (*domain.SyncResult, error)
	TriggerManualSync() error
	GetStatus() map[string]any
}

var _ SnapshotSyncer = (*ZohoSnapshotSyncService)(nil)
