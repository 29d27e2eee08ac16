package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/indubai/portal-api/infrastructure/database/postgres"
	"github.com/indubai/portal-api/internal/domain"
)

//go:generate mockgen -source=zoho_snapshot.go -destination=mocks/mock_zoho_snapshot.go -package=mocks

const zohoSnapshotsTable = "zoho_snapshots"

var zohoSnapshotColumns = []string{
	"client_id",
	"updated_at",
	"rolling12_aed",
	"total_billed_aed",
	"total_unpaid_aed",
	"vat_status",
	"year",
	"count_invoices",
	"count_overdue",
	"org_currency",
}

type ZohoSnapshotRepository interface {
	// Upsert replaces the snapshot of the client, if any.
	Upsert(ctx context.Context, snapshot *domain.ZohoSnapshot) error
	// GetByClientID returns nil when the client has no snapshot yet.
	GetByClientID(ctx context.Context, clientID string) (*domain.ZohoSnapshot, error)
}

type zohoSnapshotRepository struct {
	conn postgres.Queryer
}

func NewZohoSnapshotRepository(conn postgres.Queryer) ZohoSnapshotRepository {
	return &zohoSnapshotRepository{
		conn: conn,
	}
}

func (r *zohoSnapshotRepository) Upsert(ctx context.Context, snapshot *domain.ZohoSnapshot) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(zohoSnapshotsTable).
		Columns(zohoSnapshotColumns...).
		Values(
			snapshot.ClientID,
			snapshot.UpdatedAt,
			snapshot.Rolling12AED,
			snapshot.TotalBilledAED,
			snapshot.TotalUnpaidAED,
			string(snapshot.VatStatus),
			snapshot.Year,
			snapshot.CountInvoices,
			snapshot.CountOverdue,
			snapshot.OrgCurrency,
		).
		Suffix(`
			ON CONFLICT (client_id) DO UPDATE SET
				updated_at = EXCLUDED.updated_at,
				rolling12_aed = EXCLUDED.rolling12_aed,
				total_billed_aed = EXCLUDED.total_billed_aed,
				total_unpaid_aed = EXCLUDED.total_unpaid_aed,
				vat_status = EXCLUDED.vat_status,
				year = EXCLUDED.year,
				count_invoices = EXCLUDED.count_invoices,
				count_overdue = EXCLUDED.count_overdue,
				org_currency = EXCLUDED.org_currency
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return &PersistenceError{ClientID: snapshot.ClientID, Err: errors.Wrap(err, "building upsert")}
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return &PersistenceError{ClientID: snapshot.ClientID, Err: errors.Wrap(err, "executing upsert")}
	}

	return nil
}

func (r *zohoSnapshotRepository) GetByClientID(ctx context.Context, clientID string) (*domain.ZohoSnapshot, error) {
	query, args, err := squirrel.
		Select(zohoSnapshotColumns...).
		From(zohoSnapshotsTable).
		Where(squirrel.Eq{"client_id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building snapshot query")
	}

	var (
		snapshot  domain.ZohoSnapshot
		vatStatus string
	)

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&snapshot.ClientID,
		&snapshot.UpdatedAt,
		&snapshot.Rolling12AED,
		&snapshot.TotalBilledAED,
		&snapshot.TotalUnpaidAED,
		&vatStatus,
		&snapshot.Year,
		&snapshot.CountInvoices,
		&snapshot.CountOverdue,
		&snapshot.OrgCurrency,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "scanning snapshot of client %s", clientID)
	}

	snapshot.VatStatus = domain.VatStatus(vatStatus)

	return &snapshot, nil
}
