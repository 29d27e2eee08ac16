// Package repository holds the squirrel repositories of the portal database
package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/indubai/portal-api/infrastructure/database/postgres"
	"github.com/indubai/portal-api/internal/domain"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

const clientsTable = "clients c"

type ClientRepository interface {
	// ListSyncEligible returns the active clients linked to a Zoho organization.
	ListSyncEligible(ctx context.Context) ([]domain.ClientOrgLink, error)
}

type clientRepository struct {
	conn postgres.Queryer
}

func NewClientRepository(conn postgres.Queryer) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) ListSyncEligible(ctx context.Context) ([]domain.ClientOrgLink, error) {
	query, args, err := squirrel.
		Select("c.id", "c.zoho_org_id", "c.company_name").
		From(clientsTable).
		Where(squirrel.Eq{"c.is_active": true}).
		Where(squirrel.NotEq{"c.zoho_org_id": nil}).
		Where(squirrel.NotEq{"c.zoho_org_id": ""}).
		OrderBy("c.company_name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building eligible clients query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying eligible clients")
	}
	defer rows.Close()

	links := make([]domain.ClientOrgLink, 0)
	for rows.Next() {
		var link domain.ClientOrgLink
		if err := rows.Scan(&link.ClientID, &link.ZohoOrgID, &link.CompanyName); err != nil {
			return nil, errors.Wrap(err, "scanning eligible client")
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating eligible clients")
	}

	return links, nil
}
