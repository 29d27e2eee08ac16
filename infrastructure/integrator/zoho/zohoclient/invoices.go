package zohoclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
)

const (
	opListInvoices = "list_invoices"

	filterAllStatuses = "Status.All"
)

type InvoicesParams struct {
	OrganizationID string
	DateStart      string // YYYY-MM-DD, inclusive
	DateEnd        string // YYYY-MM-DD, inclusive
	Page           int
	PerPage        int
}

func (p InvoicesParams) values() url.Values {
	query := url.Values{}
	query.Set("organization_id", p.OrganizationID)
	query.Set("date_start", p.DateStart)
	query.Set("date_end", p.DateEnd)
	query.Set("filter_by", filterAllStatuses)
	query.Set("per_page", strconv.Itoa(p.PerPage))
	query.Set("page", strconv.Itoa(p.Page))
	return query
}

// ListInvoices fetches a single page of invoices.
func (c *ZohoClient) ListInvoices(ctx context.Context, token string, params InvoicesParams) (*zohodomain.InvoicesPage, error) {
	body, err := c.get(ctx, opListInvoices, token, "/invoices", params.values())
	if err != nil {
		return nil, err
	}

	var page zohodomain.InvoicesPage
	if err := decode(opListInvoices, body, &page); err != nil {
		return nil, err
	}
	if page.Code != 0 {
		return nil, &zohodomain.UpstreamError{Op: opListInvoices, Code: page.Code, Message: page.Message}
	}

	return &page, nil
}

// FetchAllInvoices walks the invoice pages of an organization in order and returns every
// invoice dated within [dateStart, dateEnd]. Pages are requested one after the other since
// each continuation depends on the previous page_context. Any failing page aborts the fetch.
func (c *ZohoClient) FetchAllInvoices(ctx context.Context, token, orgID, dateStart, dateEnd string) ([]zohodomain.Invoice, error) {
	perPage := c.cfg.Zoho.PageSize
	maxPages := c.cfg.Zoho.MaxPages

	var invoices []zohodomain.Invoice

	for page := 1; ; page++ {
		if page > maxPages {
			return nil, &zohodomain.UpstreamError{
				Op:  opListInvoices,
				Err: fmt.Errorf("organization %s still reports more pages after %d pages", orgID, maxPages),
			}
		}

		resp, err := c.ListInvoices(ctx, token, InvoicesParams{
			OrganizationID: orgID,
			DateStart:      dateStart,
			DateEnd:        dateEnd,
			Page:           page,
			PerPage:        perPage,
		})
		if err != nil {
			return nil, err
		}

		invoices = append(invoices, resp.Invoices...)

		// A missing page_context means the endpoint did not paginate.
		if resp.PageContext == nil || !resp.PageContext.HasMorePage {
			break
		}

		if len(resp.Invoices) == 0 {
			return nil, &zohodomain.UpstreamError{
				Op:  opListInvoices,
				Err: fmt.Errorf("page %d is empty but has_more_page is set", page),
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"organization_id": orgID,
		"date_start":      dateStart,
		"date_end":        dateEnd,
		"invoices":        len(invoices),
	}).Debug("Invoices fetched from Zoho")

	return invoices, nil
}
