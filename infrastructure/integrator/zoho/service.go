package zoho

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"

	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
	"github.com/indubai/portal-api/infrastructure/integrator/zoho/zohoclient"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// ZohoIntegrator is the portal's view of Zoho Books. Data calls take the access token
// explicitly so a caller can acquire it once and reuse it across many calls.
type ZohoIntegrator interface {
	AccessToken(ctx context.Context) (string, error)
	ListOrganizations(ctx context.Context, token string) (jsoniter.RawMessage, error)
	Organizations(ctx context.Context, token string) ([]zohodomain.Organization, error)
	FetchAllInvoices(ctx context.Context, token, orgID string, start, end time.Time) ([]zohodomain.Invoice, error)
}

type ZohoService struct {
	cfg    *config.Config
	Client zohoclient.Client
	Tokens zohoclient.TokenProvider
}

func New(cfg *config.Config, client zohoclient.Client, tokens zohoclient.TokenProvider) ZohoIntegrator {
	return &ZohoService{
		cfg:    cfg,
		Client: client,
		Tokens: tokens,
	}
}

func (s *ZohoService) AccessToken(ctx context.Context) (string, error) {
	return s.Tokens.AccessToken(ctx)
}

func (s *ZohoService) ListOrganizations(ctx context.Context, token string) (jsoniter.RawMessage, error) {
	return s.Client.ListOrganizations(ctx, token)
}

func (s *ZohoService) Organizations(ctx context.Context, token string) ([]zohodomain.Organization, error) {
	raw, err := s.Client.ListOrganizations(ctx, token)
	if err != nil {
		return nil, err
	}

	var resp zohodomain.OrganizationsResponse
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &resp); err != nil {
		return nil, &zohodomain.UpstreamError{Op: "list_organizations", Err: err}
	}

	return resp.Organizations, nil
}

func (s *ZohoService) FetchAllInvoices(ctx context.Context, token, orgID string, start, end time.Time) ([]zohodomain.Invoice, error) {
	return s.Client.FetchAllInvoices(ctx, token, orgID, utils.FormatDate(start), utils.FormatDate(end))
}
