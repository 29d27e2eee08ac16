package zohoclient

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
)

const opListOrganizations = "list_organizations"

// ListOrganizations returns the /organizations response untouched.
func (c *ZohoClient) ListOrganizations(ctx context.Context, token string) (jsoniter.RawMessage, error) {
	body, err := c.get(ctx, opListOrganizations, token, "/organizations", nil)
	if err != nil {
		return nil, err
	}

	var envelope zohodomain.ErrorResponse
	if err := decode(opListOrganizations, body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Code != 0 {
		return nil, &zohodomain.UpstreamError{Op: opListOrganizations, Code: envelope.Code, Message: envelope.Message}
	}

	return jsoniter.RawMessage(body), nil
}
