package zohoclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxErrorBody = 4 << 10

type Client interface {
	ListOrganizations(ctx context.Context, token string) (jsoniter.RawMessage, error)
	ListInvoices(ctx context.Context, token string, params InvoicesParams) (*zohodomain.InvoicesPage, error)
	FetchAllInvoices(ctx context.Context, token, orgID, dateStart, dateEnd string) ([]zohodomain.Invoice, error)
}

type ZohoClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Zoho.HTTPTimeout}
	}

	return &ZohoClient{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// get performs an authenticated GET against the Books API and returns the raw body.
// Transport failures, non-2xx statuses and non-zero Zoho codes become UpstreamErrors.
func (c *ZohoClient) get(ctx context.Context, op, token, path string, query url.Values) ([]byte, error) {
	endpoint := strings.TrimRight(c.cfg.Zoho.APIBase, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &zohodomain.UpstreamError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ZohoRequests.WithLabelValues(op, metrics.ResultError).Inc()
		return nil, &zohodomain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ZohoRequests.WithLabelValues(op, metrics.ResultError).Inc()
		return nil, &zohodomain.UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ZohoRequests.WithLabelValues(op, metrics.ResultError).Inc()

		upstreamErr := &zohodomain.UpstreamError{Op: op, StatusCode: resp.StatusCode}
		var errResp zohodomain.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			upstreamErr.Code = errResp.Code
			upstreamErr.Message = errResp.Message
		} else {
			upstreamErr.Message = truncate(string(body), maxErrorBody)
		}

		logrus.WithFields(logrus.Fields{
			"operation": op,
			"status":    resp.StatusCode,
			"code":      upstreamErr.Code,
		}).Warn("Zoho request failed")

		return nil, upstreamErr
	}

	metrics.ZohoRequests.WithLabelValues(op, metrics.ResultSuccess).Inc()

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// decode unmarshals a successful body and checks the Zoho result code.
func decode(op string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &zohodomain.UpstreamError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
