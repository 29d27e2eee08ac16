package supabaseclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	supabasedomain "github.com/indubai/portal-api/infrastructure/integrator/supabase/domain"
	"github.com/indubai/portal-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	preferReturnRepresentation = "return=representation"
	preferReturnMinimal        = "return=minimal"
	preferMergeDuplicates      = "resolution=merge-duplicates"
)

// Client talks to the REST and admin auth APIs of the backend with the service key.
type Client interface {
	Select(ctx context.Context, table string, query Query, out any) error
	Insert(ctx context.Context, table string, rows any, out any) error
	Update(ctx context.Context, table, filter string, updates any, out any) error
	Delete(ctx context.Context, table, filter string) error
	Upsert(ctx context.Context, table string, rows any, onConflict string, out any) error

	CreateUser(ctx context.Context, attrs supabasedomain.AdminUserAttributes) (*supabasedomain.User, error)
	UpdateUser(ctx context.Context, userID string, attrs supabasedomain.AdminUserAttributes) error
	DeleteUser(ctx context.Context, userID string) error
	GetUser(ctx context.Context, accessToken string) (*supabasedomain.User, error)
}

type SupabaseClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(cfg *config.Config, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &SupabaseClient{
		baseURL:    strings.TrimRight(cfg.Supabase.URL, "/"),
		serviceKey: cfg.Supabase.ServiceKey,
		httpClient: httpClient,
	}
}

type request struct {
	method string
	path   string
	body   any
	prefer string
	// bearer overrides the service key in the Authorization header.
	bearer string
}

// do sends the request and decodes a successful body into out when out is not nil.
func (c *SupabaseClient) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("supabase: encoding request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("supabase: creating request: %w", err)
	}

	bearer := r.bearer
	if bearer == "" {
		bearer = c.serviceKey
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase: %s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("supabase: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := supabasedomain.NewAPIError(resp.StatusCode, respBody)
		logrus.WithFields(logrus.Fields{
			"method": r.method,
			"path":   pathWithoutQuery(r.path),
			"status": resp.StatusCode,
		}).Warn("Supabase request failed: ", apiErr.Message)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("supabase: decoding response: %w", err)
	}

	return nil
}

func pathWithoutQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
