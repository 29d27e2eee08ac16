package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const renderAPIBase = "https://api.render.com/v1"

// SecretStorage is the managed secret store that holds the service credentials.
type SecretStorage interface {
	ListSecrets(ctx context.Context, serviceID string) (map[string]string, error)
}

type RenderClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewRenderClient(config *Config) *RenderClient {
	return &RenderClient{
		APIKey:     config.Render.APIKey,
		BaseURL:    renderAPIBase,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type renderSecretFile struct {
	SecretFile struct {
		Content string `json:"content"`
		Name    string `json:"name"`
	} `json:"secretFile"`
	Cursor string `json:"cursor"`
}

// ListSecrets reads every secret file of the service, following the cursor until the
// last page.
func (c *RenderClient) ListSecrets(ctx context.Context, serviceID string) (map[string]string, error) {
	secretsMap := make(map[string]string)
	cursor := ""

	for {
		endpoint := fmt.Sprintf("%s/services/%s/secret-files?limit=100", c.BaseURL, url.PathEscape(serviceID))
		if cursor != "" {
			endpoint += "&cursor=" + url.QueryEscape(cursor)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("config: error list secrets: status %d: %s", resp.StatusCode, body)
		}

		var page []renderSecretFile
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		for _, sf := range page {
			secretsMap[sf.SecretFile.Name] = sf.SecretFile.Content
		}

		if len(page) < 100 || page[len(page)-1].Cursor == "" {
			break
		}
		cursor = page[len(page)-1].Cursor
	}

	return secretsMap, nil
}
