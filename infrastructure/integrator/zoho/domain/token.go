package zohodomain

import "time"

// AccessToken is a short-lived Zoho OAuth access token.
type AccessToken struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenResponse is the body of the Zoho OAuth token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
	APIDomain   string `json:"api_domain"`
	Error       string `json:"error"`
}
