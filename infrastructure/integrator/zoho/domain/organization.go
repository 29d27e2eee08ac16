package zohodomain

type Organization struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	CurrencyCode   string `json:"currency_code"`
	CountryCode    string `json:"country_code,omitempty"`
	IsDefaultOrg   bool   `json:"is_default_org"`
}

type OrganizationsResponse struct {
	Code          int            `json:"code"`
	Message       string         `json:"message"`
	Organizations []Organization `json:"organizations"`
}
