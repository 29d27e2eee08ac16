// Package domain contains the portal-side data structures of the application
package domain

// ClientOrgLink maps a portal client to its Zoho Books organization. Only active clients with
// a non-empty ZohoOrgID are eligible for the snapshot sync.
type ClientOrgLink struct {
	ClientID    string `json:"client_id"`
	ZohoOrgID   string `json:"zoho_org_id"`
	CompanyName string `json:"company_name"`
}
