package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/indubai/portal-api/infrastructure/integrator/zoho"
	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
	"github.com/indubai/portal-api/internal/scheduler"
	"github.com/indubai/portal-api/internal/usecases/summarizing"
	"github.com/indubai/portal-api/pkg/apiErrors"
	"github.com/indubai/portal-api/pkg/log"
)

const (
	ActionListOrgs      = "list_orgs"
	ActionClientSummary = "client_summary"
	ActionCronSync      = "cron_sync"
)

// ErrUnknownAction is returned for a proxy action the service does not know.
var ErrUnknownAction = errors.New("Unknown action")

var errMissingOrgID = errors.New("org_id is required")

type ProxyRequest struct {
	Action   string `json:"action"`
	OrgID    string `json:"org_id"`
	OrgIDAlt string `json:"orgId"`
}

func (r ProxyRequest) Org() string {
	if r.OrgID != "" {
		return r.OrgID
	}
	return r.OrgIDAlt
}

// ZohoProxy dispatches the portal's Zoho actions. The access token is acquired before the
// action is looked at, so an unknown action costs at most one token lookup.
func ZohoProxy(zohoService zoho.ZohoIntegrator, summarizer summarizing.Summarizer, syncer scheduler.SnapshotSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.ForContext(ctx)

		var request ProxyRequest
		if err := decodeBody(r, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		logger = logger.WithField("action", request.Action)

		token, err := zohoService.AccessToken(ctx)
		if err != nil {
			logger.WithError(err).Error("Could not obtain Zoho access token")
			writeProxyError(w, err)
			return
		}

		switch request.Action {
		case ActionListOrgs:
			orgs, err := zohoService.ListOrganizations(ctx, token)
			if err != nil {
				logger.WithError(err).Error("Listing Zoho organizations failed")
				writeProxyError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(orgs)

		case ActionClientSummary:
			orgID := request.Org()
			if orgID == "" {
				writeProxyError(w, errMissingOrgID)
				return
			}

			summary, err := summarizer.CalcSummary(ctx, token, orgID)
			if err != nil {
				logger.WithField("org_id", orgID).WithError(err).Error("Client summary failed")
				writeProxyError(w, err)
				return
			}

			writeJSON(w, http.StatusOK, summary)

		case ActionCronSync:
			// The pass outlives a caller that hangs up; cancelling it would fail every client
			// still waiting for its turn.
			result, err := syncer.RunSync(context.WithoutCancel(ctx))
			if err != nil {
				logger.WithError(err).Error("Zoho snapshot sync failed")
				writeProxyError(w, err)
				return
			}

			writeJSON(w, http.StatusOK, result)

		default:
			logger.Warn("Unknown Zoho proxy action")
			writeProxyError(w, ErrUnknownAction)
		}
	}
}

func writeProxyError(w http.ResponseWriter, err error) {
	var authErr *zohodomain.AuthError
	var upstreamErr *zohodomain.UpstreamError

	switch {
	case errors.Is(err, ErrUnknownAction):
		apiErrors.WriteError(w, apiErrors.ErrUnknownAction, ErrUnknownAction.Error(), nil)
	case errors.Is(err, errMissingOrgID):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	case errors.Is(err, scheduler.ErrSyncInProgress):
		apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, err.Error(), nil)
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, apiErrors.ErrUpstreamAuth, err.Error(), nil)
	case errors.As(err, &upstreamErr):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
	}
}
