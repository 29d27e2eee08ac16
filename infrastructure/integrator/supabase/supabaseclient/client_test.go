package supabaseclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	supabasedomain "github.com/indubai/portal-api/infrastructure/integrator/supabase/domain"
	"github.com/indubai/portal-api/internal/config"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Prefer string
	Auth   string
	APIKey string
	Body   string
}

func newTestClient(t *testing.T, status int, response string) (Client, *[]recordedRequest) {
	t.Helper()

	var recorded []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded = append(recorded, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Prefer: r.Header.Get("Prefer"),
			Auth:   r.Header.Get("Authorization"),
			APIKey: r.Header.Get("apikey"),
			Body:   string(body),
		})
		w.WriteHeader(status)
		fmt.Fprint(w, response)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{Supabase: config.Supabase{URL: srv.URL + "/", ServiceKey: "service-key"}}
	return NewClient(cfg, srv.Client()), &recorded
}

func TestSupabaseClient_Select(t *testing.T) {
	client, recorded := newTestClient(t, http.StatusOK, `[{"id":"u1","full_name":"Sara","role":"admin"}]`)

	var profiles []supabasedomain.Profile
	err := client.Select(context.Background(), "profiles", Query{
		Columns: "id,full_name,role",
		Filter:  Eq("id", "u1"),
		Order:   "full_name.asc",
		Limit:   1,
	}, &profiles)
	require.NoError(t, err)

	require.Len(t, *recorded, 1)
	req := (*recorded)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/rest/v1/profiles", req.Path)
	assert.Equal(t, "select=id%2Cfull_name%2Crole&id=eq.u1&order=full_name.asc&limit=1", req.Query)
	assert.Equal(t, "Bearer service-key", req.Auth)
	assert.Equal(t, "service-key", req.APIKey)
	assert.Equal(t, []supabasedomain.Profile{{ID: "u1", FullName: "Sara", Role: "admin"}}, profiles)
}

func TestSupabaseClient_WritePreferHeaders(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c Client) error
		wantMethod string
		wantQuery  string
		wantPrefer string
	}{
		{
			name: "insert returning rows",
			call: func(c Client) error {
				var out []map[string]any
				return c.Insert(context.Background(), "client_users", map[string]string{"user_id": "u1"}, &out)
			},
			wantMethod: http.MethodPost,
			wantPrefer: "return=representation",
		},
		{
			name: "update without representation",
			call: func(c Client) error {
				return c.Update(context.Background(), "profiles", "id=eq.u1", map[string]string{"role": "junior"}, nil)
			},
			wantMethod: http.MethodPatch,
			wantQuery:  "id=eq.u1",
			wantPrefer: "return=minimal",
		},
		{
			name: "upsert on conflict",
			call: func(c Client) error {
				return c.Upsert(context.Background(), "bank_statements", map[string]any{"client_id": "c1"}, "client_id,year,month", nil)
			},
			wantMethod: http.MethodPost,
			wantQuery:  "on_conflict=client_id%2Cyear%2Cmonth",
			wantPrefer: "return=minimal,resolution=merge-duplicates",
		},
		{
			name: "delete",
			call: func(c Client) error {
				return c.Delete(context.Background(), "client_users", "user_id=eq.u1")
			},
			wantMethod: http.MethodDelete,
			wantQuery:  "user_id=eq.u1",
			wantPrefer: "return=minimal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, recorded := newTestClient(t, http.StatusOK, `[]`)

			require.NoError(t, tt.call(client))
			require.Len(t, *recorded, 1)

			req := (*recorded)[0]
			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, tt.wantQuery, req.Query)
			assert.Equal(t, tt.wantPrefer, req.Prefer)
		})
	}
}

func TestSupabaseClient_ErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantText string
	}{
		{name: "message field", status: http.StatusConflict, body: `{"message":"duplicate key value"}`, wantText: "duplicate key value"},
		{name: "msg field", status: http.StatusUnprocessableEntity, body: `{"code":422,"msg":"A user with this email address has already been registered"}`, wantText: "A user with this email address has already been registered"},
		{name: "error field", status: http.StatusUnauthorized, body: `{"error":"invalid_grant"}`, wantText: "invalid_grant"},
		{name: "plain text", status: http.StatusBadRequest, body: `User not found`, wantText: "User not found"},
		{name: "empty body", status: http.StatusBadGateway, body: ``, wantText: "HTTP 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.status, tt.body)

			err := client.DeleteUser(context.Background(), "u1")

			var apiErr *supabasedomain.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantText, apiErr.Error())
		})
	}
}

func TestSupabaseClient_AdminUsers(t *testing.T) {
	t.Run("create user", func(t *testing.T) {
		client, recorded := newTestClient(t, http.StatusOK, `{"id":"new-user","email":"a@b.ae"}`)

		user, err := client.CreateUser(context.Background(), supabasedomain.AdminUserAttributes{
			Email:        "a@b.ae",
			Password:     "s3cret!",
			EmailConfirm: true,
			UserMetadata: map[string]any{"full_name": "Ahmed"},
		})
		require.NoError(t, err)
		assert.Equal(t, "new-user", user.ID)

		req := (*recorded)[0]
		assert.Equal(t, "/auth/v1/admin/users", req.Path)
		assert.JSONEq(t, `{"email":"a@b.ae","password":"s3cret!","email_confirm":true,"user_metadata":{"full_name":"Ahmed"}}`, req.Body)
	})

	t.Run("update password", func(t *testing.T) {
		client, recorded := newTestClient(t, http.StatusOK, `{"id":"u1"}`)

		require.NoError(t, client.UpdateUser(context.Background(), "u1", supabasedomain.AdminUserAttributes{Password: "n3w"}))

		req := (*recorded)[0]
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/auth/v1/admin/users/u1", req.Path)
		assert.JSONEq(t, `{"password":"n3w"}`, req.Body)
	})

	t.Run("get user uses the session token", func(t *testing.T) {
		client, recorded := newTestClient(t, http.StatusOK, `{"id":"u1","email":"a@b.ae"}`)

		user, err := client.GetUser(context.Background(), "session-token")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)

		req := (*recorded)[0]
		assert.Equal(t, "/auth/v1/user", req.Path)
		assert.Equal(t, "Bearer session-token", req.Auth)
		assert.Equal(t, "service-key", req.APIKey)
	})
}
