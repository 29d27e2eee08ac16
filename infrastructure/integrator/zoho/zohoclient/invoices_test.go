package zohoclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
)

func invoicesPageJSON(page, count int, hasMore bool) string {
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, fmt.Sprintf(
			`{"invoice_number":"INV-%d-%d","date":"2025-01-15","total":100,"balance":"0","currency_code":"AED","exchange_rate":1,"status":"paid"}`,
			page, i,
		))
	}
	return fmt.Sprintf(
		`{"code":0,"message":"success","invoices":[%s],"page_context":{"page":%d,"per_page":200,"has_more_page":%t}}`,
		strings.Join(items, ","), page, hasMore,
	)
}

func TestFetchAllInvoices_Pagination(t *testing.T) {
	var requests int32
	sizes := map[int]int{1: 200, 2: 200, 3: 47}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)

		assert.Equal(t, "/invoices", r.URL.Path)
		assert.Equal(t, "Zoho-oauthtoken tok", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "org-1", q.Get("organization_id"))
		assert.Equal(t, "2024-03-10", q.Get("date_start"))
		assert.Equal(t, "2025-03-10", q.Get("date_end"))
		assert.Equal(t, "Status.All", q.Get("filter_by"))
		assert.Equal(t, "200", q.Get("per_page"))

		page, err := strconv.Atoi(q.Get("page"))
		assert.NoError(t, err)

		fmt.Fprint(w, invoicesPageJSON(page, sizes[page], page < 3))
	}))
	defer srv.Close()

	client := NewClient(newTestConfig("", srv.URL), srv.Client())

	invoices, err := client.FetchAllInvoices(context.Background(), "tok", "org-1", "2024-03-10", "2025-03-10")
	require.NoError(t, err)
	assert.Len(t, invoices, 447)
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
	assert.Equal(t, "INV-1-0", invoices[0].InvoiceNumber)
	assert.Equal(t, "INV-3-46", invoices[446].InvoiceNumber)
}

func TestFetchAllInvoices_Errors(t *testing.T) {
	tests := []struct {
		name         string
		maxPages     int
		handler      func(page int) (int, string)
		wantRequests int32
		wantStatus   int
	}{
		{
			name:     "page failure aborts the fetch",
			maxPages: 1000,
			handler: func(page int) (int, string) {
				if page == 2 {
					return http.StatusInternalServerError, `{"code":1,"message":"internal error"}`
				}
				return http.StatusOK, invoicesPageJSON(page, 200, true)
			},
			wantRequests: 2,
			wantStatus:   http.StatusInternalServerError,
		},
		{
			name:     "page guard stops endless pagination",
			maxPages: 3,
			handler: func(page int) (int, string) {
				return http.StatusOK, invoicesPageJSON(page, 200, true)
			},
			wantRequests: 3,
		},
		{
			name:     "empty page claiming more pages",
			maxPages: 1000,
			handler: func(page int) (int, string) {
				return http.StatusOK, invoicesPageJSON(page, 0, true)
			},
			wantRequests: 1,
		},
		{
			name:     "non-zero zoho code",
			maxPages: 1000,
			handler: func(int) (int, string) {
				return http.StatusOK, `{"code":57,"message":"You are not authorized to perform this operation"}`
			},
			wantRequests: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&requests, 1)
				page, _ := strconv.Atoi(r.URL.Query().Get("page"))
				status, body := tt.handler(page)
				w.WriteHeader(status)
				fmt.Fprint(w, body)
			}))
			defer srv.Close()

			cfg := newTestConfig("", srv.URL)
			cfg.Zoho.MaxPages = tt.maxPages
			client := NewClient(cfg, srv.Client())

			invoices, err := client.FetchAllInvoices(context.Background(), "tok", "org-1", "2025-01-01", "2025-03-10")
			require.Error(t, err)
			assert.Nil(t, invoices)

			var upstreamErr *zohodomain.UpstreamError
			require.True(t, errors.As(err, &upstreamErr))
			assert.Equal(t, tt.wantStatus, upstreamErr.StatusCode)
			assert.Equal(t, tt.wantRequests, atomic.LoadInt32(&requests))
		})
	}
}

func TestListOrganizations_Passthrough(t *testing.T) {
	body := `{"code":0,"message":"success","organizations":[{"organization_id":"1","name":"Acme FZE","currency_code":"AED"}]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations", r.URL.Path)
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	client := NewClient(newTestConfig("", srv.URL), srv.Client())

	raw, err := client.ListOrganizations(context.Background(), "tok")
	require.NoError(t, err)
	assert.JSONEq(t, body, string(raw))
}
