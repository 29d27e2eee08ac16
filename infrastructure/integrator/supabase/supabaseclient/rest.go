package supabaseclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Query narrows a select. Filter uses the PostgREST syntax, e.g. "id=eq.42&is_active=eq.true".
type Query struct {
	Columns string
	Filter  string
	Order   string
	Limit   int
}

func (q Query) encode() string {
	columns := q.Columns
	if columns == "" {
		columns = "*"
	}

	s := "select=" + url.QueryEscape(columns)
	if q.Filter != "" {
		s += "&" + q.Filter
	}
	if q.Order != "" {
		s += "&order=" + url.QueryEscape(q.Order)
	}
	if q.Limit > 0 {
		s += "&limit=" + strconv.Itoa(q.Limit)
	}
	return s
}

// Eq builds an equality filter with an escaped value.
func Eq(column, value string) string {
	return column + "=eq." + url.QueryEscape(value)
}

func restPath(table string) string {
	return "/rest/v1/" + url.PathEscape(table)
}

func (c *SupabaseClient) Select(ctx context.Context, table string, query Query, out any) error {
	return c.do(ctx, request{
		method: http.MethodGet,
		path:   restPath(table) + "?" + query.encode(),
	}, out)
}

// Insert adds one row or a slice of rows. The inserted rows are decoded into out when it is
// not nil.
func (c *SupabaseClient) Insert(ctx context.Context, table string, rows any, out any) error {
	prefer := preferReturnMinimal
	if out != nil {
		prefer = preferReturnRepresentation
	}

	return c.do(ctx, request{
		method: http.MethodPost,
		path:   restPath(table),
		body:   rows,
		prefer: prefer,
	}, out)
}

func (c *SupabaseClient) Update(ctx context.Context, table, filter string, updates any, out any) error {
	prefer := preferReturnMinimal
	if out != nil {
		prefer = preferReturnRepresentation
	}

	return c.do(ctx, request{
		method: http.MethodPatch,
		path:   restPath(table) + "?" + filter,
		body:   updates,
		prefer: prefer,
	}, out)
}

func (c *SupabaseClient) Delete(ctx context.Context, table, filter string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   restPath(table) + "?" + filter,
		prefer: preferReturnMinimal,
	}, nil)
}

// Upsert inserts rows, merging into existing ones that collide on onConflict (or the
// primary key when empty).
func (c *SupabaseClient) Upsert(ctx context.Context, table string, rows any, onConflict string, out any) error {
	path := restPath(table)
	if onConflict != "" {
		path += "?on_conflict=" + url.QueryEscape(onConflict)
	}

	prefer := preferReturnMinimal + "," + preferMergeDuplicates
	if out != nil {
		prefer = preferReturnRepresentation + "," + preferMergeDuplicates
	}

	return c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		body:   rows,
		prefer: prefer,
	}, out)
}
