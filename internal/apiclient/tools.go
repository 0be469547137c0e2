package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"toolrent-console/internal/domain"
)

// DefaultPopularLimit is used when PopularTools is asked for a non-positive limit
const DefaultPopularLimit = 10

func (c *Client) ListTools(ctx context.Context, filter ToolFilter) (*Envelope[domain.ToolPage], error) {
	return get[domain.ToolPage](ctx, c, "/tools", "/tools", filter.Values())
}

func (c *Client) GetTool(ctx context.Context, id string) (*Envelope[domain.Tool], error) {
	return get[domain.Tool](ctx, c, "/tools/{id}", idPath("/tools/%s", id), nil)
}

func (c *Client) CreateTool(ctx context.Context, input domain.ToolInput) (*Envelope[domain.Tool], error) {
	return send[domain.Tool](ctx, c, http.MethodPost, "/tools", "/tools", input)
}

func (c *Client) UpdateTool(ctx context.Context, id string, input domain.ToolInput) (*Ack, error) {
	return send[jsonRaw](ctx, c, http.MethodPut, "/tools/{id}", idPath("/tools/%s", id), input)
}

func (c *Client) DeleteTool(ctx context.Context, id string) (*Ack, error) {
	return send[jsonRaw](ctx, c, http.MethodDelete, "/tools/{id}", idPath("/tools/%s", id), nil)
}

func (c *Client) ListCategories(ctx context.Context) (*Envelope[[]domain.Category], error) {
	return get[[]domain.Category](ctx, c, "/tools/meta/categories", "/tools/meta/categories", nil)
}

func (c *Client) PopularTools(ctx context.Context, limit int) (*Envelope[[]domain.Tool], error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	return get[[]domain.Tool](ctx, c, "/tools/meta/popular", "/tools/meta/popular", q)
}
