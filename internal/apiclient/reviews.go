package apiclient

import (
	"context"
	"net/http"

	"toolrent-console/internal/domain"
)

func (c *Client) ListReviews(ctx context.Context, filter ReviewFilter) (*Envelope[domain.ReviewPage], error) {
	return get[domain.ReviewPage](ctx, c, "/reviews", "/reviews", filter.Values())
}

func (c *Client) ToolReviews(ctx context.Context, toolID string, filter ToolReviewFilter) (*Envelope[domain.ToolReviewPage], error) {
	return get[domain.ToolReviewPage](ctx, c, "/reviews/tool/{toolId}", idPath("/reviews/tool/%s", toolID), filter.Values())
}

func (c *Client) CreateReview(ctx context.Context, req domain.CreateReviewRequest) (*Envelope[domain.Review], error) {
	return send[domain.Review](ctx, c, http.MethodPost, "/reviews", "/reviews", req)
}

func (c *Client) ApproveReview(ctx context.Context, id string) (*Ack, error) {
	return send[jsonRaw](ctx, c, http.MethodPut, "/reviews/{id}/approve", idPath("/reviews/%s/approve", id), nil)
}

func (c *Client) RejectReview(ctx context.Context, id, reason string) (*Ack, error) {
	return send[jsonRaw](ctx, c, http.MethodPut, "/reviews/{id}/reject", idPath("/reviews/%s/reject", id),
		reasonRequest{Reason: reason})
}

func (c *Client) DeleteReview(ctx context.Context, id string) (*Ack, error) {
	return send[jsonRaw](ctx, c, http.MethodDelete, "/reviews/{id}", idPath("/reviews/%s", id), nil)
}
