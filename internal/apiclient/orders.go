package apiclient

import (
	"context"
	"net/http"

	"toolrent-console/internal/domain"
)

type orderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
	Note   string             `json:"note,omitempty"`
}

type reasonRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (c *Client) ListOrders(ctx context.Context, filter OrderFilter) (*Envelope[domain.OrderPage], error) {
	return get[domain.OrderPage](ctx, c, "/orders", "/orders", filter.Values())
}

func (c *Client) GetOrder(ctx context.Context, id string) (*Envelope[domain.Order], error) {
	return get[domain.Order](ctx, c, "/orders/{id}", idPath("/orders/%s", id), nil)
}

func (c *Client) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*Envelope[domain.Order], error) {
	return send[domain.Order](ctx, c, http.MethodPost, "/orders", "/orders", req)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, note string) (*Ack, error) {
	return send[jsonRaw](ctx, c, http.MethodPut, "/orders/{id}/status", idPath("/orders/%s/status", id),
		orderStatusRequest{Status: status, Note: note})
}

func (c *Client) CancelOrder(ctx context.Context, id, reason string) (*Ack, error) {
	return send[jsonRaw](ctx, c, http.MethodPut, "/orders/{id}/cancel", idPath("/orders/%s/cancel", id),
		reasonRequest{Reason: reason})
}

func (c *Client) OrderStatistics(ctx context.Context, period DateRange) (*Envelope[domain.OrderStatistics], error) {
	return get[domain.OrderStatistics](ctx, c, "/orders/meta/statistics", "/orders/meta/statistics", period.Values())
}
