package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"toolrent-console/internal/domain"
)

func (c *Client) ListBookings(ctx context.Context, filter BookingFilter) (*Envelope[domain.BookingPage], error) {
	return get[domain.BookingPage](ctx, c, "/bookings", "/bookings", filter.Values())
}

// MyBookings lists the caller's bookings; status is sent only when non-empty
func (c *Client) MyBookings(ctx context.Context, status string) (*Envelope[[]domain.Booking], error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	return get[[]domain.Booking](ctx, c, "/bookings/my", "/bookings/my", q)
}

func (c *Client) CreateBooking(ctx context.Context, req domain.CreateBookingRequest) (*Envelope[domain.Booking], error) {
	return send[domain.Booking](ctx, c, http.MethodPost, "/bookings", "/bookings", req)
}

func (c *Client) ConfirmBooking(ctx context.Context, id string) (*Ack, error) {
	return send[jsonRaw](ctx, c, http.MethodPut, "/bookings/{id}/confirm", idPath("/bookings/%s/confirm", id), nil)
}

func (c *Client) CancelBooking(ctx context.Context, id, reason string) (*Ack, error) {
	return send[jsonRaw](ctx, c, http.MethodPut, "/bookings/{id}/cancel", idPath("/bookings/%s/cancel", id),
		reasonRequest{Reason: reason})
}

func (c *Client) DeleteBooking(ctx context.Context, id string) (*Ack, error) {
	return send[jsonRaw](ctx, c, http.MethodDelete, "/bookings/{id}", idPath("/bookings/%s", id), nil)
}

func (c *Client) CleanupExpiredBookings(ctx context.Context) (*Envelope[domain.CleanupResult], error) {
	return send[domain.CleanupResult](ctx, c, http.MethodPost, "/bookings/cleanup/expired", "/bookings/cleanup/expired", nil)
}
