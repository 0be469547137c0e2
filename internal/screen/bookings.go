package screen

import (
	"context"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/notify"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/stats"
)

const bookingsPageLimit = 100

type BookingsAPI interface {
	ListBookings(ctx context.Context, filter apiclient.BookingFilter) (*apiclient.Envelope[domain.BookingPage], error)
	ConfirmBooking(ctx context.Context, id string) (*apiclient.Ack, error)
	CancelBooking(ctx context.Context, id, reason string) (*apiclient.Ack, error)
	DeleteBooking(ctx context.Context, id string) (*apiclient.Ack, error)
	CleanupExpiredBookings(ctx context.Context) (*apiclient.Envelope[domain.CleanupResult], error)
}

type BookingsView struct {
	Status   string
	Search   string
	Bookings []domain.Booking
	Summary  stats.BookingSummary
}

// Bookings is the admin bookings screen
type Bookings struct {
	env *Env
	api BookingsAPI
}

func NewBookings(env *Env, api BookingsAPI) *Bookings {
	return &Bookings{env: env, api: api}
}

func (s *Bookings) Load(ctx context.Context, status, search string) (BookingsView, error) {
	view := BookingsView{Status: statusKey(status), Search: search}
	page, err := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResAdminBookings, view.Status},
		func(ctx context.Context) (domain.BookingPage, error) {
			return apiclient.Unwrap(s.api.ListBookings(ctx, apiclient.BookingFilter{
				Status: stats.StatusParam(status),
				Page:   1,
				Limit:  bookingsPageLimit,
			}))
		})
	if err != nil {
		return view, err
	}
	view.Bookings = stats.FilterBookings(page.Bookings, search)
	view.Summary = stats.SummarizeBookings(page.Bookings)
	return view, nil
}

func (s *Bookings) Confirm(ctx context.Context, id string) error {
	return s.env.run(ctx, mutation{
		name:        "bookings.Confirm",
		invalidates: bookingReads,
		success:     notify.Success("Booking confirmed", "The booking was confirmed"),
		fallback:    "Could not confirm the booking",
	}, func(ctx context.Context) (string, error) {
		return done(s.api.ConfirmBooking(ctx, id))
	})
}

func (s *Bookings) Cancel(ctx context.Context, id, reason string) error {
	return s.env.run(ctx, mutation{
		name:        "bookings.Cancel",
		invalidates: bookingReads,
		success:     notify.Success("Booking cancelled", "The booking was cancelled"),
		fallback:    "Could not cancel the booking",
	}, func(ctx context.Context) (string, error) {
		return done(s.api.CancelBooking(ctx, id, reason))
	})
}

func (s *Bookings) Delete(ctx context.Context, id string) error {
	return s.env.run(ctx, mutation{
		name:        "bookings.Delete",
		invalidates: bookingReads,
		success:     notify.Success("Booking deleted", "The booking was removed"),
		fallback:    "Could not delete the booking",
	}, func(ctx context.Context) (string, error) {
		return done(s.api.DeleteBooking(ctx, id))
	})
}

// CleanupExpired asks the server to expire stale pending bookings. The
// server's own message is shown when it sends one.
func (s *Bookings) CleanupExpired(ctx context.Context) (domain.CleanupResult, error) {
	var result domain.CleanupResult
	err := s.env.run(ctx, mutation{
		name:        "bookings.CleanupExpired",
		invalidates: bookingReads,
		success:     notify.Success("Cleanup finished", "Expired bookings were processed"),
		fallback:    "Could not run the cleanup",
	}, func(ctx context.Context) (string, error) {
		var err error
		result, err = apiclient.Unwrap(s.api.CleanupExpiredBookings(ctx))
		return result.Message, err
	})
	return result, err
}
