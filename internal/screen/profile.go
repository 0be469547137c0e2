package screen

import (
	"context"
	"errors"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/notify"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/session"
)

const profileOrdersLimit = 20

type ProfileAPI interface {
	ListOrders(ctx context.Context, filter apiclient.OrderFilter) (*apiclient.Envelope[domain.OrderPage], error)
	MyBookings(ctx context.Context, status string) (*apiclient.Envelope[[]domain.Booking], error)
}

// Identity is the part of the session the profile screen uses
type Identity interface {
	User() *domain.User
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
	Logout() error
}

type ProfileView struct {
	User     domain.User
	Orders   []domain.Order
	Bookings []domain.Booking
}

// Profile is the signed-in customer's own screen
type Profile struct {
	env     *Env
	api     ProfileAPI
	session Identity
}

func NewProfile(env *Env, api ProfileAPI, sess Identity) *Profile {
	return &Profile{env: env, api: api, session: sess}
}

// Load requires a signed-in user; nothing is fetched otherwise
func (s *Profile) Load(ctx context.Context) (ProfileView, error) {
	var view ProfileView
	user := s.session.User()
	if user == nil {
		return view, session.ErrNotAuthenticated
	}
	view.User = *user

	orders, ordersErr := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResUserOrders},
		func(ctx context.Context) (domain.OrderPage, error) {
			return apiclient.Unwrap(s.api.ListOrders(ctx, apiclient.OrderFilter{Page: 1, Limit: profileOrdersLimit}))
		})
	if ordersErr == nil {
		view.Orders = orders.Orders
	}

	bookings, bookingsErr := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResUserBookings},
		func(ctx context.Context) ([]domain.Booking, error) {
			return apiclient.Unwrap(s.api.MyBookings(ctx, ""))
		})
	if bookingsErr == nil {
		view.Bookings = bookings
	}

	return view, errors.Join(ordersErr, bookingsErr)
}

func (s *Profile) Update(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	var user *domain.User
	err := s.env.run(ctx, mutation{
		name:     "profile.Update",
		success:  notify.Success("Profile updated", "Your details were saved"),
		fallback: "Could not update the profile",
	}, func(ctx context.Context) (string, error) {
		var err error
		user, err = s.session.UpdateProfile(ctx, update)
		return "", err
	})
	return user, err
}

// Logout signs out and forgets everything read under the old identity
func (s *Profile) Logout() error {
	if err := s.session.Logout(); err != nil {
		return err
	}
	s.env.Cache.InvalidateAll()
	return nil
}
