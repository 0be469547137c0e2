package screen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/screen"
	"toolrent-console/internal/session"
)

func TestProfile(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "u1", FirstName: "Ada", Email: "ada@example.com"}

	t.Run("Success", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		id := new(MockIdentity)
		id.On("User").Return(user)
		api.On("ListOrders", mock.Anything, apiclient.OrderFilter{Page: 1, Limit: 20}).
			Return(ok(domain.OrderPage{Orders: []domain.Order{{ID: "o1"}}}), nil).Once()
		api.On("MyBookings", mock.Anything, "").Return(ok([]domain.Booking{{ID: "b1"}, {ID: "b2"}}), nil).Once()

		view, err := screen.NewProfile(env, api, id).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ada", view.User.FirstName)
		assert.Len(t, view.Orders, 1)
		assert.Len(t, view.Bookings, 2)
		api.AssertExpectations(t)
	})

	t.Run("Anonymous reads nothing", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		id := new(MockIdentity)
		id.On("User").Return(nil)

		_, err := screen.NewProfile(env, api, id).Load(ctx)
		assert.ErrorIs(t, err, session.ErrNotAuthenticated)
		api.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
		api.AssertNotCalled(t, "MyBookings", mock.Anything, mock.Anything)
	})

	t.Run("Update", func(t *testing.T) {
		env, rec := newEnv()
		id := new(MockIdentity)
		phone := "+49 30 1234"
		update := domain.ProfileUpdate{Phone: &phone}
		id.On("UpdateProfile", mock.Anything, update).Return(&domain.User{ID: "u1", Phone: phone}, nil).Once()

		updated, err := screen.NewProfile(env, new(MockAPI), id).Update(ctx, update)
		require.NoError(t, err)
		assert.Equal(t, phone, updated.Phone)
		assert.Equal(t, "Profile updated", rec.last().Title)
	})

	t.Run("Logout forgets cached reads", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		id := new(MockIdentity)
		id.On("User").Return(user)
		id.On("Logout").Return(nil).Once()
		api.On("ListOrders", mock.Anything, mock.Anything).Return(ok(domain.OrderPage{}), nil)
		api.On("MyBookings", mock.Anything, mock.Anything).Return(ok([]domain.Booking{}), nil)

		p := screen.NewProfile(env, api, id)
		_, err := p.Load(ctx)
		require.NoError(t, err)
		require.NotZero(t, env.Cache.Len())

		require.NoError(t, p.Logout())
		assert.Zero(t, env.Cache.Len())
	})
}
