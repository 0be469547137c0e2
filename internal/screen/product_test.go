package screen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/screen"
)

func TestProduct(t *testing.T) {
	ctx := context.Background()
	tool := domain.Tool{ID: "t1", Name: "Drill", Price: 20, TotalStock: 2}

	t.Run("Success", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		api.On("GetTool", mock.Anything, "t1").Return(ok(tool), nil).Once()
		api.On("ToolReviews", mock.Anything, "t1", apiclient.ToolReviewFilter{Page: 1, Limit: 10}).
			Return(ok(domain.ToolReviewPage{
				Reviews: []domain.Review{{ID: "r1", Rating: 5}},
				Rating:  domain.ToolRating{Rating: 5, Count: 1},
			}), nil).Once()

		view, err := screen.NewProduct(env, api).Load(ctx, "t1", 3, 5)
		require.NoError(t, err)
		assert.Len(t, view.Periods, 5)
		assert.Equal(t, 2, view.Quote.Quantity)
		assert.InDelta(t, 108.0, view.Quote.Total, 0.001)
		assert.Equal(t, 1, view.Rating.Count)
		api.AssertExpectations(t)
	})

	t.Run("Book sends the rental window", func(t *testing.T) {
		env, rec := newEnv()
		api := new(MockAPI)
		api.On("CreateBooking", mock.Anything, domain.CreateBookingRequest{
			ToolID: "t1", StartDate: "2026-10-20", EndDate: "2026-10-26", Quantity: 1,
		}).Return(ok(domain.Booking{ID: "b1", Status: domain.BookingStatusPending}), nil).Once()

		booking, err := screen.NewProduct(env, api).Book(ctx, "t1", "2026-10-20", 7, 1, "")
		require.NoError(t, err)
		assert.Equal(t, "b1", booking.ID)
		assert.Equal(t, "Booking created", rec.last().Title)
		api.AssertExpectations(t)
	})

	t.Run("Book rejects a bad date", func(t *testing.T) {
		env, rec := newEnv()
		api := new(MockAPI)

		_, err := screen.NewProduct(env, api).Book(ctx, "t1", "20.10.2026", 1, 1, "")
		assert.ErrorIs(t, err, screen.ErrInvalidBooking)
		assert.Equal(t, "Error", rec.last().Title)
		api.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("Review refreshes the tool reviews", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		api.On("GetTool", mock.Anything, "t1").Return(ok(tool), nil).Once()
		api.On("ToolReviews", mock.Anything, "t1", mock.Anything).Return(ok(domain.ToolReviewPage{}), nil).Once()
		req := domain.CreateReviewRequest{ToolID: "t1", Rating: 4, Title: "Solid", Comment: "Works"}
		api.On("CreateReview", mock.Anything, req).Return(ok(domain.Review{ID: "r2"}), nil).Once()

		s := screen.NewProduct(env, api)
		_, err := s.Load(ctx, "t1", 1, 1)
		require.NoError(t, err)
		_, err = s.Review(ctx, req)
		require.NoError(t, err)

		assert.True(t, env.Cache.Cached(querycache.Key{screen.ResTool, "t1"}))
		assert.False(t, env.Cache.Cached(querycache.Key{screen.ResToolReviews, "t1"}))
	})
}
