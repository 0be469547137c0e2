package screen_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/screen"
)

func TestOrders_Load(t *testing.T) {
	ctx := context.Background()
	page := domain.OrderPage{Orders: []domain.Order{
		{ID: "o1", OrderNumber: "TR-1001", CustomerInfo: domain.CustomerInfo{FirstName: "Ada", LastName: "Lovelace"}, Status: domain.OrderStatusActive, EndDate: "2026-10-20"},
		{ID: "o2", OrderNumber: "TR-1002", CustomerInfo: domain.CustomerInfo{FirstName: "Alan", LastName: "Turing"}, Status: domain.OrderStatusPending},
	}}
	st := domain.OrderStatistics{Total: 2, Pending: 1, Active: 1, TotalRevenue: 300, AverageOrderValue: 150}

	t.Run("Success", func(t *testing.T) {
		env, _ := newEnv()
		env.Now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }
		api := new(MockAPI)
		api.On("ListOrders", mock.Anything, apiclient.OrderFilter{Page: 1, Limit: 100}).Return(ok(page), nil).Once()
		api.On("OrderStatistics", mock.Anything, apiclient.DateRange{}).Return(ok(st), nil).Once()

		view, err := screen.NewOrders(env, api).Load(ctx, "all", "lovelace")
		require.NoError(t, err)
		require.Len(t, view.Orders, 1)
		assert.Equal(t, "TR-1001", view.Orders[0].OrderNumber)
		assert.True(t, view.Orders[0].HasDaysLeft)
		assert.Equal(t, 4, view.Orders[0].DaysLeft)
		assert.Equal(t, 300.0, view.Summary.Revenue)
		api.AssertExpectations(t)
	})

	t.Run("Statistics failure keeps the list", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		api.On("ListOrders", mock.Anything, mock.Anything).Return(ok(page), nil).Once()
		api.On("OrderStatistics", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

		view, err := screen.NewOrders(env, api).Load(ctx, "", "")
		assert.Error(t, err)
		assert.Len(t, view.Orders, 2)
		assert.Zero(t, view.Summary.Revenue)
	})
}

func TestOrders_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("Status change refreshes list and statistics", func(t *testing.T) {
		env, rec := newEnv()
		api := new(MockAPI)
		api.On("ListOrders", mock.Anything, mock.Anything).Return(ok(domain.OrderPage{}), nil).Once()
		api.On("OrderStatistics", mock.Anything, mock.Anything).Return(ok(domain.OrderStatistics{}), nil).Once()
		api.On("GetOrder", mock.Anything, "o1").Return(ok(domain.Order{ID: "o1"}), nil).Once()
		api.On("UpdateOrderStatus", mock.Anything, "o1", domain.OrderStatusConfirmed, "").Return(ack(), nil).Once()

		s := screen.NewOrders(env, api)
		_, err := s.Load(ctx, "all", "")
		require.NoError(t, err)
		_, err = s.Detail(ctx, "o1")
		require.NoError(t, err)

		require.NoError(t, s.UpdateStatus(ctx, "o1", domain.OrderStatusConfirmed, ""))
		assert.False(t, env.Cache.Cached(querycache.Key{screen.ResAdminOrders, "all"}))
		assert.False(t, env.Cache.Cached(querycache.Key{screen.ResOrderStatistics}))
		assert.False(t, env.Cache.Cached(querycache.Key{screen.ResOrder, "o1"}))
		assert.Equal(t, "Status updated", rec.last().Title)
		api.AssertExpectations(t)
	})

	t.Run("Cancel refreshes the dashboard and customer history", func(t *testing.T) {
		env, _ := newEnv()
		api := new(MockAPI)
		api.On("CancelOrder", mock.Anything, "o1", "customer request").Return(ack(), nil).Once()

		seed(t, env, screen.ResDashboardStats, screen.ResDashboardOrders, screen.ResUserOrders,
			screen.ResPopularAnalytics, screen.ResAdminReviews)
		require.NoError(t, screen.NewOrders(env, api).Cancel(ctx, "o1", "customer request"))

		assertDropped(t, env, screen.ResDashboardStats, screen.ResDashboardOrders, screen.ResUserOrders,
			screen.ResPopularAnalytics)
		assert.True(t, env.Cache.Cached(querycache.Key{screen.ResAdminReviews}))
	})

	t.Run("Cancel failure without message uses the fallback", func(t *testing.T) {
		env, rec := newEnv()
		api := new(MockAPI)
		api.On("CancelOrder", mock.Anything, "o1", "customer request").
			Return(nil, &apiclient.APIError{StatusCode: 500}).Once()

		err := screen.NewOrders(env, api).Cancel(ctx, "o1", "customer request")
		assert.Error(t, err)
		assert.Equal(t, "Could not cancel the order", rec.last().Description)
	})

	t.Run("Create", func(t *testing.T) {
		env, rec := newEnv()
		api := new(MockAPI)
		req := domain.CreateOrderRequest{Items: []domain.OrderLine{{ToolID: "t1", Quantity: 1, Days: 3}}}
		api.On("CreateOrder", mock.Anything, req).Return(ok(domain.Order{ID: "o9", OrderNumber: "TR-9"}), nil).Once()

		seed(t, env, screen.ResDashboardStats, screen.ResUserOrders)
		order, err := screen.NewOrders(env, api).Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "TR-9", order.OrderNumber)
		assert.Equal(t, "Order placed", rec.last().Title)
		assertDropped(t, env, screen.ResDashboardStats, screen.ResUserOrders)
	})
}
