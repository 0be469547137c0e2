package screen

import (
	"context"
	"errors"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/notify"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/stats"
)

const ordersPageLimit = 100

type OrdersAPI interface {
	ListOrders(ctx context.Context, filter apiclient.OrderFilter) (*apiclient.Envelope[domain.OrderPage], error)
	GetOrder(ctx context.Context, id string) (*apiclient.Envelope[domain.Order], error)
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*apiclient.Envelope[domain.Order], error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, note string) (*apiclient.Ack, error)
	CancelOrder(ctx context.Context, id, reason string) (*apiclient.Ack, error)
	StatisticsAPI
}

type StatisticsAPI interface {
	OrderStatistics(ctx context.Context, period apiclient.DateRange) (*apiclient.Envelope[domain.OrderStatistics], error)
}

type OrderListItem struct {
	domain.Order
	DaysLeft    int
	HasDaysLeft bool
}

type OrdersView struct {
	Status  string
	Search  string
	Orders  []OrderListItem
	Summary stats.OrderSummary
}

// Orders is the admin orders screen
type Orders struct {
	env *Env
	api OrdersAPI
}

func NewOrders(env *Env, api OrdersAPI) *Orders {
	return &Orders{env: env, api: api}
}

// Load reads the order list and the statistics. Either may fail on its own;
// the view keeps whatever succeeded and the errors are joined.
func (s *Orders) Load(ctx context.Context, status, search string) (OrdersView, error) {
	view := OrdersView{Status: statusKey(status), Search: search}

	page, listErr := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResAdminOrders, view.Status},
		func(ctx context.Context) (domain.OrderPage, error) {
			return apiclient.Unwrap(s.api.ListOrders(ctx, apiclient.OrderFilter{
				Status: stats.StatusParam(status),
				Page:   1,
				Limit:  ordersPageLimit,
			}))
		})
	if listErr == nil {
		now := s.env.Now()
		for _, o := range stats.FilterOrders(page.Orders, search, status) {
			days, ok := stats.DaysLeft(o.EndDate, now)
			view.Orders = append(view.Orders, OrderListItem{Order: o, DaysLeft: days, HasDaysLeft: ok})
		}
	}

	st, statsErr := fetchStatistics(ctx, s.env, s.api, ResOrderStatistics)
	if statsErr == nil {
		view.Summary = stats.SummarizeOrderStatistics(&st)
	}

	return view, errors.Join(listErr, statsErr)
}

func fetchStatistics(ctx context.Context, env *Env, api StatisticsAPI, resource string) (domain.OrderStatistics, error) {
	return querycache.Fetch(ctx, env.Cache, querycache.Key{resource},
		func(ctx context.Context) (domain.OrderStatistics, error) {
			return apiclient.Unwrap(api.OrderStatistics(ctx, apiclient.DateRange{}))
		})
}

// Detail is the full record of one order
func (s *Orders) Detail(ctx context.Context, id string) (domain.Order, error) {
	return querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResOrder, id},
		func(ctx context.Context) (domain.Order, error) {
			return apiclient.Unwrap(s.api.GetOrder(ctx, id))
		})
}

func (s *Orders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, note string) error {
	return s.env.run(ctx, mutation{
		name:        "orders.UpdateStatus",
		invalidates: orderReads,
		success:     notify.Success("Status updated", "The order status was changed"),
		fallback:    "Could not update the status",
	}, func(ctx context.Context) (string, error) {
		return done(s.api.UpdateOrderStatus(ctx, id, status, note))
	})
}

func (s *Orders) Cancel(ctx context.Context, id, reason string) error {
	return s.env.run(ctx, mutation{
		name:        "orders.Cancel",
		invalidates: orderReads,
		success:     notify.Success("Order cancelled", "The order was cancelled"),
		fallback:    "Could not cancel the order",
	}, func(ctx context.Context) (string, error) {
		return done(s.api.CancelOrder(ctx, id, reason))
	})
}

// Create places a new order
func (s *Orders) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	var order domain.Order
	err := s.env.run(ctx, mutation{
		name:        "orders.Create",
		invalidates: orderReads,
		success:     notify.Success("Order placed", "The order was created"),
		fallback:    "Could not create the order",
	}, func(ctx context.Context) (string, error) {
		var err error
		order, err = apiclient.Unwrap(s.api.CreateOrder(ctx, req))
		return "", err
	})
	return order, err
}
