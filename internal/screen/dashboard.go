package screen

import (
	"context"
	"errors"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/stats"
)

const (
	dashboardToolsLimit  = 10
	dashboardOrdersLimit = 5
	recentOrdersShown    = 3
	lowStockShown        = 4
)

type DashboardAPI interface {
	StatisticsAPI
	ListTools(ctx context.Context, filter apiclient.ToolFilter) (*apiclient.Envelope[domain.ToolPage], error)
	ListOrders(ctx context.Context, filter apiclient.OrderFilter) (*apiclient.Envelope[domain.OrderPage], error)
}

type DashboardView struct {
	TotalRevenue float64
	ActiveOrders int
	ToolsRented  int
	RecentOrders []stats.OrderRow
	LowStock     []stats.LowStockTool
}

// Dashboard is the admin landing screen
type Dashboard struct {
	env *Env
	api DashboardAPI
}

func NewDashboard(env *Env, api DashboardAPI) *Dashboard {
	return &Dashboard{env: env, api: api}
}

// Load reads the three dashboard sources. A failed source leaves its part
// of the view empty.
func (s *Dashboard) Load(ctx context.Context) (DashboardView, error) {
	var view DashboardView

	st, statsErr := fetchStatistics(ctx, s.env, s.api, ResDashboardStats)
	if statsErr == nil {
		view.TotalRevenue = st.TotalRevenue
		view.ActiveOrders = st.Active
	}

	tools, toolsErr := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResDashboardTools},
		func(ctx context.Context) (domain.ToolPage, error) {
			return apiclient.Unwrap(s.api.ListTools(ctx, apiclient.ToolFilter{Limit: dashboardToolsLimit}))
		})
	if toolsErr == nil {
		view.ToolsRented = stats.RentedCount(tools.Tools)
		view.LowStock = stats.LowStock(tools.Tools, lowStockShown)
	}

	orders, ordersErr := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResDashboardOrders},
		func(ctx context.Context) (domain.OrderPage, error) {
			return apiclient.Unwrap(s.api.ListOrders(ctx, apiclient.OrderFilter{Limit: dashboardOrdersLimit}))
		})
	if ordersErr == nil {
		view.RecentOrders = stats.RecentOrders(orders.Orders, recentOrdersShown)
	}

	return view, errors.Join(statsErr, toolsErr, ordersErr)
}
