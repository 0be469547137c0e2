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
	popularToolsLimit = 10
	allToolsLimit     = 1000
	topToolsShown     = 5
	growthWindowDays  = 30
)

type AnalyticsAPI interface {
	StatisticsAPI
	PopularTools(ctx context.Context, limit int) (*apiclient.Envelope[[]domain.Tool], error)
	ListTools(ctx context.Context, filter apiclient.ToolFilter) (*apiclient.Envelope[domain.ToolPage], error)
}

type AnalyticsView struct {
	TotalRevenue      float64
	AverageOrderValue float64
	TotalOrders       int
	// RevenueGrowth compares the last 30 days with the 30 before them. It is
	// only meaningful when HasGrowth is set.
	RevenueGrowth     float64
	HasGrowth         bool
	TopTools          []stats.TopTool
	Categories        []stats.CategoryShare
}

// Analytics is the reporting screen
type Analytics struct {
	env *Env
	api AnalyticsAPI
}

func NewAnalytics(env *Env, api AnalyticsAPI) *Analytics {
	return &Analytics{env: env, api: api}
}

func (s *Analytics) Load(ctx context.Context) (AnalyticsView, error) {
	var view AnalyticsView

	st, statsErr := fetchStatistics(ctx, s.env, s.api, ResOrderStatistics)
	if statsErr == nil {
		view.TotalRevenue = st.TotalRevenue
		view.AverageOrderValue = st.AverageOrderValue
		view.TotalOrders = st.Total
	}

	current, previous := stats.TrailingPeriods(s.env.Now(), growthWindowDays)
	cur, curErr := s.revenue(ctx, current)
	prev, prevErr := s.revenue(ctx, previous)
	if curErr == nil && prevErr == nil && prev.TotalRevenue > 0 {
		view.RevenueGrowth = stats.GrowthRate(cur.TotalRevenue, prev.TotalRevenue)
		view.HasGrowth = true
	}

	popular, popularErr := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResPopularAnalytics},
		func(ctx context.Context) ([]domain.Tool, error) {
			return apiclient.Unwrap(s.api.PopularTools(ctx, popularToolsLimit))
		})
	if popularErr == nil {
		view.TopTools = stats.TopTools(popular, topToolsShown)
	}

	all, allErr := querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResAllToolsAnalytic},
		func(ctx context.Context) (domain.ToolPage, error) {
			return apiclient.Unwrap(s.api.ListTools(ctx, apiclient.ToolFilter{Limit: allToolsLimit}))
		})
	if allErr == nil {
		view.Categories = stats.CategoryBreakdown(all.Tools)
	}

	return view, errors.Join(statsErr, curErr, prevErr, popularErr, allErr)
}

func (s *Analytics) revenue(ctx context.Context, p stats.Period) (domain.OrderStatistics, error) {
	return querycache.Fetch(ctx, s.env.Cache, querycache.Key{ResOrderStatistics, p.Start, p.End},
		func(ctx context.Context) (domain.OrderStatistics, error) {
			return apiclient.Unwrap(s.api.OrderStatistics(ctx, apiclient.DateRange{StartDate: p.Start, EndDate: p.End}))
		})
}
