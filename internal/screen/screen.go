// Package screen holds the console's screens. A screen owns its cached reads,
// derives what it shows from them, and runs its writes through one mutation
// path: on success the affected resources are invalidated and a notification
// is raised; on failure a destructive notification carries the server message
// and the cache is left alone.
package screen

import (
	"context"
	"time"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/logger"
	"toolrent-console/internal/notify"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/stats"
)

// Cache resource names
const (
	ResDashboardStats   = "dashboard-stats"
	ResDashboardTools   = "dashboard-tools"
	ResDashboardOrders  = "dashboard-orders"
	ResAdminBookings    = "admin-bookings"
	ResAdminReviews     = "admin-reviews"
	ResAdminOrders      = "admin-orders"
	ResOrder            = "order"
	ResOrderStatistics  = "order-statistics"
	ResAdminTools       = "admin-tools"
	ResCategories       = "categories"
	ResPopularAnalytics = "popular-tools-analytics"
	ResAllToolsAnalytic = "all-tools-analytics"
	ResTool             = "tool"
	ResToolReviews      = "tool-reviews"
	ResUserOrders       = "user-orders"
	ResUserBookings     = "user-bookings"
)

// Every read a write to one kind of record can change. A tool shows up in the
// catalog lists, the dashboard stock alerts, the category list and both
// analytics tables; an order in the dashboard figures and the customer's
// history as well as the admin lists.
var (
	toolReads    = []string{ResAdminTools, ResTool, ResCategories, ResDashboardTools, ResPopularAnalytics, ResAllToolsAnalytic}
	orderReads   = []string{ResAdminOrders, ResOrder, ResOrderStatistics, ResDashboardStats, ResDashboardOrders, ResUserOrders, ResPopularAnalytics, ResAllToolsAnalytic}
	bookingReads = []string{ResAdminBookings, ResUserBookings}
	reviewReads  = []string{ResAdminReviews, ResToolReviews}
)

const failureTitle = "Error"

// Env is what every screen shares
type Env struct {
	Cache    *querycache.Cache
	Notifier notify.Notifier
	Now      func() time.Time
}

func NewEnv(cache *querycache.Cache, notifier notify.Notifier) *Env {
	return &Env{Cache: cache, Notifier: notifier, Now: time.Now}
}

type mutation struct {
	name        string
	invalidates []string
	success     notify.Notification
	fallback    string // failure description when the error has no message
}

// run executes fn as a mutation. fn may return a description that replaces
// the default success description.
func (e *Env) run(ctx context.Context, m mutation, fn func(ctx context.Context) (string, error)) error {
	logger.EnterMethod(m.name)
	description, err := fn(ctx)
	if err != nil {
		msg := apiclient.MessageOf(err)
		if msg == "" {
			msg = m.fallback
		}
		e.Notifier.Notify(notify.Failure(failureTitle, msg))
		logger.ExitMethodWithError(m.name, err)
		return err
	}

	e.Cache.Invalidate(m.invalidates...)
	n := m.success
	if description != "" {
		n.Description = description
	}
	e.Notifier.Notify(n)
	logger.ExitMethod(m.name)
	return nil
}

// done adapts a call result to a mutation body
func done[T any](env *apiclient.Envelope[T], err error) (string, error) {
	_, err = apiclient.Unwrap(env, err)
	return "", err
}

// statusKey is the cache key part for a status filter
func statusKey(filter string) string {
	if p := stats.StatusParam(filter); p != "" {
		return p
	}
	return stats.AllStatuses
}
