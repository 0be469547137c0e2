package main

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/config"
	"toolrent-console/internal/logger"
	"toolrent-console/internal/notify"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/screen"
	"toolrent-console/internal/session"
	"toolrent-console/internal/tokenstore"
)

// app holds everything a command needs
type app struct {
	cfg     *config.Config
	store   *tokenstore.Store
	client  *apiclient.Client
	session *session.Session
	cache   *querycache.Cache
	feed    *notify.Feed
	env     *screen.Env

	dashboard *screen.Dashboard
	analytics *screen.Analytics
	tools     *screen.Tools
	orders    *screen.Orders
	reviews   *screen.Reviews
	bookings  *screen.Bookings
	product   *screen.Product
	profile   *screen.Profile
}

func newApp(ctx context.Context, cfg *config.Config, out, errOut io.Writer) (*app, error) {
	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Debug("ToolRent console configuration", "api", cfg.API.BaseURL, "credentials", cfg.Credentials.Path)

	store, err := tokenstore.New(cfg.Credentials.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	client := apiclient.New(cfg.API.BaseURL, store)
	sess := session.New(client, store)
	if ctx == nil {
		ctx = context.Background()
	}
	sess.Init(ctx)

	feed := notify.NewFeed(0)
	cache := querycache.New(querycache.WithMaxAge(cfg.Console.StaleTime))
	// nothing read or announced under one identity is shown to the next
	sess.OnIdentityChange(func() {
		cache.InvalidateAll()
		feed.Drain()
	})
	env := screen.NewEnv(cache, notify.Multi{notify.NewWriter(out, errOut), notify.Log{}, feed})

	return &app{
		cfg:       cfg,
		store:     store,
		client:    client,
		session:   sess,
		cache:     cache,
		feed:      feed,
		env:       env,
		dashboard: screen.NewDashboard(env, client),
		analytics: screen.NewAnalytics(env, client),
		tools:     screen.NewTools(env, client),
		orders:    screen.NewOrders(env, client),
		reviews:   screen.NewReviews(env, client),
		bookings:  screen.NewBookings(env, client),
		product:   screen.NewProduct(env, client),
		profile:   screen.NewProfile(env, client, sess),
	}, nil
}

// origin is the remote service root, the API base URL without its path
func (a *app) origin() string {
	u, err := url.Parse(a.cfg.API.BaseURL)
	if err != nil {
		return a.cfg.API.BaseURL
	}
	u.Path = ""
	return u.String()
}

// reportedError marks a failure the user has already been shown
type reportedError struct {
	error
}

func (e *reportedError) Unwrap() error { return e.error }

// reported wraps the error of a screen mutation
func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err}
}
