package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/apiclient/apitest"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/logger"
	"toolrent-console/internal/notify"
	"toolrent-console/internal/querycache"
	"toolrent-console/internal/screen"
	"toolrent-console/internal/session"
	"toolrent-console/internal/storage"
	"toolrent-console/internal/tokenstore"
)

type fixture struct {
	remote  *apitest.Server
	feed    *notify.Feed
	session *session.Session
	handler http.Handler
}

// newFixture builds the console the way the serve command does. The cache
// refetches on every read unless opts say otherwise.
func newFixture(t *testing.T, opts ...querycache.Option) *fixture {
	t.Helper()
	remote := apitest.New(t)
	remote.Tools = []domain.Tool{
		{ID: "drill", Name: "Hammer drill", Category: "drills", Price: 20, InStock: 1, TotalStock: 3, Status: domain.ToolStatusAvailable},
	}
	remote.AddUser(domain.User{Email: "admin@example.com", FirstName: "Grace", Role: domain.UserRoleAdmin}, "admin-pw")
	remote.AddUser(domain.User{Email: "ada@example.com", FirstName: "Ada", Role: domain.UserRoleCustomer}, "ada-pw")

	store, err := tokenstore.New(filepath.Join(t.TempDir(), "credentials.yaml"))
	require.NoError(t, err)
	client := apiclient.New(remote.BaseURL(), store)
	sess := session.New(client, store)
	feed := notify.NewFeed(0)
	cache := querycache.New(append([]querycache.Option{querycache.WithMaxAge(0)}, opts...)...)
	sess.OnIdentityChange(func() {
		cache.InvalidateAll()
		feed.Drain()
	})
	env := screen.NewEnv(cache, feed)

	srv, err := NewServer(sess, Screens{
		Dashboard: screen.NewDashboard(env, client),
		Analytics: screen.NewAnalytics(env, client),
		Tools:     screen.NewTools(env, client),
		Orders:    screen.NewOrders(env, client),
		Reviews:   screen.NewReviews(env, client),
		Bookings:  screen.NewBookings(env, client),
		Product:   screen.NewProduct(env, client),
		Profile:   screen.NewProfile(env, client, sess),
	}, feed, remote.URL)
	require.NoError(t, err)
	return &fixture{remote: remote, feed: feed, session: sess, handler: srv.Handler()}
}

func (f *fixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	return f.doWith(method, target, form, nil)
}

func (f *fixture) doWith(method, target string, form url.Values, header http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) signIn(t *testing.T, email, password string) {
	t.Helper()
	rec := f.do(http.MethodPost, "/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestAccess(t *testing.T) {
	t.Run("Anonymous is sent to login", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, "/admin/tools?search=drill", nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?next="+url.QueryEscape("/admin/tools?search=drill"), rec.Header().Get("Location"))
	})

	t.Run("Customer cannot open admin pages", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "ada@example.com", "ada-pw")
		rec := f.do(http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Zero(t, f.remote.Count("orders.statistics"))
	})

	t.Run("Public catalog page", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, "/tools/drill?days=3", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Hammer drill")
		assert.Contains(t, rec.Body.String(), "54.00 €")
	})

	t.Run("Metrics are public", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, "/metrics", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "toolrent_")
	})
}

func TestCrossOrigin(t *testing.T) {
	t.Run("Cross-site delete is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "admin@example.com", "admin-pw")

		rec := f.doWith(http.MethodPost, "/admin/tools/drill/delete", url.Values{}, http.Header{
			"Origin":         {"https://evil.example"},
			"Sec-Fetch-Site": {"cross-site"},
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Zero(t, f.remote.Count("tools.delete"))

		f.remote.Lock()
		defer f.remote.Unlock()
		require.Len(t, f.remote.Tools, 1)
		assert.Equal(t, "drill", f.remote.Tools[0].ID)
	})

	t.Run("Foreign origin without fetch metadata", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "admin@example.com", "admin-pw")

		rec := f.doWith(http.MethodPost, "/admin/bookings/cleanup", url.Values{}, http.Header{
			"Origin": {"https://evil.example"},
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Zero(t, f.remote.Count("bookings.cleanup"))
	})

	t.Run("Cross-site login is rejected", func(t *testing.T) {
		f := newFixture(t)
		rec := f.doWith(http.MethodPost, "/login", url.Values{"email": {"ada@example.com"}, "password": {"ada-pw"}},
			http.Header{"Sec-Fetch-Site": {"cross-site"}})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Nil(t, f.session.User())
	})

	t.Run("Same origin is allowed", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "admin@example.com", "admin-pw")

		rec := f.doWith(http.MethodPost, "/admin/tools/drill/toggle", url.Values{"current": {"available"}}, http.Header{
			"Origin":         {"http://example.com"},
			"Sec-Fetch-Site": {"same-origin"},
		})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("Cross-site page loads still work", func(t *testing.T) {
		f := newFixture(t)
		rec := f.doWith(http.MethodGet, "/tools/drill", nil, http.Header{"Sec-Fetch-Site": {"cross-site"}})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodPost, "/login", url.Values{
			"email": {"admin@example.com"}, "password": {"admin-pw"}, "next": {"/admin/bookings"},
		})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/bookings", rec.Header().Get("Location"))
		require.NotNil(t, f.session.User())
		assert.True(t, f.session.User().IsAdmin())
	})

	t.Run("Foreign next is ignored", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodPost, "/login", url.Values{
			"email": {"ada@example.com"}, "password": {"ada-pw"}, "next": {"//evil.example.com"},
		})
		assert.Equal(t, "/profile", rec.Header().Get("Location"))
	})

	t.Run("Wrong password shows the server message", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodPost, "/login", url.Values{"email": {"ada@example.com"}, "password": {"nope"}})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
		assert.Nil(t, f.session.User())
	})

	t.Run("Logout", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "ada@example.com", "ada-pw")
		rec := f.do(http.MethodPost, "/logout", url.Values{})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Nil(t, f.session.User())
	})

	t.Run("Next user sees nothing of the previous one", func(t *testing.T) {
		f := newFixture(t, querycache.WithMaxAge(time.Hour))
		f.signIn(t, "ada@example.com", "ada-pw")
		rec := f.do(http.MethodPost, "/tools/drill/book", url.Values{"startDate": {"2026-11-02"}, "days": {"2"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)

		page := f.do(http.MethodGet, "/profile", nil)
		require.Equal(t, http.StatusOK, page.Code)
		require.NotContains(t, page.Body.String(), "No bookings yet")

		f.signIn(t, "admin@example.com", "admin-pw")
		for _, n := range f.feed.Pending() {
			assert.NotContains(t, n.Description, "Ada")
		}

		page = f.do(http.MethodGet, "/profile", nil)
		assert.Equal(t, http.StatusOK, page.Code)
		assert.Contains(t, page.Body.String(), "No bookings yet")
		assert.Contains(t, page.Body.String(), "Grace")
	})
}

func TestAdminPages(t *testing.T) {
	t.Run("Dashboard", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "admin@example.com", "admin-pw")
		rec := f.do(http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Hammer drill: 1 left (critical)")
	})

	t.Run("Reload shows remote changes", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "admin@example.com", "admin-pw")
		rec := f.do(http.MethodGet, "/admin/tools", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Hammer drill")
		before := f.remote.Count("tools.list")

		f.remote.Lock()
		f.remote.Tools[0].Name = "Rotary hammer"
		f.remote.Unlock()

		rec = f.do(http.MethodGet, "/admin/tools", nil)
		assert.Greater(t, f.remote.Count("tools.list"), before)
		assert.Contains(t, rec.Body.String(), "Rotary hammer")
	})

	t.Run("Renamed tool shows on the dashboard", func(t *testing.T) {
		f := newFixture(t, querycache.WithMaxAge(time.Hour))
		f.signIn(t, "admin@example.com", "admin-pw")
		rec := f.do(http.MethodGet, "/", nil)
		require.Contains(t, rec.Body.String(), "Hammer drill: 1 left (critical)")

		rec = f.do(http.MethodPost, "/admin/tools/drill", url.Values{"name": {"Rotary hammer"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)

		rec = f.do(http.MethodGet, "/", nil)
		assert.Contains(t, rec.Body.String(), "Rotary hammer: 1 left (critical)")
		assert.NotContains(t, rec.Body.String(), "Hammer drill")
	})

	t.Run("Analytics shows revenue growth", func(t *testing.T) {
		f := newFixture(t)
		f.remote.Lock()
		f.remote.Statistics = &domain.OrderStatistics{Total: 4, TotalRevenue: 800, AverageOrderValue: 200}
		f.remote.Unlock()
		f.signIn(t, "admin@example.com", "admin-pw")

		rec := f.do(http.MethodGet, "/analytics", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Revenue growth, 30 days")
		assert.Contains(t, rec.Body.String(), "+0.0%")
	})

	t.Run("Read failure is shown on the page", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "admin@example.com", "admin-pw")
		f.remote.Fail("bookings.list", http.StatusInternalServerError, "Database unavailable")
		rec := f.do(http.MethodGet, "/admin/bookings", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Database unavailable")
	})

	t.Run("Mutation raises a notification and redirects", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "admin@example.com", "admin-pw")
		f.feed.Drain()

		rec := f.do(http.MethodPost, "/admin/bookings/cleanup", url.Values{})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/bookings", rec.Header().Get("Location"))

		pending := f.feed.Pending()
		require.Len(t, pending, 1)
		assert.Equal(t, "Expired bookings cleaned up: 0", pending[0].Description)

		page := f.do(http.MethodGet, "/admin/bookings", nil)
		assert.Contains(t, page.Body.String(), "Expired bookings cleaned up: 0")

		f.do(http.MethodPost, "/notifications/"+pending[0].ID+"/dismiss", url.Values{})
		assert.Empty(t, f.feed.Pending())
	})

	t.Run("Toggle availability", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "admin@example.com", "admin-pw")
		rec := f.do(http.MethodPost, "/admin/tools/drill/toggle", url.Values{"current": {"available"}})
		assert.Equal(t, http.StatusSeeOther, rec.Code)

		f.remote.Lock()
		status := f.remote.Tools[0].Status
		f.remote.Unlock()
		assert.Equal(t, domain.ToolStatusMaintenance, status)
	})
}

func TestImageHandler(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img/drill.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("jpeg-bytes"))
	}))
	t.Cleanup(origin.Close)

	f := newFixture(t)
	srv, err := NewServer(f.session, Screens{}, f.feed, origin.URL)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/img/drill.jpg", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
		assert.Equal(t, "jpeg-bytes", rec.Body.String())
	})

	t.Run("Missing image", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/img/saw.png", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Unsupported type", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/img/notes.txt", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestImageHandlerCache(t *testing.T) {
	var hits atomic.Int32
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("png-bytes"))
	}))
	t.Cleanup(origin.Close)

	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	f := newFixture(t)
	srv, err := NewServer(f.session, Screens{}, f.feed, origin.URL)
	require.NoError(t, err)
	srv.UseImageCache(store)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/img/saw.png", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "png-bytes", rec.Body.String())
	}
	assert.Equal(t, int32(1), hits.Load())
}

// brokenWriter accepts headers but fails every body write
type brokenWriter struct {
	header http.Header
	code   int
}

func (b *brokenWriter) Header() http.Header {
	if b.header == nil {
		b.header = http.Header{}
	}
	return b.header
}

func (b *brokenWriter) WriteHeader(code int) { b.code = code }

func (b *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset by peer") }

func TestImageHandlerShortWrite(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	t.Cleanup(origin.Close)

	var logs bytes.Buffer
	logger.InitializeWriter(&logs, "warn", "text")
	t.Cleanup(func() { logger.InitializeWriter(io.Discard, "info", "text") })

	f := newFixture(t)

	t.Run("Streamed from the remote service", func(t *testing.T) {
		logs.Reset()
		srv, err := NewServer(f.session, Screens{}, f.feed, origin.URL)
		require.NoError(t, err)

		srv.Handler().ServeHTTP(&brokenWriter{}, httptest.NewRequest(http.MethodGet, "/img/drill.jpg", nil))
		assert.Contains(t, logs.String(), "Image write failed")
		assert.Contains(t, logs.String(), "image=drill.jpg")
	})

	t.Run("Fetched and cached", func(t *testing.T) {
		logs.Reset()
		store, err := storage.NewDiskStore(t.TempDir())
		require.NoError(t, err)
		srv, err := NewServer(f.session, Screens{}, f.feed, origin.URL)
		require.NoError(t, err)
		srv.UseImageCache(store)

		srv.Handler().ServeHTTP(&brokenWriter{}, httptest.NewRequest(http.MethodGet, "/img/saw.jpg", nil))
		assert.Contains(t, logs.String(), "image=saw.jpg")

		logs.Reset()
		srv.Handler().ServeHTTP(&brokenWriter{}, httptest.NewRequest(http.MethodGet, "/img/saw.jpg", nil))
		assert.Contains(t, logs.String(), "Image write failed")
	})
}
