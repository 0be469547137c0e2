// Package http is the local web console. Every page is a screen rendered
// server-side; every write is a POST that redirects back once the screen has
// raised its notification.
package http

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"toolrent-console/internal/domain"
	"toolrent-console/internal/logger"
	"toolrent-console/internal/metrics"
	"toolrent-console/internal/notify"
	"toolrent-console/internal/screen"
	"toolrent-console/internal/stats"
	"toolrent-console/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

// Identity is the console's view of the signed-in session
type Identity interface {
	User() *domain.User
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Logout() error
}

// Screens are the pages the console serves
type Screens struct {
	Dashboard *screen.Dashboard
	Analytics *screen.Analytics
	Tools     *screen.Tools
	Orders    *screen.Orders
	Reviews   *screen.Reviews
	Bookings  *screen.Bookings
	Product   *screen.Product
	Profile   *screen.Profile
}

// Server is the web console
type Server struct {
	router  *mux.Router
	session Identity
	screens Screens
	feed    *notify.Feed
	pages   *template.Template
	images  *ImageHandler
	now     func() time.Time
}

// NewServer wires the console routes. origin is the remote service root that
// tool images are served from.
func NewServer(sess Identity, screens Screens, feed *notify.Feed, origin string) (*Server, error) {
	pages, err := template.New("console").Funcs(template.FuncMap{
		"money":   formatMoney,
		"date":    stats.FormatDate,
		"shortID": stats.ShortID,
		"percent": formatPercent,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:  mux.NewRouter(),
		session: sess,
		screens: screens,
		feed:    feed,
		pages:   pages,
		images:  NewImageHandler(origin, nil),
		now:     time.Now,
	}
	s.routes()
	return s, nil
}

// UseImageCache keeps a copy of every image fetched from the remote service
func (s *Server) UseImageCache(store storage.ImageStore) {
	s.images.cache = store
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(metrics.Middleware(), s.originMiddleware(), s.accessMiddleware)

	// Session
	r.HandleFunc("/login", s.loginPage).Methods(http.MethodGet).Name("login")
	r.HandleFunc("/login", s.login).Methods(http.MethodPost).Name("login.post")
	r.HandleFunc("/register", s.registerPage).Methods(http.MethodGet).Name("register")
	r.HandleFunc("/register", s.register).Methods(http.MethodPost).Name("register.post")
	r.HandleFunc("/logout", s.logout).Methods(http.MethodPost).Name("logout.post")
	r.HandleFunc("/notifications/{id}/dismiss", s.dismiss).Methods(http.MethodPost).Name("notifications.dismiss")
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet).Name("metrics")
	r.HandleFunc("/img/{name}", s.images.Serve).Methods(http.MethodGet).Name("images")

	// Catalog and customer
	r.HandleFunc("/tools/{id}", s.product).Methods(http.MethodGet).Name("product")
	r.HandleFunc("/tools/{id}/book", s.book).Methods(http.MethodPost).Name("product.book")
	r.HandleFunc("/tools/{id}/reviews", s.postReview).Methods(http.MethodPost).Name("product.review.post")
	r.HandleFunc("/profile", s.profile).Methods(http.MethodGet).Name("profile")
	r.HandleFunc("/profile", s.updateProfile).Methods(http.MethodPost).Name("profile.post")

	// Admin
	r.HandleFunc("/", s.dashboard).Methods(http.MethodGet).Name("dashboard")
	r.HandleFunc("/analytics", s.analytics).Methods(http.MethodGet).Name("analytics")

	r.HandleFunc("/admin/tools", s.tools).Methods(http.MethodGet).Name("tools")
	r.HandleFunc("/admin/tools", s.createTool).Methods(http.MethodPost).Name("tools.create")
	r.HandleFunc("/admin/tools/{id}", s.updateTool).Methods(http.MethodPost).Name("tools.update")
	r.HandleFunc("/admin/tools/{id}/delete", s.deleteTool).Methods(http.MethodPost).Name("tools.delete")
	r.HandleFunc("/admin/tools/{id}/toggle", s.toggleTool).Methods(http.MethodPost).Name("tools.toggle")

	r.HandleFunc("/admin/orders", s.orders).Methods(http.MethodGet).Name("orders")
	r.HandleFunc("/admin/orders/{id}", s.order).Methods(http.MethodGet).Name("orders.show")
	r.HandleFunc("/admin/orders/{id}/status", s.orderStatus).Methods(http.MethodPost).Name("orders.status")
	r.HandleFunc("/admin/orders/{id}/cancel", s.cancelOrder).Methods(http.MethodPost).Name("orders.cancel")

	r.HandleFunc("/admin/reviews", s.reviews).Methods(http.MethodGet).Name("reviews")
	r.HandleFunc("/admin/reviews/{id}/approve", s.approveReview).Methods(http.MethodPost).Name("reviews.approve")
	r.HandleFunc("/admin/reviews/{id}/reject", s.rejectReview).Methods(http.MethodPost).Name("reviews.reject")
	r.HandleFunc("/admin/reviews/{id}/delete", s.deleteReview).Methods(http.MethodPost).Name("reviews.delete")

	r.HandleFunc("/admin/bookings", s.bookings).Methods(http.MethodGet).Name("bookings")
	r.HandleFunc("/admin/bookings/cleanup", s.cleanupBookings).Methods(http.MethodPost).Name("bookings.cleanup")
	r.HandleFunc("/admin/bookings/{id}/confirm", s.confirmBooking).Methods(http.MethodPost).Name("bookings.confirm")
	r.HandleFunc("/admin/bookings/{id}/cancel", s.cancelBooking).Methods(http.MethodPost).Name("bookings.cancel")
	r.HandleFunc("/admin/bookings/{id}/delete", s.deleteBooking).Methods(http.MethodPost).Name("bookings.delete")
}

// page is what every template receives
type page struct {
	Title         string
	User          *domain.User
	Notifications []notify.Notification
	Error         string
	Data          any
}

// render writes a full page. A read error is shown above whatever part of
// the view did load.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name, title string, data any, readErr error) {
	p := page{
		Title:         title,
		User:          s.session.User(),
		Notifications: s.feed.Pending(),
		Data:          data,
	}
	if readErr != nil {
		p.Error = readErr.Error()
		logger.WarnContext(r.Context(), "Screen read failed", "page", name, "error", readErr)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.pages.ExecuteTemplate(w, name, p); err != nil {
		logger.ErrorContext(r.Context(), "Failed to render page", "page", name, "error", err)
	}
}

// back redirects after a POST to the form's "next" field when it is a local
// path, otherwise to fallback
func back(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.FormValue("next")
	if !isLocalPath(target) {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func isLocalPath(p string) bool {
	return len(p) > 0 && p[0] == '/' && (len(p) == 1 || (p[1] != '/' && p[1] != '\\'))
}
