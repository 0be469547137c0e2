package http

import (
	"net/http"
	"strings"

	"toolrent-console/internal/domain"
	"toolrent-console/internal/screen"
)

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	view, err := s.screens.Dashboard.Load(r.Context())
	s.render(w, r, "dashboard", "Dashboard", view, err)
}

func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	view, err := s.screens.Analytics.Load(r.Context())
	s.render(w, r, "analytics", "Analytics", view, err)
}

// Tools

type toolsPage struct {
	screen.ToolsView
	Statuses []domain.ToolStatus
}

func (s *Server) tools(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := s.screens.Tools.Load(r.Context(), q.Get("search"), q.Get("category"))
	s.render(w, r, "tools", "Tools", toolsPage{
		ToolsView: view,
		Statuses:  []domain.ToolStatus{domain.ToolStatusAvailable, domain.ToolStatusRented, domain.ToolStatusMaintenance, domain.ToolStatusRetired},
	}, err)
}

func toolDraft(r *http.Request) screen.ToolDraft {
	return screen.ToolDraft{
		Name:            r.FormValue("name"),
		Brand:           r.FormValue("brand"),
		Category:        r.FormValue("category"),
		Subcategory:     r.FormValue("subcategory"),
		Price:           r.FormValue("price"),
		Description:     r.FormValue("description"),
		FullDescription: r.FormValue("fullDescription"),
		Features:        r.FormValue("features"),
		InStock:         r.FormValue("inStock"),
		TotalStock:      r.FormValue("totalStock"),
	}
}

func (s *Server) createTool(w http.ResponseWriter, r *http.Request) {
	_, _ = s.screens.Tools.Create(r.Context(), toolDraft(r))
	back(w, r, "/admin/tools")
}

func (s *Server) updateTool(w http.ResponseWriter, r *http.Request) {
	_ = s.screens.Tools.Edit(r.Context(), varID(r), toolDraft(r), r.FormValue("status"))
	back(w, r, "/admin/tools")
}

func (s *Server) deleteTool(w http.ResponseWriter, r *http.Request) {
	_ = s.screens.Tools.Delete(r.Context(), varID(r))
	back(w, r, "/admin/tools")
}

func (s *Server) toggleTool(w http.ResponseWriter, r *http.Request) {
	_, _ = s.screens.Tools.ToggleAvailability(r.Context(), varID(r), domain.ToolStatus(r.FormValue("current")))
	back(w, r, "/admin/tools")
}

// Orders

type ordersPage struct {
	screen.OrdersView
	Statuses []domain.OrderStatus
}

func (s *Server) orders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := s.screens.Orders.Load(r.Context(), q.Get("status"), q.Get("search"))
	s.render(w, r, "orders", "Orders", ordersPage{OrdersView: view, Statuses: domain.OrderStatuses}, err)
}

type orderPage struct {
	Order    domain.Order
	Statuses []domain.OrderStatus
}

func (s *Server) order(w http.ResponseWriter, r *http.Request) {
	order, err := s.screens.Orders.Detail(r.Context(), varID(r))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
	}
	s.render(w, r, "order", "Order "+order.OrderNumber, orderPage{Order: order, Statuses: domain.OrderStatuses}, err)
}

func (s *Server) orderStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.OrderStatus(r.FormValue("status"))
	_ = s.screens.Orders.UpdateStatus(r.Context(), varID(r), status, strings.TrimSpace(r.FormValue("note")))
	back(w, r, "/admin/orders")
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	_ = s.screens.Orders.Cancel(r.Context(), varID(r), strings.TrimSpace(r.FormValue("reason")))
	back(w, r, "/admin/orders")
}

// Reviews

func (s *Server) reviews(w http.ResponseWriter, r *http.Request) {
	view, err := s.screens.Reviews.Load(r.Context(), r.URL.Query().Get("status"))
	s.render(w, r, "reviews", "Reviews", view, err)
}

func (s *Server) approveReview(w http.ResponseWriter, r *http.Request) {
	_ = s.screens.Reviews.Approve(r.Context(), varID(r))
	back(w, r, "/admin/reviews")
}

func (s *Server) rejectReview(w http.ResponseWriter, r *http.Request) {
	_ = s.screens.Reviews.Reject(r.Context(), varID(r), strings.TrimSpace(r.FormValue("reason")))
	back(w, r, "/admin/reviews")
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	_ = s.screens.Reviews.Delete(r.Context(), varID(r))
	back(w, r, "/admin/reviews")
}

// Bookings

func (s *Server) bookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := s.screens.Bookings.Load(r.Context(), q.Get("status"), q.Get("search"))
	s.render(w, r, "bookings", "Bookings", view, err)
}

func (s *Server) confirmBooking(w http.ResponseWriter, r *http.Request) {
	_ = s.screens.Bookings.Confirm(r.Context(), varID(r))
	back(w, r, "/admin/bookings")
}

func (s *Server) cancelBooking(w http.ResponseWriter, r *http.Request) {
	_ = s.screens.Bookings.Cancel(r.Context(), varID(r), strings.TrimSpace(r.FormValue("reason")))
	back(w, r, "/admin/bookings")
}

func (s *Server) deleteBooking(w http.ResponseWriter, r *http.Request) {
	_ = s.screens.Bookings.Delete(r.Context(), varID(r))
	back(w, r, "/admin/bookings")
}

func (s *Server) cleanupBookings(w http.ResponseWriter, r *http.Request) {
	_, _ = s.screens.Bookings.CleanupExpired(r.Context())
	back(w, r, "/admin/bookings")
}
