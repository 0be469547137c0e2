package http

import (
	"net/http"
	"strings"

	"toolrent-console/internal/domain"
	"toolrent-console/internal/screen"
	"toolrent-console/internal/stats"
)

const (
	defaultRentalDays = 1
	defaultQuantity   = 1
)

type productPage struct {
	screen.ProductView
	Days     int
	Quantity int
	Today    string
}

func (s *Server) product(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days := formValueInt(q.Get("days"), defaultRentalDays)
	qty := formValueInt(q.Get("quantity"), defaultQuantity)
	view, err := s.screens.Product.Load(r.Context(), varID(r), days, qty)
	if err != nil && view.Tool.ID == "" {
		w.WriteHeader(http.StatusNotFound)
	}
	s.render(w, r, "product", view.Tool.Name, productPage{
		ProductView: view,
		Days:        view.Quote.Period.Days,
		Quantity:    view.Quote.Quantity,
		Today:       s.now().Format("2006-01-02"),
	}, err)
}

func (s *Server) book(w http.ResponseWriter, r *http.Request) {
	id := varID(r)
	_, _ = s.screens.Product.Book(r.Context(), id,
		strings.TrimSpace(r.FormValue("startDate")),
		formValueInt(r.FormValue("days"), defaultRentalDays),
		formValueInt(r.FormValue("quantity"), defaultQuantity),
		strings.TrimSpace(r.FormValue("notes")))
	back(w, r, "/tools/"+id)
}

func (s *Server) postReview(w http.ResponseWriter, r *http.Request) {
	id := varID(r)
	req := domain.CreateReviewRequest{
		ToolID:  id,
		OrderID: strings.TrimSpace(r.FormValue("orderId")),
		Rating:  formValueInt(r.FormValue("rating"), 0),
		Title:   strings.TrimSpace(r.FormValue("title")),
		Comment: strings.TrimSpace(r.FormValue("comment")),
		Pros:    stats.SplitList(r.FormValue("pros")),
		Cons:    stats.SplitList(r.FormValue("cons")),
	}
	if v := r.FormValue("wouldRecommend"); v != "" {
		rec := v == "yes" || v == "true" || v == "on"
		req.WouldRecommend = &rec
	}
	_, _ = s.screens.Product.Review(r.Context(), req)
	back(w, r, "/tools/"+id)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	view, err := s.screens.Profile.Load(r.Context())
	s.render(w, r, "profile", "Profile", view, err)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	update := domain.ProfileUpdate{
		FirstName: optional(r.FormValue("firstName")),
		LastName:  optional(r.FormValue("lastName")),
		Email:     optional(r.FormValue("email")),
		Phone:     optional(r.FormValue("phone")),
		Company:   optional(r.FormValue("company")),
		Address:   optional(r.FormValue("address")),
	}
	if !update.IsEmpty() {
		_, _ = s.screens.Profile.Update(r.Context(), update)
	}
	back(w, r, "/profile")
}
