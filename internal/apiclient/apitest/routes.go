package apitest

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"toolrent-console/internal/domain"
)

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.middleware)

	// Auth
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost).Name("auth.register")
	api.HandleFunc("/auth/profile", s.profile).Methods(http.MethodGet).Name("auth.profile")
	api.HandleFunc("/auth/profile", s.updateProfile).Methods(http.MethodPut).Name("auth.profile.update")

	// Tools
	api.HandleFunc("/tools/meta/categories", s.categories).Methods(http.MethodGet).Name("tools.categories")
	api.HandleFunc("/tools/meta/popular", s.popularTools).Methods(http.MethodGet).Name("tools.popular")
	api.HandleFunc("/tools", s.listTools).Methods(http.MethodGet).Name("tools.list")
	api.HandleFunc("/tools", s.createTool).Methods(http.MethodPost).Name("tools.create")
	api.HandleFunc("/tools/{id}", s.getTool).Methods(http.MethodGet).Name("tools.get")
	api.HandleFunc("/tools/{id}", s.updateTool).Methods(http.MethodPut).Name("tools.update")
	api.HandleFunc("/tools/{id}", s.deleteTool).Methods(http.MethodDelete).Name("tools.delete")

	// Orders
	api.HandleFunc("/orders/meta/statistics", s.orderStatistics).Methods(http.MethodGet).Name("orders.statistics")
	api.HandleFunc("/orders", s.listOrders).Methods(http.MethodGet).Name("orders.list")
	api.HandleFunc("/orders", s.createOrder).Methods(http.MethodPost).Name("orders.create")
	api.HandleFunc("/orders/{id}", s.getOrder).Methods(http.MethodGet).Name("orders.get")
	api.HandleFunc("/orders/{id}/status", s.updateOrderStatus).Methods(http.MethodPut).Name("orders.status")
	api.HandleFunc("/orders/{id}/cancel", s.cancelOrder).Methods(http.MethodPut).Name("orders.cancel")

	// Reviews
	api.HandleFunc("/reviews", s.listReviews).Methods(http.MethodGet).Name("reviews.list")
	api.HandleFunc("/reviews", s.createReview).Methods(http.MethodPost).Name("reviews.create")
	api.HandleFunc("/reviews/tool/{toolId}", s.toolReviews).Methods(http.MethodGet).Name("reviews.tool")
	api.HandleFunc("/reviews/{id}/approve", s.approveReview).Methods(http.MethodPut).Name("reviews.approve")
	api.HandleFunc("/reviews/{id}/reject", s.rejectReview).Methods(http.MethodPut).Name("reviews.reject")
	api.HandleFunc("/reviews/{id}", s.deleteReview).Methods(http.MethodDelete).Name("reviews.delete")

	// Bookings
	api.HandleFunc("/bookings/my", s.myBookings).Methods(http.MethodGet).Name("bookings.my")
	api.HandleFunc("/bookings/cleanup/expired", s.cleanupBookings).Methods(http.MethodPost).Name("bookings.cleanup")
	api.HandleFunc("/bookings", s.listBookings).Methods(http.MethodGet).Name("bookings.list")
	api.HandleFunc("/bookings", s.createBooking).Methods(http.MethodPost).Name("bookings.create")
	api.HandleFunc("/bookings/{id}/confirm", s.confirmBooking).Methods(http.MethodPut).Name("bookings.confirm")
	api.HandleFunc("/bookings/{id}/cancel", s.cancelBooking).Methods(http.MethodPut).Name("bookings.cancel")
	api.HandleFunc("/bookings/{id}", s.deleteBooking).Methods(http.MethodDelete).Name("bookings.delete")

	return r
}

// Auth

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	acc, ok := s.accounts[req.Email]
	if !ok || acc.password != req.Password {
		writeFailure(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeData(w, http.StatusOK, domain.AuthResult{User: acc.user, Token: mintToken(acc.user)}, "")
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Message: "Validation failed", Errors: []string{"email and password are required"}})
		return
	}
	if _, exists := s.accounts[req.Email]; exists {
		writeFailure(w, http.StatusBadRequest, "User with this email already exists")
		return
	}
	u := domain.User{
		ID:        s.newID("user"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Role:      domain.UserRoleCustomer,
		IsActive:  true,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	s.accounts[u.Email] = &account{user: u, password: req.Password}
	writeData(w, http.StatusCreated, domain.AuthResult{User: u, Token: mintToken(u)}, "")
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	acc := s.caller(r)
	if acc == nil {
		writeFailure(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	writeData(w, http.StatusOK, acc.user, "")
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	acc := s.caller(r)
	if acc == nil {
		writeFailure(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	var upd domain.ProfileUpdate
	if err := decode(r, &upd); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	u := &acc.user
	setString(&u.FirstName, upd.FirstName)
	setString(&u.LastName, upd.LastName)
	setString(&u.Phone, upd.Phone)
	setString(&u.Company, upd.Company)
	setString(&u.Address, upd.Address)
	if upd.Email != nil && *upd.Email != u.Email {
		delete(s.accounts, u.Email)
		u.Email = *upd.Email
		s.accounts[u.Email] = acc
	}
	writeData(w, http.StatusOK, acc.user, "Profile updated")
}

// Tools

func (s *Server) findTool(id string) *domain.Tool {
	for i := range s.Tools {
		if s.Tools[i].ID == id {
			return &s.Tools[i]
		}
	}
	return nil
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var tools []domain.Tool
	for _, t := range s.Tools {
		if c := q.Get("category"); c != "" && t.Category != c {
			continue
		}
		if b := q.Get("brand"); b != "" && t.Brand != b {
			continue
		}
		if term := strings.ToLower(q.Get("search")); term != "" &&
			!strings.Contains(strings.ToLower(t.Name), term) && !strings.Contains(strings.ToLower(t.Brand), term) {
			continue
		}
		if q.Get("available") == "true" && t.Status != domain.ToolStatusAvailable {
			continue
		}
		tools = append(tools, t)
	}
	page, p := paginate(tools, q)
	writeData(w, http.StatusOK, domain.ToolPage{Tools: page, Pagination: p}, "")
}

func (s *Server) getTool(w http.ResponseWriter, r *http.Request) {
	t := s.findTool(mux.Vars(r)["id"])
	if t == nil {
		writeFailure(w, http.StatusNotFound, "Tool not found")
		return
	}
	writeData(w, http.StatusOK, t, "")
}

func (s *Server) createTool(w http.ResponseWriter, r *http.Request) {
	var in domain.ToolInput
	if err := decode(r, &in); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Name == nil || *in.Name == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Message: "Validation failed", Errors: []string{"name is required"}})
		return
	}
	t := domain.Tool{ID: s.newID("tool"), CreatedAt: s.now().UTC().Format(time.RFC3339)}
	applyToolInput(&t, in)
	s.Tools = append(s.Tools, t)
	writeData(w, http.StatusCreated, t, "Tool created")
}

func (s *Server) updateTool(w http.ResponseWriter, r *http.Request) {
	t := s.findTool(mux.Vars(r)["id"])
	if t == nil {
		writeFailure(w, http.StatusNotFound, "Tool not found")
		return
	}
	var in domain.ToolInput
	if err := decode(r, &in); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	applyToolInput(t, in)
	writeData(w, http.StatusOK, t, "Tool updated")
}

func (s *Server) deleteTool(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for i := range s.Tools {
		if s.Tools[i].ID == id {
			s.Tools = append(s.Tools[:i], s.Tools[i+1:]...)
			writeData(w, http.StatusOK, nil, "Tool deleted")
			return
		}
	}
	writeFailure(w, http.StatusNotFound, "Tool not found")
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	cats := s.Categories
	if cats == nil {
		cats = []domain.Category{}
	}
	writeData(w, http.StatusOK, cats, "")
}

func (s *Server) popularTools(w http.ResponseWriter, r *http.Request) {
	tools := append([]domain.Tool{}, s.Tools...)
	sort.SliceStable(tools, func(i, j int) bool { return tools[i].TotalRentals > tools[j].TotalRentals })
	limit := atoi(r.URL.Query().Get("limit"), 10)
	if len(tools) > limit {
		tools = tools[:limit]
	}
	writeData(w, http.StatusOK, tools, "")
}

func applyToolInput(t *domain.Tool, in domain.ToolInput) {
	setString(&t.Name, in.Name)
	setString(&t.Brand, in.Brand)
	setString(&t.Model, in.Model)
	setString(&t.Category, in.Category)
	setString(&t.Subcategory, in.Subcategory)
	setString(&t.Description, in.Description)
	setString(&t.FullDescription, in.FullDescription)
	setString(&t.Condition, in.Condition)
	setString(&t.Location, in.Location)
	if in.Price != nil {
		t.Price = *in.Price
	}
	if in.Images != nil {
		t.Images = in.Images
	}
	if in.Specifications != nil {
		t.Specifications = in.Specifications
	}
	if in.Features != nil {
		t.Features = in.Features
	}
	if in.Included != nil {
		t.Included = in.Included
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.InStock != nil {
		t.InStock = *in.InStock
	}
	if in.TotalStock != nil {
		t.TotalStock = *in.TotalStock
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Orders

func (s *Server) findOrder(id string) *domain.Order {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return &s.Orders[i]
		}
	}
	return nil
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var orders []domain.Order
	for _, o := range s.Orders {
		if st := q.Get("status"); st != "" && string(o.Status) != st {
			continue
		}
		if c := q.Get("customerId"); c != "" && o.CustomerID != c {
			continue
		}
		orders = append(orders, o)
	}
	page, p := paginate(orders, q)
	writeData(w, http.StatusOK, domain.OrderPage{Orders: page, Pagination: p}, "")
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	o := s.findOrder(mux.Vars(r)["id"])
	if o == nil {
		writeFailure(w, http.StatusNotFound, "Order not found")
		return
	}
	writeData(w, http.StatusOK, o, "")
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	acc := s.caller(r)
	if acc == nil {
		writeFailure(w, http.StatusUnauthorized, "Access denied")
		return
	}
	var req domain.CreateOrderRequest
	if err := decode(r, &req); err != nil || len(req.Items) == 0 {
		writeFailure(w, http.StatusBadRequest, "Order must contain at least one item")
		return
	}
	o := domain.Order{
		ID:            s.newID("order"),
		CustomerID:    acc.user.ID,
		CustomerInfo:  req.CustomerInfo,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		PaymentMethod: req.PaymentMethod,
		DeliveryInfo:  req.DeliveryInfo,
		Notes:         req.Notes,
		CreatedAt:     s.now().UTC().Format(time.RFC3339),
	}
	o.OrderNumber = "ORD-" + strings.TrimPrefix(o.ID, "order-")
	for _, line := range req.Items {
		t := s.findTool(line.ToolID)
		if t == nil {
			writeFailure(w, http.StatusBadRequest, "Tool not found")
			return
		}
		total := t.Price * float64(line.Quantity*line.Days)
		o.Items = append(o.Items, domain.OrderItem{
			ToolID: t.ID, ToolName: t.Name, Quantity: line.Quantity,
			PricePerDay: t.Price, Days: line.Days, Total: total,
		})
		o.Subtotal += total
		if line.Days > o.TotalDays {
			o.TotalDays = line.Days
		}
	}
	o.Total = o.Subtotal
	s.Orders = append(s.Orders, o)
	writeData(w, http.StatusCreated, o, "Order created")
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	o := s.findOrder(mux.Vars(r)["id"])
	if o == nil {
		writeFailure(w, http.StatusNotFound, "Order not found")
		return
	}
	var req struct {
		Status domain.OrderStatus `json:"status"`
		Note   string             `json:"note"`
	}
	if err := decode(r, &req); err != nil || req.Status == "" {
		writeFailure(w, http.StatusBadRequest, "Status is required")
		return
	}
	o.Status = req.Status
	o.Timeline = append(o.Timeline, domain.TimelineEntry{
		Status: string(req.Status), Timestamp: s.now().UTC().Format(time.RFC3339), Note: req.Note,
	})
	writeData(w, http.StatusOK, o, "Order status updated")
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	o := s.findOrder(mux.Vars(r)["id"])
	if o == nil {
		writeFailure(w, http.StatusNotFound, "Order not found")
		return
	}
	if o.Status == domain.OrderStatusCompleted || o.Status == domain.OrderStatusCancelled {
		writeFailure(w, http.StatusBadRequest, "Order cannot be cancelled")
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = decode(r, &req)
	o.Status = domain.OrderStatusCancelled
	o.Timeline = append(o.Timeline, domain.TimelineEntry{
		Status: string(domain.OrderStatusCancelled), Timestamp: s.now().UTC().Format(time.RFC3339), Note: req.Reason,
	})
	writeData(w, http.StatusOK, o, "Order cancelled")
}

func (s *Server) orderStatistics(w http.ResponseWriter, r *http.Request) {
	if s.Statistics != nil {
		writeData(w, http.StatusOK, s.Statistics, "")
		return
	}
	var st domain.OrderStatistics
	for _, o := range s.Orders {
		st.Total++
		switch o.Status {
		case domain.OrderStatusPending:
			st.Pending++
		case domain.OrderStatusConfirmed:
			st.Confirmed++
		case domain.OrderStatusActive:
			st.Active++
		case domain.OrderStatusCompleted:
			st.Completed++
		case domain.OrderStatusCancelled:
			st.Cancelled++
		}
		if o.Status != domain.OrderStatusCancelled {
			st.TotalRevenue += o.Total
		}
	}
	if st.Total > 0 {
		st.AverageOrderValue = st.TotalRevenue / float64(st.Total)
	}
	writeData(w, http.StatusOK, st, "")
}

// Reviews

func (s *Server) reviewIndex(id string) int {
	for i := range s.Reviews {
		if s.Reviews[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var reviews []domain.Review
	for _, rv := range s.Reviews {
		switch q.Get("status") {
		case "pending":
			if rv.IsApproved {
				continue
			}
		case "approved":
			if !rv.IsApproved {
				continue
			}
		}
		reviews = append(reviews, rv)
	}
	page, p := paginate(reviews, q)
	writeData(w, http.StatusOK, domain.ReviewPage{Reviews: page, Pagination: p}, "")
}

func (s *Server) toolReviews(w http.ResponseWriter, r *http.Request) {
	toolID := mux.Vars(r)["toolId"]
	var reviews []domain.Review
	var sum int
	for _, rv := range s.Reviews {
		if rv.ToolID == toolID && rv.IsApproved {
			reviews = append(reviews, rv)
			sum += rv.Rating
		}
	}
	rating := domain.ToolRating{Count: len(reviews)}
	if len(reviews) > 0 {
		rating.Rating = float64(sum) / float64(len(reviews))
	}
	page, p := paginate(reviews, r.URL.Query())
	writeData(w, http.StatusOK, domain.ToolReviewPage{Reviews: page, Rating: rating, Pagination: p}, "")
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	acc := s.caller(r)
	if acc == nil {
		writeFailure(w, http.StatusUnauthorized, "Access denied")
		return
	}
	var req domain.CreateReviewRequest
	if err := decode(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeJSON(w, http.StatusBadRequest, envelope{Message: "Validation failed", Errors: []string{"rating must be between 1 and 5"}})
		return
	}
	rv := domain.Review{
		ID: s.newID("review"), ToolID: req.ToolID, CustomerID: acc.user.ID, OrderID: req.OrderID,
		Rating: req.Rating, Title: req.Title, Comment: req.Comment, Pros: req.Pros, Cons: req.Cons,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if req.WouldRecommend != nil {
		rv.WouldRecommend = *req.WouldRecommend
	}
	s.Reviews = append(s.Reviews, rv)
	writeData(w, http.StatusCreated, rv, "Review submitted for moderation")
}

func (s *Server) approveReview(w http.ResponseWriter, r *http.Request) {
	i := s.reviewIndex(mux.Vars(r)["id"])
	if i < 0 {
		writeFailure(w, http.StatusNotFound, "Review not found")
		return
	}
	s.Reviews[i].IsApproved = true
	writeData(w, http.StatusOK, s.Reviews[i], "Review approved")
}

func (s *Server) rejectReview(w http.ResponseWriter, r *http.Request) {
	i := s.reviewIndex(mux.Vars(r)["id"])
	if i < 0 {
		writeFailure(w, http.StatusNotFound, "Review not found")
		return
	}
	s.Reviews[i].IsApproved = false
	s.Reviews[i].ReportCount++
	writeData(w, http.StatusOK, s.Reviews[i], "Review rejected")
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	i := s.reviewIndex(mux.Vars(r)["id"])
	if i < 0 {
		writeFailure(w, http.StatusNotFound, "Review not found")
		return
	}
	s.Reviews = append(s.Reviews[:i], s.Reviews[i+1:]...)
	writeData(w, http.StatusOK, nil, "Review deleted")
}

// Bookings

func (s *Server) findBooking(id string) *domain.Booking {
	for i := range s.Bookings {
		if s.Bookings[i].ID == id {
			return &s.Bookings[i]
		}
	}
	return nil
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var bookings []domain.Booking
	for _, b := range s.Bookings {
		if st := q.Get("status"); st != "" && string(b.Status) != st {
			continue
		}
		if t := q.Get("toolId"); t != "" && b.ToolID != t {
			continue
		}
		bookings = append(bookings, b)
	}
	page, p := paginate(bookings, q)
	writeData(w, http.StatusOK, domain.BookingPage{Bookings: page, Pagination: p}, "")
}

func (s *Server) myBookings(w http.ResponseWriter, r *http.Request) {
	acc := s.caller(r)
	if acc == nil {
		writeFailure(w, http.StatusUnauthorized, "Access denied")
		return
	}
	status := r.URL.Query().Get("status")
	bookings := []domain.Booking{}
	for _, b := range s.Bookings {
		if b.CustomerID != acc.user.ID || (status != "" && string(b.Status) != status) {
			continue
		}
		bookings = append(bookings, b)
	}
	writeData(w, http.StatusOK, bookings, "")
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	acc := s.caller(r)
	if acc == nil {
		writeFailure(w, http.StatusUnauthorized, "Access denied")
		return
	}
	var req domain.CreateBookingRequest
	if err := decode(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	t := s.findTool(req.ToolID)
	if t == nil {
		writeFailure(w, http.StatusNotFound, "Tool not found")
		return
	}
	if req.Quantity < 1 || req.Quantity > t.InStock {
		writeFailure(w, http.StatusBadRequest, "Not enough tools in stock")
		return
	}
	now := s.now().UTC()
	b := domain.Booking{
		ID: s.newID("booking"), ToolID: t.ID, CustomerID: acc.user.ID,
		StartDate: req.StartDate, EndDate: req.EndDate, Quantity: req.Quantity,
		Status: domain.BookingStatusPending, PricePerDay: t.Price, Notes: req.Notes,
		ExpiresAt: now.Add(30 * time.Minute).Format(time.RFC3339),
		CreatedAt: now.Format(time.RFC3339),
	}
	if start, err := time.Parse("2006-01-02", req.StartDate); err == nil {
		if end, err := time.Parse("2006-01-02", req.EndDate); err == nil && !end.Before(start) {
			days := int(end.Sub(start).Hours()/24) + 1
			b.TotalPrice = t.Price * float64(days*req.Quantity)
		}
	}
	s.Bookings = append(s.Bookings, b)
	writeData(w, http.StatusCreated, b, "Booking created")
}

func (s *Server) confirmBooking(w http.ResponseWriter, r *http.Request) {
	b := s.findBooking(mux.Vars(r)["id"])
	if b == nil {
		writeFailure(w, http.StatusNotFound, "Booking not found")
		return
	}
	if b.Status != domain.BookingStatusPending {
		writeFailure(w, http.StatusBadRequest, "Only pending bookings can be confirmed")
		return
	}
	b.Status = domain.BookingStatusConfirmed
	b.ConfirmedAt = s.now().UTC().Format(time.RFC3339)
	writeData(w, http.StatusOK, b, "Booking confirmed")
}

func (s *Server) cancelBooking(w http.ResponseWriter, r *http.Request) {
	b := s.findBooking(mux.Vars(r)["id"])
	if b == nil {
		writeFailure(w, http.StatusNotFound, "Booking not found")
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = decode(r, &req)
	b.Status = domain.BookingStatusCancelled
	b.CancelledAt = s.now().UTC().Format(time.RFC3339)
	b.CancellationReason = req.Reason
	writeData(w, http.StatusOK, b, "Booking cancelled")
}

func (s *Server) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for i := range s.Bookings {
		if s.Bookings[i].ID == id {
			s.Bookings = append(s.Bookings[:i], s.Bookings[i+1:]...)
			writeData(w, http.StatusOK, nil, "Booking deleted")
			return
		}
	}
	writeFailure(w, http.StatusNotFound, "Booking not found")
}

func (s *Server) cleanupBookings(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	n := 0
	for i := range s.Bookings {
		b := &s.Bookings[i]
		if b.Status != domain.BookingStatusPending {
			continue
		}
		exp, err := time.Parse(time.RFC3339, b.ExpiresAt)
		if err != nil || exp.After(now) {
			continue
		}
		b.Status = domain.BookingStatusExpired
		n++
	}
	writeData(w, http.StatusOK, domain.CleanupResult{
		Message:      "Expired bookings cleaned up: " + strconv.Itoa(n),
		ExpiredCount: n,
	}, "")
}
