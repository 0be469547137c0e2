package screen_test

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/notify"
)

// MockAPI stands in for the REST client on every screen
type MockAPI struct {
	mock.Mock
}

func envelope[T any](args mock.Arguments) (*apiclient.Envelope[T], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.Envelope[T]), args.Error(1)
}

func ok[T any](data T) *apiclient.Envelope[T] {
	return &apiclient.Envelope[T]{Success: true, Data: data}
}

func ack() *apiclient.Ack {
	return &apiclient.Ack{Success: true}
}

func rejected(message string) error {
	return &apiclient.APIError{StatusCode: 400, Message: message}
}

// Tools
func (m *MockAPI) ListTools(ctx context.Context, filter apiclient.ToolFilter) (*apiclient.Envelope[domain.ToolPage], error) {
	return envelope[domain.ToolPage](m.Called(ctx, filter))
}
func (m *MockAPI) GetTool(ctx context.Context, id string) (*apiclient.Envelope[domain.Tool], error) {
	return envelope[domain.Tool](m.Called(ctx, id))
}
func (m *MockAPI) CreateTool(ctx context.Context, input domain.ToolInput) (*apiclient.Envelope[domain.Tool], error) {
	return envelope[domain.Tool](m.Called(ctx, input))
}
func (m *MockAPI) UpdateTool(ctx context.Context, id string, input domain.ToolInput) (*apiclient.Ack, error) {
	return envelope[json.RawMessage](m.Called(ctx, id, input))
}
func (m *MockAPI) DeleteTool(ctx context.Context, id string) (*apiclient.Ack, error) {
	return envelope[json.RawMessage](m.Called(ctx, id))
}
func (m *MockAPI) ListCategories(ctx context.Context) (*apiclient.Envelope[[]domain.Category], error) {
	return envelope[[]domain.Category](m.Called(ctx))
}
func (m *MockAPI) PopularTools(ctx context.Context, limit int) (*apiclient.Envelope[[]domain.Tool], error) {
	return envelope[[]domain.Tool](m.Called(ctx, limit))
}

// Orders
func (m *MockAPI) ListOrders(ctx context.Context, filter apiclient.OrderFilter) (*apiclient.Envelope[domain.OrderPage], error) {
	return envelope[domain.OrderPage](m.Called(ctx, filter))
}
func (m *MockAPI) GetOrder(ctx context.Context, id string) (*apiclient.Envelope[domain.Order], error) {
	return envelope[domain.Order](m.Called(ctx, id))
}
func (m *MockAPI) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*apiclient.Envelope[domain.Order], error) {
	return envelope[domain.Order](m.Called(ctx, req))
}
func (m *MockAPI) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, note string) (*apiclient.Ack, error) {
	return envelope[json.RawMessage](m.Called(ctx, id, status, note))
}
func (m *MockAPI) CancelOrder(ctx context.Context, id, reason string) (*apiclient.Ack, error) {
	return envelope[json.RawMessage](m.Called(ctx, id, reason))
}
func (m *MockAPI) OrderStatistics(ctx context.Context, period apiclient.DateRange) (*apiclient.Envelope[domain.OrderStatistics], error) {
	return envelope[domain.OrderStatistics](m.Called(ctx, period))
}

// Reviews
func (m *MockAPI) ListReviews(ctx context.Context, filter apiclient.ReviewFilter) (*apiclient.Envelope[domain.ReviewPage], error) {
	return envelope[domain.ReviewPage](m.Called(ctx, filter))
}
func (m *MockAPI) ToolReviews(ctx context.Context, toolID string, filter apiclient.ToolReviewFilter) (*apiclient.Envelope[domain.ToolReviewPage], error) {
	return envelope[domain.ToolReviewPage](m.Called(ctx, toolID, filter))
}
func (m *MockAPI) CreateReview(ctx context.Context, req domain.CreateReviewRequest) (*apiclient.Envelope[domain.Review], error) {
	return envelope[domain.Review](m.Called(ctx, req))
}
func (m *MockAPI) ApproveReview(ctx context.Context, id string) (*apiclient.Ack, error) {
	return envelope[json.RawMessage](m.Called(ctx, id))
}
func (m *MockAPI) RejectReview(ctx context.Context, id, reason string) (*apiclient.Ack, error) {
	return envelope[json.RawMessage](m.Called(ctx, id, reason))
}
func (m *MockAPI) DeleteReview(ctx context.Context, id string) (*apiclient.Ack, error) {
	return envelope[json.RawMessage](m.Called(ctx, id))
}

// Bookings
func (m *MockAPI) ListBookings(ctx context.Context, filter apiclient.BookingFilter) (*apiclient.Envelope[domain.BookingPage], error) {
	return envelope[domain.BookingPage](m.Called(ctx, filter))
}
func (m *MockAPI) MyBookings(ctx context.Context, status string) (*apiclient.Envelope[[]domain.Booking], error) {
	return envelope[[]domain.Booking](m.Called(ctx, status))
}
func (m *MockAPI) CreateBooking(ctx context.Context, req domain.CreateBookingRequest) (*apiclient.Envelope[domain.Booking], error) {
	return envelope[domain.Booking](m.Called(ctx, req))
}
func (m *MockAPI) ConfirmBooking(ctx context.Context, id string) (*apiclient.Ack, error) {
	return envelope[json.RawMessage](m.Called(ctx, id))
}
func (m *MockAPI) CancelBooking(ctx context.Context, id, reason string) (*apiclient.Ack, error) {
	return envelope[json.RawMessage](m.Called(ctx, id, reason))
}
func (m *MockAPI) DeleteBooking(ctx context.Context, id string) (*apiclient.Ack, error) {
	return envelope[json.RawMessage](m.Called(ctx, id))
}
func (m *MockAPI) CleanupExpiredBookings(ctx context.Context) (*apiclient.Envelope[domain.CleanupResult], error) {
	return envelope[domain.CleanupResult](m.Called(ctx))
}

// MockIdentity stands in for the session
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) User() *domain.User {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.User)
}
func (m *MockIdentity) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockIdentity) Logout() error {
	return m.Called().Error(0)
}

// recorder keeps every notification raised
type recorder struct {
	items []notify.Notification
}

func (r *recorder) Notify(n notify.Notification) {
	r.items = append(r.items, n)
}

func (r *recorder) last() notify.Notification {
	if len(r.items) == 0 {
		return notify.Notification{}
	}
	return r.items[len(r.items)-1]
}
