package domain

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusExpired   BookingStatus = "expired"
)

// Booking is a short-lived hold on a tool, distinct from an Order
type Booking struct {
	ID                 string        `json:"_id"`
	ToolID             string        `json:"toolId"`
	CustomerID         string        `json:"customerId"`
	StartDate          string        `json:"startDate"`
	EndDate            string        `json:"endDate"`
	Quantity           int           `json:"quantity"`
	Status             BookingStatus `json:"status"`
	PricePerDay        float64       `json:"pricePerDay"`
	TotalPrice         float64       `json:"totalPrice"`
	Notes              string        `json:"notes"`
	ExpiresAt          string        `json:"expiresAt"`
	ConfirmedAt        string        `json:"confirmedAt,omitempty"`
	CancelledAt        string        `json:"cancelledAt,omitempty"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
	CreatedAt          string        `json:"createdAt"`
}

type CreateBookingRequest struct {
	ToolID    string `json:"toolId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// CleanupResult is the payload of the expired-bookings cleanup call
type CleanupResult struct {
	Message      string `json:"message,omitempty"`
	ExpiredCount int    `json:"expiredCount,omitempty"`
}
