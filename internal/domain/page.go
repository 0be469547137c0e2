package domain

// Pagination accompanies every list payload
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type ToolPage struct {
	Tools      []Tool     `json:"tools"`
	Pagination Pagination `json:"pagination"`
}

type OrderPage struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

type ReviewPage struct {
	Reviews    []Review   `json:"reviews"`
	Pagination Pagination `json:"pagination"`
}

type ToolReviewPage struct {
	Reviews    []Review   `json:"reviews"`
	Rating     ToolRating `json:"rating"`
	Pagination Pagination `json:"pagination"`
}

type BookingPage struct {
	Bookings   []Booking  `json:"bookings"`
	Pagination Pagination `json:"pagination"`
}
