package stats

import (
	"strings"

	"toolrent-console/internal/domain"
)

// AllStatuses is the filter value that keeps every record
const AllStatuses = "all"

// BookingSummary counts bookings per status
type BookingSummary struct {
	Total     int
	Pending   int
	Confirmed int
	Cancelled int
	Expired   int
}

func SummarizeBookings(bookings []domain.Booking) BookingSummary {
	s := BookingSummary{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case domain.BookingStatusPending:
			s.Pending++
		case domain.BookingStatusConfirmed:
			s.Confirmed++
		case domain.BookingStatusCancelled:
			s.Cancelled++
		case domain.BookingStatusExpired:
			s.Expired++
		}
	}
	return s
}

// FilterBookings keeps bookings whose id or tool id contains search,
// ignoring case. An empty search keeps everything.
func FilterBookings(bookings []domain.Booking, search string) []domain.Booking {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if term == "" || containsFold(b.ID, term) || containsFold(b.ToolID, term) {
			out = append(out, b)
		}
	}
	return out
}

// StatusParam maps a screen filter to the query value sent to the server:
// "all" and "" mean no filter.
func StatusParam(filter string) string {
	if filter == AllStatuses {
		return ""
	}
	return filter
}

// MatchesStatus reports whether status passes filter
func MatchesStatus(status, filter string) bool {
	return filter == "" || filter == AllStatuses || status == filter
}

// ShortID is the last 8 characters of an identifier, for compact tables
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
