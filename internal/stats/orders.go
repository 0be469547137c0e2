package stats

import (
	"math"
	"strings"
	"time"

	"toolrent-console/internal/domain"
)

// FilterOrders keeps orders matching search and status. Search matches the
// order number and customer names ignoring case, and the phone as a plain
// substring.
func FilterOrders(orders []domain.Order, search, status string) []domain.Order {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !MatchesStatus(string(o.Status), status) {
			continue
		}
		if term != "" &&
			!containsFold(o.OrderNumber, term) &&
			!containsFold(o.CustomerInfo.FirstName, term) &&
			!containsFold(o.CustomerInfo.LastName, term) &&
			!strings.Contains(o.CustomerInfo.Phone, strings.TrimSpace(search)) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// OrderSummary is the header of the orders screen
type OrderSummary struct {
	Total     int
	Pending   int
	Active    int
	Completed int
	Revenue   float64
}

// SummarizeOrderStatistics reads the server aggregate; a missing aggregate is all zeros
func SummarizeOrderStatistics(st *domain.OrderStatistics) OrderSummary {
	if st == nil {
		return OrderSummary{}
	}
	return OrderSummary{
		Total:     st.Total,
		Pending:   st.Pending,
		Active:    st.Active,
		Completed: st.Completed,
		Revenue:   st.TotalRevenue,
	}
}

// DaysLeft is the number of days until end, rounded up. It is negative once
// end has passed. Unparseable dates yield 0 and false.
func DaysLeft(end string, now time.Time) (int, bool) {
	t, err := ParseTime(end)
	if err != nil {
		return 0, false
	}
	days := t.Sub(now).Hours() / 24
	return int(math.Ceil(days)), true
}

// ParseTime accepts the timestamp forms the remote service emits
func ParseTime(s string) (time.Time, error) {
	var err error
	for _, layout := range []string{time.RFC3339Nano, dateLayout} {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// FormatDate renders a timestamp as a calendar date, or returns it unchanged
// when it cannot be parsed.
func FormatDate(s string) string {
	t, err := ParseTime(s)
	if err != nil {
		return s
	}
	return t.Format("02.01.2006")
}

// OrderRow is an order flattened for a dashboard table
type OrderRow struct {
	ID       string
	Number   string
	Customer string
	Tools    string
	Amount   float64
	Status   domain.OrderStatus
	Date     string
}

// RecentOrders flattens the first n orders
func RecentOrders(orders []domain.Order, n int) []OrderRow {
	if n > len(orders) {
		n = len(orders)
	}
	rows := make([]OrderRow, 0, n)
	for _, o := range orders[:n] {
		names := make([]string, len(o.Items))
		for i, item := range o.Items {
			names[i] = item.ToolName
		}
		rows = append(rows, OrderRow{
			ID:       o.ID,
			Number:   o.OrderNumber,
			Customer: strings.TrimSpace(o.CustomerInfo.FirstName + " " + o.CustomerInfo.LastName),
			Tools:    strings.Join(names, ", "),
			Amount:   o.Total,
			Status:   o.Status,
			Date:     FormatDate(o.CreatedAt),
		})
	}
	return rows
}

// Period is a span of calendar dates, both ends included
type Period struct {
	Start string
	End   string
}

// TrailingPeriods returns the last days calendar days up to and including
// now, and the equally long period right before it
func TrailingPeriods(now time.Time, days int) (current, previous Period) {
	end := now.UTC()
	start := end.AddDate(0, 0, -(days - 1))
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(days - 1))
	return Period{Start: start.Format(dateLayout), End: end.Format(dateLayout)},
		Period{Start: prevStart.Format(dateLayout), End: prevEnd.Format(dateLayout)}
}

// GrowthRate is the percentage change from previous to current; 0 when
// there is no previous value to compare against.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
